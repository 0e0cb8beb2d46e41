package queryHelper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderKeepsCountAndDataInLockstep(t *testing.T) {
	b := NewBuilder(
		"SELECT id FROM things t WHERE 1=1",
		"SELECT COUNT(*) FROM things t WHERE 1=1",
	)
	b.Equals("t.status", "active")
	b.Search("foo", "t.title", "t.body")
	b.Year("t.start_date", "2024")

	countQuery, countArgs := b.CountQuery()
	dataQuery, dataArgs := b.DataQuery(2, 10)

	assert.Contains(t, countQuery, "t.status = $1")
	assert.Contains(t, dataQuery, "t.status = $1")
	assert.Contains(t, countQuery, "t.title ILIKE $2 OR t.body ILIKE $2")
	assert.Contains(t, dataQuery, "t.title ILIKE $2 OR t.body ILIKE $2")
	assert.Contains(t, countQuery, "EXTRACT(YEAR FROM t.start_date) = $3")
	assert.Contains(t, dataQuery, "EXTRACT(YEAR FROM t.start_date) = $3")

	// Count args carry only the filters; data args add limit and offset.
	require.Len(t, countArgs, 3)
	require.Len(t, dataArgs, 5)
	assert.Contains(t, dataQuery, "LIMIT $4 OFFSET $5")
	assert.Equal(t, 10, dataArgs[3])
	assert.Equal(t, 10, dataArgs[4])
}

func TestRawJoinsClauseWithAnd(t *testing.T) {
	b := NewBuilder(
		"SELECT id FROM teaching_materials m WHERE 1=1",
		"SELECT COUNT(*) FROM teaching_materials m WHERE 1=1",
	)
	b.Raw("m.course_name ILIKE $%d", "%dbms%")
	b.Raw("m.archived = $%d", false)

	countQuery, countArgs := b.CountQuery()
	dataQuery, _ := b.DataQuery(1, 10)

	assert.Equal(t,
		"SELECT COUNT(*) FROM teaching_materials m WHERE 1=1 AND m.course_name ILIKE $1 AND m.archived = $2",
		countQuery)
	assert.Contains(t, dataQuery, "WHERE 1=1 AND m.course_name ILIKE $1 AND m.archived = $2")
	require.Len(t, countArgs, 2)
	assert.Equal(t, "%dbms%", countArgs[0])
	assert.Equal(t, false, countArgs[1])
}

func TestBuilderSkipsEmptyFilters(t *testing.T) {
	b := NewBuilder("SELECT id FROM t WHERE 1=1", "SELECT COUNT(*) FROM t WHERE 1=1")
	b.Equals("t.status", "")
	b.Search("", "t.title")
	b.Year("t.start_date", "")

	countQuery, countArgs := b.CountQuery()
	assert.Equal(t, "SELECT COUNT(*) FROM t WHERE 1=1", countQuery)
	assert.Empty(t, countArgs)
}

func TestNumericFiltersSkipNonNumericInput(t *testing.T) {
	b := NewBuilder("SELECT id FROM t WHERE 1=1", "SELECT COUNT(*) FROM t WHERE 1=1")
	b.EqualsInt("t.faculty_id", "abc")
	b.EqualsInt("t.year", "20.5")
	b.Year("t.start_date", "notayear")

	countQuery, countArgs := b.CountQuery()
	assert.Equal(t, "SELECT COUNT(*) FROM t WHERE 1=1", countQuery)
	assert.Empty(t, countArgs)

	b.EqualsInt("t.faculty_id", "7")
	b.Year("t.start_date", "2024")

	countQuery, countArgs = b.CountQuery()
	assert.Contains(t, countQuery, "t.faculty_id = $1")
	assert.Contains(t, countQuery, "EXTRACT(YEAR FROM t.start_date) = $2")
	require.Len(t, countArgs, 2)
	assert.Equal(t, 7, countArgs[0])
	assert.Equal(t, 2024, countArgs[1])
}

func TestSearchEscapesPatternMetacharacters(t *testing.T) {
	b := NewBuilder("SELECT id FROM t WHERE 1=1", "SELECT COUNT(*) FROM t WHERE 1=1")
	b.Search("50%_done\\", "t.title")

	_, args := b.CountQuery()
	require.Len(t, args, 1)
	assert.Equal(t, `%50\%\_done\\%`, args[0])
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `\%`, EscapeLike("%"))
	assert.Equal(t, `\_`, EscapeLike("_"))
	assert.Equal(t, `\\`, EscapeLike(`\`))
	assert.Equal(t, "plain", EscapeLike("plain"))
}

func TestGroupByWrapsCountQuery(t *testing.T) {
	b := NewBuilder("SELECT dept, COUNT(*) FROM t WHERE 1=1", "")
	b.Equals("t.kind", "x")
	b.GroupBy("dept")

	countQuery, args := b.CountQuery()
	assert.True(t, strings.HasPrefix(countQuery, "SELECT COUNT(*) FROM ("))
	assert.Contains(t, countQuery, "GROUP BY dept")
	assert.True(t, strings.HasSuffix(countQuery, ") AS total"))
	require.Len(t, args, 1)
}

func TestOrderByAllowList(t *testing.T) {
	allowed := map[string]string{"title": "t.title ASC", "newest": "t.created_at DESC"}

	b := NewBuilder("SELECT id FROM t WHERE 1=1", "SELECT COUNT(*) FROM t WHERE 1=1")
	b.OrderBy("title", allowed, "t.id ASC")
	dataQuery, _ := b.DataQuery(1, 10)
	assert.Contains(t, dataQuery, "ORDER BY t.title ASC")

	b = NewBuilder("SELECT id FROM t WHERE 1=1", "SELECT COUNT(*) FROM t WHERE 1=1")
	b.OrderBy("id; DROP TABLE t", allowed, "t.id ASC")
	dataQuery, _ = b.DataQuery(1, 10)
	assert.Contains(t, dataQuery, "ORDER BY t.id ASC")
	assert.NotContains(t, dataQuery, "DROP TABLE")
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		limit     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", "", 1, 10},
		{"explicit", "3", "25", 3, 25},
		{"garbage", "abc", "xyz", 1, 10},
		{"negative", "-2", "-5", 1, 10},
		{"zero", "0", "0", 1, 10},
		{"capped", "1", "5000", 1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := ParsePagination(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestUpdateQueryBuilder(t *testing.T) {
	title := "new title"
	query, args := UpdateQueryBuilder("things",
		[]string{"title", "status"},
		[]interface{}{&title, nil},
		int64(7),
	)

	assert.Equal(t,
		"UPDATE things SET title = COALESCE($1, title), status = COALESCE($2, status), updated_at = CURRENT_TIMESTAMP WHERE id = $3",
		query,
	)
	require.Len(t, args, 3)
	assert.Equal(t, &title, args[0])
	assert.Nil(t, args[1])
	assert.Equal(t, int64(7), args[2])
}

func TestDataQueryOffset(t *testing.T) {
	b := NewBuilder("SELECT id FROM t WHERE 1=1", "SELECT COUNT(*) FROM t WHERE 1=1")
	_, args := b.DataQuery(4, 20)
	require.Len(t, args, 2)
	assert.Equal(t, 20, args[0])
	assert.Equal(t, 60, args[1])
}
