package queryHelper

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Builder assembles a filtered list query together with its matching
// count query. Every filter clause is appended to both texts with the
// same positional parameter index, so the two can never drift apart.
type Builder struct {
	data    string
	count   string
	args    []interface{}
	groupBy string
	orderBy string
}

// NewBuilder starts a builder from the base data and count query texts.
// Both should end in a WHERE clause (conventionally "WHERE 1=1") so
// filter clauses can be appended unconditionally.
func NewBuilder(dataQuery, countQuery string) *Builder {
	return &Builder{data: dataQuery, count: countQuery}
}

func (b *Builder) append(clause string, values ...interface{}) {
	b.data += clause
	b.count += clause
	b.args = append(b.args, values...)
}

// next returns the positional index the next parameter will take.
func (b *Builder) next() int {
	return len(b.args) + 1
}

// Equals appends an equality filter. Empty values are skipped, matching
// the convention that an absent query parameter applies no filter.
func (b *Builder) Equals(column string, value string) *Builder {
	if value == "" {
		return b
	}
	b.append(fmt.Sprintf(" AND %s = $%d", column, b.next()), value)
	return b
}

// EqualsInt appends an equality filter on an integer column. Values
// that do not parse as integers are skipped, like absent parameters,
// so stray input never reaches the database as a cast error.
func (b *Builder) EqualsInt(column string, value string) *Builder {
	if value == "" {
		return b
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return b
	}
	b.append(fmt.Sprintf(" AND %s = $%d", column, b.next()), n)
	return b
}

// Search appends a case-insensitive substring filter across one or more
// columns, OR-ed together and sharing a single parameter. Pattern
// metacharacters in the term are escaped so user input never widens the
// match.
func (b *Builder) Search(term string, columns ...string) *Builder {
	if term == "" || len(columns) == 0 {
		return b
	}
	idx := b.next()
	conds := make([]string, 0, len(columns))
	for _, col := range columns {
		conds = append(conds, fmt.Sprintf("%s ILIKE $%d", col, idx))
	}
	b.append(" AND ("+strings.Join(conds, " OR ")+")", "%"+EscapeLike(term)+"%")
	return b
}

// Year appends a filter matching the calendar year of a date column.
// Non-numeric values are skipped, same as EqualsInt.
func (b *Builder) Year(column string, value string) *Builder {
	if value == "" {
		return b
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return b
	}
	b.append(fmt.Sprintf(" AND EXTRACT(YEAR FROM %s) = $%d", column, b.next()), n)
	return b
}

// Raw appends an arbitrary filter clause, AND-ed like the other
// appenders. The clause must contain exactly one %d verb per value,
// which receives the positional parameter index.
func (b *Builder) Raw(clause string, value interface{}) *Builder {
	b.append(" AND "+fmt.Sprintf(clause, b.next()), value)
	return b
}

// GroupBy sets a GROUP BY expression applied to the data query only.
func (b *Builder) GroupBy(expr string) *Builder {
	b.groupBy = expr
	return b
}

// OrderBy validates the requested sort key against an allow-list mapping
// client keys to column expressions. Unrecognized keys fall back to the
// default expression; client input is never interpolated into the query.
func (b *Builder) OrderBy(requested string, allowed map[string]string, fallback string) *Builder {
	expr, ok := allowed[requested]
	if !ok {
		expr = fallback
	}
	b.orderBy = expr
	return b
}

// OrderByExpr sets the sort expression directly (server-chosen only).
func (b *Builder) OrderByExpr(expr string) *Builder {
	b.orderBy = expr
	return b
}

// CountQuery returns the count query and its arguments.
func (b *Builder) CountQuery() (string, []interface{}) {
	query := b.count
	if b.groupBy != "" {
		// A grouped query counts groups, not rows; wrap the grouped
		// data query instead of the plain count text.
		query = "SELECT COUNT(*) FROM (" + b.data + " GROUP BY " + b.groupBy + ") AS total"
	}
	args := make([]interface{}, len(b.args))
	copy(args, b.args)
	return query, args
}

// UnpagedQuery returns the data query without pagination, for callers
// that merge result sets and paginate in application code.
func (b *Builder) UnpagedQuery() (string, []interface{}) {
	query := b.data
	if b.groupBy != "" {
		query += " GROUP BY " + b.groupBy
	}
	if b.orderBy != "" {
		query += " ORDER BY " + b.orderBy
	}
	args := make([]interface{}, len(b.args))
	copy(args, b.args)
	return query, args
}

// DataQuery returns the paginated data query and its arguments.
func (b *Builder) DataQuery(page, limit int) (string, []interface{}) {
	query := b.data
	if b.groupBy != "" {
		query += " GROUP BY " + b.groupBy
	}
	if b.orderBy != "" {
		query += " ORDER BY " + b.orderBy
	}
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", b.next(), b.next()+1)

	args := make([]interface{}, len(b.args), len(b.args)+2)
	copy(args, b.args)
	args = append(args, limit, (page-1)*limit)
	return query, args
}

// EscapeLike escapes LIKE/ILIKE pattern metacharacters in user input.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// ParsePagination clamps page/limit query parameters to sane values.
// Non-numeric or non-positive input falls back to the defaults rather
// than failing the request.
func ParsePagination(pageStr, limitStr string) (page, limit int) {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = DefaultPage
	}
	limit, err = strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// UpdateQueryBuilder builds a COALESCE-style partial UPDATE: columns
// whose value is nil keep the stored value, so repeating an identical
// update never drifts the row. Callers check RowsAffected for the
// not-found case and re-read the row for the response.
func UpdateQueryBuilder(tableName string, columns []string, values []interface{}, id interface{}) (string, []interface{}) {
	assignments := make([]string, 0, len(columns))
	for i, col := range columns {
		assignments = append(assignments, fmt.Sprintf("%s = COALESCE($%d, %s)", col, i+1, col))
	}

	query := fmt.Sprintf(
		"UPDATE %s SET %s, updated_at = CURRENT_TIMESTAMP WHERE id = $%d",
		tableName,
		strings.Join(assignments, ", "),
		len(columns)+1,
	)

	args := make([]interface{}, len(values), len(values)+1)
	copy(args, values)
	args = append(args, id)

	return query, args
}
