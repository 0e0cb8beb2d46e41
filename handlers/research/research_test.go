package research

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestSortByYearDescendingWithMissingYearsLast(t *testing.T) {
	items := []Item{
		{Title: "old", Year: intPtr(2019)},
		{Title: "undated"},
		{Title: "new", Year: intPtr(2024)},
		{Title: "mid", Year: intPtr(2021)},
	}

	sortByYear(items)

	require.Len(t, items, 4)
	assert.Equal(t, "new", items[0].Title)
	assert.Equal(t, "mid", items[1].Title)
	assert.Equal(t, "old", items[2].Title)
	assert.Equal(t, "undated", items[3].Title)
}

func TestSortByYearIsStableWithinAYear(t *testing.T) {
	items := []Item{
		{Title: "first", Year: intPtr(2024)},
		{Title: "second", Year: intPtr(2024)},
		{Title: "third", Year: intPtr(2024)},
	}

	sortByYear(items)

	assert.Equal(t, "first", items[0].Title)
	assert.Equal(t, "second", items[1].Title)
	assert.Equal(t, "third", items[2].Title)
}

func TestPageBounds(t *testing.T) {
	cases := []struct {
		name        string
		page, limit int
		n           int
		start, end  int
	}{
		{"first page", 1, 10, 25, 0, 10},
		{"middle page", 2, 10, 25, 10, 20},
		{"partial last page", 3, 10, 25, 20, 25},
		{"page past the end", 5, 10, 25, 25, 25},
		{"empty list", 1, 10, 0, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := pageBounds(tc.page, tc.limit, tc.n)
			assert.Equal(t, tc.start, start)
			assert.Equal(t, tc.end, end)
		})
	}
}

func TestListResearchRejectsUnknownFilters(t *testing.T) {
	h := &ResearchHandler{}
	app := fiber.New()
	app.Get("/api/research", h.ListResearch)

	cases := []struct {
		name   string
		target string
	}{
		{"unknown type", "/api/research?type=dataset"},
		{"unknown status", "/api/research?status=cancelled"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.target, nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			var payload struct {
				Success bool `json:"success"`
			}
			require.NoError(t, json.Unmarshal(body, &payload))
			assert.False(t, payload.Success)
		})
	}
}
