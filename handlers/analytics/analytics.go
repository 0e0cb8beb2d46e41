package analytics

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/research-portal-api/database"
	"github.com/sahilchouksey/research-portal-api/model"
	"github.com/sahilchouksey/research-portal-api/utils/response"
)

// AnalyticsHandler serves portfolio-level aggregations over the
// research projects table. It reads through the raw store: these are
// plain GROUP BY queries with no ORM value.
type AnalyticsHandler struct {
	db  *sql.DB
	now func() time.Time
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(store *database.PostgreSQLStore) *AnalyticsHandler {
	return &AnalyticsHandler{
		db:  store.DB(),
		now: time.Now,
	}
}

// DepartmentProjects is one row of the projects-by-department chart.
type DepartmentProjects struct {
	Department   string  `json:"department"`
	ProjectCount int64   `json:"projectCount"`
	TotalFunding float64 `json:"totalFunding"`
}

// ProjectsByDepartment handles GET /api/analytics/projects-by-department.
// Rows without a department carry no chart label and are excluded.
func (h *AnalyticsHandler) ProjectsByDepartment(c *fiber.Ctx) error {
	rows, err := h.db.Query(`
		SELECT department, COUNT(*), COALESCE(SUM(sanctioned_amount), 0)
		FROM research_projects
		WHERE is_deleted = FALSE AND department IS NOT NULL AND department <> ''
		GROUP BY department
		ORDER BY COUNT(*) DESC, department ASC`)
	if err != nil {
		return response.DatabaseError(c, err)
	}
	defer rows.Close()

	result := []DepartmentProjects{}
	for rows.Next() {
		var d DepartmentProjects
		if err := rows.Scan(&d.Department, &d.ProjectCount, &d.TotalFunding); err != nil {
			return response.DatabaseError(c, err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Success(c, result)
}

// FundingYear is one point of the funding trend line.
type FundingYear struct {
	Year         int     `json:"year"`
	TotalFunding float64 `json:"totalFunding"`
	ProjectCount int64   `json:"projectCount"`
}

// FundingTrend handles GET /api/analytics/funding-trend. Undated
// projects have no year to bucket into and are excluded.
func (h *AnalyticsHandler) FundingTrend(c *fiber.Ctx) error {
	rows, err := h.db.Query(`
		SELECT EXTRACT(YEAR FROM start_date)::INT AS year,
			COALESCE(SUM(sanctioned_amount), 0),
			COUNT(*)
		FROM research_projects
		WHERE is_deleted = FALSE AND start_date IS NOT NULL
		GROUP BY year
		ORDER BY year ASC`)
	if err != nil {
		return response.DatabaseError(c, err)
	}
	defer rows.Close()

	trend := []FundingYear{}
	for rows.Next() {
		var y FundingYear
		if err := rows.Scan(&y.Year, &y.TotalFunding, &y.ProjectCount); err != nil {
			return response.DatabaseError(c, err)
		}
		trend = append(trend, y)
	}
	if err := rows.Err(); err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Success(c, trend)
}

// StatusDistribution handles GET /api/analytics/status-distribution.
// Status is derived from the date range, so the split is computed here
// rather than in SQL.
func (h *AnalyticsHandler) StatusDistribution(c *fiber.Ctx) error {
	rows, err := h.db.Query(`
		SELECT start_date, end_date
		FROM research_projects
		WHERE is_deleted = FALSE`)
	if err != nil {
		return response.DatabaseError(c, err)
	}
	defer rows.Close()

	now := h.now()
	distribution := map[string]int64{
		model.StatusUpcoming:  0,
		model.StatusOngoing:   0,
		model.StatusCompleted: 0,
	}
	for rows.Next() {
		var start, end *time.Time
		if err := rows.Scan(&start, &end); err != nil {
			return response.DatabaseError(c, err)
		}
		distribution[model.ProjectStatus(start, end, now)]++
	}
	if err := rows.Err(); err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Success(c, distribution)
}
