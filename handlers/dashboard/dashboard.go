package dashboard

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/research-portal-api/database"
	"github.com/sahilchouksey/research-portal-api/utils/response"
)

// DashboardHandler serves the institute-wide summary widgets shown on
// the portal landing page.
type DashboardHandler struct {
	db  *sql.DB
	now func() time.Time
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(store *database.PostgreSQLStore) *DashboardHandler {
	return &DashboardHandler{
		db:  store.DB(),
		now: time.Now,
	}
}

// Stats is the headline-count summary.
type Stats struct {
	FacultyCount        int64   `json:"facultyCount"`
	PublicationCount    int64   `json:"publicationCount"`
	PatentCount         int64   `json:"patentCount"`
	ProjectCount        int64   `json:"projectCount"`
	ConsultancyCount    int64   `json:"consultancyCount"`
	AwardCount          int64   `json:"awardCount"`
	StudentProjectCount int64   `json:"studentProjectCount"`
	TotalFunding        float64 `json:"totalFunding"`
	ConsultancyRevenue  float64 `json:"consultancyRevenue"`
}

// GetStats handles GET /api/dashboard/stats
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	var s Stats
	err := h.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM faculty),
			(SELECT COUNT(*) FROM publications),
			(SELECT COUNT(*) FROM patents),
			(SELECT COUNT(*) FROM research_projects WHERE is_deleted = FALSE),
			(SELECT COUNT(*) FROM consultancy),
			(SELECT COUNT(*) FROM awards),
			(SELECT COUNT(*) FROM student_projects),
			(SELECT COALESCE(SUM(sanctioned_amount), 0) FROM research_projects WHERE is_deleted = FALSE),
			(SELECT COALESCE(SUM(amount_earned), 0) FROM consultancy)`).Scan(
		&s.FacultyCount, &s.PublicationCount, &s.PatentCount, &s.ProjectCount,
		&s.ConsultancyCount, &s.AwardCount, &s.StudentProjectCount,
		&s.TotalFunding, &s.ConsultancyRevenue,
	)
	if err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Success(c, s)
}

// yearsWindow clamps the optional ?years= parameter.
func yearsWindow(c *fiber.Ctx, fallback int) int {
	years, err := strconv.Atoi(c.Query("years"))
	if err != nil || years < 1 || years > 50 {
		return fallback
	}
	return years
}

// windowStart is the first instant of the window's opening year. Date
// columns are compared against it with a plain parameter, keeping the
// window arithmetic out of SQL.
func windowStart(now time.Time, years int) time.Time {
	return time.Date(now.Year()-years, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// YearCount is one point of a per-year series.
type YearCount struct {
	Year  int   `json:"year"`
	Count int64 `json:"count"`
}

// PublicationsPerYear handles GET /api/dashboard/publications-per-year.
// The window boundary is computed here so the query stays a plain
// parameter comparison.
func (h *DashboardHandler) PublicationsPerYear(c *fiber.Ctx) error {
	fromYear := h.now().Year() - yearsWindow(c, 5)

	rows, err := h.db.Query(`
		SELECT year, COUNT(*)
		FROM publications
		WHERE year IS NOT NULL AND year >= $1
		GROUP BY year
		ORDER BY year ASC`, fromYear)
	if err != nil {
		return response.DatabaseError(c, err)
	}
	defer rows.Close()

	series := []YearCount{}
	for rows.Next() {
		var y YearCount
		if err := rows.Scan(&y.Year, &y.Count); err != nil {
			return response.DatabaseError(c, err)
		}
		series = append(series, y)
	}
	if err := rows.Err(); err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Success(c, series)
}

// PatentGrowthYear is one point of the IPR growth series.
type PatentGrowthYear struct {
	Year    int   `json:"year"`
	Filed   int64 `json:"filed"`
	Granted int64 `json:"granted"`
}

// PatentGrowth handles GET /api/dashboard/patent-growth. The window is
// computed here so the query stays a plain parameter comparison.
func (h *DashboardHandler) PatentGrowth(c *fiber.Ctx) error {
	years := yearsWindow(c, 5)
	since := windowStart(h.now(), years)

	rows, err := h.db.Query(`
		SELECT EXTRACT(YEAR FROM filing_date)::INT AS year,
			COUNT(*),
			COUNT(*) FILTER (WHERE grant_date IS NOT NULL)
		FROM ipr
		WHERE ipr_type = 'patent' AND filing_date IS NOT NULL AND filing_date >= $1
		GROUP BY year
		ORDER BY year ASC`, since)
	if err != nil {
		return response.DatabaseError(c, err)
	}
	defer rows.Close()

	series := []PatentGrowthYear{}
	for rows.Next() {
		var y PatentGrowthYear
		if err := rows.Scan(&y.Year, &y.Filed, &y.Granted); err != nil {
			return response.DatabaseError(c, err)
		}
		series = append(series, y)
	}
	if err := rows.Err(); err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Success(c, series)
}

// RevenueYear is one point of the consultancy revenue series.
type RevenueYear struct {
	Year    int     `json:"year"`
	Revenue float64 `json:"revenue"`
	Count   int64   `json:"count"`
}

// ConsultancyRevenue handles GET /api/dashboard/consultancy-revenue,
// windowed by the same ?years= parameter as the other series.
func (h *DashboardHandler) ConsultancyRevenue(c *fiber.Ctx) error {
	years := yearsWindow(c, 5)
	since := windowStart(h.now(), years)

	rows, err := h.db.Query(`
		SELECT EXTRACT(YEAR FROM start_date)::INT AS year,
			COALESCE(SUM(amount_earned), 0),
			COUNT(*)
		FROM consultancy
		WHERE start_date IS NOT NULL AND start_date >= $1
		GROUP BY year
		ORDER BY year ASC`, since)
	if err != nil {
		return response.DatabaseError(c, err)
	}
	defer rows.Close()

	series := []RevenueYear{}
	for rows.Next() {
		var y RevenueYear
		if err := rows.Scan(&y.Year, &y.Revenue, &y.Count); err != nil {
			return response.DatabaseError(c, err)
		}
		series = append(series, y)
	}
	if err := rows.Err(); err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Success(c, series)
}

// DepartmentRow is one row of the cross-entity department chart.
type DepartmentRow struct {
	Department         string  `json:"department"`
	Projects           int64   `json:"projects"`
	Funding            float64 `json:"funding"`
	Publications       int64   `json:"publications"`
	IPR                int64   `json:"ipr"`
	ConsultancyRevenue float64 `json:"consultancy_revenue"`
}

// DepartmentComparison handles GET /api/dashboard/department-comparison.
// The per-department aggregates come from four unrelated tables, so each
// is pre-aggregated in a subquery and the legs are joined with FULL
// OUTER JOINs; any side may be absent for a given department.
func (h *DashboardHandler) DepartmentComparison(c *fiber.Ctx) error {
	rows, err := h.db.Query(`
		SELECT COALESCE(r.department, p.department, i.department, cn.department) AS department,
			COALESCE(r.project_count, 0),
			COALESCE(r.funding, 0),
			COALESCE(p.publication_count, 0),
			COALESCE(i.ipr_count, 0),
			COALESCE(cn.revenue, 0)
		FROM (
			SELECT department, COUNT(*) AS project_count,
				COALESCE(SUM(sanctioned_amount), 0) AS funding
			FROM research_projects
			WHERE is_deleted = FALSE AND department IS NOT NULL
			GROUP BY department
		) r
		FULL OUTER JOIN (
			SELECT f.department, COUNT(*) AS publication_count
			FROM publications pub
			JOIN faculty f ON pub.faculty_id = f.id
			WHERE f.department IS NOT NULL
			GROUP BY f.department
		) p ON r.department = p.department
		FULL OUTER JOIN (
			SELECT department, COUNT(*) AS ipr_count
			FROM ipr
			WHERE department IS NOT NULL
			GROUP BY department
		) i ON COALESCE(r.department, p.department) = i.department
		FULL OUTER JOIN (
			SELECT department, COALESCE(SUM(amount_earned), 0) AS revenue
			FROM consultancy
			WHERE department IS NOT NULL
			GROUP BY department
		) cn ON COALESCE(r.department, p.department, i.department) = cn.department
		ORDER BY 3 DESC, 1 ASC`)
	if err != nil {
		return response.DatabaseError(c, err)
	}
	defer rows.Close()

	result := []DepartmentRow{}
	for rows.Next() {
		var d DepartmentRow
		if err := rows.Scan(&d.Department, &d.Projects, &d.Funding,
			&d.Publications, &d.IPR, &d.ConsultancyRevenue); err != nil {
			return response.DatabaseError(c, err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Success(c, result)
}
