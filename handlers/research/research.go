package research

import (
	"database/sql"
	"sort"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/research-portal-api/database"
	"github.com/sahilchouksey/research-portal-api/model"
	queryHelper "github.com/sahilchouksey/research-portal-api/utils/query"
	"github.com/sahilchouksey/research-portal-api/utils/response"
	"gorm.io/gorm"
)

// ResearchHandler serves the combined publications and funded-projects
// feed. Publications come from the raw store, projects from the ORM;
// the two result sets are merged and paginated in application code.
type ResearchHandler struct {
	db  *sql.DB
	orm *gorm.DB
	now func() time.Time
}

// NewResearchHandler creates a new research feed handler
func NewResearchHandler(store *database.PostgreSQLStore, orm *gorm.DB) *ResearchHandler {
	return &ResearchHandler{
		db:  store.DB(),
		orm: orm,
		now: time.Now,
	}
}

// Item is one row of the merged feed. RecordType tells the two shapes
// apart; fields of the other shape are omitted.
type Item struct {
	RecordType string  `json:"record_type"`
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	Department *string `json:"department"`
	Year       *int    `json:"year"`

	// Publication fields.
	Authors         *string `json:"authors,omitempty"`
	Journal         *string `json:"journal,omitempty"`
	PublicationType *string `json:"publication_type,omitempty"`
	Indexing        *string `json:"indexing,omitempty"`
	DOI             *string `json:"doi,omitempty"`
	Scope           *string `json:"scope,omitempty"`
	FacultyName     *string `json:"faculty_name,omitempty"`
	PDFUrl          *string `json:"pdf_url,omitempty"`

	// Project fields.
	PrincipalInvestigator   *string    `json:"principal_investigator,omitempty"`
	CoPrincipalInvestigator *string    `json:"co_principal_investigator,omitempty"`
	FundingAgency           *string    `json:"funding_agency,omitempty"`
	SanctionedAmount        *float64   `json:"sanctioned_amount,omitempty"`
	Status                  string     `json:"status,omitempty"`
	StartDate               *time.Time `json:"start_date,omitempty"`
	EndDate                 *time.Time `json:"end_date,omitempty"`
	Outcomes                *string    `json:"outcomes,omitempty"`
	Deliverables            *string    `json:"deliverables,omitempty"`

	Abstract  *string   `json:"abstract,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ListResearch handles GET /api/research. The type filter narrows the
// feed to one shape; the status filter applies to projects only, since
// publications have no lifecycle.
func (h *ResearchHandler) ListResearch(c *fiber.Ctx) error {
	page, limit := queryHelper.ParsePagination(c.Query("page"), c.Query("limit"))

	feedType := c.Query("type", "all")
	switch feedType {
	case "all", "publication", "project":
	default:
		return response.BadRequest(c, "Invalid type filter")
	}

	status := c.Query("status")
	if status != "" && !model.IsValidStatus(status) {
		return response.BadRequest(c, "Invalid status filter")
	}

	items := []Item{}

	if feedType == "all" || feedType == "publication" {
		pubs, err := h.publicationItems(c)
		if err != nil {
			return response.DatabaseError(c, err)
		}
		items = append(items, pubs...)
	}

	if feedType == "all" || feedType == "project" {
		projects, err := h.projectItems(c, status)
		if err != nil {
			return response.DatabaseError(c, err)
		}
		items = append(items, projects...)
	}

	sortByYear(items)

	total := int64(len(items))
	start, end := pageBounds(page, limit, len(items))

	return response.Paginated(c, items[start:end], response.CalculatePagination(page, limit, total))
}

// sortByYear orders the merged feed by year descending. Rows without a
// year sink to the end; the per-source query order breaks ties.
func sortByYear(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		yi, yj := 0, 0
		if items[i].Year != nil {
			yi = *items[i].Year
		}
		if items[j].Year != nil {
			yj = *items[j].Year
		}
		return yi > yj
	})
}

// pageBounds clamps a page window to the merged list's length.
func pageBounds(page, limit, n int) (int, int) {
	start := (page - 1) * limit
	if start > n {
		start = n
	}
	end := start + limit
	if end > n {
		end = n
	}
	return start, end
}

func (h *ResearchHandler) publicationItems(c *fiber.Ctx) ([]Item, error) {
	builder := queryHelper.NewBuilder(`
		SELECT p.id, p.title, p.authors, p.journal_name, p.publication_type,
			p.year, p.indexing, p.doi, p.abstract, p.national_international,
			p.pdf_url, p.created_at, f.name AS faculty_name, f.department
		FROM publications p
		LEFT JOIN faculty f ON p.faculty_id = f.id
		WHERE 1=1`, "")

	builder.Equals("f.department", c.Query("department"))
	builder.EqualsInt("p.year", c.Query("year"))
	if indexing := c.Query("indexing"); indexing != "" {
		builder.Raw("p.indexing ILIKE $%d", "%"+queryHelper.EscapeLike(indexing)+"%")
	}
	builder.Search(c.Query("search"), "p.title", "p.authors", "f.name")
	builder.OrderByExpr("p.year DESC NULLS LAST, p.created_at DESC")

	query, args := builder.UnpagedQuery()
	rows, err := h.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		item := Item{RecordType: "publication"}
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Authors, &item.Journal, &item.PublicationType,
			&item.Year, &item.Indexing, &item.DOI, &item.Abstract, &item.Scope,
			&item.PDFUrl, &item.CreatedAt, &item.FacultyName, &item.Department,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (h *ResearchHandler) projectItems(c *fiber.Ctx, status string) ([]Item, error) {
	q := h.orm.Model(&model.ResearchProject{}).Where("is_deleted = ?", false)

	if department := c.Query("department"); department != "" {
		q = q.Where("department = ?", department)
	}
	if year := c.Query("year"); year != "" {
		if y, err := strconv.Atoi(year); err == nil {
			from := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
			to := from.AddDate(1, 0, 0)
			q = q.Where("start_date >= ? AND start_date < ?", from, to)
		}
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + queryHelper.EscapeLike(search) + "%"
		q = q.Where(
			"title ILIKE ? OR principal_investigator ILIKE ? OR funding_agency ILIKE ? OR department ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var projects []model.ResearchProject
	if err := q.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}

	now := h.now()
	items := []Item{}
	for i := range projects {
		p := &projects[i]
		p.DeriveStatus(now)
		if status != "" && p.Status != status {
			continue
		}

		item := Item{
			RecordType:              "project",
			ID:                      int64(p.ID),
			Title:                   p.Title,
			Department:              p.Department,
			PrincipalInvestigator:   p.PrincipalInvestigator,
			CoPrincipalInvestigator: p.CoPrincipalInvestigator,
			FundingAgency:           p.FundingAgency,
			SanctionedAmount:        p.SanctionedAmount,
			Status:                  p.Status,
			StartDate:               p.StartDate,
			EndDate:                 p.EndDate,
			Outcomes:                p.Outcomes,
			Deliverables:            p.Deliverables,
			Abstract:                p.Objectives,
			CreatedAt:               p.CreatedAt,
		}
		if p.StartDate != nil {
			year := p.StartDate.Year()
			item.Year = &year
		}
		items = append(items, item)
	}
	return items, nil
}

// StatsPayload is the aggregate summary across both feed sources.
type StatsPayload struct {
	TotalPublications   int64 `json:"total_publications"`
	IndexedPublications int64 `json:"indexed_publications"`
	TotalProjects       int64 `json:"total_projects"`
	ActiveProjects      int64 `json:"active_projects"`
	Departments         int   `json:"departments"`
}

// Stats handles GET /api/research/stats. The department count is the
// union of publication and project departments, so a department active
// on either side is counted once.
func (h *ResearchHandler) Stats(c *fiber.Ctx) error {
	var s StatsPayload
	err := h.db.QueryRow(`
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE indexing IS NOT NULL AND indexing <> '')
		FROM publications`).Scan(&s.TotalPublications, &s.IndexedPublications)
	if err != nil {
		return response.DatabaseError(c, err)
	}

	departments := map[string]struct{}{}

	rows, err := h.db.Query(`
		SELECT DISTINCT f.department
		FROM publications p
		JOIN faculty f ON p.faculty_id = f.id
		WHERE f.department IS NOT NULL`)
	if err != nil {
		return response.DatabaseError(c, err)
	}
	defer rows.Close()
	for rows.Next() {
		var dept string
		if err := rows.Scan(&dept); err != nil {
			return response.DatabaseError(c, err)
		}
		departments[dept] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return response.DatabaseError(c, err)
	}

	var projects []model.ResearchProject
	if err := h.orm.Model(&model.ResearchProject{}).
		Select("start_date", "end_date", "department").
		Where("is_deleted = ?", false).
		Find(&projects).Error; err != nil {
		return response.DatabaseError(c, err)
	}

	now := h.now()
	s.TotalProjects = int64(len(projects))
	for i := range projects {
		p := &projects[i]
		if model.ProjectStatus(p.StartDate, p.EndDate, now) == model.StatusOngoing {
			s.ActiveProjects++
		}
		if p.Department != nil {
			departments[*p.Department] = struct{}{}
		}
	}
	s.Departments = len(departments)

	return response.Success(c, s)
}
