package project

import (
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/research-portal-api/model"
	"github.com/sahilchouksey/research-portal-api/utils/middleware"
	queryHelper "github.com/sahilchouksey/research-portal-api/utils/query"
	"github.com/sahilchouksey/research-portal-api/utils/response"
	"github.com/sahilchouksey/research-portal-api/utils/validation"
	"gorm.io/gorm"
)

// sortColumns maps client sort keys to column expressions. Anything
// else falls back to the default ordering.
var sortColumns = map[string]string{
	"created_at":        "created_at",
	"updated_at":        "updated_at",
	"title":             "title",
	"start_date":        "start_date",
	"sanctioned_amount": "sanctioned_amount",
}

// ProjectHandler handles funded research project requests. Projects
// live in the ORM-managed table and are soft-deleted, so every read
// filters on is_deleted.
type ProjectHandler struct {
	db        *gorm.DB
	validator *validation.Validator
	now       func() time.Time
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{
		db:        db,
		validator: validation.NewValidator(),
		now:       time.Now,
	}
}

// CreateProjectRequest represents the create request body
type CreateProjectRequest struct {
	Title                   string   `json:"title" validate:"required,min=3"`
	PrincipalInvestigator   *string  `json:"principal_investigator"`
	CoPrincipalInvestigator *string  `json:"co_principal_investigator"`
	Department              *string  `json:"department"`
	FundingAgency           *string  `json:"funding_agency"`
	AgencyScientist         *string  `json:"agency_scientist"`
	FileNumber              *string  `json:"file_number"`
	SanctionedAmount        *float64 `json:"sanctioned_amount" validate:"omitempty,gte=0"`
	StartDate               *string  `json:"start_date"`
	EndDate                 *string  `json:"end_date"`
	Objectives              *string  `json:"objectives"`
	Deliverables            *string  `json:"deliverables"`
	Outcomes                *string  `json:"outcomes"`
	PDFUrl                  *string  `json:"pdf_url"`
}

// UpdateProjectRequest represents the partial-update request body
type UpdateProjectRequest struct {
	Title                   *string  `json:"title" validate:"omitempty,min=3"`
	PrincipalInvestigator   *string  `json:"principal_investigator"`
	CoPrincipalInvestigator *string  `json:"co_principal_investigator"`
	Department              *string  `json:"department"`
	FundingAgency           *string  `json:"funding_agency"`
	AgencyScientist         *string  `json:"agency_scientist"`
	FileNumber              *string  `json:"file_number"`
	SanctionedAmount        *float64 `json:"sanctioned_amount" validate:"omitempty,gte=0"`
	StartDate               *string  `json:"start_date"`
	EndDate                 *string  `json:"end_date"`
	Objectives              *string  `json:"objectives"`
	Deliverables            *string  `json:"deliverables"`
	Outcomes                *string  `json:"outcomes"`
	PDFUrl                  *string  `json:"pdf_url"`
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		// Accept full timestamps too; clients send both.
		t, err = time.Parse(time.RFC3339, *s)
		if err != nil {
			return nil, err
		}
	}
	return &t, nil
}

func (h *ProjectHandler) baseQuery() *gorm.DB {
	return h.db.Model(&model.ResearchProject{}).Where("is_deleted = ?", false)
}

// applyFilters narrows the query by the request's filter parameters.
// The status filter is absent here on purpose: status is derived from
// dates in application code, so it is applied after the rows are read.
func (h *ProjectHandler) applyFilters(c *fiber.Ctx, q *gorm.DB) *gorm.DB {
	if department := c.Query("department"); department != "" {
		q = q.Where("department = ?", department)
	}
	if agency := c.Query("funding_agency"); agency != "" {
		q = q.Where("funding_agency = ?", agency)
	}
	if c.Query("funded") == "true" {
		q = q.Where("funding_agency IS NOT NULL")
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
	return q
}

func orderClause(c *fiber.Ctx) string {
	column, ok := sortColumns[c.Query("sort_by")]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if c.Query("order") == "asc" {
		direction = "ASC"
	}
	return column + " " + direction
}

// ListProjects handles GET /api/projects. When a status filter is
// present the full filtered set is read and narrowed in memory, since
// status only exists as a function of the date range.
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	page, limit := queryHelper.ParsePagination(c.Query("page"), c.Query("limit"))
	now := h.now()

	status := c.Query("status")
	if status != "" && !model.IsValidStatus(status) {
		return response.BadRequest(c, "Invalid status filter")
	}

	query := h.applyFilters(c, h.baseQuery()).Order(orderClause(c))

	if status == "" {
		var total int64
		if err := query.Count(&total).Error; err != nil {
			return response.DatabaseError(c, err)
		}

		projects := []model.ResearchProject{}
		if err := query.Limit(limit).Offset((page - 1) * limit).Find(&projects).Error; err != nil {
			return response.DatabaseError(c, err)
		}
		for i := range projects {
			projects[i].DeriveStatus(now)
		}
		return response.Paginated(c, projects, response.CalculatePagination(page, limit, total))
	}

	all := []model.ResearchProject{}
	if err := query.Find(&all).Error; err != nil {
		return response.DatabaseError(c, err)
	}

	matched := []model.ResearchProject{}
	for i := range all {
		all[i].DeriveStatus(now)
		if all[i].Status == status {
			matched = append(matched, all[i])
		}
	}

	total := int64(len(matched))
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}

	return response.Paginated(c, matched[start:end], response.CalculatePagination(page, limit, total))
}

// GetProject handles GET /api/projects/:id
func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	var p model.ResearchProject
	err := h.baseQuery().Where("id = ?", c.Params("id")).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NotFound(c, "Project not found")
	}
	if err != nil {
		return response.DatabaseError(c, err)
	}

	p.DeriveStatus(h.now())
	return response.Success(c, p)
}

// CreateProject handles POST /api/projects
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var req CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return response.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return response.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return response.BadRequest(c, "end_date must not be before start_date")
	}

	p := model.ResearchProject{
		Title:                   validation.SanitizeString(req.Title),
		PrincipalInvestigator:   req.PrincipalInvestigator,
		CoPrincipalInvestigator: req.CoPrincipalInvestigator,
		Department:              req.Department,
		FundingAgency:           req.FundingAgency,
		AgencyScientist:         req.AgencyScientist,
		FileNumber:              req.FileNumber,
		SanctionedAmount:        req.SanctionedAmount,
		StartDate:               startDate,
		EndDate:                 endDate,
		Objectives:              req.Objectives,
		Deliverables:            req.Deliverables,
		Outcomes:                req.Outcomes,
		PDFUrl:                  req.PDFUrl,
	}
	if userID, ok := middleware.GetUserID(c); ok {
		p.CreatedBy = &userID
	}

	if err := h.db.Create(&p).Error; err != nil {
		return response.DatabaseError(c, err)
	}

	p.DeriveStatus(h.now())
	return response.Created(c, "Project created successfully", p)
}

// UpdateProject handles PUT /api/projects/:id
func (h *ProjectHandler) UpdateProject(c *fiber.Ctx) error {
	var req UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	var p model.ResearchProject
	err := h.baseQuery().Where("id = ?", c.Params("id")).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NotFound(c, "Project not found")
	}
	if err != nil {
		return response.DatabaseError(c, err)
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = validation.SanitizeString(*req.Title)
	}
	if req.PrincipalInvestigator != nil {
		updates["principal_investigator"] = *req.PrincipalInvestigator
	}
	if req.CoPrincipalInvestigator != nil {
		updates["co_principal_investigator"] = *req.CoPrincipalInvestigator
	}
	if req.Department != nil {
		updates["department"] = *req.Department
	}
	if req.FundingAgency != nil {
		updates["funding_agency"] = *req.FundingAgency
	}
	if req.AgencyScientist != nil {
		updates["agency_scientist"] = *req.AgencyScientist
	}
	if req.FileNumber != nil {
		updates["file_number"] = *req.FileNumber
	}
	if req.SanctionedAmount != nil {
		updates["sanctioned_amount"] = *req.SanctionedAmount
	}
	if req.StartDate != nil {
		startDate, err := parseDate(req.StartDate)
		if err != nil {
			return response.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
		}
		updates["start_date"] = startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDate(req.EndDate)
		if err != nil {
			return response.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
		}
		updates["end_date"] = endDate
	}
	if req.Objectives != nil {
		updates["objectives"] = *req.Objectives
	}
	if req.Deliverables != nil {
		updates["deliverables"] = *req.Deliverables
	}
	if req.Outcomes != nil {
		updates["outcomes"] = *req.Outcomes
	}
	if req.PDFUrl != nil {
		updates["pdf_url"] = *req.PDFUrl
	}

	if len(updates) > 0 {
		if err := h.db.Model(&p).Updates(updates).Error; err != nil {
			return response.DatabaseError(c, err)
		}
		if err := h.baseQuery().Where("id = ?", p.ID).First(&p).Error; err != nil {
			return response.DatabaseError(c, err)
		}
	}

	p.DeriveStatus(h.now())
	return response.SuccessWithMessage(c, "Project updated successfully", p)
}

// DeleteProject handles DELETE /api/projects/:id. Deletion is a soft
// flag flip so historical analytics keep their denominators.
func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	result := h.baseQuery().Where("id = ?", c.Params("id")).Update("is_deleted", true)
	if result.Error != nil {
		return response.DatabaseError(c, result.Error)
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Project not found")
	}

	return response.Message(c, "Project deleted successfully")
}

// DashboardStats aggregates the project portfolio for the admin
// dashboard. Status splits are computed in application code because
// status is derived.
type DashboardStats struct {
	TotalProjects      int64               `json:"totalProjects"`
	OngoingProjects    int64               `json:"ongoingProjects"`
	CompletedProjects  int64               `json:"completedProjects"`
	UpcomingProjects   int64               `json:"upcomingProjects"`
	TotalFunding       float64             `json:"totalFunding"`
	UniqueAgencies     int64               `json:"uniqueAgencies"`
	UniqueFaculty      int64               `json:"uniqueFaculty"`
	TopFaculty         []NameCount         `json:"topFaculty"`
	ProjectsByYear     []YearCount         `json:"projectsByYear"`
	DepartmentChart    []DepartmentFunding `json:"departmentChart"`
	StatusDistribution map[string]int64    `json:"statusDistribution"`
}

type NameCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type YearCount struct {
	Year  int   `json:"year"`
	Count int64 `json:"count"`
}

type DepartmentFunding struct {
	Department string  `json:"department"`
	Count      int64   `json:"count"`
	Funding    float64 `json:"funding"`
}

// Dashboard handles GET /api/projects/dashboard
func (h *ProjectHandler) Dashboard(c *fiber.Ctx) error {
	projects := []model.ResearchProject{}
	if err := h.baseQuery().Find(&projects).Error; err != nil {
		return response.DatabaseError(c, err)
	}

	now := h.now()
	stats := DashboardStats{
		TotalProjects:      int64(len(projects)),
		StatusDistribution: map[string]int64{},
	}

	agencies := map[string]struct{}{}
	facultyCounts := map[string]int64{}
	yearCounts := map[int]int64{}
	deptCounts := map[string]*DepartmentFunding{}

	for i := range projects {
		p := &projects[i]
		p.DeriveStatus(now)
		stats.StatusDistribution[p.Status]++

		if p.SanctionedAmount != nil {
			stats.TotalFunding += *p.SanctionedAmount
		}
		if p.FundingAgency != nil && *p.FundingAgency != "" {
			agencies[*p.FundingAgency] = struct{}{}
		}
		if p.PrincipalInvestigator != nil && *p.PrincipalInvestigator != "" {
			facultyCounts[*p.PrincipalInvestigator]++
		}
		if p.StartDate != nil {
			yearCounts[p.StartDate.Year()]++
		}
		if p.Department != nil && *p.Department != "" {
			d, ok := deptCounts[*p.Department]
			if !ok {
				d = &DepartmentFunding{Department: *p.Department}
				deptCounts[*p.Department] = d
			}
			d.Count++
			if p.SanctionedAmount != nil {
				d.Funding += *p.SanctionedAmount
			}
		}
	}

	stats.OngoingProjects = stats.StatusDistribution[model.StatusOngoing]
	stats.CompletedProjects = stats.StatusDistribution[model.StatusCompleted]
	stats.UpcomingProjects = stats.StatusDistribution[model.StatusUpcoming]
	stats.UniqueAgencies = int64(len(agencies))
	stats.UniqueFaculty = int64(len(facultyCounts))

	stats.TopFaculty = topCounts(facultyCounts, 5)

	stats.ProjectsByYear = make([]YearCount, 0, len(yearCounts))
	for year, count := range yearCounts {
		stats.ProjectsByYear = append(stats.ProjectsByYear, YearCount{Year: year, Count: count})
	}
	sort.Slice(stats.ProjectsByYear, func(i, j int) bool {
		return stats.ProjectsByYear[i].Year < stats.ProjectsByYear[j].Year
	})

	departments := make([]DepartmentFunding, 0, len(deptCounts))
	for _, d := range deptCounts {
		departments = append(departments, *d)
	}
	sort.Slice(departments, func(i, j int) bool {
		if departments[i].Count != departments[j].Count {
			return departments[i].Count > departments[j].Count
		}
		return departments[i].Department < departments[j].Department
	})
	if len(departments) > 8 {
		departments = departments[:8]
	}
	stats.DepartmentChart = departments

	return response.Success(c, stats)
}

func topCounts(counts map[string]int64, n int) []NameCount {
	out := make([]NameCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, NameCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
