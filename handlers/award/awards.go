package award

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/research-portal-api/database"
	"github.com/sahilchouksey/research-portal-api/model"
	"github.com/sahilchouksey/research-portal-api/utils/middleware"
	queryHelper "github.com/sahilchouksey/research-portal-api/utils/query"
	"github.com/sahilchouksey/research-portal-api/utils/response"
	"github.com/sahilchouksey/research-portal-api/utils/validation"
)

const awardColumns = `a.id, a.title, a.faculty_id, a.award_type, a.awarded_by, a.year, a.date_received, a.description, a.certificate_url, a.created_by, a.created_at, a.updated_at`

// AwardHandler handles faculty award requests
type AwardHandler struct {
	db        *sql.DB
	validator *validation.Validator
}

// NewAwardHandler creates a new award handler
func NewAwardHandler(store *database.PostgreSQLStore) *AwardHandler {
	return &AwardHandler{
		db:        store.DB(),
		validator: validation.NewValidator(),
	}
}

// CreateAwardRequest represents the create request body
type CreateAwardRequest struct {
	Title          string  `json:"title" validate:"required,min=3"`
	FacultyID      *int64  `json:"faculty_id"`
	AwardType      *string `json:"award_type"`
	AwardedBy      *string `json:"awarded_by"`
	Year           *int    `json:"year" validate:"omitempty,gte=1900,lte=2100"`
	DateReceived   *string `json:"date_received"`
	Description    *string `json:"description"`
	CertificateURL *string `json:"certificate_url"`
}

// UpdateAwardRequest represents the partial-update request body
type UpdateAwardRequest struct {
	Title          *string `json:"title" validate:"omitempty,min=3"`
	FacultyID      *int64  `json:"faculty_id"`
	AwardType      *string `json:"award_type"`
	AwardedBy      *string `json:"awarded_by"`
	Year           *int    `json:"year" validate:"omitempty,gte=1900,lte=2100"`
	DateReceived   *string `json:"date_received"`
	Description    *string `json:"description"`
	CertificateURL *string `json:"certificate_url"`
}

func scanAward(row interface{ Scan(...interface{}) error }, a *model.Award, withFaculty bool) error {
	dest := []interface{}{
		&a.ID, &a.Title, &a.FacultyID, &a.AwardType, &a.AwardedBy, &a.Year,
		&a.DateReceived, &a.Description, &a.CertificateURL, &a.CreatedBy,
		&a.CreatedAt, &a.UpdatedAt,
	}
	if withFaculty {
		dest = append(dest, &a.FacultyName)
	}
	return row.Scan(dest...)
}

// ListAwards handles GET /api/awards
func (h *AwardHandler) ListAwards(c *fiber.Ctx) error {
	page, limit := queryHelper.ParsePagination(c.Query("page"), c.Query("limit"))

	builder := queryHelper.NewBuilder(`
		SELECT `+awardColumns+`, f.name AS faculty_name
		FROM awards a
		LEFT JOIN faculty f ON a.faculty_id = f.id
		WHERE 1=1`, `
		SELECT COUNT(*)
		FROM awards a
		LEFT JOIN faculty f ON a.faculty_id = f.id
		WHERE 1=1`)

	builder.Equals("a.award_type", c.Query("award_type"))
	builder.EqualsInt("a.faculty_id", c.Query("faculty_id"))
	builder.EqualsInt("a.year", c.Query("year"))
	builder.Search(c.Query("search"), "a.title", "a.awarded_by")
	builder.OrderByExpr("a.year DESC NULLS LAST, a.created_at DESC")

	countQuery, countArgs := builder.CountQuery()
	var total int64
	if err := h.db.QueryRow(countQuery, countArgs...).Scan(&total); err != nil {
		return response.DatabaseError(c, err)
	}

	dataQuery, dataArgs := builder.DataQuery(page, limit)
	rows, err := h.db.Query(dataQuery, dataArgs...)
	if err != nil {
		return response.DatabaseError(c, err)
	}
	defer rows.Close()

	awards := []model.Award{}
	for rows.Next() {
		var a model.Award
		if err := scanAward(rows, &a, true); err != nil {
			return response.DatabaseError(c, err)
		}
		awards = append(awards, a)
	}
	if err := rows.Err(); err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Paginated(c, awards, response.CalculatePagination(page, limit, total))
}

// GetAward handles GET /api/awards/:id
func (h *AwardHandler) GetAward(c *fiber.Ctx) error {
	var a model.Award
	err := scanAward(h.db.QueryRow(`
		SELECT `+awardColumns+`, f.name AS faculty_name
		FROM awards a
		LEFT JOIN faculty f ON a.faculty_id = f.id
		WHERE a.id = $1`, c.Params("id")), &a, true)
	if errors.Is(err, sql.ErrNoRows) {
		return response.NotFound(c, "Award not found")
	}
	if err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Success(c, a)
}

// CreateAward handles POST /api/awards
func (h *AwardHandler) CreateAward(c *fiber.Ctx) error {
	var req CreateAwardRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	var a model.Award
	err := scanAward(h.db.QueryRow(`
		INSERT INTO awards (title, faculty_id, award_type, awarded_by, year, date_received, description, certificate_url, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, title, faculty_id, award_type, awarded_by, year, date_received, description, certificate_url, created_by, created_at, updated_at`,
		validation.SanitizeString(req.Title), req.FacultyID, req.AwardType, req.AwardedBy,
		req.Year, req.DateReceived, req.Description, req.CertificateURL, middleware.CreatorID(c),
	), &a, false)
	if err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Created(c, "Award created successfully", a)
}

// UpdateAward handles PUT /api/awards/:id
func (h *AwardHandler) UpdateAward(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateAwardRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	query, args := queryHelper.UpdateQueryBuilder("awards",
		[]string{"title", "faculty_id", "award_type", "awarded_by", "year", "date_received", "description", "certificate_url"},
		[]interface{}{req.Title, req.FacultyID, req.AwardType, req.AwardedBy, req.Year, req.DateReceived, req.Description, req.CertificateURL},
		id,
	)

	result, err := h.db.Exec(query, args...)
	if err != nil {
		return response.DatabaseError(c, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return response.NotFound(c, "Award not found")
	}

	var a model.Award
	if err := scanAward(h.db.QueryRow(`
		SELECT `+awardColumns+`, f.name AS faculty_name
		FROM awards a
		LEFT JOIN faculty f ON a.faculty_id = f.id
		WHERE a.id = $1`, id), &a, true); err != nil {
		return response.DatabaseError(c, err)
	}

	return response.SuccessWithMessage(c, "Award updated successfully", a)
}

// DeleteAward handles DELETE /api/awards/:id
func (h *AwardHandler) DeleteAward(c *fiber.Ctx) error {
	result, err := h.db.Exec(`DELETE FROM awards WHERE id = $1`, c.Params("id"))
	if err != nil {
		return response.DatabaseError(c, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return response.NotFound(c, "Award not found")
	}

	return response.Message(c, "Award deleted successfully")
}
