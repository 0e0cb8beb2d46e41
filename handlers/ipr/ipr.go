package ipr

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

const iprColumns = `i.id, i.title, i.ipr_type, i.application_number, i.status, i.filing_date, i.publication_date, i.grant_date, i.inventors, i.faculty_id, i.department, i.description, i.pdf_url, i.created_by, i.created_at, i.updated_at`

// IPRHandler handles IPR filing requests
type IPRHandler struct {
	db        *sql.DB
	validator *validation.Validator
}

// NewIPRHandler creates a new IPR handler
func NewIPRHandler(store *database.PostgreSQLStore) *IPRHandler {
	return &IPRHandler{
		db:        store.DB(),
		validator: validation.NewValidator(),
	}
}

// CreateIPRRequest represents the create request body
type CreateIPRRequest struct {
	Title             string  `json:"title" validate:"required,min=3"`
	IPRType           *string `json:"ipr_type" validate:"omitempty,oneof=patent copyright trademark design"`
	ApplicationNumber *string `json:"application_number"`
	Status            *string `json:"status"`
	FilingDate        *string `json:"filing_date"`
	PublicationDate   *string `json:"publication_date"`
	GrantDate         *string `json:"grant_date"`
	Inventors         *string `json:"inventors"`
	FacultyID         *int64  `json:"faculty_id"`
	Department        *string `json:"department"`
	Description       *string `json:"description"`
	PDFUrl            *string `json:"pdf_url"`
}

// UpdateIPRRequest represents the partial-update request body
type UpdateIPRRequest struct {
	Title             *string `json:"title" validate:"omitempty,min=3"`
	IPRType           *string `json:"ipr_type" validate:"omitempty,oneof=patent copyright trademark design"`
	ApplicationNumber *string `json:"application_number"`
	Status            *string `json:"status"`
	FilingDate        *string `json:"filing_date"`
	PublicationDate   *string `json:"publication_date"`
	GrantDate         *string `json:"grant_date"`
	Inventors         *string `json:"inventors"`
	FacultyID         *int64  `json:"faculty_id"`
	Department        *string `json:"department"`
	Description       *string `json:"description"`
	PDFUrl            *string `json:"pdf_url"`
}

func scanIPR(row interface{ Scan(...interface{}) error }, i *model.IPR) error {
	return row.Scan(
		&i.ID, &i.Title, &i.IPRType, &i.ApplicationNumber, &i.Status,
		&i.FilingDate, &i.PublicationDate, &i.GrantDate, &i.Inventors,
		&i.FacultyID, &i.Department, &i.Description, &i.PDFUrl,
		&i.CreatedBy, &i.CreatedAt, &i.UpdatedAt,
	)
}

// ListIPR handles GET /api/ipr
func (h *IPRHandler) ListIPR(c *fiber.Ctx) error {
	page, limit := queryHelper.ParsePagination(c.Query("page"), c.Query("limit"))

	builder := queryHelper.NewBuilder(`
		SELECT `+iprColumns+`
		FROM ipr i
		WHERE 1=1`, `
		SELECT COUNT(*)
		FROM ipr i
		WHERE 1=1`)

	builder.Equals("i.ipr_type", c.Query("ipr_type"))
	builder.Equals("i.status", c.Query("status"))
	builder.Equals("i.department", c.Query("department"))
	builder.EqualsInt("i.faculty_id", c.Query("faculty_id"))
	builder.Year("i.filing_date", c.Query("year"))
	builder.Search(c.Query("search"), "i.title", "i.inventors", "i.application_number")
	builder.OrderByExpr("i.filing_date DESC NULLS LAST, i.created_at DESC")

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

	filings := []model.IPR{}
	for rows.Next() {
		var i model.IPR
		if err := scanIPR(rows, &i); err != nil {
			return response.DatabaseError(c, err)
		}
		filings = append(filings, i)
	}
	if err := rows.Err(); err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Paginated(c, filings, response.CalculatePagination(page, limit, total))
}

// GetIPR handles GET /api/ipr/:id
func (h *IPRHandler) GetIPR(c *fiber.Ctx) error {
	var i model.IPR
	err := scanIPR(h.db.QueryRow(`
		SELECT `+iprColumns+`
		FROM ipr i
		WHERE i.id = $1`, c.Params("id")), &i)
	if errors.Is(err, sql.ErrNoRows) {
		return response.NotFound(c, "IPR record not found")
	}
	if err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Success(c, i)
}

// CreateIPR handles POST /api/ipr
func (h *IPRHandler) CreateIPR(c *fiber.Ctx) error {
	var req CreateIPRRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	var i model.IPR
	err := scanIPR(h.db.QueryRow(`
		INSERT INTO ipr
			(title, ipr_type, application_number, status, filing_date, publication_date, grant_date, inventors, faculty_id, department, description, pdf_url, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+bareIPRColumns(), validation.SanitizeString(req.Title), req.IPRType,
		req.ApplicationNumber, req.Status, req.FilingDate, req.PublicationDate, req.GrantDate,
		req.Inventors, req.FacultyID, req.Department, req.Description, req.PDFUrl,
		middleware.CreatorID(c),
	), &i)
	if err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Created(c, "IPR record created successfully", i)
}

// UpdateIPR handles PUT /api/ipr/:id
func (h *IPRHandler) UpdateIPR(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateIPRRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	query, args := queryHelper.UpdateQueryBuilder("ipr",
		[]string{"title", "ipr_type", "application_number", "status", "filing_date", "publication_date", "grant_date", "inventors", "faculty_id", "department", "description", "pdf_url"},
		[]interface{}{req.Title, req.IPRType, req.ApplicationNumber, req.Status, req.FilingDate, req.PublicationDate, req.GrantDate, req.Inventors, req.FacultyID, req.Department, req.Description, req.PDFUrl},
		id,
	)

	result, err := h.db.Exec(query, args...)
	if err != nil {
		return response.DatabaseError(c, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return response.NotFound(c, "IPR record not found")
	}

	var i model.IPR
	if err := scanIPR(h.db.QueryRow(`
		SELECT `+iprColumns+`
		FROM ipr i
		WHERE i.id = $1`, id), &i); err != nil {
		return response.DatabaseError(c, err)
	}

	return response.SuccessWithMessage(c, "IPR record updated successfully", i)
}

// DeleteIPR handles DELETE /api/ipr/:id
func (h *IPRHandler) DeleteIPR(c *fiber.Ctx) error {
	result, err := h.db.Exec(`DELETE FROM ipr WHERE id = $1`, c.Params("id"))
	if err != nil {
		return response.DatabaseError(c, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return response.NotFound(c, "IPR record not found")
	}

	return response.Message(c, "IPR record deleted successfully")
}

func bareIPRColumns() string {
	return `id, title, ipr_type, application_number, status, filing_date, publication_date, grant_date, inventors, faculty_id, department, description, pdf_url, created_by, created_at, updated_at`
}
