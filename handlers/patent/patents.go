package patent

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/research-portal-api/database"
	"github.com/sahilchouksey/research-portal-api/model"
	queryHelper "github.com/sahilchouksey/research-portal-api/utils/query"
	"github.com/sahilchouksey/research-portal-api/utils/response"
	"github.com/sahilchouksey/research-portal-api/utils/validation"
)

const patentColumns = `p.id, p.title, p.patent_number, p.inventors, p.department, p.status, p.filing_date, p.grant_date, p.description, p.faculty_id, p.created_at, p.updated_at`

// PatentHandler handles patent requests
type PatentHandler struct {
	db        *sql.DB
	validator *validation.Validator
}

// NewPatentHandler creates a new patent handler
func NewPatentHandler(store *database.PostgreSQLStore) *PatentHandler {
	return &PatentHandler{
		db:        store.DB(),
		validator: validation.NewValidator(),
	}
}

// CreatePatentRequest represents the create request body
type CreatePatentRequest struct {
	Title        string  `json:"title" validate:"required,min=3"`
	PatentNumber *string `json:"patent_number"`
	Inventors    *string `json:"inventors"`
	Department   *string `json:"department"`
	Status       *string `json:"status"`
	FilingDate   *string `json:"filing_date"`
	GrantDate    *string `json:"grant_date"`
	Description  *string `json:"description"`
	FacultyID    *int64  `json:"faculty_id"`
}

// UpdatePatentRequest represents the partial-update request body
type UpdatePatentRequest struct {
	Title        *string `json:"title" validate:"omitempty,min=3"`
	PatentNumber *string `json:"patent_number"`
	Inventors    *string `json:"inventors"`
	Department   *string `json:"department"`
	Status       *string `json:"status"`
	FilingDate   *string `json:"filing_date"`
	GrantDate    *string `json:"grant_date"`
	Description  *string `json:"description"`
	FacultyID    *int64  `json:"faculty_id"`
}

func scanPatent(row interface{ Scan(...interface{}) error }, p *model.Patent, withFaculty bool) error {
	dest := []interface{}{
		&p.ID, &p.Title, &p.PatentNumber, &p.Inventors, &p.Department, &p.Status,
		&p.FilingDate, &p.GrantDate, &p.Description, &p.FacultyID, &p.CreatedAt, &p.UpdatedAt,
	}
	if withFaculty {
		dest = append(dest, &p.FacultyName)
	}
	return row.Scan(dest...)
}

// ListPatents handles GET /api/patents
func (h *PatentHandler) ListPatents(c *fiber.Ctx) error {
	page, limit := queryHelper.ParsePagination(c.Query("page"), c.Query("limit"))

	builder := queryHelper.NewBuilder(`
		SELECT `+patentColumns+`, f.name AS faculty_name
		FROM patents p
		LEFT JOIN faculty f ON p.faculty_id = f.id
		WHERE 1=1`, `
		SELECT COUNT(*)
		FROM patents p
		LEFT JOIN faculty f ON p.faculty_id = f.id
		WHERE 1=1`)

	builder.Equals("p.status", c.Query("status"))
	builder.Equals("p.department", c.Query("department"))
	builder.EqualsInt("p.faculty_id", c.Query("faculty_id"))
	builder.Year("p.filing_date", c.Query("year"))
	builder.Search(c.Query("search"), "p.title", "p.inventors")
	builder.OrderByExpr("p.filing_date DESC NULLS LAST, p.created_at DESC")

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

	patents := []model.Patent{}
	for rows.Next() {
		var p model.Patent
		if err := scanPatent(rows, &p, true); err != nil {
			return response.DatabaseError(c, err)
		}
		patents = append(patents, p)
	}
	if err := rows.Err(); err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Paginated(c, patents, response.CalculatePagination(page, limit, total))
}

// GetPatent handles GET /api/patents/:id
func (h *PatentHandler) GetPatent(c *fiber.Ctx) error {
	var p model.Patent
	err := scanPatent(h.db.QueryRow(`
		SELECT `+patentColumns+`, f.name AS faculty_name
		FROM patents p
		LEFT JOIN faculty f ON p.faculty_id = f.id
		WHERE p.id = $1`, c.Params("id")), &p, true)
	if errors.Is(err, sql.ErrNoRows) {
		return response.NotFound(c, "Patent not found")
	}
	if err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Success(c, p)
}

// CreatePatent handles POST /api/patents
func (h *PatentHandler) CreatePatent(c *fiber.Ctx) error {
	var req CreatePatentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	var p model.Patent
	err := scanPatent(h.db.QueryRow(`
		INSERT INTO patents
			(title, patent_number, inventors, department, status, filing_date, grant_date, description, faculty_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, title, patent_number, inventors, department, status, filing_date, grant_date, description, faculty_id, created_at, updated_at`,
		validation.SanitizeString(req.Title), req.PatentNumber, req.Inventors, req.Department,
		req.Status, req.FilingDate, req.GrantDate, req.Description, req.FacultyID,
	), &p, false)
	if err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Created(c, "Patent created successfully", p)
}

// UpdatePatent handles PUT /api/patents/:id
func (h *PatentHandler) UpdatePatent(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdatePatentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	query, args := queryHelper.UpdateQueryBuilder("patents",
		[]string{"title", "patent_number", "inventors", "department", "status", "filing_date", "grant_date", "description", "faculty_id"},
		[]interface{}{req.Title, req.PatentNumber, req.Inventors, req.Department, req.Status, req.FilingDate, req.GrantDate, req.Description, req.FacultyID},
		id,
	)

	result, err := h.db.Exec(query, args...)
	if err != nil {
		return response.DatabaseError(c, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return response.NotFound(c, "Patent not found")
	}

	var p model.Patent
	if err := scanPatent(h.db.QueryRow(`
		SELECT `+patentColumns+`, f.name AS faculty_name
		FROM patents p
		LEFT JOIN faculty f ON p.faculty_id = f.id
		WHERE p.id = $1`, id), &p, true); err != nil {
		return response.DatabaseError(c, err)
	}

	return response.SuccessWithMessage(c, "Patent updated successfully", p)
}

// DeletePatent handles DELETE /api/patents/:id
func (h *PatentHandler) DeletePatent(c *fiber.Ctx) error {
	result, err := h.db.Exec(`DELETE FROM patents WHERE id = $1`, c.Params("id"))
	if err != nil {
		return response.DatabaseError(c, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return response.NotFound(c, "Patent not found")
	}

	return response.Message(c, "Patent deleted successfully")
}
