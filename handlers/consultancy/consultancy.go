package consultancy

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

const consultancyColumns = `c.id, c.title, c.faculty_id, c.client_name, c.department, c.amount_earned, c.start_date, c.end_date, c.description, c.status, c.created_by, c.created_at, c.updated_at`

// ConsultancyHandler handles consultancy engagement requests
type ConsultancyHandler struct {
	db        *sql.DB
	validator *validation.Validator
}

// NewConsultancyHandler creates a new consultancy handler
func NewConsultancyHandler(store *database.PostgreSQLStore) *ConsultancyHandler {
	return &ConsultancyHandler{
		db:        store.DB(),
		validator: validation.NewValidator(),
	}
}

// CreateConsultancyRequest represents the create request body
type CreateConsultancyRequest struct {
	Title        string   `json:"title" validate:"required,min=3"`
	FacultyID    *int64   `json:"faculty_id"`
	ClientName   *string  `json:"client_name"`
	Department   *string  `json:"department"`
	AmountEarned *float64 `json:"amount_earned" validate:"omitempty,gte=0"`
	StartDate    *string  `json:"start_date"`
	EndDate      *string  `json:"end_date"`
	Description  *string  `json:"description"`
	Status       *string  `json:"status"`
}

// UpdateConsultancyRequest represents the partial-update request body
type UpdateConsultancyRequest struct {
	Title        *string  `json:"title" validate:"omitempty,min=3"`
	FacultyID    *int64   `json:"faculty_id"`
	ClientName   *string  `json:"client_name"`
	Department   *string  `json:"department"`
	AmountEarned *float64 `json:"amount_earned" validate:"omitempty,gte=0"`
	StartDate    *string  `json:"start_date"`
	EndDate      *string  `json:"end_date"`
	Description  *string  `json:"description"`
	Status       *string  `json:"status"`
}

func scanConsultancy(row interface{ Scan(...interface{}) error }, m *model.Consultancy, withFaculty bool) error {
	dest := []interface{}{
		&m.ID, &m.Title, &m.FacultyID, &m.ClientName, &m.Department,
		&m.AmountEarned, &m.StartDate, &m.EndDate, &m.Description, &m.Status,
		&m.CreatedBy, &m.CreatedAt, &m.UpdatedAt,
	}
	if withFaculty {
		dest = append(dest, &m.FacultyName, &m.FacultyDepartment)
	}
	return row.Scan(dest...)
}

// ListConsultancy handles GET /api/consultancy
func (h *ConsultancyHandler) ListConsultancy(c *fiber.Ctx) error {
	page, limit := queryHelper.ParsePagination(c.Query("page"), c.Query("limit"))

	builder := queryHelper.NewBuilder(`
		SELECT `+consultancyColumns+`, f.name AS faculty_name, f.department AS faculty_department
		FROM consultancy c
		LEFT JOIN faculty f ON c.faculty_id = f.id
		WHERE 1=1`, `
		SELECT COUNT(*)
		FROM consultancy c
		LEFT JOIN faculty f ON c.faculty_id = f.id
		WHERE 1=1`)

	builder.Equals("c.department", c.Query("department"))
	builder.Equals("c.status", c.Query("status"))
	builder.EqualsInt("c.faculty_id", c.Query("faculty_id"))
	builder.Year("c.start_date", c.Query("year"))
	builder.Search(c.Query("search"), "c.title", "c.client_name")
	builder.OrderByExpr("c.start_date DESC NULLS LAST, c.created_at DESC")

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

	engagements := []model.Consultancy{}
	for rows.Next() {
		var m model.Consultancy
		if err := scanConsultancy(rows, &m, true); err != nil {
			return response.DatabaseError(c, err)
		}
		engagements = append(engagements, m)
	}
	if err := rows.Err(); err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Paginated(c, engagements, response.CalculatePagination(page, limit, total))
}

// GetConsultancy handles GET /api/consultancy/:id
func (h *ConsultancyHandler) GetConsultancy(c *fiber.Ctx) error {
	var m model.Consultancy
	err := scanConsultancy(h.db.QueryRow(`
		SELECT `+consultancyColumns+`, f.name AS faculty_name, f.department AS faculty_department
		FROM consultancy c
		LEFT JOIN faculty f ON c.faculty_id = f.id
		WHERE c.id = $1`, c.Params("id")), &m, true)
	if errors.Is(err, sql.ErrNoRows) {
		return response.NotFound(c, "Consultancy record not found")
	}
	if err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Success(c, m)
}

// CreateConsultancy handles POST /api/consultancy
func (h *ConsultancyHandler) CreateConsultancy(c *fiber.Ctx) error {
	var req CreateConsultancyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	var m model.Consultancy
	err := scanConsultancy(h.db.QueryRow(`
		INSERT INTO consultancy (title, faculty_id, client_name, department, amount_earned, start_date, end_date, description, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, title, faculty_id, client_name, department, amount_earned, start_date, end_date, description, status, created_by, created_at, updated_at`,
		validation.SanitizeString(req.Title), req.FacultyID, req.ClientName, req.Department,
		req.AmountEarned, req.StartDate, req.EndDate, req.Description, req.Status,
		middleware.CreatorID(c),
	), &m, false)
	if err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Created(c, "Consultancy record created successfully", m)
}

// UpdateConsultancy handles PUT /api/consultancy/:id
func (h *ConsultancyHandler) UpdateConsultancy(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateConsultancyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	query, args := queryHelper.UpdateQueryBuilder("consultancy",
		[]string{"title", "faculty_id", "client_name", "department", "amount_earned", "start_date", "end_date", "description", "status"},
		[]interface{}{req.Title, req.FacultyID, req.ClientName, req.Department, req.AmountEarned, req.StartDate, req.EndDate, req.Description, req.Status},
		id,
	)

	result, err := h.db.Exec(query, args...)
	if err != nil {
		return response.DatabaseError(c, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return response.NotFound(c, "Consultancy record not found")
	}

	var m model.Consultancy
	if err := scanConsultancy(h.db.QueryRow(`
		SELECT `+consultancyColumns+`, f.name AS faculty_name, f.department AS faculty_department
		FROM consultancy c
		LEFT JOIN faculty f ON c.faculty_id = f.id
		WHERE c.id = $1`, id), &m, true); err != nil {
		return response.DatabaseError(c, err)
	}

	return response.SuccessWithMessage(c, "Consultancy record updated successfully", m)
}

// DeleteConsultancy handles DELETE /api/consultancy/:id
func (h *ConsultancyHandler) DeleteConsultancy(c *fiber.Ctx) error {
	result, err := h.db.Exec(`DELETE FROM consultancy WHERE id = $1`, c.Params("id"))
	if err != nil {
		return response.DatabaseError(c, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return response.NotFound(c, "Consultancy record not found")
	}

	return response.Message(c, "Consultancy record deleted successfully")
}
