package lab

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"github.com/sahilchouksey/research-portal-api/database"
	"github.com/sahilchouksey/research-portal-api/model"
	"github.com/sahilchouksey/research-portal-api/utils/middleware"
	queryHelper "github.com/sahilchouksey/research-portal-api/utils/query"
	"github.com/sahilchouksey/research-portal-api/utils/response"
	"github.com/sahilchouksey/research-portal-api/utils/upload"
	"github.com/sahilchouksey/research-portal-api/utils/validation"
)

const labColumns = `l.id, l.name, l.department, l.head, l.description, l.focus_areas, l.established_year, l.image_url, l.created_by, l.created_at, l.updated_at`

// LabHandler handles research lab requests
type LabHandler struct {
	db        *sql.DB
	saver     *upload.Saver
	validator *validation.Validator
}

// NewLabHandler creates a new lab handler
func NewLabHandler(store *database.PostgreSQLStore, saver *upload.Saver) *LabHandler {
	return &LabHandler{
		db:        store.DB(),
		saver:     saver,
		validator: validation.NewValidator(),
	}
}

// CreateLabRequest represents the create request body. Lab images may
// arrive as a multipart "image" part instead of the image_url field.
type CreateLabRequest struct {
	Name            string   `json:"name" form:"name" validate:"required,min=2,max=255"`
	Department      *string  `json:"department" form:"department"`
	Head            *string  `json:"head" form:"head"`
	Description     *string  `json:"description" form:"description"`
	FocusAreas      []string `json:"focus_areas" form:"focus_areas"`
	EstablishedYear *int     `json:"established_year" form:"established_year"`
	ImageURL        *string  `json:"image_url" form:"image_url"`
}

// UpdateLabRequest represents the partial-update request body
type UpdateLabRequest struct {
	Name            *string  `json:"name" form:"name" validate:"omitempty,min=2,max=255"`
	Department      *string  `json:"department" form:"department"`
	Head            *string  `json:"head" form:"head"`
	Description     *string  `json:"description" form:"description"`
	FocusAreas      []string `json:"focus_areas" form:"focus_areas"`
	EstablishedYear *int     `json:"established_year" form:"established_year"`
	ImageURL        *string  `json:"image_url" form:"image_url"`
}

func scanLab(row interface{ Scan(...interface{}) error }, l *model.Lab) error {
	return row.Scan(
		&l.ID, &l.Name, &l.Department, &l.Head, &l.Description, &l.FocusAreas,
		&l.EstablishedYear, &l.ImageURL, &l.CreatedBy, &l.CreatedAt, &l.UpdatedAt,
	)
}

// ListLabs handles GET /api/labs
func (h *LabHandler) ListLabs(c *fiber.Ctx) error {
	page, limit := queryHelper.ParsePagination(c.Query("page"), c.Query("limit"))

	builder := queryHelper.NewBuilder(`
		SELECT `+labColumns+`
		FROM research_labs l
		WHERE 1=1`, `
		SELECT COUNT(*)
		FROM research_labs l
		WHERE 1=1`)

	builder.Equals("l.department", c.Query("department"))
	builder.Search(c.Query("search"), "l.name", "l.head")
	builder.OrderByExpr("l.name ASC")

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

	labs := []model.Lab{}
	for rows.Next() {
		var l model.Lab
		if err := scanLab(rows, &l); err != nil {
			return response.DatabaseError(c, err)
		}
		labs = append(labs, l)
	}
	if err := rows.Err(); err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Paginated(c, labs, response.CalculatePagination(page, limit, total))
}

// GetLab handles GET /api/labs/:id
func (h *LabHandler) GetLab(c *fiber.Ctx) error {
	var l model.Lab
	err := scanLab(h.db.QueryRow(`
		SELECT `+labColumns+`
		FROM research_labs l
		WHERE l.id = $1`, c.Params("id")), &l)
	if errors.Is(err, sql.ErrNoRows) {
		return response.NotFound(c, "Lab not found")
	}
	if err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Success(c, l)
}

// CreateLab handles POST /api/labs
func (h *LabHandler) CreateLab(c *fiber.Ctx) error {
	var req CreateLabRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	imageURL := req.ImageURL
	if file, err := c.FormFile("image"); err == nil && file != nil {
		path, err := h.saver.Save(c, file, upload.ImageRule)
		if err != nil {
			return response.BadRequest(c, err.Error())
		}
		imageURL = &path
	}

	var l model.Lab
	err := scanLab(h.db.QueryRow(`
		INSERT INTO research_labs (name, department, head, description, focus_areas, established_year, image_url, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, name, department, head, description, focus_areas, established_year, image_url, created_by, created_at, updated_at`,
		validation.SanitizeString(req.Name), req.Department, req.Head, req.Description,
		pq.Array(req.FocusAreas), req.EstablishedYear, imageURL, middleware.CreatorID(c),
	), &l)
	if err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Created(c, "Lab created successfully", l)
}

// UpdateLab handles PUT /api/labs/:id
func (h *LabHandler) UpdateLab(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateLabRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	imageURL := req.ImageURL
	if file, err := c.FormFile("image"); err == nil && file != nil {
		path, err := h.saver.Save(c, file, upload.ImageRule)
		if err != nil {
			return response.BadRequest(c, err.Error())
		}
		imageURL = &path
	}

	// An absent focus_areas keeps the stored array; an explicit empty
	// array would be indistinguishable here, so clients resend the list.
	var focusAreas interface{}
	if req.FocusAreas != nil {
		focusAreas = pq.Array(req.FocusAreas)
	}

	query, args := queryHelper.UpdateQueryBuilder("research_labs",
		[]string{"name", "department", "head", "description", "focus_areas", "established_year", "image_url"},
		[]interface{}{req.Name, req.Department, req.Head, req.Description, focusAreas, req.EstablishedYear, imageURL},
		id,
	)

	result, err := h.db.Exec(query, args...)
	if err != nil {
		return response.DatabaseError(c, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return response.NotFound(c, "Lab not found")
	}

	var l model.Lab
	if err := scanLab(h.db.QueryRow(`
		SELECT `+labColumns+`
		FROM research_labs l
		WHERE l.id = $1`, id), &l); err != nil {
		return response.DatabaseError(c, err)
	}

	return response.SuccessWithMessage(c, "Lab updated successfully", l)
}

// DeleteLab handles DELETE /api/labs/:id
func (h *LabHandler) DeleteLab(c *fiber.Ctx) error {
	result, err := h.db.Exec(`DELETE FROM research_labs WHERE id = $1`, c.Params("id"))
	if err != nil {
		return response.DatabaseError(c, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return response.NotFound(c, "Lab not found")
	}

	return response.Message(c, "Lab deleted successfully")
}
