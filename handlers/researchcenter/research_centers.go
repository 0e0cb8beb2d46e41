package researchcenter

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

const centerColumns = `rc.id, rc.name, rc.description, rc.head, rc.department, rc.established_year, rc.focus_areas, rc.facilities, rc.image_url, rc.website_url, rc.created_by, rc.created_at, rc.updated_at`

// ResearchCenterHandler handles research center requests
type ResearchCenterHandler struct {
	db        *sql.DB
	saver     *upload.Saver
	validator *validation.Validator
}

// NewResearchCenterHandler creates a new research center handler
func NewResearchCenterHandler(store *database.PostgreSQLStore, saver *upload.Saver) *ResearchCenterHandler {
	return &ResearchCenterHandler{
		db:        store.DB(),
		saver:     saver,
		validator: validation.NewValidator(),
	}
}

// CreateCenterRequest represents the create request body
type CreateCenterRequest struct {
	Name            string   `json:"name" form:"name" validate:"required,min=2,max=255"`
	Description     *string  `json:"description" form:"description"`
	Head            *string  `json:"head" form:"head"`
	Department      *string  `json:"department" form:"department"`
	EstablishedYear *int     `json:"established_year" form:"established_year"`
	FocusAreas      []string `json:"focus_areas" form:"focus_areas"`
	Facilities      *string  `json:"facilities" form:"facilities"`
	ImageURL        *string  `json:"image_url" form:"image_url"`
	WebsiteURL      *string  `json:"website_url" form:"website_url" validate:"omitempty,url"`
}

// UpdateCenterRequest represents the partial-update request body
type UpdateCenterRequest struct {
	Name            *string  `json:"name" form:"name" validate:"omitempty,min=2,max=255"`
	Description     *string  `json:"description" form:"description"`
	Head            *string  `json:"head" form:"head"`
	Department      *string  `json:"department" form:"department"`
	EstablishedYear *int     `json:"established_year" form:"established_year"`
	FocusAreas      []string `json:"focus_areas" form:"focus_areas"`
	Facilities      *string  `json:"facilities" form:"facilities"`
	ImageURL        *string  `json:"image_url" form:"image_url"`
	WebsiteURL      *string  `json:"website_url" form:"website_url" validate:"omitempty,url"`
}

func scanCenter(row interface{ Scan(...interface{}) error }, rc *model.ResearchCenter) error {
	return row.Scan(
		&rc.ID, &rc.Name, &rc.Description, &rc.Head, &rc.Department,
		&rc.EstablishedYear, &rc.FocusAreas, &rc.Facilities, &rc.ImageURL,
		&rc.WebsiteURL, &rc.CreatedBy, &rc.CreatedAt, &rc.UpdatedAt,
	)
}

// ListCenters handles GET /api/research-centers
func (h *ResearchCenterHandler) ListCenters(c *fiber.Ctx) error {
	page, limit := queryHelper.ParsePagination(c.Query("page"), c.Query("limit"))

	builder := queryHelper.NewBuilder(`
		SELECT `+centerColumns+`
		FROM research_centers rc
		WHERE 1=1`, `
		SELECT COUNT(*)
		FROM research_centers rc
		WHERE 1=1`)

	builder.Equals("rc.department", c.Query("department"))
	builder.Search(c.Query("search"), "rc.name", "rc.head")
	builder.OrderByExpr("rc.name ASC")

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

	centers := []model.ResearchCenter{}
	for rows.Next() {
		var rc model.ResearchCenter
		if err := scanCenter(rows, &rc); err != nil {
			return response.DatabaseError(c, err)
		}
		centers = append(centers, rc)
	}
	if err := rows.Err(); err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Paginated(c, centers, response.CalculatePagination(page, limit, total))
}

// GetCenter handles GET /api/research-centers/:id
func (h *ResearchCenterHandler) GetCenter(c *fiber.Ctx) error {
	var rc model.ResearchCenter
	err := scanCenter(h.db.QueryRow(`
		SELECT `+centerColumns+`
		FROM research_centers rc
		WHERE rc.id = $1`, c.Params("id")), &rc)
	if errors.Is(err, sql.ErrNoRows) {
		return response.NotFound(c, "Research center not found")
	}
	if err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Success(c, rc)
}

// CreateCenter handles POST /api/research-centers
func (h *ResearchCenterHandler) CreateCenter(c *fiber.Ctx) error {
	var req CreateCenterRequest
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

	var rc model.ResearchCenter
	err := scanCenter(h.db.QueryRow(`
		INSERT INTO research_centers (name, description, head, department, established_year, focus_areas, facilities, image_url, website_url, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, name, description, head, department, established_year, focus_areas, facilities, image_url, website_url, created_by, created_at, updated_at`,
		validation.SanitizeString(req.Name), req.Description, req.Head, req.Department,
		req.EstablishedYear, pq.Array(req.FocusAreas), req.Facilities, imageURL,
		req.WebsiteURL, middleware.CreatorID(c),
	), &rc)
	if err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Created(c, "Research center created successfully", rc)
}

// UpdateCenter handles PUT /api/research-centers/:id
func (h *ResearchCenterHandler) UpdateCenter(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateCenterRequest
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

	var focusAreas interface{}
	if req.FocusAreas != nil {
		focusAreas = pq.Array(req.FocusAreas)
	}

	query, args := queryHelper.UpdateQueryBuilder("research_centers",
		[]string{"name", "description", "head", "department", "established_year", "focus_areas", "facilities", "image_url", "website_url"},
		[]interface{}{req.Name, req.Description, req.Head, req.Department, req.EstablishedYear, focusAreas, req.Facilities, imageURL, req.WebsiteURL},
		id,
	)

	result, err := h.db.Exec(query, args...)
	if err != nil {
		return response.DatabaseError(c, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return response.NotFound(c, "Research center not found")
	}

	var rc model.ResearchCenter
	if err := scanCenter(h.db.QueryRow(`
		SELECT `+centerColumns+`
		FROM research_centers rc
		WHERE rc.id = $1`, id), &rc); err != nil {
		return response.DatabaseError(c, err)
	}

	return response.SuccessWithMessage(c, "Research center updated successfully", rc)
}

// DeleteCenter handles DELETE /api/research-centers/:id
func (h *ResearchCenterHandler) DeleteCenter(c *fiber.Ctx) error {
	result, err := h.db.Exec(`DELETE FROM research_centers WHERE id = $1`, c.Params("id"))
	if err != nil {
		return response.DatabaseError(c, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return response.NotFound(c, "Research center not found")
	}

	return response.Message(c, "Research center deleted successfully")
}
