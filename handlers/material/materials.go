package material

import (
	"database/sql"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/research-portal-api/database"
	"github.com/sahilchouksey/research-portal-api/model"
	"github.com/sahilchouksey/research-portal-api/utils/middleware"
	queryHelper "github.com/sahilchouksey/research-portal-api/utils/query"
	"github.com/sahilchouksey/research-portal-api/utils/response"
	"github.com/sahilchouksey/research-portal-api/utils/upload"
	"github.com/sahilchouksey/research-portal-api/utils/validation"
)

const materialColumns = `m.id, m.title, m.faculty_id, m.department, m.course_name, m.material_type, m.file_url, m.video_link, m.description, m.created_by, m.created_at, m.updated_at`

// MaterialHandler handles teaching material requests. The same handler
// is mounted at /api/materials and /api/teaching-materials.
type MaterialHandler struct {
	db        *sql.DB
	saver     *upload.Saver
	validator *validation.Validator
}

// NewMaterialHandler creates a new teaching material handler
func NewMaterialHandler(store *database.PostgreSQLStore, saver *upload.Saver) *MaterialHandler {
	return &MaterialHandler{
		db:        store.DB(),
		saver:     saver,
		validator: validation.NewValidator(),
	}
}

// CreateMaterialRequest represents the create request body. The actual
// document arrives as a multipart "file" part; video-only materials
// send video_link instead.
type CreateMaterialRequest struct {
	Title        string  `json:"title" form:"title" validate:"required,min=3"`
	FacultyID    *int64  `json:"faculty_id" form:"faculty_id"`
	Department   *string `json:"department" form:"department"`
	CourseName   *string `json:"course_name" form:"course_name"`
	MaterialType *string `json:"material_type" form:"material_type"`
	VideoLink    *string `json:"video_link" form:"video_link" validate:"omitempty,url"`
	Description  *string `json:"description" form:"description"`
}

// UpdateMaterialRequest represents the partial-update request body
type UpdateMaterialRequest struct {
	Title        *string `json:"title" form:"title" validate:"omitempty,min=3"`
	FacultyID    *int64  `json:"faculty_id" form:"faculty_id"`
	Department   *string `json:"department" form:"department"`
	CourseName   *string `json:"course_name" form:"course_name"`
	MaterialType *string `json:"material_type" form:"material_type"`
	VideoLink    *string `json:"video_link" form:"video_link" validate:"omitempty,url"`
	Description  *string `json:"description" form:"description"`
}

func scanMaterial(row interface{ Scan(...interface{}) error }, m *model.TeachingMaterial) error {
	return row.Scan(
		&m.ID, &m.Title, &m.FacultyID, &m.Department, &m.CourseName,
		&m.MaterialType, &m.FileURL, &m.VideoLink, &m.Description,
		&m.CreatedBy, &m.CreatedAt, &m.UpdatedAt,
	)
}

// ListMaterials handles GET /api/materials
func (h *MaterialHandler) ListMaterials(c *fiber.Ctx) error {
	page, limit := queryHelper.ParsePagination(c.Query("page"), c.Query("limit"))

	builder := queryHelper.NewBuilder(`
		SELECT `+materialColumns+`
		FROM teaching_materials m
		WHERE 1=1`, `
		SELECT COUNT(*)
		FROM teaching_materials m
		WHERE 1=1`)

	builder.Equals("m.material_type", c.Query("material_type"))
	builder.EqualsInt("m.faculty_id", c.Query("faculty_id"))
	builder.Equals("m.department", c.Query("department"))
	if course := c.Query("course_name"); course != "" {
		builder.Raw("m.course_name ILIKE $%d", "%"+queryHelper.EscapeLike(course)+"%")
	}
	builder.Search(c.Query("search"), "m.title", "m.course_name")
	builder.OrderByExpr("m.created_at DESC")

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

	materials := []model.TeachingMaterial{}
	for rows.Next() {
		var m model.TeachingMaterial
		if err := scanMaterial(rows, &m); err != nil {
			return response.DatabaseError(c, err)
		}
		materials = append(materials, m)
	}
	if err := rows.Err(); err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Paginated(c, materials, response.CalculatePagination(page, limit, total))
}

// GetMaterial handles GET /api/materials/:id
func (h *MaterialHandler) GetMaterial(c *fiber.Ctx) error {
	var m model.TeachingMaterial
	err := scanMaterial(h.db.QueryRow(`
		SELECT `+materialColumns+`
		FROM teaching_materials m
		WHERE m.id = $1`, c.Params("id")), &m)
	if errors.Is(err, sql.ErrNoRows) {
		return response.NotFound(c, "Material not found")
	}
	if err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Success(c, m)
}

// CreateMaterial handles POST /api/materials
func (h *MaterialHandler) CreateMaterial(c *fiber.Ctx) error {
	var req CreateMaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	var fileURL *string
	if file, err := c.FormFile("file"); err == nil && file != nil {
		path, err := h.saver.Save(c, file, upload.DocumentRule)
		if err != nil {
			return response.BadRequest(c, err.Error())
		}
		fileURL = &path
	}

	if fileURL == nil && req.VideoLink == nil {
		return response.BadRequest(c, "Either a file or a video link is required")
	}

	var m model.TeachingMaterial
	err := scanMaterial(h.db.QueryRow(`
		INSERT INTO teaching_materials (title, faculty_id, department, course_name, material_type, file_url, video_link, description, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, title, faculty_id, department, course_name, material_type, file_url, video_link, description, created_by, created_at, updated_at`,
		validation.SanitizeString(req.Title), req.FacultyID, req.Department, req.CourseName,
		req.MaterialType, fileURL, req.VideoLink, req.Description, middleware.CreatorID(c),
	), &m)
	if err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Created(c, "Material uploaded successfully", m)
}

// UpdateMaterial handles PUT /api/materials/:id
func (h *MaterialHandler) UpdateMaterial(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateMaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	var fileURL *string
	if file, err := c.FormFile("file"); err == nil && file != nil {
		path, err := h.saver.Save(c, file, upload.DocumentRule)
		if err != nil {
			return response.BadRequest(c, err.Error())
		}
		fileURL = &path
	}

	query, args := queryHelper.UpdateQueryBuilder("teaching_materials",
		[]string{"title", "faculty_id", "department", "course_name", "material_type", "file_url", "video_link", "description"},
		[]interface{}{req.Title, req.FacultyID, req.Department, req.CourseName, req.MaterialType, fileURL, req.VideoLink, req.Description},
		id,
	)

	result, err := h.db.Exec(query, args...)
	if err != nil {
		return response.DatabaseError(c, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return response.NotFound(c, "Material not found")
	}

	var m model.TeachingMaterial
	if err := scanMaterial(h.db.QueryRow(`
		SELECT `+materialColumns+`
		FROM teaching_materials m
		WHERE m.id = $1`, id), &m); err != nil {
		return response.DatabaseError(c, err)
	}

	return response.SuccessWithMessage(c, "Material updated successfully", m)
}

// DeleteMaterial handles DELETE /api/materials/:id. Faculty may only
// delete their own uploads; admins may delete any.
func (h *MaterialHandler) DeleteMaterial(c *fiber.Ctx) error {
	id := c.Params("id")

	var m model.TeachingMaterial
	err := scanMaterial(h.db.QueryRow(`
		SELECT `+materialColumns+`
		FROM teaching_materials m
		WHERE m.id = $1`, id), &m)
	if errors.Is(err, sql.ErrNoRows) {
		return response.NotFound(c, "Material not found")
	}
	if err != nil {
		return response.DatabaseError(c, err)
	}

	role, _ := middleware.GetUserRole(c)
	userID, _ := middleware.GetUserID(c)
	if !middleware.CanModify(role, m.CreatedBy, userID) {
		return response.Forbidden(c, "You can only delete your own materials")
	}

	result, err := h.db.Exec(`DELETE FROM teaching_materials WHERE id = $1`, id)
	if err != nil {
		return response.DatabaseError(c, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return response.NotFound(c, "Material not found")
	}

	// Best effort: the row is already gone, so a failure here only
	// leaks a file on disk.
	if m.FileURL != nil && strings.HasPrefix(*m.FileURL, "/uploads/") {
		local := filepath.Join(h.saver.BaseDir(), strings.TrimPrefix(*m.FileURL, "/uploads/"))
		if err := os.Remove(local); err != nil && !os.IsNotExist(err) {
			log.Println("Failed to remove material file:", err)
		}
	}

	return response.Message(c, "Material deleted successfully")
}
