package studentproject

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

const studentProjectColumns = `sp.id, sp.title, sp.faculty_id, sp.student_names, sp.department, sp.project_type, sp.academic_year, sp.abstract, sp.pdf_url, sp.created_by, sp.created_at, sp.updated_at`

// StudentProjectHandler handles student project requests
type StudentProjectHandler struct {
	db        *sql.DB
	validator *validation.Validator
}

// NewStudentProjectHandler creates a new student project handler
func NewStudentProjectHandler(store *database.PostgreSQLStore) *StudentProjectHandler {
	return &StudentProjectHandler{
		db:        store.DB(),
		validator: validation.NewValidator(),
	}
}

// CreateStudentProjectRequest represents the create request body
type CreateStudentProjectRequest struct {
	Title        string  `json:"title" validate:"required,min=3"`
	FacultyID    *int64  `json:"faculty_id"`
	StudentNames *string `json:"student_names"`
	Department   *string `json:"department"`
	ProjectType  *string `json:"project_type"`
	AcademicYear *string `json:"academic_year"`
	Abstract     *string `json:"abstract"`
	PDFUrl       *string `json:"pdf_url"`
}

// UpdateStudentProjectRequest represents the partial-update request body
type UpdateStudentProjectRequest struct {
	Title        *string `json:"title" validate:"omitempty,min=3"`
	FacultyID    *int64  `json:"faculty_id"`
	StudentNames *string `json:"student_names"`
	Department   *string `json:"department"`
	ProjectType  *string `json:"project_type"`
	AcademicYear *string `json:"academic_year"`
	Abstract     *string `json:"abstract"`
	PDFUrl       *string `json:"pdf_url"`
}

func scanStudentProject(row interface{ Scan(...interface{}) error }, sp *model.StudentProject, withFaculty bool) error {
	dest := []interface{}{
		&sp.ID, &sp.Title, &sp.FacultyID, &sp.StudentNames, &sp.Department,
		&sp.ProjectType, &sp.AcademicYear, &sp.Abstract, &sp.PDFUrl,
		&sp.CreatedBy, &sp.CreatedAt, &sp.UpdatedAt,
	}
	if withFaculty {
		dest = append(dest, &sp.FacultyName)
	}
	return row.Scan(dest...)
}

// ListStudentProjects handles GET /api/student-projects
func (h *StudentProjectHandler) ListStudentProjects(c *fiber.Ctx) error {
	page, limit := queryHelper.ParsePagination(c.Query("page"), c.Query("limit"))

	builder := queryHelper.NewBuilder(`
		SELECT `+studentProjectColumns+`, f.name AS faculty_name
		FROM student_projects sp
		LEFT JOIN faculty f ON sp.faculty_id = f.id
		WHERE 1=1`, `
		SELECT COUNT(*)
		FROM student_projects sp
		LEFT JOIN faculty f ON sp.faculty_id = f.id
		WHERE 1=1`)

	builder.Equals("sp.project_type", c.Query("project_type"))
	builder.Equals("sp.department", c.Query("department"))
	builder.Equals("sp.academic_year", c.Query("academic_year"))
	builder.EqualsInt("sp.faculty_id", c.Query("faculty_id"))
	builder.Search(c.Query("search"), "sp.title", "sp.student_names")
	builder.OrderByExpr("sp.created_at DESC")

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

	projects := []model.StudentProject{}
	for rows.Next() {
		var sp model.StudentProject
		if err := scanStudentProject(rows, &sp, true); err != nil {
			return response.DatabaseError(c, err)
		}
		projects = append(projects, sp)
	}
	if err := rows.Err(); err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Paginated(c, projects, response.CalculatePagination(page, limit, total))
}

// GetStudentProject handles GET /api/student-projects/:id
func (h *StudentProjectHandler) GetStudentProject(c *fiber.Ctx) error {
	var sp model.StudentProject
	err := scanStudentProject(h.db.QueryRow(`
		SELECT `+studentProjectColumns+`, f.name AS faculty_name
		FROM student_projects sp
		LEFT JOIN faculty f ON sp.faculty_id = f.id
		WHERE sp.id = $1`, c.Params("id")), &sp, true)
	if errors.Is(err, sql.ErrNoRows) {
		return response.NotFound(c, "Student project not found")
	}
	if err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Success(c, sp)
}

// CreateStudentProject handles POST /api/student-projects
func (h *StudentProjectHandler) CreateStudentProject(c *fiber.Ctx) error {
	var req CreateStudentProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	var sp model.StudentProject
	err := scanStudentProject(h.db.QueryRow(`
		INSERT INTO student_projects (title, faculty_id, student_names, department, project_type, academic_year, abstract, pdf_url, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, title, faculty_id, student_names, department, project_type, academic_year, abstract, pdf_url, created_by, created_at, updated_at`,
		validation.SanitizeString(req.Title), req.FacultyID, req.StudentNames, req.Department,
		req.ProjectType, req.AcademicYear, req.Abstract, req.PDFUrl, middleware.CreatorID(c),
	), &sp, false)
	if err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Created(c, "Student project created successfully", sp)
}

// UpdateStudentProject handles PUT /api/student-projects/:id
func (h *StudentProjectHandler) UpdateStudentProject(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateStudentProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	query, args := queryHelper.UpdateQueryBuilder("student_projects",
		[]string{"title", "faculty_id", "student_names", "department", "project_type", "academic_year", "abstract", "pdf_url"},
		[]interface{}{req.Title, req.FacultyID, req.StudentNames, req.Department, req.ProjectType, req.AcademicYear, req.Abstract, req.PDFUrl},
		id,
	)

	result, err := h.db.Exec(query, args...)
	if err != nil {
		return response.DatabaseError(c, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return response.NotFound(c, "Student project not found")
	}

	var sp model.StudentProject
	if err := scanStudentProject(h.db.QueryRow(`
		SELECT `+studentProjectColumns+`, f.name AS faculty_name
		FROM student_projects sp
		LEFT JOIN faculty f ON sp.faculty_id = f.id
		WHERE sp.id = $1`, id), &sp, true); err != nil {
		return response.DatabaseError(c, err)
	}

	return response.SuccessWithMessage(c, "Student project updated successfully", sp)
}

// DeleteStudentProject handles DELETE /api/student-projects/:id
func (h *StudentProjectHandler) DeleteStudentProject(c *fiber.Ctx) error {
	result, err := h.db.Exec(`DELETE FROM student_projects WHERE id = $1`, c.Params("id"))
	if err != nil {
		return response.DatabaseError(c, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return response.NotFound(c, "Student project not found")
	}

	return response.Message(c, "Student project deleted successfully")
}
