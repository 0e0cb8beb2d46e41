package faculty

import (
	"database/sql"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/research-portal-api/database"
	"github.com/sahilchouksey/research-portal-api/model"
	"github.com/sahilchouksey/research-portal-api/utils/middleware"
	queryHelper "github.com/sahilchouksey/research-portal-api/utils/query"
	"github.com/sahilchouksey/research-portal-api/utils/response"
	"github.com/sahilchouksey/research-portal-api/utils/upload"
	"github.com/sahilchouksey/research-portal-api/utils/validation"
	"gorm.io/gorm"
)

const facultyColumns = `f.id, f.name, f.designation, f.department, f.specialization, f.bio, f.email, f.profile_image, f.created_by, f.created_at, f.updated_at`

// FacultyHandler handles faculty profile requests. The detail view
// reaches into the ORM-backed projects table by PI name, so the handler
// holds both access paths.
type FacultyHandler struct {
	db        *sql.DB
	orm       *gorm.DB
	saver     *upload.Saver
	validator *validation.Validator
}

// NewFacultyHandler creates a new faculty handler
func NewFacultyHandler(store *database.PostgreSQLStore, orm *gorm.DB, saver *upload.Saver) *FacultyHandler {
	return &FacultyHandler{
		db:        store.DB(),
		orm:       orm,
		saver:     saver,
		validator: validation.NewValidator(),
	}
}

// CreateFacultyRequest represents the request body for creating faculty
type CreateFacultyRequest struct {
	Name           string  `json:"name" form:"name" validate:"required,min=2,max=255"`
	Designation    *string `json:"designation" form:"designation"`
	Department     *string `json:"department" form:"department"`
	Specialization *string `json:"specialization" form:"specialization"`
	Bio            *string `json:"bio" form:"bio"`
	Email          *string `json:"email" form:"email" validate:"omitempty,email"`
	ProfileImage   *string `json:"profile_image" form:"profile_image"`
}

// UpdateFacultyRequest represents the request body for updating faculty
type UpdateFacultyRequest struct {
	Name           *string `json:"name" form:"name" validate:"omitempty,min=2,max=255"`
	Designation    *string `json:"designation" form:"designation"`
	Department     *string `json:"department" form:"department"`
	Specialization *string `json:"specialization" form:"specialization"`
	Bio            *string `json:"bio" form:"bio"`
	Email          *string `json:"email" form:"email" validate:"omitempty,email"`
	ProfileImage   *string `json:"profile_image" form:"profile_image"`
}

// ListFaculty handles GET /api/faculty
func (h *FacultyHandler) ListFaculty(c *fiber.Ctx) error {
	page, limit := queryHelper.ParsePagination(c.Query("page"), c.Query("limit"))

	builder := queryHelper.NewBuilder(`
		SELECT `+facultyColumns+`,
			COUNT(DISTINCT p.id) AS publications_count,
			COUNT(DISTINCT pa.id) AS patents_count
		FROM faculty f
		LEFT JOIN publications p ON f.id = p.faculty_id
		LEFT JOIN patents pa ON f.id = pa.faculty_id
		WHERE 1=1`, "")

	builder.Equals("f.department", c.Query("department"))
	builder.Search(c.Query("search"), "f.name")
	builder.GroupBy(facultyColumns)

	if c.Query("sortByPublications") == "true" {
		builder.OrderByExpr("publications_count DESC")
	} else {
		builder.OrderByExpr("f.created_at DESC")
	}

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

	faculty := []model.Faculty{}
	for rows.Next() {
		var f model.Faculty
		if err := rows.Scan(
			&f.ID, &f.Name, &f.Designation, &f.Department, &f.Specialization,
			&f.Bio, &f.Email, &f.ProfileImage, &f.CreatedBy, &f.CreatedAt, &f.UpdatedAt,
			&f.PublicationsCount, &f.PatentsCount,
		); err != nil {
			return response.DatabaseError(c, err)
		}
		faculty = append(faculty, f)
	}
	if err := rows.Err(); err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Paginated(c, faculty, response.CalculatePagination(page, limit, total))
}

// GetFaculty handles GET /api/faculty/:id and embeds the member's
// publications, patents, and funded projects.
func (h *FacultyHandler) GetFaculty(c *fiber.Ctx) error {
	id := c.Params("id")

	var f model.Faculty
	err := h.db.QueryRow(`SELECT `+facultyColumns+` FROM faculty f WHERE f.id = $1`, id).Scan(
		&f.ID, &f.Name, &f.Designation, &f.Department, &f.Specialization,
		&f.Bio, &f.Email, &f.ProfileImage, &f.CreatedBy, &f.CreatedAt, &f.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return response.NotFound(c, "Faculty not found")
	}
	if err != nil {
		return response.DatabaseError(c, err)
	}

	publications, err := h.facultyPublications(f.ID)
	if err != nil {
		return response.DatabaseError(c, err)
	}

	patents, err := h.facultyPatents(f.ID)
	if err != nil {
		return response.DatabaseError(c, err)
	}

	// Funded projects are matched by principal investigator name.
	var projects []model.ResearchProject
	if err := h.orm.
		Where("principal_investigator = ? AND is_deleted = ?", f.Name, false).
		Order("start_date DESC").
		Find(&projects).Error; err != nil {
		return response.DatabaseError(c, err)
	}
	now := time.Now()
	for i := range projects {
		projects[i].DeriveStatus(now)
	}

	return response.Success(c, model.FacultyProfile{
		Faculty:      f,
		Publications: publications,
		Patents:      patents,
		Projects:     projects,
	})
}

func (h *FacultyHandler) facultyPublications(facultyID int64) ([]model.Publication, error) {
	rows, err := h.db.Query(`
		SELECT id, title, authors, journal_name, publication_type, year, indexing, doi,
			abstract, national_international, faculty_id, pdf_url, created_by, created_at, updated_at
		FROM publications WHERE faculty_id = $1 ORDER BY year DESC`, facultyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	publications := []model.Publication{}
	for rows.Next() {
		var p model.Publication
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Authors, &p.JournalName, &p.PublicationType, &p.Year,
			&p.Indexing, &p.DOI, &p.Abstract, &p.NationalInternational, &p.FacultyID,
			&p.PDFUrl, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		publications = append(publications, p)
	}
	return publications, rows.Err()
}

func (h *FacultyHandler) facultyPatents(facultyID int64) ([]model.Patent, error) {
	rows, err := h.db.Query(`
		SELECT id, title, patent_number, inventors, department, status, filing_date,
			grant_date, description, faculty_id, created_at, updated_at
		FROM patents WHERE faculty_id = $1 ORDER BY filing_date DESC`, facultyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	patents := []model.Patent{}
	for rows.Next() {
		var p model.Patent
		if err := rows.Scan(
			&p.ID, &p.Title, &p.PatentNumber, &p.Inventors, &p.Department, &p.Status,
			&p.FilingDate, &p.GrantDate, &p.Description, &p.FacultyID, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		patents = append(patents, p)
	}
	return patents, rows.Err()
}

// CreateFaculty handles POST /api/faculty
func (h *FacultyHandler) CreateFaculty(c *fiber.Ctx) error {
	var req CreateFacultyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	profileImage := req.ProfileImage
	if file, err := c.FormFile("profile_image"); err == nil && file != nil {
		path, err := h.saver.Save(c, file, upload.ImageRule)
		if err != nil {
			return response.BadRequest(c, err.Error())
		}
		profileImage = &path
	}

	var f model.Faculty
	err := h.db.QueryRow(`
		INSERT INTO faculty (name, designation, department, specialization, bio, email, profile_image, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+bareFacultyColumns(),
		validation.SanitizeString(req.Name), req.Designation, req.Department,
		req.Specialization, req.Bio, req.Email, profileImage, middleware.CreatorID(c),
	).Scan(
		&f.ID, &f.Name, &f.Designation, &f.Department, &f.Specialization,
		&f.Bio, &f.Email, &f.ProfileImage, &f.CreatedBy, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Created(c, "Faculty created successfully", f)
}

// UpdateFaculty handles PUT /api/faculty/:id with partial semantics:
// omitted fields keep their stored values.
func (h *FacultyHandler) UpdateFaculty(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateFacultyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	profileImage := req.ProfileImage
	if file, err := c.FormFile("profile_image"); err == nil && file != nil {
		path, err := h.saver.Save(c, file, upload.ImageRule)
		if err != nil {
			return response.BadRequest(c, err.Error())
		}
		profileImage = &path
	}

	query, args := queryHelper.UpdateQueryBuilder("faculty",
		[]string{"name", "designation", "department", "specialization", "bio", "email", "profile_image"},
		[]interface{}{req.Name, req.Designation, req.Department, req.Specialization, req.Bio, req.Email, profileImage},
		id,
	)

	result, err := h.db.Exec(query, args...)
	if err != nil {
		return response.DatabaseError(c, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return response.NotFound(c, "Faculty not found")
	}

	var f model.Faculty
	err = h.db.QueryRow(`SELECT `+facultyColumns+` FROM faculty f WHERE f.id = $1`, id).Scan(
		&f.ID, &f.Name, &f.Designation, &f.Department, &f.Specialization,
		&f.Bio, &f.Email, &f.ProfileImage, &f.CreatedBy, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return response.DatabaseError(c, err)
	}

	return response.SuccessWithMessage(c, "Faculty updated successfully", f)
}

// DeleteFaculty handles DELETE /api/faculty/:id
func (h *FacultyHandler) DeleteFaculty(c *fiber.Ctx) error {
	result, err := h.db.Exec(`DELETE FROM faculty WHERE id = $1`, c.Params("id"))
	if err != nil {
		return response.DatabaseError(c, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return response.NotFound(c, "Faculty not found")
	}

	return response.Message(c, "Faculty deleted successfully")
}

func bareFacultyColumns() string {
	return `id, name, designation, department, specialization, bio, email, profile_image, created_by, created_at, updated_at`
}
