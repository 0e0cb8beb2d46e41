package publication

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

const publicationColumns = `p.id, p.title, p.authors, p.journal_name, p.publication_type, p.year, p.indexing, p.doi, p.abstract, p.national_international, p.faculty_id, p.pdf_url, p.created_by, p.created_at, p.updated_at`

// PublicationHandler handles publication requests
type PublicationHandler struct {
	db        *sql.DB
	validator *validation.Validator
}

// NewPublicationHandler creates a new publication handler
func NewPublicationHandler(store *database.PostgreSQLStore) *PublicationHandler {
	return &PublicationHandler{
		db:        store.DB(),
		validator: validation.NewValidator(),
	}
}

// CreatePublicationRequest represents the create request body
type CreatePublicationRequest struct {
	Title                 string  `json:"title" validate:"required,min=3"`
	Authors               *string `json:"authors"`
	JournalName           *string `json:"journal_name"`
	PublicationType       *string `json:"publication_type"`
	Year                  *int    `json:"year" validate:"omitempty,gte=1900,lte=2100"`
	Indexing              *string `json:"indexing"`
	DOI                   *string `json:"doi"`
	Abstract              *string `json:"abstract"`
	NationalInternational *string `json:"national_international"`
	FacultyID             *int64  `json:"faculty_id"`
	PDFUrl                *string `json:"pdf_url"`
}

// UpdatePublicationRequest represents the partial-update request body
type UpdatePublicationRequest struct {
	Title                 *string `json:"title" validate:"omitempty,min=3"`
	Authors               *string `json:"authors"`
	JournalName           *string `json:"journal_name"`
	PublicationType       *string `json:"publication_type"`
	Year                  *int    `json:"year" validate:"omitempty,gte=1900,lte=2100"`
	Indexing              *string `json:"indexing"`
	DOI                   *string `json:"doi"`
	Abstract              *string `json:"abstract"`
	NationalInternational *string `json:"national_international"`
	FacultyID             *int64  `json:"faculty_id"`
	PDFUrl                *string `json:"pdf_url"`
}

func scanPublication(row interface{ Scan(...interface{}) error }, p *model.Publication, withFaculty bool) error {
	dest := []interface{}{
		&p.ID, &p.Title, &p.Authors, &p.JournalName, &p.PublicationType, &p.Year,
		&p.Indexing, &p.DOI, &p.Abstract, &p.NationalInternational, &p.FacultyID,
		&p.PDFUrl, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	}
	if withFaculty {
		dest = append(dest, &p.FacultyName, &p.Department)
	}
	return row.Scan(dest...)
}

// ListPublications handles GET /api/publications
func (h *PublicationHandler) ListPublications(c *fiber.Ctx) error {
	page, limit := queryHelper.ParsePagination(c.Query("page"), c.Query("limit"))

	builder := queryHelper.NewBuilder(`
		SELECT `+publicationColumns+`, f.name AS faculty_name, f.department
		FROM publications p
		LEFT JOIN faculty f ON p.faculty_id = f.id
		WHERE 1=1`, `
		SELECT COUNT(*)
		FROM publications p
		LEFT JOIN faculty f ON p.faculty_id = f.id
		WHERE 1=1`)

	builder.EqualsInt("p.year", c.Query("year"))
	builder.Equals("p.publication_type", c.Query("publication_type"))
	builder.Equals("f.department", c.Query("department"))
	builder.Equals("p.indexing", c.Query("indexing"))
	builder.EqualsInt("p.faculty_id", c.Query("faculty_id"))
	builder.Search(c.Query("search"), "p.title", "p.authors")
	builder.OrderByExpr("p.year DESC, p.created_at DESC")

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

	publications := []model.Publication{}
	for rows.Next() {
		var p model.Publication
		if err := scanPublication(rows, &p, true); err != nil {
			return response.DatabaseError(c, err)
		}
		publications = append(publications, p)
	}
	if err := rows.Err(); err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Paginated(c, publications, response.CalculatePagination(page, limit, total))
}

// GetPublication handles GET /api/publications/:id
func (h *PublicationHandler) GetPublication(c *fiber.Ctx) error {
	var p model.Publication
	err := scanPublication(h.db.QueryRow(`
		SELECT `+publicationColumns+`, f.name AS faculty_name, f.department
		FROM publications p
		LEFT JOIN faculty f ON p.faculty_id = f.id
		WHERE p.id = $1`, c.Params("id")), &p, true)
	if errors.Is(err, sql.ErrNoRows) {
		return response.NotFound(c, "Publication not found")
	}
	if err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Success(c, p)
}

// CreatePublication handles POST /api/publications
func (h *PublicationHandler) CreatePublication(c *fiber.Ctx) error {
	var req CreatePublicationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	var p model.Publication
	err := scanPublication(h.db.QueryRow(`
		INSERT INTO publications
			(title, authors, journal_name, publication_type, year, indexing, doi, abstract, national_international, faculty_id, pdf_url, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, title, authors, journal_name, publication_type, year, indexing, doi, abstract, national_international, faculty_id, pdf_url, created_by, created_at, updated_at`,
		validation.SanitizeString(req.Title), req.Authors, req.JournalName, req.PublicationType,
		req.Year, req.Indexing, req.DOI, req.Abstract, req.NationalInternational,
		req.FacultyID, req.PDFUrl, middleware.CreatorID(c),
	), &p, false)
	if err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Created(c, "Publication created successfully", p)
}

// UpdatePublication handles PUT /api/publications/:id
func (h *PublicationHandler) UpdatePublication(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdatePublicationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	query, args := queryHelper.UpdateQueryBuilder("publications",
		[]string{"title", "authors", "journal_name", "publication_type", "year", "indexing", "doi", "abstract", "national_international", "faculty_id", "pdf_url"},
		[]interface{}{req.Title, req.Authors, req.JournalName, req.PublicationType, req.Year, req.Indexing, req.DOI, req.Abstract, req.NationalInternational, req.FacultyID, req.PDFUrl},
		id,
	)

	result, err := h.db.Exec(query, args...)
	if err != nil {
		return response.DatabaseError(c, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return response.NotFound(c, "Publication not found")
	}

	var p model.Publication
	if err := scanPublication(h.db.QueryRow(`
		SELECT `+publicationColumns+`, f.name AS faculty_name, f.department
		FROM publications p
		LEFT JOIN faculty f ON p.faculty_id = f.id
		WHERE p.id = $1`, id), &p, true); err != nil {
		return response.DatabaseError(c, err)
	}

	return response.SuccessWithMessage(c, "Publication updated successfully", p)
}

// DeletePublication handles DELETE /api/publications/:id
func (h *PublicationHandler) DeletePublication(c *fiber.Ctx) error {
	result, err := h.db.Exec(`DELETE FROM publications WHERE id = $1`, c.Params("id"))
	if err != nil {
		return response.DatabaseError(c, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return response.NotFound(c, "Publication not found")
	}

	return response.Message(c, "Publication deleted successfully")
}
