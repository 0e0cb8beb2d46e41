package ipasset

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

const ipAssetColumns = `a.id, a.name, a.type, a.owner, a.inventors, a.department, a.filing_year, a.filing_date, a.published_date, a.granted_date, a.expiry_date, a.status, a.application_number, a.registration_number, a.description, a.pdf_url, a.commercialized, a.faculty_id, a.created_by, a.created_at, a.updated_at`

// IPAssetHandler handles IP asset requests
type IPAssetHandler struct {
	db        *sql.DB
	validator *validation.Validator
}

// NewIPAssetHandler creates a new IP asset handler
func NewIPAssetHandler(store *database.PostgreSQLStore) *IPAssetHandler {
	return &IPAssetHandler{
		db:        store.DB(),
		validator: validation.NewValidator(),
	}
}

// CreateIPAssetRequest represents the create request body
type CreateIPAssetRequest struct {
	Name               string  `json:"name" validate:"required,min=3"`
	Type               *string `json:"type"`
	Owner              *string `json:"owner"`
	Inventors          *string `json:"inventors"`
	Department         *string `json:"department"`
	FilingYear         *int    `json:"filing_year"`
	FilingDate         *string `json:"filing_date"`
	PublishedDate      *string `json:"published_date"`
	GrantedDate        *string `json:"granted_date"`
	ExpiryDate         *string `json:"expiry_date"`
	Status             *string `json:"status"`
	ApplicationNumber  *string `json:"application_number"`
	RegistrationNumber *string `json:"registration_number"`
	Description        *string `json:"description"`
	PDFUrl             *string `json:"pdf_url"`
	Commercialized     *bool   `json:"commercialized"`
	FacultyID          *int64  `json:"faculty_id"`
}

// UpdateIPAssetRequest represents the partial-update request body
type UpdateIPAssetRequest struct {
	Name               *string `json:"name" validate:"omitempty,min=3"`
	Type               *string `json:"type"`
	Owner              *string `json:"owner"`
	Inventors          *string `json:"inventors"`
	Department         *string `json:"department"`
	FilingYear         *int    `json:"filing_year"`
	FilingDate         *string `json:"filing_date"`
	PublishedDate      *string `json:"published_date"`
	GrantedDate        *string `json:"granted_date"`
	ExpiryDate         *string `json:"expiry_date"`
	Status             *string `json:"status"`
	ApplicationNumber  *string `json:"application_number"`
	RegistrationNumber *string `json:"registration_number"`
	Description        *string `json:"description"`
	PDFUrl             *string `json:"pdf_url"`
	Commercialized     *bool   `json:"commercialized"`
	FacultyID          *int64  `json:"faculty_id"`
}

func scanIPAsset(row interface{ Scan(...interface{}) error }, a *model.IPAsset) error {
	return row.Scan(
		&a.ID, &a.Name, &a.Type, &a.Owner, &a.Inventors, &a.Department,
		&a.FilingYear, &a.FilingDate, &a.PublishedDate, &a.GrantedDate, &a.ExpiryDate,
		&a.Status, &a.ApplicationNumber, &a.RegistrationNumber, &a.Description,
		&a.PDFUrl, &a.Commercialized, &a.FacultyID, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt,
	)
}

// ListIPAssets handles GET /api/ip-assets
func (h *IPAssetHandler) ListIPAssets(c *fiber.Ctx) error {
	page, limit := queryHelper.ParsePagination(c.Query("page"), c.Query("limit"))

	builder := queryHelper.NewBuilder(`
		SELECT `+ipAssetColumns+`
		FROM ip_assets a
		WHERE 1=1`, `
		SELECT COUNT(*)
		FROM ip_assets a
		WHERE 1=1`)

	builder.Equals("a.type", c.Query("type"))
	builder.Equals("a.status", c.Query("status"))
	builder.Equals("a.department", c.Query("department"))
	builder.EqualsInt("a.faculty_id", c.Query("faculty_id"))
	builder.EqualsInt("a.filing_year", c.Query("filing_year"))
	if commercialized := c.Query("commercialized"); commercialized == "true" || commercialized == "false" {
		builder.Raw("a.commercialized = $%d", commercialized == "true")
	}
	builder.Search(c.Query("search"), "a.name", "a.inventors", "a.application_number")
	builder.OrderByExpr("a.filing_date DESC NULLS LAST, a.created_at DESC")

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

	assets := []model.IPAsset{}
	for rows.Next() {
		var a model.IPAsset
		if err := scanIPAsset(rows, &a); err != nil {
			return response.DatabaseError(c, err)
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Paginated(c, assets, response.CalculatePagination(page, limit, total))
}

// GetIPAsset handles GET /api/ip-assets/:id
func (h *IPAssetHandler) GetIPAsset(c *fiber.Ctx) error {
	var a model.IPAsset
	err := scanIPAsset(h.db.QueryRow(`
		SELECT `+ipAssetColumns+`
		FROM ip_assets a
		WHERE a.id = $1`, c.Params("id")), &a)
	if errors.Is(err, sql.ErrNoRows) {
		return response.NotFound(c, "IP asset not found")
	}
	if err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Success(c, a)
}

// CreateIPAsset handles POST /api/ip-assets
func (h *IPAssetHandler) CreateIPAsset(c *fiber.Ctx) error {
	var req CreateIPAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	commercialized := false
	if req.Commercialized != nil {
		commercialized = *req.Commercialized
	}

	var a model.IPAsset
	err := scanIPAsset(h.db.QueryRow(`
		INSERT INTO ip_assets
			(name, type, owner, inventors, department, filing_year, filing_date, published_date, granted_date, expiry_date, status, application_number, registration_number, description, pdf_url, commercialized, faculty_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id, name, type, owner, inventors, department, filing_year, filing_date, published_date, granted_date, expiry_date, status, application_number, registration_number, description, pdf_url, commercialized, faculty_id, created_by, created_at, updated_at`,
		validation.SanitizeString(req.Name), req.Type, req.Owner, req.Inventors, req.Department,
		req.FilingYear, req.FilingDate, req.PublishedDate, req.GrantedDate, req.ExpiryDate,
		req.Status, req.ApplicationNumber, req.RegistrationNumber, req.Description, req.PDFUrl,
		commercialized, req.FacultyID, middleware.CreatorID(c),
	), &a)
	if err != nil {
		return response.DatabaseError(c, err)
	}

	return response.Created(c, "IP asset created successfully", a)
}

// UpdateIPAsset handles PUT /api/ip-assets/:id
func (h *IPAssetHandler) UpdateIPAsset(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateIPAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	query, args := queryHelper.UpdateQueryBuilder("ip_assets",
		[]string{"name", "type", "owner", "inventors", "department", "filing_year", "filing_date", "published_date", "granted_date", "expiry_date", "status", "application_number", "registration_number", "description", "pdf_url", "commercialized", "faculty_id"},
		[]interface{}{req.Name, req.Type, req.Owner, req.Inventors, req.Department, req.FilingYear, req.FilingDate, req.PublishedDate, req.GrantedDate, req.ExpiryDate, req.Status, req.ApplicationNumber, req.RegistrationNumber, req.Description, req.PDFUrl, req.Commercialized, req.FacultyID},
		id,
	)

	result, err := h.db.Exec(query, args...)
	if err != nil {
		return response.DatabaseError(c, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return response.NotFound(c, "IP asset not found")
	}

	var a model.IPAsset
	if err := scanIPAsset(h.db.QueryRow(`
		SELECT `+ipAssetColumns+`
		FROM ip_assets a
		WHERE a.id = $1`, id), &a); err != nil {
		return response.DatabaseError(c, err)
	}

	return response.SuccessWithMessage(c, "IP asset updated successfully", a)
}

// DeleteIPAsset handles DELETE /api/ip-assets/:id
func (h *IPAssetHandler) DeleteIPAsset(c *fiber.Ctx) error {
	result, err := h.db.Exec(`DELETE FROM ip_assets WHERE id = $1`, c.Params("id"))
	if err != nil {
		return response.DatabaseError(c, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return response.NotFound(c, "IP asset not found")
	}

	return response.Message(c, "IP asset deleted successfully")
}
