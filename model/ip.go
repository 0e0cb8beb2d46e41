package model

import "time"

// Patent represents a filed or granted patent.
type Patent struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	PatentNumber *string    `json:"patent_number"`
	Inventors    *string    `json:"inventors"`
	Department   *string    `json:"department"`
	Status       *string    `json:"status"`
	FilingDate   *time.Time `json:"filing_date"`
	GrantDate    *time.Time `json:"grant_date"`
	Description  *string    `json:"description"`
	FacultyID    *int64     `json:"faculty_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	FacultyName *string `json:"faculty_name,omitempty"`
}

// IPR represents an intellectual-property-rights filing (patent,
// copyright, trademark or design).
type IPR struct {
	ID                int64      `json:"id"`
	Title             string     `json:"title"`
	IPRType           *string    `json:"ipr_type"`
	ApplicationNumber *string    `json:"application_number"`
	Status            *string    `json:"status"`
	FilingDate        *time.Time `json:"filing_date"`
	PublicationDate   *time.Time `json:"publication_date"`
	GrantDate         *time.Time `json:"grant_date"`
	Inventors         *string    `json:"inventors"`
	FacultyID         *int64     `json:"faculty_id"`
	Department        *string    `json:"department"`
	Description       *string    `json:"description"`
	PDFUrl            *string    `json:"pdf_url"`
	CreatedBy         *int64     `json:"created_by,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// IPAsset represents a registered intellectual-property asset with its
// full filing lifecycle.
type IPAsset struct {
	ID                 int64      `json:"id"`
	Name               string     `json:"name"`
	Type               *string    `json:"type"`
	Owner              *string    `json:"owner"`
	Inventors          *string    `json:"inventors"`
	Department         *string    `json:"department"`
	FilingYear         *int       `json:"filing_year"`
	FilingDate         *time.Time `json:"filing_date"`
	PublishedDate      *time.Time `json:"published_date"`
	GrantedDate        *time.Time `json:"granted_date"`
	ExpiryDate         *time.Time `json:"expiry_date"`
	Status             *string    `json:"status"`
	ApplicationNumber  *string    `json:"application_number"`
	RegistrationNumber *string    `json:"registration_number"`
	Description        *string    `json:"description"`
	PDFUrl             *string    `json:"pdf_url"`
	Commercialized     bool       `json:"commercialized"`
	FacultyID          *int64     `json:"faculty_id"`
	CreatedBy          *int64     `json:"created_by,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
