package model

import "time"

// Publication represents a journal or conference publication attributed
// to a faculty member.
type Publication struct {
	ID                    int64     `json:"id"`
	Title                 string    `json:"title"`
	Authors               *string   `json:"authors"`
	JournalName           *string   `json:"journal_name"`
	PublicationType       *string   `json:"publication_type"`
	Year                  *int      `json:"year"`
	Indexing              *string   `json:"indexing"`
	DOI                   *string   `json:"doi"`
	Abstract              *string   `json:"abstract"`
	NationalInternational *string   `json:"national_international"`
	FacultyID             *int64    `json:"faculty_id"`
	PDFUrl                *string   `json:"pdf_url"`
	CreatedBy             *int64    `json:"created_by,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`

	// Join extras from the faculty table.
	FacultyName *string `json:"faculty_name,omitempty"`
	Department  *string `json:"department,omitempty"`
}
