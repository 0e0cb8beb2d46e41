package model

import "time"

// Award represents a recognition received by a faculty member.
type Award struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	FacultyID      *int64     `json:"faculty_id"`
	AwardType      *string    `json:"award_type"`
	AwardedBy      *string    `json:"awarded_by"`
	Year           *int       `json:"year"`
	DateReceived   *time.Time `json:"date_received"`
	Description    *string    `json:"description"`
	CertificateURL *string    `json:"certificate_url"`
	CreatedBy      *int64     `json:"created_by,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	FacultyName *string `json:"faculty_name,omitempty"`
}

// StudentProject represents a student project guided by a faculty member.
type StudentProject struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	FacultyID    *int64    `json:"faculty_id"`
	StudentNames *string   `json:"student_names"`
	Department   *string   `json:"department"`
	ProjectType  *string   `json:"project_type"`
	AcademicYear *string   `json:"academic_year"`
	Abstract     *string   `json:"abstract"`
	PDFUrl       *string   `json:"pdf_url"`
	CreatedBy    *int64    `json:"created_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	FacultyName *string `json:"faculty_name,omitempty"`
}
