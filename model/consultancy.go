package model

import "time"

// Consultancy represents a consultancy engagement with an external
// client. Unlike research projects its status is a stored string, not
// derived from the date range.
type Consultancy struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	FacultyID    *int64     `json:"faculty_id"`
	ClientName   *string    `json:"client_name"`
	Department   *string    `json:"department"`
	AmountEarned *float64   `json:"amount_earned"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Description  *string    `json:"description"`
	Status       *string    `json:"status"`
	CreatedBy    *int64     `json:"created_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	FacultyName       *string `json:"faculty_name,omitempty"`
	FacultyDepartment *string `json:"faculty_department,omitempty"`
}
