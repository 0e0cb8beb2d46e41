package model

import "time"

// TeachingMaterial represents course material uploaded by a faculty
// member. CreatedBy backs the ownership check on delete.
type TeachingMaterial struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	FacultyID    *int64    `json:"faculty_id"`
	Department   *string   `json:"department"`
	CourseName   *string   `json:"course_name"`
	MaterialType *string   `json:"material_type"`
	FileURL      *string   `json:"file_url"`
	VideoLink    *string   `json:"video_link"`
	Description  *string   `json:"description"`
	CreatedBy    *int64    `json:"created_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
