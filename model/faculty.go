package model

import "time"

// Faculty represents a faculty member profile. Publications, patents and
// auxiliary records reference faculty by id; funded projects match by the
// principal investigator's name.
type Faculty struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Designation    *string   `json:"designation"`
	Department     *string   `json:"department"`
	Specialization *string   `json:"specialization"`
	Bio            *string   `json:"bio"`
	Email          *string   `json:"email"`
	ProfileImage   *string   `json:"profile_image"`
	CreatedBy      *int64    `json:"created_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Populated by the list query's joins, absent elsewhere.
	PublicationsCount *int64 `json:"publications_count,omitempty"`
	PatentsCount      *int64 `json:"patents_count,omitempty"`
}

// FacultyProfile is the detail payload with related records embedded.
type FacultyProfile struct {
	Faculty
	Publications []Publication     `json:"publications"`
	Patents      []Patent          `json:"patents"`
	Projects     []ResearchProject `json:"projects"`
}
