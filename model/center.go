package model

import (
	"time"

	"github.com/lib/pq"
)

// Lab represents a departmental research lab.
type Lab struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	Department      *string        `json:"department"`
	Head            *string        `json:"head"`
	Description     *string        `json:"description"`
	FocusAreas      pq.StringArray `json:"focus_areas"`
	EstablishedYear *int           `json:"established_year"`
	ImageURL        *string        `json:"image_url"`
	CreatedBy       *int64         `json:"created_by,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// ResearchCenter represents an institute-level research center.
type ResearchCenter struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	Description     *string        `json:"description"`
	Head            *string        `json:"head"`
	Department      *string        `json:"department"`
	EstablishedYear *int           `json:"established_year"`
	FocusAreas      pq.StringArray `json:"focus_areas"`
	Facilities      *string        `json:"facilities"`
	ImageURL        *string        `json:"image_url"`
	WebsiteURL      *string        `json:"website_url"`
	CreatedBy       *int64         `json:"created_by,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
