package model

import (
	"time"
)

// Derived project lifecycle stages. These values are computed from the
// project's date range and are never written to the database.
const (
	StatusUpcoming  = "upcoming"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
)

// ResearchProject represents a funded research project. Rows are
// soft-deleted through the IsDeleted flag rather than removed.
type ResearchProject struct {
	ID                      uint       `gorm:"primaryKey" json:"id"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
	Title                   string     `gorm:"not null" json:"title"`
	PrincipalInvestigator   *string    `json:"principal_investigator"`
	CoPrincipalInvestigator *string    `json:"co_principal_investigator"`
	Department              *string    `gorm:"index" json:"department"`
	FundingAgency           *string    `json:"funding_agency"`
	AgencyScientist         *string    `json:"agency_scientist"`
	FileNumber              *string    `json:"file_number"`
	SanctionedAmount        *float64   `json:"sanctioned_amount"`
	StartDate               *time.Time `json:"start_date"`
	EndDate                 *time.Time `json:"end_date"`
	Objectives              *string    `json:"objectives"`
	Deliverables            *string    `json:"deliverables"`
	Outcomes                *string    `json:"outcomes"`
	PDFUrl                  *string    `gorm:"column:pdf_url" json:"pdf_url"`
	IsDeleted               bool       `gorm:"default:false;index" json:"-"`
	CreatedBy               *uint      `json:"created_by,omitempty"`

	// Derived from StartDate/EndDate on every read path, never persisted.
	Status string `gorm:"-" json:"status"`
}

// ProjectStatus derives a project's lifecycle stage from its date range.
// A project with either date missing has not been scheduled yet and is
// reported as upcoming. Boundary instants count as ongoing.
func ProjectStatus(start, end *time.Time, now time.Time) string {
	if start == nil || end == nil {
		return StatusUpcoming
	}
	if now.Before(*start) {
		return StatusUpcoming
	}
	if now.After(*end) {
		return StatusCompleted
	}
	return StatusOngoing
}

// DeriveStatus stamps the computed status onto the project.
func (p *ResearchProject) DeriveStatus(now time.Time) {
	p.Status = ProjectStatus(p.StartDate, p.EndDate, now)
}

// IsValidStatus reports whether s names one of the derived stages.
func IsValidStatus(s string) bool {
	return s == StatusUpcoming || s == StatusOngoing || s == StatusCompleted
}
