package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func datePtr(t time.Time) *time.Time { return &t }

func TestProjectStatus(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	past := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	future := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start *time.Time
		end   *time.Time
		want  string
	}{
		{"no dates", nil, nil, StatusUpcoming},
		{"missing end", datePtr(past), nil, StatusUpcoming},
		{"missing start", nil, datePtr(future), StatusUpcoming},
		{"before start", datePtr(future), datePtr(future.AddDate(1, 0, 0)), StatusUpcoming},
		{"within range", datePtr(past), datePtr(future), StatusOngoing},
		{"after end", datePtr(past.AddDate(-2, 0, 0)), datePtr(past), StatusCompleted},
		{"now equals start", datePtr(now), datePtr(future), StatusOngoing},
		{"now equals end", datePtr(past), datePtr(now), StatusOngoing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProjectStatus(tt.start, tt.end, now))
		})
	}
}

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	p := ResearchProject{
		StartDate: datePtr(now.AddDate(0, -1, 0)),
		EndDate:   datePtr(now.AddDate(0, 1, 0)),
	}
	p.DeriveStatus(now)
	assert.Equal(t, StatusOngoing, p.Status)
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus(StatusUpcoming))
	assert.True(t, IsValidStatus(StatusOngoing))
	assert.True(t, IsValidStatus(StatusCompleted))
	assert.False(t, IsValidStatus(""))
	assert.False(t, IsValidStatus("finished"))
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RoleAdmin))
	assert.True(t, IsValidRole(RoleFaculty))
	assert.True(t, IsValidRole(RoleStudent))
	assert.True(t, IsValidRole(RolePublic))
	assert.False(t, IsValidRole("superuser"))
}
