package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePagination(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		total     int64
		wantPages int
	}{
		{"exact multiple", 1, 10, 100, 10},
		{"remainder rounds up", 1, 10, 101, 11},
		{"single partial page", 1, 10, 3, 1},
		{"empty", 1, 10, 0, 0},
		{"limit one", 2, 1, 5, 5},
		{"bad page clamps", 0, 10, 50, 5},
		{"bad limit clamps", 1, 0, 50, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := CalculatePagination(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.total, meta.Total)
			assert.Equal(t, tt.wantPages, meta.TotalPages)
		})
	}
}
