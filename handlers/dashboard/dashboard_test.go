package dashboard

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYearsWindowClampsParameter(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  int
	}{
		{"absent falls back", "", 5},
		{"valid value", "years=10", 10},
		{"non-numeric falls back", "years=abc", 5},
		{"zero falls back", "years=0", 5},
		{"negative falls back", "years=-3", 5},
		{"over the cap falls back", "years=200", 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got int
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				got = yearsWindow(c, 5)
				return c.SendStatus(fiber.StatusOK)
			})

			target := "/"
			if tc.query != "" {
				target += "?" + tc.query
			}
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
			require.NoError(t, err)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWindowStartOpensTheEarliestYear(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 30, 0, 0, time.UTC)

	since := windowStart(now, 5)

	assert.Equal(t, time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC), since)
	// The window bounds whole calendar years, not a rolling period.
	assert.Equal(t, 2021, since.Year())
	assert.Equal(t, time.January, since.Month())
}
