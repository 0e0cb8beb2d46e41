package response

import (
	"database/sql"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// DatabaseError classifies a database failure into the API error
// taxonomy. The full error is logged server-side; clients only ever see
// a generic message for unexpected failures.
func DatabaseError(c *fiber.Ctx, err error) error {
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(c, "")
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return Conflict(c, "Resource already exists")
		case "23503": // foreign_key_violation
			return BadRequest(c, "Invalid reference to related resource")
		case "23502": // not_null_violation
			return BadRequest(c, "Required field is missing")
		}
	}

	log.Println("database error:", err)
	return InternalServerError(c, "")
}
