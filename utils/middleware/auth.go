package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/research-portal-api/model"
	"github.com/sahilchouksey/research-portal-api/utils/auth"
	"github.com/sahilchouksey/research-portal-api/utils/response"
)

// AuthMiddleware handles JWT authentication
type AuthMiddleware struct {
	jwtManager *auth.JWTManager
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *auth.JWTManager) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
	}
}

// Required is middleware that requires a valid JWT token. The precise
// failure reason is logged for diagnostics; clients get a generic
// message so the response does not distinguish malformed from expired.
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, reason := m.authenticate(c)
		if claims == nil {
			log.Printf("auth rejected: %s %s: %s", c.Method(), c.Path(), reason)
			return response.Unauthorized(c, "Invalid or missing token")
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("user_email", claims.Email)
		c.Locals("user_role", claims.Role)
		c.Locals("claims", claims)

		return c.Next()
	}
}

// Optional is middleware that allows requests with or without a token
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, _ := m.authenticate(c)
		if claims != nil {
			c.Locals("user_id", claims.UserID)
			c.Locals("user_email", claims.Email)
			c.Locals("user_role", claims.Role)
			c.Locals("claims", claims)
		}
		return c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *fiber.Ctx) (*auth.Claims, string) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, "missing authorization header"
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, "malformed authorization header"
	}

	claims, err := m.jwtManager.ValidateToken(parts[1])
	if err != nil {
		return nil, err.Error()
	}

	return claims, ""
}

// RequireRole is the single role gate: it permits the request only when
// the authenticated role is in the allowed set. Must run after
// Required().
func (m *AuthMiddleware) RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := GetUserRole(c)
		if !ok {
			return response.Forbidden(c, "")
		}

		if !RoleAllowed(role, roles) {
			return response.Forbidden(c, "Insufficient permissions")
		}

		return c.Next()
	}
}

// RoleAllowed reports whether role is in the allowed set.
func RoleAllowed(role string, allowed []string) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}

// CanModify is the ownership predicate for resources with per-creator
// access: admins may act on any row, everyone else only on rows they
// created.
func CanModify(role string, ownerID *int64, userID uint) bool {
	if role == model.RoleAdmin {
		return true
	}
	return ownerID != nil && *ownerID == int64(userID)
}

// GetUserID extracts user ID from context
func GetUserID(c *fiber.Ctx) (uint, bool) {
	userID := c.Locals("user_id")
	if userID == nil {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

// GetUserRole extracts user role from context
func GetUserRole(c *fiber.Ctx) (string, bool) {
	role := c.Locals("user_role")
	if role == nil {
		return "", false
	}
	r, ok := role.(string)
	return r, ok
}

// GetClaims extracts full claims from context
func GetClaims(c *fiber.Ctx) (*auth.Claims, bool) {
	claims := c.Locals("claims")
	if claims == nil {
		return nil, false
	}
	claimsData, ok := claims.(*auth.Claims)
	return claimsData, ok
}

// CreatorID returns the authenticated user's id as a nullable column
// value for created_by, or nil when the request is anonymous.
func CreatorID(c *fiber.Ctx) *int64 {
	id, ok := GetUserID(c)
	if !ok {
		return nil
	}
	v := int64(id)
	return &v
}
