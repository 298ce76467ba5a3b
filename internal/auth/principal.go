package auth

import (
	"errors"

	"github.com/Giridhar-07/civitrack-app/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Principal is the authenticated caller, carried explicitly into every
// service call instead of living in ambient request state.
type Principal struct {
	ID   uuid.UUID
	Role string
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// FromContext extracts the principal from the verified JWT the middleware
// stored in Fiber locals.
func FromContext(c *fiber.Ctx) (Principal, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return Principal{}, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return Principal{}, errors.New("missing sub claim")
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return Principal{}, err
	}

	role, _ := claims["role"].(string)
	if role == "" {
		role = models.RoleUser
	}

	return Principal{ID: id, Role: role}, nil
}
