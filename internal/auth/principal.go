package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/commerce-service/internal/domain"
)

const principalKey = "auth_principal"

// Principal is the per-request authenticated identity. It is derived from a
// fresh store read, lives only for the request and is never persisted.
type Principal struct {
	User  *domain.User
	Roles []domain.Role
}

// Username returns the principal's account name.
func (p *Principal) Username() string {
	if p == nil || p.User == nil {
		return ""
	}
	return p.User.Username
}

// PrincipalFromContext retrieves the authenticated identity, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

func attachPrincipal(c *fiber.Ctx, p *Principal) {
	c.Locals(principalKey, p)
}
