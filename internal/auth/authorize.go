package auth

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/commerce-service/internal/domain"
	"github.com/spec-kit/commerce-service/internal/repository"
)

// HasRole reports whether the principal holds the role. Unauthenticated
// requests evaluate every predicate to false.
func HasRole(p *Principal, role domain.Role) bool {
	if p == nil || p.User == nil {
		return false
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Decider evaluates ownership-based access. The owner's username is resolved
// from the store at decision time rather than trusted from the token.
type Decider struct {
	users repository.UserRepository
}

// NewDecider constructs a Decider.
func NewDecider(users repository.UserRepository) *Decider {
	return &Decider{users: users}
}

// IsSelfOrRole permits the request when the principal holds the role, or when
// the principal is the user identified by ownerUserID. A failed owner lookup
// denies.
func (d *Decider) IsSelfOrRole(ctx context.Context, p *Principal, ownerUserID int64, role domain.Role) bool {
	if p == nil || p.User == nil {
		return false
	}
	if HasRole(p, role) {
		return true
	}
	owner, err := d.users.GetByID(ctx, ownerUserID)
	if err != nil {
		return false
	}
	return owner.Username == p.Username()
}

// RequireAuthenticated rejects requests without an attached principal.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		return c.Next()
	}
}

// RequireRole rejects requests whose principal lacks all of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		for _, role := range allowed {
			if HasRole(principal, role) {
				return c.Next()
			}
		}
		return fiber.NewError(http.StatusForbidden, "insufficient role")
	}
}
