package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/commerce-service/internal/domain"
)

// newInterceptorApp wires the interceptor in front of a probe route that
// reports whether a principal was attached.
func newInterceptorApp(tokens *TokenManager, store *stubUserStore) *fiber.App {
	interceptor := NewInterceptor(tokens, store, zap.NewNop())

	app := fiber.New()
	app.Get("/probe", interceptor.Handle, func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return c.SendString("anonymous")
		}
		return c.SendString(principal.Username())
	})
	return app
}

func probe(t *testing.T, app *fiber.App, authorization string) (int, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authorization != "" {
		req.Header.Set(fiber.HeaderAuthorization, authorization)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	buf := make([]byte, 64)
	n, _ := resp.Body.Read(buf)
	return resp.StatusCode, string(buf[:n])
}

func TestInterceptorAttachesPrincipal(t *testing.T) {
	store := newStubUserStore()
	store.add(domain.User{Username: "alice", Email: "alice@corp.com", Roles: []domain.Role{domain.RoleUser}, Enabled: true})
	tokens := NewTokenManager("test-secret", time.Hour)

	token, _, err := tokens.Issue("alice", nil)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	status, body := probe(t, newInterceptorApp(tokens, store), "Bearer "+token)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if body != "alice" {
		t.Errorf("principal = %q, want alice", body)
	}
}

// Every rejected credential must leave the request anonymous and continue the
// chain. No case here may surface an error status from the interceptor.
func TestInterceptorFailsOpen(t *testing.T) {
	store := newStubUserStore()
	store.add(domain.User{Username: "alice", Email: "alice@corp.com", Roles: []domain.Role{domain.RoleUser}, Enabled: true})
	store.add(domain.User{Username: "dora", Email: "dora@corp.com", Roles: []domain.Role{domain.RoleUser}, Enabled: false})

	tokens := NewTokenManager("test-secret", time.Hour)

	issuedAt := time.Now().Truncate(time.Second)
	expiredIssuer := NewTokenManager("test-secret", time.Minute)
	expiredIssuer.now = fixedClock(issuedAt.Add(-2 * time.Minute))
	expiredToken, _, err := expiredIssuer.Issue("alice", nil)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	foreignIssuer := NewTokenManager("other-secret", time.Hour)
	foreignToken, _, err := foreignIssuer.Issue("alice", nil)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	ghostToken, _, err := tokens.Issue("ghost", nil)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	disabledToken, _, err := tokens.Issue("dora", nil)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	cases := []struct {
		name          string
		authorization string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic YWxpY2U6cHc="},
		{"malformed header", "Bearer"},
		{"garbage token", "Bearer not.a.token"},
		{"expired token", "Bearer " + expiredToken},
		{"foreign signature", "Bearer " + foreignToken},
		{"deleted subject", "Bearer " + ghostToken},
		{"disabled account", "Bearer " + disabledToken},
	}

	app := newInterceptorApp(tokens, store)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := probe(t, app, tc.authorization)
			if status != http.StatusOK {
				t.Fatalf("status = %d, want 200", status)
			}
			if body != "anonymous" {
				t.Errorf("principal = %q, want anonymous", body)
			}
		})
	}
}

func TestInterceptorFailsOpenOnStoreError(t *testing.T) {
	store := newStubUserStore()
	store.failed = errDatabaseDown
	tokens := NewTokenManager("test-secret", time.Hour)

	token, _, err := tokens.Issue("alice", nil)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	status, body := probe(t, newInterceptorApp(tokens, store), "Bearer "+token)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if body != "anonymous" {
		t.Errorf("principal = %q, want anonymous", body)
	}
}
