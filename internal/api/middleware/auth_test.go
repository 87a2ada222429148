package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/davsiu2102/clinical-records-api/internal/core/domain"
	"github.com/davsiu2102/clinical-records-api/internal/pkg/token"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	s.users[user.Username] = user
	return user, nil
}

func (s *stubUserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, ok := s.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func newTestCodec(t *testing.T) *token.Codec {
	t.Helper()
	codec, err := token.NewCodec("test-secret", 30*time.Minute)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	return codec
}

func run(t *testing.T, codec *token.Codec, repo *stubUserRepo, authHeader string) (*httptest.ResponseRecorder, bool, *domain.User) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	var resolved *domain.User
	handler := Auth(codec, repo)(func(c echo.Context) error {
		called = true
		resolved, _ = c.Get(UserContextKey).(*domain.User)
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called, resolved
}

func TestAuth_ValidToken(t *testing.T) {
	codec := newTestCodec(t)
	repo := &stubUserRepo{users: map[string]*domain.User{
		"alice": {ID: 1, Username: "alice", Email: "alice@x.com", Active: true},
	}}

	tkn, err := codec.Issue("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	rec, called, user := run(t, codec, repo, "Bearer "+tkn)
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if user == nil || user.Username != "alice" {
		t.Fatalf("expected resolved user in context, got %+v", user)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	codec := newTestCodec(t)
	repo := &stubUserRepo{users: map[string]*domain.User{}}

	rec, called, _ := run(t, codec, repo, "")
	if called {
		t.Fatalf("next must not be called")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if rec.Header().Get(echo.HeaderWWWAuthenticate) != "Bearer" {
		t.Fatalf("expected WWW-Authenticate: Bearer hint")
	}
}

func TestAuth_WrongScheme(t *testing.T) {
	codec := newTestCodec(t)
	repo := &stubUserRepo{users: map[string]*domain.User{}}

	rec, called, _ := run(t, codec, repo, "Basic abc123")
	if called {
		t.Fatalf("next must not be called")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	codec := newTestCodec(t)
	repo := &stubUserRepo{users: map[string]*domain.User{}}

	rec, called, _ := run(t, codec, repo, "Bearer not-a-token")
	if called {
		t.Fatalf("next must not be called")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if rec.Header().Get(echo.HeaderWWWAuthenticate) != "Bearer" {
		t.Fatalf("expected WWW-Authenticate: Bearer hint")
	}
}

func TestAuth_UnknownSubject(t *testing.T) {
	codec := newTestCodec(t)
	repo := &stubUserRepo{users: map[string]*domain.User{}}

	// Signed for a user that was since deleted: signature is fine, lookup fails.
	tkn, err := codec.Issue("ghost")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	rec, called, _ := run(t, codec, repo, "Bearer "+tkn)
	if called {
		t.Fatalf("next must not be called")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_InactiveUser(t *testing.T) {
	codec := newTestCodec(t)
	repo := &stubUserRepo{users: map[string]*domain.User{
		"alice": {ID: 1, Username: "alice", Active: false},
	}}

	tkn, err := codec.Issue("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	rec, called, _ := run(t, codec, repo, "Bearer "+tkn)
	if called {
		t.Fatalf("next must not be called")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

// The guard must re-resolve the user on every request rather than trust the
// claims: a token issued while the account was active stops working the
// moment the account is deactivated.
func TestAuth_DeactivationTakesEffectImmediately(t *testing.T) {
	codec := newTestCodec(t)
	alice := &domain.User{ID: 1, Username: "alice", Active: true}
	repo := &stubUserRepo{users: map[string]*domain.User{"alice": alice}}

	tkn, err := codec.Issue("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	rec, _, _ := run(t, codec, repo, "Bearer "+tkn)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 while active, got %d", rec.Code)
	}

	alice.Active = false

	rec, called, _ := run(t, codec, repo, "Bearer "+tkn)
	if called {
		t.Fatalf("next must not be called after deactivation")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 after deactivation, got %d", rec.Code)
	}
}
