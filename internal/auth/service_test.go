package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/fermedirect/storefront-backend/pkg/auth"
	"github.com/fermedirect/storefront-backend/pkg/config"
	"github.com/fermedirect/storefront-backend/pkg/db/models"
	pkgerrors "github.com/fermedirect/storefront-backend/pkg/errors"
	"github.com/fermedirect/storefront-backend/pkg/security"
)

type stubUserRepo struct {
	user *models.User
	err  error
}

func (s *stubUserRepo) FindByEmail(context.Context, string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubUserRepo) FindByID(context.Context, uuid.UUID) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

type stubSessions struct {
	generated string
	revoked   string
}

func (s *stubSessions) Generate(_ context.Context, accessID string) (string, error) {
	s.generated = accessID
	return "refresh-token", nil
}

func (s *stubSessions) Rotate(context.Context, string, string) (string, string, error) {
	return "new-access-id", "new-refresh-token", nil
}

func (s *stubSessions) Revoke(_ context.Context, accessID string) error {
	s.revoked = accessID
	return nil
}

func testJWT() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "test", ExpirationMinutes: 15}
}

func adminUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{
		ArgonMemoryKB: 8, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 8, ArgonKeyLen: 16,
	})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.User{ID: uuid.New(), Email: "admin@shop.test", PasswordHash: hash, Role: pkgAuth.RoleAdmin}
}

func TestLoginSuccess(t *testing.T) {
	t.Parallel()

	user := adminUser(t, "hunter2")
	sessions := &stubSessions{}
	svc, err := NewService(ServiceParams{UserRepo: &stubUserRepo{user: user}, SessionManager: sessions, JWTConfig: testJWT()})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	resp, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: "hunter2"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken != "refresh-token" {
		t.Fatalf("unexpected token pair: %+v", resp.TokenPair)
	}
	if sessions.generated == "" {
		t.Fatal("expected a session to be generated")
	}

	claims, err := pkgAuth.ParseAccessToken(testJWT(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != pkgAuth.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()

	user := adminUser(t, "hunter2")
	svc, _ := NewService(ServiceParams{UserRepo: &stubUserRepo{user: user}, SessionManager: &stubSessions{}, JWTConfig: testJWT()})

	_, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: "nope"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	t.Parallel()

	svc, _ := NewService(ServiceParams{UserRepo: &stubUserRepo{err: gorm.ErrRecordNotFound}, SessionManager: &stubSessions{}, JWTConfig: testJWT()})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@shop.test", Password: "x"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	t.Parallel()

	sessions := &stubSessions{}
	svc, _ := NewService(ServiceParams{UserRepo: &stubUserRepo{}, SessionManager: sessions, JWTConfig: testJWT()})

	if err := svc.Logout(context.Background(), "jti-1"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if sessions.revoked != "jti-1" {
		t.Fatalf("expected session jti-1 revoked, got %q", sessions.revoked)
	}
}
