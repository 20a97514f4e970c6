package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/beggy/beggy-backend/internal/auth"
	"github.com/beggy/beggy-backend/internal/users"
	pkgAuth "github.com/beggy/beggy-backend/pkg/auth"
	"github.com/beggy/beggy-backend/pkg/auth/session"
	"github.com/beggy/beggy-backend/pkg/config"
	"github.com/beggy/beggy-backend/pkg/enums"
	pkgerrors "github.com/beggy/beggy-backend/pkg/errors"
)

type stubAuthService struct {
	resp        *auth.TokenResponse
	err         error
	lastLogin   auth.LoginRequest
	lastRefresh auth.RefreshRequest
	lastLogout  string
}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.TokenResponse, error) {
	s.lastLogin = req
	return s.resp, s.err
}

func (s *stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.TokenResponse, error) {
	s.lastRefresh = req
	return s.resp, s.err
}

func (s *stubAuthService) Logout(ctx context.Context, accessID string) error {
	s.lastLogout = accessID
	return s.err
}

type stubRegisterService struct {
	err    error
	called bool
}

func (s *stubRegisterService) Register(ctx context.Context, req auth.RegisterRequest) (*users.UserDTO, error) {
	s.called = true
	if s.err != nil {
		return nil, s.err
	}
	return &users.UserDTO{ID: uuid.New(), Email: strings.ToLower(req.Email)}, nil
}

func tokenResponse() *auth.TokenResponse {
	return &auth.TokenResponse{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		ExpiresIn:    900,
		User:         &users.UserDTO{ID: uuid.New(), Email: "ada@example.com"},
	}
}

func TestAuthLogin(t *testing.T) {
	svc := &stubAuthService{resp: tokenResponse()}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"ada@example.com","password":"secret123"}`))
	rec := httptest.NewRecorder()
	AuthLogin(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var got auth.TokenResponse
	decodeSuccess(t, rec, &got)
	if got.AccessToken != "access" || got.RefreshToken != "refresh" {
		t.Fatalf("unexpected tokens %+v", got)
	}
	if svc.lastLogin.Email != "ada@example.com" {
		t.Fatalf("expected email forwarded, got %q", svc.lastLogin.Email)
	}
}

func TestAuthLoginInvalidCredentials(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"ada@example.com","password":"nope"}`))
	rec := httptest.NewRecorder()
	AuthLogin(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthLoginValidatesBody(t *testing.T) {
	svc := &stubAuthService{resp: tokenResponse()}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"not-an-email"}`))
	rec := httptest.NewRecorder()
	AuthLogin(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestAuthLoginServiceUnavailable(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	AuthLogin(nil, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}
}

func TestAuthRegisterSignsIn(t *testing.T) {
	reg := &stubRegisterService{}
	svc := &stubAuthService{resp: tokenResponse()}
	body := `{"first_name":"Ada","last_name":"Lovelace","email":"Ada@Example.com","password":"Secret123!","birth_date":"1990-12-10"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	AuthRegister(reg, svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if !reg.called {
		t.Fatal("expected register to run")
	}
	if svc.lastLogin.Password != "Secret123!" {
		t.Fatal("expected login with registered credentials")
	}
}

func TestAuthRegisterConflict(t *testing.T) {
	reg := &stubRegisterService{err: pkgerrors.New(pkgerrors.CodeConflict, "email already registered")}
	svc := &stubAuthService{resp: tokenResponse()}
	body := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","password":"Secret123!"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	AuthRegister(reg, svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}
	if svc.lastLogin.Email != "" {
		t.Fatal("login should not run after a failed registration")
	}
}

func TestAuthRefreshFallsBackToHeader(t *testing.T) {
	svc := &stubAuthService{resp: tokenResponse()}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", strings.NewReader(`{"refresh_token":"r1"}`))
	req.Header.Set("Authorization", "Bearer expired-access")
	rec := httptest.NewRecorder()
	AuthRefresh(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.lastRefresh.AccessToken != "expired-access" || svc.lastRefresh.RefreshToken != "r1" {
		t.Fatalf("unexpected refresh request %+v", svc.lastRefresh)
	}
}

func TestAuthRefreshRequiresAccessToken(t *testing.T) {
	svc := &stubAuthService{resp: tokenResponse()}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", strings.NewReader(`{"refresh_token":"r1"}`))
	rec := httptest.NewRecorder()
	AuthRefresh(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestAuthLogoutAcceptsExpiredToken(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "beggy", ExpirationMinutes: 1}
	accessID := session.NewAccessID()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now().Add(-time.Hour), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleUser,
		JTI:    accessID,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	svc := &stubAuthService{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	AuthLogout(svc, cfg, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.lastLogout != accessID {
		t.Fatalf("expected session %s revoked got %s", accessID, svc.lastLogout)
	}
}

func TestAuthLogoutRequiresToken(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "beggy", ExpirationMinutes: 1}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	AuthLogout(&stubAuthService{}, cfg, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}
