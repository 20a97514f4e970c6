package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/beggy/beggy-backend/internal/users"
	"github.com/beggy/beggy-backend/pkg/config"
	"github.com/beggy/beggy-backend/pkg/enums"
	pkgerrors "github.com/beggy/beggy-backend/pkg/errors"
	"github.com/beggy/beggy-backend/pkg/pagination"
)

type stubUserService struct {
	user        *users.UserDTO
	err         error
	lastUpdate  users.UpdateProfileInput
	lastFilters users.ListFilters
	lastActor   uuid.UUID
	lastTarget  uuid.UUID
	lastRole    enums.UserRole
	lastActive  *bool
}

func (s *stubUserService) Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	return s.user, s.err
}

func (s *stubUserService) UpdateMe(ctx context.Context, userID uuid.UUID, input users.UpdateProfileInput) (*users.UserDTO, error) {
	s.lastUpdate = input
	return s.user, s.err
}

func (s *stubUserService) AdminList(ctx context.Context, filters users.ListFilters, params pagination.Params) (pagination.Page[users.UserDTO], error) {
	s.lastFilters = filters
	return pagination.Page[users.UserDTO]{}, s.err
}

func (s *stubUserService) AdminGet(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	s.lastTarget = userID
	return s.user, s.err
}

func (s *stubUserService) AdminUpdateRole(ctx context.Context, actorID, userID uuid.UUID, role enums.UserRole) (*users.UserDTO, error) {
	s.lastActor, s.lastTarget, s.lastRole = actorID, userID, role
	return s.user, s.err
}

func (s *stubUserService) AdminSetActive(ctx context.Context, actorID, userID uuid.UUID, active bool) (*users.UserDTO, error) {
	s.lastActor, s.lastTarget, s.lastActive = actorID, userID, &active
	return s.user, s.err
}

func TestMeGet(t *testing.T) {
	userID := uuid.New()
	svc := &stubUserService{user: &users.UserDTO{ID: userID, Email: "ada@example.com", DisplayName: "Ada Lovelace"}}
	req := newRequest(http.MethodGet, "/api/v1/me", nil, &userID, nil)
	rec := httptest.NewRecorder()
	MeGet(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var got users.UserDTO
	decodeSuccess(t, rec, &got)
	if got.DisplayName != "Ada Lovelace" {
		t.Fatalf("unexpected display name %q", got.DisplayName)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatal("response must not leak password fields")
	}
}

func TestMeUpdate(t *testing.T) {
	userID := uuid.New()
	svc := &stubUserService{user: &users.UserDTO{ID: userID}}
	req := newRequest(http.MethodPatch, "/api/v1/me", strings.NewReader(`{"first_name":"ada","birth_date":"1990-12-10"}`), &userID, nil)
	rec := httptest.NewRecorder()
	MeUpdate(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.lastUpdate.FirstName == nil || *svc.lastUpdate.FirstName != "ada" {
		t.Fatalf("expected first name forwarded got %+v", svc.lastUpdate)
	}
	if svc.lastUpdate.LastName != nil {
		t.Fatal("last name should be untouched")
	}
}

func TestAdminUserListFilters(t *testing.T) {
	svc := &stubUserService{}
	req := newRequest(http.MethodGet, "/api/admin/v1/users?q=%20ada%20&role=admin&is_active=false", nil, nil, nil)
	rec := httptest.NewRecorder()
	AdminUserList(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.lastFilters.Query != "ada" {
		t.Fatalf("expected trimmed query got %q", svc.lastFilters.Query)
	}
	if svc.lastFilters.Role == nil || *svc.lastFilters.Role != enums.UserRoleAdmin {
		t.Fatal("expected role filter")
	}
	if svc.lastFilters.IsActive == nil || *svc.lastFilters.IsActive {
		t.Fatal("expected is_active=false filter")
	}
}

func TestAdminUserUpdateRole(t *testing.T) {
	actorID := uuid.New()
	targetID := uuid.New()
	svc := &stubUserService{user: &users.UserDTO{ID: targetID, Role: enums.UserRoleAdmin}}
	req := newRequest(http.MethodPatch, "/api/admin/v1/users/"+targetID.String()+"/role", strings.NewReader(`{"role":"admin"}`), &actorID, map[string]string{"userId": targetID.String()})
	rec := httptest.NewRecorder()
	AdminUserUpdateRole(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.lastActor != actorID || svc.lastTarget != targetID || svc.lastRole != enums.UserRoleAdmin {
		t.Fatalf("unexpected call actor=%s target=%s role=%s", svc.lastActor, svc.lastTarget, svc.lastRole)
	}
}

func TestAdminUserUpdateRoleRejectsUnknownRole(t *testing.T) {
	actorID := uuid.New()
	targetID := uuid.New()
	req := newRequest(http.MethodPatch, "/", strings.NewReader(`{"role":"owner"}`), &actorID, map[string]string{"userId": targetID.String()})
	rec := httptest.NewRecorder()
	AdminUserUpdateRole(&stubUserService{}, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestAdminUserUpdateStatusSelfDeactivation(t *testing.T) {
	actorID := uuid.New()
	svc := &stubUserService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "cannot deactivate yourself")}
	req := newRequest(http.MethodPatch, "/", strings.NewReader(`{"is_active":false}`), &actorID, map[string]string{"userId": actorID.String()})
	rec := httptest.NewRecorder()
	AdminUserUpdateStatus(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != string(pkgerrors.CodeStateConflict) {
		t.Fatalf("expected %s got %s", pkgerrors.CodeStateConflict, code)
	}
	if svc.lastActive == nil || *svc.lastActive {
		t.Fatal("expected is_active=false forwarded")
	}
}

func TestAdminUserUpdateStatusRequiresFlag(t *testing.T) {
	actorID := uuid.New()
	req := newRequest(http.MethodPatch, "/", strings.NewReader(`{}`), &actorID, map[string]string{"userId": uuid.NewString()})
	rec := httptest.NewRecorder()
	AdminUserUpdateStatus(&stubUserService{}, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error {
	return p.err
}

func TestHealthReady(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}

	rec := httptest.NewRecorder()
	HealthReady(cfg, nil, stubPinger{}, stubPinger{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	HealthReady(cfg, nil, stubPinger{}, stubPinger{err: errors.New("connection refused")}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", rec.Code)
	}
}

func TestHealthLive(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}
	rec := httptest.NewRecorder()
	HealthLive(cfg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if rec.Header().Get("X-Beggy-Env") != "test" {
		t.Fatal("expected env header")
	}
}
