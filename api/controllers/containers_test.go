package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/beggy/beggy-backend/internal/capacity"
	"github.com/beggy/beggy-backend/internal/containers"
	"github.com/beggy/beggy-backend/pkg/enums"
	pkgerrors "github.com/beggy/beggy-backend/pkg/errors"
	"github.com/beggy/beggy-backend/pkg/pagination"
)

type stubContainerService struct {
	container  containers.ContainerDTO
	assignment containers.AssignmentResult
	err        error

	lastKind   enums.ContainerKind
	lastOwner  uuid.UUID
	lastParams containers.ListParams
	lastCreate containers.CreateContainerInput
	lastItem   uuid.UUID
	removed    bool
	deleted    bool
}

func (s *stubContainerService) Create(ctx context.Context, ownerID uuid.UUID, kind enums.ContainerKind, input containers.CreateContainerInput) (containers.ContainerDTO, error) {
	s.lastOwner, s.lastKind, s.lastCreate = ownerID, kind, input
	return s.container, s.err
}

func (s *stubContainerService) Get(ctx context.Context, ownerID uuid.UUID, kind enums.ContainerKind, id uuid.UUID) (containers.ContainerDTO, error) {
	s.lastOwner, s.lastKind = ownerID, kind
	return s.container, s.err
}

func (s *stubContainerService) List(ctx context.Context, ownerID uuid.UUID, kind enums.ContainerKind, params containers.ListParams) (pagination.Page[containers.ContainerDTO], error) {
	s.lastOwner, s.lastKind, s.lastParams = ownerID, kind, params
	return pagination.Page[containers.ContainerDTO]{Items: []containers.ContainerDTO{s.container}}, s.err
}

func (s *stubContainerService) Update(ctx context.Context, ownerID uuid.UUID, kind enums.ContainerKind, id uuid.UUID, input containers.UpdateContainerInput) (containers.ContainerDTO, error) {
	s.lastOwner, s.lastKind = ownerID, kind
	return s.container, s.err
}

func (s *stubContainerService) Delete(ctx context.Context, ownerID uuid.UUID, kind enums.ContainerKind, id uuid.UUID) error {
	s.lastOwner, s.lastKind = ownerID, kind
	s.deleted = s.err == nil
	return s.err
}

func (s *stubContainerService) AddItem(ctx context.Context, ownerID uuid.UUID, kind enums.ContainerKind, containerID, itemID uuid.UUID) (containers.AssignmentResult, error) {
	s.lastOwner, s.lastKind, s.lastItem = ownerID, kind, itemID
	return s.assignment, s.err
}

func (s *stubContainerService) RemoveItem(ctx context.Context, ownerID uuid.UUID, kind enums.ContainerKind, containerID, itemID uuid.UUID) (containers.AssignmentResult, error) {
	s.lastOwner, s.lastKind, s.lastItem = ownerID, kind, itemID
	s.removed = true
	return s.assignment, s.err
}

func TestContainerCreateBindsKind(t *testing.T) {
	userID := uuid.New()
	svc := &stubContainerService{container: containers.ContainerDTO{ID: uuid.New(), Kind: enums.ContainerKindSuitcase, Name: "Carry-on"}}
	body := `{"name":"Carry-on","max_weight":10,"max_capacity":40,"style":"carry_on"}`
	req := newRequest(http.MethodPost, "/api/v1/suitcases", strings.NewReader(body), &userID, nil)
	rec := httptest.NewRecorder()
	ContainerCreate(svc, enums.ContainerKindSuitcase, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastKind != enums.ContainerKindSuitcase || svc.lastOwner != userID {
		t.Fatalf("unexpected kind/owner %s/%s", svc.lastKind, svc.lastOwner)
	}
	if svc.lastCreate.MaxWeight != 10 || svc.lastCreate.MaxCapacity != 40 {
		t.Fatalf("unexpected input %+v", svc.lastCreate)
	}
}

func TestContainerCreateRejectsNonPositiveLimits(t *testing.T) {
	userID := uuid.New()
	svc := &stubContainerService{}
	req := newRequest(http.MethodPost, "/api/v1/bags", strings.NewReader(`{"name":"Tote","max_weight":0,"max_capacity":20}`), &userID, nil)
	rec := httptest.NewRecorder()
	ContainerCreate(svc, enums.ContainerKindBag, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestContainerCreateRequiresUser(t *testing.T) {
	svc := &stubContainerService{}
	req := newRequest(http.MethodPost, "/api/v1/bags", strings.NewReader(`{"name":"Tote","max_weight":5,"max_capacity":20}`), nil, nil)
	rec := httptest.NewRecorder()
	ContainerCreate(svc, enums.ContainerKindBag, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestContainerListParsesFilters(t *testing.T) {
	userID := uuid.New()
	svc := &stubContainerService{}
	req := newRequest(http.MethodGet, "/api/v1/bags?status=OVERWEIGHT&limit=10&cursor=abc", nil, &userID, nil)
	rec := httptest.NewRecorder()
	ContainerList(svc, enums.ContainerKindBag, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.lastParams.Status == nil || *svc.lastParams.Status != enums.ContainerStatusOverweight {
		t.Fatalf("expected status filter, got %+v", svc.lastParams.Status)
	}
	if svc.lastParams.Limit != 10 || svc.lastParams.Cursor != "abc" {
		t.Fatalf("unexpected paging %+v", svc.lastParams.Params)
	}
}

func TestContainerListRejectsUnknownStatus(t *testing.T) {
	userID := uuid.New()
	req := newRequest(http.MethodGet, "/api/v1/bags?status=HEAVY", nil, &userID, nil)
	rec := httptest.NewRecorder()
	ContainerList(&stubContainerService{}, enums.ContainerKindBag, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestContainerGetInvalidID(t *testing.T) {
	userID := uuid.New()
	req := newRequest(http.MethodGet, "/api/v1/bags/nope", nil, &userID, map[string]string{"containerId": "nope"})
	rec := httptest.NewRecorder()
	ContainerGet(&stubContainerService{}, enums.ContainerKindBag, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestContainerGetNotFound(t *testing.T) {
	userID := uuid.New()
	id := uuid.New()
	svc := &stubContainerService{err: pkgerrors.New(pkgerrors.CodeNotFound, "container not found")}
	req := newRequest(http.MethodGet, "/api/v1/bags/"+id.String(), nil, &userID, map[string]string{"containerId": id.String()})
	rec := httptest.NewRecorder()
	ContainerGet(svc, enums.ContainerKindBag, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestContainerDelete(t *testing.T) {
	userID := uuid.New()
	id := uuid.New()
	svc := &stubContainerService{}
	req := newRequest(http.MethodDelete, "/api/v1/bags/"+id.String(), nil, &userID, map[string]string{"containerId": id.String()})
	rec := httptest.NewRecorder()
	ContainerDelete(svc, enums.ContainerKindBag, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", rec.Code)
	}
	if !svc.deleted {
		t.Fatal("expected delete call")
	}
}

func TestContainerAddItemReturnsViolationsAsWarnings(t *testing.T) {
	userID := uuid.New()
	containerID := uuid.New()
	itemID := uuid.New()
	dto := containers.ContainerDTO{ID: containerID, Kind: enums.ContainerKindBag, MaxWeight: 5, CurrentWeight: 7}
	dto.Summary = capacity.Summary{IsOverweight: true, Status: enums.ContainerStatusOverweight}
	svc := &stubContainerService{assignment: containers.AssignmentResult{
		Container:  dto,
		Violations: []capacity.ViolationDetail{{Dimension: "weight", Current: 7, Limit: 5, Unit: "KILOGRAM"}},
	}}

	params := map[string]string{"containerId": containerID.String(), "itemId": itemID.String()}
	req := newRequest(http.MethodPost, "/api/v1/bags/"+containerID.String()+"/items/"+itemID.String(), nil, &userID, params)
	rec := httptest.NewRecorder()
	ContainerAddItem(svc, enums.ContainerKindBag, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var got struct {
		Status       enums.ContainerStatus `json:"status"`
		IsOverweight bool                  `json:"is_overweight"`
	}
	env := decodeSuccess(t, rec, &got)
	if got.Status != enums.ContainerStatusOverweight || !got.IsOverweight {
		t.Fatalf("expected flattened overweight summary, got %+v", got)
	}
	if len(env.Warnings) != 1 {
		t.Fatalf("expected one warning got %v", env.Warnings)
	}
	if svc.lastItem != itemID {
		t.Fatalf("expected item %s got %s", itemID, svc.lastItem)
	}
}

func TestContainerRemoveItemWithoutViolations(t *testing.T) {
	userID := uuid.New()
	containerID := uuid.New()
	itemID := uuid.New()
	dto := containers.ContainerDTO{ID: containerID}
	dto.Summary = capacity.Summary{Status: enums.ContainerStatusEmpty}
	svc := &stubContainerService{assignment: containers.AssignmentResult{Container: dto}}

	params := map[string]string{"containerId": containerID.String(), "itemId": itemID.String()}
	req := newRequest(http.MethodDelete, "/api/v1/bags/"+containerID.String()+"/items/"+itemID.String(), nil, &userID, params)
	rec := httptest.NewRecorder()
	ContainerRemoveItem(svc, enums.ContainerKindBag, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	env := decodeSuccess(t, rec, nil)
	if env.Warnings != nil {
		t.Fatalf("expected no warnings got %v", env.Warnings)
	}
	if !svc.removed {
		t.Fatal("expected remove call")
	}
}

func TestContainerAddItemServiceUnavailable(t *testing.T) {
	userID := uuid.New()
	req := newRequest(http.MethodPost, "/", nil, &userID, nil)
	rec := httptest.NewRecorder()
	ContainerAddItem(nil, enums.ContainerKindBag, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}
}
