package containers

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beggy/beggy-backend/internal/capacity"
	"github.com/beggy/beggy-backend/internal/items"
	"github.com/beggy/beggy-backend/pkg/db"
	"github.com/beggy/beggy-backend/pkg/db/models"
	"github.com/beggy/beggy-backend/pkg/enums"
	pkgerrors "github.com/beggy/beggy-backend/pkg/errors"
	"github.com/beggy/beggy-backend/pkg/logger"
	"github.com/beggy/beggy-backend/pkg/metrics"
	"github.com/beggy/beggy-backend/pkg/pagination"
)

// ServiceParams groups dependencies for the containers service.
type ServiceParams struct {
	Repo      *Repository
	ItemsRepo *items.Repository
	Metrics   *metrics.ContainerMetrics
	Logger    *logger.Logger
}

// Service exposes owner-scoped bag and suitcase management. Every call is bound to one kind.
type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, kind enums.ContainerKind, input CreateContainerInput) (ContainerDTO, error)
	Get(ctx context.Context, ownerID uuid.UUID, kind enums.ContainerKind, id uuid.UUID) (ContainerDTO, error)
	List(ctx context.Context, ownerID uuid.UUID, kind enums.ContainerKind, params ListParams) (pagination.Page[ContainerDTO], error)
	Update(ctx context.Context, ownerID uuid.UUID, kind enums.ContainerKind, id uuid.UUID, input UpdateContainerInput) (ContainerDTO, error)
	Delete(ctx context.Context, ownerID uuid.UUID, kind enums.ContainerKind, id uuid.UUID) error
	AddItem(ctx context.Context, ownerID uuid.UUID, kind enums.ContainerKind, containerID, itemID uuid.UUID) (AssignmentResult, error)
	RemoveItem(ctx context.Context, ownerID uuid.UUID, kind enums.ContainerKind, containerID, itemID uuid.UUID) (AssignmentResult, error)
}

type service struct {
	repo    *Repository
	items   *items.Repository
	metrics *metrics.ContainerMetrics
	logg    *logger.Logger
}

// NewService builds a containers service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "containers repo is required")
	}
	if params.ItemsRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "items repo is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		repo:    params.Repo,
		items:   params.ItemsRepo,
		metrics: params.Metrics,
		logg:    logg,
	}, nil
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, kind enums.ContainerKind, input CreateContainerInput) (ContainerDTO, error) {
	if err := requireKind(kind); err != nil {
		return ContainerDTO{}, err
	}
	c := &models.Container{
		UserID:      ownerID,
		Kind:        kind,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Color:       input.Color,
		Brand:       input.Brand,
		Style:       input.Style,
		MaxWeight:   input.MaxWeight,
		MaxCapacity: input.MaxCapacity,
		IsDefault:   input.IsDefault,
	}
	if err := validate(c); err != nil {
		return ContainerDTO{}, err
	}

	err := s.repo.InTx(ctx, func(containers *Repository, _ *items.Repository) error {
		if c.IsDefault {
			if err := containers.ClearDefault(ctx, ownerID, kind); err != nil {
				return err
			}
		}
		return containers.Create(ctx, c)
	})
	if err != nil {
		return ContainerDTO{}, mapWriteError(err, c, "create container")
	}
	return s.evaluate(ctx, *c, nil)
}

func (s *service) Get(ctx context.Context, ownerID uuid.UUID, kind enums.ContainerKind, id uuid.UUID) (ContainerDTO, error) {
	c, err := s.load(ctx, s.repo, ownerID, kind, id)
	if err != nil {
		return ContainerDTO{}, err
	}
	rows, err := s.items.ListByContainer(ctx, c.ID)
	if err != nil {
		return ContainerDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load container items")
	}
	return s.evaluate(ctx, *c, rows)
}

// List evaluates each container on the page. The status filter applies to that page only.
func (s *service) List(ctx context.Context, ownerID uuid.UUID, kind enums.ContainerKind, params ListParams) (pagination.Page[ContainerDTO], error) {
	if err := requireKind(kind); err != nil {
		return pagination.Page[ContainerDTO]{}, err
	}
	if params.Status != nil && !params.Status.IsValid() {
		return pagination.Page[ContainerDTO]{}, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid status %q", *params.Status)
	}

	page, err := s.repo.List(ctx, ownerID, kind, params.Params)
	if err != nil {
		if errors.Is(err, pagination.ErrInvalidCursor) {
			return pagination.Page[ContainerDTO]{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		return pagination.Page[ContainerDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list containers")
	}

	ids := make([]uuid.UUID, 0, len(page.Items))
	for _, c := range page.Items {
		ids = append(ids, c.ID)
	}
	grouped, err := s.items.ListByContainers(ctx, ids)
	if err != nil {
		return pagination.Page[ContainerDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load container items")
	}

	out := pagination.Page[ContainerDTO]{Items: make([]ContainerDTO, 0, len(page.Items)), NextCursor: page.NextCursor}
	for _, c := range page.Items {
		dto, err := s.evaluate(ctx, c, grouped[c.ID])
		if err != nil {
			return pagination.Page[ContainerDTO]{}, err
		}
		if params.Status != nil && dto.Status != *params.Status {
			continue
		}
		out.Items = append(out.Items, dto)
	}
	return out, nil
}

// Update applies a partial update and re-evaluates the container against its new limits.
func (s *service) Update(ctx context.Context, ownerID uuid.UUID, kind enums.ContainerKind, id uuid.UUID, input UpdateContainerInput) (ContainerDTO, error) {
	c, err := s.load(ctx, s.repo, ownerID, kind, id)
	if err != nil {
		return ContainerDTO{}, err
	}

	if input.Name != nil {
		c.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		c.Description = input.Description
	}
	if input.Color != nil {
		c.Color = input.Color
	}
	if input.Brand != nil {
		c.Brand = input.Brand
	}
	if input.Style != nil {
		c.Style = input.Style
	}
	if input.MaxWeight != nil {
		c.MaxWeight = *input.MaxWeight
	}
	if input.MaxCapacity != nil {
		c.MaxCapacity = *input.MaxCapacity
	}
	becomesDefault := input.IsDefault != nil && *input.IsDefault && !c.IsDefault
	if input.IsDefault != nil {
		c.IsDefault = *input.IsDefault
	}
	if err := validate(c); err != nil {
		return ContainerDTO{}, err
	}

	err = s.repo.InTx(ctx, func(containers *Repository, _ *items.Repository) error {
		if becomesDefault {
			if err := containers.ClearDefault(ctx, ownerID, kind); err != nil {
				return err
			}
		}
		return containers.Update(ctx, c)
	})
	if err != nil {
		return ContainerDTO{}, mapWriteError(err, c, "update container")
	}
	return s.Get(ctx, ownerID, kind, id)
}

// Delete unassigns the container's items, which survive, then removes the container.
func (s *service) Delete(ctx context.Context, ownerID uuid.UUID, kind enums.ContainerKind, id uuid.UUID) error {
	if err := requireKind(kind); err != nil {
		return err
	}
	err := s.repo.InTx(ctx, func(containers *Repository, itemsRepo *items.Repository) error {
		if _, err := containers.FindByID(ctx, ownerID, kind, id); err != nil {
			return err
		}
		if err := itemsRepo.UnassignAll(ctx, id); err != nil {
			return err
		}
		return containers.Delete(ctx, ownerID, kind, id)
	})
	if err != nil {
		return mapRepoError(err, kind, "delete container")
	}
	return nil
}

// AddItem places an owned item in the container, moving it out of any other container.
// Exceeding a limit does not block the assignment; the violations are reported with the result.
func (s *service) AddItem(ctx context.Context, ownerID uuid.UUID, kind enums.ContainerKind, containerID, itemID uuid.UUID) (AssignmentResult, error) {
	var container *models.Container
	err := s.repo.InTx(ctx, func(containers *Repository, itemsRepo *items.Repository) error {
		c, err := s.load(ctx, containers, ownerID, kind, containerID)
		if err != nil {
			return err
		}
		if _, err := itemsRepo.FindByID(ctx, ownerID, itemID); err != nil {
			return itemError(err)
		}
		if err := itemsRepo.SetContainer(ctx, ownerID, itemID, &c.ID); err != nil {
			return itemError(err)
		}
		container = c
		return nil
	})
	if err != nil {
		return AssignmentResult{}, pkgerrors.Normalize(err, pkgerrors.CodeDependency, "add item")
	}
	return s.assignmentResult(ctx, *container, true)
}

// RemoveItem takes the item out of the container. The item must currently be in it.
func (s *service) RemoveItem(ctx context.Context, ownerID uuid.UUID, kind enums.ContainerKind, containerID, itemID uuid.UUID) (AssignmentResult, error) {
	var container *models.Container
	err := s.repo.InTx(ctx, func(containers *Repository, itemsRepo *items.Repository) error {
		c, err := s.load(ctx, containers, ownerID, kind, containerID)
		if err != nil {
			return err
		}
		item, err := itemsRepo.FindByID(ctx, ownerID, itemID)
		if err != nil {
			return itemError(err)
		}
		if item.ContainerID == nil || *item.ContainerID != c.ID {
			return pkgerrors.Newf(pkgerrors.CodeNotFound, "item is not in this %s", kind)
		}
		if err := itemsRepo.SetContainer(ctx, ownerID, itemID, nil); err != nil {
			return itemError(err)
		}
		container = c
		return nil
	})
	if err != nil {
		return AssignmentResult{}, pkgerrors.Normalize(err, pkgerrors.CodeDependency, "remove item")
	}
	return s.assignmentResult(ctx, *container, false)
}

func (s *service) assignmentResult(ctx context.Context, c models.Container, added bool) (AssignmentResult, error) {
	rows, err := s.items.ListByContainer(ctx, c.ID)
	if err != nil {
		return AssignmentResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load container items")
	}
	dto, m, err := toDTO(c, rows)
	if err != nil {
		return AssignmentResult{}, pkgerrors.Normalize(err, pkgerrors.CodeInternal, "evaluate container")
	}
	s.metrics.ObserveStatus(c.Kind.String(), dto.Status)

	result := AssignmentResult{Container: dto, Violations: capacity.Violations(m)}
	if added && dto.Status.IsViolation() {
		s.metrics.ObserveViolation(c.Kind.String(), dto.Status)
		logCtx := s.logg.WithContainerID(ctx, c.ID.String())
		logCtx = s.logg.WithFields(logCtx, map[string]any{
			"kind":                c.Kind.String(),
			"status":              dto.Status.String(),
			"weight_percentage":   dto.WeightPercentage,
			"capacity_percentage": dto.CapacityPercentage,
		})
		s.logg.Warn(logCtx, "container limit exceeded after item assignment")
	}
	return result, nil
}

func (s *service) evaluate(ctx context.Context, c models.Container, rows []models.Item) (ContainerDTO, error) {
	dto, _, err := toDTO(c, rows)
	if err != nil {
		return ContainerDTO{}, pkgerrors.Normalize(err, pkgerrors.CodeInternal, "evaluate container")
	}
	s.metrics.ObserveStatus(c.Kind.String(), dto.Status)
	return dto, nil
}

func (s *service) load(ctx context.Context, containers *Repository, ownerID uuid.UUID, kind enums.ContainerKind, id uuid.UUID) (*models.Container, error) {
	if err := requireKind(kind); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "%s id is required", kind)
	}
	c, err := containers.FindByID(ctx, ownerID, kind, id)
	if err != nil {
		return nil, mapRepoError(err, kind, "load container")
	}
	return c, nil
}

func requireKind(kind enums.ContainerKind) error {
	if !kind.IsValid() {
		return pkgerrors.Newf(pkgerrors.CodeInternal, "unknown container kind %q", kind)
	}
	return nil
}

func validate(c *models.Container) error {
	if c.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if c.MaxWeight <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "max_weight must be greater than zero").
			WithDetails(map[string]any{"max_weight": c.MaxWeight})
	}
	if c.MaxCapacity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "max_capacity must be greater than zero").
			WithDetails(map[string]any{"max_capacity": c.MaxCapacity})
	}
	if c.Style != nil && !c.Style.AllowedFor(c.Kind) {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "style %q is not available for a %s", *c.Style, c.Kind).
			WithDetails(map[string]any{"style": c.Style.String()})
	}
	return nil
}

func itemError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "item not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
}

func mapRepoError(err error, kind enums.ContainerKind, action string) error {
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, kind.String()+" not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}

func mapWriteError(err error, c *models.Container, action string) error {
	if db.IsUniqueViolation(err) {
		return pkgerrors.Newf(pkgerrors.CodeConflict, "a %s named %q already exists", c.Kind, c.Name)
	}
	return mapRepoError(err, c.Kind, action)
}
