package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beggy/beggy-backend/pkg/db/models"
	"github.com/beggy/beggy-backend/pkg/enums"
	pkgerrors "github.com/beggy/beggy-backend/pkg/errors"
	"github.com/beggy/beggy-backend/pkg/pagination"
)

type usersRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, update ProfileUpdate) error
	UpdateRole(ctx context.Context, id uuid.UUID, role enums.UserRole) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	List(ctx context.Context, filters ListFilters, params pagination.Params) (pagination.Page[models.User], error)
}

// ServiceParams groups dependencies for the users service.
type ServiceParams struct {
	Repo usersRepository
	Now  func() time.Time
}

// Service exposes self-service profile and admin user management.
type Service interface {
	Me(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*UserDTO, error)
	AdminList(ctx context.Context, filters ListFilters, params pagination.Params) (pagination.Page[UserDTO], error)
	AdminGet(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	AdminUpdateRole(ctx context.Context, actorID, userID uuid.UUID, role enums.UserRole) (*UserDTO, error)
	AdminSetActive(ctx context.Context, actorID, userID uuid.UUID, active bool) (*UserDTO, error)
}

type service struct {
	repo usersRepository
	now  func() time.Time
}

// NewService builds a users service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "users repo is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: params.Repo, now: now}, nil
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	return s.load(ctx, userID)
}

// UpdateMe applies a profile patch for the authenticated user.
func (s *service) UpdateMe(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*UserDTO, error) {
	update := ProfileUpdate{}
	if input.FirstName != nil {
		name := strings.TrimSpace(*input.FirstName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "first_name cannot be blank")
		}
		update.FirstName = &name
	}
	if input.LastName != nil {
		name := strings.TrimSpace(*input.LastName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "last_name cannot be blank")
		}
		update.LastName = &name
	}
	if input.BirthDate != nil {
		birth := ParseBirthDate(*input.BirthDate)
		if birth == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "birth_date must be YYYY-MM-DD").
				WithDetails(map[string]any{"birth_date": *input.BirthDate})
		}
		if birth.After(s.now()) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "birth_date cannot be in the future")
		}
		update.BirthDate = birth
	}

	if err := s.repo.UpdateProfile(ctx, userID, update); err != nil {
		return nil, mapRepoError(err, "update profile")
	}
	return s.load(ctx, userID)
}

func (s *service) AdminList(ctx context.Context, filters ListFilters, params pagination.Params) (pagination.Page[UserDTO], error) {
	page, err := s.repo.List(ctx, filters, params)
	if err != nil {
		if errors.Is(err, pagination.ErrInvalidCursor) {
			return pagination.Page[UserDTO]{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		return pagination.Page[UserDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	now := s.now()
	return pagination.Map(page, func(u models.User) UserDTO {
		return *FromModel(&u, now)
	}), nil
}

func (s *service) AdminGet(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	return s.load(ctx, userID)
}

// AdminUpdateRole changes another user's role. Admins cannot demote themselves.
func (s *service) AdminUpdateRole(ctx context.Context, actorID, userID uuid.UUID, role enums.UserRole) (*UserDTO, error) {
	if !role.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid role %q", role)
	}
	if actorID == userID && role != enums.UserRoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "admins cannot demote themselves")
	}
	if err := s.repo.UpdateRole(ctx, userID, role); err != nil {
		return nil, mapRepoError(err, "update role")
	}
	return s.load(ctx, userID)
}

// AdminSetActive activates or deactivates another user. Admins cannot deactivate themselves.
func (s *service) AdminSetActive(ctx context.Context, actorID, userID uuid.UUID, active bool) (*UserDTO, error) {
	if actorID == userID && !active {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "admins cannot deactivate themselves")
	}
	if err := s.repo.SetActive(ctx, userID, active); err != nil {
		return nil, mapRepoError(err, "update status")
	}
	return s.load(ctx, userID)
}

func (s *service) load(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err, "load user")
	}
	return FromModel(user, s.now()), nil
}

func mapRepoError(err error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}
