package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/staffcore/employee-system/internal/core/domain"
	"github.com/staffcore/employee-system/internal/core/ports"
)

// RoleService implements role lifecycle operations. As with users, the
// name pre-checks are advisory; the repository's unique index is the
// authoritative duplicate signal.
type RoleService struct {
	roles  ports.RoleRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewRoleService(roles ports.RoleRepository, users ports.UserRepository, logger zerolog.Logger) *RoleService {
	return &RoleService{roles: roles, users: users, logger: logger}
}

func (s *RoleService) Create(ctx context.Context, input ports.CreateRoleInput) (*domain.Role, error) {
	if _, err := s.roles.FindByName(ctx, input.Name); err == nil {
		return nil, domain.ErrRoleNameTaken
	}

	role := &domain.Role{
		Name:        input.Name,
		Description: input.Description,
		DateCreated: today(),
	}

	created, err := s.roles.Create(ctx, role)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("role_id", created.ID).Str("name", created.Name).Msg("role created")
	return created, nil
}

func (s *RoleService) GetByID(ctx context.Context, id int64) (*domain.Role, error) {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, domain.ErrRoleNotFound
	}
	return role, nil
}

func (s *RoleService) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	role, err := s.roles.FindByName(ctx, name)
	if err != nil {
		return nil, domain.ErrRoleNotFound
	}
	return role, nil
}

func (s *RoleService) List(ctx context.Context, skip, limit int64) ([]*domain.Role, int64, error) {
	return s.roles.List(ctx, skip, limit)
}

// Update applies a partial patch. A rename to a name held by another role
// fails with domain.ErrRoleNameTaken. The creation date is refreshed to
// record when the role definition last changed.
func (s *RoleService) Update(ctx context.Context, id int64, input ports.UpdateRoleInput) (*domain.Role, error) {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, domain.ErrRoleNotFound
	}

	if input.Name != nil && *input.Name != role.Name {
		if existing, err := s.roles.FindByName(ctx, *input.Name); err == nil && existing.ID != id {
			return nil, domain.ErrRoleNameTaken
		}
		role.Name = *input.Name
	}
	if input.Description != nil {
		role.Description = *input.Description
	}
	role.DateCreated = today()

	return s.roles.Update(ctx, role)
}

// Delete removes a role permanently, refusing while any user still
// references it.
func (s *RoleService) Delete(ctx context.Context, id int64) error {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return domain.ErrRoleNotFound
	}

	linked, err := s.users.CountByRole(ctx, id)
	if err != nil {
		return err
	}
	if linked >= 1 {
		return domain.ErrRoleInUse
	}

	if err := s.roles.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("role_id", id).Str("name", role.Name).Msg("role deleted")
	return nil
}
