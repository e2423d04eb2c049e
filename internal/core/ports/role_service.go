package ports

import (
	"context"

	"github.com/staffcore/employee-system/internal/core/domain"
)

// CreateRoleInput carries the data for a new role.
type CreateRoleInput struct {
	Name        string
	Description string
}

// UpdateRoleInput is a partial patch: nil fields are left untouched.
type UpdateRoleInput struct {
	Name        *string
	Description *string
}

// RoleService implements role lifecycle operations.
type RoleService interface {
	Create(ctx context.Context, input CreateRoleInput) (*domain.Role, error)
	GetByID(ctx context.Context, id int64) (*domain.Role, error)
	GetByName(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context, skip, limit int64) ([]*domain.Role, int64, error)
	Update(ctx context.Context, id int64, input UpdateRoleInput) (*domain.Role, error)

	// Delete removes a role permanently. It fails with domain.ErrRoleInUse
	// while at least one user still references the role.
	Delete(ctx context.Context, id int64) error
}
