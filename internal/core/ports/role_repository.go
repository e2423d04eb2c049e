package ports

import (
	"context"

	"github.com/staffcore/employee-system/internal/core/domain"
)

// RoleRepository defines the persistence surface for roles. Create and
// Update must surface the storage layer's unique-constraint violation on the
// role name as domain.ErrRoleNameTaken.
type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) (*domain.Role, error)
	FindByID(ctx context.Context, id int64) (*domain.Role, error)
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	Update(ctx context.Context, role *domain.Role) (*domain.Role, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, skip, limit int64) ([]*domain.Role, int64, error)
}
