package ports

import (
	"context"

	"github.com/staffcore/employee-system/internal/core/domain"
)

// UserRepository defines the persistence surface for employee records.
//
// Create must surface the storage layer's unique-constraint violation on the
// username as domain.ErrUsernameTaken: the service's pre-check is advisory
// only, two concurrent creates can race between check and insert.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, skip, limit int64) ([]*domain.User, int64, error)
	CountByRole(ctx context.Context, roleID int64) (int64, error)
}
