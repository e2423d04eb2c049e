package ports

import (
	"context"
	"time"

	"github.com/staffcore/employee-system/internal/core/domain"
)

// CreateUserInput carries all data needed to register a new employee.
type CreateUserInput struct {
	Username    string
	Password    string
	FirstName   string
	LastName    string
	Birthday    time.Time
	PhoneNumber string
	Email       string
	Salary      float64
	IsAdmin     bool
	IsOwner     bool
	RoleName    string
	ImagePath   string
}

// UpdateUserInput is a partial patch: nil fields are left untouched.
// Pointer fields distinguish "not provided" from an explicit value.
type UpdateUserInput struct {
	Username    *string
	Password    *string
	FirstName   *string
	LastName    *string
	Birthday    *time.Time
	PhoneNumber *string
	Email       *string
	Salary      *float64
	IsAdmin     *bool
	RoleName    *string
	ImagePath   *string
}

// UserService implements the account lifecycle: creation, credential checks,
// principal resolution, profile updates, termination and deletion.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)

	// Authenticate is a pure credential check: it returns the user when the
	// username exists and the password matches the stored hash, regardless of
	// terminated state. Liveness is the caller's concern so that wrong
	// credentials and terminated accounts produce distinct failures.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// CurrentUser resolves a bearer token to a live user record. It is the
	// single choke point every protected route passes through.
	CurrentUser(ctx context.Context, token string) (*domain.User, error)

	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, skip, limit int64) ([]*domain.User, int64, error)
	Update(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error)
	ChangePassword(ctx context.Context, user *domain.User, currentPassword, newPassword string) error
	Terminate(ctx context.Context, actor *domain.User, targetID int64) (*domain.User, error)
	Delete(ctx context.Context, actor *domain.User, targetID int64) error

	RequestPasswordReset(ctx context.Context, username string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}
