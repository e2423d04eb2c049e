package domain

import (
	"errors"
	"time"
)

// User models an employee record. A user authenticates with a username and
// password and carries two independent privilege flags: IsAdmin grants
// management of users and roles, IsOwner additionally grants termination and
// deletion of accounts.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"user_name"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	IsOwner      bool      `json:"is_owner"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Birthday     time.Time `json:"birthday"`
	PhoneNumber  string    `json:"phone_number"`
	Email        string    `json:"email"`
	Salary       float64   `json:"salary"`
	RegisterDate time.Time `json:"register_date"`
	ImagePath    string    `json:"img_path,omitempty"`
	RoleID       int64     `json:"roles_id"`

	// TerminatedAt marks the account inactive without removing the record.
	// nil means the account is active.
	TerminatedAt *time.Time `json:"terminated_at,omitempty"`
}

// Active reports whether the account has not been terminated.
func (u *User) Active() bool {
	return u.TerminatedAt == nil
}

var (
	ErrInvalidCredentials     = errors.New("incorrect username or password")
	ErrTerminatedUser         = errors.New("terminated user")
	ErrInsufficientPrivileges = errors.New("the user doesn't have enough privileges")
	ErrUserNotFound           = errors.New("user not found")
	ErrUsernameTaken          = errors.New("user with this username already exists")
	ErrIncorrectPassword      = errors.New("incorrect password")
	ErrSamePassword           = errors.New("new password cannot be the same as the current one")
	ErrSelfDelete             = errors.New("owners are not allowed to delete themselves")
	ErrSelfTermination        = errors.New("owners are not allowed to terminate themselves")
	ErrInvalidResetToken      = errors.New("invalid password reset token")
)
