package domain

import (
	"errors"
	"time"
)

// Role is an organizational position. Every user references exactly one
// role; a role referenced by at least one user cannot be deleted.
type Role struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	DateCreated time.Time `json:"date_created"`
}

var (
	ErrRoleNotFound  = errors.New("role not found")
	ErrRoleNameTaken = errors.New("role with this name already exists")
	ErrRoleInUse     = errors.New("role cannot be deleted because it is linked to user(s)")
)
