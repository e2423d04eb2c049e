package handler

import "github.com/staffcore/employee-system/internal/core/domain"

// usersPublic is the list envelope: a page of users plus the total count.
type usersPublic struct {
	Data  []*domain.User `json:"data"`
	Count int64          `json:"count"`
}

// createUserRequest carries the multipart form fields for user creation.
// The optional profile image travels as a separate file part.
type createUserRequest struct {
	FirstName   string  `form:"first_name"   validate:"required,max=50"`
	LastName    string  `form:"last_name"    validate:"required,max=50"`
	PhoneNumber string  `form:"phone_number" validate:"required"`
	Email       string  `form:"email"        validate:"required,email,max=50"`
	Birthday    string  `form:"birthday"     validate:"required,datetime=2006-01-02"`
	Username    string  `form:"user_name"    validate:"required,max=50"`
	Salary      float64 `form:"salary"       validate:"gte=0"`
	Password    string  `form:"password"     validate:"required,min=8,max=50"`
	IsAdmin     bool    `form:"is_admin"`
	IsOwner     bool    `form:"is_owner"`
	RoleName    string  `form:"role_name"    validate:"required,max=50"`
}

// updatePasswordRequest carries a password change for the current user.
type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=50"`
}
