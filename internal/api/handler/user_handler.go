package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/staffcore/employee-system/internal/api/metrics"
	"github.com/staffcore/employee-system/internal/api/middleware"
	"github.com/staffcore/employee-system/internal/core/domain"
	"github.com/staffcore/employee-system/internal/core/ports"
)

// imageFormField is the multipart part name for profile images.
const imageFormField = "user_image"

// UserHandler serves the employee CRUD surface.
type UserHandler struct {
	users  ports.UserService
	images ports.ImageStore
}

func NewUserHandler(users ports.UserService, images ports.ImageStore) *UserHandler {
	return &UserHandler{users: users, images: images}
}

// List returns a page of users with the total count.
//
// @Summary      Retrieve users
// @Tags         users
// @Produce      json
// @Param        skip   query  int  false  "Records to skip"
// @Param        limit  query  int  false  "Page size"
// @Success      200  {object}  usersPublic
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	skip, limit := pagination(c)

	users, count, err := h.users.List(c.Request().Context(), skip, limit)
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, usersPublic{Data: users, Count: count})
}

// Create registers a new employee from a multipart form, optionally storing
// a profile image first.
//
// @Summary      Create a user
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Success      201  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      413  {object}  map[string]string
// @Failure      415  {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	birthday, err := time.Parse(dateLayout, req.Birthday)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "birthday must use the format yyyy-mm-dd")
	}

	imagePath, err := h.storeImage(c, req.FirstName, req.LastName)
	if err != nil {
		return err
	}

	user, err := h.users.Create(c.Request().Context(), ports.CreateUserInput{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Birthday:  birthday,
		// National numbers arrive bare; the Mexico country code makes them
		// dialable.
		PhoneNumber: "+52" + req.PhoneNumber,
		Email:       req.Email,
		Salary:      req.Salary,
		IsAdmin:     req.IsAdmin,
		IsOwner:     req.IsOwner,
		RoleName:    req.RoleName,
		ImagePath:   imagePath,
	})
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, user)
}

// Me returns the authenticated principal.
//
// @Summary      Get current user
// @Tags         users
// @Produce      json
// @Success      200  {object}  domain.User
// @Router       /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.Principal(c))
}

// UpdateMe applies a partial update to the authenticated user's own profile.
// Only supplied form fields change; privilege flags, salary and role are not
// self-serviceable.
//
// @Summary      Update own user
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      409  {object}  map[string]string
// @Router       /users/me [patch]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	current := middleware.Principal(c)

	input, err := h.patchFromForm(c)
	if err != nil {
		return err
	}

	if input.Username != nil {
		if existing, err := h.users.GetByUsername(c.Request().Context(), *input.Username); err == nil && existing.ID != current.ID {
			return domain.ErrUsernameTaken
		}
	}

	if path, err := h.storeImage(c, current.FirstName, current.LastName); err != nil {
		return err
	} else if path != "" {
		input.ImagePath = &path
	}

	updated, err := h.users.Update(c.Request().Context(), current.ID, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// UpdatePassword changes the authenticated user's password.
//
// @Summary      Update own password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  updatePasswordRequest  true  "Current and new password"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  map[string]string
// @Router       /users/me/password [patch]
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.users.ChangePassword(c.Request().Context(), middleware.Principal(c), req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Password updated successfully!"})
}

// GetByID returns a user record. Regular users may read their own record;
// anything else requires the admin flag.
//
// @Summary      Get a specific user by id
// @Tags         users
// @Produce      json
// @Param        id  path  int  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.users.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	current := middleware.Principal(c)
	if user.ID != current.ID && !current.IsAdmin {
		return domain.ErrInsufficientPrivileges
	}
	return c.JSON(http.StatusOK, user)
}

// Update applies a partial update to any user record (admins only).
//
// @Summary      Update a user
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        id  path  int  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	target, err := h.users.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	input, err := h.patchFromForm(c)
	if err != nil {
		return err
	}

	// Admin-managed fields, not available through /me.
	if salary, err := formFloat(c, "salary"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "salary must be a number")
	} else {
		input.Salary = salary
	}
	if isAdmin, err := formBool(c, "is_admin"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "is_admin must be a boolean")
	} else {
		input.IsAdmin = isAdmin
	}
	input.RoleName = formString(c, "role_name")

	if input.Username != nil {
		if existing, err := h.users.GetByUsername(c.Request().Context(), *input.Username); err == nil && existing.ID != id {
			return domain.ErrUsernameTaken
		}
	}

	if path, err := h.storeImage(c, target.FirstName, target.LastName); err != nil {
		return err
	} else if path != "" {
		input.ImagePath = &path
	}

	updated, err := h.users.Update(c.Request().Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Terminate marks a user inactive as of today (owners only). Without
// terminate=true the record is returned unchanged, matching a dry-run
// lookup.
//
// @Summary      Terminate a user
// @Tags         users
// @Produce      json
// @Param        id         path   int   true   "User id"
// @Param        terminate  query  bool  false  "Apply the termination"
// @Success      200  {object}  domain.User
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id}/terminate [patch]
func (h *UserHandler) Terminate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	apply, _ := strconv.ParseBool(c.QueryParam("terminate"))
	if !apply {
		user, err := h.users.GetByID(c.Request().Context(), id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, user)
	}

	user, err := h.users.Terminate(c.Request().Context(), middleware.Principal(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete permanently removes a user record (owners only).
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        id  path  int  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.users.Delete(c.Request().Context(), middleware.Principal(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User deleted successfully!"})
}

// patchFromForm collects the self-serviceable profile fields that were
// actually supplied.
func (h *UserHandler) patchFromForm(c echo.Context) (ports.UpdateUserInput, error) {
	input := ports.UpdateUserInput{
		Username:    formString(c, "user_name"),
		Password:    formString(c, "password"),
		FirstName:   formString(c, "first_name"),
		LastName:    formString(c, "last_name"),
		PhoneNumber: formString(c, "phone_number"),
		Email:       formString(c, "email"),
	}

	birthday, err := formDate(c, "birthday")
	if err != nil {
		return input, echo.NewHTTPError(http.StatusBadRequest, "birthday must use the format yyyy-mm-dd")
	}
	input.Birthday = birthday
	return input, nil
}

// storeImage persists an uploaded profile image when one was attached and
// returns its stored path. Returns "" when the request carries no image.
func (h *UserHandler) storeImage(c echo.Context, firstName, lastName string) (string, error) {
	file, err := c.FormFile(imageFormField)
	if err != nil {
		return "", nil // no image part in the request
	}

	content, contentType, err := readUpload(file)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s_photo", strings.ToLower(firstName), strings.ToLower(lastName))
	return h.images.Upload(c.Request().Context(), ports.ImageUpload{
		Content:     content,
		ContentType: contentType,
		DesiredName: name,
	})
}

func readUpload(file *multipart.FileHeader) ([]byte, string, error) {
	if file.Size > domain.MaxImageSize {
		return nil, "", domain.ErrFileTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	defer src.Close()

	content, err := io.ReadAll(io.LimitReader(src, domain.MaxImageSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	if len(content) > domain.MaxImageSize {
		return nil, "", domain.ErrFileTooLarge
	}

	return content, file.Header.Get("Content-Type"), nil
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
