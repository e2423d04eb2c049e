package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffcore/employee-system/internal/core/domain"
	"github.com/staffcore/employee-system/internal/core/ports"
)

// RoleHandler serves the organizational role CRUD surface. Every route is
// admin-gated at the router.
type RoleHandler struct {
	roles ports.RoleService
}

func NewRoleHandler(roles ports.RoleService) *RoleHandler {
	return &RoleHandler{roles: roles}
}

type rolesPublic struct {
	Data  []*domain.Role `json:"data"`
	Count int64          `json:"count"`
}

type rolesNames struct {
	Data  []string `json:"data"`
	Count int64    `json:"count"`
}

type createRoleRequest struct {
	Name        string `json:"name"        validate:"required,max=50"`
	Description string `json:"description" validate:"max=255"`
}

type updateRoleRequest struct {
	Name        *string `json:"name"        validate:"omitempty,max=50"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

// List returns a page of roles. With just_names=true only the role names
// are returned, which is what selection dropdowns need.
//
// @Summary      Retrieve roles
// @Tags         roles
// @Produce      json
// @Param        skip        query  int   false  "Records to skip"
// @Param        limit       query  int   false  "Page size"
// @Param        just_names  query  bool  false  "Return only role names"
// @Success      200  {object}  rolesPublic
// @Router       /roles [get]
func (h *RoleHandler) List(c echo.Context) error {
	skip, limit := pagination(c)

	roles, count, err := h.roles.List(c.Request().Context(), skip, limit)
	if err != nil {
		return err
	}

	if c.QueryParam("just_names") == "true" {
		names := make([]string, 0, len(roles))
		for _, role := range roles {
			names = append(names, role.Name)
		}
		return c.JSON(http.StatusOK, rolesNames{Data: names, Count: count})
	}

	if roles == nil {
		roles = []*domain.Role{}
	}
	return c.JSON(http.StatusOK, rolesPublic{Data: roles, Count: count})
}

// Create registers a new role.
//
// @Summary      Create a role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        body  body  createRoleRequest  true  "Role name and description"
// @Success      201  {object}  domain.Role
// @Failure      409  {object}  map[string]string
// @Router       /roles [post]
func (h *RoleHandler) Create(c echo.Context) error {
	var req createRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := h.roles.Create(c.Request().Context(), ports.CreateRoleInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, role)
}

// GetByID returns a single role.
//
// @Summary      Get a specific role by id
// @Tags         roles
// @Produce      json
// @Param        id  path  int  true  "Role id"
// @Success      200  {object}  domain.Role
// @Failure      404  {object}  map[string]string
// @Router       /roles/{id} [get]
func (h *RoleHandler) GetByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	role, err := h.roles.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, role)
}

// Update applies a partial update to a role. A successful update refreshes
// the role's date_created stamp.
//
// @Summary      Update a role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "Role id"
// @Param        body  body  updateRoleRequest  true  "Fields to change"
// @Success      200  {object}  domain.Role
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /roles/{id} [patch]
func (h *RoleHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := h.roles.Update(c.Request().Context(), id, ports.UpdateRoleInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, role)
}

// Delete removes a role that no user references.
//
// @Summary      Delete a role
// @Tags         roles
// @Produce      json
// @Param        id  path  int  true  "Role id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /roles/{id} [delete]
func (h *RoleHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.roles.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Role deleted successfully!"})
}
