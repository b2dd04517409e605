package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-review-api/internal/model"
	"github.com/iliyamo/movie-review-api/internal/repository"
)

// UserHandler exposes the admin-only account management endpoints.
type UserHandler struct {
	Users UserStore
}

func NewUserHandler(users UserStore) *UserHandler { return &UserHandler{Users: users} }

type userUpdateReq struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type approvalReq struct {
	Approved bool `json:"approved"`
}

// List returns every account, passwords omitted by serialization.
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return fail(c, "Failed to fetch users")
	}
	return ok(c, users, "Successfully fetched users")
}

// Get returns a single account by id.
func (h *UserHandler) Get(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Users.FindByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, "User does not exist")
		}
		return fail(c, "Failed to fetch user")
	}
	return ok(c, u, "Successfully fetched user")
}

// Update patches the name fields of an account.
func (h *UserHandler) Update(c echo.Context) error {
	var req userUpdateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, "Invalid request body")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Users.UpdateName(ctx, c.Param("id"), req.FirstName, req.LastName); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, "User does not exist")
		}
		return fail(c, "Failed to update user")
	}
	return ok(c, echo.Map{"id": c.Param("id")}, "Successfully updated user")
}

// Approve flips the approval gate on an account. Setting the current value
// again succeeds, making the endpoint idempotent.
func (h *UserHandler) Approve(c echo.Context) error {
	var req approvalReq
	if err := c.Bind(&req); err != nil {
		return fail(c, "Invalid request body")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Users.SetApproval(ctx, c.Param("id"), req.Approved); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, "User does not exist")
		}
		return fail(c, "Failed to update approval")
	}
	return ok(c, echo.Map{"id": c.Param("id"), "approved": req.Approved}, "Successfully updated approval")
}

// Delete removes an account. Accounts holding the root permission are
// protected: the attempt is rejected with 403 regardless of the caller.
func (h *UserHandler) Delete(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	target, err := h.Users.FindByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, "User does not exist")
		}
		return fail(c, "Failed to delete user")
	}
	if target.HasPermission(model.PermissionRoot) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "root user cannot be deleted"})
	}

	if err := h.Users.Delete(ctx, target.ID); err != nil {
		return fail(c, "Failed to delete user")
	}
	return ok(c, echo.Map{"id": target.ID}, "Successfully deleted user")
}
