package handler

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-review-api/internal/config"
	"github.com/iliyamo/movie-review-api/internal/model"
	"github.com/iliyamo/movie-review-api/internal/queue"
	"github.com/iliyamo/movie-review-api/internal/repository"
	queue_publisher "github.com/iliyamo/movie-review-api/internal/service"
	"github.com/iliyamo/movie-review-api/internal/utils"
)

// AuthHandler bundles dependencies for registration, login and the
// token-derived profile endpoint.
type AuthHandler struct {
	Cfg     config.Config
	Users   UserStore
	publish func(context.Context, queue.AuditEvent) error
}

func NewAuthHandler(cfg config.Config, users UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, publish: queue_publisher.PublishAudit}
}

// ----- DTOs -----

type registerReq struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account. The very first account ever registered is
// bootstrapped with root and admin permissions and is approved immediately;
// every later account starts as an unapproved plain user.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return fail(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, "Invalid email or password format")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	total, err := h.Users.Count(ctx)
	if err != nil {
		return fail(c, "Failed to register user")
	}

	existing, err := h.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		return fail(c, "Failed to register user")
	}
	if existing != nil {
		return fail(c, "User already exist")
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return fail(c, "Failed to register user")
	}

	u := &model.User{
		Email:       req.Email,
		Password:    hash,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Permissions: []string{model.PermissionUser},
		Approved:    false,
	}
	if total == 0 {
		u.Permissions = []string{model.PermissionRoot, model.PermissionAdmin}
		u.Approved = true
	}

	if err := h.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return fail(c, "User already exist")
		}
		return fail(c, "Failed to register user")
	}

	ev := queue.AuditEvent{
		Type:       queue.TypeUserRegistered,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
		UserID:     u.ID,
		Email:      u.Email,
	}
	go func() { _ = h.publish(context.Background(), ev) }()

	return ok(c, u, "Successfully registered user")
}

// Login verifies credentials, enforces the approval gate and issues an
// access token carrying id, email and permissions.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, "Invalid request body")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		return fail(c, "Failed to log in")
	}
	if u == nil {
		return fail(c, "User does not exist in the database")
	}
	if !utils.VerifyPassword(u.Password, req.Password) {
		return fail(c, "Wrong password")
	}
	if !u.Approved {
		return fail(c, "User is not yet approved")
	}

	token, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Email, u.Permissions, h.Cfg.AccessTTLMin)
	if err != nil {
		return fail(c, "Failed to log in")
	}
	return ok(c, echo.Map{"token": token}, "Successfully logged in")
}

// Me echoes the caller's profile from the verified token claims. It is not
// re-fetched from the store, so it reflects the profile at token-issue time.
func (h *AuthHandler) Me(c echo.Context) error {
	return ok(c, echo.Map{
		"id":          callerID(c),
		"email":       callerEmail(c),
		"permissions": callerPermissions(c),
	}, "Successfully fetched profile")
}
