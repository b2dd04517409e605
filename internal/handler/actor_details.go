package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-review-api/internal/model"
	"github.com/iliyamo/movie-review-api/internal/repository"
)

// ActorDetailsHandler exposes CRUD and search over the people castable in
// movies.
type ActorDetailsHandler struct {
	Details ActorDetailsStore
}

func NewActorDetailsHandler(details ActorDetailsStore) *ActorDetailsHandler {
	return &ActorDetailsHandler{Details: details}
}

type actorDetailsCreateReq struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Gender    string `json:"gender"`
	Age       int    `json:"age" validate:"min=0"`
}

// Create adds a person, rejecting an already-taken (firstName, lastName)
// pair.
func (h *ActorDetailsHandler) Create(c echo.Context) error {
	var req actorDetailsCreateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, "First and last name are required")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	existing, err := h.Details.FindByName(ctx, req.FirstName, req.LastName)
	if err != nil {
		return fail(c, "Failed to create actor")
	}
	if existing != nil {
		return fail(c, "Actor already exists")
	}

	a := &model.ActorDetails{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Gender:    req.Gender,
		Age:       req.Age,
	}
	if err := h.Details.Create(ctx, a); err != nil {
		return fail(c, "Failed to create actor")
	}
	return ok(c, a, "Successfully created actor")
}

// List returns every person on file.
func (h *ActorDetailsHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	details, err := h.Details.List(ctx)
	if err != nil {
		return fail(c, "Failed to fetch actors")
	}
	return ok(c, details, "Successfully fetched actors")
}

// Get returns one person by id.
func (h *ActorDetailsHandler) Get(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	a, err := h.Details.FindByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, "Actor does not exist")
		}
		return fail(c, "Failed to fetch actor")
	}
	return ok(c, a, "Successfully fetched actor")
}

// SearchByName matches each whitespace-separated token of the query against
// first or last names, case-insensitively, and returns the de-duplicated
// union.
func (h *ActorDetailsHandler) SearchByName(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	details, err := h.Details.SearchByName(ctx, c.Param("name"))
	if err != nil {
		return fail(c, "Failed to search actors")
	}
	return ok(c, details, "Successfully fetched actors")
}

// Update patches the provided fields of a person.
func (h *ActorDetailsHandler) Update(c echo.Context) error {
	var upd model.ActorDetailsUpdate
	if err := c.Bind(&upd); err != nil {
		return fail(c, "Invalid request body")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Details.Update(ctx, c.Param("id"), upd); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, "Actor does not exist")
		}
		return fail(c, "Failed to update actor")
	}
	return ok(c, echo.Map{"id": c.Param("id")}, "Successfully updated actor")
}

// Delete removes a person unless they are still cast in a movie.
func (h *ActorDetailsHandler) Delete(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Details.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return fail(c, "Actor has a movie")
		}
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, "Actor does not exist")
		}
		return fail(c, "Failed to delete actor")
	}
	return ok(c, echo.Map{"id": c.Param("id")}, "Successfully deleted actor")
}
