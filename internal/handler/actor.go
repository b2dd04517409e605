package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-review-api/internal/model"
	"github.com/iliyamo/movie-review-api/internal/repository"
)

// ActorHandler manages the links that cast a person in a movie and the
// fan-out reads across them.
type ActorHandler struct {
	Actors  ActorStore
	Details ActorDetailsStore
	Movies  MovieStore
}

func NewActorHandler(actors ActorStore, details ActorDetailsStore, movies MovieStore) *ActorHandler {
	return &ActorHandler{Actors: actors, Details: details, Movies: movies}
}

type actorLinkReq struct {
	ActorDetailsID string `json:"actorDetailsId" validate:"required"`
	MovieID        string `json:"movieId" validate:"required"`
}

// Create casts a person in a movie. Both referenced ids must resolve and
// the pair must not be linked yet.
func (h *ActorHandler) Create(c echo.Context) error {
	var req actorLinkReq
	if err := c.Bind(&req); err != nil {
		return fail(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, "Actor and movie ids are required")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if _, err := h.Details.FindByID(ctx, req.ActorDetailsID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, "Actor does not exist")
		}
		return fail(c, "Failed to add actor to movie")
	}
	if _, err := h.Movies.FindByID(ctx, req.MovieID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, "Movie does not exist")
		}
		return fail(c, "Failed to add actor to movie")
	}

	existing, err := h.Actors.FindByPair(ctx, req.ActorDetailsID, req.MovieID)
	if err != nil {
		return fail(c, "Failed to add actor to movie")
	}
	if existing != nil {
		return fail(c, "Actor is already added in the movie")
	}

	a := &model.Actor{ActorDetailsID: req.ActorDetailsID, MovieID: req.MovieID}
	if err := h.Actors.Create(ctx, a); err != nil {
		return fail(c, "Failed to add actor to movie")
	}
	return ok(c, a, "Successfully added actor to movie")
}

// ActorsInMovie fans out from the links of a movie to the referenced actor
// details.
func (h *ActorHandler) ActorsInMovie(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	links, err := h.Actors.ListByMovie(ctx, c.Param("movieId"))
	if err != nil {
		return fail(c, "Failed to fetch actors")
	}
	details := []model.ActorDetails{}
	for _, link := range links {
		a, err := h.Details.FindByID(ctx, link.ActorDetailsID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return fail(c, "Failed to fetch actors")
		}
		details = append(details, *a)
	}
	return ok(c, details, "Successfully fetched actors")
}

// MoviesOfActor fans out from the links of an actor to the referenced
// movies.
func (h *ActorHandler) MoviesOfActor(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	links, err := h.Actors.ListByActorDetails(ctx, c.Param("actorDetailsId"))
	if err != nil {
		return fail(c, "Failed to fetch movies")
	}
	movies := []model.Movie{}
	for _, link := range links {
		m, err := h.Movies.FindByID(ctx, link.MovieID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return fail(c, "Failed to fetch movies")
		}
		movies = append(movies, *m)
	}
	return ok(c, movies, "Successfully fetched movies")
}

// Delete removes a single cast link.
func (h *ActorHandler) Delete(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Actors.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, "Actor is not in the movie")
		}
		return fail(c, "Failed to remove actor from movie")
	}
	return ok(c, echo.Map{"id": c.Param("id")}, "Successfully removed actor from movie")
}
