package handler

import (
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-review-api/internal/model"
	"github.com/iliyamo/movie-review-api/internal/repository"
)

// deleteGracePeriod is how long after its release date a movie must exist
// before it may be deleted from the catalog.
const deleteGracePeriod = 364 * 24 * time.Hour

// MovieHandler exposes the movie catalog endpoints.
type MovieHandler struct {
	Movies MovieStore
}

func NewMovieHandler(movies MovieStore) *MovieHandler { return &MovieHandler{Movies: movies} }

type movieCreateReq struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	ImgURL      string    `json:"imgUrl"`
	Cost        float64   `json:"cost"`
	YearRelease time.Time `json:"yearRelease" validate:"required"`
}

// Create adds a movie, rejecting titles already taken in any casing.
func (h *MovieHandler) Create(c echo.Context) error {
	var req movieCreateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, "Title and release date are required")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	existing, err := h.Movies.FindByTitle(ctx, req.Title)
	if err != nil {
		return fail(c, "Failed to create movie")
	}
	if existing != nil {
		return fail(c, "Movie already exists")
	}

	m := &model.Movie{
		Title:       req.Title,
		Description: req.Description,
		ImgURL:      req.ImgURL,
		Cost:        req.Cost,
		YearRelease: req.YearRelease,
	}
	if err := h.Movies.Create(ctx, m); err != nil {
		return fail(c, "Failed to create movie")
	}
	return ok(c, m, "Successfully created movie")
}

// List returns the whole catalog.
func (h *MovieHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	movies, err := h.Movies.List(ctx)
	if err != nil {
		return fail(c, "Failed to fetch movies")
	}
	return ok(c, movies, "Successfully fetched movies")
}

// Get returns one movie by id.
func (h *MovieHandler) Get(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	m, err := h.Movies.FindByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, "Movie does not exist")
		}
		return fail(c, "Failed to fetch movie")
	}
	return ok(c, m, "Successfully fetched movie")
}

// Search matches the title path segment as a case-insensitive substring.
// No match is a success with an empty list.
func (h *MovieHandler) Search(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	movies, err := h.Movies.SearchByTitle(ctx, c.Param("title"))
	if err != nil {
		return fail(c, "Failed to search movies")
	}
	return ok(c, movies, "Successfully fetched movies")
}

// Update patches the provided fields of a movie.
func (h *MovieHandler) Update(c echo.Context) error {
	var upd model.MovieUpdate
	if err := c.Bind(&upd); err != nil {
		return fail(c, "Invalid request body")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Movies.Update(ctx, c.Param("id"), upd); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, "Movie does not exist")
		}
		return fail(c, "Failed to update movie")
	}
	return ok(c, echo.Map{"id": c.Param("id")}, "Successfully updated movie")
}

// Delete removes a movie once at least 364 days have passed since its
// release date, cascading to its actor links and reviews.
func (h *MovieHandler) Delete(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	m, err := h.Movies.FindByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, "Movie does not exist")
		}
		return fail(c, "Failed to delete movie")
	}
	if time.Since(m.YearRelease) < deleteGracePeriod {
		return fail(c, "Too early to delete movie")
	}

	if err := h.Movies.DeleteCascade(ctx, m.ID); err != nil {
		return fail(c, "Failed to delete movie")
	}
	return ok(c, echo.Map{"id": m.ID}, "Successfully deleted movie")
}
