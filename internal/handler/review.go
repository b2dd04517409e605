package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-review-api/internal/model"
	"github.com/iliyamo/movie-review-api/internal/queue"
	"github.com/iliyamo/movie-review-api/internal/repository"
	queue_publisher "github.com/iliyamo/movie-review-api/internal/service"
)

// ReviewHandler implements the review workflow. A review moves through
// none -> pending -> approved; editing an approved review puts it back to
// pending, with no exception for unchanged content.
type ReviewHandler struct {
	Reviews ReviewStore
	Movies  MovieStore
	publish func(context.Context, queue.AuditEvent) error
}

func NewReviewHandler(reviews ReviewStore, movies MovieStore) *ReviewHandler {
	return &ReviewHandler{Reviews: reviews, Movies: movies, publish: queue_publisher.PublishAudit}
}

type reviewSubmitReq struct {
	MovieID string `json:"movieId" validate:"required"`
	Message string `json:"message"`
	Rating  int    `json:"rating" validate:"min=0,max=5"`
}

// Submit is an upsert keyed by the (caller, movie) pair rather than by
// review id: the first submission creates a pending review, any further
// submission overwrites it and resets approval.
func (h *ReviewHandler) Submit(c echo.Context) error {
	var req reviewSubmitReq
	if err := c.Bind(&req); err != nil {
		return fail(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, "Movie id is required and rating must be between 0 and 5")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	userID := callerID(c)

	movie, err := h.Movies.FindByID(ctx, req.MovieID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, "Movie does not exist")
		}
		return fail(c, "Failed to add review")
	}

	existing, err := h.Reviews.FindByUserAndMovie(ctx, userID, req.MovieID)
	if err != nil {
		return fail(c, "Failed to add review")
	}

	rev := existing
	resubmission := existing != nil
	if rev == nil {
		rev = &model.Review{UserID: userID, MovieID: req.MovieID}
	}
	rev.Message = req.Message
	rev.Rating = req.Rating
	rev.Approved = false
	rev.DatePosted = time.Now().UTC()

	if resubmission {
		err = h.Reviews.Update(ctx, rev)
	} else {
		err = h.Reviews.Create(ctx, rev)
	}
	if err != nil {
		return fail(c, "Failed to add review")
	}

	ev := queue.AuditEvent{
		Type:         queue.TypeReviewSubmitted,
		OccurredAt:   time.Now().UTC().Format(time.RFC3339),
		UserID:       userID,
		ReviewID:     rev.ID,
		MovieID:      movie.ID,
		MovieTitle:   movie.Title,
		Rating:       rev.Rating,
		Resubmission: resubmission,
	}
	go func() { _ = h.publish(context.Background(), ev) }()

	return ok(c, rev, "Successfully added review")
}

// Pending returns every review waiting for approval.
func (h *ReviewHandler) Pending(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	reviews, err := h.Reviews.ListPending(ctx)
	if err != nil {
		return fail(c, "Failed to fetch reviews")
	}
	return ok(c, reviews, "Successfully fetched reviews")
}

// ApprovedForMovie is the public read path: it only ever returns approved
// reviews.
func (h *ReviewHandler) ApprovedForMovie(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	reviews, err := h.Reviews.ListApprovedByMovie(ctx, c.Param("movieId"))
	if err != nil {
		return fail(c, "Failed to fetch reviews")
	}
	return ok(c, reviews, "Successfully fetched reviews")
}

// ByUser returns all reviews of a user regardless of approval state.
func (h *ReviewHandler) ByUser(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	reviews, err := h.Reviews.ListByUser(ctx, c.Param("userId"))
	if err != nil {
		return fail(c, "Failed to fetch reviews")
	}
	return ok(c, reviews, "Successfully fetched reviews")
}

// MyReview returns the caller's own review for a movie, or null data when
// none exists. Absence is not an error.
func (h *ReviewHandler) MyReview(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	rev, err := h.Reviews.FindByUserAndMovie(ctx, callerID(c), c.Param("movieId"))
	if err != nil {
		return fail(c, "Failed to fetch review")
	}
	if rev == nil {
		return ok(c, nil, "No review yet")
	}
	return ok(c, rev, "Successfully fetched review")
}

type reviewApprovalReq struct {
	Approved bool `json:"approved"`
}

// Approve flips the approval flag on a review.
func (h *ReviewHandler) Approve(c echo.Context) error {
	var req reviewApprovalReq
	if err := c.Bind(&req); err != nil {
		return fail(c, "Invalid request body")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Reviews.SetApproval(ctx, c.Param("id"), req.Approved); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, "Review does not exist")
		}
		return fail(c, "Failed to update review")
	}
	return ok(c, echo.Map{"id": c.Param("id"), "approved": req.Approved}, "Successfully updated review")
}

// Delete removes a review. The owner may delete their own; admins may
// delete any.
func (h *ReviewHandler) Delete(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	rev, err := h.Reviews.FindByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, "Review does not exist")
		}
		return fail(c, "Failed to delete review")
	}
	if rev.UserID != callerID(c) && !callerIsAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if err := h.Reviews.Delete(ctx, rev.ID); err != nil {
		return fail(c, "Failed to delete review")
	}
	return ok(c, echo.Map{"id": rev.ID}, "Successfully deleted review")
}
