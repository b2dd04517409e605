package handler

import (
	"context"

	"github.com/iliyamo/movie-review-api/internal/model"
)

// The store interfaces below are what handlers consume; the concrete
// *repository.XRepo types satisfy them. Lookups that probe for a business
// key (email, title, name pair, cast pair, user+movie) return nil without
// error when nothing matches, id lookups return repository.ErrNotFound.

// UserStore persists accounts.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Count(ctx context.Context) (int64, error)
	UpdateName(ctx context.Context, id, firstName, lastName string) error
	SetApproval(ctx context.Context, id string, approved bool) error
	Delete(ctx context.Context, id string) error
}

// MovieStore persists catalog entries.
type MovieStore interface {
	Create(ctx context.Context, m *model.Movie) error
	FindByID(ctx context.Context, id string) (*model.Movie, error)
	FindByTitle(ctx context.Context, title string) (*model.Movie, error)
	List(ctx context.Context) ([]model.Movie, error)
	SearchByTitle(ctx context.Context, keyword string) ([]model.Movie, error)
	Update(ctx context.Context, id string, upd model.MovieUpdate) error
	DeleteCascade(ctx context.Context, id string) error
}

// ActorDetailsStore persists people castable in movies. Delete returns
// repository.ErrConflict while any cast link still references the record.
type ActorDetailsStore interface {
	Create(ctx context.Context, a *model.ActorDetails) error
	FindByID(ctx context.Context, id string) (*model.ActorDetails, error)
	FindByName(ctx context.Context, firstName, lastName string) (*model.ActorDetails, error)
	List(ctx context.Context) ([]model.ActorDetails, error)
	SearchByName(ctx context.Context, query string) ([]model.ActorDetails, error)
	Update(ctx context.Context, id string, upd model.ActorDetailsUpdate) error
	Delete(ctx context.Context, id string) error
}

// ActorStore persists the links between actor details and movies.
type ActorStore interface {
	Create(ctx context.Context, a *model.Actor) error
	FindByID(ctx context.Context, id string) (*model.Actor, error)
	FindByPair(ctx context.Context, actorDetailsID, movieID string) (*model.Actor, error)
	ListByMovie(ctx context.Context, movieID string) ([]model.Actor, error)
	ListByActorDetails(ctx context.Context, actorDetailsID string) ([]model.Actor, error)
	Delete(ctx context.Context, id string) error
}

// ReviewStore persists reviews.
type ReviewStore interface {
	Create(ctx context.Context, r *model.Review) error
	Update(ctx context.Context, r *model.Review) error
	FindByID(ctx context.Context, id string) (*model.Review, error)
	FindByUserAndMovie(ctx context.Context, userID, movieID string) (*model.Review, error)
	ListPending(ctx context.Context) ([]model.Review, error)
	ListApprovedByMovie(ctx context.Context, movieID string) ([]model.Review, error)
	ListByUser(ctx context.Context, userID string) ([]model.Review, error)
	SetApproval(ctx context.Context, id string, approved bool) error
	Delete(ctx context.Context, id string) error
}
