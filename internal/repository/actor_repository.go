package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/movie-review-api/internal/database"
	"github.com/iliyamo/movie-review-api/internal/model"
)

const actorsCollection = "actors"

// ActorRepo manages the join collection linking actor details to movies.
type ActorRepo struct {
	db *database.Mongo
}

func NewActorRepo(db *database.Mongo) *ActorRepo { return &ActorRepo{db: db} }

// Create inserts the link and assigns its id. Existence of the referenced
// documents and pair uniqueness are the handler's checks.
func (r *ActorRepo) Create(ctx context.Context, a *model.Actor) error {
	a.ID = primitive.NewObjectID().Hex()
	a.CreatedAt = time.Now().UTC()
	_, err := r.db.Collection(actorsCollection).InsertOne(ctx, a)
	return err
}

// FindByID fetches a link or returns ErrNotFound.
func (r *ActorRepo) FindByID(ctx context.Context, id string) (*model.Actor, error) {
	var a model.Actor
	err := r.db.Collection(actorsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// FindByPair returns the link for (actorDetailsID, movieID) or nil without
// error when the pair is not cast yet.
func (r *ActorRepo) FindByPair(ctx context.Context, actorDetailsID, movieID string) (*model.Actor, error) {
	var a model.Actor
	err := r.db.Collection(actorsCollection).FindOne(ctx, bson.M{
		"actor_details_id": actorDetailsID,
		"movie_id":         movieID,
	}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByMovie returns all links for a movie.
func (r *ActorRepo) ListByMovie(ctx context.Context, movieID string) ([]model.Actor, error) {
	return r.list(ctx, bson.M{"movie_id": movieID})
}

// ListByActorDetails returns all links for an actor.
func (r *ActorRepo) ListByActorDetails(ctx context.Context, actorDetailsID string) ([]model.Actor, error) {
	return r.list(ctx, bson.M{"actor_details_id": actorDetailsID})
}

func (r *ActorRepo) list(ctx context.Context, filter bson.M) ([]model.Actor, error) {
	cur, err := r.db.Collection(actorsCollection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	actors := []model.Actor{}
	if err := cur.All(ctx, &actors); err != nil {
		return nil, err
	}
	return actors, nil
}

// Delete removes a single link.
func (r *ActorRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.Collection(actorsCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
