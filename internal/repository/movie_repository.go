package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/movie-review-api/internal/database"
	"github.com/iliyamo/movie-review-api/internal/model"
)

const moviesCollection = "movies"

// MovieRepo encapsulates all queries against the movies collection. It also
// owns the cascade that removes a movie's actor links and reviews, which is
// why it holds the database handle rather than a single collection.
type MovieRepo struct {
	db *database.Mongo
}

func NewMovieRepo(db *database.Mongo) *MovieRepo { return &MovieRepo{db: db} }

// Create inserts the movie and assigns its id and timestamps. Title
// uniqueness is checked by the handler via FindByTitle before calling this.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	m.ID = primitive.NewObjectID().Hex()
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	_, err := r.db.Collection(moviesCollection).InsertOne(ctx, m)
	return err
}

// FindByID fetches a movie or returns ErrNotFound.
func (r *MovieRepo) FindByID(ctx context.Context, id string) (*model.Movie, error) {
	var m model.Movie
	err := r.db.Collection(moviesCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindByTitle looks for an exact title match ignoring case. It returns nil
// without error when the title is free.
func (r *MovieRepo) FindByTitle(ctx context.Context, title string) (*model.Movie, error) {
	filter := bson.M{"title": bson.M{
		"$regex":   "^" + regexp.QuoteMeta(title) + "$",
		"$options": "i",
	}}
	var m model.Movie
	err := r.db.Collection(moviesCollection).FindOne(ctx, filter).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns the whole catalog.
func (r *MovieRepo) List(ctx context.Context) ([]model.Movie, error) {
	cur, err := r.db.Collection(moviesCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var movies []model.Movie
	if err := cur.All(ctx, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// SearchByTitle matches the keyword as a case-insensitive substring of the
// title. No match yields an empty slice, not an error.
func (r *MovieRepo) SearchByTitle(ctx context.Context, keyword string) ([]model.Movie, error) {
	filter := bson.M{"title": bson.M{
		"$regex":   regexp.QuoteMeta(keyword),
		"$options": "i",
	}}
	cur, err := r.db.Collection(moviesCollection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	movies := []model.Movie{}
	if err := cur.All(ctx, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// Update applies the non-nil fields of the patch.
func (r *MovieRepo) Update(ctx context.Context, id string, upd model.MovieUpdate) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.ImgURL != nil {
		set["img_url"] = *upd.ImgURL
	}
	if upd.Cost != nil {
		set["cost"] = *upd.Cost
	}
	if upd.YearRelease != nil {
		set["year_release"] = *upd.YearRelease
	}
	res, err := r.db.Collection(moviesCollection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCascade removes the movie together with its actor links and
// reviews. The age gate is enforced by the handler before calling this.
func (r *MovieRepo) DeleteCascade(ctx context.Context, id string) error {
	res, err := r.db.Collection(moviesCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	if _, err := r.db.Collection(actorsCollection).DeleteMany(ctx, bson.M{"movie_id": id}); err != nil {
		return err
	}
	if _, err := r.db.Collection(reviewsCollection).DeleteMany(ctx, bson.M{"movie_id": id}); err != nil {
		return err
	}
	return nil
}
