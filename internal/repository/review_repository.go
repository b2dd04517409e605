package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/movie-review-api/internal/database"
	"github.com/iliyamo/movie-review-api/internal/model"
)

const reviewsCollection = "reviews"

// ReviewRepo encapsulates queries against the reviews collection. Reviews
// are keyed by id like every other document, but the business key is the
// (user, movie) pair: the handler looks the pair up and either creates or
// overwrites.
type ReviewRepo struct {
	db *database.Mongo
}

func NewReviewRepo(db *database.Mongo) *ReviewRepo { return &ReviewRepo{db: db} }

// Create inserts the review and assigns its id.
func (r *ReviewRepo) Create(ctx context.Context, rev *model.Review) error {
	rev.ID = primitive.NewObjectID().Hex()
	_, err := r.db.Collection(reviewsCollection).InsertOne(ctx, rev)
	return err
}

// Update overwrites message, rating, approval and posting date of an
// existing review.
func (r *ReviewRepo) Update(ctx context.Context, rev *model.Review) error {
	res, err := r.db.Collection(reviewsCollection).UpdateOne(ctx,
		bson.M{"_id": rev.ID},
		bson.M{"$set": bson.M{
			"message":     rev.Message,
			"rating":      rev.Rating,
			"approved":    rev.Approved,
			"date_posted": rev.DatePosted,
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByID fetches a review or returns ErrNotFound.
func (r *ReviewRepo) FindByID(ctx context.Context, id string) (*model.Review, error) {
	var rev model.Review
	err := r.db.Collection(reviewsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&rev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

// FindByUserAndMovie returns the review for the composite business key or
// nil without error when the user has not reviewed the movie.
func (r *ReviewRepo) FindByUserAndMovie(ctx context.Context, userID, movieID string) (*model.Review, error) {
	var rev model.Review
	err := r.db.Collection(reviewsCollection).FindOne(ctx, bson.M{
		"user_id":  userID,
		"movie_id": movieID,
	}).Decode(&rev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

// ListPending returns every review still waiting for approval.
func (r *ReviewRepo) ListPending(ctx context.Context) ([]model.Review, error) {
	return r.list(ctx, bson.M{"approved": false})
}

// ListApprovedByMovie returns only approved reviews for the movie. This is
// the sole review read path exposed to anonymous callers.
func (r *ReviewRepo) ListApprovedByMovie(ctx context.Context, movieID string) ([]model.Review, error) {
	return r.list(ctx, bson.M{"movie_id": movieID, "approved": true})
}

// ListByUser returns all reviews by a user regardless of approval state.
func (r *ReviewRepo) ListByUser(ctx context.Context, userID string) ([]model.Review, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *ReviewRepo) list(ctx context.Context, filter bson.M) ([]model.Review, error) {
	cur, err := r.db.Collection(reviewsCollection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	reviews := []model.Review{}
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// SetApproval flips the approval flag on a review.
func (r *ReviewRepo) SetApproval(ctx context.Context, id string, approved bool) error {
	res, err := r.db.Collection(reviewsCollection).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"approved": approved}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a review.
func (r *ReviewRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.Collection(reviewsCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
