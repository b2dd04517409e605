package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/movie-review-api/internal/database"
	"github.com/iliyamo/movie-review-api/internal/model"
)

const actorDetailsCollection = "actor_details"

// ActorDetailsRepo encapsulates queries against the actor_details collection.
type ActorDetailsRepo struct {
	db *database.Mongo
}

func NewActorDetailsRepo(db *database.Mongo) *ActorDetailsRepo {
	return &ActorDetailsRepo{db: db}
}

// Create inserts the record and assigns its id and timestamps.
func (r *ActorDetailsRepo) Create(ctx context.Context, a *model.ActorDetails) error {
	a.ID = primitive.NewObjectID().Hex()
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	_, err := r.db.Collection(actorDetailsCollection).InsertOne(ctx, a)
	return err
}

// FindByID fetches a record or returns ErrNotFound.
func (r *ActorDetailsRepo) FindByID(ctx context.Context, id string) (*model.ActorDetails, error) {
	var a model.ActorDetails
	err := r.db.Collection(actorDetailsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// FindByName looks for the exact (firstName, lastName) pair and returns nil
// without error when it is free.
func (r *ActorDetailsRepo) FindByName(ctx context.Context, firstName, lastName string) (*model.ActorDetails, error) {
	var a model.ActorDetails
	err := r.db.Collection(actorDetailsCollection).FindOne(ctx, bson.M{
		"first_name": firstName,
		"last_name":  lastName,
	}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns every actor-details document.
func (r *ActorDetailsRepo) List(ctx context.Context) ([]model.ActorDetails, error) {
	cur, err := r.db.Collection(actorDetailsCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var details []model.ActorDetails
	if err := cur.All(ctx, &details); err != nil {
		return nil, err
	}
	return details, nil
}

// SearchByName splits the query on whitespace and matches every token
// case-insensitively against first or last name, unioning the results. The
// union is de-duplicated by the (first, last) name pair.
func (r *ActorDetailsRepo) SearchByName(ctx context.Context, query string) ([]model.ActorDetails, error) {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return []model.ActorDetails{}, nil
	}

	var clauses []bson.M
	for _, tok := range tokens {
		re := bson.M{"$regex": regexp.QuoteMeta(tok), "$options": "i"}
		clauses = append(clauses, bson.M{"first_name": re}, bson.M{"last_name": re})
	}
	cur, err := r.db.Collection(actorDetailsCollection).Find(ctx, bson.M{"$or": clauses})
	if err != nil {
		return nil, err
	}
	var found []model.ActorDetails
	if err := cur.All(ctx, &found); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(found))
	out := []model.ActorDetails{}
	for _, a := range found {
		key := strings.ToLower(a.FirstName) + "\x00" + strings.ToLower(a.LastName)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, a)
	}
	return out, nil
}

// Update applies the non-nil fields of the patch.
func (r *ActorDetailsRepo) Update(ctx context.Context, id string, upd model.ActorDetailsUpdate) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.FirstName != nil {
		set["first_name"] = *upd.FirstName
	}
	if upd.LastName != nil {
		set["last_name"] = *upd.LastName
	}
	if upd.Gender != nil {
		set["gender"] = *upd.Gender
	}
	if upd.Age != nil {
		set["age"] = *upd.Age
	}
	res, err := r.db.Collection(actorDetailsCollection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the record, refusing with ErrConflict while any actor link
// still references it.
func (r *ActorDetailsRepo) Delete(ctx context.Context, id string) error {
	n, err := r.db.Collection(actorsCollection).CountDocuments(ctx, bson.M{"actor_details_id": id})
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	res, err := r.db.Collection(actorDetailsCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
