package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/movie-review-api/internal/database"
	"github.com/iliyamo/movie-review-api/internal/model"
)

const usersCollection = "users"

// UserRepo encapsulates all queries against the users collection.
type UserRepo struct {
	db *database.Mongo
}

func NewUserRepo(db *database.Mongo) *UserRepo { return &UserRepo{db: db} }

// Create inserts the user and assigns its id. The email is normalized to
// lower case; a duplicate maps to ErrDuplicate whether it is caught by the
// pre-check in the handler or by the unique index here.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.ID = primitive.NewObjectID().Hex()
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	if _, err := r.db.Collection(usersCollection).InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// FindByEmail returns nil without error when no user has the address.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.db.Collection(usersCollection).FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByID fetches a user or returns ErrNotFound.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := r.db.Collection(usersCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns every user document.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	cur, err := r.db.Collection(usersCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var users []model.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Count returns the number of registered users. The register handler uses
// it to decide whether the account being created is the very first one.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	return r.db.Collection(usersCollection).CountDocuments(ctx, bson.M{})
}

// UpdateName patches the editable profile fields.
func (r *UserRepo) UpdateName(ctx context.Context, id, firstName, lastName string) error {
	res, err := r.db.Collection(usersCollection).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"first_name": firstName,
			"last_name":  lastName,
			"updated_at": time.Now().UTC(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetApproval flips the approval gate. Setting the same value twice is a
// no-op, which makes the admin endpoint idempotent.
func (r *UserRepo) SetApproval(ctx context.Context, id string, approved bool) error {
	res, err := r.db.Collection(usersCollection).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"approved": approved, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the user document. Guarding root accounts is the
// handler's responsibility; the repository deletes whatever id it is given.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.Collection(usersCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
