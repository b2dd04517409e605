package model

import "time"

// ActorDetails describes a person who can be cast in movies. The
// (FirstName, LastName) pair is unique across the collection.
type ActorDetails struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	FirstName string    `bson:"first_name" json:"firstName"`
	LastName  string    `bson:"last_name" json:"lastName"`
	Gender    string    `bson:"gender" json:"gender"`
	Age       int       `bson:"age" json:"age"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// ActorDetailsUpdate carries the optional fields of a PATCH request.
type ActorDetailsUpdate struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Gender    *string `json:"gender"`
	Age       *int    `json:"age"`
}

// Actor links one ActorDetails record to one Movie. The pair is unique: the
// same person cannot be cast twice in the same movie. Both referenced ids
// must resolve at creation time.
type Actor struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	ActorDetailsID string    `bson:"actor_details_id" json:"actorDetailsId"`
	MovieID        string    `bson:"movie_id" json:"movieId"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
}
