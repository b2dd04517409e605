package model

import "time"

// Review is a per-user-per-movie rating with an admin approval gate. At most
// one review exists per (UserID, MovieID) pair; a re-submission overwrites
// the stored one, refreshes DatePosted and drops Approved back to false.
type Review struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	Message    string    `bson:"message" json:"message"`
	Rating     int       `bson:"rating" json:"rating"`
	Approved   bool      `bson:"approved" json:"approved"`
	DatePosted time.Time `bson:"date_posted" json:"datePosted"`
	MovieID    string    `bson:"movie_id" json:"movieId"`
	UserID     string    `bson:"user_id" json:"userId"`
}
