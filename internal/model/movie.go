package model

import "time"

// Movie is a catalog entry. Titles are unique case-insensitively; the
// YearRelease date gates deletion (a movie younger than 364 days cannot be
// removed from the catalog).
type Movie struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	ImgURL      string    `bson:"img_url" json:"imgUrl"`
	Cost        float64   `bson:"cost" json:"cost"`
	YearRelease time.Time `bson:"year_release" json:"yearRelease"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// MovieUpdate carries the optional fields of a PATCH request. Nil pointers
// leave the stored value untouched.
type MovieUpdate struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	ImgURL      *string    `json:"imgUrl"`
	Cost        *float64   `json:"cost"`
	YearRelease *time.Time `json:"yearRelease"`
}
