// Package model defines the documents persisted in MongoDB. Every entity is
// identified by an ObjectID hex string stored under _id and assigned by the
// repository at creation time.
package model

import "time"

// Permission tags carried by a user. The first registered account is
// bootstrapped with root and admin; everyone after that starts as a plain
// user awaiting approval.
const (
	PermissionUser  = "user"
	PermissionAdmin = "admin"
	PermissionRoot  = "root"
)

// User represents an account in the users collection. The password field
// holds a bcrypt hash and is never serialized into API responses.
type User struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Email       string    `bson:"email" json:"email"`
	Password    string    `bson:"password" json:"-"`
	FirstName   string    `bson:"first_name" json:"firstName"`
	LastName    string    `bson:"last_name" json:"lastName"`
	Permissions []string  `bson:"permissions" json:"permissions"`
	Approved    bool      `bson:"approved" json:"approved"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// HasPermission reports whether the user carries the given tag.
func (u *User) HasPermission(tag string) bool {
	for _, p := range u.Permissions {
		if p == tag {
			return true
		}
	}
	return false
}
