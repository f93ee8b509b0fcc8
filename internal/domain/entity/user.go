package entity

import (
	"time"
)

// RoleUser is the only role eligible to own listings.
const RoleUser = "User"

type User struct {
	ID            string    `json:"id" firestore:"-"`
	UID           string    `json:"uid,omitempty" firestore:"uid,omitempty"`
	Name          string    `json:"name" firestore:"name"`
	Email         string    `json:"email,omitempty" firestore:"email,omitempty"`
	ContactNumber string    `json:"contact_number" firestore:"contactNumber"`
	Role          string    `json:"role" firestore:"role"`
	Bio           string    `json:"bio" firestore:"bio"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
}

// Identifier prefers the auth uid stored on the profile and falls back to the
// document id.
func (u *User) Identifier() string {
	if u.UID != "" {
		return u.UID
	}
	return u.ID
}
