package entity

import "time"

type Category struct {
	ID         string    `json:"id" firestore:"-"`
	Name       string    `json:"name" firestore:"name"`
	LocalName  string    `json:"local_name,omitempty" firestore:"localName"`
	UsageCount int       `json:"usage_count" firestore:"usageCount"`
	ImageURL   string    `json:"image_url,omitempty" firestore:"imageUrl"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}
