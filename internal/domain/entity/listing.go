package entity

import (
	"time"
)

const MaxListingImages = 8

type Location struct {
	Latitude  float64 `json:"latitude" firestore:"latitude"`
	Longitude float64 `json:"longitude" firestore:"longitude"`
}

// Listing is a post document in the "posts" collection. ID is the document
// id and is never written into the body.
type Listing struct {
	ID            string    `json:"id" firestore:"-"`
	Title         string    `json:"title" firestore:"title"`
	Description   string    `json:"description" firestore:"description"`
	Category      string    `json:"category" firestore:"category"`
	Tags          []string  `json:"tags" firestore:"tags"`
	Price         float64   `json:"price" firestore:"price"`
	ModelYear     *int      `json:"model_year,omitempty" firestore:"modelYear"`
	ContactNumber string    `json:"contact_number" firestore:"contactNumber"`
	ImageURLs     []string  `json:"image_urls" firestore:"imageUrls"`
	IsFeatured    bool      `json:"is_featured" firestore:"isFeatured"`
	OwnerID       string    `json:"owner_id" firestore:"userId"`
	Location      *Location `json:"location,omitempty" firestore:"location"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`

	Views      int      `json:"views" firestore:"views"`
	Likes      []string `json:"likes" firestore:"likes"`
	Complaints []string `json:"complaints" firestore:"complaints"`
}

// CoverImage is the first image, shown as the listing thumbnail.
func (l *Listing) CoverImage() string {
	if len(l.ImageURLs) == 0 {
		return ""
	}
	return l.ImageURLs[0]
}

// ListingDraft carries the caller-writable listing fields.
type ListingDraft struct {
	Title         string
	Description   string
	Category      string
	Tags          []string
	Price         float64
	ModelYear     *int
	ContactNumber string
	ImageURLs     []string
	IsFeatured    bool
	OwnerID       string
	Location      *Location
}
