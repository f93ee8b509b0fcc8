package repository

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"tabadul/internal/domain/entity"
	"tabadul/internal/domain/repository"
	"tabadul/pkg/errors"
)

const listingsCollection = "posts"

// listingDocument is the stored shape of a post. Older admin screens wrote
// views as an array and price as a string, so both are decoded loosely.
type listingDocument struct {
	Title         string           `firestore:"title"`
	Description   string           `firestore:"description"`
	Category      string           `firestore:"category"`
	Tags          []string         `firestore:"tags"`
	Price         interface{}      `firestore:"price"`
	ModelYear     *int             `firestore:"modelYear"`
	ContactNumber string           `firestore:"contactNumber"`
	ImageURLs     []string         `firestore:"imageUrls"`
	IsFeatured    bool             `firestore:"isFeatured"`
	UserID        string           `firestore:"userId"`
	Location      *entity.Location `firestore:"location"`
	CreatedAt     time.Time        `firestore:"createdAt"`
	UpdatedAt     time.Time        `firestore:"updatedAt"`
	Views         interface{}      `firestore:"views"`
	Likes         []string         `firestore:"likes"`
	Complaints    []string         `firestore:"complaints"`
}

type firestoreListingRepository struct {
	client *firestore.Client
}

func NewFirestoreListingRepository(client *firestore.Client) repository.ListingRepository {
	return &firestoreListingRepository{
		client: client,
	}
}

func (r *firestoreListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	ref := r.client.Collection(listingsCollection).NewDoc()

	if _, err := ref.Create(ctx, toListingDocument(listing)); err != nil {
		return errors.Store("Failed to create listing", err)
	}

	listing.ID = ref.ID
	return nil
}

func (r *firestoreListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	doc, err := r.client.Collection(listingsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Listing", err)
		}
		return nil, errors.Store("Failed to get listing", err)
	}

	return fromListingSnapshot(doc)
}

func (r *firestoreListingRepository) List(ctx context.Context) ([]*entity.Listing, error) {
	iter := r.client.Collection(listingsCollection).Documents(ctx)
	defer iter.Stop()

	listings := []*entity.Listing{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Store("Failed to iterate listings", err)
		}

		listing, err := fromListingSnapshot(doc)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}

	return listings, nil
}

func (r *firestoreListingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	updates := []firestore.Update{
		{Path: "title", Value: listing.Title},
		{Path: "description", Value: listing.Description},
		{Path: "category", Value: listing.Category},
		{Path: "tags", Value: nonNilStrings(listing.Tags)},
		{Path: "price", Value: listing.Price},
		{Path: "modelYear", Value: listing.ModelYear},
		{Path: "contactNumber", Value: listing.ContactNumber},
		{Path: "imageUrls", Value: nonNilStrings(listing.ImageURLs)},
		{Path: "isFeatured", Value: listing.IsFeatured},
		{Path: "userId", Value: listing.OwnerID},
		{Path: "location", Value: listing.Location},
		{Path: "updatedAt", Value: listing.UpdatedAt},
	}

	_, err := r.client.Collection(listingsCollection).Doc(listing.ID).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Listing", err)
		}
		return errors.Store("Failed to update listing", err)
	}

	return nil
}

func (r *firestoreListingRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(listingsCollection).Doc(id).Delete(ctx, firestore.Exists)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Listing", err)
		}
		return errors.Store("Failed to delete listing", err)
	}

	return nil
}

func toListingDocument(l *entity.Listing) *listingDocument {
	return &listingDocument{
		Title:         l.Title,
		Description:   l.Description,
		Category:      l.Category,
		Tags:          nonNilStrings(l.Tags),
		Price:         l.Price,
		ModelYear:     l.ModelYear,
		ContactNumber: l.ContactNumber,
		ImageURLs:     nonNilStrings(l.ImageURLs),
		IsFeatured:    l.IsFeatured,
		UserID:        l.OwnerID,
		Location:      l.Location,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
		Views:         int64(l.Views),
		Likes:         nonNilStrings(l.Likes),
		Complaints:    nonNilStrings(l.Complaints),
	}
}

func fromListingSnapshot(doc *firestore.DocumentSnapshot) (*entity.Listing, error) {
	var d listingDocument
	if err := doc.DataTo(&d); err != nil {
		return nil, errors.Store("Failed to parse listing data", err)
	}

	return &entity.Listing{
		ID:            doc.Ref.ID,
		Title:         d.Title,
		Description:   d.Description,
		Category:      d.Category,
		Tags:          nonNilStrings(d.Tags),
		Price:         priceValue(d.Price),
		ModelYear:     d.ModelYear,
		ContactNumber: d.ContactNumber,
		ImageURLs:     nonNilStrings(d.ImageURLs),
		IsFeatured:    d.IsFeatured,
		OwnerID:       d.UserID,
		Location:      d.Location,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
		Views:         viewCount(d.Views),
		Likes:         nonNilStrings(d.Likes),
		Complaints:    nonNilStrings(d.Complaints),
	}, nil
}

// priceValue accepts numeric values and numeric strings. Anything else,
// including non-finite numbers, reads as 0.
func priceValue(v interface{}) float64 {
	var p float64
	switch n := v.(type) {
	case int64:
		p = float64(n)
	case float64:
		p = n
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		p = f
	default:
		return 0
	}
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	return p
}

func viewCount(v interface{}) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case float64:
		return int(n)
	case []interface{}:
		return len(n)
	default:
		return 0
	}
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
