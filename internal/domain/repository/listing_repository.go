package repository

import (
	"context"

	"tabadul/internal/domain/entity"
)

type ListingRepository interface {
	// Create stores a new listing and assigns listing.ID.
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	List(ctx context.Context) ([]*entity.Listing, error)
	// Update overwrites the caller-writable fields only.
	Update(ctx context.Context, listing *entity.Listing) error
	Delete(ctx context.Context, id string) error
}
