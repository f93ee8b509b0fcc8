package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"tabadul/internal/domain/entity"
	"tabadul/internal/domain/repository"
	"tabadul/internal/infrastructure/metrics"
	"tabadul/pkg/errors"
	"tabadul/pkg/logger"
)

const minModelYear = 1900

type CatalogUseCase struct {
	listingRepo repository.ListingRepository
	refs        *ReferenceCache
	assets      *AssetUseCase
	metrics     *metrics.Manager
	now         func() time.Time
}

func NewCatalogUseCase(
	listingRepo repository.ListingRepository,
	refs *ReferenceCache,
	assets *AssetUseCase,
	m *metrics.Manager,
) *CatalogUseCase {
	return &CatalogUseCase{
		listingRepo: listingRepo,
		refs:        refs,
		assets:      assets,
		metrics:     m,
		now:         time.Now,
	}
}

func (uc *CatalogUseCase) References() *ReferenceCache {
	return uc.refs
}

// List fetches the whole posts collection. Filtering happens in memory.
func (uc *CatalogUseCase) List(ctx context.Context) ([]*entity.Listing, error) {
	return uc.listingRepo.List(ctx)
}

// Browse reloads the listing set and runs the query over it.
func (uc *CatalogUseCase) Browse(ctx context.Context, q ListingQuery) ([]*entity.Listing, error) {
	listings, err := uc.listingRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return QueryListings(listings, q)
}

func (uc *CatalogUseCase) Get(ctx context.Context, id string) (*entity.Listing, error) {
	return uc.listingRepo.GetByID(ctx, id)
}

func (uc *CatalogUseCase) Create(ctx context.Context, draft entity.ListingDraft, files []ImageFile) (listing *entity.Listing, err error) {
	start := time.Now()
	defer func() { uc.metrics.ObserveOperation("create", start, err) }()

	refs, err := uc.refs.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	listing, err = uc.create(ctx, refs, draft, files)
	if err != nil {
		return nil, err
	}

	uc.refs.Invalidate()
	return listing, nil
}

// create validates against refs, uploads files and writes the document. It
// does not touch the reference cache so batch callers can share one snapshot.
func (uc *CatalogUseCase) create(ctx context.Context, refs *ReferenceData, draft entity.ListingDraft, files []ImageFile) (*entity.Listing, error) {
	if err := uc.validate(refs, draft, imageCount(draft, files)); err != nil {
		return nil, err
	}

	imageURLs := draft.ImageURLs
	if len(files) > 0 {
		urls, err := uc.assets.UploadAll(ctx, files)
		if err != nil {
			return nil, err
		}
		imageURLs = urls
	}

	now := uc.now()
	listing := &entity.Listing{
		Title:         strings.TrimSpace(draft.Title),
		Description:   draft.Description,
		Category:      draft.Category,
		Tags:          copyStrings(draft.Tags),
		Price:         draft.Price,
		ModelYear:     draft.ModelYear,
		ContactNumber: draft.ContactNumber,
		ImageURLs:     copyStrings(imageURLs),
		IsFeatured:    draft.IsFeatured,
		OwnerID:       draft.OwnerID,
		Location:      draft.Location,
		CreatedAt:     now,
		UpdatedAt:     now,
		Views:         0,
		Likes:         []string{},
		Complaints:    []string{},
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		logger.Error("Failed to create listing %q: %v", listing.Title, err)
		return nil, err
	}

	logger.Info("Listing created: id=%s title=%q images=%d", listing.ID, listing.Title, len(listing.ImageURLs))
	return listing, nil
}

// Update replaces the writable fields of an existing listing. New files
// replace imageUrls wholesale. Without files, explicit draft URLs replace the
// stored list so images can be reordered or dropped; with neither, the stored
// images are kept. Counters and createdAt are carried over.
func (uc *CatalogUseCase) Update(ctx context.Context, id string, draft entity.ListingDraft, files []ImageFile) (listing *entity.Listing, err error) {
	start := time.Now()
	defer func() { uc.metrics.ObserveOperation("update", start, err) }()

	refs, err := uc.refs.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if err := uc.validate(refs, draft, imageCount(draft, files)); err != nil {
		return nil, err
	}

	existing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	imageURLs := existing.ImageURLs
	if len(draft.ImageURLs) > 0 {
		imageURLs = draft.ImageURLs
	}
	if len(files) > 0 {
		if imageURLs, err = uc.assets.UploadAll(ctx, files); err != nil {
			return nil, err
		}
	}

	existing.Title = strings.TrimSpace(draft.Title)
	existing.Description = draft.Description
	existing.Category = draft.Category
	existing.Tags = copyStrings(draft.Tags)
	existing.Price = draft.Price
	existing.ModelYear = draft.ModelYear
	existing.ContactNumber = draft.ContactNumber
	existing.ImageURLs = copyStrings(imageURLs)
	existing.IsFeatured = draft.IsFeatured
	existing.OwnerID = draft.OwnerID
	existing.Location = draft.Location
	existing.UpdatedAt = uc.now()

	if err := uc.listingRepo.Update(ctx, existing); err != nil {
		logger.Error("Failed to update listing %s: %v", id, err)
		return nil, err
	}

	uc.refs.Invalidate()
	logger.Info("Listing updated: id=%s images=%d", id, len(existing.ImageURLs))
	return existing, nil
}

// Delete removes the listing document. Its images stay in object storage.
func (uc *CatalogUseCase) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { uc.metrics.ObserveOperation("delete", start, err) }()

	if err := uc.listingRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.refs.Invalidate()
	logger.Info("Listing deleted: id=%s", id)
	return nil
}

func (uc *CatalogUseCase) validate(refs *ReferenceData, draft entity.ListingDraft, imageCount int) error {
	if strings.TrimSpace(draft.Title) == "" {
		return errors.Validation("title", "title is required")
	}
	if !refs.HasCategory(draft.Category) {
		return errors.Validation("category", "unknown category")
	}
	for _, tag := range draft.Tags {
		if !refs.HasHashtag(tag) {
			return errors.Validation("tags", "unknown tag")
		}
	}
	if !refs.HasOwner(draft.OwnerID) {
		return errors.Validation("ownerId", "unknown owner")
	}
	if math.IsNaN(draft.Price) || math.IsInf(draft.Price, 0) {
		return errors.Validation("price", "price must be a finite number")
	}
	if draft.Price < 0 {
		return errors.Validation("price", "price must not be negative")
	}
	if draft.ModelYear != nil && (*draft.ModelYear < minModelYear || *draft.ModelYear > uc.now().Year()) {
		return errors.Validation("modelYear", "model year out of range")
	}
	if imageCount > entity.MaxListingImages {
		return errors.Validation("imageUrls", "too many images")
	}
	return nil
}

// imageCount is the size of the image list a write would store. Pending
// files take precedence over draft URLs.
func imageCount(draft entity.ListingDraft, files []ImageFile) int {
	if len(files) > 0 {
		return len(files)
	}
	return len(draft.ImageURLs)
}

func copyStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
