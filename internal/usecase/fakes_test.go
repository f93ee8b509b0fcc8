package usecase

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"tabadul/internal/domain/entity"
	"tabadul/pkg/errors"
)

var fixedNow = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

type MockObjectStorage struct{ mock.Mock }

func (m *MockObjectStorage) PutObject(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, body)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStorage) Close() error {
	args := m.Called()
	return args.Error(0)
}

// memListingRepo mimics the posts collection: generated ids are never reused
// and Update only touches writable fields.
type memListingRepo struct {
	mu      sync.Mutex
	seq     int
	order   []string
	docs    map[string]*entity.Listing
	creates int
	updates int
}

func newMemListingRepo() *memListingRepo {
	return &memListingRepo{docs: map[string]*entity.Listing{}}
}

func cloneListing(l *entity.Listing) *entity.Listing {
	c := *l
	c.Tags = append([]string(nil), l.Tags...)
	c.ImageURLs = append([]string(nil), l.ImageURLs...)
	c.Likes = append([]string(nil), l.Likes...)
	c.Complaints = append([]string(nil), l.Complaints...)
	return &c
}

func (r *memListingRepo) Create(_ context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	r.creates++
	listing.ID = fmt.Sprintf("post-%d", r.seq)
	r.docs[listing.ID] = cloneListing(listing)
	r.order = append(r.order, listing.ID)
	return nil
}

func (r *memListingRepo) GetByID(_ context.Context, id string) (*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.docs[id]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	return cloneListing(l), nil
}

func (r *memListingRepo) List(_ context.Context) ([]*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*entity.Listing, 0, len(r.order))
	for _, id := range r.order {
		if l, ok := r.docs[id]; ok {
			out = append(out, cloneListing(l))
		}
	}
	return out, nil
}

func (r *memListingRepo) Update(_ context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.docs[listing.ID]
	if !ok {
		return errors.NotFound("Listing", nil)
	}
	r.updates++
	stored.Title = listing.Title
	stored.Description = listing.Description
	stored.Category = listing.Category
	stored.Tags = append([]string(nil), listing.Tags...)
	stored.Price = listing.Price
	stored.ModelYear = listing.ModelYear
	stored.ContactNumber = listing.ContactNumber
	stored.ImageURLs = append([]string(nil), listing.ImageURLs...)
	stored.IsFeatured = listing.IsFeatured
	stored.OwnerID = listing.OwnerID
	stored.Location = listing.Location
	stored.UpdatedAt = listing.UpdatedAt
	return nil
}

func (r *memListingRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[id]; !ok {
		return errors.NotFound("Listing", nil)
	}
	delete(r.docs, id)
	return nil
}

type memCategoryRepo struct {
	mu         sync.Mutex
	categories []*entity.Category
	loads      int
	err        error
}

func (r *memCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = fmt.Sprintf("cat-%d", len(r.categories)+1)
	r.categories = append(r.categories, c)
	return nil
}

func (r *memCategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads++
	if r.err != nil {
		return nil, r.err
	}
	return append([]*entity.Category(nil), r.categories...), nil
}

type memHashtagRepo struct {
	mu       sync.Mutex
	hashtags []entity.Hashtag
}

func (r *memHashtagRepo) List(_ context.Context) ([]entity.Hashtag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.Hashtag{}, r.hashtags...), nil
}

func (r *memHashtagRepo) Append(_ context.Context, h entity.Hashtag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.hashtags {
		if existing == h {
			return nil
		}
	}
	r.hashtags = append(r.hashtags, h)
	return nil
}

type memUserRepo struct {
	mu    sync.Mutex
	users []*entity.User
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	r.users = append(r.users, u)
	return nil
}

func (r *memUserRepo) ListByRole(_ context.Context, role string) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type catalogFixture struct {
	listings   *memListingRepo
	categories *memCategoryRepo
	hashtags   *memHashtagRepo
	users      *memUserRepo
	storage    *MockObjectStorage
	refs       *ReferenceCache
	assets     *AssetUseCase
	catalog    *CatalogUseCase
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()

	f := &catalogFixture{
		listings: newMemListingRepo(),
		categories: &memCategoryRepo{categories: []*entity.Category{
			{ID: "c1", Name: "Cars"},
			{ID: "c2", Name: "Phones"},
		}},
		hashtags: &memHashtagRepo{hashtags: []entity.Hashtag{
			{Name: "sale", Category: "Cars"},
			{Name: "new", Category: "Phones"},
		}},
		users: &memUserRepo{users: []*entity.User{
			{ID: "u1", Name: "Sara", Role: entity.RoleUser},
			{ID: "doc-2", UID: "uid-2", Name: "Omar", Role: entity.RoleUser},
			{ID: "a1", Name: "Root", Role: "Admin"},
		}},
		storage: &MockObjectStorage{},
	}

	f.refs = NewReferenceCache(f.categories, f.hashtags, f.users)
	f.refs.now = func() time.Time { return fixedNow }
	f.assets = NewAssetUseCase(f.storage, nil)
	f.assets.now = func() time.Time { return fixedNow }
	f.catalog = NewCatalogUseCase(f.listings, f.refs, f.assets, nil)
	f.catalog.now = func() time.Time { return fixedNow }

	return f
}

func validDraft() entity.ListingDraft {
	year := 2019
	return entity.ListingDraft{
		Title:         "Corolla 2019",
		Description:   "Clean, single owner",
		Category:      "Cars",
		Tags:          []string{"sale"},
		Price:         45000,
		ModelYear:     &year,
		ContactNumber: "+966500000000",
		OwnerID:       "u1",
	}
}
