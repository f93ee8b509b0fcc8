package usecase

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"tabadul/internal/domain/entity"
	"tabadul/internal/domain/repository"
	"tabadul/pkg/logger"
)

// ReferenceData is an immutable snapshot of the vocabulary listings validate
// against.
type ReferenceData struct {
	Categories []*entity.Category `json:"categories"`
	Hashtags   []entity.Hashtag   `json:"hashtags"`
	Users      []*entity.User     `json:"users"`
	LoadedAt   time.Time          `json:"loaded_at"`

	categories map[string]struct{}
	hashtags   map[string]struct{}
	owners     map[string]struct{}
}

func newReferenceData(categories []*entity.Category, hashtags []entity.Hashtag, users []*entity.User, now time.Time) *ReferenceData {
	rd := &ReferenceData{
		Categories: categories,
		Hashtags:   hashtags,
		Users:      users,
		LoadedAt:   now,
		categories: make(map[string]struct{}, len(categories)),
		hashtags:   make(map[string]struct{}, len(hashtags)),
		owners:     make(map[string]struct{}, len(users)*2),
	}

	for _, c := range categories {
		rd.categories[c.Name] = struct{}{}
	}
	for _, h := range hashtags {
		rd.hashtags[h.Name] = struct{}{}
	}
	for _, u := range users {
		if u.Role != entity.RoleUser {
			continue
		}
		rd.owners[u.ID] = struct{}{}
		if u.UID != "" {
			rd.owners[u.UID] = struct{}{}
		}
	}

	return rd
}

func (rd *ReferenceData) HasCategory(name string) bool {
	_, ok := rd.categories[name]
	return ok
}

func (rd *ReferenceData) HasHashtag(name string) bool {
	_, ok := rd.hashtags[name]
	return ok
}

// HasOwner accepts either the user document id or its auth uid.
func (rd *ReferenceData) HasOwner(id string) bool {
	_, ok := rd.owners[id]
	return ok
}

// ReferenceCache loads the reference snapshot on first use and keeps it until
// Reload or Invalidate. It never refreshes on its own.
type ReferenceCache struct {
	categoryRepo repository.CategoryRepository
	hashtagRepo  repository.HashtagRepository
	userRepo     repository.UserRepository
	now          func() time.Time

	mu       sync.RWMutex
	snapshot *ReferenceData
}

func NewReferenceCache(
	categoryRepo repository.CategoryRepository,
	hashtagRepo repository.HashtagRepository,
	userRepo repository.UserRepository,
) *ReferenceCache {
	return &ReferenceCache{
		categoryRepo: categoryRepo,
		hashtagRepo:  hashtagRepo,
		userRepo:     userRepo,
		now:          time.Now,
	}
}

// Snapshot returns the cached reference data, loading it if absent.
func (c *ReferenceCache) Snapshot(ctx context.Context) (*ReferenceData, error) {
	c.mu.RLock()
	snap := c.snapshot
	c.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}

	return c.Reload(ctx)
}

// Reload replaces the snapshot wholesale. On failure the previous snapshot is
// kept.
func (c *ReferenceCache) Reload(ctx context.Context) (*ReferenceData, error) {
	var (
		categories []*entity.Category
		hashtags   []entity.Hashtag
		users      []*entity.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = c.categoryRepo.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		hashtags, err = c.hashtagRepo.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = c.userRepo.ListByRole(gctx, entity.RoleUser)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error("Failed to load reference data: %v", err)
		return nil, err
	}

	snap := newReferenceData(categories, hashtags, users, c.now())

	c.mu.Lock()
	c.snapshot = snap
	c.mu.Unlock()

	logger.Debug("Reference data loaded: %d categories, %d hashtags, %d users",
		len(categories), len(hashtags), len(users))
	return snap, nil
}

// Invalidate drops the snapshot; the next Snapshot call reloads.
func (c *ReferenceCache) Invalidate() {
	c.mu.Lock()
	c.snapshot = nil
	c.mu.Unlock()
}
