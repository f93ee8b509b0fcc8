package usecase

import (
	"context"
	"strings"
	"time"

	"tabadul/internal/domain/entity"
	"tabadul/internal/domain/repository"
	"tabadul/pkg/errors"
	"tabadul/pkg/logger"
)

// QuickAddResult identifies what a quick-add created. ID is empty for
// hashtags, which live inside the aggregate document.
type QuickAddResult struct {
	Kind entity.Kind `json:"kind"`
	ID   string      `json:"id,omitempty"`
	Name string      `json:"name"`
}

type quickAddHandler func(ctx context.Context, fields map[string]string) (*QuickAddResult, error)

type QuickAddUseCase struct {
	catalog        *CatalogUseCase
	categoryRepo   repository.CategoryRepository
	userRepo       repository.UserRepository
	hashtagRepo    repository.HashtagRepository
	defaultOwnerID string
	now            func() time.Time
	handlers       map[entity.Kind]quickAddHandler
}

func NewQuickAddUseCase(
	catalog *CatalogUseCase,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	hashtagRepo repository.HashtagRepository,
	defaultOwnerID string,
) *QuickAddUseCase {
	uc := &QuickAddUseCase{
		catalog:        catalog,
		categoryRepo:   categoryRepo,
		userRepo:       userRepo,
		hashtagRepo:    hashtagRepo,
		defaultOwnerID: defaultOwnerID,
		now:            time.Now,
	}
	uc.handlers = map[entity.Kind]quickAddHandler{
		entity.KindPost:     uc.addPost,
		entity.KindUser:     uc.addUser,
		entity.KindCategory: uc.addCategory,
		entity.KindHashtag:  uc.addHashtag,
	}
	return uc
}

// Add creates one entity of the given kind from loose string fields and drops
// the reference snapshot so the new vocabulary is visible immediately.
func (uc *QuickAddUseCase) Add(ctx context.Context, kind string, fields map[string]string) (*QuickAddResult, error) {
	k, ok := entity.ParseKind(kind)
	if !ok {
		return nil, errors.BadRequest("unknown entity kind: "+kind, nil)
	}

	result, err := uc.handlers[k](ctx, fields)
	if err != nil {
		return nil, err
	}

	uc.catalog.refs.Invalidate()
	logger.Info("Quick-add %s: %q", k, result.Name)
	return result, nil
}

func (uc *QuickAddUseCase) addPost(ctx context.Context, fields map[string]string) (*QuickAddResult, error) {
	normalized := make(map[string]string, len(fields))
	for k, v := range fields {
		if key, ok := headerKey(k); ok {
			normalized[key] = strings.TrimSpace(v)
		}
	}

	draft := RowToDraft(entity.ImportRow{Fields: normalized}, uc.defaultOwnerID)
	listing, err := uc.catalog.Create(ctx, draft, nil)
	if err != nil {
		return nil, err
	}
	return &QuickAddResult{Kind: entity.KindPost, ID: listing.ID, Name: listing.Title}, nil
}

func (uc *QuickAddUseCase) addUser(ctx context.Context, fields map[string]string) (*QuickAddResult, error) {
	name, err := requiredField(fields, "name")
	if err != nil {
		return nil, err
	}
	email, err := requiredField(fields, "email")
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:          name,
		Email:         email,
		ContactNumber: strings.TrimSpace(fields["contactNumber"]),
		Role:          entity.RoleUser,
		Bio:           "",
		CreatedAt:     uc.now(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return &QuickAddResult{Kind: entity.KindUser, ID: user.ID, Name: user.Name}, nil
}

func (uc *QuickAddUseCase) addCategory(ctx context.Context, fields map[string]string) (*QuickAddResult, error) {
	name, err := requiredField(fields, "name")
	if err != nil {
		return nil, err
	}

	category := &entity.Category{
		Name:       name,
		LocalName:  strings.TrimSpace(fields["localName"]),
		UsageCount: 0,
		ImageURL:   "",
		CreatedAt:  uc.now(),
	}
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return &QuickAddResult{Kind: entity.KindCategory, ID: category.ID, Name: category.Name}, nil
}

func (uc *QuickAddUseCase) addHashtag(ctx context.Context, fields map[string]string) (*QuickAddResult, error) {
	name, err := requiredField(fields, "name")
	if err != nil {
		return nil, err
	}
	category, err := requiredField(fields, "category")
	if err != nil {
		return nil, err
	}

	hashtag := entity.Hashtag{
		Name:       name,
		Category:   category,
		IsTrending: strings.EqualFold(strings.TrimSpace(fields["isTrending"]), "true"),
		UsageCount: 0,
	}
	if err := uc.hashtagRepo.Append(ctx, hashtag); err != nil {
		return nil, err
	}
	return &QuickAddResult{Kind: entity.KindHashtag, Name: hashtag.Name}, nil
}

func requiredField(fields map[string]string, name string) (string, error) {
	v := strings.TrimSpace(fields[name])
	if v == "" {
		return "", errors.Validation(name, name+" is required")
	}
	return v, nil
}
