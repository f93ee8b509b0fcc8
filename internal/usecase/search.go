package usecase

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"tabadul/internal/domain/entity"
	"tabadul/pkg/errors"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

const (
	SortByTitle     = "title"
	SortByPrice     = "price"
	SortByModelYear = "modelYear"
	SortByCreatedAt = "createdAt"
	SortByCategory  = "category"
)

type ListingQuery struct {
	TextFilter string
	SortKey    string
	SortOrder  SortOrder
}

type listingComparator func(a, b *entity.Listing) int

func comparatorFor(key string) (listingComparator, bool) {
	switch key {
	case SortByTitle:
		// Collator keeps scratch buffers, so each query gets its own.
		col := collate.New(language.Und)
		return func(a, b *entity.Listing) int {
			return col.CompareString(a.Title, b.Title)
		}, true
	case SortByPrice:
		return func(a, b *entity.Listing) int {
			switch {
			case a.Price < b.Price:
				return -1
			case a.Price > b.Price:
				return 1
			}
			return 0
		}, true
	case SortByModelYear:
		return func(a, b *entity.Listing) int {
			return compareYears(a.ModelYear, b.ModelYear)
		}, true
	case SortByCreatedAt:
		return func(a, b *entity.Listing) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		}, true
	case SortByCategory:
		return func(a, b *entity.Listing) int {
			return strings.Compare(a.Category, b.Category)
		}, true
	}
	return nil, false
}

// absent years sort before any year
func compareYears(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	}
	return 0
}

// QueryListings filters by case-insensitive title substring and sorts stably,
// so equal keys keep their input order in both directions. The input slice is
// never modified.
func QueryListings(listings []*entity.Listing, q ListingQuery) ([]*entity.Listing, error) {
	order := q.SortOrder
	if order == "" {
		order = SortAsc
	}
	if order != SortAsc && order != SortDesc {
		return nil, errors.BadRequest("sort order must be asc or desc", nil)
	}

	var cmp listingComparator
	if q.SortKey != "" {
		var ok bool
		if cmp, ok = comparatorFor(q.SortKey); !ok {
			return nil, errors.BadRequest("unsupported sort key: "+q.SortKey, nil)
		}
	}

	needle := strings.ToLower(q.TextFilter)
	result := make([]*entity.Listing, 0, len(listings))
	for _, l := range listings {
		if needle == "" || strings.Contains(strings.ToLower(l.Title), needle) {
			result = append(result, l)
		}
	}

	if cmp != nil {
		sort.SliceStable(result, func(i, j int) bool {
			if order == SortDesc {
				return cmp(result[i], result[j]) > 0
			}
			return cmp(result[i], result[j]) < 0
		})
	}

	return result, nil
}
