package repository

import (
	"context"

	"tabadul/internal/domain/entity"
)

// HashtagRepository reads and appends to the single aggregate hashtag
// document. There is no read-modify-write protection beyond atomic append.
type HashtagRepository interface {
	List(ctx context.Context) ([]entity.Hashtag, error)
	Append(ctx context.Context, hashtag entity.Hashtag) error
}
