package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"tabadul/internal/domain/entity"
	"tabadul/internal/domain/repository"
	"tabadul/pkg/errors"
)

const (
	hashtagsCollection = "Hashtags"
	hashtagsDocument   = "allHashtags"
)

type hashtagAggregate struct {
	Hashtags []entity.Hashtag `firestore:"hashtags"`
}

type firestoreHashtagRepository struct {
	client *firestore.Client
}

func NewFirestoreHashtagRepository(client *firestore.Client) repository.HashtagRepository {
	return &firestoreHashtagRepository{
		client: client,
	}
}

func (r *firestoreHashtagRepository) ref() *firestore.DocumentRef {
	return r.client.Collection(hashtagsCollection).Doc(hashtagsDocument)
}

// List returns an empty slice when the aggregate document does not exist yet.
func (r *firestoreHashtagRepository) List(ctx context.Context) ([]entity.Hashtag, error) {
	doc, err := r.ref().Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return []entity.Hashtag{}, nil
		}
		return nil, errors.Store("Failed to get hashtags", err)
	}

	var agg hashtagAggregate
	if err := doc.DataTo(&agg); err != nil {
		return nil, errors.Store("Failed to parse hashtags", err)
	}
	if agg.Hashtags == nil {
		return []entity.Hashtag{}, nil
	}

	return agg.Hashtags, nil
}

func (r *firestoreHashtagRepository) Append(ctx context.Context, hashtag entity.Hashtag) error {
	_, err := r.ref().Set(ctx, map[string]interface{}{
		"hashtags": firestore.ArrayUnion(hashtag),
	}, firestore.MergeAll)
	if err != nil {
		return errors.Store("Failed to append hashtag", err)
	}

	return nil
}
