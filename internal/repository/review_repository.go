package repository

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/google/uuid"

	"github.com/iliyamo/cinema-admin-api/internal/content"
	"github.com/iliyamo/cinema-admin-api/internal/model"
	"github.com/iliyamo/cinema-admin-api/internal/store"
)

// ReviewRepo serves review documents from the content store through the
// query cache.  Reviews link to customers and events by display name,
// not by id; the linkage breaks on rename.
type ReviewRepo struct {
	client *content.Client
	cache  *store.Cache
}

func NewReviewRepo(client *content.Client, cache *store.Cache) *ReviewRepo {
	return &ReviewRepo{client: client, cache: cache}
}

// List returns all reviews, newest first at the store, then sorted
// highest rating first for display.
func (r *ReviewRepo) List(ctx context.Context) ([]model.Review, error) {
	bs, err := r.cache.Fetch(ctx, store.ListKey(content.TypeReview), func(ctx context.Context) ([]byte, error) {
		res, err := r.client.Fetch(ctx, content.ListQuery(content.TypeReview, "_createdAt", "desc"))
		if err != nil {
			return nil, err
		}
		reviews, err := content.DecodeReviews(res)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(reviews, func(i, j int) bool {
			return reviews[i].Rating > reviews[j].Rating
		})
		return json.Marshal(reviews)
	})
	if err != nil {
		return nil, err
	}
	var out []model.Review
	if err := json.Unmarshal(bs, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create assigns a fresh document id and writes the review with the
// caller's credential.  Customer listings are invalidated alongside
// reviews because the customer table shows review-derived spend.
func (r *ReviewRepo) Create(ctx context.Context, credential string, rv model.Review) (model.Review, error) {
	rv.ID = "review" + uuid.NewString()
	rv.Type = content.TypeReview
	if err := r.client.WithCredential(credential).CreateOrReplace(ctx, rv); err != nil {
		return model.Review{}, err
	}
	_ = r.cache.Invalidate(ctx, store.ReviewMutated)
	return rv, nil
}

// Delete removes a review document by id.
func (r *ReviewRepo) Delete(ctx context.Context, credential, id string) error {
	if err := r.client.WithCredential(credential).Delete(ctx, id); err != nil {
		return err
	}
	_ = r.cache.Invalidate(ctx, store.ReviewMutated)
	return nil
}
