package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/iliyamo/cinema-admin-api/internal/content"
	"github.com/iliyamo/cinema-admin-api/internal/model"
	"github.com/iliyamo/cinema-admin-api/internal/store"
)

// CinemaRepo serves cinema documents from the content store through the
// query cache.  Reads go through the cache; mutations run with the
// caller's session credential and invalidate the cinema key set on
// success.
type CinemaRepo struct {
	client *content.Client
	cache  *store.Cache
}

// NewCinemaRepo constructs a CinemaRepo over the shared content client
// and cache.
func NewCinemaRepo(client *content.Client, cache *store.Cache) *CinemaRepo {
	return &CinemaRepo{client: client, cache: cache}
}

// List returns all cinemas.  The query keeps the dateJoin ordering the
// dataset has carried since its first schema revision, even though
// newer cinema documents no longer have the field; the store treats the
// missing field as a stable sort.
func (r *CinemaRepo) List(ctx context.Context) ([]model.Cinema, error) {
	bs, err := r.cache.Fetch(ctx, store.ListKey(content.TypeCinema), func(ctx context.Context) ([]byte, error) {
		res, err := r.client.Fetch(ctx, content.ListQuery(content.TypeCinema, "dateJoin", "desc"))
		if err != nil {
			return nil, err
		}
		cinemas, err := content.DecodeCinemas(res)
		if err != nil {
			return nil, err
		}
		return json.Marshal(cinemas)
	})
	if err != nil {
		return nil, err
	}
	var out []model.Cinema
	if err := json.Unmarshal(bs, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single cinema without touching the cache, for
// read-modify-write flows like the price settings update.  Returns
// ErrNotFound when the document does not exist.
func (r *CinemaRepo) GetByID(ctx context.Context, id string) (model.Cinema, error) {
	res, err := r.client.Fetch(ctx, content.ByIDQuery(content.TypeCinema, id))
	if err != nil {
		return model.Cinema{}, err
	}
	if res.Type == gjson.Null {
		return model.Cinema{}, ErrNotFound
	}
	var c model.Cinema
	if err := json.Unmarshal([]byte(res.Raw), &c); err != nil {
		return model.Cinema{}, err
	}
	if c.ID == "" {
		return model.Cinema{}, ErrNotFound
	}
	return c, nil
}

// Create assigns a fresh document id, zeroes the price tiers and writes
// the cinema with the caller's credential.  On success the cinema key
// set is invalidated so the next read refetches.
func (r *CinemaRepo) Create(ctx context.Context, credential string, c model.Cinema) (model.Cinema, error) {
	c.ID = "cinema_" + uuid.NewString()
	c.Type = content.TypeCinema
	c.ExecutivePrice = 0
	c.PremierPrice = 0
	c.ClassicPrice = 0
	if err := r.client.WithCredential(credential).CreateOrReplace(ctx, c); err != nil {
		return model.Cinema{}, err
	}
	_ = r.cache.Invalidate(ctx, store.CinemaMutated)
	return c, nil
}

// Replace upserts a full cinema document by id.
func (r *CinemaRepo) Replace(ctx context.Context, credential string, c model.Cinema) error {
	c.Type = content.TypeCinema
	if err := r.client.WithCredential(credential).CreateOrReplace(ctx, c); err != nil {
		return err
	}
	_ = r.cache.Invalidate(ctx, store.CinemaMutated)
	return nil
}

// Delete removes a cinema document by id.
func (r *CinemaRepo) Delete(ctx context.Context, credential, id string) error {
	if err := r.client.WithCredential(credential).Delete(ctx, id); err != nil {
		return err
	}
	_ = r.cache.Invalidate(ctx, store.CinemaMutated)
	return nil
}
