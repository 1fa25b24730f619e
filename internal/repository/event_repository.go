package repository

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/google/uuid"

	"github.com/iliyamo/cinema-admin-api/internal/content"
	"github.com/iliyamo/cinema-admin-api/internal/model"
	"github.com/iliyamo/cinema-admin-api/internal/report"
	"github.com/iliyamo/cinema-admin-api/internal/store"
)

// EventRepo serves event (screening) documents from the content store
// through the query cache.  Listings are paginated with the fixed page
// size and ordered by screening time.
type EventRepo struct {
	client *content.Client
	cache  *store.Cache
}

func NewEventRepo(client *content.Client, cache *store.Cache) *EventRepo {
	return &EventRepo{client: client, cache: cache}
}

// sortEvents orders events by screening time ascending, accepting every
// timestamp layout the dataset carries.  Unparseable timestamps sort
// last so a single bad document cannot scramble the listing.
func sortEvents(events []model.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		ti, oki := report.ParseWhen(events[i].DateTime)
		tj, okj := report.ParseWhen(events[j].DateTime)
		if !oki {
			return false
		}
		if !okj {
			return true
		}
		return ti.Before(tj)
	})
}

func (r *EventRepo) fetchList(ctx context.Context, key store.Key, query string) ([]model.Event, error) {
	bs, err := r.cache.Fetch(ctx, key, func(ctx context.Context) ([]byte, error) {
		res, err := r.client.Fetch(ctx, query)
		if err != nil {
			return nil, err
		}
		events, err := content.DecodeEvents(res)
		if err != nil {
			return nil, err
		}
		sortEvents(events)
		return json.Marshal(events)
	})
	if err != nil {
		return nil, err
	}
	var out []model.Event
	if err := json.Unmarshal(bs, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// List returns every event ordered by screening time.
func (r *EventRepo) List(ctx context.Context) ([]model.Event, error) {
	return r.fetchList(ctx, store.ListKey(content.TypeEvent),
		content.ListQuery(content.TypeEvent, "dateTime", "asc"))
}

// ListPage returns one page of events (pageSize 10, 1-based page).
func (r *EventRepo) ListPage(ctx context.Context, page int) ([]model.Event, error) {
	return r.fetchList(ctx, store.PageKey(content.TypeEvent, page),
		content.PageQuery(content.TypeEvent, "dateTime", "asc", page))
}

// Count returns the total number of event documents.
func (r *EventRepo) Count(ctx context.Context) (int, error) {
	bs, err := r.cache.Fetch(ctx, store.CountKey(content.TypeEvent), func(ctx context.Context) ([]byte, error) {
		res, err := r.client.Fetch(ctx, content.CountQuery(content.TypeEvent))
		if err != nil {
			return nil, err
		}
		n, err := content.DecodeCount(res)
		if err != nil {
			return nil, err
		}
		return []byte(strconv.Itoa(n)), nil
	})
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(string(bs))
}

// Create assigns a fresh document id and writes the event with the
// caller's credential.  Unlike the other entities this uses a plain
// create, so retrying a failed submission can never silently overwrite
// an existing screening.
func (r *EventRepo) Create(ctx context.Context, credential string, e model.Event) (model.Event, error) {
	e.ID = "event" + uuid.NewString()
	e.Type = content.TypeEvent
	if err := r.client.WithCredential(credential).Create(ctx, e); err != nil {
		return model.Event{}, err
	}
	_ = r.cache.Invalidate(ctx, store.EventMutated)
	return e, nil
}

// Replace upserts a full event document by id.
func (r *EventRepo) Replace(ctx context.Context, credential string, e model.Event) error {
	e.Type = content.TypeEvent
	if err := r.client.WithCredential(credential).CreateOrReplace(ctx, e); err != nil {
		return err
	}
	_ = r.cache.Invalidate(ctx, store.EventMutated)
	return nil
}

// Delete removes an event document by id.
func (r *EventRepo) Delete(ctx context.Context, credential, id string) error {
	if err := r.client.WithCredential(credential).Delete(ctx, id); err != nil {
		return err
	}
	_ = r.cache.Invalidate(ctx, store.EventMutated)
	return nil
}
