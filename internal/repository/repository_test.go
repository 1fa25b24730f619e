package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-admin-api/internal/config"
	"github.com/iliyamo/cinema-admin-api/internal/content"
	"github.com/iliyamo/cinema-admin-api/internal/model"
	"github.com/iliyamo/cinema-admin-api/internal/store"
)

func modelCinema(name string, capacity int) model.Cinema {
	return model.Cinema{Name: name, Location: "Leeds", Capacity: capacity, ExecutivePrice: 9, PremierPrice: 7, ClassicPrice: 5}
}

func modelReview(name, eventName string, rating int) model.Review {
	return model.Review{
		Name:      name,
		EventName: eventName,
		Cinema:    model.Reference{Type: "reference", Ref: "cinema_1"},
		Rating:    rating,
		Message:   "fine",
	}
}

// fakeStore mimics the content store: query requests answer from the
// results map, mutate requests succeed and are counted.
type fakeStore struct {
	results map[string]string // query string -> result JSON
	queries int32
	mutates int32
}

func (f *fakeStore) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/data/mutate/") {
			atomic.AddInt32(&f.mutates, 1)
			_, _ = w.Write([]byte(`{"transactionId":"tx"}`))
			return
		}
		atomic.AddInt32(&f.queries, 1)
		res, ok := f.results[r.URL.Query().Get("query")]
		if !ok {
			res = "null"
		}
		_, _ = fmt.Fprintf(w, `{"result":%s}`, res)
	}
}

func testDeps(t *testing.T, f *fakeStore) (*content.Client, *store.Cache) {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	client := content.New(config.ContentConfig{BaseURL: srv.URL, Dataset: "production", APIVersion: "2024-01-01"})
	cache := store.New(config.QueryCacheConfig{Enabled: true, TTL: time.Minute, Prefix: "qc"}, store.NewMemoryBackend())
	return client, cache
}

func TestCinemaListCachedUntilMutation(t *testing.T) {
	f := &fakeStore{results: map[string]string{
		content.ListQuery(content.TypeCinema, "dateJoin", "desc"): `[
			{"_id":"cinema_1","_type":"cinema","name":"Odeon","location":"Leeds","capacity":120}
		]`,
	}}
	client, cache := testDeps(t, f)
	repo := NewCinemaRepo(client, cache)
	ctx := context.Background()

	first, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	_, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&f.queries), "second read must come from cache")

	_, err = repo.Create(ctx, "tok", first[0])
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&f.mutates))

	_, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&f.queries), "mutation must invalidate the listing")
}

func TestCinemaCreateZeroesPriceTiersAndPrefixesID(t *testing.T) {
	f := &fakeStore{results: map[string]string{}}
	client, cache := testDeps(t, f)
	repo := NewCinemaRepo(client, cache)

	created, err := repo.Create(context.Background(), "tok", modelCinema("Odeon", 50))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.ID, "cinema_"))
	assert.Equal(t, content.TypeCinema, created.Type)
	assert.Zero(t, created.ExecutivePrice)
	assert.Zero(t, created.PremierPrice)
	assert.Zero(t, created.ClassicPrice)
}

func TestCinemaGetByIDNotFound(t *testing.T) {
	f := &fakeStore{results: map[string]string{}}
	client, cache := testDeps(t, f)
	repo := NewCinemaRepo(client, cache)

	_, err := repo.GetByID(context.Background(), "cinema_missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerPageSortedByName(t *testing.T) {
	f := &fakeStore{results: map[string]string{
		content.PageQuery(content.TypeCustomer, "dateJoin", "desc", 1): `[
			{"_id":"customer_2","_type":"customer","name":"Zoe","age":30,"city":"Hull","dateJoin":"2024-05-01","totalSpent":10},
			{"_id":"customer_1","_type":"customer","name":"Ada","age":"27","city":"York","dateJoin":"2024-06-01","totalSpent":20}
		]`,
	}}
	client, cache := testDeps(t, f)
	repo := NewCustomerRepo(client, cache)

	page, err := repo.ListPage(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "Ada", page[0].Name)
	assert.Equal(t, "Zoe", page[1].Name)
	assert.EqualValues(t, 27, page[0].Age)
}

func TestEventListSortedByTimeWithBadStampsLast(t *testing.T) {
	// Mixed layouts: full RFC 3339 and the datetime-local form saved by
	// the event create endpoint must interleave chronologically.
	f := &fakeStore{results: map[string]string{
		content.ListQuery(content.TypeEvent, "dateTime", "asc"): `[
			{"_id":"event3","_type":"event","title":"Late","dateTime":"2025-12-01T20:00:00Z"},
			{"_id":"event2","_type":"event","title":"Broken","dateTime":"soon"},
			{"_id":"event4","_type":"event","title":"Mid","dateTime":"2025-06-01T12:00"},
			{"_id":"event1","_type":"event","title":"Early","dateTime":"2025-01-01T20:00:00Z"}
		]`,
	}}
	client, cache := testDeps(t, f)
	repo := NewEventRepo(client, cache)

	events, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 4)
	assert.Equal(t, "Early", events[0].Title)
	assert.Equal(t, "Mid", events[1].Title)
	assert.Equal(t, "Late", events[2].Title)
	assert.Equal(t, "Broken", events[3].Title)
}

func TestEventCount(t *testing.T) {
	f := &fakeStore{results: map[string]string{
		content.CountQuery(content.TypeEvent): `17`,
	}}
	client, cache := testDeps(t, f)
	repo := NewEventRepo(client, cache)

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 17, n)

	n, err = repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 17, n)
	assert.Equal(t, int32(1), atomic.LoadInt32(&f.queries))
}

func TestReviewListSortedByRatingDesc(t *testing.T) {
	f := &fakeStore{results: map[string]string{
		content.ListQuery(content.TypeReview, "_createdAt", "desc"): `[
			{"_id":"review1","_type":"review","name":"Ada","EventName":"Dune","rating":2,"message":"meh"},
			{"_id":"review2","_type":"review","name":"Bo","EventName":"Dune","rating":5,"message":"great"}
		]`,
	}}
	client, cache := testDeps(t, f)
	repo := NewReviewRepo(client, cache)

	reviews, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, 5, reviews[0].Rating)
	assert.Equal(t, 2, reviews[1].Rating)
}

func TestReviewCreateInvalidatesCustomerListings(t *testing.T) {
	f := &fakeStore{results: map[string]string{
		content.ListQuery(content.TypeCustomer, "dateJoin", "desc"): `[]`,
	}}
	client, cache := testDeps(t, f)
	customers := NewCustomerRepo(client, cache)
	reviews := NewReviewRepo(client, cache)
	ctx := context.Background()

	_, err := customers.List(ctx)
	require.NoError(t, err)

	_, err = reviews.Create(ctx, "tok", modelReview("Ada", "Dune", 4))
	require.NoError(t, err)

	_, err = customers.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&f.queries), "review write must drop customer listings")
}
