package store

import (
	"fmt"

	"github.com/iliyamo/cinema-admin-api/internal/content"
)

// Key is the semantic identity of one cached query: the entity type it
// lists, an optional 1-based page number and whether it is a count
// query.  Two reads with equal keys always refer to the same remote
// query string.
type Key struct {
	Entity string
	Page   int  // 0 means the unpaginated listing
	Count  bool // true for count(*) queries
}

// ListKey identifies the unpaginated listing of an entity type.
func ListKey(entity string) Key { return Key{Entity: entity} }

// PageKey identifies one page of a paginated listing.
func PageKey(entity string, page int) Key { return Key{Entity: entity, Page: page} }

// CountKey identifies the total-count query of an entity type.
func CountKey(entity string) Key { return Key{Entity: entity, Count: true} }

// String renders the key suffix used in the backing store, e.g.
// "customer", "customer:p2" or "customer:count".
func (k Key) String() string {
	switch {
	case k.Count:
		return k.Entity + ":count"
	case k.Page > 0:
		return fmt.Sprintf("%s:p%d", k.Entity, k.Page)
	default:
		return k.Entity
	}
}

// Mutation names a kind of write against the content store.  The cache
// never infers invalidation from key prefixes; every mutation kind maps
// to an explicit list of entity key sets below.
type Mutation string

const (
	CinemaMutated   Mutation = "cinema"
	EventMutated    Mutation = "event"
	CustomerMutated Mutation = "customer"
	ReviewMutated   Mutation = "review"
)

// invalidations is the dependency table: the exact entity key sets each
// mutation kind must drop.  A review mutation also drops customer
// listings because review submission updates the reviewer's spend
// figures shown in the customer table.
var invalidations = map[Mutation][]string{
	CinemaMutated:   {content.TypeCinema},
	EventMutated:    {content.TypeEvent},
	CustomerMutated: {content.TypeCustomer},
	ReviewMutated:   {content.TypeReview, content.TypeCustomer},
}

// EntitiesFor returns the entity key sets invalidated by a mutation
// kind.  Unknown kinds return nil and invalidate nothing.
func EntitiesFor(m Mutation) []string { return invalidations[m] }
