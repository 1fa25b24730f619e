// Package content implements the client for the hosted content store
// that owns every entity document (cinemas, events, customers, reviews).
// The store is treated as a black box reached over HTTP: reads use a
// filter/sort/slice query string, writes use a small mutation envelope,
// and binary assets are uploaded in exchange for a retrievable URL.
// This service never holds authoritative copies of documents, only
// cached snapshots of query results.
package content

import "fmt"

// Document type discriminators used in store queries.
const (
	TypeCinema   = "cinema"
	TypeEvent    = "event"
	TypeCustomer = "customer"
	TypeReview   = "review"
)

// PageSize is the fixed page size for paginated entity listings.
const PageSize = 10

// PageWindow computes the store slice for a 1-based page number.  The
// returned window is [start...end] with end exclusive, so page 2 with
// the default size covers offsets 10 through 19.
func PageWindow(page, size int) (start, end int) {
	start = (page - 1) * size
	return start, start + size
}

// ListQuery builds a filter/sort query for all documents of a type,
// e.g. `*[_type == "event"] | order(dateTime asc)`.
func ListQuery(docType, orderField, dir string) string {
	return fmt.Sprintf(`*[_type == %q] | order(%s %s)`, docType, orderField, dir)
}

// PageQuery builds a filter/sort/slice query for one page of documents,
// e.g. `*[_type == "customer"] | order(dateJoin desc) [10...20]`.
func PageQuery(docType, orderField, dir string, page int) string {
	start, end := PageWindow(page, PageSize)
	return fmt.Sprintf(`*[_type == %q] | order(%s %s) [%d...%d]`, docType, orderField, dir, start, end)
}

// CountQuery builds a count query for all documents of a type.
func CountQuery(docType string) string {
	return fmt.Sprintf(`count(*[_type == %q])`, docType)
}

// ByIDQuery builds a query selecting a single document by id.  The id is
// embedded directly; callers pass store-generated ids only.
func ByIDQuery(docType, id string) string {
	return fmt.Sprintf(`*[_type == %q && _id == %q][0]`, docType, id)
}
