package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageWindow(t *testing.T) {
	start, end := PageWindow(1, PageSize)
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)

	start, end = PageWindow(2, PageSize)
	assert.Equal(t, 10, start)
	assert.Equal(t, 20, end)
}

func TestQueryStrings(t *testing.T) {
	assert.Equal(t,
		`*[_type == "event"] | order(dateTime asc)`,
		ListQuery(TypeEvent, "dateTime", "asc"))

	assert.Equal(t,
		`*[_type == "customer"] | order(dateJoin desc) [10...20]`,
		PageQuery(TypeCustomer, "dateJoin", "desc", 2))

	assert.Equal(t,
		`count(*[_type == "review"])`,
		CountQuery(TypeReview))

	assert.Equal(t,
		`*[_type == "cinema" && _id == "cinema_42"][0]`,
		ByIDQuery(TypeCinema, "cinema_42"))
}
