package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/cinema-admin-api/internal/model"
)

func TestEventsByMonthSkipsBadTimestampsAndEmptyMonths(t *testing.T) {
	events := []model.Event{
		{DateTime: "2025-03-14T19:30:00Z"},
		{DateTime: "2025-03-02T18:00"},
		{DateTime: "2025-07-01"},
		{DateTime: "not a date"},
	}
	got := EventsByMonth(events)
	assert.Equal(t, []MonthCount{
		{Month: "Mar", Count: 2},
		{Month: "Jul", Count: 1},
	}, got)
}

func TestCustomersByMonth(t *testing.T) {
	customers := []model.Customer{
		{DateJoin: "2024-01-05"},
		{DateJoin: "2024-01-20T10:00:00Z"},
		{DateJoin: "2024-12-31"},
	}
	got := CustomersByMonth(customers)
	assert.Equal(t, []MonthCount{
		{Month: "Jan", Count: 2},
		{Month: "Dec", Count: 1},
	}, got)
}

func TestReviewsByRatingEmitsOnlyPresentRatings(t *testing.T) {
	reviews := []model.Review{
		{Rating: 5}, {Rating: 5}, {Rating: 3}, {Rating: 0},
	}
	got := ReviewsByRating(reviews)
	assert.Equal(t, []RatingCount{
		{Rating: "0", Count: 1},
		{Rating: "3", Count: 1},
		{Rating: "5", Count: 2},
	}, got)
}

func TestCustomersByAgeAlwaysEmitsEveryBucket(t *testing.T) {
	customers := []model.Customer{
		{Age: 19}, {Age: 25}, {Age: 35}, {Age: 49}, {Age: 70},
	}
	got := CustomersByAge(customers)
	assert.Equal(t, []AgeGroupCount{
		{AgeGroup: "Under 20", Count: 1},
		{AgeGroup: "20-29", Count: 1},
		{AgeGroup: "30-39", Count: 1},
		{AgeGroup: "40-49", Count: 1},
		{AgeGroup: "50+", Count: 1},
	}, got)

	empty := CustomersByAge(nil)
	assert.Len(t, empty, 5, "zero buckets stay in the payload")
	for _, b := range empty {
		assert.Zero(t, b.Count)
	}
}

func TestParseWhenLayouts(t *testing.T) {
	for _, s := range []string{"2025-03-14T19:30:00Z", "2025-03-14T19:30", "2025-03-14"} {
		_, ok := ParseWhen(s)
		assert.True(t, ok, s)
	}
	_, ok := ParseWhen("14/03/2025")
	assert.False(t, ok)
}
