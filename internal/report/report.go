// Package report computes the aggregate figures shown on the dashboard:
// screenings and sign-ups bucketed by month, reviews bucketed by star
// rating and customers bucketed by age range.  All inputs are cached
// snapshots from the repositories; nothing here talks to the network.
package report

import (
	"strconv"
	"time"

	"github.com/iliyamo/cinema-admin-api/internal/model"
)

// MonthCount is one month bucket.
type MonthCount struct {
	Month string `json:"month"` // three-letter month label, e.g. "Jan"
	Count int    `json:"count"`
}

// RatingCount is one star-rating bucket.
type RatingCount struct {
	Rating string `json:"rating"`
	Count  int    `json:"count"`
}

// AgeGroupCount is one age-range bucket.
type AgeGroupCount struct {
	AgeGroup string `json:"ageGroup"`
	Count    int    `json:"count"`
}

// ageGroups lists the fixed buckets in display order.  Every bucket is
// always emitted, even at zero, so chart legends stay stable.
var ageGroups = []string{"Under 20", "20-29", "30-39", "40-49", "50+"}

// timestamp layouts seen in the dataset: full RFC 3339, the
// datetime-local form without zone, and bare dates.
var whenLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// ParseWhen parses a timestamp in any of the accepted layouts.
func ParseWhen(s string) (time.Time, bool) {
	for _, layout := range whenLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func byMonth(stamps []string) []MonthCount {
	counts := make(map[time.Month]int)
	for _, s := range stamps {
		if t, ok := ParseWhen(s); ok {
			counts[t.Month()]++
		}
	}
	out := make([]MonthCount, 0, len(counts))
	for m := time.January; m <= time.December; m++ {
		if counts[m] > 0 {
			out = append(out, MonthCount{Month: m.String()[:3], Count: counts[m]})
		}
	}
	return out
}

// EventsByMonth buckets screenings by calendar month of their start
// time.  Months with no screenings are omitted; unparseable timestamps
// are skipped.
func EventsByMonth(events []model.Event) []MonthCount {
	stamps := make([]string, len(events))
	for i, e := range events {
		stamps[i] = e.DateTime
	}
	return byMonth(stamps)
}

// CustomersByMonth buckets customers by calendar month of their join
// date.
func CustomersByMonth(customers []model.Customer) []MonthCount {
	stamps := make([]string, len(customers))
	for i, c := range customers {
		stamps[i] = c.DateJoin
	}
	return byMonth(stamps)
}

// ReviewsByRating buckets reviews by star rating, ascending.  Only
// ratings that occur are emitted.
func ReviewsByRating(reviews []model.Review) []RatingCount {
	counts := make(map[int]int)
	for _, r := range reviews {
		counts[r.Rating]++
	}
	out := make([]RatingCount, 0, len(counts))
	for rating := 0; rating <= 5; rating++ {
		if counts[rating] > 0 {
			out = append(out, RatingCount{Rating: strconv.Itoa(rating), Count: counts[rating]})
		}
	}
	return out
}

// CustomersByAge buckets customers into the fixed age ranges Under 20,
// 20-29, 30-39, 40-49 and 50+.  Negative ages never reach this point
// (the read boundary rejects them).
func CustomersByAge(customers []model.Customer) []AgeGroupCount {
	counts := make(map[string]int, len(ageGroups))
	for _, g := range ageGroups {
		counts[g] = 0
	}
	for _, c := range customers {
		age := int(c.Age)
		switch {
		case age < 20:
			counts["Under 20"]++
		case age < 30:
			counts["20-29"]++
		case age < 40:
			counts["30-39"]++
		case age < 50:
			counts["40-49"]++
		default:
			counts["50+"]++
		}
	}
	out := make([]AgeGroupCount, 0, len(ageGroups))
	for _, g := range ageGroups {
		out = append(out, AgeGroupCount{AgeGroup: g, Count: counts[g]})
	}
	return out
}
