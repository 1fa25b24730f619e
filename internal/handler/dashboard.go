package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/cinema-admin-api/internal/model"
	"github.com/iliyamo/cinema-admin-api/internal/report"
)

// metricsResp is the full dashboard payload: headline counts plus the
// chart series.
type metricsResp struct {
	TotalEvents      int                    `json:"totalEvents"`
	TotalCustomers   int                    `json:"totalCustomers"`
	TotalReviews     int                    `json:"totalReviews"`
	EventsByMonth    []report.MonthCount    `json:"eventsByMonth"`
	CustomersByMonth []report.MonthCount    `json:"customersByMonth"`
	ReviewsByRating  []report.RatingCount   `json:"reviewsByRating"`
	CustomersByAge   []report.AgeGroupCount `json:"customersByAge"`
}

// Metrics handles GET /v1/dashboard/metrics.  The three listings are fetched
// concurrently; each one usually comes straight out of the query cache.
func (h *AdminHandler) Metrics(c echo.Context) error {
	var (
		events    []model.Event
		customers []model.Customer
		reviews   []model.Review
	)
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		var err error
		events, err = h.Events.List(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		customers, err = h.Customers.List(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		reviews, err = h.Reviews.List(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return remoteFail(c, err)
	}

	return c.JSON(http.StatusOK, metricsResp{
		TotalEvents:      len(events),
		TotalCustomers:   len(customers),
		TotalReviews:     len(reviews),
		EventsByMonth:    report.EventsByMonth(events),
		CustomersByMonth: report.CustomersByMonth(customers),
		ReviewsByRating:  report.ReviewsByRating(reviews),
		CustomersByAge:   report.CustomersByAge(customers),
	})
}
