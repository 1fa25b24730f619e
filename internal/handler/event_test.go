package handler

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEvent(t *testing.T) {
	future := time.Now().UTC().AddDate(0, 0, 3).Format(time.RFC3339)

	cases := []struct {
		name string
		req  eventReq
		msg  string
	}{
		{"valid", eventReq{Title: "Dune", DateTime: future, CinemaRef: "cinema_1"}, ""},
		{"short title", eventReq{Title: "D", DateTime: future, CinemaRef: "cinema_1"}, "title must be at least 2 characters"},
		{"missing cinema", eventReq{Title: "Dune", DateTime: future}, "cinema is required"},
		{"bad timestamp", eventReq{Title: "Dune", DateTime: "whenever", CinemaRef: "cinema_1"}, "dateTime is invalid"},
		{"today rejected", eventReq{Title: "Dune", DateTime: time.Now().UTC().Format(time.RFC3339), CinemaRef: "cinema_1"}, "dateTime must be tomorrow or later"},
		{"past rejected", eventReq{Title: "Dune", DateTime: "2020-01-01T20:00:00Z", CinemaRef: "cinema_1"}, "dateTime must be tomorrow or later"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.msg, validateEvent(&tc.req))
		})
	}
}

func TestValidateEventTrimsTitle(t *testing.T) {
	future := time.Now().UTC().AddDate(0, 0, 3).Format(time.RFC3339)
	req := eventReq{Title: "  Dune  ", DateTime: future, CinemaRef: "cinema_1"}
	require.Empty(t, validateEvent(&req))
	assert.Equal(t, "Dune", req.Title)
}

func TestPageParam(t *testing.T) {
	e := echo.New()
	ctxFor := func(target string) echo.Context {
		req := httptest.NewRequest("GET", target, nil)
		return e.NewContext(req, httptest.NewRecorder())
	}

	page, err := pageParam(ctxFor("/v1/events"))
	require.NoError(t, err)
	assert.Equal(t, 0, page)

	page, err = pageParam(ctxFor("/v1/events?page=3"))
	require.NoError(t, err)
	assert.Equal(t, 3, page)

	_, err = pageParam(ctxFor("/v1/events?page=0"))
	assert.Error(t, err)

	_, err = pageParam(ctxFor("/v1/events?page=abc"))
	assert.Error(t, err)
}
