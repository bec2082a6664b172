package kiwi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taesko/freefall/internal/domain/apperr"
	"github.com/taesko/freefall/internal/domain/entity"
	"github.com/taesko/freefall/pkg/logger"
)

const searchBody = `{
  "currency": "USD",
  "_next": "https://api.skypicker.com/flights?offset=30",
  "data": [{
    "booking_token": "tok-1",
    "price": 250,
    "route": [
      {"id": "f1", "flight_no": 4321, "dTimeUTC": 1792476000, "aTimeUTC": 1792486800,
       "flyFrom": "SOF", "flyTo": "LTN", "airline": "W6", "return": 0}
    ]
  }]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Options{BaseURL: srv.URL, Partner: "picky", Timeout: 2 * time.Second}, logger.NewNopLogger())
}

func TestSearchFlights(t *testing.T) {
	var got map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/flights", r.URL.Path)
		got = map[string]string{}
		for k := range r.URL.Query() {
			got[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchBody))
	})

	page, err := client.SearchFlights(context.Background(), entity.SearchQuery{
		FlyFrom:  "SOF",
		FlyTo:    "LTN",
		DateFrom: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(2026, 11, 15, 0, 0, 0, 0, time.UTC),
		Offset:   30,
		Limit:    30,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"flyFrom":    "SOF",
		"to":         "LTN",
		"dateFrom":   "15/10/2026",
		"dateTo":     "15/11/2026",
		"typeFlight": "oneway",
		"partner":    "picky",
		"v":          "2",
		"xml":        "0",
		"locale":     "en",
		"curr":       "USD",
		"offset":     "30",
		"limit":      "30",
	}, got)

	assert.True(t, page.HasNext)
	assert.Equal(t, "USD", page.Currency)
	assert.JSONEq(t, searchBody, string(page.Raw))
	require.Len(t, page.Routes, 1)

	route := page.Routes[0]
	assert.Equal(t, "tok-1", route.BookingToken)
	assert.Equal(t, "250", route.Price.String())
	require.Len(t, route.Flights, 1)
	assert.Equal(t, entity.RemoteFlight{
		ID:           "f1",
		FlightNumber: 4321,
		DepartureUTC: time.Unix(1792476000, 0).UTC(),
		ArrivalUTC:   time.Unix(1792486800, 0).UTC(),
		FlyFrom:      "SOF",
		FlyTo:        "LTN",
		Airline:      "W6",
	}, route.Flights[0])
}

func TestGetNon2xxIsPeerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	})

	var out map[string]interface{}
	err := client.Get(context.Background(), "/flights", nil, &out)
	require.Error(t, err)
	assert.True(t, apperr.IsPeer(err))
	assert.Contains(t, err.Error(), "429")
}

func TestGetUndecodableIsPeerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	})

	var out map[string]interface{}
	err := client.Get(context.Background(), "/airlines", nil, &out)
	assert.True(t, apperr.IsPeer(err))
}

func TestGetTimeoutIsPeerError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	client := NewClient(Options{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, logger.NewNopLogger())
	var out map[string]interface{}
	err := client.Get(context.Background(), "/flights", nil, &out)
	assert.True(t, apperr.IsPeer(err))
}

func TestLookupAirports(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/locations", r.URL.Path)
		assert.Equal(t, "SOF", r.URL.Query().Get("term"))
		assert.Equal(t, "en-US", r.URL.Query().Get("locale"))
		assert.Equal(t, "airport", r.URL.Query().Get("location_types"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"locations": [{"code": "SOF", "name": "Sofia"}]}`))
	})

	locations, err := client.LookupAirports(context.Background(), "SOF")
	require.NoError(t, err)
	assert.Equal(t, []entity.RemoteLocation{{Code: "SOF", Name: "Sofia"}}, locations)
}

func TestListAirlines(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/airlines", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id": "FR", "name": "Ryanair", "lcc": 1}, {"id": "__", "name": "FakeAirline"}]`))
	})

	airlines, err := client.ListAirlines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entity.RemoteAirline{{Code: "FR", Name: "Ryanair"}, {Code: "__", Name: "FakeAirline"}}, airlines)
}
