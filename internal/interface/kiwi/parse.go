package kiwi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taesko/freefall/internal/domain/apperr"
	"github.com/taesko/freefall/internal/domain/entity"
)

// Wire types use pointers so a missing key is distinguishable from a zero value.

type searchResponse struct {
	Data     *[]routeWire    `json:"data"`
	Currency *string         `json:"currency"`
	Next     json.RawMessage `json:"_next"`
}

type routeWire struct {
	BookingToken *string        `json:"booking_token"`
	Price        json.RawMessage `json:"price"`
	Route        *[]flightWire   `json:"route"`
}

type flightWire struct {
	ID       *string `json:"id"`
	FlightNo *int64  `json:"flight_no"`
	DTimeUTC *int64  `json:"dTimeUTC"`
	ATimeUTC *int64  `json:"aTimeUTC"`
	FlyFrom  *string `json:"flyFrom"`
	FlyTo    *string `json:"flyTo"`
	Airline  *string `json:"airline"`
	Return   *int    `json:"return"`
}

type locationsResponse struct {
	Locations *[]locationWire `json:"locations"`
}

type locationWire struct {
	Code *string `json:"code"`
	Name *string `json:"name"`
}

type airlineWire struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`
}

func parseSearchPage(body []byte) (*entity.SearchPage, error) {
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, apperr.PeerWrap("parse_search", "decode flights response", err)
	}
	if resp.Data == nil {
		return nil, apperr.Peer("parse_search", "key \"data\" not found in flights response")
	}
	if resp.Currency == nil {
		return nil, apperr.Peer("parse_search", "key \"currency\" not found in flights response")
	}
	if len(resp.Next) == 0 {
		return nil, apperr.Peer("parse_search", "key \"_next\" not found in flights response")
	}

	page := &entity.SearchPage{
		Currency: *resp.Currency,
		HasNext:  isJSONString(resp.Next),
		Routes:   make([]entity.RemoteRoute, 0, len(*resp.Data)),
	}
	for i, rw := range *resp.Data {
		route, err := parseRoute(rw)
		if err != nil {
			return nil, apperr.PeerWrap("parse_search", "route "+strconv.Itoa(i), err)
		}
		page.Routes = append(page.Routes, route)
	}
	return page, nil
}

func parseRoute(rw routeWire) (entity.RemoteRoute, error) {
	if rw.BookingToken == nil {
		return entity.RemoteRoute{}, apperr.Peer("parse_route", "key \"booking_token\" not found")
	}
	if !isJSONNumber(rw.Price) {
		return entity.RemoteRoute{}, apperr.Peer("parse_route", "expected numeric price, got %s", string(rw.Price))
	}
	price, err := decimal.NewFromString(string(rw.Price))
	if err != nil {
		return entity.RemoteRoute{}, apperr.PeerWrap("parse_route", "price", err)
	}
	if rw.Route == nil {
		return entity.RemoteRoute{}, apperr.Peer("parse_route", "key \"route\" not found")
	}

	route := entity.RemoteRoute{
		BookingToken: *rw.BookingToken,
		Price:        price,
		Flights:      make([]entity.RemoteFlight, 0, len(*rw.Route)),
	}
	for _, fw := range *rw.Route {
		flight, err := parseFlight(fw)
		if err != nil {
			return entity.RemoteRoute{}, err
		}
		route.Flights = append(route.Flights, flight)
	}

	if err := route.Validate(); err != nil {
		return entity.RemoteRoute{}, apperr.PeerWrap("parse_route", "invalid route", err)
	}
	return route, nil
}

func parseFlight(fw flightWire) (entity.RemoteFlight, error) {
	switch {
	case fw.ID == nil:
		return entity.RemoteFlight{}, apperr.Peer("parse_flight", "key \"id\" not found")
	case fw.FlightNo == nil:
		return entity.RemoteFlight{}, apperr.Peer("parse_flight", "key \"flight_no\" not found in flight %s", *fw.ID)
	case fw.DTimeUTC == nil:
		return entity.RemoteFlight{}, apperr.Peer("parse_flight", "key \"dTimeUTC\" not found in flight %s", *fw.ID)
	case fw.ATimeUTC == nil:
		return entity.RemoteFlight{}, apperr.Peer("parse_flight", "key \"aTimeUTC\" not found in flight %s", *fw.ID)
	case fw.FlyFrom == nil:
		return entity.RemoteFlight{}, apperr.Peer("parse_flight", "key \"flyFrom\" not found in flight %s", *fw.ID)
	case fw.FlyTo == nil:
		return entity.RemoteFlight{}, apperr.Peer("parse_flight", "key \"flyTo\" not found in flight %s", *fw.ID)
	case fw.Airline == nil:
		return entity.RemoteFlight{}, apperr.Peer("parse_flight", "key \"airline\" not found in flight %s", *fw.ID)
	case fw.Return == nil:
		return entity.RemoteFlight{}, apperr.Peer("parse_flight", "key \"return\" not found in flight %s", *fw.ID)
	}
	if *fw.Return != 0 && *fw.Return != 1 {
		return entity.RemoteFlight{}, apperr.Peer("parse_flight", "expected return in flight %s to be 0 or 1, got %d", *fw.ID, *fw.Return)
	}

	return entity.RemoteFlight{
		ID:           *fw.ID,
		FlightNumber: *fw.FlightNo,
		DepartureUTC: time.Unix(*fw.DTimeUTC, 0).UTC(),
		ArrivalUTC:   time.Unix(*fw.ATimeUTC, 0).UTC(),
		FlyFrom:      *fw.FlyFrom,
		FlyTo:        *fw.FlyTo,
		Airline:      *fw.Airline,
		Return:       *fw.Return == 1,
	}, nil
}

func parseLocations(resp locationsResponse) ([]entity.RemoteLocation, error) {
	if resp.Locations == nil {
		return nil, apperr.Peer("parse_locations", "key \"locations\" not found in locations response")
	}
	locations := make([]entity.RemoteLocation, 0, len(*resp.Locations))
	for _, lw := range *resp.Locations {
		if lw.Code == nil || lw.Name == nil {
			return nil, apperr.Peer("parse_locations", "location is missing \"code\" or \"name\"")
		}
		locations = append(locations, entity.RemoteLocation{Code: *lw.Code, Name: *lw.Name})
	}
	return locations, nil
}

func parseAirlines(resp []airlineWire) ([]entity.RemoteAirline, error) {
	airlines := make([]entity.RemoteAirline, 0, len(resp))
	for _, aw := range resp {
		if aw.ID == nil || aw.Name == nil {
			return nil, apperr.Peer("parse_airlines", "airline is missing \"id\" or \"name\"")
		}
		airlines = append(airlines, entity.RemoteAirline{Code: *aw.ID, Name: *aw.Name})
	}
	return airlines, nil
}

func isJSONString(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '"'
}

func isJSONNumber(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	c := raw[0]
	return c == '-' || (c >= '0' && c <= '9')
}
