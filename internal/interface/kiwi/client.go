package kiwi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/taesko/freefall/internal/domain/apperr"
	"github.com/taesko/freefall/internal/domain/entity"
	"github.com/taesko/freefall/internal/domain/repository"
	"github.com/taesko/freefall/pkg/logger"
	"github.com/taesko/freefall/pkg/utils"
)

const maxBodySize = 32 << 20

// Options configures the Kiwi API client
type Options struct {
	BaseURL  string
	Partner  string
	Currency string
	Locale   string
	Timeout  time.Duration
}

// Client talks to the Kiwi (skypicker) flight search API. It does not retry.
type Client struct {
	baseURL    string
	partner    string
	currency   string
	locale     string
	httpClient *http.Client
	logger     logger.Logger
}

// NewClient creates a new Kiwi API client
func NewClient(opts Options, log logger.Logger) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	currency := opts.Currency
	if currency == "" {
		currency = "USD"
	}
	locale := opts.Locale
	if locale == "" {
		locale = "en"
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		partner:    opts.Partner,
		currency:   currency,
		locale:     locale,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
	}
}

var _ repository.FlightAPI = (*Client)(nil)

// Get performs one GET request and decodes the JSON body into out.
// Any failure to obtain a decodable 2xx response is a peer error.
func (c *Client) Get(ctx context.Context, path string, params url.Values, out interface{}) error {
	body, err := c.getRaw(ctx, path, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperr.PeerWrap("kiwi_get", "decode "+path+" response", err)
	}
	return nil
}

func (c *Client) getRaw(ctx context.Context, path string, params url.Values) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperr.Internal("kiwi_get", "create request for %s: %v", path, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.PeerWrap("kiwi_get", "request "+path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, apperr.PeerWrap("kiwi_get", "read "+path+" response", err)
	}

	c.logger.Debug("Kiwi API request finished",
		"path", path,
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperr.Peer("kiwi_get", "%s returned status %d: %s", path, resp.StatusCode, snippet(body))
	}
	return body, nil
}

// SearchFlights fetches and validates one page of one-way routes
func (c *Client) SearchFlights(ctx context.Context, query entity.SearchQuery) (*entity.SearchPage, error) {
	params := url.Values{}
	params.Set("flyFrom", query.FlyFrom)
	params.Set("to", query.FlyTo)
	params.Set("dateFrom", utils.FormatSearchDate(query.DateFrom))
	params.Set("dateTo", utils.FormatSearchDate(query.DateTo))
	params.Set("typeFlight", "oneway")
	params.Set("partner", c.partner)
	params.Set("v", "2")
	params.Set("xml", "0")
	params.Set("locale", c.locale)
	params.Set("curr", c.currency)
	params.Set("offset", strconv.Itoa(query.Offset))
	params.Set("limit", strconv.Itoa(query.Limit))

	body, err := c.getRaw(ctx, "/flights", params)
	if err != nil {
		return nil, err
	}

	page, err := parseSearchPage(body)
	if err != nil {
		return nil, err
	}
	page.Raw = body
	return page, nil
}

// LookupAirports searches airport locations by term
func (c *Client) LookupAirports(ctx context.Context, term string) ([]entity.RemoteLocation, error) {
	params := url.Values{}
	params.Set("term", term)
	params.Set("locale", "en-US")
	params.Set("location_types", "airport")
	params.Set("limit", "1")

	var resp locationsResponse
	if err := c.Get(ctx, "/locations", params, &resp); err != nil {
		return nil, err
	}
	return parseLocations(resp)
}

// ListAirlines returns every airline the API knows
func (c *Client) ListAirlines(ctx context.Context) ([]entity.RemoteAirline, error) {
	var resp []airlineWire
	if err := c.Get(ctx, "/airlines", nil, &resp); err != nil {
		return nil, err
	}
	return parseAirlines(resp)
}

func snippet(body []byte) string {
	const max = 200
	if len(body) > max {
		return fmt.Sprintf("%s...", body[:max])
	}
	return string(body)
}
