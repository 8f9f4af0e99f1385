// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/danielhkuo/today-i-learned/models"
)

// maxResponseBytes bounds how much of a response body is read
const maxResponseBytes = 4 << 20

// RESTConfig configures a RESTStore
type RESTConfig struct {
	BaseURL           string // project URL, e.g. https://abc.supabase.co
	APIKey            string
	Table             string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// APIError is a non-2xx answer from the REST endpoint
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("rest store: %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("rest store: %d: %s", e.Status, e.Message)
}

// RESTStore talks to a hosted table through its PostgREST interface
// (the dialect Supabase exposes under /rest/v1).
type RESTStore struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	limiter    *rate.Limiter
}

func NewRESTStore(cfg RESTConfig) (*RESTStore, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid REST base URL %q", cfg.BaseURL)
	}
	if cfg.Table == "" {
		cfg.Table = "facts"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 10
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 20
	}

	return &RESTStore{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		endpoint:   base.String() + "/rest/v1/" + url.PathEscape(cfg.Table),
		apiKey:     cfg.APIKey,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}, nil
}

func (s *RESTStore) Select(ctx context.Context, q Query) ([]models.Fact, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("select", "*")
	if q.Category != "" {
		params.Set("category", "eq."+q.Category)
	}
	direction := "asc"
	if q.Descending {
		direction = "desc"
	}
	params.Set("order", q.OrderBy.Field()+"."+direction)
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	var facts []models.Fact
	if err := s.do(ctx, http.MethodGet, params, nil, &facts); err != nil {
		return nil, fmt.Errorf("select facts: %w", err)
	}
	if facts == nil {
		facts = []models.Fact{}
	}
	return facts, nil
}

func (s *RESTStore) Insert(ctx context.Context, nf models.NewFact) (models.Fact, error) {
	var rows []models.Fact
	if err := s.do(ctx, http.MethodPost, nil, []models.NewFact{nf}, &rows); err != nil {
		return models.Fact{}, fmt.Errorf("insert fact: %w", err)
	}
	if len(rows) == 0 {
		return models.Fact{}, fmt.Errorf("insert fact: %w", ErrEmptyResult)
	}
	return rows[0], nil
}

func (s *RESTStore) UpdateByID(ctx context.Context, id int64, p Patch) (models.Fact, error) {
	if err := p.validate(); err != nil {
		return models.Fact{}, err
	}

	params := url.Values{}
	params.Set("id", "eq."+strconv.FormatInt(id, 10))
	body := map[string]int{p.Counter.Field(): p.Value}

	var rows []models.Fact
	if err := s.do(ctx, http.MethodPatch, params, body, &rows); err != nil {
		return models.Fact{}, fmt.Errorf("update fact %d: %w", id, err)
	}
	if len(rows) == 0 {
		return models.Fact{}, ErrNotFound
	}
	return rows[0], nil
}

func (s *RESTStore) do(ctx context.Context, method string, params url.Values, body, out interface{}) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	target := s.endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp.StatusCode, data)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(status int, data []byte) error {
	apiErr := &APIError{Status: status}

	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Message != "" {
		apiErr.Code = payload.Code
		apiErr.Message = payload.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(status)
		}
	}
	return apiErr
}

// IsAPIError reports whether err carries an APIError with the given status
func IsAPIError(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
