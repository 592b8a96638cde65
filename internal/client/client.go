// Package client talks to the spendwise REST API.
//
// Client implements views.Source, so the views can be computed on a
// machine that has no database access.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spendwise/backend/internal/models"
)

// Client is an HTTP client for the v1 API.
type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient sets the http.Client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.http = c
	}
}

// New returns a client for the API at baseURL, e.g. https://example.com/api.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	for _, o := range opts {
		o(c)
	}

	return c
}

// APIError is returned when the API responds with a status other than 2xx.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api responded with %d: %s", e.StatusCode, e.Message)
}

// rejections are the model errors the API reports with status 400 that
// callers may want to tell apart.
var rejections = []error{
	models.ErrCardNotOwned,
	models.ErrSpendOwnerMismatch,
	models.ErrUserCardExists,
	models.ErrUserSpendExists,
	models.ErrCardSpendExists,
}

// Unwrap makes 404 responses match models.ErrResourceNotFound and 400
// responses match the model error they report.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return models.ErrResourceNotFound
	case http.StatusBadRequest:
		for _, err := range rejections {
			if e.Message == err.Error() {
				return err
			}
		}
	}
	return nil
}

// response is the envelope of all resource responses.
type response[T any] struct {
	Data  T       `json:"data"`
	Error *string `json:"error"`
}

// do sends a request to path and decodes the data of the response into out.
// body is encoded as JSON unless it is nil. out may be nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response of %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding response of %s %s: %w", method, path, err)
	}

	return nil
}

// newAPIError reads the message from the error of the response or, for
// batch creations, from the error of the first element.
func newAPIError(status int, body []byte) *APIError {
	var e struct {
		Error *string `json:"error"`
	}

	msg := http.StatusText(status)
	if err := json.Unmarshal(body, &e); err == nil && e.Error != nil {
		return &APIError{StatusCode: status, Message: *e.Error}
	}

	var batch struct {
		Data []struct {
			Error *string `json:"error"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &batch); err == nil && len(batch.Data) > 0 && batch.Data[0].Error != nil {
		msg = *batch.Data[0].Error
	}

	return &APIError{StatusCode: status, Message: msg}
}

// createError returns the error of the first element of a create response.
// The API creates resources in batches and reports errors per element.
func createError[T any](r response[[]response[*T]]) (*T, error) {
	if len(r.Data) == 0 {
		return nil, errors.New("the response contains no resource")
	}

	if r.Data[0].Error != nil {
		return nil, errors.New(*r.Data[0].Error)
	}

	return r.Data[0].Data, nil
}

func (c *Client) User(ctx context.Context, id uuid.UUID) (models.User, error) {
	var r response[models.User]
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/users/%s", id), nil, &r)
	return r.Data, err
}

func (c *Client) UserSpends(ctx context.Context, id uuid.UUID) ([]models.Spend, error) {
	var r response[[]models.Spend]
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/users/%s/spends", id), nil, &r); err != nil {
		return nil, err
	}

	warnLegacyDates(r.Data)
	return r.Data, nil
}

func (c *Client) UserCards(ctx context.Context, id uuid.UUID) ([]models.Card, error) {
	var r response[[]models.Card]
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/users/%s/cards", id), nil, &r)
	return r.Data, err
}

func (c *Client) Card(ctx context.Context, id uuid.UUID) (models.Card, error) {
	var r response[models.Card]
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/cards/%s", id), nil, &r)
	return r.Data, err
}

func (c *Client) CardSpends(ctx context.Context, id uuid.UUID) ([]models.Spend, error) {
	var r response[[]models.Spend]
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/cards/%s/spends", id), nil, &r); err != nil {
		return nil, err
	}

	warnLegacyDates(r.Data)
	return r.Data, nil
}

// warnLegacyDates logs spends whose date is not in DD-MM-YY format.
// The aggregates leave them out, which is easy to miss otherwise.
func warnLegacyDates(spends []models.Spend) {
	for _, s := range spends {
		if !s.Date.Valid() {
			log.Warn().Str("spend", s.ID.String()).Str("date", string(s.Date)).Msg("spend date is not in DD-MM-YY format, it is left out of date based totals")
		}
	}
}
