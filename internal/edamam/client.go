package edamam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/QMSS-G5072-2024/nutrilog/pkg/model"
)

// ErrMissingCredentials is returned before any request is made when the app ID
// or app key is empty.
var ErrMissingCredentials = errors.New("edamam app_id and app_key not provided; sign up at https://developer.edamam.com/edamam-nutrition-api")

// ErrInvalidResponse wraps a response body that is not valid JSON.
var ErrInvalidResponse = errors.New("invalid response from nutrition API")

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("edamam nutrition API error %d: %s", e.Code, e.Body)
}

// Query describes a single ingredient lookup.
type Query struct {
	Quantity   float64
	Unit       string
	Ingredient string
}

// Phrase joins quantity, unit and ingredient with single spaces, e.g. "2 g flour".
func (q Query) Phrase() string {
	return strings.Join([]string{
		strconv.FormatFloat(q.Quantity, 'f', -1, 64), q.Unit, q.Ingredient,
	}, " ")
}

// ParseQuantity reads the quantity of an ingredient phrase. NaN, infinities,
// zero and negative amounts are rejected.
func ParseQuantity(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	qty, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("quantity %q is not a number", raw)
	}
	if math.IsNaN(qty) || math.IsInf(qty, 0) || qty <= 0 {
		return 0, fmt.Errorf("quantity %q must be a positive number", raw)
	}
	return qty, nil
}

// Amount is one entry of the totalNutrients map.
type Amount struct {
	Label    string  `json:"label"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Payload is the subset of the nutrition-data response nutrilog reads.
type Payload struct {
	Calories       *float64          `json:"calories"`
	TotalWeight    float64           `json:"totalWeight"`
	TotalNutrients map[string]Amount `json:"totalNutrients"`
}

// Client calls the Edamam Nutrition Analysis API.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient returns a Client for endpoint. An empty endpoint uses the public API
// and a zero timeout falls back to ten seconds.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = model.DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// URL builds the request URL for q.
func (c *Client) URL(creds model.Credentials, q Query) string {
	v := url.Values{}
	v.Set("app_id", creds.AppID)
	v.Set("app_key", creds.AppKey)
	v.Set("nutrition-type", "cooking")
	v.Set("ingr", q.Phrase())
	return c.endpoint + "?" + v.Encode()
}

// Fetch retrieves nutrition data for q. It makes exactly one request and never
// retries.
func (c *Client) Fetch(ctx context.Context, creds model.Credentials, q Query) (*Payload, error) {
	if !creds.Complete() {
		return nil, ErrMissingCredentials
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(creds, q), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create nutrition request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Edamam nutrition API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read nutrition response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var p Payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &p, nil
}
