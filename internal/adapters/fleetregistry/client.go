package fleetregistry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fleet-allocation-service/internal/domain"
	"fleet-allocation-service/internal/platform/obs"
)

// Client implements CatalogRepository against a remote fleet registry exposing
// GET /v1/vehicle-types. It is safe for concurrent use.
type Client struct {
	session         *http.Client
	baseURL         string
	apiKey          string
	maxTries        uint
	initialInterval time.Duration
	maxInterval     time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.session = hc }
}

// WithRetry sets the attempt limit and the first backoff interval.
func WithRetry(maxTries uint, initial time.Duration) Option {
	return func(c *Client) {
		c.maxTries = maxTries
		c.initialInterval = initial
		if c.maxInterval < initial {
			c.maxInterval = initial
		}
	}
}

func NewClient(baseURL, apiKey string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("fleet registry: base url is empty")
	}

	c := &Client{
		session:         &http.Client{Timeout: 10 * time.Second},
		baseURL:         baseURL,
		apiKey:          apiKey,
		maxTries:        4,
		initialInterval: 200 * time.Millisecond,
		maxInterval:     2 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

type vehicleTypeResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	MaxCount int    `json:"max_count"`
}

type listResponse struct {
	VehicleTypes []vehicleTypeResponse `json:"vehicle_types"`
}

func (c *Client) ListVehicleTypes(ctx context.Context) (types []domain.VehicleType, err error) {
	ctx, done := obs.Time(ctx, "fleet registry list vehicle types")
	defer done(&err)

	url := c.baseURL + "/v1/vehicle-types"
	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodGet, url)
	})
	if err != nil {
		return nil, fmt.Errorf("list vehicle types: GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	var body listResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("list vehicle types: decode response: %w", err)
	}

	types = make([]domain.VehicleType, 0, len(body.VehicleTypes))
	for _, v := range body.VehicleTypes {
		types = append(types, domain.VehicleType{
			ID:       v.ID,
			Name:     v.Name,
			Capacity: v.Capacity,
			MaxCount: v.MaxCount,
		})
	}

	return types, nil
}
