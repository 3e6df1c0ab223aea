package models

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"goflix/metrics"

	"github.com/rohanthewiz/serr"
	"golang.org/x/time/rate"
)

// MetadataClient reads listings from the metadata API (TMDB v3).
// Every call carries the api key as a query parameter and goes through a
// shared rate limiter so a burst of mounts cannot exceed the API quota.
type MetadataClient struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewMetadataClient creates a client from the configuration.
func NewMetadataClient(cfg *Config) *MetadataClient {
	burst := int(cfg.RateLimit)
	if burst < 1 {
		burst = 1
	}
	return &MetadataClient{
		baseURL:  strings.TrimRight(cfg.TMDBBaseURL, "/"),
		apiKey:   cfg.TMDBAPIKey,
		language: cfg.Language,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), burst),
	}
}

// Fetch reads a listing endpoint such as "/trending/all/week?language=en-US".
func (mc *MetadataClient) Fetch(ctx context.Context, endpoint string) (*Listing, error) {
	var listing Listing
	if err := mc.getJSON(ctx, endpoint, nil, &listing); err != nil {
		return nil, err
	}
	if listing.Results == nil {
		listing.Results = []MediaItem{}
	}
	return &listing, nil
}

// getJSON issues a GET against the API and decodes the body into out.
func (mc *MetadataClient) getJSON(ctx context.Context, endpoint string, params url.Values, out any) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveMetadataRequest(start, err) }()

	reqURL, err := mc.buildURL(endpoint, params)
	if err != nil {
		return err
	}

	if err := mc.limiter.Wait(ctx); err != nil {
		return serr.Wrap(err, "rate limiter wait aborted")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return serr.Wrap(err, "failed to create metadata request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := mc.httpClient.Do(req)
	if err != nil {
		return serr.Wrap(err, "metadata request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return serr.New(fmt.Sprintf("metadata api returned status %d for %s", resp.StatusCode, endpoint))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return serr.Wrap(err, "failed to decode metadata response")
	}
	return nil
}

// buildURL joins base and endpoint, keeps the endpoint's own query and adds
// params plus the api key.
func (mc *MetadataClient) buildURL(endpoint string, params url.Values) (string, error) {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}

	u, err := url.Parse(mc.baseURL + endpoint)
	if err != nil {
		return "", serr.Wrap(err, "invalid metadata endpoint")
	}

	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("api_key", mc.apiKey)
	u.RawQuery = q.Encode()

	return u.String(), nil
}
