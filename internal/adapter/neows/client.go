package neows

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/couchcryptid/asteroid-impact-etl/internal/config"
	"github.com/couchcryptid/asteroid-impact-etl/internal/domain"
	"github.com/couchcryptid/asteroid-impact-etl/internal/observability"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public NASA NeoWs endpoint.
const DefaultBaseURL = "https://api.nasa.gov/neo/rest/v1"

const dateLayout = "2006-01-02"

// Client implements domain.Catalog using the NASA Near Earth Object Web Service.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a NeoWs client from the NEOWS_* settings.
func NewClient(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Client {
	baseURL := cfg.NeoWsBaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey: cfg.NeoWsAPIKey,
		httpClient: &http.Client{
			Timeout: cfg.NeoWsTimeout,
		},
		baseURL: baseURL,
		limiter: newLimiter(cfg.NeoWsRequestsPerHour),
		metrics: metrics,
		logger:  logger,
	}
}

// newLimiter spreads perHour requests evenly with a small burst. A
// non-positive budget disables limiting.
func newLimiter(perHour int) *rate.Limiter {
	if perHour <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Hour/time.Duration(perHour)), min(perHour, 10))
}

// LookupNEO fetches one object by its NeoWs ID.
func (c *Client) LookupNEO(ctx context.Context, id string) (domain.NearEarthObject, error) {
	u := fmt.Sprintf("%s/neo/%s?%s", c.baseURL, url.PathEscape(id), url.Values{"api_key": {c.apiKey}}.Encode())

	var resp neoResponse
	if err := c.doRequest(ctx, u, "lookup", &resp); err != nil {
		return domain.NearEarthObject{}, fmt.Errorf("lookup neo %s: %w", id, err)
	}
	if resp.ID == "" {
		c.metrics.CatalogRequests.WithLabelValues("lookup", "empty").Inc()
		return domain.NearEarthObject{}, fmt.Errorf("lookup neo %s: %w", id, domain.ErrNEONotFound)
	}

	c.metrics.CatalogRequests.WithLabelValues("lookup", "success").Inc()
	return resp.toDomain(), nil
}

// Feed lists objects with close approaches between the start and end dates.
// NeoWs serves at most domain.FeedWindow per request.
func (c *Client) Feed(ctx context.Context, start, end time.Time) ([]domain.NearEarthObject, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("feed: end date %s before start date %s", end.Format(dateLayout), start.Format(dateLayout))
	}
	if end.Sub(start) > domain.FeedWindow {
		return nil, fmt.Errorf("feed: window exceeds %s", domain.FeedWindow)
	}

	params := url.Values{
		"start_date": {start.Format(dateLayout)},
		"end_date":   {end.Format(dateLayout)},
		"api_key":    {c.apiKey},
	}

	var resp feedResponse
	if err := c.doRequest(ctx, c.baseURL+"/feed?"+params.Encode(), "feed", &resp); err != nil {
		return nil, fmt.Errorf("feed %s..%s: %w", params.Get("start_date"), params.Get("end_date"), err)
	}

	dates := make([]string, 0, len(resp.NearEarthObjects))
	for d := range resp.NearEarthObjects {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	neos := make([]domain.NearEarthObject, 0, max(resp.ElementCount, 0))
	for _, d := range dates {
		for _, n := range resp.NearEarthObjects[d] {
			neos = append(neos, n.toDomain())
		}
	}

	outcome := "success"
	if len(neos) == 0 {
		outcome = "empty"
	}
	c.metrics.CatalogRequests.WithLabelValues("feed", outcome).Inc()
	return neos, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL, method string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		c.metrics.CatalogRequests.WithLabelValues(method, "error").Inc()
		return fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.CatalogAPIDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.CatalogRequests.WithLabelValues(method, "error").Inc()
		return fmt.Errorf("%s request: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.metrics.CatalogRequests.WithLabelValues(method, "empty").Inc()
		return domain.ErrNEONotFound
	}
	if resp.StatusCode != http.StatusOK {
		c.metrics.CatalogRequests.WithLabelValues(method, "error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Warn("neows API error", "method", method, "status", resp.StatusCode,
			"rate_limit_remaining", resp.Header.Get("X-RateLimit-Remaining"))
		return fmt.Errorf("neows API error: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.CatalogRequests.WithLabelValues(method, "error").Inc()
		return fmt.Errorf("decode response: %w", err)
	}

	c.logger.Debug("neows request complete", "method", method, "duration", time.Since(start),
		"rate_limit_remaining", resp.Header.Get("X-RateLimit-Remaining"))
	return nil
}

// NeoWs API response types. Velocities and distances arrive as strings.

type feedResponse struct {
	ElementCount     int                      `json:"element_count"`
	NearEarthObjects map[string][]neoResponse `json:"near_earth_objects"`
}

type neoResponse struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	EstimatedDiameter estimatedDiameter `json:"estimated_diameter"`
	Hazardous         bool              `json:"is_potentially_hazardous_asteroid"`
	CloseApproachData []closeApproach   `json:"close_approach_data"`
}

type estimatedDiameter struct {
	Meters diameterRange `json:"meters"`
}

type diameterRange struct {
	Min float64 `json:"estimated_diameter_min"`
	Max float64 `json:"estimated_diameter_max"`
}

type closeApproach struct {
	Date             string           `json:"close_approach_date"`
	RelativeVelocity relativeVelocity `json:"relative_velocity"`
	MissDistance     missDistance     `json:"miss_distance"`
	OrbitingBody     string           `json:"orbiting_body"`
}

type relativeVelocity struct {
	KilometersPerSecond string `json:"kilometers_per_second"`
	KilometersPerHour   string `json:"kilometers_per_hour"`
}

type missDistance struct {
	Kilometers string `json:"kilometers"`
}

func (n neoResponse) toDomain() domain.NearEarthObject {
	out := domain.NearEarthObject{
		ID:           n.ID,
		Name:         n.Name,
		DiameterMinM: n.EstimatedDiameter.Meters.Min,
		DiameterMaxM: n.EstimatedDiameter.Meters.Max,
		Hazardous:    n.Hazardous,
	}
	for _, ca := range n.CloseApproachData {
		out.CloseApproaches = append(out.CloseApproaches, domain.CloseApproach{
			Date:           ca.Date,
			VelocityKmS:    parseNumber(ca.RelativeVelocity.KilometersPerSecond),
			VelocityKmH:    parseNumber(ca.RelativeVelocity.KilometersPerHour),
			MissDistanceKm: parseNumber(ca.MissDistance.Kilometers),
			OrbitingBody:   ca.OrbitingBody,
		})
	}
	return out
}

// parseNumber reads a NeoWs numeric string; malformed values become 0.
func parseNumber(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
