package domain

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"
)

// FeedWindow is the span of one explorer feed request.
const FeedWindow = 7 * 24 * time.Hour

// DefaultFeedLimit caps the number of explorer summaries.
const DefaultFeedLimit = 50

// CloseApproach is one close-approach record of a near-Earth object.
type CloseApproach struct {
	Date           string  `json:"date"`
	VelocityKmS    float64 `json:"velocity_km_s"`
	VelocityKmH    float64 `json:"velocity_km_h"`
	MissDistanceKm float64 `json:"miss_distance_km"`
	OrbitingBody   string  `json:"orbiting_body,omitempty"`
}

// NearEarthObject is a catalog entry for an asteroid or comet.
type NearEarthObject struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	DiameterMinM    float64         `json:"diameter_min_m"`
	DiameterMaxM    float64         `json:"diameter_max_m"`
	Hazardous       bool            `json:"hazardous"`
	CloseApproaches []CloseApproach `json:"close_approaches,omitempty"`
}

// MeanDiameterM is the midpoint of the estimated diameter range.
func (n NearEarthObject) MeanDiameterM() float64 {
	return (n.DiameterMinM + n.DiameterMaxM) / 2
}

// ErrNEONotFound is returned by a Catalog when the requested object does not exist.
var ErrNEONotFound = errors.New("near-earth object not found")

// Catalog looks up near-Earth objects from an external source.
type Catalog interface {
	// LookupNEO fetches a single object by catalog ID.
	LookupNEO(ctx context.Context, id string) (NearEarthObject, error)

	// Feed lists objects with close approaches between start and end (inclusive dates).
	Feed(ctx context.Context, start, end time.Time) ([]NearEarthObject, error)
}

// AsteroidSummary is a compact explorer row for one object.
type AsteroidSummary struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	DistanceKm        float64 `json:"distance_km"`
	VelocityKmH       float64 `json:"velocity_km_h"`
	DiameterM         float64 `json:"diameter_m"`
	Hazardous         bool    `json:"hazardous"`
	CloseApproachDate string  `json:"close_approach_date"`
}

// SummarizeFeed converts catalog objects into explorer rows ordered by close
// approach date, keeping at most limit rows (limit <= 0 means DefaultFeedLimit).
// Objects without close-approach data are dropped.
func SummarizeFeed(neos []NearEarthObject, limit int) []AsteroidSummary {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}

	out := make([]AsteroidSummary, 0, len(neos))
	for _, n := range neos {
		if len(n.CloseApproaches) == 0 {
			continue
		}
		ca := n.CloseApproaches[0]
		out = append(out, AsteroidSummary{
			ID:                n.ID,
			Name:              n.Name,
			DistanceKm:        ca.MissDistanceKm,
			VelocityKmH:       ca.VelocityKmH,
			DiameterM:         n.MeanDiameterM(),
			Hazardous:         n.Hazardous,
			CloseApproachDate: ca.Date,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CloseApproachDate != out[j].CloseApproachDate {
			return out[i].CloseApproachDate < out[j].CloseApproachDate
		}
		return out[i].ID < out[j].ID
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// FallbackAsteroids returns the demo rows shown when the feed is unavailable.
func FallbackAsteroids(now time.Time) []AsteroidSummary {
	date := now.UTC().Format(time.RFC3339)
	return []AsteroidSummary{
		{ID: "1", Name: "2024 AA1", DistanceKm: 5000000, VelocityKmH: 25000, DiameterM: 150, Hazardous: true, CloseApproachDate: date},
		{ID: "2", Name: "2024 BB2", DistanceKm: 8000000, VelocityKmH: 18000, DiameterM: 80, Hazardous: false, CloseApproachDate: date},
	}
}

// defaultCatalogVelocity is used when an object has no usable close approach.
const defaultCatalogVelocity = 20.0

// ParamsFromNEO overlays an object's size and speed onto base. Diameter is
// the rounded mean of the estimated range; velocity is the rounded relative
// velocity of the first close approach, or 20 km/s without one.
func ParamsFromNEO(base ImpactParams, n NearEarthObject) ImpactParams {
	p := base
	if d := math.Round(n.MeanDiameterM()); d > 0 {
		p.Diameter = d
	}
	p.Velocity = defaultCatalogVelocity
	if len(n.CloseApproaches) > 0 {
		if v := math.Round(n.CloseApproaches[0].VelocityKmS); v > 0 {
			p.Velocity = v
		}
	}
	return p
}
