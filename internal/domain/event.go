package domain

import (
	"context"
	"time"
)

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// ScenarioRequest is a request to simulate one impact. Fields absent from the
// source payload take the values of DefaultImpactParams.
type ScenarioRequest struct {
	ImpactParams `yaml:",inline"`

	// NEOID optionally names a catalog object whose size and speed replace
	// Diameter and Velocity.
	NEOID string `json:"neo_id,omitempty" yaml:"neo_id,omitempty"`

	NEO           *NEOReference `json:"-" yaml:"-"`
	CatalogSource string        `json:"-" yaml:"-"` // "catalog", "failed", or empty when not looked up
	RequestedAt   time.Time     `json:"-" yaml:"-"`
}

// DefaultScenarioRequest returns a request carrying the default scenario.
func DefaultScenarioRequest() ScenarioRequest {
	return ScenarioRequest{ImpactParams: DefaultImpactParams()}
}

// NEOReference identifies the catalog object a scenario was built from.
type NEOReference struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Hazardous bool   `json:"hazardous"`
}

// ImpactReport is the enriched result of a simulated scenario.
type ImpactReport struct {
	ID            string        `json:"id"`
	Params        ImpactParams  `json:"params"`
	Results       ImpactResults `json:"results"`
	Display       Display       `json:"display"`
	DensityClass  string        `json:"density_class"`
	Summary       string        `json:"summary"`
	Zones         []ImpactZone  `json:"zones"`
	Trajectory    Trajectory    `json:"trajectory"`
	NEO           *NEOReference `json:"neo,omitempty"`
	CatalogSource string        `json:"catalog_source,omitempty"`
	RequestedAt   *time.Time    `json:"requested_at,omitempty"`
	ProcessedAt   time.Time     `json:"processed_at"`
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
