package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// reportNamespace seeds UUIDv5 report IDs.
var reportNamespace = uuid.MustParse("6f1c9a52-3b8e-4d0a-9c57-2e4f8b7d1a60")

// ParseRawEvent decodes a source message into a ScenarioRequest. Fields the
// payload omits keep their DefaultImpactParams values.
func ParseRawEvent(raw RawEvent) (ScenarioRequest, error) {
	req := DefaultScenarioRequest()
	if err := json.Unmarshal(raw.Value, &req); err != nil {
		return ScenarioRequest{}, fmt.Errorf("parse scenario request: %w", err)
	}
	req.NEOID = strings.TrimSpace(req.NEOID)
	req.RequestedAt = raw.Timestamp
	return req, nil
}

// BuildImpactReport assembles the report for an estimated scenario and stamps
// it with the package clock.
func BuildImpactReport(req ScenarioRequest, results ImpactResults) ImpactReport {
	params := req.ImpactParams
	if params.Approach == "" {
		params.Approach = ApproachTop
	}

	report := ImpactReport{
		ID:            generateID(params),
		Params:        params,
		Results:       results,
		Display:       FormatResults(results),
		DensityClass:  DensityClass(params.Density),
		Summary:       Summary(params, results),
		Zones:         ImpactZones(params, results),
		Trajectory:    ComputeTrajectory(params),
		NEO:           req.NEO,
		CatalogSource: req.CatalogSource,
		ProcessedAt:   clock.Now().UTC(),
	}
	if !req.RequestedAt.IsZero() {
		t := req.RequestedAt.UTC()
		report.RequestedAt = &t
	}
	return report
}

// generateID derives a stable report ID from the effective parameters, so
// replaying a scenario yields the same key downstream.
func generateID(p ImpactParams) string {
	input := fmt.Sprintf("%.4f|%.4f|%g|%g|%g|%g|%s|%s",
		p.Lat, p.Lon, p.Diameter, p.Velocity, p.Angle, p.Density, p.Surface, p.Approach)
	return uuid.NewSHA1(reportNamespace, []byte(input)).String()
}

// SerializeImpactReport marshals a report into an OutputEvent keyed by report ID.
func SerializeImpactReport(report ImpactReport) (OutputEvent, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize impact report: %w", err)
	}
	return OutputEvent{
		Key:   []byte(report.ID),
		Value: data,
		Headers: map[string]string{
			"surface":      string(report.Params.Surface),
			"processed_at": report.ProcessedAt.Format(time.RFC3339),
		},
	}, nil
}
