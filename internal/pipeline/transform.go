package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/asteroid-impact-etl/internal/domain"
	"github.com/couchcryptid/asteroid-impact-etl/internal/observability"
)

// ImpactTransformer turns scenario requests into impact reports, enriching
// them from the NEO catalog when a request names an object.
type ImpactTransformer struct {
	estimator *domain.Estimator
	catalog   domain.Catalog
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewTransformer creates an ImpactTransformer. A nil estimator uses the
// default reference cities; a nil catalog disables enrichment.
func NewTransformer(estimator *domain.Estimator, catalog domain.Catalog, logger *slog.Logger, metrics *observability.Metrics) *ImpactTransformer {
	if estimator == nil {
		estimator = domain.NewEstimator(nil)
	}
	return &ImpactTransformer{
		estimator: estimator,
		catalog:   catalog,
		logger:    logger,
		metrics:   metrics,
	}
}

// Simulate enriches, validates and estimates one scenario and assembles its
// report. Invalid parameters return an error wrapping domain.ErrInvalidParameter.
func (t *ImpactTransformer) Simulate(ctx context.Context, req domain.ScenarioRequest) (domain.ImpactReport, error) {
	req = domain.EnrichWithCatalog(ctx, req, t.catalog, t.logger)

	results, err := t.estimator.Estimate(req.ImpactParams)
	if err != nil {
		t.recordInvalid(err)
		return domain.ImpactReport{}, err
	}

	t.metrics.EstimatesTotal.WithLabelValues(string(req.Surface)).Inc()
	t.metrics.EnergyMegatons.Observe(results.EnergyMT)

	return domain.BuildImpactReport(req, results), nil
}

func (t *ImpactTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	req, err := domain.ParseRawEvent(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	report, err := t.Simulate(ctx, req)
	if err != nil {
		return domain.OutputEvent{}, fmt.Errorf("simulate scenario: %w", err)
	}

	return domain.SerializeImpactReport(report)
}

func (t *ImpactTransformer) recordInvalid(err error) {
	var ipe *domain.InvalidParameterError
	if !errors.As(err, &ipe) {
		return
	}
	for _, v := range ipe.Violations {
		t.metrics.InvalidParameters.WithLabelValues(v.Field).Inc()
	}
}
