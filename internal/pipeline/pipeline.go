package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/asteroid-impact-etl/internal/domain"
	"github.com/couchcryptid/asteroid-impact-etl/internal/observability"
	"github.com/couchcryptid/storm-data-shared/retry"
)

// Retry backoff after extract or load failures, and the bound on
// committing a loaded batch.
const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
	commitTimeout  = 5 * time.Second
)

// BatchExtractor reads up to batchSize raw scenario requests from the source.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error)
}

// Transformer converts a raw scenario request into a serialized impact report.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error)
}

// BatchLoader writes multiple output events to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, events []domain.OutputEvent) error
}

// Pipeline orchestrates the extract-transform-load loop.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
	batchSize   int
}

// New creates a Pipeline with the given stages and observability.
func New(e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		batchSize:   batchSize,
	}
}

// CheckReadiness returns nil once the pipeline has loaded at least one batch.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not processed any messages yet")
	}
	return nil
}

// Run executes the batch ETL loop until the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "batch_size", p.batchSize)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	backoff := initialBackoff
	for ctx.Err() == nil {
		requests, err := p.extractor.ExtractBatch(ctx, p.batchSize)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			p.logger.Error("extract batch failed", "error", err, "retry_in", backoff)
			if !wait(ctx, &backoff) {
				break
			}
			continue
		}
		backoff = initialBackoff

		if len(requests) == 0 {
			continue
		}
		if !p.process(ctx, requests) {
			break
		}
	}

	p.logger.Info("pipeline stopping", "reason", ctx.Err())
	return nil
}

// process turns one extracted batch into reports, writes them and commits
// every request in the batch. Returns false if the context ended before the
// reports were written; nothing is committed in that case.
func (p *Pipeline) process(ctx context.Context, requests []domain.RawEvent) bool {
	start := time.Now()
	p.metrics.MessagesConsumed.Add(float64(len(requests)))
	p.metrics.BatchSize.Observe(float64(len(requests)))

	reports := p.transformAll(ctx, requests)
	if len(reports) > 0 {
		if !p.load(ctx, reports) {
			return false
		}
		p.metrics.MessagesProduced.Add(float64(len(reports)))
		p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
		p.ready.Store(true)
		p.logger.Debug("batch loaded",
			"consumed", len(requests),
			"produced", len(reports),
			"skipped", len(requests)-len(reports),
			"duration", time.Since(start),
		)
	}

	p.settle(ctx, requests)
	return true
}

// transformAll builds a report for every request that can be estimated.
// Requests that fail are logged and counted; they are still committed with
// the rest of the batch so a poison message is never redelivered.
func (p *Pipeline) transformAll(ctx context.Context, requests []domain.RawEvent) []domain.OutputEvent {
	reports := make([]domain.OutputEvent, 0, len(requests))
	for _, raw := range requests {
		out, err := p.transformer.Transform(ctx, raw)
		if err != nil {
			p.logger.Warn("skipping scenario request",
				"error", err,
				"topic", raw.Topic,
				"partition", raw.Partition,
				"offset", raw.Offset,
			)
			p.metrics.TransformErrors.Inc()
			continue
		}
		reports = append(reports, out)
	}
	return reports
}

// load writes the reports, retrying the same batch with backoff until the
// sink accepts it or the context ends.
func (p *Pipeline) load(ctx context.Context, reports []domain.OutputEvent) bool {
	backoff := initialBackoff
	for {
		err := p.loader.LoadBatch(ctx, reports)
		if err == nil {
			return true
		}
		if ctx.Err() != nil {
			return false
		}
		p.metrics.LoadRetries.Inc()
		p.logger.Error("load batch failed", "error", err, "batch_size", len(reports), "retry_in", backoff)
		if !wait(ctx, &backoff) {
			return false
		}
	}
}

// settle commits each request in extraction order. Commits run detached
// from ctx so a shutdown right after a successful load does not redeliver
// the batch.
func (p *Pipeline) settle(ctx context.Context, requests []domain.RawEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), commitTimeout)
	defer cancel()

	for _, raw := range requests {
		if raw.Commit == nil {
			continue
		}
		if err := raw.Commit(ctx); err != nil {
			p.logger.Warn("commit offset failed", "error", err,
				"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
		}
	}
}

// wait sleeps for the current backoff and doubles it up to maxBackoff.
func wait(ctx context.Context, backoff *time.Duration) bool {
	if !retry.SleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = retry.NextBackoff(*backoff, maxBackoff)
	return true
}
