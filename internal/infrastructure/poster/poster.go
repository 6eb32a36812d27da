package poster

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/fintrellis/assetbook/internal/domain"
	"github.com/fintrellis/assetbook/internal/infrastructure/metrics"
	"github.com/fintrellis/assetbook/internal/usecase"
)

// Poster drains the journal outbox: it polls for unpublished events,
// hands them to a Publisher and marks them published. Published events
// older than the retention window are pruned on each pass.
type Poster struct {
	outboxRepo usecase.OutboxRepository
	publisher  Publisher
	logger     *slog.Logger
	metrics    *metrics.Metrics
	batchSize  int
	interval   time.Duration
	retention  time.Duration
}

// Publisher delivers one journal event to the bookkeeping service.
type Publisher interface {
	Publish(ctx context.Context, event *domain.OutboxEvent) error
}

// Config for Poster.
type Config struct {
	OutboxRepo usecase.OutboxRepository
	Publisher  Publisher
	Logger     *slog.Logger
	Metrics    *metrics.Metrics // May be nil
	BatchSize  int              // Number of events to fetch per batch
	Interval   time.Duration    // Polling interval
	Retention  time.Duration    // How long published events are kept
}

// New creates a new Poster.
func New(cfg Config) *Poster {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.Interval == 0 {
		cfg.Interval = 5 * time.Second
	}
	if cfg.Retention == 0 {
		cfg.Retention = 7 * 24 * time.Hour
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Poster{
		outboxRepo: cfg.OutboxRepo,
		publisher:  cfg.Publisher,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		batchSize:  cfg.BatchSize,
		interval:   cfg.Interval,
		retention:  cfg.Retention,
	}
}

// Start begins the posting worker. It runs continuously until the
// context is cancelled.
func (p *Poster) Start(ctx context.Context) error {
	p.logger.Info("journal poster started",
		slog.Int("batch_size", p.batchSize),
		slog.Duration("interval", p.interval))

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Process immediately on start
	if err := p.processEvents(ctx); err != nil {
		p.logger.Error("error processing events on start", slog.String("error", err.Error()))
	}

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("journal poster shutting down")
			return ctx.Err()
		case <-ticker.C:
			if err := p.processEvents(ctx); err != nil {
				p.logger.Error("error processing events", slog.String("error", err.Error()))
			}
		}
	}
}

// processEvents fetches and posts a batch of unpublished events.
func (p *Poster) processEvents(ctx context.Context) error {
	events, err := p.outboxRepo.GetUnpublished(ctx, p.batchSize)
	if err != nil {
		return err
	}

	if p.metrics != nil {
		p.metrics.OutboxBacklog.Set(float64(len(events)))
	}

	if len(events) == 0 {
		return p.prune(ctx)
	}

	p.logger.Info("posting events", slog.Int("count", len(events)))

	for _, event := range events {
		if err := p.postEvent(ctx, event); err != nil {
			p.logger.Error("failed to post event",
				slog.String("event_id", event.ID),
				slog.String("event_type", event.EventType),
				slog.String("error", err.Error()))
			if p.metrics != nil {
				p.metrics.EventPostErrors.Inc()
			}
			// Continue processing other events even if one fails
			continue
		}

		if p.metrics != nil {
			p.metrics.EventsPosted.Inc()
		}

		// Mark as published
		if err := p.outboxRepo.MarkPublished(ctx, event.ID, time.Now()); err != nil {
			p.logger.Error("failed to mark event as published",
				slog.String("event_id", event.ID),
				slog.String("error", err.Error()))
			// Don't continue - we don't want to re-post this event
		}
	}

	return p.prune(ctx)
}

func (p *Poster) prune(ctx context.Context) error {
	pruned, err := p.outboxRepo.DeletePublished(ctx, time.Now().Add(-p.retention))
	if err != nil {
		return err
	}

	if p.metrics != nil && pruned > 0 {
		p.metrics.EventsPruned.Add(float64(pruned))
	}

	return nil
}

// postEvent posts a single event.
func (p *Poster) postEvent(ctx context.Context, event *domain.OutboxEvent) error {
	p.logger.Debug("posting event",
		slog.String("event_id", event.ID),
		slog.String("event_type", event.EventType),
		slog.String("aggregate_type", event.AggregateType),
		slog.String("aggregate_id", event.AggregateID))

	if err := p.publisher.Publish(ctx, event); err != nil {
		return err
	}

	p.logger.Info("event posted",
		slog.String("event_id", event.ID),
		slog.String("event_type", event.EventType))

	return nil
}

// LogPublisher is a simple publisher that logs events. It stands in for
// the bookkeeping service connector in development.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a new LogPublisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

// Publish logs the event.
func (p *LogPublisher) Publish(ctx context.Context, event *domain.OutboxEvent) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}

	p.logger.Info("EVENT POSTED",
		slog.String("event_id", event.ID),
		slog.String("event_type", event.EventType),
		slog.String("aggregate_type", event.AggregateType),
		slog.String("aggregate_id", event.AggregateID),
		slog.String("payload", string(payload)))

	return nil
}
