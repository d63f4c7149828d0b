package breach

import (
	"context"
	"hash/fnv"
	"log/slog"
	"time"

	"safecircle/internal/geo"
)

// defaultLanes is sized for a small deployment; raise it via config when many
// users report simultaneously.
const defaultLanes = 16

type update struct {
	userID     string
	location   geo.Coordinate
	observedAt time.Time
	done       chan error
}

// Pipeline gives the detector its required concurrency shape: updates for the
// same user are evaluated strictly in submission order, updates for different
// users run in parallel. Each user hashes to one single-goroutine lane, so
// the last-write-wins cache never sees out-of-order writes for a key.
//
// Dispatch happens on the lane after the cache is updated. If the process
// dies between the two the transition is lost, not duplicated: the next
// evaluation finds the cache already in the new state. At-most-once delivery
// is the contract here.
type Pipeline struct {
	detector *Detector
	notifier *Notifier
	journal  Journal
	logger   *slog.Logger
	lanes    []chan update
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*pipelineConfig)

type pipelineConfig struct {
	lanes  int
	buffer int
}

// WithLanes sets the number of evaluation lanes.
func WithLanes(n int) PipelineOption {
	return func(c *pipelineConfig) {
		if n > 0 {
			c.lanes = n
		}
	}
}

// WithLaneBuffer sets the per-lane queue depth.
func WithLaneBuffer(n int) PipelineOption {
	return func(c *pipelineConfig) {
		if n >= 0 {
			c.buffer = n
		}
	}
}

func NewPipeline(detector *Detector, notifier *Notifier, journal Journal, logger *slog.Logger, opts ...PipelineOption) *Pipeline {
	cfg := pipelineConfig{lanes: defaultLanes, buffer: 64}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	p := &Pipeline{
		detector: detector,
		notifier: notifier,
		journal:  journal,
		logger:   logger,
		lanes:    make([]chan update, cfg.lanes),
	}
	for i := range p.lanes {
		p.lanes[i] = make(chan update, cfg.buffer)
	}
	return p
}

// Run starts one worker goroutine per lane and blocks until ctx is done.
func (p *Pipeline) Run(ctx context.Context) error {
	done := make(chan struct{}, len(p.lanes))
	for _, lane := range p.lanes {
		go func() {
			defer func() { done <- struct{}{} }()
			for {
				select {
				case <-ctx.Done():
					return
				case u := <-lane:
					u.done <- p.process(ctx, u)
				}
			}
		}()
	}
	<-ctx.Done()
	for range p.lanes {
		<-done
	}
	return ctx.Err()
}

// Submit queues a location update on the user's lane and waits for the
// evaluation to finish, so callers observe validation errors synchronously.
// Ordering per user is the submission order of concurrent callers' completed
// Submits; a single producer per user (the socket session) sees strict order.
func (p *Pipeline) Submit(ctx context.Context, userID string, location geo.Coordinate, observedAt time.Time) error {
	u := update{
		userID:     userID,
		location:   location,
		observedAt: observedAt,
		done:       make(chan error, 1),
	}
	lane := p.lanes[p.laneFor(userID)]
	select {
	case lane <- u:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-u.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pipeline) laneFor(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32() % uint32(len(p.lanes)))
}

func (p *Pipeline) process(ctx context.Context, u update) error {
	events, err := p.detector.Evaluate(ctx, u.userID, u.location, u.observedAt)
	if err != nil {
		return err
	}
	for _, event := range events {
		result, err := p.notifier.Dispatch(ctx, event)
		if err != nil {
			// The cache already advanced; this breach will not be re-detected.
			// Surfacing the event in the log is all that is left to do.
			p.logger.ErrorContext(ctx, "breach dispatch failed",
				"event_id", event.ID,
				"user_id", event.UserID,
				"geofence_id", event.GeofenceID,
				"error", err.Error(),
			)
			continue
		}
		event.RecipientScope = result.Scope
		p.logger.InfoContext(ctx, "breach dispatched",
			"event_id", event.ID,
			"user_id", event.UserID,
			"geofence_id", event.GeofenceID,
			"direction", event.Direction,
			"scope", result.Scope,
			"delivered", len(result.Delivered),
			"failed", len(result.Failures),
		)
		if p.journal != nil {
			if err := p.journal.Publish(ctx, event); err != nil {
				p.logger.WarnContext(ctx, "breach journal publish failed",
					"event_id", event.ID,
					"error", err.Error(),
				)
			}
		}
	}
	return nil
}
