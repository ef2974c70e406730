// Package app provides the core business service wiring the hackathon
// domain rules to storage and the external collaborators.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/openhack/arena/internal/adapters/identity"
	eventqueue "github.com/openhack/arena/internal/adapters/mq/queue"
	workerpool "github.com/openhack/arena/internal/adapters/mq/worker"
	"github.com/openhack/arena/internal/adapters/objectstore"
	"github.com/openhack/arena/internal/adapters/repository"
	"github.com/openhack/arena/internal/adapters/roster"
	"github.com/openhack/arena/internal/domain/dedupe"
	"github.com/openhack/arena/internal/domain/model"
	"github.com/openhack/arena/internal/domain/phase"
	"github.com/openhack/arena/pkg/logger"
	"github.com/openhack/arena/pkg/metrics"
)

// RescorePolicy selects the behavior when a judge scores the same
// (team, criterion) twice.
type RescorePolicy string

const (
	// RescoreReject fails the second write with a duplicate error.
	RescoreReject RescorePolicy = "reject"
	// RescoreOverwrite silently replaces the previous value.
	RescoreOverwrite RescorePolicy = "overwrite"
)

// maxWeightSum is the weight-sum bound with a small slack absorbing
// floating-point error; the business rule is "at most 1".
const maxWeightSum = 1.01

// Service implements the hackathon core consumed by the HTTP API.
type Service struct {
	mu sync.Mutex

	store    repository.Store
	roster   roster.Client
	identity identity.Client
	objects  objectstore.Store

	clock         phase.Clock
	rescorePolicy RescorePolicy

	// Identity event pipeline.
	deduper    dedupe.Deduper
	eventQueue eventqueue.Queue
	workers    *workerpool.Pool

	workerCount int
	queueSize   int
	dedupeSize  int

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithClock overrides the phase clock, mainly for tests.
func WithClock(c phase.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithRescorePolicy selects the duplicate-score behavior.
func WithRescorePolicy(p RescorePolicy) Option {
	return func(s *Service) {
		if p == RescoreReject || p == RescoreOverwrite {
			s.rescorePolicy = p
		}
	}
}

// WithWorkerCount sets the number of identity event workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize bounds the identity event queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize bounds the event dedupe cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service over its collaborators.
func New(store repository.Store, rosterClient roster.Client, identityClient identity.Client, objects objectstore.Store, opts ...Option) *Service {
	s := &Service{
		store:         store,
		roster:        rosterClient,
		identity:      identityClient,
		objects:       objects,
		clock:         phase.SystemClock{},
		rescorePolicy: RescoreReject,
		workerCount:   4,
		queueSize:     10_000,
		dedupeSize:    100_000,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the identity event pipeline.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("app")
	}

	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.eventQueue = eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(s.queueSize))
	s.workers = workerpool.NewPool(s.eventQueue, s.store,
		workerpool.WithWorkerCount(s.workerCount),
		workerpool.WithLogger(s.logger),
	)
	s.workers.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "hackathon service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queue_size", s.queueSize),
		logger.String("rescore_policy", string(s.rescorePolicy)),
	)
	return nil
}

// Stop drains the event pipeline and waits for workers to exit.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	_ = s.eventQueue.Close()
	s.workers.Wait()
	s.started = false
	s.logger.Info(context.Background(), "hackathon service stopped")
}

// Stats reports live counters for the stats endpoint.
func (s *Service) Stats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return map[string]interface{}{"started": false}
	}
	return map[string]interface{}{
		"started":        true,
		"queue_length":   s.eventQueue.Len(context.Background()),
		"queue_capacity": s.queueSize,
		"worker_count":   s.workerCount,
		"dedupe_size":    s.deduper.Size(),
		"rescore_policy": string(s.rescorePolicy),
	}
}

// requireSettingsPhase rejects configuration edits once the hackathon
// has started.
func (s *Service) requireSettingsPhase(ctx context.Context, h model.Hackathon, action string) error {
	if phase.At(s.clock.Now(), h).CanEditSettings {
		return nil
	}
	metrics.RecordPhaseViolation(action)
	s.logger.Warn(ctx, "rejected action outside its phase window",
		logger.String("action", action),
		logger.Int64("hackathon_id", h.ID),
	)
	return fmt.Errorf("%w: %s is only allowed before the hackathon starts", ErrPhaseViolation, action)
}

// requirePhase rejects an action whose window flag is not currently set.
func (s *Service) requirePhase(ctx context.Context, allowed bool, hackathonID int64, action string) error {
	if allowed {
		return nil
	}
	metrics.RecordPhaseViolation(action)
	s.logger.Warn(ctx, "rejected action outside its phase window",
		logger.String("action", action),
		logger.Int64("hackathon_id", hackathonID),
	)
	return fmt.Errorf("%w: %s", ErrPhaseViolation, action)
}

// flags re-derives the phase capability set for one hackathon.
func (s *Service) flags(ctx context.Context, hackathonID int64) (phase.Flags, error) {
	h, err := s.store.GetHackathon(ctx, hackathonID)
	if err != nil {
		return phase.Flags{}, err
	}
	return phase.At(s.clock.Now(), h), nil
}

// Phases exposes the capability flags for API consumers.
func (s *Service) Phases(ctx context.Context, hackathonID int64) (phase.Flags, error) {
	return s.flags(ctx, hackathonID)
}
