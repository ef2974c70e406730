package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/openhack/arena/internal/domain/model"
	"github.com/openhack/arena/pkg/logger"
	"github.com/openhack/arena/pkg/metrics"
)

// EventStatus describes what intake did with an identity event.
type EventStatus string

const (
	// EventAccepted means the event was queued for processing.
	EventAccepted EventStatus = "accepted"
	// EventDuplicate means the event id was already seen and was skipped.
	EventDuplicate EventStatus = "duplicate"
	// EventDropped means the queue was full and the event was shed.
	EventDropped EventStatus = "dropped"
)

// HandleIdentityEvent ingests one identity event. Delivery is
// at-least-once upstream; the dedupe cache collapses redelivery, and a
// full queue sheds the event so the sender can retry.
func (s *Service) HandleIdentityEvent(ctx context.Context, e model.IdentityEvent) (EventStatus, error) {
	if strings.TrimSpace(e.EventID) == "" || e.UserID == 0 {
		return "", fmt.Errorf("%w: event id and user id are required", ErrValidation)
	}
	switch e.Kind {
	case model.EventUserDeleted, model.EventUserBanned:
	default:
		return "", fmt.Errorf("%w: unknown event kind %q", ErrValidation, e.Kind)
	}

	if s.deduper.SeenAndRecord(ctx, e.EventID) {
		metrics.RecordEventDuplicate()
		return EventDuplicate, nil
	}

	if !s.eventQueue.Enqueue(ctx, e) {
		// Let a redelivery of the same event id through next time.
		s.deduper.Unrecord(ctx, e.EventID)
		s.logger.Warn(ctx, "identity event dropped, queue full",
			logger.String("event_id", e.EventID),
			logger.String("kind", e.Kind),
		)
		return EventDropped, nil
	}

	metrics.RecordEventQueued()
	return EventAccepted, nil
}
