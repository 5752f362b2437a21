package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"presales/internal/platform/middleware"
)

// Store is the persistence contract for the audit trail.
type Store interface {
	Append(ctx context.Context, event Event) error
	// List returns the most recent events, newest first.
	List(ctx context.Context, limit int) ([]Event, error)
}

// Recorder enriches and persists audit events. Recording is best-effort: a
// failed append is logged, never surfaced to the caller, so auditing cannot
// break the operation being audited.
type Recorder struct {
	store  Store
	logger *slog.Logger
}

func NewRecorder(store Store, logger *slog.Logger) *Recorder {
	return &Recorder{store: store, logger: logger}
}

// Record fills in ID, timestamp, and request ID, then appends the event.
func (r *Recorder) Record(ctx context.Context, event Event) {
	if r == nil || r.store == nil {
		return
	}
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	if event.RequestID == "" {
		event.RequestID = middleware.GetRequestID(ctx)
	}

	r.logger.InfoContext(ctx, "audit event",
		"action", event.Action,
		"actor", event.Actor,
		"category", event.Category,
		"target_id", event.TargetID,
		"request_id", event.RequestID,
	)

	if err := r.store.Append(ctx, event); err != nil {
		r.logger.ErrorContext(ctx, "failed to append audit event", "error", err)
	}
}
