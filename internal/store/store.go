// internal/store/store.go
package store

import (
	"context"

	"support-chat-backend/internal/common/logger"
	"support-chat-backend/internal/common/metrics"
	"support-chat-backend/internal/models"
)

// ConversationStore persists conversation snapshots keyed by session id.
//
// Save is an idempotent overwrite. Load returns (nil, nil) for a session
// that was never saved; absence is not an error.
type ConversationStore interface {
	Save(ctx context.Context, thread *models.ConversationThread) error
	Load(ctx context.Context, sessionID string) (*models.ConversationThread, error)
	Clear(ctx context.Context, sessionID string) error
}

// Resolver front-ends the cache and durable backends with an explicit
// resolution policy: load cache-first with durable fallback, save to both.
// Persistence failures degrade to "this turn not persisted"; they are logged
// and never surfaced to the caller.
type Resolver struct {
	cache   ConversationStore
	durable ConversationStore
	log     logger.Logger
}

func NewResolver(cache, durable ConversationStore, log logger.Logger) *Resolver {
	return &Resolver{
		cache:   cache,
		durable: durable,
		log:     log,
	}
}

// Load tries the cache first, then the durable store. Backend errors are
// treated as missing data.
func (r *Resolver) Load(ctx context.Context, sessionID string) *models.ConversationThread {
	if r.cache != nil {
		thread, err := r.cache.Load(ctx, sessionID)
		if err != nil {
			r.log.Warn("Cache load failed, falling back to durable store", map[string]interface{}{
				"session_id": sessionID,
				"error":      err.Error(),
			})
		} else if thread != nil {
			return thread
		}
	}

	if r.durable != nil {
		thread, err := r.durable.Load(ctx, sessionID)
		if err != nil {
			r.log.Warn("Durable store load failed", map[string]interface{}{
				"session_id": sessionID,
				"error":      err.Error(),
			})
			return nil
		}
		return thread
	}

	return nil
}

// Save writes the snapshot to both backends. Each write is best-effort.
func (r *Resolver) Save(ctx context.Context, thread *models.ConversationThread) {
	r.each(ctx, "save", thread.SessionID, func(backend ConversationStore) error {
		return backend.Save(ctx, thread)
	})
}

// Clear removes the session from both backends.
func (r *Resolver) Clear(ctx context.Context, sessionID string) {
	r.each(ctx, "clear", sessionID, func(backend ConversationStore) error {
		return backend.Clear(ctx, sessionID)
	})
}

func (r *Resolver) each(ctx context.Context, op, sessionID string, fn func(ConversationStore) error) {
	for name, backend := range map[string]ConversationStore{"cache": r.cache, "durable": r.durable} {
		if backend == nil {
			continue
		}
		if err := fn(backend); err != nil {
			metrics.StoreOperations.WithLabelValues(name, op, "error").Inc()
			r.log.Warn("Conversation store operation failed", map[string]interface{}{
				"backend":    name,
				"op":         op,
				"session_id": sessionID,
				"error":      err.Error(),
			})
			continue
		}
		metrics.StoreOperations.WithLabelValues(name, op, "success").Inc()
	}
}
