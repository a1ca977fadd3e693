package book

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/rolodex/internal/provider"
)

// ContactSource supplies contact payloads for the async-add flow.
// Implemented by provider.Client in production and by stubs in tests.
type ContactSource interface {
	FetchContact(ctx context.Context) (provider.ContactData, error)
}

// DelayConfig bounds the artificial latency of the logger middleware.
// The delay models variable-latency middleware; it runs inside this store's
// pipeline only and never touches other store instances.
type DelayConfig struct {
	Enabled bool
	Min     time.Duration
	Max     time.Duration
}

// LoggerMiddleware records every action flowing through the pipeline, each
// with a UUIDv7 token, and always passes the action through unchanged.
// With delay enabled it sleeps a random duration in [Min, Max) first.
func LoggerMiddleware(logger *slog.Logger, delay DelayConfig) Middleware {
	return func(a Action, _ *Store) (Action, bool) {
		if delay.Enabled && delay.Max > delay.Min {
			time.Sleep(delay.Min + rand.N(delay.Max-delay.Min))
		}
		logger.Info("action dispatched",
			"token", uuid.Must(uuid.NewV7()).String(),
			"action", a.String())
		return nil, false
	}
}

// AsyncAddMiddleware resolves AsyncAddContactRequested into a concrete
// AddContact by fetching from the contact source, substituting the result
// for the rest of the pipeline. History therefore records the AddContact,
// never the trigger. When the source fails the documented fallback payload
// is substituted instead; the error never reaches the dispatch caller.
//
// The fetch runs inside the pipeline, so it is bounded by timeout and must
// never call back into the store. Follow-up dispatches from here would
// deadlock; there are none.
func AsyncAddMiddleware(src ContactSource, timeout time.Duration, logger *slog.Logger) Middleware {
	return func(a Action, _ *Store) (Action, bool) {
		if _, ok := a.(AsyncAddContactRequested); !ok {
			return nil, false
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		data, err := src.FetchContact(ctx)
		if err != nil {
			logger.Warn("contact source failed, using fallback", "error", err)
			data = provider.Fallback()
		}

		return AddContact{
			Name:  data.Name,
			Email: data.Email(),
			Phone: data.Phone,
		}, true
	}
}
