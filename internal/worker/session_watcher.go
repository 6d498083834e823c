package worker

// session_watcher.go
// Background goroutine that ends the operator session as soon as its bearer
// token expires, even when no request comes in. Logging out resets every
// terminal through the session's subscribers.

import (
	"context"
	"time"

	"github.com/satch9/app-caisse-compta-sub000/internal/infra"

	"github.com/rs/zerolog/log"
)

const defaultWatchInterval = 30 * time.Second

// StartSessionWatcher ticks every interval (30s when <= 0) and checks the
// session token. It respects the context for graceful shutdown.
func StartSessionWatcher(ctx context.Context, session *infra.Session, interval time.Duration) {
	if interval <= 0 {
		interval = defaultWatchInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Info().Dur("interval", interval).Msg("session_watcher: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("session_watcher: shutting down")
				return
			case <-ticker.C:
				// Token() logs out an expired session.
				session.Token()
			}
		}
	}()
}
