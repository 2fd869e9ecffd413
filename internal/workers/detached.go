package workers

import (
	"github.com/roadwatch/roadwatch/internal/logger"
)

// Detached runs fn on its own goroutine as a best-effort side task: its
// error is logged and swallowed, and a panic never takes the process down.
// Used for the side paths whose failure must not escalate, unlike ledger
// transactions whose errors always propagate.
func Detached(log *logger.Logger, name string, fn func() error) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Str("task", name).Any("panic", r).
					Msg("detached task panicked")
			}
		}()
		if err := fn(); err != nil {
			log.Warn().Err(err).Str("task", name).
				Msg("detached task failed")
		}
	}()
}
