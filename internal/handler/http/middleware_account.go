package http

import (
	"errors"
	"net/http"

	"github.com/roadwatch/roadwatch/internal/logger"
	"github.com/roadwatch/roadwatch/internal/service"
	"github.com/roadwatch/roadwatch/internal/utils"
)

// withAccountID annotates the request context with the account id of the
// locally persisted session, when one exists. Resolution is best effort: an
// absent or expired session leaves the request anonymous rather than
// rejecting it, since the facade serves cached data to signed-out users too.
func (h *Handler) withAccountID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		session, err := h.services.Auth.Session(ctx)
		if err != nil || session.User.AccountID == "" {
			if err != nil && !errors.Is(err, service.ErrNoSession) {
				logger.FromContext(ctx).Warn().Err(err).Msg("resolve session for request")
			}
			next.ServeHTTP(w, r)
			return
		}

		ctx = utils.WithAccountID(ctx, session.User.AccountID)
		l := logger.FromContext(ctx).With().Str("account_id", session.User.AccountID).Logger()

		next.ServeHTTP(w, r.WithContext(l.WithContext(ctx)))
	})
}
