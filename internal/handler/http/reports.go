package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/roadwatch/roadwatch/internal/logger"
	"github.com/roadwatch/roadwatch/internal/utils"
	"github.com/roadwatch/roadwatch/internal/workers"
	"github.com/roadwatch/roadwatch/models"
)

// reports serves the locally cached snapshot, optionally filtered.
func (h *Handler) reports(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	category := r.URL.Query().Get("category")
	status := r.URL.Query().Get("status")

	reports, err := h.services.Sync.CachedReports(r.Context(), category, status)
	if err != nil {
		log.Err(err).Msg("cached report read failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if reports == nil {
		reports = []models.Report{}
	}

	_ = utils.WriteJSON(w, reports, http.StatusOK)
}

// refreshReports forces a full remote fetch, bypassing the cache.
func (h *Handler) refreshReports(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	reports, err := h.services.Sync.FetchAll(r.Context())
	if err != nil {
		log.Err(err).Msg("manual report refresh failed")
		http.Error(w, "remote store unavailable", http.StatusBadGateway)
		return
	}
	if reports == nil {
		reports = []models.Report{}
	}

	_ = utils.WriteJSON(w, reports, http.StatusOK)
}

// streamReports delivers live report diffs as server-sent events until the
// client disconnects.
func (h *Handler) streamReports(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	events := make(chan []models.ReportDiff, 16)
	streamErr := make(chan error, 1)

	unsubscribe, err := h.services.Sync.Subscribe(ctx,
		func(diffs []models.ReportDiff) {
			select {
			case events <- diffs:
			default:
				log.Warn().Msg("slow stream consumer, dropping diff batch")
			}
		},
		func(err error) {
			select {
			case streamErr <- err:
			default:
			}
		},
	)
	if err != nil {
		log.Err(err).Msg("report stream open failed")
		http.Error(w, "remote store unavailable", http.StatusBadGateway)
		return
	}
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case err := <-streamErr:
			log.Warn().Err(err).Msg("report stream failed, closing event stream")
			return
		case diffs := <-events:
			payload, err := json.Marshal(diffs)
			if err != nil {
				log.Err(err).Msg("diff batch encode failed")
				continue
			}
			if _, err = w.Write([]byte("data: " + string(payload) + "\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

type pushTokenRequest struct {
	Token string `json:"token"`
}

// pushToken registers the device push token. The fan-out runs detached;
// the UI gets an immediate accept.
func (h *Handler) pushToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req pushTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if req.Token == "" {
		http.Error(w, "token is required", http.StatusBadRequest)
		return
	}

	workers.Detached(h.logger, "push-token-registration", func() error {
		h.services.PushToken.Register(context.WithoutCancel(r.Context()), req.Token)
		return nil
	})

	w.WriteHeader(http.StatusAccepted)
}
