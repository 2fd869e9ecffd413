package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/roadwatch/roadwatch/internal/logger"
	"github.com/roadwatch/roadwatch/internal/service"
	"github.com/roadwatch/roadwatch/internal/utils"
	"github.com/roadwatch/roadwatch/models"
)

type loginRequest struct {
	Credential string `json:"credential"`
	Secret     string `json:"secret"`
}

type sessionResponse struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
	User      models.SessionUser `json:"user"`
}

type loginResponse struct {
	OK      bool             `json:"ok"`
	Session *sessionResponse `json:"session,omitempty"`
	Error   *loginErrorBody  `json:"error,omitempty"`
}

type loginErrorBody struct {
	Code              string `json:"code"`
	Message           string `json:"message"`
	RemainingAttempts *int   `json:"remainingAttempts,omitempty"`
	IsLocked          bool   `json:"isLocked,omitempty"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	session, err := h.services.Auth.Login(ctx, req.Credential, req.Secret)
	if err != nil {
		loginErr, ok := service.AsLoginError(err)
		if !ok {
			log.Err(err).Msg("unexpected login failure")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		log.Info().Str("code", string(loginErr.Code)).Msg("login rejected")
		_ = utils.WriteJSON(w, loginResponse{
			OK:    false,
			Error: loginErrorToBody(loginErr),
		}, statusFromLoginCode(loginErr.Code))
		return
	}

	_ = utils.WriteJSON(w, loginResponse{
		OK:      true,
		Session: toSessionResponse(session),
	}, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := h.services.Auth.Logout(r.Context()); err != nil {
		log.Err(err).Msg("logout failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	session, err := h.services.Auth.Session(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoSession) {
			http.Error(w, "no active session", http.StatusUnauthorized)
			return
		}
		log.Err(err).Msg("session read failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	_ = utils.WriteJSON(w, toSessionResponse(session), http.StatusOK)
}

func toSessionResponse(session models.Session) *sessionResponse {
	return &sessionResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      session.User,
	}
}
