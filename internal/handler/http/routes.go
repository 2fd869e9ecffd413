package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Post("/api/login", h.login)
	router.Post("/api/logout", h.logout)
	router.Get("/api/session", h.session)

	router.Group(func(r chi.Router) {
		r.Use(h.withAccountID)

		r.Get("/api/reports", h.reports)
		r.Post("/api/reports/refresh", h.refreshReports)
		r.Get("/api/reports/stream", h.streamReports)

		r.Post("/api/push-token", h.pushToken)
	})

	return router
}
