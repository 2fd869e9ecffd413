package http

import (
	"github.com/roadwatch/roadwatch/internal/logger"
	"github.com/roadwatch/roadwatch/internal/service"
	"github.com/roadwatch/roadwatch/internal/utils"
)

type Handler struct {
	services *service.Services
	ids      *utils.UUIDGenerator

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http facade created")
	return &Handler{
		services: services,
		ids:      utils.NewUUIDGenerator(),
		logger:   logger,
	}
}
