package main

import (
	"context"
	"fmt"

	"github.com/roadwatch/roadwatch/internal/adapter"
	"github.com/roadwatch/roadwatch/internal/client"
	"github.com/roadwatch/roadwatch/internal/config"
	"github.com/roadwatch/roadwatch/internal/docstore"
	handlerhttp "github.com/roadwatch/roadwatch/internal/handler/http"
	"github.com/roadwatch/roadwatch/internal/logger"
	"github.com/roadwatch/roadwatch/internal/service"
	"github.com/roadwatch/roadwatch/internal/store"
	"github.com/roadwatch/roadwatch/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("roadwatch-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	provider, err := adapter.NewHTTPIdentityProvider(cfg.Provider, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create identity provider adapter")
	}

	remote, err := docstore.NewPostgresStore(ctx, cfg.Remote.DSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("connect remote document store")
	}

	storages, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	services := service.NewServices(remote, provider, storages, cfg.App.SessionTTL, log)

	reconcile := workers.NewReconcileWorker(ctx, services.Sync, cfg.Workers.ReconcileInterval, log)
	background := workers.NewWorkers(reconcile)

	handler := handlerhttp.NewHandler(services, log)

	app, err := client.NewApp(cfg, services, background, handler, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
