package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/facundo-gs/busqueda-api/api/router"
	"github.com/facundo-gs/busqueda-api/clients/fuenteclient"
	"github.com/facundo-gs/busqueda-api/clients/pdiclient"
	"github.com/facundo-gs/busqueda-api/config"
	"github.com/facundo-gs/busqueda-api/db"
	"github.com/facundo-gs/busqueda-api/metrics"
	"github.com/facundo-gs/busqueda-api/repositories"
	"github.com/facundo-gs/busqueda-api/services"
)

func main() {
	config.InitApp()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.Init(ctx); err != nil {
		log.Fatal("failed to initialize MongoDB: ", err)
	}
	metrics.Register()

	cfg := config.GetConfig()
	repo := repositories.NewHechoRepository(db.Database())
	indexacionSvc := services.NewIndexacionService(repo, cfg.Retry)

	scheduler := services.NewSyncScheduler(
		indexacionSvc,
		fuenteclient.New(cfg.Modules.FuenteURL),
		pdiclient.New(cfg.Modules.PdIURL),
		cfg.Sync,
	)
	go scheduler.Start(ctx)

	r := router.New(indexacionSvc)

	port := cfg.Server.Port
	if port == "" {
		port = ":8080"
	}
	if err := r.Run(port); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
