package services

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/facundo-gs/busqueda-api/config"
	"github.com/facundo-gs/busqueda-api/dto"
	"github.com/facundo-gs/busqueda-api/metrics"
)

// FuenteClient pulls authoritative fact data from the fuente module.
type FuenteClient interface {
	ListColecciones(ctx context.Context) ([]string, error)
	ListHechos(ctx context.Context, coleccion string) ([]dto.HechoDTO, error)
}

// PdIClient pulls the system-wide PdI list from the PdI module.
type PdIClient interface {
	ListPdIs(ctx context.Context) ([]dto.PdIDTO, error)
}

// Ingestor is the slice of the ingestion gateway the sweep replays into.
type Ingestor interface {
	IndexarHecho(ctx context.Context, p dto.HechoDTO) error
	IndexarPdI(ctx context.Context, p dto.PdIDTO) (ResultadoIngesta, error)
}

// SyncScheduler heals missed push events by re-pulling everything upstream
// and replaying it through the ingestion gateway. The replay is a full one,
// not a delta sync; the idempotent merge makes running it repeatedly safe.
//
// Each collection, fact and PdI is isolated: a failure is logged and skipped,
// never aborting the rest of the sweep.
type SyncScheduler struct {
	ingestor Ingestor
	fuente   FuenteClient
	pdis     PdIClient

	cfg     config.SyncConfig
	limiter *rate.Limiter
}

func NewSyncScheduler(ingestor Ingestor, fuente FuenteClient, pdis PdIClient, cfg config.SyncConfig) *SyncScheduler {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.PullRatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.PullRatePerSecond), 1)
	}
	return &SyncScheduler{
		ingestor: ingestor,
		fuente:   fuente,
		pdis:     pdis,
		cfg:      cfg,
		limiter:  limiter,
	}
}

// Start runs one sweep immediately and then one per interval until the
// context is cancelled. Disabled schedulers return right away.
func (s *SyncScheduler) Start(ctx context.Context) {
	if !s.cfg.Enabled {
		config.Logger.Info("sincronización deshabilitada")
		return
	}

	config.Logger.Info("sincronización inicial")
	s.RunOnce(ctx)

	ticker := time.NewTicker(s.cfg.Interval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			config.Logger.Info("scheduler de sincronización detenido")
			return
		case <-ticker.C:
			config.Logger.Info("sincronización periódica")
			s.RunOnce(ctx)
		}
	}
}

// RunOnce executes one full sweep: collections, facts per collection, then
// all PdIs. Always completes its iteration.
func (s *SyncScheduler) RunOnce(ctx context.Context) {
	s.sincronizarHechos(ctx)
	s.sincronizarPdIs(ctx)
	metrics.SyncSweepsTotal.WithLabelValues("ok").Inc()
}

func (s *SyncScheduler) sincronizarHechos(ctx context.Context) {
	if err := s.limiter.Wait(ctx); err != nil {
		return
	}
	colecciones, err := s.fuente.ListColecciones(ctx)
	if err != nil {
		metrics.SyncSweepsTotal.WithLabelValues("fuente_error").Inc()
		config.Logger.Errorf("error obteniendo colecciones: %v", err)
		return
	}

	for _, coleccion := range colecciones {
		if err := s.limiter.Wait(ctx); err != nil {
			return
		}
		hechos, err := s.fuente.ListHechos(ctx, coleccion)
		if err != nil {
			config.Logger.Errorf("error obteniendo hechos de %s: %v", coleccion, err)
			continue
		}

		indexados := 0
		for _, h := range hechos {
			if err := s.ingestor.IndexarHecho(ctx, h); err != nil {
				config.Logger.Errorf("sweep: error indexando hecho %s: %v", h.ID, err)
				continue
			}
			indexados++
		}
		config.Logger.Infof("colección %s: %d/%d hechos sincronizados", coleccion, indexados, len(hechos))
	}
}

func (s *SyncScheduler) sincronizarPdIs(ctx context.Context) {
	if err := s.limiter.Wait(ctx); err != nil {
		return
	}
	pdis, err := s.pdis.ListPdIs(ctx)
	if err != nil {
		metrics.SyncSweepsTotal.WithLabelValues("pdi_error").Inc()
		config.Logger.Errorf("error obteniendo pdis: %v", err)
		return
	}

	indexados, diferidos := 0, 0
	for _, p := range pdis {
		resultado, err := s.ingestor.IndexarPdI(ctx, p)
		if err != nil {
			config.Logger.Errorf("sweep: error indexando pdi %s: %v", p.ID, err)
			continue
		}
		if resultado == IngestaDiferida {
			diferidos++
		} else {
			indexados++
		}
	}
	config.Logger.Infof("%d pdis sincronizados, %d diferidos", indexados, diferidos)
}
