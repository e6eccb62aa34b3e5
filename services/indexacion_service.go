package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/facundo-gs/busqueda-api/config"
	"github.com/facundo-gs/busqueda-api/dto"
	"github.com/facundo-gs/busqueda-api/indexer"
	"github.com/facundo-gs/busqueda-api/metrics"
	"github.com/facundo-gs/busqueda-api/models"
)

// ErrPayloadInvalido marks a payload that can never be ingested (missing
// natural key). Not retried.
var ErrPayloadInvalido = errors.New("payload de indexación inválido")

// ResultadoIngesta distinguishes a committed ingestion from a deferred one.
// Deferred is not a failure: a PdI or censorship for a fact we have not seen
// yet is dropped and healed by a later fact event or by the sync sweep.
type ResultadoIngesta string

const (
	IngestaOK       ResultadoIngesta = "ok"
	IngestaDiferida ResultadoIngesta = "diferida"
)

// HechoStore is the slice of the aggregate store the ingestion gateway needs.
type HechoStore interface {
	FindByHechoID(ctx context.Context, hechoID string) (*models.HechoIndexado, error)
	Upsert(ctx context.Context, h *models.HechoIndexado) error
}

// IndexacionService is the single entry point for ingestion: webhook events,
// Kafka events and reconciliation replays all go through here. Each call is a
// read-merge-write guarded by a bounded retry with exponential backoff;
// exhausted retries surface to the caller and are never requeued internally.
type IndexacionService struct {
	store HechoStore

	maxAttempts int
	baseDelay   time.Duration

	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

func NewIndexacionService(store HechoStore, retry config.RetryConfig) *IndexacionService {
	maxAttempts := retry.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &IndexacionService{
		store:       store,
		maxAttempts: maxAttempts,
		baseDelay:   retry.BaseDelay(),
		now:         time.Now,
		sleep:       sleepCtx,
	}
}

// IndexarHecho creates or updates the aggregate for a fact payload.
// Safe to replay: field values converge, only the version counter moves.
func (s *IndexacionService) IndexarHecho(ctx context.Context, p dto.HechoDTO) error {
	if p.ID == "" {
		return fmt.Errorf("%w: hecho sin id", ErrPayloadInvalido)
	}

	err := s.conReintentos(ctx, func(ctx context.Context) error {
		existente, err := s.store.FindByHechoID(ctx, p.ID)
		if err != nil {
			return err
		}
		merged := indexer.CrearOActualizarHecho(existente, p, s.now())
		return s.store.Upsert(ctx, merged)
	})
	if err != nil {
		metrics.IndexacionEventosTotal.WithLabelValues("hecho", "error").Inc()
		config.Logger.Errorf("error indexando hecho %s: %v", p.ID, err)
		return fmt.Errorf("indexando hecho %s: %w", p.ID, err)
	}

	metrics.IndexacionEventosTotal.WithLabelValues("hecho", "ok").Inc()
	config.Logger.Debugf("hecho indexado: %s", p.ID)
	return nil
}

// IndexarPdI attaches or updates a PdI under its owning fact. When the fact
// is unknown the result is IngestaDiferida with a nil error: no placeholder
// aggregate is created.
func (s *IndexacionService) IndexarPdI(ctx context.Context, p dto.PdIDTO) (ResultadoIngesta, error) {
	if p.ID == "" || p.HechoID == "" {
		return "", fmt.Errorf("%w: pdi sin id o sin hecho", ErrPayloadInvalido)
	}

	resultado := IngestaOK
	err := s.conReintentos(ctx, func(ctx context.Context) error {
		hecho, err := s.store.FindByHechoID(ctx, p.HechoID)
		if err != nil {
			return err
		}
		if hecho == nil {
			resultado = IngestaDiferida
			return nil
		}
		resultado = IngestaOK
		indexer.AgregarOActualizarPdI(hecho, p, s.now())
		return s.store.Upsert(ctx, hecho)
	})
	if err != nil {
		metrics.IndexacionEventosTotal.WithLabelValues("pdi", "error").Inc()
		config.Logger.Errorf("error indexando pdi %s: %v", p.ID, err)
		return "", fmt.Errorf("indexando pdi %s: %w", p.ID, err)
	}

	if resultado == IngestaDiferida {
		metrics.IndexacionEventosTotal.WithLabelValues("pdi", "diferido").Inc()
		config.Logger.Warnf("hecho %s no indexado aún, pdi %s diferido", p.HechoID, p.ID)
	} else {
		metrics.IndexacionEventosTotal.WithLabelValues("pdi", "ok").Inc()
		config.Logger.Debugf("pdi %s indexado bajo hecho %s", p.ID, p.HechoID)
	}
	return resultado, nil
}

// CensurarHecho hides a fact from search, irreversibly. Censoring an already
// censored fact is a no-op; censoring an unknown fact is deferred.
func (s *IndexacionService) CensurarHecho(ctx context.Context, hechoID, solicitudID string) (ResultadoIngesta, error) {
	if hechoID == "" {
		return "", fmt.Errorf("%w: censura sin hecho id", ErrPayloadInvalido)
	}

	resultado := IngestaOK
	err := s.conReintentos(ctx, func(ctx context.Context) error {
		hecho, err := s.store.FindByHechoID(ctx, hechoID)
		if err != nil {
			return err
		}
		if hecho == nil {
			resultado = IngestaDiferida
			return nil
		}
		resultado = IngestaOK
		if !indexer.Censurar(hecho, solicitudID, s.now()) {
			// ya censurado, nada que escribir
			return nil
		}
		return s.store.Upsert(ctx, hecho)
	})
	if err != nil {
		metrics.IndexacionEventosTotal.WithLabelValues("censura", "error").Inc()
		config.Logger.Errorf("error censurando hecho %s: %v", hechoID, err)
		return "", fmt.Errorf("censurando hecho %s: %w", hechoID, err)
	}

	if resultado == IngestaDiferida {
		metrics.IndexacionEventosTotal.WithLabelValues("censura", "diferido").Inc()
		config.Logger.Warnf("hecho %s no indexado, censura diferida (solicitud %s)", hechoID, solicitudID)
	} else {
		metrics.IndexacionEventosTotal.WithLabelValues("censura", "ok").Inc()
		config.Logger.Infof("hecho %s censurado (solicitud %s)", hechoID, solicitudID)
	}
	return resultado, nil
}

// conReintentos runs fn up to maxAttempts times, doubling the delay between
// attempts starting from baseDelay.
func (s *IndexacionService) conReintentos(ctx context.Context, fn func(context.Context) error) error {
	var lastErr error
	delay := s.baseDelay
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == s.maxAttempts {
			break
		}
		config.Logger.Warnf("intento %d/%d falló: %v, reintentando en %s", attempt, s.maxAttempts, lastErr, delay)
		if err := s.sleep(ctx, delay); err != nil {
			return err
		}
		delay *= 2
	}
	return fmt.Errorf("agotados %d intentos: %w", s.maxAttempts, lastErr)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
