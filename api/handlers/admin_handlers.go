package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/facundo-gs/busqueda-api/config"
	"github.com/facundo-gs/busqueda-api/dto"
	"github.com/facundo-gs/busqueda-api/services"
)

// IndexResetter is the administrative reset operation of the store.
type IndexResetter interface {
	DeleteAll(ctx context.Context) error
}

// SyncHechosHandler serves POST /api/admin/sync/hechos: bulk load of facts,
// tallying per-item outcomes instead of failing the batch.
func SyncHechosHandler(svc *services.IndexacionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var hechos []dto.HechoDTO
		if err := c.ShouldBindJSON(&hechos); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}

		resultado := dto.SyncResultDTO{Total: len(hechos)}
		for _, h := range hechos {
			if err := svc.IndexarHecho(c.Request.Context(), h); err != nil {
				config.Logger.Errorf("sync masivo: error indexando hecho %s: %v", h.ID, err)
				resultado.Errores++
				continue
			}
			resultado.Exitosos++
		}
		c.JSON(http.StatusOK, resultado)
	}
}

// SyncPdIsHandler serves POST /api/admin/sync/pdis.
func SyncPdIsHandler(svc *services.IndexacionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var pdis []dto.PdIDTO
		if err := c.ShouldBindJSON(&pdis); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}

		resultado := dto.SyncResultDTO{Total: len(pdis)}
		for _, p := range pdis {
			res, err := svc.IndexarPdI(c.Request.Context(), p)
			if err != nil {
				config.Logger.Errorf("sync masivo: error indexando pdi %s: %v", p.ID, err)
				resultado.Errores++
				continue
			}
			if res == services.IngestaDiferida {
				resultado.Diferidos++
			} else {
				resultado.Exitosos++
			}
		}
		c.JSON(http.StatusOK, resultado)
	}
}

// StatsHandler serves GET /api/admin/stats.
func StatsHandler(svc *services.BusquedaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// ClearHandler serves DELETE /api/admin/clear. Wipes the whole index; only
// the administrative reindex path uses it.
func ClearHandler(store IndexResetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		config.Logger.Warn("limpiando el índice de búsqueda completo")
		if err := store.DeleteAll(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "índice limpiado"})
	}
}
