package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/facundo-gs/busqueda-api/dto"
	"github.com/facundo-gs/busqueda-api/services"
)

// IndexarHechoHandler serves POST /api/indexacion/hecho, the webhook the
// fuente module calls when a fact is created or updated.
func IndexarHechoHandler(svc *services.IndexacionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload dto.HechoDTO
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}

		if err := svc.IndexarHecho(c.Request.Context(), payload); err != nil {
			if errors.Is(err, services.ErrPayloadInvalido) {
				c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "hecho indexado"})
	}
}

// IndexarPdIHandler serves POST /api/indexacion/pdi. A PdI whose fact is not
// indexed yet is accepted as deferred, not rejected.
func IndexarPdIHandler(svc *services.IndexacionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload dto.PdIDTO
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}

		resultado, err := svc.IndexarPdI(c.Request.Context(), payload)
		if err != nil {
			if errors.Is(err, services.ErrPayloadInvalido) {
				c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		if resultado == services.IngestaDiferida {
			c.JSON(http.StatusAccepted, dto.MessageResponseDTO{Message: "hecho no indexado aún, pdi diferido"})
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "pdi indexado"})
	}
}

// CensurarHechoHandler serves POST /api/indexacion/censurar/:hechoId with a
// body carrying the approved takedown request id.
func CensurarHechoHandler(svc *services.IndexacionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CensuraDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}

		resultado, err := svc.CensurarHecho(c.Request.Context(), c.Param("hechoId"), body.SolicitudID)
		if err != nil {
			if errors.Is(err, services.ErrPayloadInvalido) {
				c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		if resultado == services.IngestaDiferida {
			c.JSON(http.StatusAccepted, dto.MessageResponseDTO{Message: "hecho no indexado, censura diferida"})
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "hecho censurado"})
	}
}
