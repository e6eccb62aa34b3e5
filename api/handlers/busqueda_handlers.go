package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/facundo-gs/busqueda-api/dto"
	"github.com/facundo-gs/busqueda-api/services"
)

// BuscarHandler serves GET /api/busqueda.
//
// Examples:
//
//	GET /api/busqueda?q=incendio&page=0&size=10
//	GET /api/busqueda?q=incendio&tags=CABA&tags=urgente&tagsMode=all
//	GET /api/busqueda?coleccion=desastres-2025&sortBy=fecha&sortDirection=asc
func BuscarHandler(svc *services.BusquedaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
		size, _ := strconv.Atoi(c.DefaultQuery("size", "0"))

		req := dto.BusquedaRequestDTO{
			Query:         c.Query("q"),
			Tags:          c.QueryArray("tags"),
			TagsMode:      c.Query("tagsMode"),
			Coleccion:     c.Query("coleccion"),
			Page:          page,
			Size:          size,
			SortBy:        c.Query("sortBy"),
			SortDirection: c.Query("sortDirection"),
		}

		resp, err := svc.Buscar(c.Request.Context(), req)
		if err != nil {
			if errors.Is(err, dto.ErrValidacion) {
				c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
