package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/facundo-gs/busqueda-api/api/handlers"
	"github.com/facundo-gs/busqueda-api/api/middleware"
	"github.com/facundo-gs/busqueda-api/db"
	"github.com/facundo-gs/busqueda-api/repositories"
	"github.com/facundo-gs/busqueda-api/services"
)

func New(indexacionSvc *services.IndexacionService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogging())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	repo := repositories.NewHechoRepository(db.Database())
	busquedaSvc := services.NewBusquedaService(repo)

	busqueda := r.Group("/api/busqueda")
	{
		busqueda.GET("", handlers.BuscarHandler(busquedaSvc))
	}

	indexacion := r.Group("/api/indexacion")
	{
		indexacion.POST("/hecho", handlers.IndexarHechoHandler(indexacionSvc))
		indexacion.POST("/pdi", handlers.IndexarPdIHandler(indexacionSvc))
		indexacion.POST("/censurar/:hechoId", handlers.CensurarHechoHandler(indexacionSvc))
	}

	admin := r.Group("/api/admin")
	{
		admin.POST("/sync/hechos", handlers.SyncHechosHandler(indexacionSvc))
		admin.POST("/sync/pdis", handlers.SyncPdIsHandler(indexacionSvc))
		admin.GET("/stats", handlers.StatsHandler(busquedaSvc))
		admin.DELETE("/clear", handlers.ClearHandler(repo))
	}

	return r
}
