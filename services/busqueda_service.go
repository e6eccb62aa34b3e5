package services

import (
	"context"
	"time"

	"github.com/facundo-gs/busqueda-api/config"
	"github.com/facundo-gs/busqueda-api/dto"
	"github.com/facundo-gs/busqueda-api/metrics"
	"github.com/facundo-gs/busqueda-api/models"
	"github.com/facundo-gs/busqueda-api/repositories"
)

// BuscadorStore is the read side of the aggregate store.
type BuscadorStore interface {
	Search(ctx context.Context, f repositories.SearchFilter, p repositories.SearchPage) ([]models.HechoIndexado, int64, error)
	Count(ctx context.Context) (int64, error)
	CountCensurados(ctx context.Context) (int64, error)
}

// BusquedaService shapes search requests into store retrievals and applies
// the cross-collection title dedup on the returned page. It never sees
// censored documents; the store filters them out on every strategy.
type BusquedaService struct {
	store BuscadorStore
}

func NewBusquedaService(store BuscadorStore) *BusquedaService {
	return &BusquedaService{store: store}
}

// Buscar runs one paginated search. Pagination counts come from the
// pre-dedup total, so collapsing duplicate titles shrinks the page's rows
// but not its arithmetic.
func (s *BusquedaService) Buscar(ctx context.Context, req dto.BusquedaRequestDTO) (dto.BusquedaResponseDTO, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return dto.BusquedaResponseDTO{}, err
	}

	tipo := tipoConsulta(req)
	start := time.Now()

	hechos, total, err := s.store.Search(ctx,
		repositories.SearchFilter{
			Query:        req.Query,
			Tags:         req.Tags,
			TagsMatchAll: req.TagsMode == dto.TagsModeAll,
			Coleccion:    req.Coleccion,
		},
		repositories.SearchPage{
			Page:          req.Page,
			Size:          req.Size,
			SortBy:        req.SortBy,
			SortDirection: req.SortDirection,
		},
	)
	if err != nil {
		metrics.ConsultasTotal.WithLabelValues(tipo, "error").Inc()
		config.Logger.Errorf("error en búsqueda (%s): %v", tipo, err)
		return dto.BusquedaResponseDTO{}, err
	}

	resultados := deduplicarPorTitulo(hechos)

	metrics.ConsultasTotal.WithLabelValues(tipo, "ok").Inc()
	metrics.ConsultaDuracion.WithLabelValues(tipo).Observe(time.Since(start).Seconds())
	metrics.CantidadResultados.Observe(float64(total))
	config.Logger.Debugf("búsqueda %s: %d resultados (%d únicos en página)", tipo, total, len(resultados))

	return dto.NewBusquedaResponse(resultados, req.Page, req.Size, total), nil
}

// Stats reports index-level counters. Pure read aggregation.
func (s *BusquedaService) Stats(ctx context.Context) (dto.StatsDTO, error) {
	total, err := s.store.Count(ctx)
	if err != nil {
		return dto.StatsDTO{}, err
	}
	censurados, err := s.store.CountCensurados(ctx)
	if err != nil {
		return dto.StatsDTO{}, err
	}
	return dto.StatsDTO{
		TotalIndexados: total,
		Activos:        total - censurados,
		Censurados:     censurados,
	}, nil
}

func tipoConsulta(req dto.BusquedaRequestDTO) string {
	switch {
	case req.Query != "" && len(req.Tags) > 0:
		return "texto_tags"
	case req.Query != "" && req.Coleccion != "":
		return "texto_coleccion"
	case req.Query != "":
		return "texto"
	case len(req.Tags) > 0:
		return "tags"
	default:
		return "activos"
	}
}

// deduplicarPorTitulo collapses a page's rows that share a title into one
// representative: the most recently updated wins, and the union of the
// collections seen under the title is reported so clients can tell the fact
// also appears elsewhere. First-occurrence page order is preserved.
func deduplicarPorTitulo(hechos []models.HechoIndexado) []dto.BusquedaResultadoDTO {
	type grupo struct {
		elegido     *models.HechoIndexado
		colecciones []string
	}

	orden := make([]string, 0, len(hechos))
	grupos := make(map[string]*grupo, len(hechos))

	for i := range hechos {
		h := &hechos[i]
		g, visto := grupos[h.Titulo]
		if !visto {
			g = &grupo{}
			grupos[h.Titulo] = g
			orden = append(orden, h.Titulo)
		}
		g.colecciones = unirColecciones(g.colecciones, h.Colecciones)
		if g.elegido == nil || h.UltimaActualizacion.After(g.elegido.UltimaActualizacion) {
			g.elegido = h
		}
	}

	out := make([]dto.BusquedaResultadoDTO, 0, len(orden))
	for _, titulo := range orden {
		g := grupos[titulo]
		out = append(out, nuevoResultado(g.elegido, g.colecciones))
	}
	return out
}

func nuevoResultado(h *models.HechoIndexado, colecciones []string) dto.BusquedaResultadoDTO {
	tieneImagenes := false
	for _, p := range h.PdIs {
		if p.ImagenURL != "" {
			tieneImagenes = true
			break
		}
	}
	return dto.BusquedaResultadoDTO{
		HechoID:         h.HechoID,
		Titulo:          h.Titulo,
		NombreColeccion: h.NombreColeccion,
		Colecciones:     colecciones,
		Descripcion:     h.Descripcion,
		Ubicacion:       h.Ubicacion,
		Categoria:       string(h.Categoria),
		Fecha:           h.Fecha,
		Etiquetas:       h.Etiquetas,
		EtiquetasIA:     h.EtiquetasIA,
		Origen:          h.Origen,
		CantidadPdIs:    len(h.PdIs),
		TieneImagenes:   tieneImagenes,
	}
}

func unirColecciones(base, extra []string) []string {
	for _, c := range extra {
		existe := false
		for _, b := range base {
			if b == c {
				existe = true
				break
			}
		}
		if !existe {
			base = append(base, c)
		}
	}
	return base
}
