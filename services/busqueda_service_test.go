package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/facundo-gs/busqueda-api/dto"
	"github.com/facundo-gs/busqueda-api/models"
	"github.com/facundo-gs/busqueda-api/repositories"
)

// fakeBuscador returns a canned page and records the filter it was asked for.
type fakeBuscador struct {
	hechos []models.HechoIndexado
	total  int64
	err    error

	ultimoFiltro repositories.SearchFilter
	ultimaPagina repositories.SearchPage

	totalIndexados int64
	censurados     int64
}

func (f *fakeBuscador) Search(_ context.Context, filtro repositories.SearchFilter, pagina repositories.SearchPage) ([]models.HechoIndexado, int64, error) {
	f.ultimoFiltro = filtro
	f.ultimaPagina = pagina
	return f.hechos, f.total, f.err
}

func (f *fakeBuscador) Count(context.Context) (int64, error)           { return f.totalIndexados, nil }
func (f *fakeBuscador) CountCensurados(context.Context) (int64, error) { return f.censurados, nil }

func hechoIndexado(id, titulo string, actualizado time.Time, colecciones ...string) models.HechoIndexado {
	return models.HechoIndexado{
		HechoID:             id,
		Titulo:              titulo,
		NombreColeccion:     colecciones[0],
		Colecciones:         colecciones,
		UltimaActualizacion: actualizado,
	}
}

func TestBuscarPaginaInicial(t *testing.T) {
	store := &fakeBuscador{total: 25}
	svc := NewBusquedaService(store)

	resp, err := svc.Buscar(context.Background(), dto.BusquedaRequestDTO{Page: 0})
	require.NoError(t, err)

	require.Equal(t, 3, resp.TotalPaginas)
	require.Equal(t, int64(25), resp.TotalResultados)
	require.Equal(t, 10, resp.Tamanio) // default aplicado por Normalize
	require.True(t, resp.HasNext)
	require.False(t, resp.HasPrevious)
}

func TestBuscarUltimaPagina(t *testing.T) {
	store := &fakeBuscador{total: 25}
	svc := NewBusquedaService(store)

	resp, err := svc.Buscar(context.Background(), dto.BusquedaRequestDTO{Page: 2, Size: 10})
	require.NoError(t, err)

	require.False(t, resp.HasNext)
	require.True(t, resp.HasPrevious)
}

func TestBuscarValidaParametros(t *testing.T) {
	svc := NewBusquedaService(&fakeBuscador{})
	ctx := context.Background()

	casos := []dto.BusquedaRequestDTO{
		{Page: -1},
		{Size: 51},
		{SortBy: "precio"},
		{SortDirection: "sideways"},
		{TagsMode: "some"},
	}
	for _, c := range casos {
		_, err := svc.Buscar(ctx, c)
		require.ErrorIs(t, err, dto.ErrValidacion, "request %+v", c)
	}
}

func TestBuscarDeduplicaPorTitulo(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	viejo := hechoIndexado("h-1", "Incendio en depósito", base, "desastres-2025")
	viejo.Ubicacion = "CABA"
	nuevo := hechoIndexado("h-2", "Incendio en depósito", base.Add(time.Hour), "emergencias")
	nuevo.Ubicacion = "La Plata"
	otro := hechoIndexado("h-3", "Corte de luz", base, "desastres-2025")

	store := &fakeBuscador{hechos: []models.HechoIndexado{viejo, nuevo, otro}, total: 3}
	svc := NewBusquedaService(store)

	resp, err := svc.Buscar(context.Background(), dto.BusquedaRequestDTO{})
	require.NoError(t, err)

	require.Len(t, resp.Resultados, 2)
	// el representante es el actualizado más recientemente
	require.Equal(t, "h-2", resp.Resultados[0].HechoID)
	require.Equal(t, "La Plata", resp.Resultados[0].Ubicacion)
	// pero el merge cita todas las colecciones donde apareció el título
	require.ElementsMatch(t, []string{"desastres-2025", "emergencias"}, resp.Resultados[0].Colecciones)
	require.Equal(t, "h-3", resp.Resultados[1].HechoID)
	// la aritmética de paginación usa el total previo al dedup
	require.Equal(t, int64(3), resp.TotalResultados)
}

func TestBuscarTraduceFiltros(t *testing.T) {
	store := &fakeBuscador{}
	svc := NewBusquedaService(store)

	_, err := svc.Buscar(context.Background(), dto.BusquedaRequestDTO{
		Query:     "incendio",
		Tags:      []string{"urgente", "caba"},
		TagsMode:  dto.TagsModeAll,
		Coleccion: "desastres-2025",
		Page:      1,
		Size:      20,
		SortBy:    dto.SortFecha,
	})
	require.NoError(t, err)

	require.Equal(t, "incendio", store.ultimoFiltro.Query)
	require.True(t, store.ultimoFiltro.TagsMatchAll)
	require.Equal(t, "desastres-2025", store.ultimoFiltro.Coleccion)
	require.Equal(t, 1, store.ultimaPagina.Page)
	require.Equal(t, 20, store.ultimaPagina.Size)
	require.Equal(t, dto.SortFecha, store.ultimaPagina.SortBy)
	require.Equal(t, dto.DirDesc, store.ultimaPagina.SortDirection)
}

func TestBuscarPropagaErroresDelStore(t *testing.T) {
	store := &fakeBuscador{err: errors.New("mongo caído")}
	svc := NewBusquedaService(store)

	_, err := svc.Buscar(context.Background(), dto.BusquedaRequestDTO{})
	require.Error(t, err)
}

func TestTipoConsulta(t *testing.T) {
	casos := []struct {
		req  dto.BusquedaRequestDTO
		tipo string
	}{
		{dto.BusquedaRequestDTO{Query: "q", Tags: []string{"t"}}, "texto_tags"},
		{dto.BusquedaRequestDTO{Query: "q", Coleccion: "c"}, "texto_coleccion"},
		{dto.BusquedaRequestDTO{Query: "q"}, "texto"},
		{dto.BusquedaRequestDTO{Tags: []string{"t"}}, "tags"},
		{dto.BusquedaRequestDTO{}, "activos"},
	}
	for _, c := range casos {
		if got := tipoConsulta(c.req); got != c.tipo {
			t.Fatalf("tipoConsulta(%+v) = %q, esperado %q", c.req, got, c.tipo)
		}
	}
}

func TestStats(t *testing.T) {
	store := &fakeBuscador{totalIndexados: 12, censurados: 3}
	svc := NewBusquedaService(store)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(12), stats.TotalIndexados)
	require.Equal(t, int64(9), stats.Activos)
	require.Equal(t, int64(3), stats.Censurados)
}
