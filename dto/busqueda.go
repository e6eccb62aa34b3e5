package dto

import (
	"errors"
	"fmt"
	"time"
)

// ErrValidacion marks a malformed search request. Callers map it to a 400.
var ErrValidacion = errors.New("parámetros de búsqueda inválidos")

const (
	SortRelevancia = "relevancia"
	SortFecha      = "fecha"
	SortTitulo     = "titulo"

	DirAsc  = "asc"
	DirDesc = "desc"

	TagsModeAny = "any"
	TagsModeAll = "all"

	defaultPageSize = 10
	maxPageSize     = 50
)

// BusquedaRequestDTO is a search request against the index. Query, Tags and
// Coleccion are all optional; which ones are present decides the retrieval
// strategy.
type BusquedaRequestDTO struct {
	Query     string   `json:"query"`
	Tags      []string `json:"tags"`
	TagsMode  string   `json:"tagsMode"` // any (default) | all
	Coleccion string   `json:"coleccion"`

	Page int `json:"page"` // 0-based
	Size int `json:"size"` // 1..50, default 10

	SortBy        string `json:"sortBy"`        // relevancia | fecha | titulo
	SortDirection string `json:"sortDirection"` // asc | desc
}

// Normalize applies defaults for omitted fields. It does not fix invalid
// values; Validate rejects those.
func (r *BusquedaRequestDTO) Normalize() {
	if r.Size == 0 {
		r.Size = defaultPageSize
	}
	if r.SortBy == "" {
		r.SortBy = SortRelevancia
	}
	if r.SortDirection == "" {
		r.SortDirection = DirDesc
	}
	if r.TagsMode == "" {
		r.TagsMode = TagsModeAny
	}
}

func (r *BusquedaRequestDTO) Validate() error {
	if r.Page < 0 {
		return fmt.Errorf("%w: page debe ser >= 0", ErrValidacion)
	}
	if r.Size < 1 || r.Size > maxPageSize {
		return fmt.Errorf("%w: size debe estar entre 1 y %d", ErrValidacion, maxPageSize)
	}
	switch r.SortBy {
	case SortRelevancia, SortFecha, SortTitulo:
	default:
		return fmt.Errorf("%w: sortBy desconocido %q", ErrValidacion, r.SortBy)
	}
	switch r.SortDirection {
	case DirAsc, DirDesc:
	default:
		return fmt.Errorf("%w: sortDirection desconocida %q", ErrValidacion, r.SortDirection)
	}
	switch r.TagsMode {
	case TagsModeAny, TagsModeAll:
	default:
		return fmt.Errorf("%w: tagsMode desconocido %q", ErrValidacion, r.TagsMode)
	}
	return nil
}

// BusquedaResultadoDTO is one (possibly title-merged) search hit.
type BusquedaResultadoDTO struct {
	HechoID         string    `json:"hechoId"`
	Titulo          string    `json:"titulo"`
	NombreColeccion string    `json:"nombreColeccion"`
	Colecciones     []string  `json:"colecciones"`
	Descripcion     string    `json:"descripcion"`
	Ubicacion       string    `json:"ubicacion"`
	Categoria       string    `json:"categoria"`
	Fecha           time.Time `json:"fecha"`
	Etiquetas       []string  `json:"etiquetas"`
	EtiquetasIA     []string  `json:"etiquetasIA"`
	Origen          string    `json:"origen"`
	CantidadPdIs    int       `json:"cantidadPdis"`
	TieneImagenes   bool      `json:"tieneImagenes"`
}

// BusquedaResponseDTO is the paginated search envelope. Pagination counts are
// computed from the pre-dedup total, so a page that collapsed duplicate
// titles can carry fewer rows than Size.
type BusquedaResponseDTO struct {
	Resultados      []BusquedaResultadoDTO `json:"resultados"`
	Pagina          int                    `json:"pagina"`
	Tamanio         int                    `json:"tamanio"`
	TotalResultados int64                  `json:"totalResultados"`
	TotalPaginas    int                    `json:"totalPaginas"`
	HasNext         bool                   `json:"hasNext"`
	HasPrevious     bool                   `json:"hasPrevious"`
}

// NewBusquedaResponse builds the envelope from a page of results and the
// pre-dedup total.
func NewBusquedaResponse(resultados []BusquedaResultadoDTO, pagina, tamanio int, total int64) BusquedaResponseDTO {
	totalPaginas := int((total + int64(tamanio) - 1) / int64(tamanio))
	return BusquedaResponseDTO{
		Resultados:      resultados,
		Pagina:          pagina,
		Tamanio:         tamanio,
		TotalResultados: total,
		TotalPaginas:    totalPaginas,
		HasNext:         pagina < totalPaginas-1,
		HasPrevious:     pagina > 0,
	}
}
