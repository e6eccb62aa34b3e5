// Package indexer holds the pure merge logic of the search index: it folds
// fact, PdI and censorship payloads into an in-memory HechoIndexado without
// touching storage. All functions are deterministic given the supplied clock
// value, which keeps replays and tests exact.
package indexer

import (
	"time"

	"github.com/facundo-gs/busqueda-api/dto"
	"github.com/facundo-gs/busqueda-api/models"
)

// CrearOActualizarHecho folds a fact payload into the index representation.
// With a nil existente it builds a fresh aggregate; otherwise it applies the
// payload on top of the existing one and returns it.
//
// Empty incoming scalars mean "no opinion" and leave the stored value alone.
// A nil Etiquetas keeps the current tag set; a non-nil one replaces it.
// Replaying the same payload converges to the same field values, though each
// replay still counts as a mutation for the version counter.
func CrearOActualizarHecho(existente *models.HechoIndexado, p dto.HechoDTO, ahora time.Time) *models.HechoIndexado {
	if existente == nil {
		return nuevoHecho(p, ahora)
	}

	if p.Titulo != "" {
		existente.Titulo = p.Titulo
	}
	if p.Descripcion != "" {
		existente.Descripcion = p.Descripcion
	}
	if p.Ubicacion != "" {
		existente.Ubicacion = p.Ubicacion
	}
	if p.Origen != "" {
		existente.Origen = p.Origen
	}
	if !p.Fecha.IsZero() {
		existente.Fecha = p.Fecha
	}
	if cat := models.ParseCategoria(p.Categoria); cat != "" {
		existente.Categoria = cat
	}
	if p.Etiquetas != nil {
		existente.Etiquetas = dedup(p.Etiquetas)
	}

	// A fact re-published under a second collection keeps its original
	// nombre_coleccion but records the new appearance.
	if p.NombreColeccion != "" && !contiene(existente.Colecciones, p.NombreColeccion) {
		existente.Colecciones = append(existente.Colecciones, p.NombreColeccion)
	}

	tocar(existente, ahora)
	return existente
}

func nuevoHecho(p dto.HechoDTO, ahora time.Time) *models.HechoIndexado {
	h := &models.HechoIndexado{
		HechoID:             p.ID,
		NombreColeccion:     p.NombreColeccion,
		Origen:              p.Origen,
		Titulo:              p.Titulo,
		Descripcion:         p.Descripcion,
		Ubicacion:           p.Ubicacion,
		Categoria:           models.ParseCategoria(p.Categoria),
		Fecha:               p.Fecha,
		Etiquetas:           dedup(p.Etiquetas),
		EtiquetasIA:         []string{},
		PdIs:                []models.PdIIndexado{},
		PdIIDs:              []string{},
		Censurado:           false,
		FechaCreacion:       ahora,
		FechaIndexacion:     ahora,
		UltimaActualizacion: ahora,
		Version:             1,
		Colecciones:         []string{},
	}
	if p.NombreColeccion != "" {
		h.Colecciones = append(h.Colecciones, p.NombreColeccion)
	}
	return h
}

// AgregarOActualizarPdI folds a PdI payload into its owning fact. A new
// pdi_id appends a summary (arrival order) and unions its AI tags into the
// fact; a known pdi_id only refreshes the mutable fields of the existing
// summary and never duplicates it.
//
// The caller must have resolved the owning fact first: an unknown fact is a
// deferred ingestion, not a placeholder.
func AgregarOActualizarPdI(h *models.HechoIndexado, p dto.PdIDTO, ahora time.Time) {
	if existente := h.BuscarPdI(p.ID); existente != nil {
		if p.OCRText != "" {
			existente.OCRText = p.OCRText
		}
		if p.EstadoProcesamiento != "" {
			existente.EstadoProcesamiento = models.ParseEstadoProcesamiento(p.EstadoProcesamiento)
		}
		if !p.FechaProcesamiento.IsZero() {
			existente.FechaProcesamiento = p.FechaProcesamiento
		}
		existente.EtiquetasIA = union(existente.EtiquetasIA, p.EtiquetasIA)
	} else {
		h.PdIs = append(h.PdIs, models.PdIIndexado{
			PdIID:               p.ID,
			Descripcion:         p.Descripcion,
			Lugar:               p.Lugar,
			Contenido:           p.Contenido,
			Momento:             p.Momento,
			ImagenURL:           p.ImagenURL,
			OCRText:             p.OCRText,
			EtiquetasIA:         dedup(p.EtiquetasIA),
			EstadoProcesamiento: models.ParseEstadoProcesamiento(p.EstadoProcesamiento),
			FechaProcesamiento:  p.FechaProcesamiento,
		})
		h.PdIIDs = append(h.PdIIDs, p.ID)
	}

	h.EtiquetasIA = union(h.EtiquetasIA, p.EtiquetasIA)
	tocar(h, ahora)
}

// Censurar marks the fact as censored. Once censored the fields never change
// again; repeated calls are no-ops and report false.
func Censurar(h *models.HechoIndexado, solicitudID string, ahora time.Time) bool {
	if h.Censurado {
		return false
	}
	h.Censurado = true
	h.FechaCensura = ahora
	h.SolicitudBorradoID = solicitudID
	tocar(h, ahora)
	return true
}

func tocar(h *models.HechoIndexado, ahora time.Time) {
	h.UltimaActualizacion = ahora
	h.Version++
}

func contiene(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// dedup keeps first occurrences, preserving order. Always returns a non-nil
// slice so documents round-trip as [] instead of null.
func dedup(xs []string) []string {
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		if !contiene(out, x) {
			out = append(out, x)
		}
	}
	return out
}

func union(base, extra []string) []string {
	if base == nil {
		base = []string{}
	}
	for _, x := range extra {
		if !contiene(base, x) {
			base = append(base, x)
		}
	}
	return base
}
