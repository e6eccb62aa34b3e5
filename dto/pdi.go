package dto

import "time"

// PdIDTO is the point-of-interest payload from the PdI module.
// HechoID links it to its owning fact; the fact may not be indexed yet.
type PdIDTO struct {
	ID                  string    `json:"id"`
	HechoID             string    `json:"hechoId"`
	Descripcion         string    `json:"descripcion"`
	Lugar               string    `json:"lugar"`
	Contenido           string    `json:"contenido"`
	Momento             time.Time `json:"momento"`
	ImagenURL           string    `json:"imagenUrl"`
	OCRText             string    `json:"ocrText"`
	EtiquetasIA         []string  `json:"etiquetasIA"`
	EstadoProcesamiento string    `json:"estadoProcesamiento"`
	FechaProcesamiento  time.Time `json:"fechaProcesamiento"`
}

// CensuraDTO carries the takedown approval for one fact.
type CensuraDTO struct {
	HechoID     string `json:"hechoId"`
	SolicitudID string `json:"solicitudId"`
}
