package dto

import "time"

// HechoDTO is the fact payload as delivered by the fuente module, either
// through the webhook, the Kafka topic or the reconciliation pull.
//
// Empty scalar fields (and a zero Fecha) mean "no opinion": on update they
// leave the indexed value alone instead of clearing it. A nil Etiquetas
// likewise keeps the current tag set; a non-nil one replaces it.
type HechoDTO struct {
	ID              string    `json:"id"`
	NombreColeccion string    `json:"nombreColeccion"`
	Origen          string    `json:"origen"`
	Titulo          string    `json:"titulo"`
	Descripcion     string    `json:"descripcion"`
	Ubicacion       string    `json:"ubicacion"`
	Categoria       string    `json:"categoria"`
	Fecha           time.Time `json:"fecha"`
	Etiquetas       []string  `json:"etiquetas"`
}
