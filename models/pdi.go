package models

import "time"

// EstadoProcesamiento is the lifecycle of the async image analysis on a PdI.
type EstadoProcesamiento string

const (
	EstadoPendiente EstadoProcesamiento = "pendiente"
	EstadoProcesado EstadoProcesamiento = "procesado"
	EstadoFallido   EstadoProcesamiento = "fallido"
)

// ParseEstadoProcesamiento folds unknown values into pendiente, which is the
// safe default for a PdI we have not seen a terminal state for.
func ParseEstadoProcesamiento(s string) EstadoProcesamiento {
	switch EstadoProcesamiento(s) {
	case EstadoPendiente, EstadoProcesado, EstadoFallido:
		return EstadoProcesamiento(s)
	default:
		return EstadoPendiente
	}
}

// PdIIndexado is a point-of-interest summary embedded in its fact document.
// Insertion order in HechoIndexado.PdIs is arrival order.
type PdIIndexado struct {
	PdIID       string    `bson:"pdi_id" json:"pdiId"`
	Descripcion string    `bson:"descripcion" json:"descripcion"`
	Lugar       string    `bson:"lugar" json:"lugar"`
	Contenido   string    `bson:"contenido" json:"contenido"`
	Momento     time.Time `bson:"momento" json:"momento"`
	ImagenURL   string    `bson:"imagen_url" json:"imagenUrl"`

	// OCRText is filled once the async image text extraction finishes.
	OCRText string `bson:"ocr_text,omitempty" json:"ocrText,omitempty"`

	EtiquetasIA []string `bson:"etiquetas_ia" json:"etiquetasIA"`

	EstadoProcesamiento EstadoProcesamiento `bson:"estado_procesamiento" json:"estadoProcesamiento"`
	FechaProcesamiento  time.Time           `bson:"fecha_procesamiento,omitempty" json:"fechaProcesamiento,omitempty"`
}
