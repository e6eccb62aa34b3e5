package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Categoria is the closed set of fact categories accepted by the index.
// Unknown upstream values are folded into CategoriaOtro.
type Categoria string

const (
	CategoriaDesastre  Categoria = "desastre"
	CategoriaIncendio  Categoria = "incendio"
	CategoriaAccidente Categoria = "accidente"
	CategoriaProtesta  Categoria = "protesta"
	CategoriaDenuncia  Categoria = "denuncia"
	CategoriaOtro      Categoria = "otro"
)

// ParseCategoria maps an upstream category string onto the closed set.
// An empty input stays empty: it means the payload carries no opinion.
func ParseCategoria(s string) Categoria {
	switch Categoria(s) {
	case CategoriaDesastre, CategoriaIncendio, CategoriaAccidente,
		CategoriaProtesta, CategoriaDenuncia, CategoriaOtro:
		return Categoria(s)
	case "":
		return ""
	default:
		return CategoriaOtro
	}
}

// HechoIndexado is the denormalized search document for one fact.
// Collection: hechos_indexados
//
// The natural key is HechoID; the Mongo _id exists only because the driver
// needs one. PdIIDs mirrors the pdi_id values inside PdIs so membership
// checks do not have to walk the embedded list.
type HechoIndexado struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"-"`

	HechoID         string    `bson:"hecho_id" json:"hechoId"`
	NombreColeccion string    `bson:"nombre_coleccion" json:"nombreColeccion"`
	Origen          string    `bson:"origen" json:"origen"`
	Titulo          string    `bson:"titulo" json:"titulo"`
	Descripcion     string    `bson:"descripcion" json:"descripcion"`
	Ubicacion       string    `bson:"ubicacion" json:"ubicacion"`
	Categoria       Categoria `bson:"categoria" json:"categoria"`
	Fecha           time.Time `bson:"fecha" json:"fecha"`

	Etiquetas   []string `bson:"etiquetas" json:"etiquetas"`
	EtiquetasIA []string `bson:"etiquetas_ia" json:"etiquetasIA"`

	PdIs   []PdIIndexado `bson:"pdis" json:"pdis"`
	PdIIDs []string      `bson:"pdi_ids" json:"pdiIds"`

	Censurado          bool      `bson:"censurado" json:"censurado"`
	FechaCensura       time.Time `bson:"fecha_censura,omitempty" json:"fechaCensura,omitempty"`
	SolicitudBorradoID string    `bson:"solicitud_borrado_id,omitempty" json:"solicitudBorradoId,omitempty"`

	FechaCreacion       time.Time `bson:"fecha_creacion" json:"fechaCreacion"`
	FechaIndexacion     time.Time `bson:"fecha_indexacion" json:"fechaIndexacion"`
	UltimaActualizacion time.Time `bson:"ultima_actualizacion" json:"ultimaActualizacion"`

	Version int `bson:"version" json:"version"`

	// Colecciones tracks every collection the fact was ever published under.
	// Used by the title dedup to report "also appears in X".
	Colecciones []string `bson:"colecciones" json:"colecciones"`
}

// TienePdI reports whether a PdI with the given id is already embedded.
func (h *HechoIndexado) TienePdI(pdiID string) bool {
	for _, id := range h.PdIIDs {
		if id == pdiID {
			return true
		}
	}
	return false
}

// BuscarPdI returns a pointer into PdIs for the given id, or nil.
func (h *HechoIndexado) BuscarPdI(pdiID string) *PdIIndexado {
	for i := range h.PdIs {
		if h.PdIs[i].PdIID == pdiID {
			return &h.PdIs[i]
		}
	}
	return nil
}
