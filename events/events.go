package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/facundo-gs/busqueda-api/dto"
)

// EventType identifies the push events the index consumes.
type EventType string

const (
	HechoCreado       EventType = "hecho.creado"
	PdICreado         EventType = "pdi.creado"
	SolicitudAceptada EventType = "solicitud.aceptada"
)

// BaseEvent carries the envelope fields shared by every event.
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"` // "fuente", "pdi", "solicitudes"
	Version   string    `json:"version"`
}

// HechoCreadoEvent announces a fact created or updated upstream.
type HechoCreadoEvent struct {
	BaseEvent
	Hecho dto.HechoDTO `json:"hecho"`
}

// PdICreadoEvent announces a PdI created or re-processed upstream.
type PdICreadoEvent struct {
	BaseEvent
	PdI dto.PdIDTO `json:"pdi"`
}

// SolicitudAceptadaEvent announces an approved takedown request.
type SolicitudAceptadaEvent struct {
	BaseEvent
	HechoID     string `json:"hechoId"`
	SolicitudID string `json:"solicitudId"`
}

// DeserializeEvent decodes the payload into the struct matching eventType.
func DeserializeEvent(eventType EventType, data []byte) (interface{}, error) {
	var event interface{}

	switch eventType {
	case HechoCreado:
		event = &HechoCreadoEvent{}
	case PdICreado:
		event = &PdICreadoEvent{}
	case SolicitudAceptada:
		event = &SolicitudAceptadaEvent{}
	default:
		return nil, fmt.Errorf("unknown event type: %s", eventType)
	}

	if err := json.Unmarshal(data, event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return event, nil
}
