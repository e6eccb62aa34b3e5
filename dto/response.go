package dto

// ErrorResponseDTO unifies the error response shape across handlers.
type ErrorResponseDTO struct {
	Error string `json:"error"`
}

// MessageResponseDTO unifies simple message responses.
type MessageResponseDTO struct {
	Message string `json:"message"`
}

// StatsDTO reports index-level counters.
type StatsDTO struct {
	TotalIndexados int64 `json:"totalIndexados"`
	Activos        int64 `json:"activos"`
	Censurados     int64 `json:"censurados"`
}

// SyncResultDTO tallies a bulk load.
type SyncResultDTO struct {
	Total     int `json:"total"`
	Exitosos  int `json:"exitosos"`
	Diferidos int `json:"diferidos,omitempty"`
	Errores   int `json:"errores"`
}
