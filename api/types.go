// types.go - Request- und Response-Typen der Native-API
// Enthaelt: SelectRequest, SelectResponse, TemplatesResponse, StatusError
package api

import (
	"encoding/json"
	"fmt"

	"github.com/ollama/native/native"
)

// SelectRequest beschreibt eine Auswahl-Anfrage an /api/native/select.
type SelectRequest struct {
	// Template ist der Template-Identifier, z.B. "nbeats" oder "resnet50"
	Template string `json:"template"`

	// Modality ist "timeseries", "image", "video" oder "text"
	Modality string `json:"modality"`

	// Params ist der Parameter-Beutel, Reihenfolge bleibt erhalten
	Params *native.Params `json:"params,omitempty"`

	// Input ist die modalitaetsspezifische Eingabe-Beschreibung
	Input json.RawMessage `json:"input,omitempty"`
}

// SelectResponse beschreibt die ausgewaehlte Architektur.
type SelectResponse struct {
	Template     string         `json:"template"`
	Modality     string         `json:"modality"`
	Architecture string         `json:"architecture"`
	ID           string         `json:"id"`
	Parameters   map[string]any `json:"parameters"`
}

// TemplatesResponse listet die bekannten Templates pro Modalitaet.
type TemplatesResponse struct {
	Templates map[string][]string `json:"templates"`
}

// StatusError ist eine Fehlerantwort mit optionalem Vorschlag.
type StatusError struct {
	StatusCode   int    `json:"-"`
	ErrorMessage string `json:"error"`
	Suggestion   string `json:"suggestion,omitempty"`
}

func (e StatusError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s (did you mean %q?)", e.ErrorMessage, e.Suggestion)
	}
	return e.ErrorMessage
}
