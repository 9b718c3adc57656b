// Package factory - Auswahl und Konstruktion nativer Architekturen
//
// Dieses Paket uebersetzt einen Template-Identifier, einen Parameter-Beutel
// und eine Eingabe-Beschreibung in eine konstruierte Architektur.
//
// Hauptkomponenten:
// - Factory: Selector pro Modalitaet mit fester Keyword-Prioritaet
// - VisionCatalog: externe Registry fuer weitere Vision-Templates
// - FromTemplate: Package-Level Einstieg mit vision.DefaultRegistry
//
// Kein Treffer ist kein Fehler: FromTemplate gibt dann (nil, nil) zurueck.
package factory

import (
	"log/slog"

	"github.com/ollama/native/native"
	"github.com/ollama/native/vision"
)

// Keywords in Pruef-Reihenfolge. Die Reihenfolge ist Teil des Verhaltens:
// ein Identifier mit mehreren Keywords waehlt immer das erste.
const (
	KeywordNBeats       = "nbeats"
	KeywordTTransformer = "ttransformer"
	KeywordViT          = "vit"
	KeywordVisformer    = "visformer"
)

// VisionCatalog ist die externe Registry, die der Bild-Selector befragt,
// nachdem die fest eingebauten Architekturen nicht gepasst haben.
type VisionCatalog interface {
	IsKnown(tdef string) bool
	FromTemplate(tdef string, params *native.Params, in native.ImageInput) (native.Module, error)
}

// Factory waehlt Architekturen aus. Sie haelt keinen veraenderlichen Zustand
// und kann parallel verwendet werden.
type Factory struct {
	vision VisionCatalog
}

// Option ist eine funktionale Option fuer New.
type Option func(*Factory)

// WithVisionCatalog ersetzt die Vision-Registry.
func WithVisionCatalog(c VisionCatalog) Option {
	return func(f *Factory) {
		f.vision = c
	}
}

// New erstellt eine Factory. Ohne Optionen wird vision.DefaultRegistry verwendet.
func New(opts ...Option) *Factory {
	f := &Factory{vision: vision.DefaultRegistry}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

var defaultFactory = New()

// FromTemplate waehlt mit der Standard-Factory aus.
func FromTemplate(tdef string, params *native.Params, in native.Input, logger *slog.Logger) (native.Module, error) {
	return defaultFactory.FromTemplate(tdef, params, in, logger)
}

// FromTemplate waehlt die Architektur fuer den Identifier und konstruiert sie.
// Gibt (nil, nil) zurueck wenn keine Architektur passt. Fehler entstehen nur
// bei falsch typisierten Parametern oder in den Konstruktoren selbst.
func (f *Factory) FromTemplate(tdef string, params *native.Params, in native.Input, logger *slog.Logger) (native.Module, error) {
	switch in := in.(type) {
	case native.TimeSeriesInput:
		return f.fromTimeSeries(tdef, params, in, logger)
	case *native.TimeSeriesInput:
		if in == nil {
			return nil, nil
		}
		return f.fromTimeSeries(tdef, params, *in, logger)
	case native.ImageInput:
		return f.fromImage(tdef, params, in, logger)
	case *native.ImageInput:
		if in == nil {
			return nil, nil
		}
		return f.fromImage(tdef, params, *in, logger)
	case native.VideoInput:
		return f.fromVideo(tdef, params, in, logger)
	case *native.VideoInput:
		if in == nil {
			return nil, nil
		}
		return f.fromVideo(tdef, params, *in, logger)
	default:
		// Text und alle weiteren Modalitaeten haben noch keine nativen Architekturen
		return fromDefault(tdef, params, in, logger)
	}
}

// fromDefault ist das Verhalten fuer Modalitaeten ohne Spezialisierung.
func fromDefault(_ string, _ *native.Params, _ native.Input, _ *slog.Logger) (native.Module, error) {
	return nil, nil
}
