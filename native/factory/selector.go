// selector.go - Selector pro Modalitaet
// Hauptfunktionen: fromTimeSeries, fromImage, fromVideo, Keywords
//
// Jede Modalitaet hat genau eine geordnete Kandidaten-Tabelle. Auswahl,
// Match und Templates lesen alle aus derselben Tabelle.
package factory

import (
	"log/slog"
	"strings"

	"github.com/ollama/native/native"
	"github.com/ollama/native/native/models"
)

// =============================================================================
// Kandidaten-Tabellen
// =============================================================================

// timeSeriesCandidate verbindet ein Keyword mit seinem Zeitreihen-Konstruktor.
type timeSeriesCandidate struct {
	keyword string
	arch    string
	build   func(params *native.Params, in native.TimeSeriesInput, logger *slog.Logger) (native.Module, error)
}

// imageCandidate verbindet ein Keyword mit seinem Bild-Konstruktor.
type imageCandidate struct {
	keyword string
	arch    string
	build   func(params *native.Params, in native.ImageInput) (native.Module, error)
}

// timeSeriesCandidates in Pruef-Reihenfolge: nbeats vor ttransformer.
var timeSeriesCandidates = []timeSeriesCandidate{
	{KeywordNBeats, models.ArchNBeats, buildNBeats},
	{KeywordTTransformer, models.ArchTTransformer, buildTTransformer},
}

// imageCandidates in Pruef-Reihenfolge: vit vor visformer, danach der Katalog.
var imageCandidates = []imageCandidate{
	{KeywordViT, models.ArchViT, buildViT},
	{KeywordVisformer, models.ArchVisformer, buildVisformer},
}

// Keywords gibt die fest eingebauten Keywords einer Modalitaet in
// Pruef-Reihenfolge zurueck. Katalog-Templates sind nicht enthalten.
func Keywords(modality native.Modality) []string {
	var keywords []string
	switch modality {
	case native.ModalityTimeSeries:
		for _, c := range timeSeriesCandidates {
			keywords = append(keywords, c.keyword)
		}
	case native.ModalityImage, native.ModalityVideo:
		for _, c := range imageCandidates {
			keywords = append(keywords, c.keyword)
		}
	}
	return keywords
}

func matchTimeSeries(tdef string) (timeSeriesCandidate, bool) {
	for _, c := range timeSeriesCandidates {
		if strings.Contains(tdef, c.keyword) {
			return c, true
		}
	}
	return timeSeriesCandidate{}, false
}

func matchImage(tdef string) (imageCandidate, bool) {
	for _, c := range imageCandidates {
		if strings.Contains(tdef, c.keyword) {
			return c, true
		}
	}
	return imageCandidate{}, false
}

// =============================================================================
// Zeitreihen
// =============================================================================

// fromTimeSeries waehlt den ersten passenden Zeitreihen-Kandidaten.
func (f *Factory) fromTimeSeries(tdef string, params *native.Params, in native.TimeSeriesInput, logger *slog.Logger) (native.Module, error) {
	c, ok := matchTimeSeries(tdef)
	if !ok {
		return nil, nil
	}
	return c.build(params, in, logger)
}

func buildNBeats(params *native.Params, in native.TimeSeriesInput, _ *slog.Logger) (native.Module, error) {
	stackdef, err := params.StringsOr("stackdef", models.DefaultStackDef())
	if err != nil {
		return nil, err
	}

	coef, err := params.Float64Or("backcast_loss_coef", models.DefaultBackcastLossCoef)
	if err != nil {
		return nil, err
	}

	m, err := models.NewNBeats(in, stackdef, coef)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// buildTTransformer ist der einzige Konstruktor, der den Logger bekommt.
func buildTTransformer(params *native.Params, in native.TimeSeriesInput, logger *slog.Logger) (native.Module, error) {
	m, err := models.NewTTransformer(in, params, logger)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// =============================================================================
// Bilder
// =============================================================================

// fromImage prueft die Bild-Tabelle, danach den Vision-Katalog.
func (f *Factory) fromImage(tdef string, params *native.Params, in native.ImageInput, _ *slog.Logger) (native.Module, error) {
	if c, ok := matchImage(tdef); ok {
		return c.build(params, in)
	}
	if f.vision != nil && f.vision.IsKnown(tdef) {
		return f.vision.FromTemplate(tdef, params, in)
	}
	return nil, nil
}

func buildViT(params *native.Params, in native.ImageInput) (native.Module, error) {
	m, err := models.NewViT(in, params)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func buildVisformer(params *native.Params, in native.ImageInput) (native.Module, error) {
	m, err := models.NewVisformer(in, params)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// =============================================================================
// Video
// =============================================================================

// fromVideo verwendet den Bild-Selector mit der Frame-Beschreibung.
// Video hat keinen eigenen Architektur-Katalog.
func (f *Factory) fromVideo(tdef string, params *native.Params, in native.VideoInput, logger *slog.Logger) (native.Module, error) {
	return f.fromImage(tdef, params, in.AsImage(), logger)
}
