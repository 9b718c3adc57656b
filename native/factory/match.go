// match.go - Auswahl ohne Konstruktion
// Hauptfunktionen: Match, Templates, Suggest
package factory

import (
	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"

	"github.com/ollama/native/native"
)

// lister wird von Katalogen implementiert, die ihre Templates auflisten koennen.
type lister interface {
	List() []string
}

// looker wird von Katalogen implementiert, die den getroffenen Namen kennen.
type looker interface {
	Lookup(tdef string) (string, bool)
}

// Match gibt die Architektur zurueck, die FromTemplate fuer den Identifier
// waehlen wuerde, ohne sie zu konstruieren.
func (f *Factory) Match(tdef string, modality native.Modality) (string, bool) {
	switch modality {
	case native.ModalityTimeSeries:
		if c, ok := matchTimeSeries(tdef); ok {
			return c.arch, true
		}
	case native.ModalityImage, native.ModalityVideo:
		if c, ok := matchImage(tdef); ok {
			return c.arch, true
		}
		if f.vision != nil && f.vision.IsKnown(tdef) {
			if l, ok := f.vision.(looker); ok {
				return l.Lookup(tdef)
			}
			return tdef, true
		}
	}
	return "", false
}

// Templates gibt die bekannten Template-Namen einer Modalitaet zurueck:
// zuerst die fest eingebauten Keywords in Pruef-Reihenfolge, danach die
// Templates des Vision-Katalogs.
func (f *Factory) Templates(modality native.Modality) []string {
	templates := Keywords(modality)
	if modality == native.ModalityImage || modality == native.ModalityVideo {
		if l, ok := f.vision.(lister); ok {
			templates = append(templates, l.List()...)
		}
	}
	return templates
}

// Suggest gibt den naechstgelegenen Kandidaten nach Levenshtein-Distanz
// zurueck. Gross-/Kleinschreibung wird ignoriert. Kandidaten, die weiter
// als die halbe Laenge des Identifiers entfernt sind, zaehlen nicht.
func Suggest(tdef string, candidates []string) (string, bool) {
	fold := cases.Fold()
	needle := fold.String(tdef)

	best, bestDist := "", -1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(needle, fold.String(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}

	if bestDist < 0 || bestDist > (len(needle)+1)/2 {
		return "", false
	}
	return best, true
}
