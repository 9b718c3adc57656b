// Package vision - Template-Registry fuer klassische Vision-Architekturen.
//
// MODUL: registry
// ZWECK: Zentrale Registry fuer Vision-Templates mit Thread-sicherer Verwaltung
// INPUT: Template-Name, Constructor-Funktionen, Parameter, ImageInput
// OUTPUT: Konstruierte native.Module Instanzen
// NEBENEFFEKTE: Keine (rein speicherbasiert)
// ABHAENGIGKEITEN: sync (stdlib), emirpasic/gods/v2 (treemap), native
// HINWEISE: Thread-sicher durch RWMutex, Iteration immer sortiert
package vision

import (
	"errors"
	"strings"
	"sync"

	"github.com/emirpasic/gods/v2/maps/treemap"

	"github.com/ollama/native/native"
)

// ============================================================================
// Fehler-Definitionen
// ============================================================================

// ErrTemplateNotRegistered wird zurueckgegeben wenn kein Template passt.
var ErrTemplateNotRegistered = errors.New("vision: template not registered")

// RegistryError repraesentiert einen Registry-spezifischen Fehler.
type RegistryError struct {
	Op       string // Operation (z.B. "create")
	Template string // angefragtes Template
	Err      error  // Urspruenglicher Fehler
}

// Error implementiert das error Interface.
func (e *RegistryError) Error() string {
	return "vision: " + e.Op + " template '" + e.Template + "': " + e.Err.Error()
}

// Unwrap gibt den urspruenglichen Fehler zurueck.
func (e *RegistryError) Unwrap() error {
	return e.Err
}

// ============================================================================
// Registry - Zentrale Template-Verwaltung
// ============================================================================

// Constructor erstellt eine Architektur fuer ein registriertes Template.
// name ist der registrierte Template-Name, nicht der angefragte Identifier.
type Constructor func(name string, params *native.Params, in native.ImageInput) (native.Module, error)

// Registry verwaltet registrierte Vision-Templates.
type Registry struct {
	templates *treemap.Map[string, Constructor]
	mu        sync.RWMutex
}

// NewRegistry erstellt eine neue leere Registry.
func NewRegistry() *Registry {
	return &Registry{
		templates: treemap.New[string, Constructor](),
	}
}

// Register registriert einen Constructor unter dem Template-Namen.
// Ueberschreibt existierende Eintraege ohne Warnung.
func (r *Registry) Register(name string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.templates.Put(name, ctor)
}

// Unregister entfernt ein Template.
// Gibt true zurueck wenn das Template existierte, sonst false.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.templates.Get(name); !exists {
		return false
	}
	r.templates.Remove(name)
	return true
}

// ============================================================================
// Registry Methoden - Abfrage
// ============================================================================

// Has prueft ob ein Template exakt unter dem Namen registriert ist.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.templates.Get(name)
	return exists
}

// Lookup sucht das registrierte Template das im Identifier enthalten ist.
// Bei mehreren Treffern gewinnt der laengste Name (wideresnet50 vor resnet50),
// bei gleicher Laenge der alphabetisch erste.
func (r *Registry) Lookup(tdef string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.lookup(tdef)
}

func (r *Registry) lookup(tdef string) (string, bool) {
	var best string
	for _, name := range r.templates.Keys() {
		if strings.Contains(tdef, name) && len(name) > len(best) {
			best = name
		}
	}
	return best, best != ""
}

// IsKnown prueft ob der Identifier ein bekanntes Vision-Template enthaelt.
func (r *Registry) IsKnown(tdef string) bool {
	_, ok := r.Lookup(tdef)
	return ok
}

// List gibt alle registrierten Template-Namen sortiert zurueck.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.templates.Keys()
}

// Count gibt die Anzahl registrierter Templates zurueck.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.templates.Size()
}

// ============================================================================
// Registry Methoden - Konstruktion
// ============================================================================

// FromTemplate erstellt die Architektur fuer den Identifier.
// Gibt einen RegistryError mit ErrTemplateNotRegistered zurueck wenn nichts passt.
func (r *Registry) FromTemplate(tdef string, params *native.Params, in native.ImageInput) (native.Module, error) {
	r.mu.RLock()
	name, ok := r.lookup(tdef)
	ctor, _ := r.templates.Get(name)
	r.mu.RUnlock()

	if !ok {
		return nil, &RegistryError{
			Op:       "create",
			Template: tdef,
			Err:      ErrTemplateNotRegistered,
		}
	}

	return ctor(name, params, in)
}
