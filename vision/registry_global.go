// Package vision - Globale Registry-Instanz und Package-Level Funktionen.
//
// MODUL: registry_global
// ZWECK: Stellt eine globale DefaultRegistry mit dem Torchvision-Katalog bereit
// INPUT: Template-Identifier, Parameter, ImageInput
// OUTPUT: Konstruierte Module
// NEBENEFFEKTE: Aendert globale DefaultRegistry bei Register/Unregister
// ABHAENGIGKEITEN: registry.go (Registry), torchvision.go
// HINWEISE: Eigene Templates koennen via init() zusaetzlich registriert werden
package vision

import "github.com/ollama/native/native"

// DefaultRegistry ist die globale Registry, vorbelegt mit dem Torchvision-Katalog.
var DefaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterTorchvision(r)
	return r
}

// ============================================================================
// Package-Level Convenience-Funktionen
// ============================================================================

// Register registriert einen Constructor in der DefaultRegistry.
func Register(name string, ctor Constructor) {
	DefaultRegistry.Register(name, ctor)
}

// IsVisionTemplate prueft ob der Identifier in der DefaultRegistry bekannt ist.
func IsVisionTemplate(tdef string) bool {
	return DefaultRegistry.IsKnown(tdef)
}

// FromTemplate erstellt eine Architektur aus der DefaultRegistry.
func FromTemplate(tdef string, params *native.Params, in native.ImageInput) (native.Module, error) {
	return DefaultRegistry.FromTemplate(tdef, params, in)
}

// Templates gibt alle Templates der DefaultRegistry sortiert zurueck.
func Templates() []string {
	return DefaultRegistry.List()
}
