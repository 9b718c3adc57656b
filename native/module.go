package native

import "github.com/google/uuid"

// Module ist eine konstruierte Architektur-Instanz. Der Aufrufer besitzt
// jede zurueckgegebene Instanz allein.
type Module interface {
	// Architecture gibt den Namen der Architektur-Familie zurueck
	Architecture() string

	// ID identifiziert genau diese Instanz
	ID() uuid.UUID

	// Describe gibt die aufgeloesten Hyperparameter zurueck
	Describe() map[string]any
}

// Base implementiert gemeinsame Felder fuer alle Architekturen.
type Base struct {
	id   uuid.UUID
	arch string
}

// NewBase erstellt eine Base mit frischer Instanz-ID.
func NewBase(arch string) Base {
	return Base{id: uuid.New(), arch: arch}
}

// Architecture gibt den Architektur-Namen zurueck
func (b Base) Architecture() string {
	return b.arch
}

// ID gibt die Instanz-ID zurueck
func (b Base) ID() uuid.UUID {
	return b.id
}
