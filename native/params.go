// Package native - Datenmodell fuer die Native-Architektur-Factory.
//
// MODUL: params
// ZWECK: Geordneter, dynamisch typisierter Parameter-Beutel fuer Template-Optionen
// INPUT: Go-Werte, JSON- oder YAML-Dokumente
// OUTPUT: Params mit typisierten Zugriffsfunktionen
// NEBENEFFEKTE: Keine
// ABHAENGIGKEITEN: wk8/go-ordered-map/v2, gopkg.in/yaml.v3
// HINWEISE: Fehlende Keys liefern Defaults, falsche Typen liefern immer DecodeError
package native

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// ============================================================================
// Fehler-Definitionen
// ============================================================================

// ErrDecode ist der Sentinel fuer alle Parameter-Decodierfehler.
var ErrDecode = errors.New("native: parameter decode error")

// DecodeError beschreibt einen Parameter mit falschem Typ oder einen
// fehlenden Pflicht-Parameter.
type DecodeError struct {
	Key     string // Parameter-Name
	Want    string // erwarteter Typ
	Got     any    // tatsaechlicher Wert
	Missing bool   // Pflicht-Parameter fehlt
}

// Error implementiert das error Interface.
func (e *DecodeError) Error() string {
	if e.Missing {
		return fmt.Sprintf("native: parameter %q is required (%s)", e.Key, e.Want)
	}
	return fmt.Sprintf("native: parameter %q must be of type %s, got %T", e.Key, e.Want, e.Got)
}

// Is erlaubt errors.Is(err, ErrDecode).
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// ============================================================================
// Params - Geordneter Parameter-Beutel
// ============================================================================

// Params ist eine geordnete Abbildung Parameter-Name -> Wert.
// Ein nil *Params verhaelt sich wie ein leerer Beutel.
type Params struct {
	om *orderedmap.OrderedMap[string, any]
}

// NewParams erstellt einen leeren Parameter-Beutel.
func NewParams() *Params {
	return &Params{om: orderedmap.New[string, any]()}
}

// ParamsFromMap uebernimmt eine Go-Map. Da Maps keine Reihenfolge haben,
// werden die Keys sortiert eingefuegt.
func ParamsFromMap(m map[string]any) *Params {
	p := NewParams()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		p.Set(k, m[k])
	}
	return p
}

// ParseParamsJSON liest ein JSON-Objekt unter Beibehaltung der Key-Reihenfolge.
func ParseParamsJSON(data []byte) (*Params, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return NewParams(), nil
	}

	om := orderedmap.New[string, any]()
	if err := om.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("native: invalid params json: %w", err)
	}
	return &Params{om: om}, nil
}

// ParseParamsYAML liest ein YAML-Mapping unter Beibehaltung der Key-Reihenfolge.
// Verschachtelte Mappings werden zu *Params.
func ParseParamsYAML(data []byte) (*Params, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("native: invalid params yaml: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return NewParams(), nil
	}
	return paramsFromNode(doc.Content[0])
}

func paramsFromNode(n *yaml.Node) (*Params, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("native: params yaml must be a mapping, got %s", n.Tag)
	}

	p := NewParams()
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		if value.Kind == yaml.MappingNode {
			sub, err := paramsFromNode(value)
			if err != nil {
				return nil, err
			}
			p.Set(key.Value, sub)
			continue
		}

		var v any
		if err := value.Decode(&v); err != nil {
			return nil, fmt.Errorf("native: params yaml key %q: %w", key.Value, err)
		}
		p.Set(key.Value, v)
	}
	return p, nil
}

// Set setzt einen Wert. Existierende Keys behalten ihre Position.
func (p *Params) Set(key string, value any) *Params {
	if p.om == nil {
		p.om = orderedmap.New[string, any]()
	}
	p.om.Set(key, value)
	return p
}

// Get gibt den Rohwert zurueck.
func (p *Params) Get(key string) (any, bool) {
	if p == nil || p.om == nil {
		return nil, false
	}
	return p.om.Get(key)
}

// Has prueft ob ein Key vorhanden ist.
func (p *Params) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Len gibt die Anzahl der Eintraege zurueck.
func (p *Params) Len() int {
	if p == nil || p.om == nil {
		return 0
	}
	return p.om.Len()
}

// Keys gibt die Keys in Einfuege-Reihenfolge zurueck.
func (p *Params) Keys() []string {
	keys := make([]string, 0, p.Len())
	if p.Len() == 0 {
		return keys
	}
	for pair := p.om.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Map gibt eine flache Kopie als Go-Map zurueck. Verschachtelte *Params
// werden rekursiv konvertiert.
func (p *Params) Map() map[string]any {
	m := make(map[string]any, p.Len())
	if p.Len() == 0 {
		return m
	}
	for pair := p.om.Oldest(); pair != nil; pair = pair.Next() {
		if sub, ok := pair.Value.(*Params); ok {
			m[pair.Key] = sub.Map()
			continue
		}
		m[pair.Key] = pair.Value
	}
	return m
}

// MarshalJSON serialisiert in Einfuege-Reihenfolge.
func (p *Params) MarshalJSON() ([]byte, error) {
	if p.Len() == 0 {
		return []byte("{}"), nil
	}
	return p.om.MarshalJSON()
}

// UnmarshalJSON implementiert json.Unmarshaler.
func (p *Params) UnmarshalJSON(data []byte) error {
	parsed, err := ParseParamsJSON(data)
	if err != nil {
		return err
	}
	*p = *parsed
	return nil
}

// ============================================================================
// Typisierte Zugriffe - Pflicht-Parameter
// ============================================================================

// Strings liest eine Liste von Strings.
func (p *Params) Strings(key string) ([]string, error) {
	v, ok := p.Get(key)
	if !ok {
		return nil, &DecodeError{Key: key, Want: "[]string", Missing: true}
	}
	return asStrings(key, v)
}

// Float64 liest eine Zahl.
func (p *Params) Float64(key string) (float64, error) {
	v, ok := p.Get(key)
	if !ok {
		return 0, &DecodeError{Key: key, Want: "number", Missing: true}
	}
	return asFloat64(key, v)
}

// Int liest eine ganze Zahl. Gebrochene Werte sind ein Fehler.
func (p *Params) Int(key string) (int, error) {
	v, ok := p.Get(key)
	if !ok {
		return 0, &DecodeError{Key: key, Want: "integer", Missing: true}
	}
	return asInt(key, v)
}

// Bool liest einen Wahrheitswert.
func (p *Params) Bool(key string) (bool, error) {
	v, ok := p.Get(key)
	if !ok {
		return false, &DecodeError{Key: key, Want: "boolean", Missing: true}
	}
	b, ok := v.(bool)
	if !ok {
		return false, &DecodeError{Key: key, Want: "boolean", Got: v}
	}
	return b, nil
}

// Str liest einen String.
func (p *Params) Str(key string) (string, error) {
	v, ok := p.Get(key)
	if !ok {
		return "", &DecodeError{Key: key, Want: "string", Missing: true}
	}
	s, ok := v.(string)
	if !ok {
		return "", &DecodeError{Key: key, Want: "string", Got: v}
	}
	return s, nil
}

// Sub liest einen verschachtelten Parameter-Beutel.
func (p *Params) Sub(key string) (*Params, error) {
	v, ok := p.Get(key)
	if !ok {
		return nil, &DecodeError{Key: key, Want: "object", Missing: true}
	}
	return asParams(key, v)
}

// ============================================================================
// Typisierte Zugriffe - mit Default
// ============================================================================

// StringsOr liest eine String-Liste oder gibt def zurueck wenn der Key fehlt.
func (p *Params) StringsOr(key string, def []string) ([]string, error) {
	if !p.Has(key) {
		return def, nil
	}
	return p.Strings(key)
}

// Float64Or liest eine Zahl oder gibt def zurueck wenn der Key fehlt.
func (p *Params) Float64Or(key string, def float64) (float64, error) {
	if !p.Has(key) {
		return def, nil
	}
	return p.Float64(key)
}

// IntOr liest eine ganze Zahl oder gibt def zurueck wenn der Key fehlt.
func (p *Params) IntOr(key string, def int) (int, error) {
	if !p.Has(key) {
		return def, nil
	}
	return p.Int(key)
}

// BoolOr liest einen Wahrheitswert oder gibt def zurueck wenn der Key fehlt.
func (p *Params) BoolOr(key string, def bool) (bool, error) {
	if !p.Has(key) {
		return def, nil
	}
	return p.Bool(key)
}

// StrOr liest einen String oder gibt def zurueck wenn der Key fehlt.
func (p *Params) StrOr(key string, def string) (string, error) {
	if !p.Has(key) {
		return def, nil
	}
	return p.Str(key)
}

// SubOr liest einen verschachtelten Beutel oder gibt einen leeren zurueck.
func (p *Params) SubOr(key string) (*Params, error) {
	if !p.Has(key) {
		return NewParams(), nil
	}
	return p.Sub(key)
}

// ============================================================================
// Konvertierungen
// ============================================================================

func asStrings(key string, v any) ([]string, error) {
	switch t := v.(type) {
	case []string:
		return slices.Clone(t), nil
	case []any:
		// JSON und YAML liefern []any, nicht []string
		out := make([]string, len(t))
		for i, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, &DecodeError{Key: key, Want: "[]string", Got: v}
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, &DecodeError{Key: key, Want: "[]string", Got: v}
	}
}

func asFloat64(key string, v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int8:
		return float64(t), nil
	case int16:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case uint:
		return float64(t), nil
	case uint8:
		return float64(t), nil
	case uint16:
		return float64(t), nil
	case uint32:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, &DecodeError{Key: key, Want: "number", Got: v}
		}
		return f, nil
	default:
		return 0, &DecodeError{Key: key, Want: "number", Got: v}
	}
}

func asInt(key string, v any) (int, error) {
	f, err := asFloat64(key, v)
	if err != nil {
		return 0, &DecodeError{Key: key, Want: "integer", Got: v}
	}
	// float64(math.MaxInt) rundet auf 2^63, das selbst nicht mehr in int passt
	if f != math.Trunc(f) || f < math.MinInt || f >= math.MaxInt {
		return 0, &DecodeError{Key: key, Want: "integer", Got: v}
	}
	return int(f), nil
}

func asParams(key string, v any) (*Params, error) {
	switch t := v.(type) {
	case *Params:
		return t, nil
	case map[string]any:
		return ParamsFromMap(t), nil
	case *orderedmap.OrderedMap[string, any]:
		return &Params{om: t}, nil
	default:
		return nil, &DecodeError{Key: key, Want: "object", Got: v}
	}
}
