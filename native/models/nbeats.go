// MODUL: nbeats
// ZWECK: N-BEATS Zeitreihen-Architektur mit Stack-Definition aus Kurzcodes
// INPUT: TimeSeriesInput, Stack-Definition ([]string), Backcast-Loss-Koeffizient
// OUTPUT: *NBeats mit aufgeloesten Stack-Breiten
// NEBENEFFEKTE: Keine
// ABHAENGIGKEITEN: native (Base, TimeSeriesInput)
// HINWEISE: Breiten werden relativ zur Feature-Anzahl der Eingabe berechnet

package models

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/ollama/native/native"
)

// ArchNBeats ist der Architektur-Name fuer N-BEATS.
const ArchNBeats = "nbeats"

// DefaultBackcastLossCoef ist der Standard-Koeffizient fuer den Backcast-Loss.
const DefaultBackcastLossCoef = 1.0

// Default-Werte fuer Codes ohne Zahl bzw. fehlende Codes
const (
	defaultTrendBasis   = 2
	defaultGenericWidth = 1
	defaultBlocks       = 3
	defaultHiddenFactor = 10

	// SeasonalityMaxBasis markiert die maximale Anzahl Basisfunktionen
	SeasonalityMaxBasis = -1
)

// DefaultStackDef gibt die kanonische Stack-Definition zurueck:
//   - t2:  ein Trend-Stack mit zwei Basisfunktionen
//   - s:   ein Saisonalitaets-Stack mit maximaler Basis
//   - g3:  ein generischer Stack mit Breite 3*features nach dem Backbone
//   - b3:  drei Bloecke pro Stack
//   - h10: Backbone-Breite 10*features (gemeinsam fuer alle Bloecke)
func DefaultStackDef() []string {
	return []string{"t2", "s", "g3", "b3", "h10"}
}

// ============================================================================
// Fehler-Definitionen
// ============================================================================

var (
	ErrEmptyStackDef      = errors.New("nbeats: stack definition defines no stack")
	ErrInvalidLossCoef    = errors.New("nbeats: backcast loss coefficient must be a non-negative number")
	ErrDuplicateStackCode = errors.New("nbeats: duplicate block or width code")
)

// StackDefError beschreibt einen ungueltigen Stack-Code.
type StackDefError struct {
	Code   string
	Reason string
}

func (e *StackDefError) Error() string {
	return fmt.Sprintf("nbeats: invalid stack code %q: %s", e.Code, e.Reason)
}

// ============================================================================
// Stack-Typen
// ============================================================================

// StackType ist die Art eines N-BEATS Stacks.
type StackType int

const (
	StackTrend StackType = iota
	StackSeasonality
	StackGeneric
)

func (t StackType) String() string {
	switch t {
	case StackTrend:
		return "trend"
	case StackSeasonality:
		return "seasonality"
	case StackGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// Stack ist ein einzelner Stack. Basis ist die Anzahl Basisfunktionen
// (Trend, Saisonalitaet) bzw. der Breitenfaktor (generisch).
type Stack struct {
	Type  StackType
	Basis int
}

// StackDef ist die geparste Stack-Definition.
type StackDef struct {
	Stacks       []Stack
	Blocks       int
	HiddenFactor int
}

// ParseStackDef parst eine Liste von Kurzcodes.
func ParseStackDef(codes []string) (StackDef, error) {
	def := StackDef{Blocks: defaultBlocks, HiddenFactor: defaultHiddenFactor}
	var seenBlocks, seenHidden bool

	for _, code := range codes {
		if code == "" {
			return StackDef{}, &StackDefError{Code: code, Reason: "empty code"}
		}

		n, hasN, err := codeNumber(code)
		if err != nil {
			return StackDef{}, err
		}

		switch code[0] {
		case 't':
			if !hasN {
				n = defaultTrendBasis
			}
			def.Stacks = append(def.Stacks, Stack{Type: StackTrend, Basis: n})
		case 's':
			if !hasN {
				n = SeasonalityMaxBasis
			}
			def.Stacks = append(def.Stacks, Stack{Type: StackSeasonality, Basis: n})
		case 'g':
			if !hasN {
				n = defaultGenericWidth
			}
			def.Stacks = append(def.Stacks, Stack{Type: StackGeneric, Basis: n})
		case 'b':
			if !hasN {
				return StackDef{}, &StackDefError{Code: code, Reason: "block count required"}
			}
			if seenBlocks {
				return StackDef{}, fmt.Errorf("%w: %q", ErrDuplicateStackCode, code)
			}
			seenBlocks = true
			def.Blocks = n
		case 'h':
			if !hasN {
				return StackDef{}, &StackDefError{Code: code, Reason: "width factor required"}
			}
			if seenHidden {
				return StackDef{}, fmt.Errorf("%w: %q", ErrDuplicateStackCode, code)
			}
			seenHidden = true
			def.HiddenFactor = n
		default:
			return StackDef{}, &StackDefError{Code: code, Reason: "unknown stack type"}
		}
	}

	if len(def.Stacks) == 0 {
		return StackDef{}, ErrEmptyStackDef
	}

	return def, nil
}

// codeNumber liest die Zahl hinter dem Typ-Buchstaben.
func codeNumber(code string) (int, bool, error) {
	if len(code) == 1 {
		return 0, false, nil
	}

	n, err := strconv.Atoi(code[1:])
	if err != nil || n <= 0 {
		return 0, false, &StackDefError{Code: code, Reason: "suffix must be a positive integer"}
	}
	return n, true, nil
}

// ============================================================================
// NBeats
// ============================================================================

// NBeats ist eine N-BEATS Instanz.
type NBeats struct {
	native.Base

	Input            native.TimeSeriesInput
	StackDef         []string
	Stacks           []Stack
	Blocks           int
	HiddenDim        int
	BackcastLossCoef float64
}

// NewNBeats erstellt N-BEATS aus Eingabe, Stack-Definition und Loss-Koeffizient.
func NewNBeats(in native.TimeSeriesInput, stackdef []string, backcastLossCoef float64) (*NBeats, error) {
	if backcastLossCoef < 0 || math.IsNaN(backcastLossCoef) || math.IsInf(backcastLossCoef, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLossCoef, backcastLossCoef)
	}

	def, err := ParseStackDef(stackdef)
	if err != nil {
		return nil, err
	}

	return &NBeats{
		Base:             native.NewBase(ArchNBeats),
		Input:            in,
		StackDef:         slices.Clone(stackdef),
		Stacks:           def.Stacks,
		Blocks:           def.Blocks,
		HiddenDim:        def.HiddenFactor * in.Features,
		BackcastLossCoef: backcastLossCoef,
	}, nil
}

// GenericWidth gibt die Breite eines generischen Stacks zurueck.
func (m *NBeats) GenericWidth(s Stack) int {
	if s.Type != StackGeneric {
		return 0
	}
	return s.Basis * m.Input.Features
}

func (m *NBeats) Describe() map[string]any {
	stacks := make([]string, len(m.Stacks))
	for i, s := range m.Stacks {
		switch {
		case s.Type == StackGeneric:
			stacks[i] = fmt.Sprintf("%s(width=%d)", s.Type, m.GenericWidth(s))
		case s.Basis == SeasonalityMaxBasis:
			stacks[i] = fmt.Sprintf("%s(basis=max)", s.Type)
		default:
			stacks[i] = fmt.Sprintf("%s(basis=%d)", s.Type, s.Basis)
		}
	}

	return map[string]any{
		"stackdef":           slices.Clone(m.StackDef),
		"stacks":             stacks,
		"blocks":             m.Blocks,
		"hidden_dim":         m.HiddenDim,
		"backcast_loss_coef": m.BackcastLossCoef,
		"features":           m.Input.Features,
	}
}
