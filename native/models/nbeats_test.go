package models

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ollama/native/native"
)

func TestParseStackDefDefault(t *testing.T) {
	def, err := ParseStackDef(DefaultStackDef())
	if err != nil {
		t.Fatal(err)
	}

	want := StackDef{
		Stacks: []Stack{
			{Type: StackTrend, Basis: 2},
			{Type: StackSeasonality, Basis: SeasonalityMaxBasis},
			{Type: StackGeneric, Basis: 3},
		},
		Blocks:       3,
		HiddenFactor: 10,
	}
	if diff := cmp.Diff(want, def); diff != "" {
		t.Errorf("ParseStackDef (-want +got):\n%s", diff)
	}
}

func TestParseStackDef(t *testing.T) {
	tests := []struct {
		name  string
		codes []string
		want  StackDef
	}{
		{"kurzformen", []string{"t", "g"}, StackDef{
			Stacks:       []Stack{{Type: StackTrend, Basis: 2}, {Type: StackGeneric, Basis: 1}},
			Blocks:       3,
			HiddenFactor: 10,
		}},
		{"saisonalitaet mit basis", []string{"s4", "b2", "h5"}, StackDef{
			Stacks:       []Stack{{Type: StackSeasonality, Basis: 4}},
			Blocks:       2,
			HiddenFactor: 5,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStackDef(tt.codes)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseStackDef (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseStackDefErrors(t *testing.T) {
	tests := []struct {
		name  string
		codes []string
		want  error
	}{
		{"leer", nil, ErrEmptyStackDef},
		{"nur breiten", []string{"b3", "h10"}, ErrEmptyStackDef},
		{"doppelte bloecke", []string{"t2", "b3", "b4"}, ErrDuplicateStackCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseStackDef(tt.codes); !errors.Is(err, tt.want) {
				t.Errorf("erwartet %v, bekam %v", tt.want, err)
			}
		})
	}

	for _, code := range []string{"", "x2", "t0", "g-1", "b", "h", "tfoo"} {
		t.Run("code "+code, func(t *testing.T) {
			var serr *StackDefError
			if _, err := ParseStackDef([]string{code}); !errors.As(err, &serr) {
				t.Errorf("erwartet StackDefError, bekam %v", err)
			}
		})
	}
}

func TestNewNBeats(t *testing.T) {
	in := native.TimeSeriesInput{Features: 4}
	m, err := NewNBeats(in, DefaultStackDef(), DefaultBackcastLossCoef)
	if err != nil {
		t.Fatal(err)
	}

	if m.Architecture() != ArchNBeats {
		t.Errorf("Architecture = %s", m.Architecture())
	}
	if m.HiddenDim != 40 {
		t.Errorf("HiddenDim = %d, erwartet 40", m.HiddenDim)
	}
	if w := m.GenericWidth(m.Stacks[2]); w != 12 {
		t.Errorf("GenericWidth = %d, erwartet 12", w)
	}
	if w := m.GenericWidth(m.Stacks[0]); w != 0 {
		t.Errorf("GenericWidth(trend) = %d, erwartet 0", w)
	}

	want := []string{"trend(basis=2)", "seasonality(basis=max)", "generic(width=12)"}
	if diff := cmp.Diff(want, m.Describe()["stacks"]); diff != "" {
		t.Errorf("stacks (-want +got):\n%s", diff)
	}
}

func TestNewNBeatsLossCoef(t *testing.T) {
	for _, coef := range []float64{-0.1, math.NaN(), math.Inf(1)} {
		if _, err := NewNBeats(native.TimeSeriesInput{}, DefaultStackDef(), coef); !errors.Is(err, ErrInvalidLossCoef) {
			t.Errorf("coef %v: erwartet ErrInvalidLossCoef, bekam %v", coef, err)
		}
	}

	if _, err := NewNBeats(native.TimeSeriesInput{}, DefaultStackDef(), 0); err != nil {
		t.Errorf("coef 0 muss erlaubt sein: %v", err)
	}
}
