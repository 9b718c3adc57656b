// vit.go - Vision Transformer
//
// Flavors folgen dem Schema vit_<groesse>_patch<n>. Einzelne Dimensionen
// koennen per embed_dim, n_layers und n_heads ueberschrieben werden.
package models

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/ollama/native/native"
)

// ArchViT ist der Architektur-Name fuer den Vision Transformer.
const ArchViT = "vit"

// DefaultViTFlavor wird verwendet wenn vit_flavor fehlt.
const DefaultViTFlavor = "vit_base_patch16"

// ErrUnknownFlavor wird fuer unbekannte Flavor-Namen zurueckgegeben.
var ErrUnknownFlavor = errors.New("models: unknown flavor")

type vitFlavor struct {
	PatchSize int
	EmbedDim  int
	Layers    int
	Heads     int
}

var vitFlavors = map[string]vitFlavor{
	"vit_tiny_patch16":  {PatchSize: 16, EmbedDim: 192, Layers: 12, Heads: 3},
	"vit_small_patch16": {PatchSize: 16, EmbedDim: 384, Layers: 12, Heads: 6},
	"vit_base_patch16":  {PatchSize: 16, EmbedDim: 768, Layers: 12, Heads: 12},
	"vit_base_patch32":  {PatchSize: 32, EmbedDim: 768, Layers: 12, Heads: 12},
	"vit_large_patch16": {PatchSize: 16, EmbedDim: 1024, Layers: 24, Heads: 16},
	"vit_large_patch32": {PatchSize: 32, EmbedDim: 1024, Layers: 24, Heads: 16},
	"vit_huge_patch16":  {PatchSize: 16, EmbedDim: 1280, Layers: 32, Heads: 16},
	"vit_huge_patch32":  {PatchSize: 32, EmbedDim: 1280, Layers: 32, Heads: 16},
}

// ViTFlavors gibt die bekannten Flavors sortiert zurueck.
func ViTFlavors() []string {
	return slices.Sorted(maps.Keys(vitFlavors))
}

// ViT ist eine Vision Transformer Instanz.
type ViT struct {
	native.Base

	Input      native.ImageInput
	Flavor     string
	PatchSize  int
	EmbedDim   int
	Layers     int
	Heads      int
	Classes    int
	Realformer bool
	Dropout    float64
}

// NewViT erstellt einen Vision Transformer.
func NewViT(in native.ImageInput, params *native.Params) (*ViT, error) {
	name, err := params.StrOr("vit_flavor", DefaultViTFlavor)
	if err != nil {
		return nil, err
	}

	flavor, ok := vitFlavors[name]
	if !ok {
		return nil, fmt.Errorf("%w: vit_flavor %q", ErrUnknownFlavor, name)
	}

	m := &ViT{
		Base:      native.NewBase(ArchViT),
		Input:     in,
		Flavor:    name,
		PatchSize: flavor.PatchSize,
	}

	if m.EmbedDim, err = params.IntOr("embed_dim", flavor.EmbedDim); err != nil {
		return nil, err
	}
	if m.Layers, err = params.IntOr("n_layers", flavor.Layers); err != nil {
		return nil, err
	}
	if m.Heads, err = params.IntOr("n_heads", flavor.Heads); err != nil {
		return nil, err
	}
	if err := positive("n_heads", m.Heads); err != nil {
		return nil, err
	}
	if m.EmbedDim%m.Heads != 0 {
		return nil, fmt.Errorf("%w: embed_dim %d not divisible by %d heads", ErrInvalidOption, m.EmbedDim, m.Heads)
	}
	if m.Realformer, err = params.BoolOr("realformer", false); err != nil {
		return nil, err
	}
	if m.Dropout, err = params.Float64Or("dropout", 0.1); err != nil {
		return nil, err
	}
	if m.Classes, err = Classes(in, params); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *ViT) Describe() map[string]any {
	return map[string]any{
		"vit_flavor": m.Flavor,
		"patch_size": m.PatchSize,
		"embed_dim":  m.EmbedDim,
		"n_layers":   m.Layers,
		"n_heads":    m.Heads,
		"nclasses":   m.Classes,
		"realformer": m.Realformer,
		"dropout":    m.Dropout,
	}
}

// Classes liest nclasses aus den Parametern, Default ist die Klassenanzahl der Eingabe.
func Classes(in native.ImageInput, params *native.Params) (int, error) {
	return params.IntOr("nclasses", in.Classes)
}
