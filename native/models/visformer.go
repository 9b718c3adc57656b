package models

import (
	"fmt"

	"github.com/ollama/native/native"
)

// ArchVisformer ist der Architektur-Name fuer Visformer.
const ArchVisformer = "visformer"

// DefaultVisformerFlavor wird verwendet wenn visformer_flavor fehlt.
const DefaultVisformerFlavor = "visformer_tiny"

type visformerFlavor struct {
	InitChannels int
	EmbedDim     int
	Heads        int
	Depth        [3]int
}

var visformerFlavors = map[string]visformerFlavor{
	"visformer_tiny":  {InitChannels: 16, EmbedDim: 192, Heads: 3, Depth: [3]int{7, 4, 4}},
	"visformer_small": {InitChannels: 32, EmbedDim: 384, Heads: 6, Depth: [3]int{7, 4, 4}},
}

// Visformer ist eine Visformer Instanz.
type Visformer struct {
	native.Base

	Input        native.ImageInput
	Flavor       string
	InitChannels int
	EmbedDim     int
	Heads        int
	Depth        [3]int
	Classes      int
	Dropout      float64
}

// NewVisformer erstellt einen Visformer.
func NewVisformer(in native.ImageInput, params *native.Params) (*Visformer, error) {
	name, err := params.StrOr("visformer_flavor", DefaultVisformerFlavor)
	if err != nil {
		return nil, err
	}

	flavor, ok := visformerFlavors[name]
	if !ok {
		return nil, fmt.Errorf("%w: visformer_flavor %q", ErrUnknownFlavor, name)
	}

	m := &Visformer{
		Base:         native.NewBase(ArchVisformer),
		Input:        in,
		Flavor:       name,
		InitChannels: flavor.InitChannels,
		EmbedDim:     flavor.EmbedDim,
		Heads:        flavor.Heads,
		Depth:        flavor.Depth,
	}

	if m.Dropout, err = params.Float64Or("dropout", 0.0); err != nil {
		return nil, err
	}
	if m.Classes, err = Classes(in, params); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Visformer) Describe() map[string]any {
	return map[string]any{
		"visformer_flavor": m.Flavor,
		"init_channels":    m.InitChannels,
		"embed_dim":        m.EmbedDim,
		"n_heads":          m.Heads,
		"depth":            m.Depth[:],
		"nclasses":         m.Classes,
		"dropout":          m.Dropout,
	}
}
