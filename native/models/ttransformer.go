// ttransformer.go - Transformer fuer Zeitreihen
//
// Decodiert seine Hyperparameter selbst aus dem Parameter-Beutel:
// positional_encoding, embed, encoder, decoder und autoreg.
package models

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/ollama/native/native"
)

// ArchTTransformer ist der Architektur-Name fuer den Zeitreihen-Transformer.
const ArchTTransformer = "ttransformer"

// ErrInvalidOption wird fuer unbekannte Enum-Werte und ungueltige Groessen verwendet.
var ErrInvalidOption = errors.New("models: invalid option")

// PositionalEncoding konfiguriert die Positionskodierung.
type PositionalEncoding struct {
	Type  string // "sincos", "naive" oder "none"
	Learn bool
	Dim   int
}

// Embedding konfiguriert die Einbettung der Zeitschritte.
type Embedding struct {
	Layers     int
	Activation string // "relu", "gelu" oder "siren"
	Dim        int
	Type       string // "step", "serie" oder "all"
	Dropout    float64
}

// Encoder konfiguriert den Transformer-Encoder.
type Encoder struct {
	Heads      int
	Layers     int
	HiddenDim  int
	Activation string
	Dropout    float64
}

// Decoder konfiguriert den Ausgabe-Decoder.
type Decoder struct {
	Type    string // "simple" oder "transformer"
	Heads   int
	Layers  int
	Dropout float64
}

// TTransformer ist eine Zeitreihen-Transformer Instanz.
type TTransformer struct {
	native.Base

	Input              native.TimeSeriesInput
	PositionalEncoding PositionalEncoding
	Embed              Embedding
	Encoder            Encoder
	Decoder            Decoder
	Autoreg            bool
}

// NewTTransformer erstellt einen Zeitreihen-Transformer.
func NewTTransformer(in native.TimeSeriesInput, params *native.Params, logger *slog.Logger) (*TTransformer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	m := &TTransformer{Base: native.NewBase(ArchTTransformer), Input: in}

	pe, err := params.SubOr("positional_encoding")
	if err != nil {
		return nil, err
	}
	if m.PositionalEncoding, err = decodePositionalEncoding(pe); err != nil {
		return nil, err
	}

	embed, err := params.SubOr("embed")
	if err != nil {
		return nil, err
	}
	if m.Embed, err = decodeEmbedding(embed); err != nil {
		return nil, err
	}

	enc, err := params.SubOr("encoder")
	if err != nil {
		return nil, err
	}
	if m.Encoder, err = decodeEncoder(enc); err != nil {
		return nil, err
	}

	dec, err := params.SubOr("decoder")
	if err != nil {
		return nil, err
	}
	if m.Decoder, err = decodeDecoder(dec); err != nil {
		return nil, err
	}

	if m.Autoreg, err = params.BoolOr("autoreg", false); err != nil {
		return nil, err
	}

	if m.Embed.Dim%m.Encoder.Heads != 0 {
		return nil, fmt.Errorf("%w: embed dim %d not divisible by %d encoder heads", ErrInvalidOption, m.Embed.Dim, m.Encoder.Heads)
	}

	logger.Debug("ttransformer configured",
		"features", in.Features,
		"embed_dim", m.Embed.Dim,
		"encoder_layers", m.Encoder.Layers,
		"encoder_heads", m.Encoder.Heads,
		"decoder", m.Decoder.Type,
		"autoreg", m.Autoreg)

	return m, nil
}

func decodePositionalEncoding(p *native.Params) (pe PositionalEncoding, err error) {
	if pe.Type, err = p.StrOr("type", "sincos"); err != nil {
		return
	}
	if err = oneOf("positional_encoding.type", pe.Type, "sincos", "naive", "none"); err != nil {
		return
	}
	if pe.Learn, err = p.BoolOr("learn", false); err != nil {
		return
	}
	if pe.Dim, err = p.IntOr("dim", 8); err != nil {
		return
	}
	err = positive("positional_encoding.dim", pe.Dim)
	return
}

func decodeEmbedding(p *native.Params) (e Embedding, err error) {
	if e.Layers, err = p.IntOr("layers", 3); err != nil {
		return
	}
	if e.Activation, err = p.StrOr("activation", "relu"); err != nil {
		return
	}
	if err = oneOf("embed.activation", e.Activation, "relu", "gelu", "siren"); err != nil {
		return
	}
	if e.Dim, err = p.IntOr("dim", 32); err != nil {
		return
	}
	if err = positive("embed.dim", e.Dim); err != nil {
		return
	}
	if e.Type, err = p.StrOr("type", "step"); err != nil {
		return
	}
	if err = oneOf("embed.type", e.Type, "step", "serie", "all"); err != nil {
		return
	}
	e.Dropout, err = p.Float64Or("dropout", 0.1)
	return
}

func decodeEncoder(p *native.Params) (e Encoder, err error) {
	if e.Heads, err = p.IntOr("heads", 8); err != nil {
		return
	}
	if err = positive("encoder.heads", e.Heads); err != nil {
		return
	}
	if e.Layers, err = p.IntOr("layers", 1); err != nil {
		return
	}
	if e.HiddenDim, err = p.IntOr("hidden_dim", 512); err != nil {
		return
	}
	if e.Activation, err = p.StrOr("activation", "relu"); err != nil {
		return
	}
	if err = oneOf("encoder.activation", e.Activation, "relu", "gelu"); err != nil {
		return
	}
	e.Dropout, err = p.Float64Or("dropout", 0.1)
	return
}

func decodeDecoder(p *native.Params) (d Decoder, err error) {
	if d.Type, err = p.StrOr("type", "simple"); err != nil {
		return
	}
	if err = oneOf("decoder.type", d.Type, "simple", "transformer"); err != nil {
		return
	}
	if d.Heads, err = p.IntOr("heads", 8); err != nil {
		return
	}
	if d.Layers, err = p.IntOr("layers", 1); err != nil {
		return
	}
	d.Dropout, err = p.Float64Or("dropout", 0.1)
	return
}

func oneOf(key, value string, allowed ...string) error {
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("%w: %s %q, must be one of %v", ErrInvalidOption, key, value, allowed)
	}
	return nil
}

func positive(key string, n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %s must be > 0, got %d", ErrInvalidOption, key, n)
	}
	return nil
}

func (m *TTransformer) Describe() map[string]any {
	return map[string]any{
		"features": m.Input.Features,
		"positional_encoding": map[string]any{
			"type":  m.PositionalEncoding.Type,
			"learn": m.PositionalEncoding.Learn,
			"dim":   m.PositionalEncoding.Dim,
		},
		"embed": map[string]any{
			"layers":     m.Embed.Layers,
			"activation": m.Embed.Activation,
			"dim":        m.Embed.Dim,
			"type":       m.Embed.Type,
			"dropout":    m.Embed.Dropout,
		},
		"encoder": map[string]any{
			"heads":      m.Encoder.Heads,
			"layers":     m.Encoder.Layers,
			"hidden_dim": m.Encoder.HiddenDim,
			"activation": m.Encoder.Activation,
			"dropout":    m.Encoder.Dropout,
		},
		"decoder": map[string]any{
			"type":    m.Decoder.Type,
			"heads":   m.Decoder.Heads,
			"layers":  m.Decoder.Layers,
			"dropout": m.Decoder.Dropout,
		},
		"autoreg": m.Autoreg,
	}
}
