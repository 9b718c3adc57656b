// input.go - Eingabe-Beschreibungen pro Modalitaet
//
// Enthaelt: Modality, Input, TimeSeriesInput, ImageInput, VideoInput, TextInput
package native

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Modality ist die Kategorie der Eingabedaten eines Modells.
type Modality int

const (
	ModalityUnknown Modality = iota
	ModalityTimeSeries
	ModalityImage
	ModalityVideo
	ModalityText
)

func (m Modality) String() string {
	switch m {
	case ModalityTimeSeries:
		return "timeseries"
	case ModalityImage:
		return "image"
	case ModalityVideo:
		return "video"
	case ModalityText:
		return "text"
	default:
		return "unknown"
	}
}

// ParseModality konvertiert einen String zu Modality.
func ParseModality(s string) (Modality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "timeseries", "csvts", "ts":
		return ModalityTimeSeries, nil
	case "image", "img":
		return ModalityImage, nil
	case "video":
		return ModalityVideo, nil
	case "text", "txt":
		return ModalityText, nil
	default:
		return ModalityUnknown, fmt.Errorf("native: unknown modality %q", s)
	}
}

// Input beschreibt die Eingabe eines Modells. Die Factory liest nur die
// Modalitaet, alle anderen Felder gehen unveraendert an die Konstruktoren.
type Input interface {
	Modality() Modality
}

// TimeSeriesInput beschreibt tabellarische Zeitreihen.
type TimeSeriesInput struct {
	Features          int      `json:"features"` // Anzahl Spalten pro Zeitschritt (datadim)
	Labels            []string `json:"labels,omitempty"`
	BackcastTimesteps int      `json:"backcast_timesteps,omitempty"`
	ForecastTimesteps int      `json:"forecast_timesteps,omitempty"`
}

func (TimeSeriesInput) Modality() Modality { return ModalityTimeSeries }

// ImageInput beschreibt Einzelbilder.
type ImageInput struct {
	Width    int `json:"width"`
	Height   int `json:"height"`
	Channels int `json:"channels"`
	Classes  int `json:"classes,omitempty"`
}

func (ImageInput) Modality() Modality { return ModalityImage }

// VideoInput beschreibt Videos als Folge von Frames.
type VideoInput struct {
	Frames      int `json:"frames"`
	FrameWidth  int `json:"frame_width"`
	FrameHeight int `json:"frame_height"`
	Channels    int `json:"channels"`
	Classes     int `json:"classes,omitempty"`
}

func (VideoInput) Modality() Modality { return ModalityVideo }

// AsImage interpretiert die Frame-Beschreibung als Bild-Eingabe.
func (v VideoInput) AsImage() ImageInput {
	return ImageInput{
		Width:    v.FrameWidth,
		Height:   v.FrameHeight,
		Channels: v.Channels,
		Classes:  v.Classes,
	}
}

// TextInput beschreibt Token-Sequenzen.
type TextInput struct {
	Sequence  int `json:"sequence"`
	VocabSize int `json:"vocab_size,omitempty"`
}

func (TextInput) Modality() Modality { return ModalityText }

// DecodeInput liest die JSON-Beschreibung der Eingabe fuer eine Modalitaet.
// Leere Daten ergeben die Null-Beschreibung.
func DecodeInput(m Modality, data []byte) (Input, error) {
	var in Input
	switch m {
	case ModalityTimeSeries:
		in = &TimeSeriesInput{}
	case ModalityImage:
		in = &ImageInput{}
	case ModalityVideo:
		in = &VideoInput{}
	case ModalityText:
		in = &TextInput{}
	default:
		return nil, fmt.Errorf("native: unknown modality %v", m)
	}

	if data = bytes.TrimSpace(data); len(data) > 0 && !bytes.Equal(data, []byte("null")) {
		if err := json.Unmarshal(data, in); err != nil {
			return nil, fmt.Errorf("native: invalid %s input: %w", m, err)
		}
	}

	switch in := in.(type) {
	case *TimeSeriesInput:
		return *in, nil
	case *ImageInput:
		return *in, nil
	case *VideoInput:
		return *in, nil
	default:
		return *in.(*TextInput), nil
	}
}
