package models

import (
	"errors"
	"slices"
	"testing"

	"github.com/ollama/native/native"
)

func TestNewViT(t *testing.T) {
	tests := []struct {
		name      string
		params    *native.Params
		wantEmbed int
		wantHeads int
		wantPatch int
		wantCls   int
	}{
		{"default", nil, 768, 12, 16, 10},
		{"small", native.NewParams().Set("vit_flavor", "vit_small_patch16"), 384, 6, 16, 10},
		{"large32 mit klassen", native.NewParams().Set("vit_flavor", "vit_large_patch32").Set("nclasses", 2), 1024, 16, 32, 2},
		{"ueberschrieben", native.NewParams().Set("embed_dim", 256).Set("n_heads", 8), 256, 8, 16, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewViT(native.ImageInput{Width: 224, Height: 224, Channels: 3, Classes: 10}, tt.params)
			if err != nil {
				t.Fatal(err)
			}
			if m.EmbedDim != tt.wantEmbed || m.Heads != tt.wantHeads || m.PatchSize != tt.wantPatch || m.Classes != tt.wantCls {
				t.Errorf("ViT = embed %d heads %d patch %d classes %d", m.EmbedDim, m.Heads, m.PatchSize, m.Classes)
			}
			if m.Architecture() != ArchViT {
				t.Errorf("Architecture = %s", m.Architecture())
			}
		})
	}
}

func TestNewViTErrors(t *testing.T) {
	tests := []struct {
		name   string
		params *native.Params
		want   error
	}{
		{"unbekannter flavor", native.NewParams().Set("vit_flavor", "vit_giant_patch14"), ErrUnknownFlavor},
		{"nicht teilbar", native.NewParams().Set("embed_dim", 100).Set("n_heads", 12), ErrInvalidOption},
		{"null heads", native.NewParams().Set("n_heads", 0), ErrInvalidOption},
		{"realformer string", native.NewParams().Set("realformer", "true"), native.ErrDecode},
		{"flavor zahl", native.NewParams().Set("vit_flavor", 16), native.ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewViT(native.ImageInput{}, tt.params); !errors.Is(err, tt.want) {
				t.Errorf("erwartet %v, bekam %v", tt.want, err)
			}
		})
	}
}

func TestViTFlavorsSorted(t *testing.T) {
	flavors := ViTFlavors()
	if !slices.IsSorted(flavors) || !slices.Contains(flavors, DefaultViTFlavor) {
		t.Errorf("ViTFlavors = %v", flavors)
	}
}

func TestNewVisformer(t *testing.T) {
	m, err := NewVisformer(native.ImageInput{Classes: 1000}, native.NewParams().Set("visformer_flavor", "visformer_small"))
	if err != nil {
		t.Fatal(err)
	}
	if m.EmbedDim != 384 || m.Classes != 1000 || m.Dropout != 0 {
		t.Errorf("Visformer = %+v", m)
	}
	if d := m.Describe()["depth"]; !slices.Equal(d.([]int), []int{7, 4, 4}) {
		t.Errorf("depth = %v", d)
	}

	if _, err := NewVisformer(native.ImageInput{}, native.NewParams().Set("visformer_flavor", "visformer_huge")); !errors.Is(err, ErrUnknownFlavor) {
		t.Errorf("erwartet ErrUnknownFlavor, bekam %v", err)
	}
}
