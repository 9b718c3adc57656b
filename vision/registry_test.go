// MODUL: registry_test
// ZWECK: Tests fuer Template-Registry und Torchvision-Katalog
// INPUT: Template-Identifier, Parameter
// OUTPUT: Testresultate
// NEBENEFFEKTE: keine (eigene Registry pro Test)
// ABHAENGIGKEITEN: testing, go-cmp, native
// HINWEISE: Prueft Containment-Lookup mit laengstem Treffer

package vision

import (
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ollama/native/native"
)

// stubConstructor merkt sich den registrierten Namen
func stubConstructor(name string, _ *native.Params, in native.ImageInput) (native.Module, error) {
	return &Model{Base: native.NewBase(name), Input: in}, nil
}

func TestRegistryLookupLongestMatch(t *testing.T) {
	r := NewRegistry()
	RegisterTorchvision(r)

	tests := []struct {
		tdef string
		want string
		ok   bool
	}{
		{"resnet50", "resnet50", true},
		{"wideresnet50_finetune", "wideresnet50", true},
		{"my_vgg16_bn_run", "vgg16_bn", true},
		{"vgg16", "vgg16", true},
		{"resnext101_32x8d", "resnext101", true},
		{"densenet121", "densenet121", true},
		{"transformer", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.tdef, func(t *testing.T) {
			got, ok := r.Lookup(tt.tdef)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Lookup(%q) = (%q, %v), erwartet (%q, %v)", tt.tdef, got, ok, tt.want, tt.ok)
			}
			if r.IsKnown(tt.tdef) != tt.ok {
				t.Errorf("IsKnown(%q) = %v", tt.tdef, !tt.ok)
			}
		})
	}
}

func TestRegistryLookupTieAlphabetical(t *testing.T) {
	r := NewRegistry()
	r.Register("netb", stubConstructor)
	r.Register("neta", stubConstructor)

	if got, _ := r.Lookup("neta_netb"); got != "neta" {
		t.Errorf("Lookup = %q, erwartet neta", got)
	}
}

func TestRegistryFromTemplate(t *testing.T) {
	r := NewRegistry()
	RegisterTorchvision(r)

	m, err := r.FromTemplate("wideresnet50_finetune", native.NewParams().Set("nclasses", 3).Set("pretrained", true), native.ImageInput{Width: 224, Height: 224, Channels: 3})
	if err != nil {
		t.Fatal(err)
	}

	model, ok := m.(*Model)
	if !ok {
		t.Fatalf("erwartet *Model, bekam %T", m)
	}
	if model.Architecture() != "wideresnet50" || model.Family != "wideresnet" {
		t.Errorf("Architecture = %s, Family = %s", model.Architecture(), model.Family)
	}
	if model.Classes != 3 || !model.Pretrained {
		t.Errorf("Describe = %v", model.Describe())
	}
}

func TestRegistryFromTemplateErrors(t *testing.T) {
	r := NewRegistry()
	RegisterTorchvision(r)

	_, err := r.FromTemplate("unknown_net", nil, native.ImageInput{})
	if !errors.Is(err, ErrTemplateNotRegistered) {
		t.Fatalf("erwartet ErrTemplateNotRegistered, bekam %v", err)
	}

	var rerr *RegistryError
	if !errors.As(err, &rerr) || rerr.Op != "create" || rerr.Template != "unknown_net" {
		t.Errorf("RegistryError = %+v", rerr)
	}

	if _, err := r.FromTemplate("resnet18", native.NewParams().Set("pretrained", "yes"), native.ImageInput{}); !errors.Is(err, native.ErrDecode) {
		t.Errorf("erwartet ErrDecode, bekam %v", err)
	}
}

func TestRegistryRegisterUnregister(t *testing.T) {
	r := NewRegistry()
	if r.Count() != 0 {
		t.Fatalf("neue Registry hat %d Templates", r.Count())
	}

	r.Register("zeta", stubConstructor)
	r.Register("alpha", stubConstructor)

	if diff := cmp.Diff([]string{"alpha", "zeta"}, r.List()); diff != "" {
		t.Errorf("List (-want +got):\n%s", diff)
	}
	if !r.Has("alpha") || r.Has("alph") {
		t.Error("Has muss exakt vergleichen")
	}

	if !r.Unregister("alpha") {
		t.Error("Unregister(alpha) = false")
	}
	if r.Unregister("alpha") {
		t.Error("zweites Unregister(alpha) = true")
	}
	if r.Count() != 1 {
		t.Errorf("Count = %d, erwartet 1", r.Count())
	}
}

func TestDefaultRegistry(t *testing.T) {
	templates := Templates()
	if !slices.IsSorted(templates) {
		t.Error("Templates nicht sortiert")
	}

	var want int
	for _, names := range torchvisionFamilies {
		want += len(names)
	}
	if len(templates) != want {
		t.Errorf("DefaultRegistry hat %d Templates, erwartet %d", len(templates), want)
	}

	if !IsVisionTemplate("resnet18") || IsVisionTemplate("vit_base") {
		t.Error("IsVisionTemplate liefert falsche Zuordnung")
	}
}

func TestRegistryConcurrent(t *testing.T) {
	r := NewRegistry()
	RegisterTorchvision(r)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%4 == 0 {
				r.Register("custom_net", stubConstructor)
				return
			}
			if _, err := r.FromTemplate("resnet34", nil, native.ImageInput{}); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if !r.Has("custom_net") {
		t.Error("custom_net nicht registriert")
	}
}
