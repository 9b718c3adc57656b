// MODUL: torchvision
// ZWECK: Katalog klassischer CNN-Architekturen (ResNet, VGG, DenseNet, ...)
// INPUT: Template-Name, Parameter (nclasses, pretrained), ImageInput
// OUTPUT: *Model als native.Module
// NEBENEFFEKTE: Keine
// ABHAENGIGKEITEN: native, native/models (Classes)
// HINWEISE: Wird von registry_global.go in die DefaultRegistry eingetragen

package vision

import (
	"github.com/ollama/native/native"
	"github.com/ollama/native/native/models"
)

// torchvisionFamilies ordnet jede Familie ihren Template-Namen zu.
var torchvisionFamilies = map[string][]string{
	"resnet":     {"resnet18", "resnet34", "resnet50", "resnet101", "resnet152"},
	"resnext":    {"resnext50", "resnext101"},
	"wideresnet": {"wideresnet50", "wideresnet101"},
	"alexnet":    {"alexnet"},
	"vgg":        {"vgg11", "vgg13", "vgg16", "vgg19", "vgg11_bn", "vgg13_bn", "vgg16_bn", "vgg19_bn"},
	"densenet":   {"densenet121", "densenet161", "densenet169", "densenet201"},
	"googlenet":  {"googlenet"},
	"inception":  {"inception_v3"},
	"mobilenet":  {"mobilenet_v2"},
	"shufflenet": {"shufflenet_v2"},
	"squeezenet": {"squeezenet1_0", "squeezenet1_1"},
	"mnasnet":    {"mnasnet0_5", "mnasnet1_0"},
}

// Model ist eine Instanz einer Katalog-Architektur.
type Model struct {
	native.Base

	Family     string
	Input      native.ImageInput
	Classes    int
	Pretrained bool
}

// newTorchvision gibt den Constructor fuer eine Familie zurueck.
func newTorchvision(family string) Constructor {
	return func(name string, params *native.Params, in native.ImageInput) (native.Module, error) {
		classes, err := models.Classes(in, params)
		if err != nil {
			return nil, err
		}

		pretrained, err := params.BoolOr("pretrained", false)
		if err != nil {
			return nil, err
		}

		return &Model{
			Base:       native.NewBase(name),
			Family:     family,
			Input:      in,
			Classes:    classes,
			Pretrained: pretrained,
		}, nil
	}
}

func (m *Model) Describe() map[string]any {
	return map[string]any{
		"family":     m.Family,
		"nclasses":   m.Classes,
		"pretrained": m.Pretrained,
	}
}

// RegisterTorchvision traegt den gesamten Katalog in eine Registry ein.
func RegisterTorchvision(r *Registry) {
	for family, names := range torchvisionFamilies {
		for _, name := range names {
			r.Register(name, newTorchvision(family))
		}
	}
}
