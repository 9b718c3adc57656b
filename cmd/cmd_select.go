// cmd_select.go - Select Command
// Hauptfunktionen: SelectHandler, loadParams, inputFromFlags
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ollama/native/envconfig"
	"github.com/ollama/native/logutil"
	"github.com/ollama/native/native"
	"github.com/ollama/native/native/factory"
	"github.com/ollama/native/server"
)

// newSelectCmd - Erstellt den select Command
func newSelectCmd() *cobra.Command {
	selectCmd := &cobra.Command{
		Use:   "select TEMPLATE",
		Short: "Select and construct the native architecture for a template",
		Args:  cobra.ExactArgs(1),
		RunE:  SelectHandler,
	}

	selectCmd.Flags().StringP("modality", "m", "timeseries", "Input modality (timeseries, image, video, text)")
	selectCmd.Flags().String("params", "", "Template parameters as a JSON object")
	selectCmd.Flags().String("params-file", "", "Read template parameters from a YAML or JSON file")

	selectCmd.Flags().Int("features", 1, "Time series: number of features per timestep")
	selectCmd.Flags().Int("width", 224, "Image/video: frame width")
	selectCmd.Flags().Int("height", 224, "Image/video: frame height")
	selectCmd.Flags().Int("channels", 3, "Image/video: number of channels")
	selectCmd.Flags().Int("classes", 0, "Image/video: number of classes")
	selectCmd.Flags().Int("frames", 16, "Video: number of frames")
	selectCmd.Flags().Int("sequence", 512, "Text: sequence length")

	return selectCmd
}

// SelectHandler - Waehlt die Architektur und gibt die Hyperparameter aus
func SelectHandler(cmd *cobra.Command, args []string) error {
	tdef := args[0]

	s, _ := cmd.Flags().GetString("modality")
	modality, err := native.ParseModality(s)
	if err != nil {
		return err
	}

	params, err := loadParams(cmd)
	if err != nil {
		return err
	}

	in := inputFromFlags(cmd, modality)
	logger := logutil.NewLogger(cmd.ErrOrStderr(), envconfig.LogLevel())

	f := server.NewFactory()
	m, err := f.FromTemplate(tdef, params, in, logger)
	if err != nil {
		return err
	}

	if m == nil {
		msg := fmt.Sprintf("no native architecture for template %q (%s)", tdef, modality)
		if suggestion, ok := factory.Suggest(tdef, f.Templates(modality)); ok {
			msg += fmt.Sprintf(", did you mean %q?", suggestion)
		}
		return errors.New(msg)
	}

	data := [][]string{
		{"architecture", m.Architecture()},
		{"id", m.ID().String()},
	}
	data = append(data, flatten("", m.Describe())...)

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"KEY", "VALUE"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()

	return nil
}

// loadParams - Liest --params oder --params-file, nie beides
func loadParams(cmd *cobra.Command) (*native.Params, error) {
	inline, _ := cmd.Flags().GetString("params")
	path, _ := cmd.Flags().GetString("params-file")

	switch {
	case inline != "" && path != "":
		return nil, errors.New("--params and --params-file are mutually exclusive")
	case inline != "":
		return native.ParseParamsJSON([]byte(inline))
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(filepath.Ext(path), ".json") {
			return native.ParseParamsJSON(data)
		}
		return native.ParseParamsYAML(data)
	default:
		return native.NewParams(), nil
	}
}

// inputFromFlags - Baut die Eingabe-Beschreibung aus den Flags
func inputFromFlags(cmd *cobra.Command, modality native.Modality) native.Input {
	flags := cmd.Flags()
	features, _ := flags.GetInt("features")
	width, _ := flags.GetInt("width")
	height, _ := flags.GetInt("height")
	channels, _ := flags.GetInt("channels")
	classes, _ := flags.GetInt("classes")
	frames, _ := flags.GetInt("frames")
	sequence, _ := flags.GetInt("sequence")

	switch modality {
	case native.ModalityTimeSeries:
		return native.TimeSeriesInput{Features: features}
	case native.ModalityImage:
		return native.ImageInput{Width: width, Height: height, Channels: channels, Classes: classes}
	case native.ModalityVideo:
		return native.VideoInput{Frames: frames, FrameWidth: width, FrameHeight: height, Channels: channels, Classes: classes}
	default:
		return native.TextInput{Sequence: sequence}
	}
}

// flatten - Verschachtelte Maps als sortierte "a.b" Zeilen
func flatten(prefix string, m map[string]any) [][]string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var rows [][]string
	for _, k := range keys {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		if sub, ok := m[k].(map[string]any); ok {
			rows = append(rows, flatten(key, sub)...)
			continue
		}
		rows = append(rows, []string{key, fmt.Sprintf("%v", m[k])})
	}
	return rows
}
