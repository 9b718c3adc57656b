// cmd_templates.go - Templates und Serve Commands
// Hauptfunktionen: TemplatesHandler, RunServer
package cmd

import (
	"net"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ollama/native/envconfig"
	"github.com/ollama/native/native"
	"github.com/ollama/native/native/factory"
	"github.com/ollama/native/server"
)

// newTemplatesCmd - Erstellt den templates Command
func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates [MODALITY]",
		Short: "List known templates in selection order",
		Args:  cobra.MaximumNArgs(1),
		RunE:  TemplatesHandler,
	}
}

// newServeCmd - Erstellt den serve Command
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Aliases: []string{"start"},
		Short:   "Start the native factory HTTP API",
		Args:    cobra.ExactArgs(0),
		RunE:    RunServer,
	}
}

// TemplatesHandler - Listet Templates pro Modalitaet in Pruef-Reihenfolge
func TemplatesHandler(cmd *cobra.Command, args []string) error {
	modalities := []native.Modality{native.ModalityTimeSeries, native.ModalityImage, native.ModalityVideo, native.ModalityText}
	if len(args) > 0 {
		m, err := native.ParseModality(args[0])
		if err != nil {
			return err
		}
		modalities = []native.Modality{m}
	}

	f := server.NewFactory()

	var data [][]string
	for _, m := range modalities {
		templates := f.Templates(m)
		if len(templates) == 0 {
			data = append(data, []string{m.String(), "-", "not supported"})
			continue
		}
		builtin := len(factory.Keywords(m))
		for i, t := range templates {
			source := "native"
			if i >= builtin {
				source = "vision registry"
			}
			data = append(data, []string{m.String(), t, source})
		}
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"MODALITY", "TEMPLATE", "SOURCE"})
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

// RunServer - Startet den HTTP-Server
func RunServer(_ *cobra.Command, _ []string) error {
	ln, err := net.Listen("tcp", envconfig.Host().Host)
	if err != nil {
		return err
	}

	return server.Serve(ln)
}
