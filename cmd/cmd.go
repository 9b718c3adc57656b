// cmd.go - Haupt-CLI Setup und Root Command
// Hauptfunktionen: NewCLI, appendEnvDocs
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ollama/native/envconfig"
)

// appendEnvDocs - Fuegt Umgebungsvariablen-Dokumentation zum Command hinzu
func appendEnvDocs(cmd *cobra.Command, envs []envconfig.EnvVar) {
	if len(envs) == 0 {
		return
	}

	envUsage := `
Environment Variables:
`
	for _, e := range envs {
		envUsage += fmt.Sprintf("      %-24s   %s\n", e.Name, e.Description)
	}

	cmd.SetUsageTemplate(cmd.UsageTemplate() + envUsage)
}

// NewCLI - Erstellt das Haupt-CLI mit allen Commands
func NewCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "native",
		Short:         "Select and construct native model architectures from templates",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Print(cmd.UsageString())
		},
	}

	selectCmd := newSelectCmd()
	templatesCmd := newTemplatesCmd()
	serveCmd := newServeCmd()

	// Environment-Dokumentation hinzufuegen
	envVars := envconfig.AsMap()
	appendEnvDocs(selectCmd, []envconfig.EnvVar{envVars["OLLAMA_DEBUG"], envVars["OLLAMA_NATIVE_VISION"]})
	appendEnvDocs(templatesCmd, []envconfig.EnvVar{envVars["OLLAMA_NATIVE_VISION"]})
	appendEnvDocs(serveCmd, []envconfig.EnvVar{
		envVars["OLLAMA_DEBUG"],
		envVars["OLLAMA_NATIVE_HOST"],
		envVars["OLLAMA_ORIGINS"],
		envVars["OLLAMA_NATIVE_VISION"],
	})

	rootCmd.AddCommand(
		selectCmd,
		templatesCmd,
		serveCmd,
	)

	return rootCmd
}
