package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var schemaRepo string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Inspect data-model files (list, show)",
	Long: `Inspect markdown data-model files in a GitHub repository or a local
directory.

Examples:
  mdexctl schema list --repo acme/models
  mdexctl schema show --repo acme/models --path catalysis.md --object Experiment`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("schema called")
	},
}

func init() {
	schemaCmd.PersistentFlags().StringVar(&schemaRepo, "repo", "", "GitHub repository (user/repo or URL) or local directory")
	rootCmd.AddCommand(schemaCmd)
}
