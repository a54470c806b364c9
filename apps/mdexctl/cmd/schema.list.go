package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var schemaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List markdown files that parse as data-models",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig(cmd)
		if err != nil {
			return err
		}

		repo := schemaRepo
		if repo == "" {
			repo = cfg.Repo
		}
		if repo == "" {
			log.Fatal("a repository is required: pass --repo or set repo in mdex.yaml")
		}

		paths, err := listModelFiles(cmd.Context(), repo)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			fmt.Println("No data-model files found")
			return nil
		}
		for _, p := range paths {
			fmt.Println(p)
		}
		return nil
	},
}

func init() {
	schemaCmd.AddCommand(schemaListCmd)
}
