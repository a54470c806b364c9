package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/mdexhq/mdex/pkg/mdmodels"
	"github.com/spf13/cobra"
)

var (
	schemaShowPath   string
	schemaShowObject string
)

var schemaShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a data-model file's objects, or one object's JSON schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig(cmd)
		if err != nil {
			return err
		}

		repo := schemaRepo
		if repo == "" {
			repo = cfg.Repo
		}
		if repo == "" || schemaShowPath == "" {
			log.Fatal("both --repo (or repo in mdex.yaml) and --path are required")
		}

		content, err := loadModelContent(cmd.Context(), repo, schemaShowPath)
		if err != nil {
			return err
		}

		parser := mdmodels.NewMarkdownParser()

		if schemaShowObject != "" {
			schema, err := parser.JSONSchema(content, schemaShowObject)
			if err != nil {
				return err
			}
			fmt.Println(schema)
			return nil
		}

		model, err := parser.Parse(content)
		if err != nil {
			return err
		}
		fmt.Printf("Model: %s\n", model.Name)
		for _, obj := range model.Objects {
			fmt.Printf("  %s (%d attributes)\n", obj.Name, len(obj.Attributes))
			for _, attr := range obj.Attributes {
				flags := make([]string, 0, 2)
				if attr.Required {
					flags = append(flags, "required")
				}
				if attr.Array {
					flags = append(flags, "array")
				}
				suffix := ""
				if len(flags) > 0 {
					suffix = " (" + strings.Join(flags, ", ") + ")"
				}
				fmt.Printf("    - %s: %s%s\n", attr.Name, attr.Type, suffix)
			}
		}
		return nil
	},
}

func init() {
	schemaShowCmd.Flags().StringVar(&schemaShowPath, "path", "", "Path of the markdown file within the repository")
	schemaShowCmd.Flags().StringVar(&schemaShowObject, "object", "", "Object to render as JSON schema")
	schemaCmd.AddCommand(schemaShowCmd)
}
