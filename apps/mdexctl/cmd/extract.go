package cmd

import (
	"log"

	"github.com/mdexhq/mdex/pkg/sdk"
	"github.com/spf13/cobra"
)

var (
	extractFlags    submissionFlags
	extractRepo     string
	extractPath     string
	extractObject   string
	extractMultiple bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract schema-conformant JSON from data",
	Long: `Submit data against a data-model object and wait for the provider to
extract JSON conforming to the object's schema.

Examples:
  mdexctl extract --repo acme/models --path catalysis.md --object Experiment --text "..."
  mdexctl extract --repo acme/models --path catalysis.md --object Experiment --multiple --file paper.pdf -o out.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		schema, err := resolveSchema(ctx, cfg, extractRepo, extractPath, extractObject)
		if err != nil {
			return err
		}

		text, err := extractFlags.resolveText()
		if err != nil {
			return err
		}

		client := sdk.New(cfg.BaseURL)
		refs, err := extractFlags.resolveRefs(ctx, client)
		if err != nil {
			exitIfSdkError(err)
		}
		if text == "" && len(refs) == 0 {
			log.Fatal("nothing to extract from: pass --text, --text-file, or --file")
		}

		id, err := client.SubmitExtraction(ctx, sdk.ExtractRequest{
			Text:            text,
			Schema:          schema,
			MultipleOutputs: extractMultiple,
			FileReferences:  refs,
			Model:           cfg.Model,
		})
		if err != nil {
			exitIfSdkError(err)
		}

		raw, err := client.NewPoller().PollJSON(ctx, id)
		if err != nil {
			exitIfSdkError(err)
		}
		return extractFlags.writeResult(string(raw))
	},
}

func init() {
	addSubmissionFlags(extractCmd, &extractFlags)
	extractCmd.Flags().StringVar(&extractRepo, "repo", "", "GitHub repository (user/repo or URL) or local directory")
	extractCmd.Flags().StringVar(&extractPath, "path", "", "Path of the data-model markdown file")
	extractCmd.Flags().StringVar(&extractObject, "object", "", "Object within the data-model")
	extractCmd.Flags().BoolVar(&extractMultiple, "multiple", false, "Extract every matching instance instead of one")
	rootCmd.AddCommand(extractCmd)
}
