package cmd

import (
	"fmt"
	"log"

	"github.com/mdexhq/mdex/pkg/sdk"
	"github.com/spf13/cobra"
)

var (
	evaluateFlags  submissionFlags
	evaluateRepo   string
	evaluatePath   string
	evaluateObject string
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Judge whether data fits a data-model object",
	Long: `Submit data against a data-model object and wait for the provider's
verdict on whether the data fits the object's schema.

Examples:
  mdexctl evaluate --repo acme/models --path catalysis.md --object Experiment --text "..."
  mdexctl evaluate --repo acme/models --path catalysis.md --object Experiment --file report.pdf`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		schema, err := resolveSchema(ctx, cfg, evaluateRepo, evaluatePath, evaluateObject)
		if err != nil {
			return err
		}

		text, err := evaluateFlags.resolveText()
		if err != nil {
			return err
		}

		client := sdk.New(cfg.BaseURL)
		refs, err := evaluateFlags.resolveRefs(ctx, client)
		if err != nil {
			exitIfSdkError(err)
		}
		if text == "" && len(refs) == 0 {
			log.Fatal("nothing to evaluate: pass --text, --text-file, or --file")
		}

		id, err := client.SubmitEvaluation(ctx, sdk.EvaluateRequest{
			Text:           text,
			Schema:         schema,
			FileReferences: refs,
			Model:          cfg.Model,
		})
		if err != nil {
			exitIfSdkError(err)
		}

		report, err := client.NewPoller().PollText(ctx, id)
		if err != nil {
			exitIfSdkError(err)
		}

		eval := sdk.ParseEvaluation(report)
		if eval.Fits {
			fmt.Println("Verdict: FIT")
		} else {
			fmt.Println("Verdict: UNFIT")
		}
		return evaluateFlags.writeResult(eval.Report)
	},
}

func init() {
	addSubmissionFlags(evaluateCmd, &evaluateFlags)
	evaluateCmd.Flags().StringVar(&evaluateRepo, "repo", "", "GitHub repository (user/repo or URL) or local directory")
	evaluateCmd.Flags().StringVar(&evaluatePath, "path", "", "Path of the data-model markdown file")
	evaluateCmd.Flags().StringVar(&evaluateObject, "object", "", "Object within the data-model")
	rootCmd.AddCommand(evaluateCmd)
}
