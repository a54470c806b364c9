package cmd

import (
	"fmt"
	"log"

	"github.com/mdexhq/mdex/pkg/sdk"
	"github.com/spf13/cobra"
)

var graphFlags submissionFlags

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Derive a knowledge graph from data",
	Long: `Submit data and wait for the provider to derive a knowledge graph of
subject-predicate-object triplets.

Examples:
  mdexctl graph --text "Platinum catalyzes the hydrogenation of ethene."
  mdexctl graph --file paper.pdf -o graph.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		text, err := graphFlags.resolveText()
		if err != nil {
			return err
		}

		client := sdk.New(cfg.BaseURL)
		refs, err := graphFlags.resolveRefs(ctx, client)
		if err != nil {
			exitIfSdkError(err)
		}
		if text == "" && len(refs) == 0 {
			log.Fatal("nothing to graph: pass --text, --text-file, or --file")
		}

		id, err := client.SubmitGraph(ctx, sdk.GraphRequest{
			Prompt:         text,
			FileReferences: refs,
			Model:          cfg.Model,
		})
		if err != nil {
			exitIfSdkError(err)
		}

		raw, err := client.NewPoller().PollJSON(ctx, id)
		if err != nil {
			exitIfSdkError(err)
		}

		if graphFlags.output != "" {
			return graphFlags.writeResult(string(raw))
		}

		graph, err := sdk.ParseKnowledgeGraph(raw)
		if err != nil {
			exitIfSdkError(err)
		}
		for _, t := range graph.Triplets {
			fmt.Printf("%s -- %s --> %s\n", t.Subject, t.Predicate, t.Object)
		}
		return nil
	},
}

func init() {
	addSubmissionFlags(graphCmd, &graphFlags)
	rootCmd.AddCommand(graphCmd)
}
