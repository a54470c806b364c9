package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mdexhq/mdex/pkg/kv"
	"github.com/mdexhq/mdex/pkg/mlog"
	"github.com/mdexhq/mdex/pkg/sdk"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const runFormKey = "run.form"

var (
	runFlags    submissionFlags
	runRepo     string
	runPath     string
	runObject   string
	runMultiple bool
	runResume   bool
)

// runForm is the persisted state of an extraction run. It survives a
// failed run so --resume can retry without re-entering inputs or
// re-uploading attachments.
type runForm struct {
	Repo     string              `json:"repo"`
	Path     string              `json:"path"`
	Object   string              `json:"object"`
	Text     string              `json:"text"`
	Multiple bool                `json:"multiple"`
	FileRefs []sdk.FileReference `json:"file_refs,omitempty"`
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full extraction flow: evaluate, graph, and extract",
	Long: `Run all three operations against the same data: judge schema fit,
derive a knowledge graph, and extract schema-conformant JSON. The three
jobs are submitted and polled concurrently.

Inputs are saved locally before submission; if the run fails, retry it
with 'mdexctl run --resume' without re-entering them.

Examples:
  mdexctl run --repo acme/models --path catalysis.md --object Experiment --text "..."
  mdexctl run --repo acme/models --path catalysis.md --object Experiment --file paper.pdf -o out.json
  mdexctl run --resume`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		logger := mlog.NewDefault()

		store, err := runStateStore()
		if err != nil {
			return err
		}

		client := sdk.New(cfg.BaseURL)

		var form runForm
		if runResume {
			data, err := store.Get(runFormKey)
			if err != nil {
				log.Fatal("no saved run to resume")
			}
			if err := json.Unmarshal(data, &form); err != nil {
				return fmt.Errorf("reading saved run: %w", err)
			}
			logger.Info("resuming saved run", "object", form.Object)
		} else {
			text, err := runFlags.resolveText()
			if err != nil {
				return err
			}
			refs, err := runFlags.resolveRefs(ctx, client)
			if err != nil {
				exitIfSdkError(err)
			}
			if text == "" && len(refs) == 0 {
				log.Fatal("nothing to run on: pass --text, --text-file, or --file")
			}
			repo := runRepo
			if repo == "" {
				repo = cfg.Repo
			}
			form = runForm{
				Repo:     repo,
				Path:     runPath,
				Object:   runObject,
				Text:     text,
				Multiple: runMultiple,
				FileRefs: refs,
			}
		}

		schema, err := resolveSchema(ctx, cfg, form.Repo, form.Path, form.Object)
		if err != nil {
			return err
		}

		// Persist before submitting so a failed run can be resumed.
		if data, err := json.Marshal(form); err == nil {
			if err := store.Set(runFormKey, data); err != nil {
				logger.Warn("could not save run state", "error", err)
			}
		}

		var evalID, graphID, extractID string
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			evalID, err = client.SubmitEvaluation(gctx, sdk.EvaluateRequest{
				Text:           form.Text,
				Schema:         schema,
				FileReferences: form.FileRefs,
				Model:          cfg.Model,
			})
			return err
		})
		g.Go(func() error {
			var err error
			graphID, err = client.SubmitGraph(gctx, sdk.GraphRequest{
				Prompt:         form.Text,
				FileReferences: form.FileRefs,
				Model:          cfg.Model,
			})
			return err
		})
		g.Go(func() error {
			var err error
			extractID, err = client.SubmitExtraction(gctx, sdk.ExtractRequest{
				Text:            form.Text,
				Schema:          schema,
				MultipleOutputs: form.Multiple,
				FileReferences:  form.FileRefs,
				Model:           cfg.Model,
			})
			return err
		})
		if err := g.Wait(); err != nil {
			exitIfSdkError(err)
		}
		logger.Info("jobs submitted", "evaluation", evalID, "graph", graphID, "extraction", extractID)

		var report, extracted string
		var rawGraph json.RawMessage
		g, gctx = errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			report, err = client.NewPoller().PollText(gctx, evalID)
			return err
		})
		g.Go(func() error {
			var err error
			rawGraph, err = client.NewPoller().PollJSON(gctx, graphID)
			return err
		})
		g.Go(func() error {
			raw, err := client.NewPoller().PollJSON(gctx, extractID)
			extracted = string(raw)
			return err
		})
		if err := g.Wait(); err != nil {
			exitIfSdkError(err)
		}

		eval := sdk.ParseEvaluation(report)
		if eval.Fits {
			logger.Success("schema fit: FIT")
		} else {
			logger.Warn("schema fit: UNFIT")
		}
		if eval.Report != "" {
			fmt.Println(eval.Report)
		}

		fmt.Println()
		graph, err := sdk.ParseKnowledgeGraph(rawGraph)
		if err != nil {
			exitIfSdkError(err)
		}
		fmt.Printf("Knowledge graph (%d triplets):\n", len(graph.Triplets))
		for _, t := range graph.Triplets {
			fmt.Printf("  %s -- %s --> %s\n", t.Subject, t.Predicate, t.Object)
		}

		fmt.Println()
		fmt.Println("Extracted data:")
		if err := runFlags.writeResult(extracted); err != nil {
			return err
		}

		if err := store.Delete(runFormKey); err != nil && err != kv.ErrNotFound {
			logger.Warn("could not clear run state", "error", err)
		}
		return nil
	},
}

// runStateStore opens the file-backed state store at ~/.mdex/state.json.
func runStateStore() (kv.Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return kv.NewFile(filepath.Join(home, ".mdex", "state.json")), nil
}

func init() {
	addSubmissionFlags(runCmd, &runFlags)
	runCmd.Flags().StringVar(&runRepo, "repo", "", "GitHub repository (user/repo or URL) or local directory")
	runCmd.Flags().StringVar(&runPath, "path", "", "Path of the data-model markdown file")
	runCmd.Flags().StringVar(&runObject, "object", "", "Object within the data-model")
	runCmd.Flags().BoolVar(&runMultiple, "multiple", false, "Extract every matching instance instead of one")
	runCmd.Flags().BoolVar(&runResume, "resume", false, "Resume the last failed run from saved state")
	rootCmd.AddCommand(runCmd)
}
