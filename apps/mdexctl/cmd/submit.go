package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mdexhq/mdex/pkg/mdmodels"
	"github.com/mdexhq/mdex/pkg/sdk"
	"github.com/spf13/cobra"
)

// submissionFlags are the inputs shared by evaluate, graph, extract, and
// run: the text, the attachments, and where to put the result.
type submissionFlags struct {
	text     string
	textFile string
	files    []string
	fileRefs []string
	output   string
}

func addSubmissionFlags(cmd *cobra.Command, f *submissionFlags) {
	cmd.Flags().StringVar(&f.text, "text", "", "Data text to submit")
	cmd.Flags().StringVar(&f.textFile, "text-file", "", "Read the data text from a file ('-' for stdin)")
	cmd.Flags().StringSliceVar(&f.files, "file", nil, "Local PDF/image attachment to upload and include (repeatable)")
	cmd.Flags().StringSliceVar(&f.fileRefs, "file-ref", nil, "Already-uploaded attachment as fileID:inputType (repeatable)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Write the result to a file instead of stdout")
}

func (f *submissionFlags) resolveText() (string, error) {
	if f.text != "" {
		return f.text, nil
	}
	if f.textFile == "" {
		return "", nil
	}
	if f.textFile == "-" {
		data, err := os.ReadFile("/dev/stdin")
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(f.textFile)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", f.textFile, err)
	}
	return string(data), nil
}

// resolveRefs uploads any local attachments and merges them with
// pre-uploaded references.
func (f *submissionFlags) resolveRefs(ctx context.Context, client *sdk.Sdk) ([]sdk.FileReference, error) {
	var refs []sdk.FileReference

	for _, raw := range f.fileRefs {
		parts := strings.SplitN(raw, ":", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid --file-ref %q: want fileID:inputType", raw)
		}
		refs = append(refs, sdk.FileReference{FileID: parts[0], InputType: parts[1]})
	}

	if len(f.files) > 0 {
		uploaded, err := client.UploadFiles(ctx, f.files)
		if err != nil {
			return nil, err
		}
		for _, u := range uploaded {
			refs = append(refs, u.Reference())
		}
	}

	return refs, nil
}

func (f *submissionFlags) writeResult(data string) error {
	if f.output == "" {
		fmt.Println(data)
		return nil
	}
	if err := os.WriteFile(f.output, []byte(data), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", f.output, err)
	}
	fmt.Printf("Result written to %s\n", f.output)
	return nil
}

// resolveSchema builds the JSON schema for the flagged repo/path/object.
func resolveSchema(ctx context.Context, cfg *sdk.Config, repo, path, object string) (string, error) {
	if repo == "" {
		repo = cfg.Repo
	}
	if repo == "" || path == "" || object == "" {
		log.Fatal("--repo (or repo in mdex.yaml), --path, and --object are required")
	}

	content, err := loadModelContent(ctx, repo, path)
	if err != nil {
		return "", err
	}
	parser := mdmodels.NewMarkdownParser()
	return parser.JSONSchema(content, object)
}
