package cmd

import (
	"fmt"

	"github.com/mdexhq/mdex/pkg/sdk"
	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>...",
	Short: "Upload PDF or image attachments to the controller",
	Long: `Upload attachment files to the controller, which forwards them to the
provider. The printed references can be passed to evaluate, graph, and
extract with --file-ref.

Examples:
  mdexctl upload report.pdf chart.png`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig(cmd)
		if err != nil {
			return err
		}

		client := sdk.New(cfg.BaseURL)
		files, err := client.UploadFiles(cmd.Context(), args)
		if err != nil {
			exitIfSdkError(err)
		}

		for _, f := range files {
			fmt.Printf("%s\t%s\t%s\n", f.Name, f.FileID, f.InputType)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
