package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/mdexhq/mdex/pkg/sdk"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the provider models available through the controller",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig(cmd)
		if err != nil {
			return err
		}

		client := sdk.New(cfg.BaseURL)
		raw, err := client.ListModels(cmd.Context())
		if err != nil {
			exitIfSdkError(err)
		}

		var parsed struct {
			Data []struct {
				ID string `json:"id"`
			} `json:"data"`
		}
		if err := json.Unmarshal(raw, &parsed); err != nil || len(parsed.Data) == 0 {
			// Unknown shape: show the raw payload rather than nothing.
			fmt.Println(string(raw))
			return nil
		}

		for _, m := range parsed.Data {
			fmt.Println(m.ID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
