package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/mdexhq/mdex/pkg/sdk"
	"github.com/spf13/cobra"
)

type contextKey string

const configContextKey contextKey = "mdexconfig"

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "mdexctl",
		Short: "CLI for the mdex extraction dashboard (auth, schemas, extraction runs)",
		Long: `mdexctl is a command-line tool for driving a running mdex controller.
Point it at a markdown data-model (a GitHub repo or a local file), feed it
text and PDF/image attachments, and it will evaluate schema fit, derive a
knowledge graph, and extract schema-conformant JSON.

Use the auth subcommands to obtain and manage tokens; schema to inspect
data-model files; and run to execute the full extraction flow.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := sdk.LoadConfig(cfgFile)
			if err != nil {
				return err
			}

			if err := cfg.Viper().BindPFlags(cmd.Flags()); err != nil {
				return err
			}

			ctx := context.WithValue(cmd.Context(), configContextKey, cfg)
			cmd.SetContext(ctx)

			return nil
		},
	}
)

// GetConfig retrieves the Config from the command context
func GetConfig(cmd *cobra.Command) (*sdk.Config, error) {
	ctx := cmd.Context()
	cfg, ok := ctx.Value(configContextKey).(*sdk.Config)
	if !ok {
		return nil, errors.New("no config in context")
	}
	return cfg, nil
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML). Searches: mdex.yaml, .mdex/config.yaml")
	rootCmd.PersistentFlags().String("base-url", "", "Base URL for the mdex controller (overrides config)")
	rootCmd.PersistentFlags().String("model", "", "Provider model to use (overrides config)")
}
