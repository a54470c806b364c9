package cmd

import (
	"fmt"
	"time"

	"github.com/mdexhq/mdex/pkg/sdk"
	"github.com/spf13/cobra"
)

var loginSecret string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate to the mdex controller",
	Long: `Obtain a session token from the mdex controller and store it in the
OS keyring for subsequent commands.

Examples:
	# log in to a controller without a password wall
	mdexctl auth login

	# log in through the password wall
	mdexctl auth login --secret hunter2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig(cmd)
		if err != nil {
			return err
		}

		client := sdk.New(cfg.BaseURL)
		ctx := cmd.Context()

		if err := client.Login(ctx, loginSecret); err != nil {
			exitIfSdkError(err)
		}
		if err := client.Authenticate(ctx); err != nil {
			exitIfSdkError(err)
		}

		if tc, err := sdk.FromToken(client.Token); err == nil && tc.Exp > 0 {
			fmt.Printf("Logged in to %s\n", cfg.BaseURL)
			fmt.Printf("Token expires: %s\n", time.Unix(tc.Exp, 0).Format(time.RFC3339))
		} else {
			fmt.Printf("Logged in to %s\n", cfg.BaseURL)
		}
		fmt.Println("Access token saved")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginSecret, "secret", "", "Shared secret for controllers behind a password wall")
	authCmd.AddCommand(loginCmd)
}
