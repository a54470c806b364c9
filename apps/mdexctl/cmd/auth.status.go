package cmd

import (
	"fmt"
	"time"

	"github.com/mdexhq/mdex/pkg/sdk"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current authentication status",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig(cmd)
		if err != nil {
			return err
		}

		token, err := sdk.LoadToken(cfg.BaseURL)
		if err != nil || token == "" {
			fmt.Printf("Not logged in to %s\n", cfg.BaseURL)
			fmt.Println("Run 'mdexctl auth login' to authenticate")
			return nil
		}

		expired, err := sdk.IsTokenExpired(token, time.Minute)
		if err != nil {
			fmt.Printf("Stored token for %s is unreadable: %v\n", cfg.BaseURL, err)
			return nil
		}

		if expired {
			fmt.Printf("Token for %s has expired\n", cfg.BaseURL)
			fmt.Println("Run 'mdexctl auth login' to re-authenticate")
			return nil
		}

		fmt.Printf("Logged in to %s\n", cfg.BaseURL)
		if tc, err := sdk.FromToken(token); err == nil && tc.Exp > 0 {
			fmt.Printf("Token expires: %s\n", time.Unix(tc.Exp, 0).Format(time.RFC3339))
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove stored credentials for the controller",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig(cmd)
		if err != nil {
			return err
		}
		if err := sdk.DeleteToken(cfg.BaseURL); err != nil {
			fmt.Printf("No stored credentials for %s\n", cfg.BaseURL)
			return nil
		}
		fmt.Printf("Logged out of %s\n", cfg.BaseURL)
		return nil
	},
}

func init() {
	authCmd.AddCommand(statusCmd)
	authCmd.AddCommand(logoutCmd)
}
