package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication with the mdex controller (login, logout, status)",
	Long: `Manage authentication against a running mdex controller.

Subcommands let you obtain tokens (login), invalidate them (logout), and
inspect the current authentication status. Tokens are stored in the OS
keyring for use by other mdexctl commands.

Examples:
  mdexctl auth login
  mdexctl auth login --secret hunter2
  mdexctl auth status
  mdexctl auth logout`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("auth called")
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
}
