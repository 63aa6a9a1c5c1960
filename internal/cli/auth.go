package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	authStatus bool
	authClear  bool
)

var authCmd = &cobra.Command{
	Use:   "auth [token]",
	Short: "Manage the Mixamo access token",
	Long: `Store, inspect or remove the Mixamo access token.

Mixamo has no public API keys; the token comes from a logged-in browser
session. Open mixamo.com, log in, and copy the Bearer token from any
request in the network inspector.

Examples:
  animfetch auth eyJhbGciOi...   # store and validate a new token
  animfetch auth --status        # show whether a valid token is stored
  animfetch auth --clear         # remove the stored token`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAuth,
}

func init() {
	authCmd.Flags().BoolVar(&authStatus, "status", false, "show token status")
	authCmd.Flags().BoolVar(&authClear, "clear", false, "remove the stored token")
}

func runAuth(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch {
	case authClear:
		if err := tokens.Clear(); err != nil {
			return fmt.Errorf("remove token: %w", err)
		}
		client.SetToken("")
		fmt.Println("Token removed.")
		return nil

	case len(args) == 1:
		if err := tokens.Save(args[0]); err != nil {
			return fmt.Errorf("save token: %w", err)
		}
		client.SetToken(args[0])
		fmt.Printf("Token saved to %s\n", tokens.Path())

		if err := client.ValidateToken(ctx); err != nil {
			fmt.Println("Warning: the token failed validation and may be expired.")
			if verbose {
				fmt.Printf("  %v\n", err)
			}
			return nil
		}
		fmt.Println("Token validated.")
		return nil

	default:
		// --status, or no arguments at all
		if !client.HasToken() {
			fmt.Println("Not authenticated.")
			fmt.Println("Run 'animfetch auth <token>' with a token from a logged-in mixamo.com session.")
			return nil
		}

		fmt.Printf("Token stored at %s\n", tokens.Path())
		if err := client.ValidateToken(ctx); err != nil {
			fmt.Println("Token status: invalid or expired.")
			return nil
		}
		fmt.Println("Token status: valid.")
		return nil
	}
}
