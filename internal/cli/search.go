package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/animcp/internal/keywords"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the animation catalog",
	Long: `Search the Mixamo catalog for animations matching a keyword.

The query is expanded into known synonyms before searching, so "run"
also finds results for "jog" or "sprint". Results can be passed to
'fetch' by name or by ID.

Examples:
  animfetch search run
  animfetch search "sword attack" --limit 5`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "max results (default from config)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	if err := requireToken(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	results, err := service.Search(ctx, query, searchLimit)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if verbose {
		fmt.Printf("Expanded terms: %v\n\n", keywords.Expand(query))
	}

	fmt.Printf("Found %d results:\n\n", len(results))
	for i, animation := range results {
		name := animation.Name
		if name == "" {
			name = animation.Description
		}
		fmt.Printf("%d. %s\n", i+1, name)
		if animation.Description != "" && animation.Description != name {
			fmt.Printf("   %s\n", animation.Description)
		}
		if verbose {
			fmt.Printf("   ID: %s  Type: %s\n", animation.ID, animation.Type)
		}
		fmt.Println()
	}

	return nil
}
