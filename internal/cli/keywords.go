package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/animcp/internal/keywords"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords [category]",
	Short: "List the known animation keywords",
	Long: `List the animation keywords the synonym expansion knows about,
grouped by category. These are good starting points for 'fetch' and
'batch' queries.

Examples:
  animfetch keywords
  animfetch keywords combat`,
	Args: cobra.MaximumNArgs(1),
	RunE: runKeywords,
}

func runKeywords(cmd *cobra.Command, args []string) error {
	filter := ""
	if len(args) == 1 {
		filter = args[0]
	}

	groups := keywords.ByCategory(filter)
	if len(groups) == 0 {
		return fmt.Errorf("unknown category %q (valid: locomotion, combat, social, dance, sports, misc)", filter)
	}

	// Stable category order for display
	for _, category := range keywords.Categories() {
		terms, ok := groups[category]
		if !ok {
			continue
		}
		fmt.Printf("%s (%d):\n", category, len(terms))
		fmt.Printf("  %s\n\n", strings.Join(terms, ", "))
	}

	return nil
}
