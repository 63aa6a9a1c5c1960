package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/animcp/internal/fetch"
)

var (
	fetchCharacter string
	fetchName      string
	fetchFileName  string
	fetchOutput    string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <query>",
	Short: "Download one animation as FBX",
	Long: `Download a single animation: search for the best match, retarget it
onto the character, wait for the render and save the FBX file.

The query may be a keyword or a Mixamo product UUID. With a UUID the
search step is skipped and the animation is exported directly.

Examples:
  animfetch fetch run
  animfetch fetch "sword attack" --character 55c5d85e-...
  animfetch fetch run --name "Hero Run" --output ./Assets/Animations`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchCharacter, "character", "c", "", "target character UUID (default: primary character)")
	fetchCmd.Flags().StringVar(&fetchName, "name", "", "override the exported animation name")
	fetchCmd.Flags().StringVar(&fetchFileName, "file-name", "", "override the local file name")
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "", "output directory (default: auto-detected)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	query := args[0]
	if err := requireToken(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Fetching %q...\n", query)
	record, err := service.Fetch(ctx, query, fetch.Options{
		CharacterID: fetchCharacter,
		Name:        fetchName,
		FileName:    fetchFileName,
		OutputDir:   fetchOutput,
	})
	if err != nil {
		return fmt.Errorf("fetch %q: %w", query, err)
	}

	fmt.Printf("Saved %s (%d bytes)\n", record.FilePath, record.Bytes)
	return nil
}
