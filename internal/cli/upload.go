package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var uploadName string

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a character model for auto-rigging",
	Long: `Upload a character model (FBX, OBJ or ZIP) to Mixamo and wait for
auto-rigging to finish. The rigged character can then be used as the
target for 'fetch' and 'batch' via its UUID.

Rigging can take several minutes for complex models.

Examples:
  animfetch upload hero.fbx
  animfetch upload hero.fbx --name "Hero"`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVar(&uploadName, "name", "", "character name (default: file name)")
}

func runUpload(cmd *cobra.Command, args []string) error {
	filePath := args[0]
	if err := requireToken(); err != nil {
		return err
	}
	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("read %s: %w", filePath, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Uploading %s, waiting for auto-rigging...\n", filePath)
	character, err := service.UploadCharacter(ctx, filePath, uploadName)
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}

	fmt.Printf("Character rigged: %s (%s)\n", character.Name, character.ID)
	fmt.Printf("Use it with: animfetch fetch <query> --character %s\n", character.ID)
	return nil
}
