// Package cli provides the command-line interface for animfetch.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/animcp/internal/config"
	"github.com/raphaelgruber/animcp/internal/fetch"
	"github.com/raphaelgruber/animcp/internal/metrics"
	"github.com/raphaelgruber/animcp/internal/mixamo"
	"github.com/raphaelgruber/animcp/internal/token"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Global config and wired services
	cfg       config.Config
	logger    *slog.Logger
	logClose  func() error
	tokens    *token.Store
	client    *mixamo.Client
	service   *fetch.Service
	collector *metrics.Collector
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "animfetch",
	Short: "Download Mixamo animations from the command line",
	Long: `Animfetch turns animation keywords into downloaded FBX files using the
Mixamo animation service: it searches the catalog, retargets the animation
onto your character, waits for the render and saves the result.

Authenticate once with a browser token ('animfetch auth <token>'), then
fetch single animations or whole keyword batches.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip service wiring for version and help commands
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		// The CLI prints its own output; keep logs quiet unless asked.
		logCfg := cfg
		logCfg.LogLevel = slog.LevelWarn
		if verbose {
			logCfg.LogLevel = slog.LevelDebug
		}
		logger, logClose = config.SetupLogger(logCfg)

		tokens, err = token.NewStore(cfg.TokenPath)
		if err != nil {
			return fmt.Errorf("init token store: %w", err)
		}

		// ANIMCP_TOKEN beats the stored token
		accessToken := cfg.Token
		if accessToken == "" {
			if accessToken, err = tokens.Load(); err != nil {
				return fmt.Errorf("load token: %w", err)
			}
		}

		collector = metrics.NewCollector()
		client = mixamo.New(mixamo.Config{
			Token:        accessToken,
			BaseURL:      cfg.BaseURL,
			Format:       cfg.Format,
			FPS:          cfg.FPS,
			SearchLimit:  cfg.SearchLimit,
			PollInterval: cfg.PollInterval,
			PollAttempts: cfg.PollAttempts,
			Metrics:      collector,
		}, logger)
		service = fetch.NewService(client, cfg, logger)

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if client != nil {
			client.Close()
		}
		if logClose != nil {
			if err := logClose(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
			}
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(keywordsCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(versionCmd)
}

// requireToken fails early with a friendly hint when no token is set.
func requireToken() error {
	if !client.HasToken() {
		return fmt.Errorf("not authenticated: run 'animfetch auth <token>' with a token from a logged-in mixamo.com browser session")
	}
	return nil
}
