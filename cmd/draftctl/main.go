package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"campaign-draft-sync-go/internal/common"
	"campaign-draft-sync-go/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	ownerId  string
	draftKey string
	timeout  time.Duration
	verbose  bool

	services      *common.Services
	loggerCleanup func()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "draftctl",
	Short: "Inspect and drive campaign drafts from the command line",
	Long: `draftctl talks to the same remote store and draft slots as the HTTP
server. Every command acts on behalf of one owner (--owner).

Backends are selected through the environment (REMOTE_BACKEND, SLOT_BACKEND),
optionally loaded from a .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		_, loggerCleanup = common.InitializeLogger(verbose || cfg.Log.Development)

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()
		services, err = common.InitializeServices(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize services: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if services != nil {
			services.Close()
		}
		if loggerCleanup != nil {
			loggerCleanup()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&ownerId, "owner", "", "Owner whose campaigns and drafts to act on")
	rootCmd.PersistentFlags().StringVar(&draftKey, "draft", "", "Draft slot key (default slot when empty)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Timeout for each command")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Development logging")
	_ = rootCmd.MarkPersistentFlagRequired("owner")

	rootCmd.AddCommand(
		listCmd,
		statsCmd,
		draftsCmd,
		showCmd,
		saveCmd,
		publishCmd,
		pauseCmd,
		resumeCmd,
		editCmd,
		clearCmd,
		importLegacyCmd,
	)
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		zap.L().Debug("Command failed", zap.Error(err))
		os.Exit(1)
	}
}
