package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/pressgang/pressgang/internal/config"
	"github.com/pressgang/pressgang/internal/utils"
)

var errSyncFailures = errors.New("one or more paths failed to publish")

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one synchronization pass against the publishing service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true
		showHeader()

		unlock, err := acquireRunLock(cfg)
		if err != nil {
			return err
		}
		defer unlock()

		orch, cleanup, err := buildOrchestrator(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		report, runErr := orch.Run(cmd.Context())
		if report != nil {
			fmt.Println()
			report.Render(os.Stdout)
		}
		if runErr != nil {
			return runErr
		}
		if report.HasFailures() {
			return errSyncFailures
		}
		return nil
	},
}

func init() {
	syncCmd.Flags().String("repo_id", "", "Repository identity")
	syncCmd.Flags().String("content_dir", "", "Directory containing posts")
	syncCmd.Flags().String("server_url", "", "Publishing service URL")
	syncCmd.Flags().String("state_backend", "", "State backend (remote|sqlite)")
}

// acquireRunLock keeps two local invocations for the same config from
// racing. Cross-machine races are handled by the store's version token.
func acquireRunLock(cfg *config.Config) (func(), error) {
	lockDir := filepath.Dir(config.DefaultConfigPath)
	if cfg.Path != "" {
		lockDir = filepath.Dir(cfg.Path)
	}
	if err := utils.EnsureDir(lockDir); err != nil {
		return nil, err
	}

	lock := flock.New(filepath.Join(lockDir, "pressgang.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another pressgang run is already in progress")
	}
	return func() { _ = lock.Unlock() }, nil
}
