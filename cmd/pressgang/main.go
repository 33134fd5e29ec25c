package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pressgang/pressgang/internal/config"
	"github.com/pressgang/pressgang/internal/version"
)

var cyan = color.New(color.FgHiCyan, color.Bold).SprintFunc()

var rootCmd = &cobra.Command{
	Use:     "pressgang",
	Short:   "Pressgang publishes a directory of posts to a remote service, re-publishing only what changed",
	Version: version.Detailed(),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultConfigPath, "Pressgang config file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	setupLogging()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func setupLogging() {
	level := slog.LevelInfo
	for _, arg := range os.Args[1:] {
		if arg == "--debug" {
			level = slog.LevelDebug
		}
	}

	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})
	slog.SetDefault(slog.New(handler))
}

// loadConfig merges config file, PRESSGANG_* env vars and flags into a
// validated Config.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()

	if cmd.Flag("config").Changed {
		configFilePath, _ := cmd.Flags().GetString("config")
		v.SetConfigFile(configFilePath)
	} else {
		v.SetConfigFile(config.DefaultConfigPath)
	}

	if err := v.ReadInConfig(); err != nil {
		enoent := errors.Is(err, os.ErrNotExist)
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !enoent && !notFound {
			return nil, fmt.Errorf("config read '%s': %w", v.ConfigFileUsed(), err)
		}
	}

	bindFlags(v, cmd)

	v.SetEnvPrefix("PRESSGANG")
	v.AutomaticEnv()

	cfg := &config.Config{
		Path:          v.ConfigFileUsed(),
		RepoID:        v.GetString("repo_id"),
		RepoName:      v.GetString("repo_name"),
		ContentDir:    v.GetString("content_dir"),
		Formats:       v.GetStringSlice("formats"),
		Exclude:       v.GetStringSlice("exclude"),
		ServerURL:     v.GetString("server_url"),
		APIToken:      v.GetString("api_token"),
		StateBackend:  v.GetString("state_backend"),
		StatePath:     v.GetString("state_path"),
		MaxConcurrent: v.GetInt("max_concurrent"),
		MaxAttempts:   v.GetInt("max_attempts"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	for _, name := range []string{"repo_id", "content_dir", "server_url", "state_backend"} {
		if f := cmd.Flags().Lookup(name); f != nil {
			v.BindPFlag(name, f)
		}
	}
}

func showHeader() {
	fmt.Println(cyan(version.AppName), version.Short())
}
