package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pressgang/pressgang/internal/config"
	"github.com/pressgang/pressgang/internal/utils"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		path, _ := cmd.Flags().GetString("config")
		path, err := utils.ResolvePath(path)
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		if utils.FileExists(path) && !force {
			return fmt.Errorf("config already exists at '%s', pass --force to overwrite", path)
		}

		repoID, _ := cmd.Flags().GetString("repo_id")
		contentDir, _ := cmd.Flags().GetString("content_dir")
		serverURL, _ := cmd.Flags().GetString("server_url")

		cfg := &config.Config{
			RepoID:       repoID,
			ContentDir:   contentDir,
			Formats:      []string{config.FormatMarkdown},
			ServerURL:    serverURL,
			StateBackend: config.StateBackendRemote,
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := cfg.Save(path); err != nil {
			return err
		}

		fmt.Println("Config written to", path)
		fmt.Println("Set api_token (or PRESSGANG_API_TOKEN) before running 'pressgang sync'.")
		return nil
	},
}

func init() {
	initCmd.Flags().String("repo_id", "my-blog", "Repository identity")
	initCmd.Flags().String("content_dir", ".", "Directory containing posts")
	initCmd.Flags().String("server_url", "https://press.example.com", "Publishing service URL")
	initCmd.Flags().Bool("force", false, "Overwrite an existing config")
}
