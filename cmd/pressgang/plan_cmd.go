package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pressgang/pressgang/internal/engine"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what a sync would do without publishing anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true
		showHeader()

		orch, cleanup, err := buildOrchestrator(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		actions, err := orch.Plan(cmd.Context())
		if err != nil {
			return err
		}

		renderPlan(actions)
		return nil
	},
}

func init() {
	planCmd.Flags().String("repo_id", "", "Repository identity")
	planCmd.Flags().String("content_dir", "", "Directory containing posts")
	planCmd.Flags().String("server_url", "", "Publishing service URL")
	planCmd.Flags().String("state_backend", "", "State backend (remote|sqlite)")
}

func renderPlan(actions []engine.Action) {
	labels := map[engine.ActionType]string{
		engine.ActionCreate: color.GreenString("create"),
		engine.ActionUpdate: color.CyanString("update"),
		engine.ActionSkip:   color.New(color.Faint).Sprint("skip"),
	}

	var creates, updates, skips int
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, action := range actions {
		fmt.Fprintf(w, "  %s\t%s\n", labels[action.Type], action.Path)
		switch action.Type {
		case engine.ActionCreate:
			creates++
		case engine.ActionUpdate:
			updates++
		case engine.ActionSkip:
			skips++
		}
	}
	w.Flush()

	fmt.Printf("\n%d to create, %d to update, %d unchanged\n", creates, updates, skips)
}
