package cli

import (
	"context"

	"github.com/spf13/cobra"

	"workspacectl/internal/config"
	"workspacectl/internal/orchestrator"
	"workspacectl/internal/system"
)

var skipSession bool

func init() {
	rootCmd.AddCommand(upCmd)
	upCmd.Flags().BoolVar(&skipSession, "skip-session", false, "provision tools only, do not start a session")
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Provision the workspace and attach an agent session",
	Long: "Ensures the workspace tool set is installed and current, starts the " +
		"helper daemon, then creates and attaches a tmux session running the coding agent.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUp(cmd.Context(), skipSession)
	},
}

func runUp(ctx context.Context, skipSession bool) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	o := orchestrator.New(settings, system.Logger)
	o.SkipSession = skipSession
	return o.Run(ctx)
}
