package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"workspacectl/internal/system"
	"workspacectl/internal/tools"
	"workspacectl/internal/ui"
)

var statusTUI bool

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusTUI, "tui", false, "interactive dashboard")
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report installed and latest versions for the workspace tool set",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := system.ExecRunner{}
		if statusTUI {
			_, err := tea.NewProgram(ui.NewModel(r)).Run()
			return err
		}
		return printStatus(cmd.Context(), r)
	},
}

func printStatus(ctx context.Context, r system.Runner) error {
	for _, t := range tools.Tools {
		res := tools.Check(ctx, r, t)
		state := "missing"
		if res.Installed {
			state = "ok"
			if res.Version == "" {
				state = "ok (version unknown)"
			}
		}
		line := fmt.Sprintf("%-14s %-20s %s", t.ID, res.Version, state)
		if t.Package != "" || t.LatestURL != "" || t.GithubRepo != "" {
			if latest, err := tools.LatestVersion(ctx, r, t); err == nil {
				line += "  latest " + tools.NormalizeVersion(latest)
			}
		}
		fmt.Println(line)
	}
	return nil
}
