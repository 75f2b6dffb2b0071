package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"workspacectl/internal/orchestrator"
	"workspacectl/internal/session"
	"workspacectl/internal/system"
)

// Exit codes for the two hard-failure classes, distinguishable by
// wrapping scripts.
const (
	exitRequiredTool  = 2
	exitPoolExhausted = 3
)

var debugFlag bool

var rootCmd = &cobra.Command{
	Use:   "workspacectl",
	Short: "workspacectl – development workspace bootstrap",
	Long:  "workspacectl provisions the workspace tool set and attaches an agent session.",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default action: the full bootstrap run
		return runUp(cmd.Context(), false)
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		system.SetDebug(debugFlag)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "verbose step logging")
}

// Execute runs the CLI and maps hard failures to distinct exit codes.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps the two hard-failure classes to their distinct codes;
// everything else exits 1.
func exitCode(err error) int {
	switch {
	case errors.Is(err, orchestrator.ErrRequiredTool):
		return exitRequiredTool
	case errors.Is(err, session.ErrPoolExhausted):
		return exitPoolExhausted
	}
	return 1
}
