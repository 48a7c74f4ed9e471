package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/cristianoliveira/toastbox/cmd"
	"github.com/cristianoliveira/toastbox/internal/app"
	"github.com/cristianoliveira/toastbox/internal/logging"
	"github.com/spf13/cobra"
)

// NewTUICmd creates the tui command with explicit dependencies.
func NewTUICmd(client app.ToastClient) *cobra.Command {
	if client == nil {
		panic("NewTUICmd: client dependency cannot be nil")
	}

	var severityFlag string

	tuiCmd := &cobra.Command{
		Use:   "tui [OPTIONS]",
		Short: "Compose notifications interactively",
		Long: `toastbox tui - Compose notifications interactively

USAGE:
    toastbox tui [OPTIONS]

OPTIONS:
    -s, --severity <level>   Initial severity for new notifications (default: info)
    -h, --help               Show this help

KEYS:
    enter     Show the typed message
    tab       Cycle severity
    ctrl+x    Dismiss the newest notification
    ctrl+l    Dismiss all notifications
    esc       Quit

Notifications live only while the TUI is open.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(commandContext(c), os.Interrupt, syscall.SIGTERM)
			defer stop()

			uc := app.NewTUIUseCase(client, logging.GetGlobal())
			return uc.Execute(ctx, app.TUIInput{Severity: severityFlag})
		},
	}

	tuiCmd.Flags().StringVarP(&severityFlag, "severity", "s", "info", "Initial severity: error, success, info, warning")

	return tuiCmd
}

var tuiCmd = NewTUICmd(runtimeClient)

func init() {
	cmd.RootCmd.AddCommand(tuiCmd)
}
