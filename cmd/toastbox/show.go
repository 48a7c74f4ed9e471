package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cristianoliveira/toastbox/cmd"
	"github.com/cristianoliveira/toastbox/internal/app"
	"github.com/cristianoliveira/toastbox/internal/domain"
	"github.com/cristianoliveira/toastbox/internal/logging"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// NewShowCmd creates the show command with explicit dependencies.
func NewShowCmd(client app.ToastClient) *cobra.Command {
	if client == nil {
		panic("NewShowCmd: client dependency cannot be nil")
	}

	var severityFlag string
	var durationFlag string
	var plainFlag bool

	showCmd := &cobra.Command{
		Use:   "show [OPTIONS] <message>",
		Short: "Show a notification until it is dismissed",
		Long: `toastbox show - Show a notification until it is dismissed

USAGE:
    toastbox show [OPTIONS] <message>

OPTIONS:
    -s, --severity <level>   error, success, info or warning (default: error)
    -d, --duration <time>    Lifetime such as 3s or 4500 (ms); 0 disables auto-dismiss
    --plain                  Print lines instead of drawing a toast
    -h, --help               Show this help

Without --severity the notification is an error. Without --duration the
severity default applies: error 5s, success 3s, info 4s, warning 4s.
A toast without auto-dismiss stays until esc; in plain mode it is
printed once. Output is plain when stdout is not a terminal.
Set NO_COLOR to disable colors in plain output.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("%w: show requires a message", domain.ErrInvalidArgument)
			}
			return nil
		},
		RunE: func(c *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(commandContext(c), os.Interrupt, syscall.SIGTERM)
			defer stop()

			uc := app.NewShowUseCase(client, logging.GetGlobal())
			return uc.Execute(ctx, app.ShowInput{
				Args:     args,
				Severity: severityFlag,
				Duration: durationFlag,
				Plain:    plainFlag || !stdoutIsTerminal(),
				Color:    colorEnabled(),
				Output:   c.OutOrStdout(),
			})
		},
	}

	showCmd.Flags().StringVarP(&severityFlag, "severity", "s", "error", "Severity: error, success, info, warning")
	showCmd.Flags().StringVarP(&durationFlag, "duration", "d", "", "Lifetime override (e.g. 3s, 4500); 0 for sticky")
	showCmd.Flags().BoolVar(&plainFlag, "plain", false, "Print lines instead of drawing a toast")

	return showCmd
}

func commandContext(c *cobra.Command) context.Context {
	if ctx := c.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// colorEnabled follows the NO_COLOR convention.
func colorEnabled() bool {
	_, set := os.LookupEnv("NO_COLOR")
	return !set
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

var showCmd = NewShowCmd(runtimeClient)

func init() {
	cmd.RootCmd.AddCommand(showCmd)
}
