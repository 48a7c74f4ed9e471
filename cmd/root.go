// Package cmd holds the root command shared by the toastbox binary.
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/toastbox/internal/colors"
	"github.com/cristianoliveira/toastbox/internal/config"
	"github.com/cristianoliveira/toastbox/internal/errors"
	"github.com/cristianoliveira/toastbox/internal/logging"
	"github.com/cristianoliveira/toastbox/internal/version"
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:           "toastbox",
	Short:         "Transient notifications for the terminal.",
	Long:          `Transient notifications for the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		Init()
		return nil
	},
}

// Init loads configuration and starts the global logger. A logger that
// fails to start is reported and the command carries on without it.
func Init() {
	config.Load()
	colors.SetDebug(config.GetBool("debug", false))
	colors.SetQuiet(config.GetBool("quiet", false))
	if err := logging.InitGlobal(); err != nil {
		colors.Warning("logging disabled:", err.Error())
	}
}

// Execute runs the root command and reports any error on stderr.
func Execute() error {
	err := RootCmd.Execute()
	if err != nil {
		errors.Report(errors.NewDefaultCLIHandler(), err)
	}
	if shutdownErr := logging.ShutdownGlobal(); shutdownErr != nil {
		colors.Debug("logger shutdown:", shutdownErr.Error())
	}
	return err
}

func init() {
	RootCmd.Version = version.String()
	RootCmd.CompletionOptions.HiddenDefaultCmd = true
	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != cmd.Root() {
			fmt.Fprintln(cmd.OutOrStdout(), cmd.Long)
			return
		}
		PrintHelp(cmd, cmd.OutOrStdout())
	})
}

// commandOrder is the order commands are listed in help output.
var commandOrder = []string{
	"show",
	"tui",
	"history",
	"help",
	"version",
}

// PrintHelp writes the colored root help to w.
func PrintHelp(cmd *cobra.Command, w io.Writer) {
	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %s%-16s%s %s%s%s", colors.Cyan, found.Name(), colors.Reset, colors.Green, found.Short, colors.Reset))
	}

	versionStr := cmd.Version
	if versionStr == "" {
		versionStr = "0.0.0"
	}

	header := colors.Blue
	reset := colors.Reset
	fmt.Fprintf(w, `%stoastbox v%s%s

%sTransient notifications for the terminal.%s

%sUSAGE:%s
    toastbox [COMMAND] [OPTIONS]

%sCOMMANDS:%s
%s

%sOPTIONS:%s
    -h, --help      Show help message
`, header, versionStr, reset, colors.Cyan, reset, header, reset, header, reset, strings.Join(cmdLines, "\n"), header, reset)
}
