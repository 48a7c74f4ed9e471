package main

import (
	"github.com/cristianoliveira/toastbox/cmd"
	"github.com/spf13/cobra"
)

// NewHelpCmd creates the help command.
func NewHelpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help [command]",
		Short: "Show this help message",
		Long:  `Show this help message, or the help of a single command.`,
		RunE: func(c *cobra.Command, args []string) error {
			root := c.Root()
			if len(args) == 0 {
				cmd.PrintHelp(root, c.OutOrStdout())
				return nil
			}
			target, _, err := root.Find(args)
			if err != nil || target == nil || target == root {
				cmd.PrintHelp(root, c.OutOrStdout())
				return nil
			}
			return target.Help()
		},
	}
}

var helpCmd = NewHelpCmd()

func init() {
	cmd.RootCmd.SetHelpCommand(helpCmd)
}
