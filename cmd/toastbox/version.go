package main

import (
	"fmt"

	"github.com/cristianoliveira/toastbox/cmd"
	"github.com/spf13/cobra"
)

type versionClient interface {
	Version() string
}

// NewVersionCmd creates the version command with explicit dependencies.
func NewVersionCmd(client versionClient) *cobra.Command {
	if client == nil {
		panic("NewVersionCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show the current version of toastbox.`,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(c.OutOrStdout(), "toastbox version %s\n", client.Version())
			return err
		},
	}
}

var versionCmd = NewVersionCmd(runtimeClient)

func init() {
	cmd.RootCmd.AddCommand(versionCmd)
}
