package main

import (
	"fmt"
	"time"

	"github.com/cristianoliveira/toastbox/cmd"
	"github.com/cristianoliveira/toastbox/internal/app"
	"github.com/cristianoliveira/toastbox/internal/colors"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command and its subcommands.
func NewHistoryCmd(client app.HistoryClient) *cobra.Command {
	if client == nil {
		panic("NewHistoryCmd: client dependency cannot be nil")
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the journal of shown and dismissed notifications",
		Long: `toastbox history - Inspect the journal of shown and dismissed notifications

USAGE:
    toastbox history list [OPTIONS]
    toastbox history clear [OPTIONS]

The journal is an audit log. Live notifications are never restored from it.`,
		Args: cobra.NoArgs,
	}

	historyCmd.AddCommand(newHistoryListCmd(client), newHistoryClearCmd(client))
	return historyCmd
}

func newHistoryListCmd(client app.HistoryClient) *cobra.Command {
	var input app.HistoryListInput

	listCmd := &cobra.Command{
		Use:   "list [OPTIONS]",
		Short: "List journal entries, newest first",
		Long: `toastbox history list - List journal entries, newest first

USAGE:
    toastbox history list [OPTIONS]

OPTIONS:
    --limit <n>          Show at most n entries (0 for all)
    --severity <level>   Only entries of this severity
    --event <event>      Only shown or removed entries
    --format <format>    simple, table or json (default: table)
    --template <tmpl>    Preset (compact, detailed, ids, tsv) or a line
                         template such as "{{time}} {{severity}} {{message}}"
    --search <query>     Only entries whose message or id match
    --search-mode <m>    token (default), substring or regex
    -i, --ignore-case    Case-insensitive search
    -h, --help           Show this help

Token search needs every word to match; the words "sticky" and "timed"
filter by lifetime.

Template variables: seq, event, id, severity, message, duration-ms,
duration, time, timestamp.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return app.NewHistoryUseCase(client).List(commandContext(c), input, c.OutOrStdout())
		},
	}

	listCmd.Flags().IntVar(&input.Limit, "limit", 20, "Show at most n entries (0 for all)")
	listCmd.Flags().StringVar(&input.Severity, "severity", "", "Only entries of this severity")
	listCmd.Flags().StringVar(&input.Event, "event", "", "Only shown or removed entries")
	listCmd.Flags().StringVar(&input.Format, "format", "table", "Output format: simple, table, json")
	listCmd.Flags().StringVar(&input.Template, "template", "", "Preset name or {{variable}} line template")
	listCmd.Flags().StringVar(&input.Search, "search", "", "Only entries whose message or id match")
	listCmd.Flags().StringVar(&input.SearchMode, "search-mode", "token", "Search mode: token, substring, regex")
	listCmd.Flags().BoolVarP(&input.IgnoreCase, "ignore-case", "i", false, "Case-insensitive search")

	return listCmd
}

func newHistoryClearCmd(client app.HistoryClient) *cobra.Command {
	var olderThanFlag time.Duration

	clearCmd := &cobra.Command{
		Use:   "clear [OPTIONS]",
		Short: "Delete journal entries",
		Long: `toastbox history clear - Delete journal entries

USAGE:
    toastbox history clear [OPTIONS]

OPTIONS:
    --older-than <age>   Only delete entries older than age (e.g. 24h)
    -h, --help           Show this help`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			n, err := app.NewHistoryUseCase(client).Clear(commandContext(c), olderThanFlag)
			if err != nil {
				return err
			}
			colors.Success(fmt.Sprintf("removed %d history entries", n))
			return nil
		},
	}

	clearCmd.Flags().DurationVar(&olderThanFlag, "older-than", 0, "Only delete entries older than this age")

	return clearCmd
}

var historyCmd = NewHistoryCmd(runtimeClient)

func init() {
	cmd.RootCmd.AddCommand(historyCmd)
}
