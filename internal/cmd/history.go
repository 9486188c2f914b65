package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/harrison/mkbtrfs/internal/history"
)

// NewHistoryCommand creates the history command and its subcommands
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the mkfs.btrfs invocation journal",
		Long: `The journal records every format run: target, argument vector, exit
code, duration and timestamp. Recording can be disabled per run with
--no-history or globally in the config file.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newHistoryListCommand())
	cmd.AddCommand(newHistoryClearCommand())

	return cmd
}

func newHistoryListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list",
		Short:        "List recorded invocations, newest first",
		Args:         cobra.NoArgs,
		RunE:         historyListCommand,
		SilenceUsage: true,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .mkbtrfs/config.yaml)")
	cmd.Flags().Int("limit", 20, "Maximum number of entries to show (0 = all)")

	return cmd
}

func newHistoryClearCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "clear",
		Short:        "Delete all recorded invocations",
		Args:         cobra.NoArgs,
		RunE:         historyClearCommand,
		SilenceUsage: true,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .mkbtrfs/config.yaml)")

	return cmd
}

func historyListCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	invocations, err := store.List(limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(invocations) == 0 {
		fmt.Fprintln(out, "No recorded invocations")
		return nil
	}

	for _, inv := range invocations {
		fmt.Fprintln(out, formatInvocation(inv, colorOutput(out)))
	}
	return nil
}

func historyClearCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Clear(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Invocation journal cleared")
	return nil
}

// colorOutput reports whether out is a terminal that should receive color.
func colorOutput(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return !color.NoColor && isatty.IsTerminal(f.Fd())
}

// formatInvocation renders one journal entry as a single line:
//
//	2026-08-30 14:03:11  ok    1.5s  /dev/sdb1  --force --label=vol
func formatInvocation(inv history.Invocation, colorize bool) string {
	status := "ok"
	if inv.ExitCode != 0 {
		status = fmt.Sprintf("exit %d", inv.ExitCode)
	}
	if colorize {
		if inv.ExitCode == 0 {
			status = color.New(color.FgGreen).Sprint(status)
		} else {
			status = color.New(color.FgRed).Sprint(status)
		}
	}

	return fmt.Sprintf("%s  %-8s %6s  %s  %s",
		inv.Timestamp.Local().Format("2006-01-02 15:04:05"),
		status,
		inv.Duration.Round(100*time.Millisecond),
		inv.Target,
		strings.Join(inv.Args, " "),
	)
}
