package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewArgsCommand creates the args command
func NewArgsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "args [target]",
		Short: "Show the compiled mkfs.btrfs argument vector without formatting",
		Long: `Compile the argument vector that format would pass to mkfs.btrfs and
print it, one token per line, without spawning anything. When a target is
given it is shown appended as the final positional argument; the target does
not need to exist since nothing is invoked.

Examples:
  mkbtrfs args --force --label scratch
  mkbtrfs args --data raid1 --metadata raid1 /dev/sdb1`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         argsCommand,
		SilenceUsage: true,
	}

	addOptionFlags(cmd)
	cmd.Flags().String("config", "", "Path to config file (default: .mkbtrfs/config.yaml)")

	return cmd
}

// argsCommand implements the args command logic
func argsCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts, err := buildOptions(cmd, cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	opts.DumpArgs(out)
	if len(args) == 1 {
		fmt.Fprintln(out, args[0])
	}

	return nil
}
