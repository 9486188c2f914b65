package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/mkbtrfs"
	"github.com/harrison/mkbtrfs/internal/config"
	"github.com/harrison/mkbtrfs/internal/devlock"
	"github.com/harrison/mkbtrfs/internal/history"
	"github.com/harrison/mkbtrfs/internal/logger"
)

// NewFormatCommand creates the format command
func NewFormatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format <target>",
		Short: "Format a device or file with mkfs.btrfs",
		Long: `Format a device or file by invoking mkfs.btrfs with the compiled
argument vector. The target must exist; mkfs.btrfs performs all further
validation of the target itself.

An advisory lock is taken on the target so concurrent mkbtrfs processes do
not format the same device at once (disable with --no-lock). Each run is
recorded in the invocation journal unless history is disabled.

Examples:
  mkbtrfs format --force --label scratch /dev/sdb1
  mkbtrfs format --data raid1 --metadata raid1 /dev/sdb1
  mkbtrfs format --rootdir ./seed --shrink fs.img
  mkbtrfs format --binary /usr/local/sbin/mkfs.btrfs /dev/sdb1`,
		Args:         cobra.ExactArgs(1),
		RunE:         formatCommand,
		SilenceUsage: true,
	}

	addOptionFlags(cmd)
	cmd.Flags().String("config", "", "Path to config file (default: .mkbtrfs/config.yaml)")
	cmd.Flags().String("binary", "", "mkfs.btrfs executable to invoke (default: resolved via PATH)")
	cmd.Flags().Bool("no-lock", false, "Skip the advisory per-target lock")
	cmd.Flags().Bool("no-history", false, "Do not record this run in the journal")
	cmd.Flags().String("log-level", "", "Console verbosity (trace, debug, info, warn, error)")

	return cmd
}

// formatCommand implements the format command logic
func formatCommand(cmd *cobra.Command, args []string) error {
	target := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logLevel := cfg.LogLevel
	if flagLevel, _ := cmd.Flags().GetString("log-level"); flagLevel != "" {
		logLevel = flagLevel
	}
	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), logLevel)

	opts, err := buildOptions(cmd, cfg)
	if err != nil {
		return err
	}

	formatter := opts.Build()
	formatter.Binary = cfg.Binary
	if flagBinary, _ := cmd.Flags().GetString("binary"); flagBinary != "" {
		formatter.Binary = flagBinary
	}

	if noLock, _ := cmd.Flags().GetBool("no-lock"); cfg.Lock && !noLock {
		lock := devlock.New(target)
		log.Debugf("acquiring lock %s", lock.Path())
		acquired, err := lock.TryLock()
		if err != nil {
			return err
		}
		if !acquired {
			return fmt.Errorf("target %s is being formatted by another mkbtrfs process", target)
		}
		defer lock.Unlock()
	}

	binary := formatter.Binary
	if binary == "" {
		binary = mkbtrfs.DefaultBinary
	}
	log.Infof("formatting %s with %s", target, binary)
	log.Debugf("argument vector: %v", formatter.Args())

	start := time.Now()
	result, err := formatter.Format(cmd.Context(), target)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	recordHistory(cmd, cfg, log, history.Invocation{
		Target:   target,
		Args:     formatter.Args(),
		ExitCode: result.ExitCode,
		Duration: elapsed,
	})

	// The tool's output is passed through uninterpreted.
	cmd.OutOrStdout().Write(result.Stdout)
	cmd.ErrOrStderr().Write(result.Stderr)

	if result.ExitCode != 0 {
		return fmt.Errorf("%s exited with status %d", binary, result.ExitCode)
	}

	log.Infof("formatted %s in %s", target, elapsed.Round(time.Millisecond))
	return nil
}

// recordHistory appends the run to the journal. Journal failures are
// reported but never fail the format itself.
func recordHistory(cmd *cobra.Command, cfg *config.Config, log *logger.ConsoleLogger, inv history.Invocation) {
	noHistory, _ := cmd.Flags().GetBool("no-history")
	if !cfg.History.Enabled || noHistory {
		return
	}

	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		log.Warnf("history disabled for this run: %v", err)
		return
	}
	defer store.Close()

	if err := store.Record(inv); err != nil {
		log.Warnf("failed to record invocation: %v", err)
	}
}
