// Package cmd implements the mkbtrfs command-line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for mkbtrfs
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mkbtrfs",
		Short: "Typed front-end for mkfs.btrfs",
		Long: `mkbtrfs builds validated mkfs.btrfs invocations.

Options are assembled from config defaults and command-line flags, compiled
into the exact argument vector mkfs.btrfs expects, and handed to the tool as
a subprocess. The args subcommand shows the compiled vector without
formatting anything.

Requires btrfs-progs for actual formatting.

Configuration is loaded from .mkbtrfs/config.yaml if present.
CLI flags override configuration file settings.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewFormatCommand())
	cmd.AddCommand(NewArgsCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
