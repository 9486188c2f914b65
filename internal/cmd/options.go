package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/mkbtrfs"
	"github.com/harrison/mkbtrfs/internal/config"
)

// addOptionFlags registers one flag per mkfs.btrfs option slot. Shared by
// the format and args commands so the two always accept the same surface.
func addOptionFlags(cmd *cobra.Command) {
	cmd.Flags().Uint64("byte-count", 0, "Size of each device as seen by the filesystem")
	cmd.Flags().String("checksum", "", "Checksum algorithm (crc32c, xxhash, sha256, blake2)")
	cmd.Flags().String("data", "", "Data block group profile (raid0, raid1, ..., single, dup)")
	cmd.Flags().StringSlice("features", nil, "Mkfs-time features (prefix with ^ to unset)")
	cmd.Flags().Bool("force", false, "Format even if an existing filesystem is present")
	cmd.Flags().String("label", "", "Filesystem label (max 255 bytes)")
	cmd.Flags().String("metadata", "", "Metadata block group profile")
	cmd.Flags().Bool("mixed", false, "Mix data and metadata block groups")
	cmd.Flags().Bool("nodiscard", false, "Disable implicit TRIM of the device")
	cmd.Flags().Uint64("nodesize", 0, "B-tree node size (power of 2, max 16384)")
	cmd.Flags().String("rootdir", "", "Directory to copy into the new filesystem")
	cmd.Flags().StringSlice("runtime-features", nil, "Runtime features (prefix with ^ to unset)")
	cmd.Flags().Uint64("sectorsize", 0, "Sector size")
	cmd.Flags().Bool("shrink", false, "Shrink a file target to minimum size (with --rootdir)")
	cmd.Flags().String("uuid", "", "Filesystem UUID (validated by mkfs.btrfs)")
	cmd.Flags().Bool("random-uuid", false, "Generate a random filesystem UUID")
}

// applyConfigDefaults seeds opts from the config file's defaults section.
func applyConfigDefaults(opts mkbtrfs.Options, defaults config.DefaultOptions) (mkbtrfs.Options, error) {
	var err error

	if defaults.Label != "" {
		if opts, err = opts.Label(defaults.Label); err != nil {
			return opts, fmt.Errorf("config defaults: %w", err)
		}
	}
	if defaults.Checksum != "" {
		algorithm, err := mkbtrfs.ParseChecksumAlgorithm(defaults.Checksum)
		if err != nil {
			return opts, fmt.Errorf("config defaults: %w", err)
		}
		opts = opts.Checksum(algorithm)
	}
	if defaults.Data != "" {
		profile, err := mkbtrfs.ParseDataProfile(defaults.Data)
		if err != nil {
			return opts, fmt.Errorf("config defaults: %w", err)
		}
		opts = opts.Data(profile)
	}
	if defaults.Metadata != "" {
		profile, err := mkbtrfs.ParseDataProfile(defaults.Metadata)
		if err != nil {
			return opts, fmt.Errorf("config defaults: %w", err)
		}
		opts = opts.Metadata(profile)
	}
	if len(defaults.Features) > 0 {
		opts = opts.Features(defaults.Features...)
	}
	if len(defaults.RuntimeFeatures) > 0 {
		opts = opts.RuntimeFeatures(defaults.RuntimeFeatures...)
	}

	return opts, nil
}

// buildOptions turns config defaults plus the command's flags into a
// compiled option registry. Flags override config defaults slot by slot.
// Only flags the user actually set touch their slot, so --features '' still
// emits an explicit empty value while an omitted flag leaves the slot alone.
func buildOptions(cmd *cobra.Command, cfg *config.Config) (mkbtrfs.Options, error) {
	opts, err := applyConfigDefaults(mkbtrfs.NewOptions(), cfg.Defaults)
	if err != nil {
		return opts, err
	}

	flags := cmd.Flags()

	if flags.Changed("byte-count") {
		n, _ := flags.GetUint64("byte-count")
		opts = opts.ByteCount(n)
	}
	if flags.Changed("checksum") {
		s, _ := flags.GetString("checksum")
		algorithm, err := mkbtrfs.ParseChecksumAlgorithm(s)
		if err != nil {
			return opts, err
		}
		opts = opts.Checksum(algorithm)
	}
	if flags.Changed("data") {
		s, _ := flags.GetString("data")
		profile, err := mkbtrfs.ParseDataProfile(s)
		if err != nil {
			return opts, err
		}
		opts = opts.Data(profile)
	}
	if flags.Changed("features") {
		features, _ := flags.GetStringSlice("features")
		opts = opts.Features(features...)
	}
	if force, _ := flags.GetBool("force"); force {
		opts = opts.Force()
	}
	if flags.Changed("label") {
		label, _ := flags.GetString("label")
		if opts, err = opts.Label(label); err != nil {
			return opts, err
		}
	}
	if flags.Changed("metadata") {
		s, _ := flags.GetString("metadata")
		profile, err := mkbtrfs.ParseDataProfile(s)
		if err != nil {
			return opts, err
		}
		opts = opts.Metadata(profile)
	}
	if mixed, _ := flags.GetBool("mixed"); mixed {
		opts = opts.Mixed()
	}
	if noDiscard, _ := flags.GetBool("nodiscard"); noDiscard {
		opts = opts.NoDiscard()
	}
	if flags.Changed("nodesize") {
		n, _ := flags.GetUint64("nodesize")
		if opts, err = opts.Nodesize(n); err != nil {
			return opts, err
		}
	}
	if flags.Changed("rootdir") {
		dir, _ := flags.GetString("rootdir")
		if opts, err = opts.Rootdir(dir); err != nil {
			return opts, err
		}
	}
	if flags.Changed("runtime-features") {
		features, _ := flags.GetStringSlice("runtime-features")
		opts = opts.RuntimeFeatures(features...)
	}
	if flags.Changed("sectorsize") {
		n, _ := flags.GetUint64("sectorsize")
		opts = opts.Sectorsize(n)
	}
	if shrink, _ := flags.GetBool("shrink"); shrink {
		opts = opts.Shrink()
	}

	uuidSet := flags.Changed("uuid")
	randomUUID, _ := flags.GetBool("random-uuid")
	if uuidSet && randomUUID {
		return opts, fmt.Errorf("cannot use both --uuid and --random-uuid")
	}
	if uuidSet {
		id, _ := flags.GetString("uuid")
		opts = opts.UUID(id)
	}
	if randomUUID {
		opts, _ = opts.UUIDRandom()
	}

	return opts, nil
}

// loadConfig resolves the --config flag, falling back to the default
// .mkbtrfs/config.yaml search path.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfigFromDir(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
