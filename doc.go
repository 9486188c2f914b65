// Package mkbtrfs builds validated mkfs.btrfs invocations.
//
// Callers assemble options through chained setter calls on an Options value,
// bake the result into a Formatter, and format a device or file:
//
//	opts := mkbtrfs.NewOptions().
//		Checksum(mkbtrfs.Crc32c).
//		Data(mkbtrfs.Dup).
//		Force()
//	opts, err := opts.Label("my-volume")
//	if err != nil {
//		return err
//	}
//	result, err := opts.Build().Format(ctx, "/dev/sdb1")
//
// Each Options value is independent; setters return an updated copy, so a
// partially configured value stays usable if a later setter fails. Option
// order on the mkfs.btrfs command line is fixed regardless of the order
// setters are called in.
//
// The package validates only what mkfs.btrfs cannot report cleanly itself
// (label length, nodesize constraints, path existence). Everything else,
// including feature names and UUID format, is passed through for the tool
// to accept or reject.
package mkbtrfs
