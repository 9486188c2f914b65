package mkbtrfs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
)

// DefaultBinary is the mkfs.btrfs executable name, resolved through PATH.
const DefaultBinary = "mkfs.btrfs"

// Formatter runs mkfs.btrfs with a baked argument vector. Create one with
// Options.Build. A Formatter holds no mutable state and is safe for
// concurrent use; each Format call spawns its own independent process.
type Formatter struct {
	// Binary overrides the executable to invoke. Empty means DefaultBinary
	// resolved through PATH.
	Binary string

	args []string
}

// Result is the captured outcome of one mkfs.btrfs invocation. The output
// streams are returned uninterpreted; only ExitCode is authoritative for
// success, and judging it is left to the caller.
type Result struct {
	// ExitCode is the process exit status. Zero means mkfs.btrfs reported
	// success.
	ExitCode int

	// Stdout holds the raw bytes of the tool's standard output.
	Stdout []byte

	// Stderr holds the raw bytes of the tool's standard error.
	Stderr []byte
}

// Args returns a copy of the baked argument vector, without the target path.
func (f *Formatter) Args() []string {
	return slices.Clone(f.args)
}

// Format runs mkfs.btrfs against target, blocking until the process exits.
//
// The target must exist; a missing target fails with the underlying stat
// error before any process is spawned. The target is appended as the final
// positional argument after all option tokens. The returned error covers
// spawning problems only (executable not found, fork failure); a non-zero
// exit from mkfs.btrfs itself is reported through Result.ExitCode, not as
// an error.
func (f *Formatter) Format(ctx context.Context, target string) (*Result, error) {
	if _, err := os.Stat(target); err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}

	binary := f.Binary
	if binary == "" {
		binary = DefaultBinary
	}

	args := append(slices.Clone(f.args), target)
	cmd := exec.CommandContext(ctx, binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("run %s: %w", binary, err)
		}
	}

	return &Result{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
	}, nil
}
