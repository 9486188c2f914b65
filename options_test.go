package mkbtrfs

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyRegistryCompilesToNothing(t *testing.T) {
	assert.Empty(t, NewOptions().Args())
}

// TestArgOrderIndependentOfCallOrder verifies the compiled vector follows
// the declared slot order no matter which setter ran first.
func TestArgOrderIndependentOfCallOrder(t *testing.T) {
	forceFirst, err := NewOptions().Force().Label("vol")
	require.NoError(t, err)

	labelFirst, err := NewOptions().Label("vol")
	require.NoError(t, err)
	labelFirst = labelFirst.Force()

	want := []string{"--force", "--label=vol"}
	assert.Equal(t, want, forceFirst.Args())
	assert.Equal(t, want, labelFirst.Args())
}

func TestResettingSlotReplacesToken(t *testing.T) {
	opts := NewOptions().ByteCount(512).ByteCount(1024)
	assert.Equal(t, []string{"--byte-count=1024"}, opts.Args())

	opts = NewOptions().Mixed().Mixed()
	assert.Equal(t, []string{"--mixed"}, opts.Args())
}

func TestSettersDoNotMutatePriorValues(t *testing.T) {
	base := NewOptions().Force()
	withLabel, err := base.Label("vol")
	require.NoError(t, err)

	assert.Equal(t, []string{"--force"}, base.Args())
	assert.Equal(t, []string{"--force", "--label=vol"}, withLabel.Args())
}

func TestLabelByteLengthBoundary(t *testing.T) {
	opts, err := NewOptions().Label(strings.Repeat("A", 255))
	require.NoError(t, err)
	assert.Len(t, opts.Args(), 1)

	_, err = NewOptions().Label(strings.Repeat("A", 256))
	require.Error(t, err)
	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "label", argErr.Option)

	// The bound is bytes, not runes: 128 two-byte runes exceed it.
	_, err = NewOptions().Label(strings.Repeat("é", 128))
	assert.Error(t, err)
}

func TestLabelFailureLeavesOptionsUsable(t *testing.T) {
	opts := NewOptions().Force()
	_, err := opts.Label(strings.Repeat("A", 256))
	require.Error(t, err)

	// The prior value is still valid and unchanged.
	assert.Equal(t, []string{"--force"}, opts.Args())
}

func TestNodesizeValidation(t *testing.T) {
	tests := []struct {
		n  uint64
		ok bool
	}{
		{0, false},
		{1, true},
		{4096, true},
		{4097, false},
		{16384, true},
		{32768, false},
	}

	for _, tt := range tests {
		opts, err := NewOptions().Nodesize(tt.n)
		if tt.ok {
			require.NoError(t, err, "nodesize %d should be accepted", tt.n)
			assert.Len(t, opts.Args(), 1)
		} else {
			require.Error(t, err, "nodesize %d should be rejected", tt.n)
			var argErr *ArgumentError
			assert.ErrorAs(t, err, &argErr)
		}
	}
}

func TestFeaturesEmptyListEmitsEmptyValue(t *testing.T) {
	// An empty list is an explicit empty value, not option absence.
	opts := NewOptions().Features()
	assert.Equal(t, []string{"--features="}, opts.Args())

	opts = NewOptions().RuntimeFeatures()
	assert.Equal(t, []string{"--runtime-features="}, opts.Args())
}

func TestFeaturesCommaJoined(t *testing.T) {
	opts := NewOptions().Features("mixed-bg", "^no-holes")
	assert.Equal(t, []string{"--features=mixed-bg,^no-holes"}, opts.Args())
}

func TestRootdirMustExist(t *testing.T) {
	dir := t.TempDir()

	opts, err := NewOptions().Rootdir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"--rootdir=" + dir}, opts.Args())

	_, err = NewOptions().Rootdir(dir + "/does-not-exist")
	require.Error(t, err)
	var argErr *ArgumentError
	assert.False(t, errors.As(err, &argErr), "a missing rootdir is an I/O error, not an argument error")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestUUIDRandom(t *testing.T) {
	opts, id := NewOptions().UUIDRandom()
	require.NotEmpty(t, id)
	assert.Equal(t, []string{"--uuid=" + id}, opts.Args())
}

// TestFullChainCompilesInDeclaredOrder covers every setter at once, mirroring
// the complete mkfs.btrfs option surface.
func TestFullChainCompilesInDeclaredOrder(t *testing.T) {
	dir := t.TempDir()

	opts := NewOptions().
		ByteCount(536_870_912).
		Checksum(Crc32c).
		Data(Dup).
		Features("mixed-bg").
		Force().
		Metadata(Dup).
		Mixed().
		NoDiscard().
		RuntimeFeatures("quota").
		Sectorsize(4096).
		Shrink().
		UUID("73e1b7e2-a3a8-49c2-b258-06f01a889bba")

	opts, err := opts.Label("label-label")
	require.NoError(t, err)
	opts, err = opts.Nodesize(4096)
	require.NoError(t, err)
	opts, err = opts.Rootdir(dir)
	require.NoError(t, err)

	want := []string{
		"--byte-count=536870912",
		"--checksum=crc32c",
		"--data=dup",
		"--features=mixed-bg",
		"--force",
		"--label=label-label",
		"--metadata=dup",
		"--mixed",
		"--nodiscard",
		"--nodesize=4096",
		"--rootdir=" + dir,
		"--runtime-features=quota",
		"--sectorsize=4096",
		"--shrink",
		"--uuid=73e1b7e2-a3a8-49c2-b258-06f01a889bba",
	}
	assert.Equal(t, want, opts.Args())

	// Compilation is repeatable.
	assert.Equal(t, want, opts.Args())
}

func TestDumpArgs(t *testing.T) {
	opts, err := NewOptions().Shrink().Label("vol")
	require.NoError(t, err)

	var buf strings.Builder
	opts.DumpArgs(&buf)
	assert.Equal(t, "--label=vol\n--shrink\n", buf.String())

	// Dumping does not alter the registry.
	assert.Equal(t, []string{"--label=vol", "--shrink"}, opts.Args())
}
