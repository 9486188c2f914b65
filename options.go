package mkbtrfs

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Options accumulates mkfs.btrfs command-line options. Each slot holds at
// most one fully formatted argument token; setting a slot again replaces the
// previous token. The zero value (and NewOptions) is an empty registry.
//
// Setters use value receivers and return the updated Options, so previously
// returned values are never mutated. Setters that cannot fail return only
// Options; setters with preconditions also return an error and leave the
// receiver's slots untouched on failure.
type Options struct {
	byteCount       string
	checksum        string
	data            string
	features        string
	force           string
	label           string
	metadata        string
	mixed           string
	noDiscard       string
	nodesize        string
	rootdir         string
	runtimeFeatures string
	sectorsize      string
	shrink          string
	uuid            string
}

// NewOptions returns an empty option registry.
func NewOptions() Options {
	return Options{}
}

// ByteCount sets the size of each device as seen by the filesystem.
func (o Options) ByteCount(n uint64) Options {
	o.byteCount = fmt.Sprintf("--byte-count=%d", n)
	return o
}

// Checksum sets the block checksum algorithm.
func (o Options) Checksum(algorithm ChecksumAlgorithm) Options {
	o.checksum = fmt.Sprintf("--checksum=%s", algorithm)
	return o
}

// Data sets the profile for data block groups.
func (o Options) Data(profile DataProfile) Options {
	o.data = fmt.Sprintf("--data=%s", profile)
	return o
}

// Features sets mkfs-time features. Prefix a feature with '^' to unset it.
// Feature names are not validated here; mkfs.btrfs checks them itself. An
// empty list still emits --features= with an empty value, matching how the
// option has always been rendered, which is distinct from not calling
// Features at all.
func (o Options) Features(features ...string) Options {
	o.features = fmt.Sprintf("--features=%s", strings.Join(features, ","))
	return o
}

// Force formats the device even if an existing filesystem is present.
func (o Options) Force() Options {
	o.force = "--force"
	return o
}

// Label sets the filesystem label. The label must be at most 255 bytes;
// the limit is on encoded bytes, not characters, so multi-byte text hits it
// sooner.
func (o Options) Label(label string) (Options, error) {
	if len(label) > 255 {
		return o, &ArgumentError{
			Option: "label",
			Value:  label,
			Reason: fmt.Sprintf("must be at most 255 bytes, got %d", len(label)),
		}
	}
	o.label = fmt.Sprintf("--label=%s", label)
	return o, nil
}

// Metadata sets the profile for metadata block groups.
func (o Options) Metadata(profile DataProfile) Options {
	o.metadata = fmt.Sprintf("--metadata=%s", profile)
	return o
}

// Mixed enables mixing of data and metadata block groups.
func (o Options) Mixed() Options {
	o.mixed = "--mixed"
	return o
}

// NoDiscard disables the implicit TRIM of the storage device.
func (o Options) NoDiscard() Options {
	o.noDiscard = "--nodiscard"
	return o
}

// Nodesize sets the size of a b-tree node. The size must be a power of two
// no larger than 16384.
func (o Options) Nodesize(n uint64) (Options, error) {
	if n == 0 || n&(n-1) != 0 || n > 16384 {
		return o, &ArgumentError{
			Option: "nodesize",
			Value:  fmt.Sprintf("%d", n),
			Reason: "must be a power of 2 and at most 16384",
		}
	}
	o.nodesize = fmt.Sprintf("--nodesize=%d", n)
	return o, nil
}

// Rootdir sets a directory whose contents are copied into the new
// filesystem. The path must exist; only existence is checked here, type and
// permissions are left to mkfs.btrfs.
func (o Options) Rootdir(path string) (Options, error) {
	if _, err := os.Stat(path); err != nil {
		return o, fmt.Errorf("rootdir: %w", err)
	}
	o.rootdir = fmt.Sprintf("--rootdir=%s", path)
	return o, nil
}

// RuntimeFeatures sets features enabled at mount time. Prefix a feature with
// '^' to unset it. Like Features, names are not validated and an empty list
// emits --runtime-features= with an empty value.
func (o Options) RuntimeFeatures(features ...string) Options {
	o.runtimeFeatures = fmt.Sprintf("--runtime-features=%s", strings.Join(features, ","))
	return o
}

// Sectorsize sets the sector size. Values unsupported by the running kernel
// produce an unmountable filesystem; the kernel-support check belongs to
// mkfs.btrfs, so no validation happens here.
func (o Options) Sectorsize(n uint64) Options {
	o.sectorsize = fmt.Sprintf("--sectorsize=%d", n)
	return o
}

// Shrink shrinks a file target to the minimum required size. Only meaningful
// together with Rootdir when the target is a regular file.
func (o Options) Shrink() Options {
	o.shrink = "--shrink"
	return o
}

// UUID sets the filesystem UUID. The format is not validated; mkfs.btrfs
// rejects malformed UUIDs itself.
func (o Options) UUID(id string) Options {
	o.uuid = fmt.Sprintf("--uuid=%s", id)
	return o
}

// UUIDRandom sets the filesystem UUID to a freshly generated random (v4)
// UUID and returns it alongside the updated Options.
func (o Options) UUIDRandom() (Options, string) {
	id := uuid.NewString()
	return o.UUID(id), id
}

// slots returns every option slot in the fixed declared order. This order,
// not the order setters were called in, determines final argument order.
func (o Options) slots() []string {
	return []string{
		o.byteCount,
		o.checksum,
		o.data,
		o.features,
		o.force,
		o.label,
		o.metadata,
		o.mixed,
		o.noDiscard,
		o.nodesize,
		o.rootdir,
		o.runtimeFeatures,
		o.sectorsize,
		o.shrink,
		o.uuid,
	}
}

// Args compiles the populated slots into an argument vector in the fixed
// declared order, skipping empty slots. It is pure and repeatable; the
// target path is appended separately by Formatter.Format.
func (o Options) Args() []string {
	args := make([]string, 0, 15)
	for _, slot := range o.slots() {
		if slot != "" {
			args = append(args, slot)
		}
	}
	return args
}

// DumpArgs writes the compiled argument vector to w, one token per line,
// for human inspection. The registry is not altered.
func (o Options) DumpArgs(w io.Writer) {
	for _, arg := range o.Args() {
		fmt.Fprintln(w, arg)
	}
}

// Build bakes the options into a Formatter. The Options value stays usable
// afterwards; later setter calls do not affect already built Formatters.
func (o Options) Build() *Formatter {
	return &Formatter{args: o.Args()}
}
