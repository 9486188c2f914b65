package mkbtrfs

// RuntimeFeatureNames lists the runtime features mkfs.btrfs documents at the
// time of writing. It is advisory only; feature names are never validated
// here because mkfs.btrfs re-validates them itself.
var RuntimeFeatureNames = []string{"quota", "free-space-tree"}

// DataProfile is a block group profile accepted by mkfs.btrfs for the
// --data and --metadata options.
type DataProfile int

// The supported data and metadata block group profiles.
const (
	Raid0 DataProfile = iota
	Raid1
	Raid1c3
	Raid1c4
	Raid5
	Raid6
	Raid10
	Single
	Dup
)

// String returns the exact lowercase keyword mkfs.btrfs expects for the
// profile. Every profile constant has a keyword; an out-of-range value
// returns "unknown".
func (p DataProfile) String() string {
	switch p {
	case Raid0:
		return "raid0"
	case Raid1:
		return "raid1"
	case Raid1c3:
		return "raid1c3"
	case Raid1c4:
		return "raid1c4"
	case Raid5:
		return "raid5"
	case Raid6:
		return "raid6"
	case Raid10:
		return "raid10"
	case Single:
		return "single"
	case Dup:
		return "dup"
	default:
		return "unknown"
	}
}

// ParseDataProfile converts a profile keyword (as spelled on the mkfs.btrfs
// command line) back into a DataProfile. Used by front-ends that accept the
// profile as text.
func ParseDataProfile(s string) (DataProfile, error) {
	for p := Raid0; p <= Dup; p++ {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, &ArgumentError{Option: "data profile", Value: s, Reason: "unrecognized profile keyword"}
}

// ChecksumAlgorithm is a block checksum algorithm accepted by mkfs.btrfs for
// the --checksum option.
type ChecksumAlgorithm int

// The supported block checksum algorithms.
const (
	Crc32c ChecksumAlgorithm = iota
	XxHash
	Sha256
	Blake2
)

// String returns the exact lowercase keyword mkfs.btrfs expects for the
// algorithm.
func (c ChecksumAlgorithm) String() string {
	switch c {
	case Crc32c:
		return "crc32c"
	case XxHash:
		return "xxhash"
	case Sha256:
		return "sha256"
	case Blake2:
		return "blake2"
	default:
		return "unknown"
	}
}

// ParseChecksumAlgorithm converts a checksum keyword back into a
// ChecksumAlgorithm.
func ParseChecksumAlgorithm(s string) (ChecksumAlgorithm, error) {
	for c := Crc32c; c <= Blake2; c++ {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, &ArgumentError{Option: "checksum", Value: s, Reason: "unrecognized checksum keyword"}
}
