package schema

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Version identifies the on-disk schema of an Engine library as a
// (major, minor, patch) triple. Versions are ordered lexicographically
// and compared field-wise for equality. Any triple is a valid Version;
// only the ones in the known set can be created or opened.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Known schema versions, named after the firmware releases that shipped them.
var (
	Version1_6_0 = Version{Major: 1, Minor: 6, Patch: 0}
	Version1_7_1 = Version{Major: 1, Minor: 7, Patch: 1}

	VersionFirmware1_0_0 = Version1_6_0
	VersionFirmware1_0_3 = Version1_7_1

	VersionLatest = Version1_7_1
)

// knownVersions is ordered oldest to newest.
var knownVersions = []Version{Version1_6_0, Version1_7_1}

// KnownVersions returns the ordered set of schema versions this package
// can create and verify.
func KnownVersions() []Version {
	out := make([]Version, len(knownVersions))
	copy(out, knownVersions)
	return out
}

// IsSupported reports whether v is a member of the known version set.
func IsSupported(v Version) bool {
	for _, k := range knownVersions {
		if v == k {
			return true
		}
	}
	return false
}

// Compare returns -1, 0 or +1 ordering a against b lexicographically
// by (major, minor, patch).
func (v Version) Compare(other Version) int {
	if c := cmp.Compare(v.Major, other.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Minor, other.Minor); c != 0 {
		return c
	}
	return cmp.Compare(v.Patch, other.Patch)
}

// Less reports whether v orders strictly before other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ParseVersion parses a "major.minor.patch" string. The whole input must
// be consumed; trailing or extra components are rejected.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid schema version %q", s)
	}

	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, fmt.Errorf("invalid schema version %q", s)
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}
