package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Tool is the name recorded as cli_tool in project manifests.
const Tool = "azure-agent-starter-pack"

const (
	Major = 0
	Minor = 1
	Patch = 0
)

var ErrInvalidVersion = errors.New("invalid version")

type Version struct {
	Major int
	Minor int
	Patch int
}

func Current() Version {
	return Version{
		Major: Major,
		Minor: Minor,
		Patch: Patch,
	}
}

// String gives the running tool version, e.g. "0.1.0".
func String() string {
	return Current().String()
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Parse reads an "x.y.z" version with an optional leading "v".
func Parse(s string) (Version, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")

	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("%w: %q (expected x.y.z)", ErrInvalidVersion, s)
	}

	nums := make([]int, 3)
	for i, name := range []string{"major", "minor", "patch"} {
		n, err := strconv.Atoi(parts[i])
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("%w: %q (invalid %s)", ErrInvalidVersion, s, name)
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

func (v Version) Compare(other Version) int {
	switch {
	case v.Major != other.Major:
		return sign(v.Major - other.Major)
	case v.Minor != other.Minor:
		return sign(v.Minor - other.Minor)
	default:
		return sign(v.Patch - other.Patch)
	}
}

func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// NewerThanCurrent reports whether s names a version later than the running
// tool. Unparseable input is never newer.
func NewerThanCurrent(s string) bool {
	v, err := Parse(s)
	if err != nil {
		return false
	}
	return Current().Less(v)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
