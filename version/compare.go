package version

import (
	"fmt"
	"slices"
	"strings"
)

// semver is a parsed major.minor.patch triple.
type semver [3]int

func parse(s string) (semver, error) {
	var v semver
	core, _, _ := strings.Cut(strings.TrimPrefix(s, "v"), "-")
	if _, err := fmt.Sscanf(core, "%d.%d.%d", &v[0], &v[1], &v[2]); err != nil {
		return v, fmt.Errorf("invalid version %q: %w", s, err)
	}
	return v, nil
}

// Compare orders two versions: 1 if a is newer, -1 if b is, 0 when equal.
// A leading "v" and a pre-release suffix are ignored.
func Compare(a, b string) (int, error) {
	av, err := parse(a)
	if err != nil {
		return 0, err
	}

	bv, err := parse(b)
	if err != nil {
		return 0, err
	}

	return slices.Compare(av[:], bv[:]), nil
}
