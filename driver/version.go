package driver

import (
	"fmt"
	"strconv"
	"strings"
)

// tagPrefixFormat is the bracketed generator tag prepended to Author and
// Description. "PF" is this converter's own short ID (see DESIGN.md,
// "[PF vX.Y.Z] tag format").
const tagPrefixFormat = "[PF v%s] "

// TagVersion prepends the generator-version tag to author and
// description, replacing any existing tag from a prior run of this same
// tool (so repeated conversions don't accumulate "[PF v1.0.0] [PF v1.0.0]
// ..." prefixes).
func TagVersion(author, description, version string) (taggedAuthor, taggedDescription string) {
	prefix := fmt.Sprintf(tagPrefixFormat, version)
	return prefix + stripTag(author), prefix + stripTag(description)
}

// stripTag removes a leading "[PF vX.Y.Z] " tag from a prior run, if
// present, so TagVersion is idempotent across repeated conversions.
func stripTag(s string) string {
	if !strings.HasPrefix(s, "[PF v") {
		return s
	}
	end := strings.Index(s, "] ")
	if end < 0 {
		return s
	}
	return s[end+2:]
}

// ExtractVersion returns the "[PF vX.Y.Z]" tag's version string from a
// previously-tagged field, or "" if none is present.
func ExtractVersion(s string) string {
	if !strings.HasPrefix(s, "[PF v") {
		return ""
	}
	end := strings.Index(s, "]")
	if end < 0 {
		return ""
	}
	return strings.TrimSuffix(s[len("[PF v"):end], " ")
}

// ShouldOverwrite implements spec §6's "version-aware overwrite policy":
// an existing output file is only replaced if it was generated by a
// strictly older (or untagged) version of this tool. Two outputs tagged
// with the same version are treated as already up to date, so re-running
// a batch is idempotent and doesn't needlessly rewrite files untouched by
// a newer generator.
func ShouldOverwrite(existingDescriptionOrAuthor, newVersion string) bool {
	existing := ExtractVersion(existingDescriptionOrAuthor)
	if existing == "" {
		return true
	}
	return compareVersions(existing, newVersion) < 0
}

// compareVersions compares two "MAJOR.MINOR.PATCH" strings numerically,
// returning -1, 0, or 1. A malformed component compares as 0, so a
// corrupted tag never blocks an overwrite outright.
func compareVersions(a, b string) int {
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < 3; i++ {
		av, bv := versionPart(as, i), versionPart(bs, i)
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	return 0
}

func versionPart(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	n, _ := strconv.Atoi(parts[i])
	return n
}
