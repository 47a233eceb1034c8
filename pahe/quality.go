package pahe

import (
	"regexp"
	"strings"

	"github.com/anisan-cli/anipahe/util"
)

// UnknownQuality is the tier of a label without a resolution token.
const UnknownQuality = "unknown"

// UnknownProvider is the provider of a label without a separator.
const UnknownProvider = "Unknown"

const providerSeparator = "·"

var tierPattern = regexp.MustCompile(`(?P<tier>\d+p)`)

// tiers ranks known qualities, best first.
var tiers = map[string]int{
	"1080p": 0,
	"720p":  1,
	"480p":  2,
	"360p":  3,
}

// Quality extracts the resolution tier, e.g. "1080p", from a selector label such as "SubsPlease · 1080p".
func Quality(label string) string {
	if tier := util.ReGroups(tierPattern, label)["tier"]; tier != "" {
		return tier
	}
	return UnknownQuality
}

// Provider extracts the text preceding the separator of a selector label.
func Provider(label string) string {
	before, _, found := strings.Cut(label, providerSeparator)
	if !found {
		return UnknownProvider
	}
	if provider := strings.TrimSpace(before); provider != "" {
		return provider
	}
	return UnknownProvider
}

// rank orders tiers best first; unknown tiers sort after every known one.
func rank(tier string) int {
	if r, ok := tiers[tier]; ok {
		return r
	}
	return len(tiers)
}
