package pahe

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	// packedScript locates a Dean Edwards style packed block.
	packedScript = regexp.MustCompile(`(?s)eval\(function\(p,a,c,k,e,[dr]\).*?\.split\('\|'\).*?\)\)`)

	// packerArgs captures the payload, radix, count and dictionary of a packed block.
	packerArgs = regexp.MustCompile(`(?s)\}\('(.*)',\s*(\d+),\s*(\d+),\s*'(.*?)'\.split\('\|'\)`)

	word = regexp.MustCompile(`\b\w+\b`)

	unescapePayload = strings.NewReplacer(`\\`, `\`, `\'`, `'`)
)

const digits = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// encodeBase renders n the way the packer names its dictionary slots.
func encodeBase(n, base int) string {
	if n < base {
		return string(digits[n])
	}
	return encodeBase(n/base, base) + string(digits[n%base])
}

// unpack reverses a packed block by substituting dictionary words back into the payload.
// The payload is treated as text only.
func unpack(packed string) (string, error) {
	match := packerArgs.FindStringSubmatch(packed)
	if match == nil {
		return "", errors.New("packer arguments not found")
	}

	payload := unescapePayload.Replace(match[1])
	radix, err := strconv.Atoi(match[2])
	if err != nil || radix < 2 || radix > len(digits) {
		return "", errors.Errorf("unsupported radix %q", match[2])
	}
	count, err := strconv.Atoi(match[3])
	if err != nil {
		return "", errors.Wrap(err, "packer word count")
	}
	keywords := strings.Split(match[4], "|")

	dictionary := make(map[string]string, count)
	for i := 0; i < count && i < len(keywords); i++ {
		if keywords[i] != "" {
			dictionary[encodeBase(i, radix)] = keywords[i]
		}
	}

	return word.ReplaceAllStringFunc(payload, func(w string) string {
		if replacement, ok := dictionary[w]; ok {
			return replacement
		}
		return w
	}), nil
}
