// Package match picks the site search candidate that corresponds to a catalog title.
package match

import (
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Titled is anything matched by its title.
type Titled interface {
	GetTitle() string
}

// Result is the chosen candidate along with how far its title is from the query.
type Result[T Titled] struct {
	Candidate T
	Exact     bool
	// Distance is the edit distance between the normalized titles. Informational only.
	Distance int
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Best returns the first candidate whose lowercased, trimmed title equals the
// lowercased, trimmed query. Without such a candidate the first one is returned,
// and None when there are no candidates at all.
func Best[T Titled](title string, candidates []T) mo.Option[Result[T]] {
	if len(candidates) == 0 {
		return mo.None[Result[T]]()
	}

	want := normalize(title)
	chosen, exact := lo.Find(candidates, func(c T) bool {
		return normalize(c.GetTitle()) == want
	})
	if !exact {
		chosen = candidates[0]
	}

	return mo.Some(Result[T]{
		Candidate: chosen,
		Exact:     exact,
		Distance:  levenshtein.Distance(want, normalize(chosen.GetTitle())),
	})
}
