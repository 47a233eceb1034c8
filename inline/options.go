package inline

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/anisan-cli/anipahe/mapper"
	"github.com/anisan-cli/anipahe/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Mapper resolves what inline mode prints.
type Mapper interface {
	EpisodesFor(ctx context.Context, id int) (*mapper.EpisodesResult, error)
	SourcesFor(ctx context.Context, id, number int) (*source.Bundle, error)
}

// EpisodesFilter narrows an episode list down.
type EpisodesFilter func([]mapper.Episode) []mapper.Episode

// Options of a single inline run.
type Options struct {
	Out       io.Writer
	Mapper    Mapper
	AniListID int
	// Episode selects streams of one episode instead of listing episodes.
	Episode        mo.Option[int]
	EpisodesFilter mo.Option[EpisodesFilter]
	Json           bool
	// DubOnly keeps only dubbed streams, SubOnly only subbed ones.
	DubOnly bool
	SubOnly bool
}

// ParseEpisodesFilter parses an episode selector:
//
//	first, last, all
//	[number]       the episode with that number
//	[from]-[to]    episodes numbered from..to, inclusive
//	@[substring]@  episodes whose title contains substring
func ParseEpisodesFilter(description string) (EpisodesFilter, error) {
	switch description {
	case "first":
		return func(episodes []mapper.Episode) []mapper.Episode {
			return episodes[:min(1, len(episodes))]
		}, nil
	case "last":
		return func(episodes []mapper.Episode) []mapper.Episode {
			return episodes[max(0, len(episodes)-1):]
		}, nil
	case "all":
		return func(episodes []mapper.Episode) []mapper.Episode {
			return episodes
		}, nil
	}

	if strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") && len(description) > 1 {
		sub := strings.ToLower(description[1 : len(description)-1])
		return func(episodes []mapper.Episode) []mapper.Episode {
			return lo.Filter(episodes, func(e mapper.Episode, _ int) bool {
				return strings.Contains(strings.ToLower(e.Title), sub)
			})
		}, nil
	}

	if fromRaw, toRaw, ok := strings.Cut(description, "-"); ok {
		from, err1 := strconv.Atoi(fromRaw)
		to, err2 := strconv.Atoi(toRaw)
		if err1 == nil && err2 == nil {
			return numbered(func(n int) bool { return n >= from && n <= to }), nil
		}
	}

	if number, err := strconv.Atoi(description); err == nil {
		return numbered(func(n int) bool { return n == number }), nil
	}

	return nil, fmt.Errorf("invalid episode filter: %s", description)
}

func numbered(keep func(int) bool) EpisodesFilter {
	return func(episodes []mapper.Episode) []mapper.Episode {
		return lo.Filter(episodes, func(e mapper.Episode, _ int) bool { return keep(e.Number) })
	}
}
