// Package mapper maps catalog ids to series on the streaming site and their episodes to streams.
package mapper

import (
	"context"
	"errors"
	"fmt"

	"github.com/anisan-cli/anipahe/log"
	"github.com/anisan-cli/anipahe/match"
	"github.com/anisan-cli/anipahe/pahe"
	"github.com/anisan-cli/anipahe/source"
)

var (
	ErrNotFoundInCatalog = errors.New("anime not found on anilist")
	ErrNotFoundOnSite    = errors.New("anime not found on animepahe")
	ErrNoMatch           = errors.New("no matching anime found on animepahe")
	ErrEpisodeNotFound   = errors.New("episode not found")
)

// IsNotFound reports whether err means the requested resource doesn't exist,
// as opposed to an upstream or transport failure.
func IsNotFound(err error) bool {
	for _, target := range []error{
		ErrNotFoundInCatalog,
		ErrNotFoundOnSite,
		ErrNoMatch,
		ErrEpisodeNotFound,
		pahe.ErrNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// CatalogLookup resolves catalog ids to titles. An unknown id yields an empty title.
type CatalogLookup interface {
	Title(ctx context.Context, id int) (string, error)
}

// Mapper runs the whole resolution chain for every call. Nothing is cached between calls.
type Mapper struct {
	catalog CatalogLookup
	site    source.Site
}

// New creates a mapper over catalog and site.
func New(catalog CatalogLookup, site source.Site) *Mapper {
	return &Mapper{catalog: catalog, site: site}
}

// Episode is the public view of an episode.
type Episode struct {
	Number int    `json:"number"`
	ID     string `json:"id"`
	Title  string `json:"title"`
	Image  string `json:"image"`
}

// EpisodesResult is the episode list of a catalog entry.
type EpisodesResult struct {
	AniListID     int       `json:"aniListId"`
	AnimePaheID   string    `json:"animePaheId"`
	Title         string    `json:"title"`
	TotalEpisodes int       `json:"totalEpisodes"`
	Episodes      []Episode `json:"episodes"`
}

// EpisodesFor lists the episodes of catalog entry id on the site.
func (m *Mapper) EpisodesFor(ctx context.Context, id int) (*EpisodesResult, error) {
	ctx = log.NewContext(ctx, log.Fields{"anilist_id": id})

	candidate, listing, err := m.resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	episodes := make([]Episode, len(listing.Episodes))
	for i, e := range listing.Episodes {
		episodes[i] = Episode{Number: e.Number, ID: e.Ref, Title: e.Title, Image: e.Thumbnail}
	}

	return &EpisodesResult{
		AniListID:     id,
		AnimePaheID:   candidate.SiteID,
		Title:         listing.Title,
		TotalEpisodes: listing.Total,
		Episodes:      episodes,
	}, nil
}

// SourcesFor extracts the streams of episode number of catalog entry id.
// The play page is only requested once the episode is known to exist.
func (m *Mapper) SourcesFor(ctx context.Context, id, number int) (*source.Bundle, error) {
	ctx = log.NewContext(ctx, log.Fields{"anilist_id": id, "episode": number})

	_, listing, err := m.resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	episode, ok := listing.Find(number)
	if !ok {
		return nil, fmt.Errorf("%w: episode %d of %q", ErrEpisodeNotFound, number, listing.Title)
	}

	return m.site.ExtractSources(ctx, episode.Ref), nil
}

// resolve walks catalog id, site search, title match and episode listing.
func (m *Mapper) resolve(ctx context.Context, id int) (*source.Candidate, *source.Listing, error) {
	logger := log.FromContext(ctx)

	title, err := m.catalog.Title(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if title == "" {
		return nil, nil, fmt.Errorf("%w: id %d", ErrNotFoundInCatalog, id)
	}

	candidates := m.site.Search(ctx, title)
	if len(candidates) == 0 {
		return nil, nil, fmt.Errorf("%w: %q", ErrNotFoundOnSite, title)
	}

	best, ok := match.Best(title, candidates).Get()
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrNoMatch, title)
	}

	logger.WithFields(log.Fields{
		"title":    title,
		"site_id":  best.Candidate.SiteID,
		"exact":    best.Exact,
		"distance": best.Distance,
	}).Info("matched catalog title")

	listing, err := m.site.ListEpisodes(ctx, best.Candidate.SiteID)
	if err != nil {
		return nil, nil, err
	}

	return best.Candidate, listing, nil
}
