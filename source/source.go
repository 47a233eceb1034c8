// Package source defines the domain models shared by the site client, the mapper and the API.
package source

import "context"

// Site is a streaming site that can be searched, walked for episodes and asked for streams.
type Site interface {
	// Search returns at most a handful of candidates for query. Failures yield no candidates.
	Search(ctx context.Context, query string) []*Candidate

	// ListEpisodes resolves siteID to a session and walks every release page of it.
	ListEpisodes(ctx context.Context, siteID string) (*Listing, error)

	// ExtractSources resolves the playable streams of the episode addressed by ref.
	ExtractSources(ctx context.Context, ref string) *Bundle
}
