package pahe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/anisan-cli/anipahe/log"
	"github.com/anisan-cli/anipahe/source"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

type searchItem struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Type     string  `json:"type"`
	Episodes *int    `json:"episodes"`
	Score    float64 `json:"score"`
	Year     int     `json:"year"`
	Poster   string  `json:"poster"`
	Session  string  `json:"session"`
}

type searchResponse struct {
	Data []searchItem `json:"data"`
}

func (i searchItem) candidate() *source.Candidate {
	episodes := mo.None[int]()
	if i.Episodes != nil {
		episodes = mo.Some(*i.Episodes)
	}

	return &source.Candidate{
		SiteID:      source.NewSiteID(i.ID, i.Title),
		Title:       i.Title,
		Poster:      i.Poster,
		EpisodesSub: episodes,
		Rating:      i.Score,
		Year:        i.Year,
		Type:        i.Type,
	}
}

func (c *Client) searchURL(query string, limit int) string {
	if limit > 0 {
		return fmt.Sprintf("%s/api?m=search&l=%d&q=%s", c.base, limit, url.QueryEscape(query))
	}
	return fmt.Sprintf("%s/api?m=search&q=%s", c.base, url.QueryEscape(query))
}

func (c *Client) search(ctx context.Context, query string, limit int) ([]searchItem, error) {
	body, err := c.get(ctx, c.searchURL(query, limit), "", nil)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrapf(ErrNotFound, "malformed search response: %v", err)
	}
	return resp.Data, nil
}

// Search returns the first few candidates for query. Any failure is logged and
// reported as no candidates.
func (c *Client) Search(ctx context.Context, query string) []*source.Candidate {
	items, err := c.search(ctx, query, c.limit)
	if err != nil {
		log.FromContext(ctx).WithError(err).WithField("query", query).Warn("search failed")
		return nil
	}

	log.FromContext(ctx).WithField("query", query).Debugf("search returned %d results", len(items))
	return lo.Map(items, func(i searchItem, _ int) *source.Candidate { return i.candidate() })
}
