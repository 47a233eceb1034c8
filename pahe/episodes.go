package pahe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/anisan-cli/anipahe/log"
	"github.com/anisan-cli/anipahe/source"
	"github.com/pkg/errors"
)

// TitlePlaceholder stands in for a series title the series page didn't reveal.
const TitlePlaceholder = "Could not fetch title"

type releaseItem struct {
	AnimeID  int     `json:"anime_id"`
	Episode  float64 `json:"episode"`
	Session  string  `json:"session"`
	Snapshot string  `json:"snapshot"`
}

type releaseResponse struct {
	Total       int           `json:"total"`
	CurrentPage int           `json:"current_page"`
	LastPage    int           `json:"last_page"`
	Data        []releaseItem `json:"data"`
}

// ListEpisodes resolves the session of the series behind siteID, a "<id>-<title>" pair,
// and lists all of its episodes.
func (c *Client) ListEpisodes(ctx context.Context, siteID string) (*source.Listing, error) {
	id, title, ok := source.SplitSiteID(siteID)
	if !ok {
		id, title = "", siteID
	}

	session, err := c.ResolveSession(ctx, title, id)
	if err != nil {
		return nil, err
	}

	return c.Episodes(ctx, session)
}

// Episodes walks the release pages of session, newest first, and returns the
// episodes in ascending order. Episode numbers repeated on later pages are dropped,
// and fractional numbers (recaps such as 12.5) are left out.
// The walk stops after the page the site reports as last, or at the page cap.
func (c *Client) Episodes(ctx context.Context, session string) (*source.Listing, error) {
	logger := log.FromContext(ctx).WithField("session", session)

	var (
		episodes []*source.Episode
		seen     = make(map[int]struct{})
		animeID  int
		total    int
	)

	for page := 1; ; page++ {
		resp, err := c.releasePage(ctx, session, page)
		if err != nil {
			return nil, err
		}

		total = resp.Total
		for _, item := range resp.Data {
			if animeID == 0 {
				animeID = item.AnimeID
			}

			if item.Episode != math.Trunc(item.Episode) {
				logger.WithField("episode", item.Episode).Debug("skipping fractional episode")
				continue
			}

			number := int(item.Episode)
			if _, dup := seen[number]; dup {
				logger.WithField("episode", number).Debug("dropping duplicate episode")
				continue
			}
			seen[number] = struct{}{}

			episodes = append(episodes, source.NewEpisode(session, item.Session, number, item.Snapshot))
		}

		if page >= resp.LastPage {
			break
		}
		if page >= c.maxPages {
			logger.Warnf("stopping at page %d of %d reported pages", page, resp.LastPage)
			break
		}
	}

	title := TitlePlaceholder
	if animeID != 0 {
		t, err := c.seriesTitle(ctx, animeID)
		if err != nil {
			return nil, err
		}
		title = t
	}

	slices.Reverse(episodes)
	for _, e := range episodes {
		e.SeriesTitle = title
	}

	logger.Debugf("listed %d episodes of %q", len(episodes), title)
	return &source.Listing{
		Title:    title,
		Session:  session,
		Total:    total,
		Episodes: episodes,
	}, nil
}

func (c *Client) releasePage(ctx context.Context, session string, page int) (*releaseResponse, error) {
	u := fmt.Sprintf("%s/api?m=release&id=%s&sort=episode_desc&page=%d", c.base, session, page)
	body, err := c.get(ctx, u, "", nil)
	if err != nil {
		return nil, err
	}

	var resp releaseResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrapf(err, "decode release page %d", page)
	}
	return &resp, nil
}

// seriesTitle scrapes the title from the series page, the placeholder when it is absent.
func (c *Client) seriesTitle(ctx context.Context, animeID int) (string, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/a/%d", c.base, animeID), "", http.Header{
		"Accept": {acceptHTML},
	})
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "parse series page")
	}

	title := strings.TrimSpace(doc.Find(".title-wrapper span").First().Text())
	if title == "" {
		return TitlePlaceholder, nil
	}
	return title, nil
}
