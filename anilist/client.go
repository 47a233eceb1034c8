package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/anisan-cli/anipahe/key"
	"github.com/anisan-cli/anipahe/log"
	"github.com/anisan-cli/anipahe/network"
	"github.com/anisan-cli/anipahe/util"
	"github.com/spf13/viper"
)

// DefaultURL is the public Anilist GraphQL endpoint.
const DefaultURL = "https://graphql.anilist.co"

type searchByNameResponse struct {
	Data struct {
		Page struct {
			Media []*Anime `json:"media"`
		} `json:"page"`
	} `json:"data"`
}

type searchByIDResponse struct {
	Data struct {
		Media *Anime `json:"media"`
	} `json:"data"`
}

// Client queries Anilist.
type Client struct {
	http  *http.Client
	url   string
	cache bool
}

// New creates a client for the endpoint at url. With cache set, entries fetched
// by id are kept on disk.
func New(url string, cache bool) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{http: network.Client, url: url, cache: cache}
}

// NewFromConfig creates a client from the global configuration.
func NewFromConfig() *Client {
	return New(viper.GetString(key.AnilistURL), viper.GetBool(key.AnilistCache))
}

// Title returns the title of the catalog entry id, empty when there is no such entry.
func (c *Client) Title(ctx context.Context, id int) (string, error) {
	anime, err := c.GetByID(ctx, id)
	if err != nil || anime == nil {
		return "", err
	}

	return anime.Name(), nil
}

// GetByID returns the anime with the given id, nil when Anilist doesn't know it.
func (c *Client) GetByID(ctx context.Context, id int) (*Anime, error) {
	if c.cache {
		if anime, ok := idCacher.Get(id).Get(); ok {
			return anime, nil
		}
	}

	log.FromContext(ctx).Debugf("searching anilist for anime with id %d", id)

	var response searchByIDResponse
	found, err := c.post(ctx, searchByIDQuery, map[string]any{"id": id}, &response)
	if err != nil || !found || response.Data.Media == nil {
		return nil, err
	}

	anime := response.Data.Media
	if c.cache {
		if err := idCacher.Set(id, anime); err != nil {
			log.FromContext(ctx).WithError(err).Warn("cache anilist entry")
		}
	}
	return anime, nil
}

// SearchByName returns up to 30 anime matching name.
func (c *Client) SearchByName(ctx context.Context, name string) ([]*Anime, error) {
	log.FromContext(ctx).Debugf("searching anilist for %q", name)

	var response searchByNameResponse
	if _, err := c.post(ctx, searchByNameQuery, map[string]any{"query": name}, &response); err != nil {
		return nil, err
	}

	animes := response.Data.Page.Media
	log.FromContext(ctx).Debugf("anilist returned %d results", len(animes))
	return animes, nil
}

// post runs a GraphQL query and decodes the answer into out.
// found is false when Anilist answers 404, which it does for unknown ids.
func (c *Client) post(ctx context.Context, q string, variables map[string]any, out any) (found bool, err error) {
	body, err := json.Marshal(map[string]any{
		"query":     q,
		"variables": variables,
	})
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("anilist: %w", err)
	}
	defer util.Ignore(resp.Body.Close)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("anilist: invalid response code %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("anilist: decode response: %w", err)
	}
	return true, nil
}
