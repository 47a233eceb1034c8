// Package pahe is a client for the animepahe streaming site and the kwik video host it links to.
package pahe

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/anisan-cli/anipahe/constant"
	"github.com/anisan-cli/anipahe/key"
	"github.com/anisan-cli/anipahe/log"
	"github.com/anisan-cli/anipahe/network"
	"github.com/anisan-cli/anipahe/source"
	"github.com/anisan-cli/anipahe/util"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Options configure a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL     string
	SearchLimit int
	MaxPages    int
	Workers     int
	// Referer is returned in bundles whose play page could not be fetched.
	Referer     string
	Timeout     time.Duration
	Fingerprint bool

	// HTTPClient overrides the client built from Timeout and Fingerprint.
	HTTPClient *http.Client
}

// Client talks to animepahe. It holds no per-request state and is safe for concurrent use.
type Client struct {
	http     *http.Client
	base     string
	host     string
	limit    int
	maxPages int
	workers  int
	referer  string
}

var _ source.Site = (*Client)(nil)

// New creates a client from opts.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://animepahe.si"
	}
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = 8
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = 100
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Referer == "" {
		opts.Referer = "https://kwik.cx/"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = network.New(opts.Timeout, opts.Fingerprint)
	}

	base := strings.TrimRight(opts.BaseURL, "/")
	host := base
	if u, err := url.Parse(base); err == nil && u.Host != "" {
		host = u.Host
	}

	return &Client{
		http:     opts.HTTPClient,
		base:     base,
		host:     host,
		limit:    opts.SearchLimit,
		maxPages: opts.MaxPages,
		workers:  opts.Workers,
		referer:  opts.Referer,
	}
}

// NewFromConfig creates a client from the global configuration.
func NewFromConfig() *Client {
	return New(Options{
		BaseURL:     viper.GetString(key.SiteBaseURL),
		SearchLimit: viper.GetInt(key.SiteSearchLimit),
		MaxPages:    viper.GetInt(key.SiteMaxPages),
		Workers:     viper.GetInt(key.ExtractWorkers),
		Referer:     viper.GetString(key.ExtractReferer),
		Timeout:     time.Duration(viper.GetInt(key.SiteTimeout)) * time.Second,
		Fingerprint: viper.GetBool(key.SiteTLSFingerprint),
	})
}

// BaseURL returns the site root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.base
}

const (
	acceptJSON = "application/json, text/javascript, */*; q=0.01"
	acceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
)

// headers builds the browser-like header set the site's bot mitigation expects.
// scope is the series session the request belongs to, if any.
func (c *Client) headers(scope string) http.Header {
	referer := c.base
	if scope != "" {
		referer = c.base + "/anime/" + scope
	}

	h := make(http.Header)
	h.Set("authority", c.host)
	h.Set("accept", acceptJSON)
	h.Set("accept-language", "en-US,en;q=0.9")
	h.Set("cookie", "__ddg2_=;")
	h.Set("dnt", "1")
	h.Set("sec-ch-ua", `"Not A(Brand";v="99", "Microsoft Edge";v="121", "Chromium";v="121"`)
	h.Set("sec-ch-ua-mobile", "?0")
	h.Set("sec-ch-ua-platform", `"Windows"`)
	h.Set("sec-fetch-dest", "empty")
	h.Set("sec-fetch-mode", "cors")
	h.Set("sec-fetch-site", "same-origin")
	h.Set("x-requested-with", "XMLHttpRequest")
	h.Set("referer", referer)
	h.Set("user-agent", constant.UserAgent)
	return h
}

// get fetches rawURL and returns the body of a 2xx answer. A 403 is retried
// once with the alternate user agent. extra overrides the default headers.
func (c *Client) get(ctx context.Context, rawURL, scope string, extra http.Header) ([]byte, error) {
	h := c.headers(scope)
	for k, v := range extra {
		h[k] = v
	}

	resp, err := c.do(ctx, rawURL, h)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusForbidden {
		util.Ignore(resp.Body.Close)
		log.FromContext(ctx).WithField("url", rawURL).Debug("forbidden, retrying with alternate user agent")

		h.Set("user-agent", constant.AltUserAgent)
		if resp, err = c.do(ctx, rawURL, h); err != nil {
			return nil, err
		}
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamHTTPError{Status: resp.StatusCode, URL: rawURL}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", rawURL)
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, rawURL string, h http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header = h.Clone()

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "get %s", rawURL)
	}
	return resp, nil
}
