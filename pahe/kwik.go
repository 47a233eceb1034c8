package pahe

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/anisan-cli/anipahe/log"
)

var (
	// visibleManifest matches a manifest url sitting in plain page text.
	visibleManifest = regexp.MustCompile(`https://[^\s'"<>\\]+\.m3u8[^\s'"<>\\]*`)

	// assignedManifest matches a quoted manifest assigned to a name, as in source='//host/x.m3u8'.
	assignedManifest = regexp.MustCompile(`\w+\s*[=:]\s*['"]([^'"]*\.m3u8[^'"]*)['"]`)
)

// resolveKwik fetches an intermediate video page and digs out the manifest url.
func (c *Client) resolveKwik(ctx context.Context, link string) (string, error) {
	body, err := c.get(ctx, link, "", http.Header{
		"Referer": {c.base},
		"Origin":  {origin(link)},
		"Accept":  {acceptHTML},
	})
	if err != nil {
		return "", err
	}

	manifest, err := manifestFromPage(link, string(body))
	if err != nil {
		return "", err
	}

	log.FromContext(ctx).WithField("link", link).Debug("resolved manifest")
	return manifest, nil
}

// manifestFromPage returns the first manifest found, in order: a url visible in the
// page, then a url inside the unpacked script block.
func manifestFromPage(link, page string) (string, error) {
	if manifest := visibleManifest.FindString(page); manifest != "" {
		return manifest, nil
	}

	packed := packedScript.FindString(page)
	if packed == "" {
		return "", &ExtractionError{URL: link, Reason: ReasonNoScript}
	}

	payload, err := unpack(packed)
	if err != nil {
		return "", &ExtractionError{URL: link, Reason: ReasonNoURL}
	}

	if manifest := visibleManifest.FindString(payload); manifest != "" {
		return manifest, nil
	}
	if m := assignedManifest.FindStringSubmatch(payload); m != nil {
		return absolute(m[1]), nil
	}

	return "", &ExtractionError{URL: link, Reason: ReasonNoURL}
}

func absolute(u string) string {
	if strings.HasPrefix(u, "//") {
		return "https:" + u
	}
	return u
}

// origin returns the scheme and host of rawURL.
func origin(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Scheme + "://" + u.Host
}
