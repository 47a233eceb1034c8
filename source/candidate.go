package source

import (
	"fmt"
	"strings"

	"github.com/samber/mo"
)

// Candidate is a single entry returned by the site search.
type Candidate struct {
	// SiteID is composed as "<id>-<title>".
	SiteID      string         `json:"id" jsonschema:"description=Site id composed as <id>-<title>"`
	Title       string         `json:"name"`
	Poster      string         `json:"poster,omitempty"`
	EpisodesSub mo.Option[int] `json:"-"`
	Rating      float64        `json:"rating,omitempty"`
	Year        int            `json:"releaseDate,omitempty"`
	Type        string         `json:"type,omitempty"`
}

// NewSiteID composes the site id of a candidate.
func NewSiteID(id int, title string) string {
	return fmt.Sprintf("%d-%s", id, title)
}

// SplitSiteID splits a site id on its first "-" into the numeric id part and the title.
// Hyphens inside the title are kept.
func SplitSiteID(siteID string) (id, title string, ok bool) {
	return strings.Cut(siteID, "-")
}

// String implements fmt.Stringer.
func (c *Candidate) String() string {
	return c.Title
}

// GetTitle returns the title the candidate is matched by.
func (c *Candidate) GetTitle() string {
	return c.Title
}

// Episodes renders the known subbed episode count, "??" when the site didn't report it.
func (c *Candidate) Episodes() string {
	if n, ok := c.EpisodesSub.Get(); ok {
		return fmt.Sprint(n)
	}
	return "??"
}
