package source

import "fmt"

// Episode is one release of a series on the site.
type Episode struct {
	SeriesTitle string `json:"-"`
	Session     string `json:"-"`

	Number    int    `json:"number"`
	Ref       string `json:"id" jsonschema:"description=Episode ref composed as <session>/<episode session>"`
	Title     string `json:"title"`
	Thumbnail string `json:"image"`
}

// NewEpisode builds the record of the number-th episode of series session.
func NewEpisode(session, episodeSession string, number int, thumbnail string) *Episode {
	return &Episode{
		Session:   session,
		Number:    number,
		Ref:       session + "/" + episodeSession,
		Title:     fmt.Sprintf("Episode %d", number),
		Thumbnail: thumbnail,
	}
}

// String implements fmt.Stringer.
func (e *Episode) String() string {
	return e.Title
}

// Listing is the full, ascending episode list of a series.
type Listing struct {
	Title    string
	Session  string
	Total    int
	Episodes []*Episode
}

// Find returns the episode with the given number.
func (l *Listing) Find(number int) (*Episode, bool) {
	for _, e := range l.Episodes {
		if e.Number == number {
			return e, true
		}
	}
	return nil, false
}
