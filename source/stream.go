package source

// DubLanguage marks dubbed streams in the output.
const DubLanguage = "eng"

// Stream is a playable manifest of one episode.
type Stream struct {
	ID       int    `json:"id"`
	Provider string `json:"provider"`
	Quality  string `json:"quality"`
	Language string `json:"language,omitempty"`
	URL      string `json:"url"`
	Referer  string `json:"referer"`

	Dub bool `json:"-"`
}

// Headers that players must send when fetching the streams.
type Headers struct {
	Referer string `json:"Referer"`
}

// Streams partitions a bundle by audio track.
type Streams struct {
	Sub []*Stream `json:"sub"`
	Dub []*Stream `json:"dub"`
}

// Bundle is everything needed to play one episode.
type Bundle struct {
	Headers Headers `json:"headers"`
	Streams Streams `json:"streams"`
}

// NewBundle returns an empty bundle. Stream lists are never nil so they encode as [].
func NewBundle(referer string) *Bundle {
	return &Bundle{
		Headers: Headers{Referer: referer},
		Streams: Streams{Sub: []*Stream{}, Dub: []*Stream{}},
	}
}

// Add appends s to the list of its audio track and assigns its id.
// Sub streams get even ids, dub streams odd ones.
func (b *Bundle) Add(s *Stream) {
	if s.Dub {
		s.ID = len(b.Streams.Dub)*2 + 1
		s.Language = DubLanguage
		b.Streams.Dub = append(b.Streams.Dub, s)
		return
	}

	s.ID = len(b.Streams.Sub) * 2
	s.Language = ""
	b.Streams.Sub = append(b.Streams.Sub, s)
}

// Len returns the total number of streams.
func (b *Bundle) Len() int {
	return len(b.Streams.Sub) + len(b.Streams.Dub)
}

// All returns sub streams followed by dub streams.
func (b *Bundle) All() []*Stream {
	return append(append([]*Stream{}, b.Streams.Sub...), b.Streams.Dub...)
}
