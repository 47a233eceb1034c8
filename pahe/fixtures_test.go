package pahe

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// fakeSite is an in-memory animepahe with a kwik host living under /kwik/.
type fakeSite struct {
	*httptest.Server

	mu       sync.Mutex
	requests map[string]int
	headers  map[string]http.Header

	search  map[string]any
	release map[int]map[string]any
	series  string
	play    string
	kwik    map[string]string
	status  map[string]int
}

func newFakeSite() *fakeSite {
	site := &fakeSite{
		requests: make(map[string]int),
		headers:  make(map[string]http.Header),
		release:  make(map[int]map[string]any),
		kwik:     make(map[string]string),
		status:   make(map[string]int),
	}
	site.Server = httptest.NewServer(http.HandlerFunc(site.serve))
	return site
}

func (s *fakeSite) client(workers int) *Client {
	return New(Options{BaseURL: s.URL, Workers: workers, MaxPages: 100, HTTPClient: s.Server.Client()})
}

func (s *fakeSite) hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[route]
}

func (s *fakeSite) lastHeaders(route string) http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.headers[route]
}

func (s *fakeSite) serve(w http.ResponseWriter, r *http.Request) {
	route := r.URL.Path
	if route == "/api" {
		route = "/api/" + r.URL.Query().Get("m")
	}
	if strings.HasPrefix(route, "/play/") {
		route = "/play"
	}
	if strings.HasPrefix(route, "/a/") {
		route = "/a"
	}

	s.mu.Lock()
	s.requests[route]++
	s.headers[route] = r.Header.Clone()
	status, forced := s.status[route]
	s.mu.Unlock()

	if forced {
		w.WriteHeader(status)
		return
	}

	switch route {
	case "/api/search":
		writeJSON(w, s.search)
	case "/api/release":
		var page int
		_, _ = fmt.Sscan(r.URL.Query().Get("page"), &page)
		body, ok := s.release[page]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeJSON(w, body)
	case "/a":
		_, _ = w.Write([]byte(s.series))
	case "/play":
		_, _ = w.Write([]byte(s.play))
	default:
		page, ok := s.kwik[route]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(page))
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// releasePages splits count descending episodes into pages of perPage.
func releasePages(count, perPage, animeID int) map[int]map[string]any {
	pages := make(map[int]map[string]any)
	last := (count + perPage - 1) / perPage

	for page := 1; page <= last; page++ {
		var data []map[string]any
		for n := count - (page-1)*perPage; n > 0 && n > count-page*perPage; n-- {
			data = append(data, map[string]any{
				"anime_id": animeID,
				"episode":  n,
				"session":  fmt.Sprintf("ep%d", n),
				"snapshot": fmt.Sprintf("https://i.animepahe.si/snapshots/%d.jpg", n),
			})
		}
		pages[page] = map[string]any{
			"total":        count,
			"per_page":     perPage,
			"current_page": page,
			"last_page":    last,
			"data":         data,
		}
	}
	return pages
}

func seriesPage(title string) string {
	return `<html><body><div class="title-wrapper"><h1><span>` + html.EscapeString(title) + `</span></h1></div></body></html>`
}

type button struct {
	label string
	link  string
	audio string
}

func playPage(buttons ...button) string {
	var b strings.Builder
	b.WriteString(`<html><body><div id="resolutionMenu">`)
	for _, btn := range buttons {
		fmt.Fprintf(&b, `<button data-src="%s" data-audio="%s" class="dropdown-item">%s</button>`,
			html.EscapeString(btn.link), html.EscapeString(btn.audio), html.EscapeString(btn.label))
	}
	b.WriteString(`</div></body></html>`)
	return b.String()
}

var escapePacked = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// pack produces a packed block equivalent to what the video host serves for src.
func pack(src string) string {
	var dictionary []string
	index := make(map[string]int)

	payload := word.ReplaceAllStringFunc(src, func(w string) string {
		i, ok := index[w]
		if !ok {
			i = len(dictionary)
			index[w] = i
			dictionary = append(dictionary, w)
		}
		return encodeBase(i, 62)
	})

	return fmt.Sprintf(`eval(function(p,a,c,k,e,d){e=function(c){return(c<a?'':e(parseInt(c/a)))+((c=c%%a)>35?String.fromCharCode(c+29):c.toString(36))};while(c--){if(k[c]){p=p.replace(new RegExp('\\b'+e(c)+'\\b','g'),k[c])}}return p}('%s',62,%d,'%s'.split('|'),0,{}))`,
		escapePacked.Replace(payload), len(dictionary), strings.Join(dictionary, "|"))
}

func kwikPage(script string) string {
	return "<html><head><title>kwik</title></head><body><script>" + script + "\n</script></body></html>"
}

func packedKwikPage(manifest string) string {
	return kwikPage(pack(`const source='` + manifest + `';const player=new Plyr('video');`))
}
