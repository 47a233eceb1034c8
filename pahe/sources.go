package pahe

import (
	"bytes"
	"context"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/anisan-cli/anipahe/log"
	"github.com/anisan-cli/anipahe/source"
	"github.com/samber/lo"
)

// dubAudio is the audio attribute of dubbed quality options.
const dubAudio = "eng"

// option is one entry of the play page quality selector.
type option struct {
	label string
	link  string
	audio string
}

// ExtractSources resolves every quality option of the episode addressed by ref, a
// "<session>/<episode session>" pair. Options that fail to resolve are left out.
// When the play page itself can't be fetched an empty bundle is returned.
func (c *Client) ExtractSources(ctx context.Context, ref string) *source.Bundle {
	logger := log.FromContext(ctx).WithField("ref", ref)
	scope, _, _ := strings.Cut(ref, "/")

	body, err := c.get(ctx, c.base+"/play/"+ref, scope, http.Header{
		"Accept": {acceptHTML},
	})
	if err != nil {
		logger.WithError(err).Warn("play page unavailable")
		return source.NewBundle(c.referer)
	}

	options, err := parseOptions(body)
	if err != nil {
		logger.WithError(err).Warn("play page unreadable")
		return source.NewBundle(c.referer)
	}

	streams := c.resolveAll(ctx, options)
	sort.SliceStable(streams, func(i, j int) bool {
		return rank(streams[i].Quality) < rank(streams[j].Quality)
	})

	bundle := source.NewBundle(c.referer)
	for _, s := range streams {
		bundle.Add(s)
	}

	logger.Infof("extracted %d of %d quality options", bundle.Len(), len(options))
	return bundle
}

func parseOptions(page []byte) ([]option, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}

	var options []option
	doc.Find("#resolutionMenu button").Each(func(_ int, s *goquery.Selection) {
		options = append(options, option{
			label: strings.TrimSpace(s.Text()),
			link:  strings.TrimSpace(s.AttrOr("data-src", "")),
			audio: s.AttrOr("data-audio", ""),
		})
	})
	return options, nil
}

// resolveAll resolves options with at most c.workers in flight.
// The result keeps the order options were listed in.
func (c *Client) resolveAll(ctx context.Context, options []option) []*source.Stream {
	resolved := make([]*source.Stream, len(options))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, c.workers)

	for i, opt := range options {
		if opt.link == "" {
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			resolved[i] = c.resolveOption(ctx, opt)
		}()
	}
	wg.Wait()

	return lo.Filter(resolved, func(s *source.Stream, _ int) bool { return s != nil })
}

// resolveOption returns nil when the option's page yields no manifest.
func (c *Client) resolveOption(ctx context.Context, opt option) *source.Stream {
	manifest, err := c.resolveKwik(ctx, opt.link)
	if err != nil {
		log.FromContext(ctx).WithError(err).WithField("label", opt.label).Debug("dropping quality option")
		return nil
	}

	return &source.Stream{
		Provider: Provider(opt.label),
		Quality:  Quality(opt.label),
		URL:      manifest,
		Referer:  origin(opt.link),
		Dub:      opt.audio == dubAudio,
	}
}
