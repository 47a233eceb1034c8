// Package inline implements the non-interactive, scriptable output of episode and stream lookups.
package inline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/anisan-cli/anipahe/log"
	"github.com/anisan-cli/anipahe/source"
)

// Run resolves what options ask for and writes it to options.Out.
func Run(ctx context.Context, options *Options) error {
	if options.Mapper == nil {
		return errors.New("inline: no mapper configured")
	}
	if options.Out == nil {
		options.Out = os.Stdout
	}

	if number, ok := options.Episode.Get(); ok {
		return runSources(ctx, options, number)
	}
	return runEpisodes(ctx, options)
}

func runEpisodes(ctx context.Context, options *Options) error {
	result, err := options.Mapper.EpisodesFor(ctx, options.AniListID)
	if err != nil {
		return err
	}

	if filter, ok := options.EpisodesFilter.Get(); ok {
		result.Episodes = filter(result.Episodes)
	}
	log.Infof("listing %d episodes of %s", len(result.Episodes), result.Title)

	if options.Json {
		return writeJson(options.Out, result)
	}

	for _, e := range result.Episodes {
		if _, err := fmt.Fprintf(options.Out, "%d\t%s\t%s\n", e.Number, e.Title, e.ID); err != nil {
			return err
		}
	}
	return nil
}

func runSources(ctx context.Context, options *Options, number int) error {
	bundle, err := options.Mapper.SourcesFor(ctx, options.AniListID, number)
	if err != nil {
		return err
	}

	switch {
	case options.DubOnly:
		bundle.Streams.Sub = []*source.Stream{}
	case options.SubOnly:
		bundle.Streams.Dub = []*source.Stream{}
	}

	if options.Json {
		return writeJson(options.Out, bundle)
	}

	for _, s := range bundle.All() {
		track := "sub"
		if s.Dub {
			track = "dub"
		}
		if _, err := fmt.Fprintf(options.Out, "%s\t%s\t%s\t%s\n", track, s.Quality, s.Provider, s.URL); err != nil {
			return err
		}
	}
	return nil
}
