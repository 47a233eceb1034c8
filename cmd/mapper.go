package cmd

import (
	"context"

	"github.com/anisan-cli/anipahe/anilist"
	"github.com/anisan-cli/anipahe/log"
	"github.com/anisan-cli/anipahe/mapper"
	"github.com/anisan-cli/anipahe/pahe"
	"github.com/anisan-cli/anipahe/query"
)

// rememberingCatalog feeds resolved titles to the completion history.
type rememberingCatalog struct {
	*anilist.Client
}

func (c rememberingCatalog) Title(ctx context.Context, id int) (string, error) {
	title, err := c.Client.Title(ctx, id)
	if err == nil && title != "" {
		remember(title)
	}
	return title, err
}

func remember(title string) {
	if err := query.Remember(title, 1); err != nil {
		log.Warnf("remember %q: %s", title, err)
	}
}

// newMapper wires the catalog and the streaming site from the global configuration.
func newMapper() *mapper.Mapper {
	return mapper.New(rememberingCatalog{anilist.NewFromConfig()}, pahe.NewFromConfig())
}
