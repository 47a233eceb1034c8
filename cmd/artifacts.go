package cmd

import (
	"github.com/anisan-cli/anipahe/config"
	"github.com/anisan-cli/anipahe/where"
	"github.com/samber/mo"
)

// artifact is a file or directory the application keeps on disk.
type artifact struct {
	name     string
	flag     string
	short    mo.Option[string]
	location func() string
	// clearable artifacts are regenerated on demand and may be removed by clear.
	clearable bool
}

var artifacts = []artifact{
	{"config directory", "config", mo.Some("c"), where.Config, false},
	{"config file", "config-file", mo.None[string](), config.Path, false},
	{"logs", "logs", mo.Some("l"), where.Logs, true},
	{"cache directory", "cache", mo.None[string](), where.Cache, true},
	{"anilist titles", "titles", mo.Some("t"), where.AnilistTitles, true},
	{"queries history", "queries", mo.Some("q"), where.Queries, true},
}
