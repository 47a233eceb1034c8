package anilist

import (
	"sync"
	"time"

	"github.com/anisan-cli/anipahe/filesystem"
	"github.com/anisan-cli/anipahe/where"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

// cacheData is the on-disk layout of a cache file.
type cacheData[K comparable, T any] struct {
	Animes map[K]T `json:"animes"`
}

// cacher is a thread-safe keyed view over a single gache file.
// Reads take the exclusive lock too: gache loads and checks expiry lazily on Get.
type cacher[K comparable, T any] struct {
	internal *gache.Cache[*cacheData[K, T]]
	mu       sync.Mutex
}

// Get retrieves the value stored under key.
func (c *cacher[K, T]) Get(key K) mo.Option[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[T]()
	}

	if value, ok := data.Animes[key]; ok {
		return mo.Some(value)
	}
	return mo.None[T]()
}

// Set stores t under key, starting a fresh file when the old one expired.
func (c *cacher[K, T]) Set(key K, t T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}

	if expired || data == nil || data.Animes == nil {
		data = &cacheData[K, T]{Animes: make(map[K]T)}
	}
	data.Animes[key] = t
	return c.internal.Set(data)
}

// idCacher keeps catalog entries by id. Only catalog lookups are cached here.
var idCacher = &cacher[int, *Anime]{
	internal: gache.New[*cacheData[int, *Anime]](
		&gache.Options{
			Path:       where.AnilistTitles(),
			Lifetime:   time.Hour * 24 * 2,
			FileSystem: &filesystem.GacheFs{},
		},
	),
}
