// Package anilist provides a client for the Anilist GraphQL API.
package anilist

// Anime is the catalog entry of a series.
type Anime struct {
	// ID is the unique identifier for the anime on Anilist.
	ID int `json:"id" jsonschema:"description=ID of the anime on Anilist."`
	// IDMal is the id of the anime on MyAnimeList.
	IDMal int `json:"idMal" jsonschema:"description=ID of the anime on MyAnimeList."`
	Title struct {
		Romaji  string `json:"romaji" jsonschema:"description=Romanized title of the anime."`
		English string `json:"english" jsonschema:"description=English title of the anime."`
		Native  string `json:"native" jsonschema:"description=Native title of the anime. Usually in kanji."`
	} `json:"title"`
	// Format is the kind of release (TV, MOVIE, OVA...).
	Format string `json:"format" jsonschema:"description=Format of the anime."`
	// Status is the status of the anime. (FINISHED, RELEASING, NOT_YET_RELEASED, CANCELLED)
	Status     string   `json:"status" jsonschema:"enum=FINISHED,enum=RELEASING,enum=NOT_YET_RELEASED,enum=CANCELLED,enum=HIATUS"`
	SeasonYear int      `json:"seasonYear"`
	Episodes   int      `json:"episodes" jsonschema:"description=Total number of episodes the anime has when complete."`
	Synonyms   []string `json:"synonyms" jsonschema:"description=Synonyms of the anime (Alternative titles)."`
	CoverImage struct {
		Large string `json:"large" jsonschema:"description=URL of the large cover image."`
		Color string `json:"color" jsonschema:"description=Average color of the cover image."`
	} `json:"coverImage"`
	SiteURL      string `json:"siteUrl" jsonschema:"description=URL of the anime on Anilist."`
	AverageScore int    `json:"averageScore"`
}

// Name returns the title the streaming site is searched with: romaji, then english, then native.
func (a *Anime) Name() string {
	switch {
	case a.Title.Romaji != "":
		return a.Title.Romaji
	case a.Title.English != "":
		return a.Title.English
	default:
		return a.Title.Native
	}
}
