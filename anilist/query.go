package anilist

import "fmt"

// animeSubquery is the selection set shared by every anime query.
var animeSubquery = `
id
idMal
title {
	romaji
	english
	native
}
format
status
seasonYear
episodes
synonyms
coverImage {
	large
	color
}
siteUrl
averageScore
`

// searchByNameQuery searches anime by title.
var searchByNameQuery = fmt.Sprintf(`
query ($query: String) {
	Page (page: 1, perPage: 30) {
		media (search: $query, type: ANIME) {
			%s
		}
	}
}
`, animeSubquery)

// searchByIDQuery fetches a single anime by id.
var searchByIDQuery = fmt.Sprintf(`
query ($id: Int) {
	Media (id: $id, type: ANIME) {
		%s
	}
}`, animeSubquery)
