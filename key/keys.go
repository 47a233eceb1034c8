// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Streaming Site - these keys govern how the animepahe client reaches and walks the site.
const (
	SiteBaseURL        = "site.base_url"
	SiteSearchLimit    = "site.search_limit"
	SiteMaxPages       = "site.max_pages"
	SiteTimeout        = "site.timeout"
	SiteTLSFingerprint = "site.tls_fingerprint"
)

// Stream Extraction - these keys configure resolution of intermediate video pages.
const (
	ExtractWorkers = "extract.workers"
	ExtractReferer = "extract.referer"
)

// Anilist Catalog - these keys configure the metadata catalog lookups.
const (
	AnilistURL   = "anilist.url"
	AnilistCache = "anilist.cache"
)

// HTTP Server - these keys configure the outward facing API.
const (
	ServerAddr = "server.addr"
	ServerMode = "server.mode"
)

// Search Interaction - these keys define suggestion behaviour for shell completion.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Iconography - these keys manage the visual rendering of CLI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite  = "logs.write"
	LogsStderr = "logs.stderr"
	LogsLevel  = "logs.level"
	LogsJson   = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the terminal output.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
