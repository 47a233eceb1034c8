// Package icon provides a flexible multi-variant rendering engine for CLI symbols and feedback indicators.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII, kaomoji,
// or Unicode squares depending on user preference.
package icon

import (
	"github.com/anisan-cli/anipahe/key"
	"github.com/spf13/viper"
)

// Visual Variant Constants - these define the supported aesthetic styles for icon rendering.
const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// Icon identifies a symbol in the registry.
type Icon int

const (
	Fail Icon = iota
	Success
	Progress
	Search
	Episode
	Stream
	Dub
	Link
)

// iconDef encapsulates the visual representations of a single symbol across all supported variants.
type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

var icons = map[Icon]*iconDef{
	Fail: {
		emoji:   "💀",
		nerd:    "",
		plain:   "X",
		kaomoji: "(×_×)",
		squares: "🟥",
	},
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "OK",
		kaomoji: "(ᵔᴥᵔ)",
		squares: "🟩",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "...",
		kaomoji: "(・_・ヾ",
		squares: "🟨",
	},
	Search: {
		emoji:   "🔍",
		nerd:    "",
		plain:   "?",
		kaomoji: "(⊙_⊙)",
		squares: "🟦",
	},
	Episode: {
		emoji:   "🎞️",
		nerd:    "",
		plain:   "#",
		kaomoji: "(▰˘◡˘▰)",
		squares: "🟪",
	},
	Stream: {
		emoji:   "📺",
		nerd:    "",
		plain:   ">",
		kaomoji: "(☞ﾟ∀ﾟ)☞",
		squares: "🟧",
	},
	Dub: {
		emoji:   "🗣️",
		nerd:    "",
		plain:   "D",
		kaomoji: "(°o°)",
		squares: "🟫",
	},
	Link: {
		emoji:   "🔗",
		nerd:    "",
		plain:   "->",
		kaomoji: "(ﾉ◕ヮ◕)ﾉ",
		squares: "⬜",
	},
}

// Get retrieves the visual representation for the receiver based on the global icons variant configuration.
func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get returns the rendered string for a specified Icon identifier from the global registry.
func Get(i Icon) string {
	def, ok := icons[i]
	if !ok {
		return ""
	}
	return def.Get()
}
