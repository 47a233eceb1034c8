package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/anisan-cli/anipahe/anilist"
	"github.com/anisan-cli/anipahe/mapper"
	"github.com/anisan-cli/anipahe/source"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().BoolP("sources", "s", false, "Generate the JSON Schema of stream lookups")
	schemaCmd.Flags().BoolP("anilist", "a", false, "Generate the JSON Schema of Anilist search results")
	schemaCmd.MarkFlagsMutuallyExclusive("sources", "anilist")
}

// schemaCmd generates JSON schemas of the structured outputs.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate JSON schemas of the structured outputs",
	Long: `Generate JSON schemas of the structured outputs.
Without flags the schema of episode listings is printed.`,
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "anime", "episode", "stream":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		var schema *jsonschema.Schema

		switch {
		case lo.Must(cmd.Flags().GetBool("sources")):
			schema = reflector.Reflect(&source.Bundle{})
		case lo.Must(cmd.Flags().GetBool("anilist")):
			schema = reflector.Reflect([]*anilist.Anime{})
		default:
			schema = reflector.Reflect(&mapper.EpisodesResult{})
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}
