package cmd

import (
	"encoding/json"
	"os"
	"runtime"
	"strings"
	"text/template"

	"github.com/anisan-cli/anipahe/color"
	"github.com/anisan-cli/anipahe/config"
	"github.com/anisan-cli/anipahe/constant"
	"github.com/anisan-cli/anipahe/key"
	"github.com/anisan-cli/anipahe/style"
	"github.com/anisan-cli/anipahe/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Print only the version")
	versionCmd.Flags().BoolP("json", "j", false, "Print the build information as JSON")
	versionCmd.MarkFlagsMutuallyExclusive("short", "json")
}

// buildInfo describes the running binary and the site it talks to.
type buildInfo struct {
	App      string `json:"app"`
	Version  string `json:"version"`
	Revision string `json:"revision"`
	BuiltAt  string `json:"builtAt"`
	BuiltBy  string `json:"builtBy"`
	Platform string `json:"platform"`
	Site     string `json:"site"`
	Config   string `json:"config"`
}

var versionTemplate = template.Must(template.New("version").Funcs(template.FuncMap{
	"faint":   style.Faint,
	"bold":    style.Bold,
	"magenta": style.Fg(color.Purple),
}).Parse(`{{ magenta "▇▇▇" }} {{ magenta .App }}

  {{ faint "Version" }}     {{ bold .Version }}
  {{ faint "Revision" }}    {{ bold .Revision }}
  {{ faint "Built" }}       {{ bold .BuiltAt }} {{ faint "by" }} {{ bold .BuiltBy }}
  {{ faint "Platform" }}    {{ bold .Platform }}
  {{ faint "Site" }}        {{ bold .Site }}
  {{ faint "Config" }}      {{ bold .Config }}
`))

// versionCmd prints build metadata.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		info := buildInfo{
			App:      constant.App,
			Version:  constant.Version,
			Revision: constant.Revision,
			BuiltAt:  strings.TrimSpace(constant.BuiltAt),
			BuiltBy:  constant.BuiltBy,
			Platform: runtime.GOOS + "/" + runtime.GOARCH,
			Site:     viper.GetString(key.SiteBaseURL),
			Config:   config.Path(),
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(info))
			return
		}

		defer version.Notify()
		handleErr(versionTemplate.Execute(cmd.OutOrStdout(), info))
	},
}
