package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/anisan-cli/anipahe/color"
	"github.com/anisan-cli/anipahe/config"
	"github.com/anisan-cli/anipahe/style"
	"github.com/anisan-cli/anipahe/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "List only variables that are set")
	envCmd.Flags().BoolP("unset-only", "u", false, "List only variables that are unset")
	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")

	envCmd.SetOut(os.Stdout)
}

// envVar is an environment variable the application reads.
type envVar struct {
	name    string
	section string
	// fallback is what applies when the variable is unset.
	fallback string
}

func envVars() []envVar {
	vars := lo.Map(config.EnvExposed, func(k string, _ int) envVar {
		field := config.Default[k]
		section, _, _ := strings.Cut(k, ".")
		return envVar{name: field.Env(), section: section, fallback: fmt.Sprint(field.Value)}
	})
	vars = append(vars, envVar{name: where.EnvConfigPath, section: "paths", fallback: "platform config directory"})

	slices.SortFunc(vars, func(a, b envVar) int {
		return strings.Compare(a.section+a.name, b.section+b.name)
	})
	return vars
}

// envCmd lists the environment variables overriding configuration keys.
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "List the environment variables that override configuration keys",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			setOnly   = lo.Must(cmd.Flags().GetBool("set-only"))
			unsetOnly = lo.Must(cmd.Flags().GetBool("unset-only"))
			section   string
		)

		for _, v := range envVars() {
			value, present := os.LookupEnv(v.name)
			if (setOnly && !present) || (unsetOnly && present) {
				continue
			}

			if v.section != section {
				if section != "" {
					cmd.Println()
				}
				section = v.section
				cmd.Println(style.Faint("# " + section))
			}

			cmd.Print(style.New().Bold(true).Foreground(color.Purple).Render(v.name), "=")
			if present {
				cmd.Println(style.Fg(color.Green)(value))
			} else {
				cmd.Println(style.Fg(color.Red)("unset"), style.Faint("("+v.fallback+")"))
			}
		}
	},
}
