package cmd

import (
	"os"

	"github.com/anisan-cli/anipahe/color"
	"github.com/anisan-cli/anipahe/filesystem"
	"github.com/anisan-cli/anipahe/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, a := range artifacts {
		whereCmd.Flags().BoolP(a.flag, a.short.OrEmpty(), false, "Print only the "+a.name+" path")
	}
	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(artifacts, func(a artifact, _ int) string { return a.flag })...)

	whereCmd.SetOut(os.Stdout)
}

// whereCmd prints where the application keeps its files.
var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Print the paths of the config, logs and caches",
	Run: func(cmd *cobra.Command, args []string) {
		for _, a := range artifacts {
			if lo.Must(cmd.Flags().GetBool(a.flag)) {
				cmd.Println(a.location())
				return
			}
		}

		for i, a := range artifacts {
			path := a.location()
			state := style.Fg(color.Red)("missing")
			if lo.Must(filesystem.API().Exists(path)) {
				state = style.Fg(color.Green)("present")
			}

			cmd.Printf("%s %s %s\n", style.New().Bold(true).Foreground(color.HiPurple).Render(a.name), style.Fg(color.Yellow)("--"+a.flag), style.Faint(state))
			cmd.Println(path)

			if i < len(artifacts)-1 {
				cmd.Println()
			}
		}
	},
}
