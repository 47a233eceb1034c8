package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/anisan-cli/anipahe/icon"
	"github.com/anisan-cli/anipahe/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var clearable = lo.Filter(artifacts, func(a artifact, _ int) bool { return a.clearable })

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, a := range clearable {
		clearCmd.Flags().BoolP(a.flag, a.short.OrEmpty(), false, "Clear the "+a.name)
	}
	clearCmd.Flags().BoolP("all", "a", false, "Clear every cache and the logs")
}

// clearCmd removes caches and logs. They are rebuilt on demand.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove caches and logs",
	Run: func(cmd *cobra.Command, args []string) {
		all := lo.Must(cmd.Flags().GetBool("all"))
		targets := lo.Filter(clearable, func(a artifact, _ int) bool {
			return all || lo.Must(cmd.Flags().GetBool(a.flag))
		})

		if len(targets) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, a := range targets {
			erase := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), a.name))
			err := util.Delete(a.location())
			erase()

			if errors.Is(err, os.ErrNotExist) {
				fmt.Printf("%s %s already clear\n", icon.Get(icon.Success), util.Capitalize(a.name))
				continue
			}
			handleErr(err)
			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(a.name))
		}
	},
}
