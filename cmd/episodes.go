package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/anisan-cli/anipahe/filesystem"
	"github.com/anisan-cli/anipahe/inline"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(episodesCmd)

	episodesCmd.Flags().StringP("episodes", "e", "", "Criteria for selecting specific episodes")
	episodesCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	episodesCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")
}

// episodesCmd lists the episodes of an Anilist entry on the streaming site.
var episodesCmd = &cobra.Command{
	Use:   "episodes <anilist id>",
	Short: "List the episodes of an Anilist entry on the streaming site",
	Long: `List the episodes of an Anilist entry on the streaming site.

Episode selectors:
  first - first episode in the list
  last - last episode in the list
  all - all episodes in the list
  [number] - select episode by its number
  [from]-[to] - select episodes by number range
  @[substring]@ - select episodes by title substring`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0], "anilist id")

		episodesFilter := mo.None[inline.EpisodesFilter]()
		if flag := lo.Must(cmd.Flags().GetString("episodes")); flag != "" {
			fn, err := inline.ParseEpisodesFilter(flag)
			handleErr(err)
			episodesFilter = mo.Some(fn)
		}

		out, closeOut := outputWriter(cmd)
		defer closeOut()

		options := &inline.Options{
			Out:            out,
			Mapper:         newMapper(),
			AniListID:      id,
			EpisodesFilter: episodesFilter,
			Json:           lo.Must(cmd.Flags().GetBool("json")),
		}

		handleErr(inline.Run(context.Background(), options))
	},
}

func parseID(arg, what string) int {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		handleErr(fmt.Errorf("invalid %s: %s", what, arg))
	}

	return id
}

// outputWriter opens the --output file, stdout when unset. The returned func closes it.
func outputWriter(cmd *cobra.Command) (io.Writer, func()) {
	output := lo.Must(cmd.Flags().GetString("output"))
	if output == "" {
		return os.Stdout, func() {}
	}

	file, err := filesystem.API().Create(output)
	handleErr(err)
	return file, func() { handleErr(file.Close()) }
}
