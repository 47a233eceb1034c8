package cmd

import (
	"context"
	"fmt"

	"github.com/anisan-cli/anipahe/color"
	"github.com/anisan-cli/anipahe/icon"
	"github.com/anisan-cli/anipahe/inline"
	"github.com/anisan-cli/anipahe/source"
	"github.com/anisan-cli/anipahe/style"
	"github.com/anisan-cli/anipahe/util"
	"github.com/muesli/reflow/wrap"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	watchCmd.Flags().BoolP("plain", "p", false, "Print tab separated lines instead of a styled list")
	watchCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")
	watchCmd.Flags().Bool("dub", false, "Only list dubbed streams")
	watchCmd.Flags().Bool("sub", false, "Only list subbed streams")

	watchCmd.MarkFlagsMutuallyExclusive("dub", "sub")
	watchCmd.MarkFlagsMutuallyExclusive("json", "plain")
}

// watchCmd resolves the playable streams of one episode.
var watchCmd = &cobra.Command{
	Use:   "watch <anilist id> <episode>",
	Short: "Resolve the playable streams of one episode",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			id      = parseID(args[0], "anilist id")
			episode = parseID(args[1], "episode number")
			asJson  = lo.Must(cmd.Flags().GetBool("json"))
			plain   = lo.Must(cmd.Flags().GetBool("plain"))
			dubOnly = lo.Must(cmd.Flags().GetBool("dub"))
			subOnly = lo.Must(cmd.Flags().GetBool("sub"))
		)

		if asJson || plain || cmd.Flags().Changed("output") {
			out, closeOut := outputWriter(cmd)
			defer closeOut()

			handleErr(inline.Run(context.Background(), &inline.Options{
				Out:       out,
				Mapper:    newMapper(),
				AniListID: id,
				Episode:   mo.Some(episode),
				Json:      asJson,
				DubOnly:   dubOnly,
				SubOnly:   subOnly,
			}))
			return
		}

		erase := util.PrintErasable(fmt.Sprintf("%s Resolving episode %d...", icon.Get(icon.Progress), episode))
		bundle, err := newMapper().SourcesFor(context.Background(), id, episode)
		erase()
		handleErr(err)

		streams := bundle.All()
		streams = lo.Filter(streams, func(s *source.Stream, _ int) bool {
			return !(dubOnly && !s.Dub) && !(subOnly && s.Dub)
		})

		if len(streams) == 0 {
			fmt.Printf("%s no playable streams found\n", style.Fg(color.Yellow)(icon.Get(icon.Fail)))
			return
		}

		fmt.Printf(
			"%s %s %s\n\n",
			icon.Get(icon.Episode),
			style.Title(fmt.Sprintf("Episode %d", episode)),
			style.Faint(util.Quantify(len(streams), "stream", "streams")),
		)

		width := 100
		if w, _, err := util.TerminalSize(); err == nil && w > 4 {
			width = w
		}

		for _, s := range streams {
			track := icon.Get(icon.Stream)
			if s.Dub {
				track = icon.Get(icon.Dub)
			}

			fmt.Printf("%s %s %s\n", track, style.Quality(s.Quality)(s.Quality), style.Bold(s.Provider))
			fmt.Printf("  %s %s\n", icon.Get(icon.Link), wrap.String(s.URL, width-4))
			fmt.Printf("  %s\n\n", style.Faint("Referer: "+s.Referer))
		}
	},
}
