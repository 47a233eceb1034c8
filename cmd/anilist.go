package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/anisan-cli/anipahe/anilist"
	"github.com/anisan-cli/anipahe/key"
	"github.com/anisan-cli/anipahe/query"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(anilistCmd)
}

// anilistCmd groups catalog lookups.
var anilistCmd = &cobra.Command{
	Use:   "anilist",
	Short: "Look up entries of the Anilist catalog",
}

func init() {
	anilistCmd.AddCommand(anilistSearchCmd)

	anilistSearchCmd.Flags().StringP("name", "n", "", "The anime title to search for on Anilist")
	anilistSearchCmd.Flags().IntP("id", "i", 0, "The specific Anilist ID to retrieve metadata for")

	anilistSearchCmd.MarkFlagsMutuallyExclusive("name", "id")

	lo.Must0(anilistSearchCmd.RegisterFlagCompletionFunc("name", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if !viper.GetBool(key.SearchShowQuerySuggestions) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	}))
}

// anilistSearchCmd performs an Anilist search by title or id.
var anilistSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Perform an Anilist search by anime title or id and print the results as JSON",
	PreRun: func(cmd *cobra.Command, args []string) {
		if !cmd.Flags().Changed("name") && !cmd.Flags().Changed("id") {
			handleErr(errors.New("name or id flag is required"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		var (
			ctx       = context.Background()
			client    = anilist.NewFromConfig()
			animeName = lo.Must(cmd.Flags().GetString("name"))
			animeId   = lo.Must(cmd.Flags().GetInt("id"))
			toEncode  any
		)

		if animeName != "" {
			animes, err := client.SearchByName(ctx, animeName)
			handleErr(err)
			remember(animeName)
			for _, anime := range animes {
				remember(anime.Name())
			}
			toEncode = animes
		} else {
			anime, err := client.GetByID(ctx, animeId)
			handleErr(err)
			if anime == nil {
				handleErr(fmt.Errorf("anilist entry %d not found", animeId))
			}
			remember(anime.Name())
			toEncode = anime
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(toEncode))
	},
}
