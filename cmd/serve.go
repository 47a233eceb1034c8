package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/anisan-cli/anipahe/anilist"
	"github.com/anisan-cli/anipahe/color"
	"github.com/anisan-cli/anipahe/icon"
	"github.com/anisan-cli/anipahe/key"
	"github.com/anisan-cli/anipahe/mapper"
	"github.com/anisan-cli/anipahe/pahe"
	"github.com/anisan-cli/anipahe/server"
	"github.com/anisan-cli/anipahe/style"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on")
	lo.Must0(viper.BindPFlag(key.ServerAddr, serveCmd.Flags().Lookup("addr")))
}

// serveCmd exposes the mapping pipeline over HTTP.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the episode and stream lookups over HTTP",
	Long: `Serve the episode and stream lookups over HTTP.

Routes:
  GET /                                  health check
  GET /api/:aniListId                    episodes of an Anilist entry
  GET /api/watch/:aniListId/:episode     playable streams of one episode`,
	Run: func(cmd *cobra.Command, args []string) {
		gin.SetMode(viper.GetString(key.ServerMode))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		addr := viper.GetString(key.ServerAddr)
		fmt.Printf("%s listening on %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Bold(addr))

		m := mapper.New(anilist.NewFromConfig(), pahe.NewFromConfig())
		handleErr(server.Run(ctx, addr, server.NewRouter(m)))
	},
}
