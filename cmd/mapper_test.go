package cmd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anisan-cli/anipahe/anilist"
	"github.com/anisan-cli/anipahe/filesystem"
	"github.com/anisan-cli/anipahe/key"
	"github.com/anisan-cli/anipahe/query"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestRememberingCatalog(t *testing.T) {
	Convey("Given a catalog entry", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"Media": map[string]any{
				"id":    21,
				"title": map[string]any{"romaji": "Remembered Series"},
			}}})
		}))
		defer server.Close()

		viper.Set(key.SearchShowQuerySuggestions, true)
		defer viper.Set(key.SearchShowQuerySuggestions, false)

		client := anilist.New(server.URL, false)

		Convey("Plain catalog lookups leave the history alone", func() {
			title, err := client.Title(context.Background(), 21)
			So(err, ShouldBeNil)
			So(title, ShouldEqual, "Remembered Series")
			So(query.SuggestMany("remembered"), ShouldBeEmpty)

			Convey("CLI lookups feed completion", func() {
				_, err := rememberingCatalog{client}.Title(context.Background(), 21)
				So(err, ShouldBeNil)
				So(query.SuggestMany("remembered"), ShouldContain, "remembered series")
			})
		})
	})
}
