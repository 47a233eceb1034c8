package pahe

import (
	"context"
	"net/http"
	"testing"

	"github.com/anisan-cli/anipahe/source"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func qualities(streams []*source.Stream) []string {
	return lo.Map(streams, func(s *source.Stream, _ int) string { return s.Quality })
}

func ids(streams []*source.Stream) []int {
	return lo.Map(streams, func(s *source.Stream, _ int) int { return s.ID })
}

func TestExtractSources(t *testing.T) {
	for _, workers := range []int{1, 3} {
		Convey("Given a play page listing three subbed qualities out of order", t, func() {
			site := newFakeSite()
			defer site.Close()
			site.kwik["/kwik/e/480"] = packedKwikPage("https://cdn.example/480/uwu.m3u8")
			site.kwik["/kwik/e/1080"] = packedKwikPage("https://cdn.example/1080/uwu.m3u8")
			site.kwik["/kwik/e/720"] = kwikPage("var source='https://cdn.example/720/uwu.m3u8';")
			site.play = playPage(
				button{"ProviderA · 480p", site.URL + "/kwik/e/480", "jpn"},
				button{"ProviderB · 1080p", site.URL + "/kwik/e/1080", "jpn"},
				button{"ProviderC · 720p", site.URL + "/kwik/e/720", "jpn"},
			)

			bundle := site.client(workers).ExtractSources(context.Background(), "sess/ep1")

			Convey("Sub streams are ordered best first with even ids", func() {
				So(qualities(bundle.Streams.Sub), ShouldResemble, []string{"1080p", "720p", "480p"})
				So(ids(bundle.Streams.Sub), ShouldResemble, []int{0, 2, 4})
				So(bundle.Streams.Dub, ShouldBeEmpty)
			})

			Convey("Each stream carries its provider and manifest", func() {
				best := bundle.Streams.Sub[0]
				So(best.Provider, ShouldEqual, "ProviderB")
				So(best.URL, ShouldEqual, "https://cdn.example/1080/uwu.m3u8")
				So(best.Referer, ShouldEqual, site.URL)
				So(best.Language, ShouldBeEmpty)
			})

			Convey("The bundle carries the fixed referer", func() {
				So(bundle.Headers.Referer, ShouldEqual, "https://kwik.cx/")
			})

			Convey("The play page is requested in the scope of its series", func() {
				So(site.lastHeaders("/play").Get("Referer"), ShouldEqual, site.URL+"/anime/sess")
			})

			Convey("Video pages are requested with the site as referer", func() {
				h := site.lastHeaders("/kwik/e/720")
				So(h.Get("Referer"), ShouldEqual, site.URL)
				So(h.Get("Origin"), ShouldEqual, site.URL)
			})
		})
	}

	Convey("Given a play page mixing audio tracks", t, func() {
		site := newFakeSite()
		defer site.Close()
		site.kwik["/kwik/e/sub"] = packedKwikPage("https://cdn.example/sub.m3u8")
		site.kwik["/kwik/e/dub"] = packedKwikPage("https://cdn.example/dub.m3u8")
		site.kwik["/kwik/e/none"] = packedKwikPage("https://cdn.example/none.m3u8")
		site.play = playPage(
			button{"SubsPlease · 1080p", site.URL + "/kwik/e/sub", "jpn"},
			button{"Dubbers · 1080p eng", site.URL + "/kwik/e/dub", "eng"},
			button{"720p", site.URL + "/kwik/e/none", ""},
		)

		bundle := site.client(2).ExtractSources(context.Background(), "sess/ep1")

		Convey("Only the eng audio track is dubbed", func() {
			So(bundle.Streams.Dub, ShouldHaveLength, 1)
			dub := bundle.Streams.Dub[0]
			So(dub.URL, ShouldEqual, "https://cdn.example/dub.m3u8")
			So(dub.ID, ShouldEqual, 1)
			So(dub.Language, ShouldEqual, source.DubLanguage)
			So(dub.Provider, ShouldEqual, "Dubbers")
		})

		Convey("Everything else is subbed", func() {
			So(ids(bundle.Streams.Sub), ShouldResemble, []int{0, 2})
			So(bundle.Streams.Sub[1].Provider, ShouldEqual, UnknownProvider)
			So(bundle.Streams.Sub[1].Quality, ShouldEqual, "720p")
		})
	})

	Convey("Given a play page with broken quality options", t, func() {
		site := newFakeSite()
		defer site.Close()
		site.kwik["/kwik/e/good"] = packedKwikPage("https://cdn.example/good.m3u8")
		site.kwik["/kwik/e/noscript"] = "<html><body>gone</body></html>"
		site.kwik["/kwik/e/nourl"] = kwikPage(pack(`const player=new Plyr('video');`))
		site.play = playPage(
			button{"A · 1080p", site.URL + "/kwik/e/noscript", "jpn"},
			button{"B · 720p", site.URL + "/kwik/e/missing", "jpn"},
			button{"C · 480p", site.URL + "/kwik/e/good", "jpn"},
			button{"D · 360p", site.URL + "/kwik/e/nourl", "jpn"},
			button{"E · 1080p", "", "jpn"},
		)

		bundle := site.client(2).ExtractSources(context.Background(), "sess/ep1")

		Convey("Only the resolvable option survives", func() {
			So(bundle.Streams.Sub, ShouldHaveLength, 1)
			So(bundle.Streams.Sub[0].URL, ShouldEqual, "https://cdn.example/good.m3u8")
			So(bundle.Streams.Sub[0].ID, ShouldEqual, 0)
		})

		Convey("Each failing page is fetched once", func() {
			So(site.hits("/kwik/e/missing"), ShouldEqual, 1)
			So(site.hits("/kwik/e/noscript"), ShouldEqual, 1)
		})
	})

	Convey("Given an unavailable play page", t, func() {
		site := newFakeSite()
		defer site.Close()
		site.status["/play"] = http.StatusInternalServerError

		bundle := site.client(2).ExtractSources(context.Background(), "sess/ep1")

		Convey("An empty, well formed bundle is returned", func() {
			So(bundle, ShouldNotBeNil)
			So(bundle.Headers.Referer, ShouldEqual, "https://kwik.cx/")
			So(bundle.Streams.Sub, ShouldNotBeNil)
			So(bundle.Streams.Sub, ShouldBeEmpty)
			So(bundle.Streams.Dub, ShouldNotBeNil)
			So(bundle.Streams.Dub, ShouldBeEmpty)
		})
	})
}
