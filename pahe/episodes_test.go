package pahe

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/anisan-cli/anipahe/source"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func numbers(episodes []*source.Episode) []int {
	return lo.Map(episodes, func(e *source.Episode, _ int) int { return e.Number })
}

func TestEpisodes(t *testing.T) {
	Convey("Given a series spread over three release pages of 20, 20 and 5", t, func() {
		site := newFakeSite()
		defer site.Close()
		site.release = releasePages(45, 20, 77)
		site.series = seriesPage("Example Series")
		c := site.client(1)

		listing, err := c.Episodes(context.Background(), "sess")

		Convey("All 45 episodes are listed in ascending order", func() {
			So(err, ShouldBeNil)
			So(listing.Episodes, ShouldHaveLength, 45)
			So(numbers(listing.Episodes), ShouldResemble, lo.RangeFrom(1, 45))
		})

		Convey("Pagination stops at the last page", func() {
			So(site.hits("/api/release"), ShouldEqual, 3)
		})

		Convey("The series page provides the title", func() {
			So(listing.Title, ShouldEqual, "Example Series")
			So(listing.Session, ShouldEqual, "sess")
			So(listing.Total, ShouldEqual, 45)
			So(site.hits("/a"), ShouldEqual, 1)
		})

		Convey("Episodes are addressed by both sessions", func() {
			first := listing.Episodes[0]
			So(first.Ref, ShouldEqual, "sess/ep1")
			So(first.Title, ShouldEqual, "Episode 1")
			So(first.Thumbnail, ShouldEqual, "https://i.animepahe.si/snapshots/1.jpg")
			So(first.SeriesTitle, ShouldEqual, "Example Series")
		})
	})

	Convey("Given pages that repeat an episode", t, func() {
		site := newFakeSite()
		defer site.Close()
		site.release = releasePages(4, 2, 1)
		page2 := site.release[2]["data"].([]map[string]any)
		page2[0] = map[string]any{"anime_id": 1, "episode": 3, "session": "again", "snapshot": ""}
		site.series = seriesPage("Repeats")

		listing, err := site.client(1).Episodes(context.Background(), "sess")

		Convey("The first occurrence is kept", func() {
			So(err, ShouldBeNil)
			So(numbers(listing.Episodes), ShouldResemble, []int{1, 3, 4})
			ep3, _ := listing.Find(3)
			So(ep3.Ref, ShouldEqual, "sess/ep3")
		})
	})

	Convey("Given a recap numbered between two episodes", t, func() {
		site := newFakeSite()
		defer site.Close()
		site.release = map[int]map[string]any{1: {
			"total":        3,
			"current_page": 1,
			"last_page":    1,
			"data": []map[string]any{
				{"anime_id": 5, "episode": 13, "session": "ep13", "snapshot": ""},
				{"anime_id": 5, "episode": 12.5, "session": "recap", "snapshot": ""},
				{"anime_id": 5, "episode": 12, "session": "ep12", "snapshot": ""},
			},
		}}
		site.series = seriesPage("Recaps")

		listing, err := site.client(1).Episodes(context.Background(), "sess")

		Convey("The recap doesn't take the place of the episode", func() {
			So(err, ShouldBeNil)
			So(numbers(listing.Episodes), ShouldResemble, []int{12, 13})
			ep12, ok := listing.Find(12)
			So(ok, ShouldBeTrue)
			So(ep12.Ref, ShouldEqual, "sess/ep12")
		})
	})

	Convey("Given an upstream that keeps reporting more pages", t, func() {
		site := newFakeSite()
		defer site.Close()
		site.release = releasePages(10, 1, 1)
		for _, page := range site.release {
			page["last_page"] = 1000
		}
		site.series = seriesPage("Endless")

		c := New(Options{BaseURL: site.URL, MaxPages: 4, HTTPClient: site.Client()})
		listing, err := c.Episodes(context.Background(), "sess")

		Convey("The walk stops at the page cap", func() {
			So(err, ShouldBeNil)
			So(site.hits("/api/release"), ShouldEqual, 4)
			So(numbers(listing.Episodes), ShouldResemble, []int{7, 8, 9, 10})
		})
	})

	Convey("Given a series page without a title", t, func() {
		site := newFakeSite()
		defer site.Close()
		site.release = releasePages(2, 20, 1)
		site.series = "<html><body><h1>nothing here</h1></body></html>"

		listing, err := site.client(1).Episodes(context.Background(), "sess")

		Convey("The placeholder is used", func() {
			So(err, ShouldBeNil)
			So(listing.Title, ShouldEqual, TitlePlaceholder)
		})
	})

	Convey("Given a series without releases", t, func() {
		site := newFakeSite()
		defer site.Close()
		site.release = map[int]map[string]any{1: {"total": 0, "last_page": 1, "data": []any{}}}

		listing, err := site.client(1).Episodes(context.Background(), "sess")

		Convey("The listing is empty and the series page is skipped", func() {
			So(err, ShouldBeNil)
			So(listing.Episodes, ShouldBeEmpty)
			So(listing.Title, ShouldEqual, TitlePlaceholder)
			So(site.hits("/a"), ShouldEqual, 0)
		})
	})

	Convey("Given a failing release page", t, func() {
		site := newFakeSite()
		defer site.Close()
		site.release = releasePages(45, 20, 1)
		delete(site.release, 2)

		_, err := site.client(1).Episodes(context.Background(), "sess")

		Convey("The failure propagates", func() {
			var upstream *UpstreamHTTPError
			So(errors.As(err, &upstream), ShouldBeTrue)
			So(upstream.Status, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestListEpisodes(t *testing.T) {
	Convey("Given a site id whose title contains a hyphen", t, func() {
		site := newFakeSite()
		defer site.Close()
		site.search = map[string]any{"data": []map[string]any{
			{"id": 9, "title": "Other", "session": "wrong"},
			{"id": 3, "title": "Re:Zero - Starting Life", "session": "rz"},
		}}
		site.release = releasePages(3, 20, 3)
		site.series = seriesPage("Re:Zero - Starting Life")

		listing, err := site.client(1).ListEpisodes(context.Background(), "3-Re:Zero - Starting Life")

		Convey("The whole title resolves the session", func() {
			So(err, ShouldBeNil)
			So(listing.Session, ShouldEqual, "rz")
			So(listing.Episodes, ShouldHaveLength, 3)
		})
	})

	Convey("Given a site id that resolves to nothing", t, func() {
		site := newFakeSite()
		defer site.Close()
		site.search = map[string]any{"data": []any{}}

		_, err := site.client(1).ListEpisodes(context.Background(), "1-Missing")

		Convey("It is not found", func() {
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			So(site.hits("/api/release"), ShouldEqual, 0)
		})
	})
}
