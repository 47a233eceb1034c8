package version

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anisan-cli/anipahe/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestCompare(t *testing.T) {
	Convey("Compare", t, func() {
		for _, tc := range []struct {
			a, b string
			want int
		}{
			{"1.2.3", "1.2.3", 0},
			{"v1.2.4", "1.2.3", 1},
			{"0.9.0", "1.0.0", -1},
			{"2.0.0", "1.99.99", 1},
			{"1.3.0-rc.1", "v1.3.0", 0},
		} {
			got, err := Compare(tc.a, tc.b)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, tc.want)
		}

		Convey("Malformed versions are errors", func() {
			_, err := Compare("latest", "1.0.0")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestFetchLatest(t *testing.T) {
	Convey("Given a releases endpoint", t, func() {
		status, body := http.StatusOK, `{"tag_name": "v1.4.0"}`
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		}))
		defer srv.Close()

		previous := ReleasesURL
		ReleasesURL = srv.URL
		defer func() { ReleasesURL = previous }()

		Convey("The tag is returned without its v prefix", func() {
			v, err := fetchLatest(context.Background(), srv.Client())
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "1.4.0")
		})

		Convey("An empty tag is an error", func() {
			body = `{}`
			_, err := fetchLatest(context.Background(), srv.Client())
			So(err, ShouldNotBeNil)
		})

		Convey("A failed request is an error", func() {
			status = http.StatusForbidden
			_, err := fetchLatest(context.Background(), srv.Client())
			So(err, ShouldNotBeNil)
		})
	})
}
