package network

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Given a local http upstream", t, func() {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "pong")
		}))
		defer upstream.Close()

		Convey("A plain client honours the timeout", func() {
			client := New(5*time.Second, false)
			So(client.Timeout, ShouldEqual, 5*time.Second)

			resp := lo.Must(client.Get(upstream.URL))
			defer resp.Body.Close()
			So(string(lo.Must(io.ReadAll(resp.Body))), ShouldEqual, "pong")
		})

		Convey("A fingerprinting client passes plain http through", func() {
			client := New(5*time.Second, true)
			_, ok := client.Transport.(*fingerprintTransport)
			So(ok, ShouldBeTrue)

			resp := lo.Must(client.Get(upstream.URL))
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
		})
	})
}
