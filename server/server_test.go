package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anisan-cli/anipahe/mapper"
	"github.com/anisan-cli/anipahe/source"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

type stubMapper struct {
	err       error
	gotID     int
	gotNumber int
}

func (s *stubMapper) EpisodesFor(_ context.Context, id int) (*mapper.EpisodesResult, error) {
	s.gotID = id
	if s.err != nil {
		return nil, s.err
	}
	return &mapper.EpisodesResult{
		AniListID:   id,
		AnimePaheID: "2-Example Series",
		Title:       "Example Series",
		Episodes:    []mapper.Episode{{Number: 1, ID: "main/e1", Title: "Episode 1"}},
	}, nil
}

func (s *stubMapper) SourcesFor(_ context.Context, id, number int) (*source.Bundle, error) {
	s.gotID, s.gotNumber = id, number
	if s.err != nil {
		return nil, s.err
	}
	bundle := source.NewBundle("https://kwik.cx/")
	bundle.Add(&source.Stream{Provider: "SubsPlease", Quality: "1080p", URL: "https://cdn.example/a.m3u8"})
	return bundle, nil
}

func serve(m Mapper, method, target string, headers ...string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	NewRouter(m).ServeHTTP(w, req)
	return w
}

func decode(w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	lo.Must0(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	Convey("Given the API", t, func() {
		m := &stubMapper{}

		Convey("The root reports health", func() {
			w := serve(m, http.MethodGet, "/")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decode(w)["status"], ShouldEqual, "ok")
		})

		Convey("Every answer allows any origin and carries a request id", func() {
			w := serve(m, http.MethodGet, "/")
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "*")
			So(w.Header().Get(HeaderRequestID), ShouldNotBeEmpty)
		})

		Convey("A caller supplied request id is echoed", func() {
			w := serve(m, http.MethodGet, "/", HeaderRequestID, "abc-123")
			So(w.Header().Get(HeaderRequestID), ShouldEqual, "abc-123")
		})

		Convey("Episodes are listed by catalog id", func() {
			w := serve(m, http.MethodGet, "/api/21")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(m.gotID, ShouldEqual, 21)

			body := decode(w)
			So(body["animePaheId"], ShouldEqual, "2-Example Series")
			So(body["episodes"], ShouldHaveLength, 1)
		})

		Convey("Streams are listed by catalog id and episode", func() {
			w := serve(m, http.MethodGet, "/api/watch/21/3")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(m.gotID, ShouldEqual, 21)
			So(m.gotNumber, ShouldEqual, 3)

			body := decode(w)
			So(body["headers"], ShouldResemble, map[string]any{"Referer": "https://kwik.cx/"})
		})

		Convey("Malformed ids are rejected", func() {
			So(serve(m, http.MethodGet, "/api/abc").Code, ShouldEqual, http.StatusBadRequest)
			So(serve(m, http.MethodGet, "/api/0").Code, ShouldEqual, http.StatusBadRequest)
			So(serve(m, http.MethodGet, "/api/watch/21/first").Code, ShouldEqual, http.StatusBadRequest)
			So(m.gotID, ShouldEqual, 0)
		})

		Convey("Not found failures answer 404", func() {
			m.err = fmt.Errorf("%w: id 21", mapper.ErrNotFoundInCatalog)
			w := serve(m, http.MethodGet, "/api/21")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(decode(w)["error"], ShouldContainSubstring, "not found")

			m.err = mapper.ErrEpisodeNotFound
			So(serve(m, http.MethodGet, "/api/watch/21/99").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Other failures answer 500", func() {
			m.err = errors.New("connection reset")
			w := serve(m, http.MethodGet, "/api/21")
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(decode(w)["error"], ShouldNotContainSubstring, "connection reset")
		})
	})
}
