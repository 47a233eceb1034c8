// Package server exposes the mapper over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/anisan-cli/anipahe/log"
	"github.com/anisan-cli/anipahe/mapper"
	"github.com/anisan-cli/anipahe/source"
	"github.com/gin-gonic/gin"
)

// Mapper is what the API serves.
type Mapper interface {
	EpisodesFor(ctx context.Context, id int) (*mapper.EpisodesResult, error)
	SourcesFor(ctx context.Context, id, number int) (*source.Bundle, error)
}

// Health is the body of the root endpoint.
type Health struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Error is the body of every failed request.
type Error struct {
	Error string `json:"error"`
}

// NewRouter builds the API routes over m.
func NewRouter(m Mapper) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), cors(), accessLog())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, Health{Status: "ok", Message: "AniList AnimePahe Mapper API is running"})
	})

	h := &handler{mapper: m}
	r.GET("/api/:aniListId", h.episodes)
	r.GET("/api/watch/:aniListId/:episode", h.watch)

	return r
}

type handler struct {
	mapper Mapper
}

func (h *handler) episodes(c *gin.Context) {
	id, ok := positiveParam(c, "aniListId")
	if !ok {
		c.JSON(http.StatusBadRequest, Error{Error: "a numeric AniList ID is required"})
		return
	}

	result, err := h.mapper.EpisodesFor(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *handler) watch(c *gin.Context) {
	id, ok := positiveParam(c, "aniListId")
	if !ok {
		c.JSON(http.StatusBadRequest, Error{Error: "a numeric AniList ID is required"})
		return
	}
	number, ok := positiveParam(c, "episode")
	if !ok {
		c.JSON(http.StatusBadRequest, Error{Error: "a numeric episode number is required"})
		return
	}

	bundle, err := h.mapper.SourcesFor(c.Request.Context(), id, number)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, bundle)
}

// fail answers 404 for missing resources and 500 for everything else.
func (h *handler) fail(c *gin.Context, err error) {
	entry := log.FromContext(c.Request.Context()).WithError(err)
	if mapper.IsNotFound(err) {
		entry.Info("not found")
		c.JSON(http.StatusNotFound, Error{Error: err.Error()})
		return
	}

	entry.Error("request failed")
	c.JSON(http.StatusInternalServerError, Error{Error: "failed to resolve the request upstream"})
}

func positiveParam(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	return n, err == nil && n > 0
}

// Run serves handler on addr until ctx is done, then shuts down gracefully.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
