// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package server exposes a gwas.App over HTTP.
//
// Input routes (pan, zoom, cursor, resize) write the application's atomic
// cells directly from the request goroutine. Everything that needs a frame
// (uniforms, PNG frames) is handed to a single render goroutine, which owns
// the renderer, its target and the App's per-frame uniform storage.
//
// Routes:
//
//	GET  /view                    current view, viewport and visible range
//	POST /pan?dir=-1|1            pan one step
//	POST /zoom?delta=&mode=       zoom; mode is "line" (default) or "pixel"
//	POST /cursor?x=&y=            store the cursor and return what is under it
//	POST /resize?width=&height=   set the viewport size
//	GET  /hover                   genomic location under the stored cursor
//	GET  /uniforms                per-chromosome parameter blocks
//	GET  /frame.png               the current frame
//	GET  /stats                   frame cache statistics
package server

import (
	"bytes"
	"context"
	"errors"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/gg-gwas"
	"github.com/gogpu/gg-gwas/internal/framecache"
	"github.com/gogpu/gg-gwas/render"
)

// ErrClosed is returned for frame requests after Close.
var ErrClosed = errors.New("server: closed")

// SessionHeader carries the session ID on every response.
const SessionHeader = "X-Gwas-Session"

// Server serves one App session.
type Server struct {
	app      *gwas.App
	renderer render.Renderer
	frames   *framecache.Frames
	session  uuid.UUID
	printer  *message.Printer
	engine   *gin.Engine

	jobs      chan func()
	quit      chan struct{}
	loopDone  chan struct{}
	closeOnce sync.Once

	// target is touched by the render goroutine only.
	target *render.Target
}

// Option configures a Server.
type Option func(*Server)

// WithFrameCache sets how many encoded frames each cache shard keeps.
func WithFrameCache(perShard int) Option {
	return func(s *Server) {
		s.frames = framecache.NewFrames(perShard)
	}
}

// New creates a server and starts its render goroutine. Call Close to stop
// it.
func New(app *gwas.App, renderer render.Renderer, opts ...Option) *Server {
	s := &Server{
		app:      app,
		renderer: renderer,
		session:  uuid.New(),
		printer:  message.NewPrinter(language.English),
		jobs:     make(chan func()),
		quit:     make(chan struct{}),
		loopDone: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.frames == nil {
		s.frames = framecache.NewFrames(framecache.DefaultCapacity)
	}
	s.engine = s.routes()
	go s.renderLoop()
	return s
}

// SessionID identifies this server's session; it is sent in SessionHeader.
func (s *Server) SessionID() uuid.UUID {
	return s.session
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Close stops the render goroutine and releases the render target.
// Pending frame requests fail with ErrClosed.
func (s *Server) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.quit)
		<-s.loopDone
		if s.target != nil {
			err = s.target.Close()
		}
	})
	return err
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		gwas.Logger().Info("server listening", "addr", addr, "session", s.session)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) renderLoop() {
	defer close(s.loopDone)
	for {
		select {
		case job := <-s.jobs:
			job()
		case <-s.quit:
			return
		}
	}
}

// onRenderLoop runs fn on the render goroutine and waits for it.
func (s *Server) onRenderLoop(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	job := func() {
		defer close(done)
		fn()
	}
	select {
	case s.jobs <- job:
	case <-s.quit:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// frame returns the current draw list. Render goroutine only.
func (s *Server) frame() gwas.Frame {
	return s.app.Frame()
}

// encode renders frame into the server's target, resizing it to the
// frame's viewport. Render goroutine only.
func (s *Server) encode(frame gwas.Frame) ([]byte, error) {
	w := int(math.Round(frame.Viewport.Width))
	h := int(math.Round(frame.Viewport.Height))
	if w <= 0 || h <= 0 {
		return nil, gwas.ErrInvalidViewport
	}
	if s.target == nil {
		s.target = render.NewTarget(w, h)
	} else if err := s.target.Resize(w, h); err != nil {
		return nil, err
	}
	if err := s.renderer.Render(s.target, frame); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := s.target.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
