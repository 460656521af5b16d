// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package server

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gogpu/gg-gwas"
	"github.com/gogpu/gg-gwas/internal/framecache"
)

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests(), s.sessionHeader())

	r.GET("/view", s.getView)
	r.POST("/pan", s.postPan)
	r.POST("/zoom", s.postZoom)
	r.POST("/cursor", s.postCursor)
	r.POST("/resize", s.postResize)
	r.GET("/hover", s.getHover)
	r.GET("/uniforms", s.getUniforms)
	r.GET("/frame.png", s.getFrame)
	r.GET("/stats", s.getStats)
	return r
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		gwas.Logger().Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start))
	}
}

func (s *Server) sessionHeader() gin.HandlerFunc {
	id := s.session.String()
	return func(c *gin.Context) {
		c.Header(SessionHeader, id)
		c.Next()
	}
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func queryFloat(c *gin.Context, name string) (float64, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return 0, fmt.Errorf("missing query parameter %q", name)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("query parameter %q: %q is not a finite number", name, raw)
	}
	return f, nil
}

// ViewResponse is the body of /view and of the input routes.
type ViewResponse struct {
	View     gwas.View         `json:"view"`
	Viewport gwas.ViewportDims `json:"viewport"`
	Visible  [2]float64        `json:"visible"`
}

func (s *Server) viewResponse(v gwas.View) ViewResponse {
	from, to := v.Visible()
	return ViewResponse{View: v, Viewport: s.app.Viewport(), Visible: [2]float64{from, to}}
}

func (s *Server) getView(c *gin.Context) {
	c.JSON(http.StatusOK, s.viewResponse(s.app.View()))
}

func (s *Server) postPan(c *gin.Context) {
	dir, err := strconv.Atoi(c.Query("dir"))
	if err != nil || (dir != -1 && dir != 1) {
		badRequest(c, fmt.Errorf("dir must be -1 or 1, got %q", c.Query("dir")))
		return
	}
	c.JSON(http.StatusOK, s.viewResponse(s.app.Pan(dir)))
}

func (s *Server) postZoom(c *gin.Context) {
	delta, err := queryFloat(c, "delta")
	if err != nil {
		badRequest(c, err)
		return
	}
	mode, ok := gwas.ParseScrollMode(c.DefaultQuery("mode", gwas.ScrollLine.String()))
	if !ok {
		badRequest(c, fmt.Errorf("mode must be line or pixel, got %q", c.Query("mode")))
		return
	}
	c.JSON(http.StatusOK, s.viewResponse(s.app.Zoom(delta, mode)))
}

// HoverResponse describes the genomic location under the cursor.
type HoverResponse struct {
	Cursor gwas.Point `json:"cursor"`
	OK     bool       `json:"ok"`
	gwas.Hit

	// Locus is "chromosome:position" with grouped digits, empty when not
	// over a chromosome.
	Locus string `json:"locus,omitempty"`
}

func (s *Server) hoverResponse(p gwas.Point) HoverResponse {
	hit, ok := s.app.HitTest(p.X)
	resp := HoverResponse{Cursor: p, OK: ok, Hit: hit}
	if ok {
		resp.Locus = s.printer.Sprintf("%s:%d", hit.Chromosome, int64(math.Floor(hit.Position)))
	}
	return resp
}

func (s *Server) postCursor(c *gin.Context) {
	x, err := queryFloat(c, "x")
	if err != nil {
		badRequest(c, err)
		return
	}
	y, err := queryFloat(c, "y")
	if err != nil {
		badRequest(c, err)
		return
	}
	s.app.CursorMoved(x, y)
	c.JSON(http.StatusOK, s.hoverResponse(gwas.Pt(x, y)))
}

func (s *Server) getHover(c *gin.Context) {
	p, ok := s.app.Cursor()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "cursor has not moved yet"})
		return
	}
	c.JSON(http.StatusOK, s.hoverResponse(p))
}

func (s *Server) postResize(c *gin.Context) {
	w, err := queryFloat(c, "width")
	if err != nil {
		badRequest(c, err)
		return
	}
	h, err := queryFloat(c, "height")
	if err != nil {
		badRequest(c, err)
		return
	}
	if err := s.app.ViewportResized(w, h); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, s.viewResponse(s.app.View()))
}

// UniformBlock is one chromosome's parameter block as uploaded to a GPU:
// the matrix is column-major float32.
type UniformBlock struct {
	Chromosome     string      `json:"chromosome"`
	Offset         uint64      `json:"offset"`
	VertexCount    int         `json:"vertex_count"`
	Matrix         [16]float32 `json:"matrix"`
	VerticalOffset float64     `json:"vertical_offset"`
	ValueFloor     float64     `json:"value_floor"`
}

func (s *Server) getUniforms(c *gin.Context) {
	var frame gwas.Frame
	if err := s.onRenderLoop(c.Request.Context(), func() { frame = s.frame() }); err != nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	blocks := make([]UniformBlock, 0, len(frame.Calls))
	for _, call := range frame.Calls {
		blocks = append(blocks, UniformBlock{
			Chromosome:     call.Chromosome,
			Offset:         call.Offset,
			VertexCount:    call.VertexCount,
			Matrix:         call.Block.Matrix.ColumnMajor(),
			VerticalOffset: call.Block.VerticalOffset,
			ValueFloor:     call.Block.ValueFloor,
		})
	}
	c.JSON(http.StatusOK, gin.H{"view": frame.View, "blocks": blocks})
}

func (s *Server) getFrame(c *gin.Context) {
	var (
		png       []byte
		renderErr error
	)
	err := s.onRenderLoop(c.Request.Context(), func() {
		frame := s.frame()
		key := framecache.Key{View: frame.View, Viewport: frame.Viewport}
		png, renderErr = s.frames.GetOrCreate(key, func() ([]byte, error) {
			return s.encode(frame)
		})
	})
	if err == nil {
		err = renderErr
	}
	switch {
	case errors.Is(err, gwas.ErrInvalidViewport):
		badRequest(c, err)
	case errors.Is(err, ErrClosed):
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case err != nil:
		gwas.Logger().Warn("frame failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.Header("Cache-Control", "no-store")
		c.Data(http.StatusOK, "image/png", png)
	}
}

func (s *Server) getStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"session": s.session.String(),
		"frames":  s.frames.Stats(),
		"skipped": s.app.Dataset().Skipped(),
	})
}
