package handler

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/deppfellow/phonebook/internal/errs"
	"github.com/deppfellow/phonebook/internal/server"
	"github.com/labstack/echo/v4"
)

// StaticHandler serves the built single-page frontend. Paths that match a
// file are served as-is, anything else falls back to index.html so that
// client-side routes survive a reload. API paths never fall back.
type StaticHandler struct {
	Handler
	root string
}

func NewStaticHandler(s *server.Server) *StaticHandler {
	return &StaticHandler{
		Handler: NewHandler(s),
		root:    s.Config.Server.StaticDir,
	}
}

func (h *StaticHandler) Serve(c echo.Context) error {
	urlPath := c.Request().URL.Path
	if urlPath == "/api" || strings.HasPrefix(urlPath, "/api/") {
		return errs.NewUnknownEndpointError()
	}

	if h.root == "" {
		return errs.NewUnknownEndpointError()
	}

	// Clean against "/" so ".." can never leave root.
	name := filepath.Join(h.root, filepath.FromSlash(path.Clean("/"+urlPath)))
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return c.File(name)
	}

	index := filepath.Join(h.root, "index.html")
	if _, err := os.Stat(index); err != nil {
		return errs.NewUnknownEndpointError()
	}

	return c.File(index)
}
