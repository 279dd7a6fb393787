package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/deppfellow/phonebook/internal/server"
	"github.com/labstack/echo/v4"
)

// OpenAPIHandler serves the API documentation page and the document it
// renders. The page loads the UI from a CDN and fetches /docs/openapi.json.
//
// Both live under /docs so they can never shadow a path of the frontend
// build, which owns everything else below the root (including /static/).
type OpenAPIHandler struct {
	Handler
	dir string
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		dir:     s.Config.Server.DocsDir,
	}
}

func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	templateBytes, err := os.ReadFile(filepath.Join(h.dir, "openapi.html"))

	// Docs change with the code; never let a browser keep an old copy.
	c.Response().Header().Set("Cache-Control", "no-cache")

	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	if err := c.HTML(http.StatusOK, string(templateBytes)); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}

// ServeOpenAPISpec returns openapi.json. A missing file answers 404 through
// the global error handler.
func (h *OpenAPIHandler) ServeOpenAPISpec(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.File(filepath.Join(h.dir, "openapi.json"))
}
