package router

import (
	"github.com/deppfellow/phonebook/internal/handler"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerSystemRoutes registers endpoints that are not part of the phonebook API.
//
// Nothing here may live under /static: that prefix belongs to the frontend
// build served by the catch-all route.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/info", h.Info.GetInfo)

	r.GET("/status", h.Health.CheckHealth)

	r.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	docs := r.Group("/docs")
	docs.GET("", h.OpenAPI.ServeOpenAPIUI)
	docs.GET("/openapi.json", h.OpenAPI.ServeOpenAPISpec)
}
