// Package router builds the echo instance: middleware order, API routes and
// system routes.
package router

import (
	"github.com/deppfellow/phonebook/internal/handler"
	"github.com/deppfellow/phonebook/internal/middleware"
	"github.com/deppfellow/phonebook/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter wires every middleware and route onto a fresh echo instance.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Metrics.Record(),
		middlewares.Global.BodyDump(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	api := router.Group("/api")
	registerPersonRoutes(api, h)

	// Last, so every route above wins over the frontend fallback.
	router.GET("/*", h.Static.Serve)

	return router
}

func registerPersonRoutes(api *echo.Group, h *handler.Handlers) {
	persons := api.Group("/persons")

	persons.GET("", h.Person.ListPersons)
	persons.POST("", h.Person.CreatePerson)
	persons.GET("/:id", h.Person.GetPerson)
	persons.PUT("/:id", h.Person.UpdatePerson)
	persons.DELETE("/:id", h.Person.DeletePerson)
}
