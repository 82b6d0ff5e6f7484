package routes

import (
	"github.com/labstack/echo/v4"
)

// Route describes one endpoint. RequiresAuth is evaluated by Register, so
// no route attaches the auth guard by hand.
type Route struct {
	Method       string
	Path         string
	Handler      echo.HandlerFunc
	RequiresAuth bool
}

// Register mounts every route, wrapping those that require auth with the guard
func Register(e *echo.Echo, routes []Route, authGuard echo.MiddlewareFunc) {
	for _, r := range routes {
		var middlewares []echo.MiddlewareFunc
		if r.RequiresAuth {
			middlewares = append(middlewares, authGuard)
		}
		e.Add(r.Method, r.Path, r.Handler, middlewares...)
	}
}

// SetupRoutes registers the full API
func SetupRoutes(e *echo.Echo, h Handlers, authGuard echo.MiddlewareFunc) {
	var all []Route
	all = append(all, HealthRoutes(h)...)
	all = append(all, LessonRoutes(h)...)
	all = append(all, CommentRoutes(h)...)
	all = append(all, ContributorRoutes(h)...)
	all = append(all, CheckoutRoutes(h)...)
	all = append(all, FeedRoutes(h)...)

	Register(e, all, authGuard)
}
