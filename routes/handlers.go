package routes

import (
	"net/http"

	"github.com/HSouheill/lifelessons_backend/controllers"
	"github.com/HSouheill/lifelessons_backend/metrics"
	"github.com/HSouheill/lifelessons_backend/websocket"
	"github.com/labstack/echo/v4"
)

// Handlers bundles everything the route table dispatches to
type Handlers struct {
	Lessons        *controllers.LessonController
	Comments       *controllers.CommentController
	Contributors   *controllers.ContributorController
	Checkout       *controllers.CheckoutController
	Health         *controllers.HealthController
	Hub            *websocket.Hub
	AllowedOrigins []string
}

func HealthRoutes(h Handlers) []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/", Handler: h.Health.Root},
		{Method: http.MethodGet, Path: "/health", Handler: h.Health.Health},
		{Method: http.MethodGet, Path: "/metrics", Handler: echo.WrapHandler(metrics.Handler())},
	}
}

func FeedRoutes(h Handlers) []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/ws/lessons/:id", Handler: websocket.HandleLessonFeed(h.Hub, h.AllowedOrigins)},
	}
}
