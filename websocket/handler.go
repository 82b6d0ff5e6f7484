package websocket

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleLessonFeed upgrades the request and subscribes the connection to the
// activity of the lesson named by the :id path parameter
func HandleLessonFeed(hub *Hub, allowedOrigins []string) echo.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}

	return func(c echo.Context) error {
		lessonID := c.Param("id")
		if _, err := primitive.ObjectIDFromHex(lessonID); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid lesson ID")
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			// Upgrade already wrote the error response
			return nil
		}

		client := &Client{
			LessonID: lessonID,
			Conn:     conn,
			send:     make(chan Event, 16),
		}
		client.send <- Event{
			Type:     EventConnected,
			LessonID: lessonID,
			Message:  "Subscribed to lesson activity",
		}
		if !hub.join(client) {
			conn.Close()
			return nil
		}

		go client.writePump()
		go client.readPump(hub)

		return nil
	}
}

// originChecker accepts requests without an Origin header (non-browser
// clients) and browser requests from an allowed origin
func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, origin := range allowed {
		set[origin] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set[origin] || set["*"]
	}
}
