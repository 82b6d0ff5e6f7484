package controllers

import (
	"net/http"

	"github.com/HSouheill/lifelessons_backend/models"
	"github.com/HSouheill/lifelessons_backend/websocket"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Publisher receives lesson activity after successful writes
type Publisher interface {
	Publish(lessonID string, event websocket.Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(string, websocket.Event) {}

// NoopPublisher discards every event
var NoopPublisher Publisher = noopPublisher{}

func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, models.Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

func badRequest(c echo.Context, message string) error {
	return respond(c, http.StatusBadRequest, message, nil)
}

func notFound(c echo.Context, message string) error {
	return respond(c, http.StatusNotFound, message, nil)
}

// internalError logs the detail server-side and returns a generic message
func internalError(c echo.Context, logger *zap.SugaredLogger, action string, err error) error {
	logger.Errorw(action,
		"error", err,
		"path", c.Path(),
		"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
	)
	return respond(c, http.StatusInternalServerError, "Internal server error", nil)
}

// parseObjectID reads a path parameter as an ObjectID
func parseObjectID(c echo.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
