package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/HSouheill/lifelessons_backend/models"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Pinger is satisfied by *mongo.Client
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

type HealthController struct {
	db     Pinger
	logger *zap.SugaredLogger
}

func NewHealthController(db Pinger, logger *zap.SugaredLogger) *HealthController {
	return &HealthController{db: db, logger: logger}
}

// Root answers GET / with a plain liveness string
func (hc *HealthController) Root(c echo.Context) error {
	return c.String(http.StatusOK, "Life lessons server is running")
}

// Health reports database reachability (GET /health)
func (hc *HealthController) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := hc.db.Ping(ctx, readpref.Primary()); err != nil {
		hc.logger.Warnw("health check ping failed", "error", err)
		return c.JSON(http.StatusServiceUnavailable, models.HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
		})
	}

	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:   "healthy",
		Database: "connected",
	})
}
