package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/HSouheill/lifelessons_backend/config"
	"github.com/HSouheill/lifelessons_backend/metrics"
	"github.com/HSouheill/lifelessons_backend/middleware"
	"github.com/HSouheill/lifelessons_backend/models"
	"github.com/HSouheill/lifelessons_backend/services"
	"github.com/HSouheill/lifelessons_backend/utils"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type CheckoutController struct {
	provider services.CheckoutProvider
	cfg      *config.Config
	logger   *zap.SugaredLogger
	timeout  time.Duration
}

func NewCheckoutController(provider services.CheckoutProvider, cfg *config.Config, logger *zap.SugaredLogger) *CheckoutController {
	return &CheckoutController{
		provider: provider,
		cfg:      cfg,
		logger:   logger,
		timeout:  cfg.RequestTimeout,
	}
}

// CreateCheckoutSession starts a hosted payment for one lesson and returns
// the provider's redirect URL (POST /create-checkout-session)
func (cc *CheckoutController) CreateCheckoutSession(c echo.Context) error {
	var req models.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.LessonTitle = utils.SanitizeText(req.LessonTitle)
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "lessonId and lessonTitle are required")
	}
	if _, err := primitive.ObjectIDFromHex(req.LessonID); err != nil {
		return badRequest(c, "Invalid lesson ID")
	}

	session, err := services.NewCheckoutSession(cc.cfg, req.LessonID, req.LessonTitle, middleware.GetEmail(c))
	if err != nil {
		return internalError(c, cc.logger, "failed to price checkout session", err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), cc.timeout)
	defer cancel()

	url, err := cc.provider.CreateSession(ctx, session)
	metrics.RecordCheckout(err == nil)
	if err != nil {
		cc.logger.Errorw("failed to create checkout session", "lessonId", req.LessonID, "error", err)
		return respond(c, http.StatusBadGateway, "Payment provider unavailable", nil)
	}

	return c.JSON(http.StatusOK, models.CheckoutResponse{URL: url})
}
