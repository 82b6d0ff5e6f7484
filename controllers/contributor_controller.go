package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/HSouheill/lifelessons_backend/middleware"
	"github.com/HSouheill/lifelessons_backend/models"
	"github.com/HSouheill/lifelessons_backend/repositories"
	"github.com/HSouheill/lifelessons_backend/services"
	"github.com/HSouheill/lifelessons_backend/utils"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ContributorController struct {
	contributors repositories.ContributorStore
	policy       *services.LessonPolicy
	logger       *zap.SugaredLogger
	timeout      time.Duration
	now          func() time.Time
}

func NewContributorController(contributors repositories.ContributorStore, policy *services.LessonPolicy, logger *zap.SugaredLogger, timeout time.Duration) *ContributorController {
	return &ContributorController{
		contributors: contributors,
		policy:       policy,
		logger:       logger,
		timeout:      timeout,
		now:          time.Now,
	}
}

// GetContributors lists contributors by lesson count (GET /contributors)
func (cc *ContributorController) GetContributors(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), cc.timeout)
	defer cancel()

	contributors, err := cc.contributors.List(ctx)
	if err != nil {
		return internalError(c, cc.logger, "failed to list contributors", err)
	}

	return respond(c, http.StatusOK, "Contributors retrieved successfully", contributors)
}

// CreateContributor creates or refreshes a contributor profile; admins only.
// The lesson count is left untouched. (POST /contributors)
func (cc *ContributorController) CreateContributor(c echo.Context) error {
	if !cc.policy.IsAdmin(middleware.GetEmail(c)) {
		return respond(c, http.StatusForbidden, "Only admins can manage contributors", nil)
	}

	var req models.ContributorRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.Name = utils.SanitizeName(req.Name)
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "Invalid contributor name")
	}
	if req.Name == "" {
		req.Name = models.DefaultAuthor
	}
	if req.Avatar == "" {
		req.Avatar = models.DefaultAuthorAvatar
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), cc.timeout)
	defer cancel()

	contributor, err := cc.contributors.Upsert(ctx, req.Name, req.Avatar, cc.now().UTC())
	if err != nil {
		return internalError(c, cc.logger, "failed to save contributor", err)
	}

	return respond(c, http.StatusCreated, "Contributor saved successfully", contributor)
}
