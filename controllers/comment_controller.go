package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/HSouheill/lifelessons_backend/middleware"
	"github.com/HSouheill/lifelessons_backend/models"
	"github.com/HSouheill/lifelessons_backend/repositories"
	"github.com/HSouheill/lifelessons_backend/utils"
	"github.com/HSouheill/lifelessons_backend/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type CommentController struct {
	lessons   repositories.LessonStore
	publisher Publisher
	logger    *zap.SugaredLogger
	timeout   time.Duration
	now       func() time.Time
}

func NewCommentController(lessons repositories.LessonStore, publisher Publisher, logger *zap.SugaredLogger, timeout time.Duration) *CommentController {
	if publisher == nil {
		publisher = NoopPublisher
	}
	return &CommentController{
		lessons:   lessons,
		publisher: publisher,
		logger:    logger,
		timeout:   timeout,
		now:       time.Now,
	}
}

// bindText reads and sanitizes a comment or reply body; empty text is rejected
func (cc *CommentController) bindText(c echo.Context) (string, bool) {
	var req models.TextRequest
	if err := c.Bind(&req); err != nil {
		return "", false
	}
	req.Text = utils.SanitizeText(req.Text)
	if err := c.Validate(&req); err != nil {
		return "", false
	}
	return req.Text, true
}

// AddComment appends a comment to a lesson (POST /lessons/:id/comments)
func (cc *CommentController) AddComment(c echo.Context) error {
	lessonID, ok := parseObjectID(c, "id")
	if !ok {
		return badRequest(c, "Invalid lesson ID")
	}
	text, ok := cc.bindText(c)
	if !ok {
		return badRequest(c, "Comment text is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), cc.timeout)
	defer cancel()

	comment := models.NewComment(middleware.GetEmail(c), text, cc.now().UTC())
	err := cc.lessons.AddComment(ctx, lessonID, comment)
	if errors.Is(err, repositories.ErrNotFound) {
		return notFound(c, "Lesson not found")
	}
	if err != nil {
		return internalError(c, cc.logger, "failed to add comment", err)
	}

	cc.publisher.Publish(lessonID.Hex(), websocket.Event{Type: websocket.EventCommentAdded, Data: comment})

	return respond(c, http.StatusCreated, "Comment added successfully", comment)
}

// AddReply appends a reply to one comment (POST /lessons/:id/comments/:commentId/replies)
func (cc *CommentController) AddReply(c echo.Context) error {
	lessonID, ok := parseObjectID(c, "id")
	if !ok {
		return badRequest(c, "Invalid lesson ID")
	}
	commentID, ok := parseObjectID(c, "commentId")
	if !ok {
		return badRequest(c, "Invalid comment ID")
	}
	text, ok := cc.bindText(c)
	if !ok {
		return badRequest(c, "Reply text is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), cc.timeout)
	defer cancel()

	reply := models.NewReply(middleware.GetEmail(c), text, cc.now().UTC())
	err := cc.lessons.AddReply(ctx, lessonID, commentID, reply)
	if errors.Is(err, repositories.ErrNotFound) {
		return notFound(c, "Lesson or comment not found")
	}
	if err != nil {
		return internalError(c, cc.logger, "failed to add reply", err)
	}

	cc.publisher.Publish(lessonID.Hex(), websocket.Event{
		Type: websocket.EventReplyAdded,
		Data: echo.Map{"commentId": commentID, "reply": reply},
	})

	return respond(c, http.StatusCreated, "Reply added successfully", reply)
}

// LikeComment bumps one comment's likes (POST /lessons/:id/comments/:commentId/like)
func (cc *CommentController) LikeComment(c echo.Context) error {
	lessonID, ok := parseObjectID(c, "id")
	if !ok {
		return badRequest(c, "Invalid lesson ID")
	}
	commentID, ok := parseObjectID(c, "commentId")
	if !ok {
		return badRequest(c, "Invalid comment ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), cc.timeout)
	defer cancel()

	err := cc.lessons.LikeComment(ctx, lessonID, commentID)
	if errors.Is(err, repositories.ErrNotFound) {
		return notFound(c, "Lesson or comment not found")
	}
	if err != nil {
		return internalError(c, cc.logger, "failed to like comment", err)
	}

	cc.publisher.Publish(lessonID.Hex(), websocket.Event{
		Type: websocket.EventCommentLiked,
		Data: echo.Map{"commentId": commentID},
	})

	return respond(c, http.StatusOK, "Comment liked", echo.Map{"acknowledged": true})
}
