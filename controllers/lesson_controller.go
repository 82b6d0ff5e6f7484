package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/HSouheill/lifelessons_backend/metrics"
	"github.com/HSouheill/lifelessons_backend/middleware"
	"github.com/HSouheill/lifelessons_backend/models"
	"github.com/HSouheill/lifelessons_backend/repositories"
	"github.com/HSouheill/lifelessons_backend/services"
	"github.com/HSouheill/lifelessons_backend/utils"
	"github.com/HSouheill/lifelessons_backend/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// topSavedLimit caps the "lessons worth saving" listing
const topSavedLimit = 5

type LessonController struct {
	lessons      repositories.LessonStore
	contributors repositories.ContributorStore
	policy       *services.LessonPolicy
	publisher    Publisher
	logger       *zap.SugaredLogger
	timeout      time.Duration
	now          func() time.Time
}

func NewLessonController(
	lessons repositories.LessonStore,
	contributors repositories.ContributorStore,
	policy *services.LessonPolicy,
	publisher Publisher,
	logger *zap.SugaredLogger,
	timeout time.Duration,
) *LessonController {
	if publisher == nil {
		publisher = NoopPublisher
	}
	return &LessonController{
		lessons:      lessons,
		contributors: contributors,
		policy:       policy,
		publisher:    publisher,
		logger:       logger,
		timeout:      timeout,
		now:          time.Now,
	}
}

func (lc *LessonController) context(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), lc.timeout)
}

// CreateLesson inserts a lesson and counts it for its author (POST /lessons)
func (lc *LessonController) CreateLesson(c echo.Context) error {
	var req models.LessonRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.Title = utils.SanitizeText(req.Title)
	req.Content = utils.SanitizeText(req.Content)
	req.Author = utils.SanitizeName(req.Author)
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "Title and content are required")
	}

	ctx, cancel := lc.context(c)
	defer cancel()

	now := lc.now().UTC()
	lesson := models.NewLesson(req, middleware.GetEmail(c), now)

	id, err := lc.lessons.Create(ctx, &lesson)
	if err != nil {
		return internalError(c, lc.logger, "failed to create lesson", err)
	}
	lesson.ID = id

	// The lesson is persisted at this point; a failed count is logged, not surfaced
	if err := lc.contributors.RecordLesson(ctx, lesson.Author, lesson.AuthorAvatar, now); err != nil {
		lc.logger.Errorw("failed to record contributor lesson", "author", lesson.Author, "lessonId", id.Hex(), "error", err)
	}

	return respond(c, http.StatusCreated, "Lesson created successfully", models.CreateLessonResponse{
		InsertedID: id,
		Lesson:     lesson,
	})
}

// GetLessons lists lessons newest first (GET /lessons?limit=)
func (lc *LessonController) GetLessons(c echo.Context) error {
	limit := parseLimit(c.QueryParam("limit"))

	ctx, cancel := lc.context(c)
	defer cancel()

	lessons, err := lc.lessons.List(ctx, limit)
	if err != nil {
		return internalError(c, lc.logger, "failed to list lessons", err)
	}

	return respond(c, http.StatusOK, "Lessons retrieved successfully", lessons)
}

// parseLimit accepts only positive integers; anything else means "no limit"
func parseLimit(raw string) int64 {
	if raw == "" {
		return 0
	}
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit <= 0 {
		return 0
	}
	return limit
}

// GetLesson fetches one lesson with its author's lesson count (GET /lessons/:id)
func (lc *LessonController) GetLesson(c echo.Context) error {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return badRequest(c, "Invalid lesson ID")
	}

	ctx, cancel := lc.context(c)
	defer cancel()

	lesson, err := lc.lessons.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return notFound(c, "Lesson not found")
	}
	if err != nil {
		return internalError(c, lc.logger, "failed to fetch lesson", err)
	}

	count, err := lc.lessons.CountByAuthor(ctx, lesson.Author)
	if err != nil {
		lc.logger.Warnw("failed to read author lesson count", "author", lesson.Author, "error", err)
	} else {
		lesson.AuthorLessonCount = &count
	}

	return respond(c, http.StatusOK, "Lesson retrieved successfully", lesson)
}

// GetTopSavedLessons returns the most saved lessons (GET /lessons-worth)
func (lc *LessonController) GetTopSavedLessons(c echo.Context) error {
	ctx, cancel := lc.context(c)
	defer cancel()

	lessons, err := lc.lessons.TopSaved(ctx, topSavedLimit)
	if err != nil {
		return internalError(c, lc.logger, "failed to list top saved lessons", err)
	}

	return respond(c, http.StatusOK, "Top saved lessons retrieved successfully", lessons)
}

// IncrementCounter returns a handler bumping one lesson counter by exactly one
// (POST /lessons/:id/view|like|save|share)
func (lc *LessonController) IncrementCounter(counter models.Counter) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := parseObjectID(c, "id")
		if !ok {
			return badRequest(c, "Invalid lesson ID")
		}

		ctx, cancel := lc.context(c)
		defer cancel()

		err := lc.lessons.Increment(ctx, id, counter)
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, "Lesson not found")
		}
		if err != nil {
			return internalError(c, lc.logger, "failed to increment lesson "+string(counter), err)
		}

		metrics.RecordCounterIncrement(string(counter))
		lc.publisher.Publish(id.Hex(), websocket.Event{Type: websocket.CounterEvent(string(counter))})

		return respond(c, http.StatusOK, "Lesson "+string(counter)+" updated", echo.Map{"acknowledged": true})
	}
}

// authorize loads the lesson and checks the caller may modify it
func (lc *LessonController) authorize(ctx context.Context, c echo.Context) (*models.Lesson, error) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return nil, badRequest(c, "Invalid lesson ID")
	}

	lesson, err := lc.lessons.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, notFound(c, "Lesson not found")
	}
	if err != nil {
		return nil, internalError(c, lc.logger, "failed to fetch lesson", err)
	}

	if !lc.policy.CanModify(middleware.GetEmail(c), lesson) {
		return nil, respond(c, http.StatusForbidden, "Only the author or an admin can modify this lesson", nil)
	}
	return lesson, nil
}

// UpdateLesson sets the provided editable fields (PUT /lessons/:id)
func (lc *LessonController) UpdateLesson(c echo.Context) error {
	var req models.LessonUpdateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	fields := req.Fields()
	if len(fields) == 0 {
		return badRequest(c, "No updatable fields provided")
	}
	for _, key := range []string{"title", "content"} {
		if v, ok := fields[key].(string); ok {
			v = utils.SanitizeText(v)
			if v == "" {
				return badRequest(c, "Lesson "+key+" cannot be empty")
			}
			fields[key] = v
		}
	}

	ctx, cancel := lc.context(c)
	defer cancel()

	lesson, denied := lc.authorize(ctx, c)
	if lesson == nil {
		return denied
	}

	err := lc.lessons.Update(ctx, lesson.ID, fields, lc.now().UTC())
	if errors.Is(err, repositories.ErrNotFound) {
		return notFound(c, "Lesson not found")
	}
	if err != nil {
		return internalError(c, lc.logger, "failed to update lesson", err)
	}

	lc.publisher.Publish(lesson.ID.Hex(), websocket.Event{Type: websocket.EventLessonUpdated, Data: fields})

	return respond(c, http.StatusOK, "Lesson updated successfully", echo.Map{"acknowledged": true})
}

// DeleteLesson removes a lesson (DELETE /lessons/:id)
func (lc *LessonController) DeleteLesson(c echo.Context) error {
	ctx, cancel := lc.context(c)
	defer cancel()

	lesson, denied := lc.authorize(ctx, c)
	if lesson == nil {
		return denied
	}

	err := lc.lessons.Delete(ctx, lesson.ID)
	if errors.Is(err, repositories.ErrNotFound) {
		return notFound(c, "Lesson not found")
	}
	if err != nil {
		return internalError(c, lc.logger, "failed to delete lesson", err)
	}

	lc.publisher.Publish(lesson.ID.Hex(), websocket.Event{Type: websocket.EventLessonDeleted})

	return respond(c, http.StatusOK, "Lesson deleted successfully", echo.Map{"acknowledged": true})
}
