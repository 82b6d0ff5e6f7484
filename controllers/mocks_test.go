package controllers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/HSouheill/lifelessons_backend/middleware"
	"github.com/HSouheill/lifelessons_backend/models"
	"github.com/HSouheill/lifelessons_backend/repositories"
	"github.com/HSouheill/lifelessons_backend/utils"
	"github.com/HSouheill/lifelessons_backend/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// MockLessonStore is a testify mock of repositories.LessonStore
type MockLessonStore struct {
	mock.Mock
}

var _ repositories.LessonStore = (*MockLessonStore)(nil)

func (m *MockLessonStore) Create(ctx context.Context, lesson *models.Lesson) (primitive.ObjectID, error) {
	args := m.Called(ctx, lesson)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockLessonStore) List(ctx context.Context, limit int64) ([]models.Lesson, error) {
	args := m.Called(ctx, limit)
	lessons, _ := args.Get(0).([]models.Lesson)
	return lessons, args.Error(1)
}

func (m *MockLessonStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Lesson, error) {
	args := m.Called(ctx, id)
	lesson, _ := args.Get(0).(*models.Lesson)
	return lesson, args.Error(1)
}

func (m *MockLessonStore) TopSaved(ctx context.Context, n int64) ([]models.Lesson, error) {
	args := m.Called(ctx, n)
	lessons, _ := args.Get(0).([]models.Lesson)
	return lessons, args.Error(1)
}

func (m *MockLessonStore) Increment(ctx context.Context, id primitive.ObjectID, counter models.Counter) error {
	return m.Called(ctx, id, counter).Error(0)
}

func (m *MockLessonStore) Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}, now time.Time) error {
	return m.Called(ctx, id, fields, now).Error(0)
}

func (m *MockLessonStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLessonStore) AddComment(ctx context.Context, lessonID primitive.ObjectID, comment models.Comment) error {
	return m.Called(ctx, lessonID, comment).Error(0)
}

func (m *MockLessonStore) AddReply(ctx context.Context, lessonID, commentID primitive.ObjectID, reply models.Reply) error {
	return m.Called(ctx, lessonID, commentID, reply).Error(0)
}

func (m *MockLessonStore) LikeComment(ctx context.Context, lessonID, commentID primitive.ObjectID) error {
	return m.Called(ctx, lessonID, commentID).Error(0)
}

func (m *MockLessonStore) CountByAuthor(ctx context.Context, author string) (int64, error) {
	args := m.Called(ctx, author)
	return args.Get(0).(int64), args.Error(1)
}

// MockContributorStore is a testify mock of repositories.ContributorStore
type MockContributorStore struct {
	mock.Mock
}

var _ repositories.ContributorStore = (*MockContributorStore)(nil)

func (m *MockContributorStore) RecordLesson(ctx context.Context, name, avatar string, now time.Time) error {
	return m.Called(ctx, name, avatar, now).Error(0)
}

func (m *MockContributorStore) Upsert(ctx context.Context, name, avatar string, now time.Time) (*models.Contributor, error) {
	args := m.Called(ctx, name, avatar, now)
	contributor, _ := args.Get(0).(*models.Contributor)
	return contributor, args.Error(1)
}

func (m *MockContributorStore) List(ctx context.Context) ([]models.Contributor, error) {
	args := m.Called(ctx)
	contributors, _ := args.Get(0).([]models.Contributor)
	return contributors, args.Error(1)
}

// recordingPublisher keeps every published event
type recordingPublisher struct {
	mu     sync.Mutex
	events []websocket.Event
}

func (p *recordingPublisher) Publish(lessonID string, event websocket.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	event.LessonID = lessonID
	p.events = append(p.events, event)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

// envelope mirrors models.Response with a raw payload
type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = utils.NewValidator()
	return e
}

// asUser stands in for the auth guard
func asUser(email string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.ContextKeyEmail, email)
			return next(c)
		}
	}
}

func doRequest(t *testing.T, e *echo.Echo, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func nopLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
