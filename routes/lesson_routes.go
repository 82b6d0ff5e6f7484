package routes

import (
	"net/http"

	"github.com/HSouheill/lifelessons_backend/models"
)

// LessonRoutes covers lesson CRUD and counters
func LessonRoutes(h Handlers) []Route {
	lc := h.Lessons
	return []Route{
		{Method: http.MethodPost, Path: "/lessons", Handler: lc.CreateLesson, RequiresAuth: true},
		{Method: http.MethodGet, Path: "/lessons", Handler: lc.GetLessons},
		{Method: http.MethodGet, Path: "/lessons/:id", Handler: lc.GetLesson},
		{Method: http.MethodPut, Path: "/lessons/:id", Handler: lc.UpdateLesson, RequiresAuth: true},
		{Method: http.MethodDelete, Path: "/lessons/:id", Handler: lc.DeleteLesson, RequiresAuth: true},
		{Method: http.MethodGet, Path: "/lessons-worth", Handler: lc.GetTopSavedLessons},

		// Counters record no caller identity
		{Method: http.MethodPost, Path: "/lessons/:id/view", Handler: lc.IncrementCounter(models.CounterViews)},
		{Method: http.MethodPost, Path: "/lessons/:id/like", Handler: lc.IncrementCounter(models.CounterLikes)},
		{Method: http.MethodPost, Path: "/lessons/:id/save", Handler: lc.IncrementCounter(models.CounterSaves)},
		{Method: http.MethodPost, Path: "/lessons/:id/share", Handler: lc.IncrementCounter(models.CounterShares)},
	}
}

// CommentRoutes covers comments, replies and comment likes
func CommentRoutes(h Handlers) []Route {
	cc := h.Comments
	return []Route{
		{Method: http.MethodPost, Path: "/lessons/:id/comments", Handler: cc.AddComment, RequiresAuth: true},
		{Method: http.MethodPost, Path: "/lessons/:id/comments/:commentId/replies", Handler: cc.AddReply, RequiresAuth: true},
		{Method: http.MethodPost, Path: "/lessons/:id/comments/:commentId/like", Handler: cc.LikeComment},
	}
}
