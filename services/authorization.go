package services

import (
	"strings"

	"github.com/HSouheill/lifelessons_backend/models"
)

// LessonPolicy decides which callers may modify lessons and contributors
type LessonPolicy struct {
	isAdmin func(email string) bool
}

func NewLessonPolicy(isAdmin func(email string) bool) *LessonPolicy {
	if isAdmin == nil {
		isAdmin = func(string) bool { return false }
	}
	return &LessonPolicy{isAdmin: isAdmin}
}

// IsAdmin reports whether email belongs to an administrator
func (p *LessonPolicy) IsAdmin(email string) bool {
	return email != "" && p.isAdmin(email)
}

// CanModify reports whether the caller is the lesson's author or an admin.
// Lessons without a recorded author email are admin-only.
func (p *LessonPolicy) CanModify(email string, lesson *models.Lesson) bool {
	if email == "" || lesson == nil {
		return false
	}
	if p.IsAdmin(email) {
		return true
	}
	return lesson.AuthorEmail != "" && strings.EqualFold(lesson.AuthorEmail, email)
}
