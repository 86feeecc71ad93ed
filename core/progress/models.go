package progress

import (
	"context"
	"time"

	"github.com/trezcool/masomo-lms/core"
)

var ErrNotFound = core.NewNotFoundError("lesson progress not found")

// LessonProgress records that a user opened a lesson, and when they completed it.
type LessonProgress struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	LessonID      string     `json:"lesson_id"`
	CourseID      string     `json:"course_id"`
	InstitutionID string     `json:"institution_id"`
	StartedAt     time.Time  `json:"started_at"`   // UTC
	CompletedAt   *time.Time `json:"completed_at"` // UTC
}

func (p LessonProgress) IsCompleted() bool {
	return p.CompletedAt != nil && !p.CompletedAt.IsZero()
}

type Repository interface {
	// GetLessonProgress returns ErrNotFound when the user never opened the lesson.
	GetLessonProgress(ctx context.Context, userID, lessonID string) (LessonProgress, error)
	QueryLessonProgress(ctx context.Context, userID, institutionID string) ([]LessonProgress, error)
}
