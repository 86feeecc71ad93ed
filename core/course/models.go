package course

import (
	"context"

	"github.com/trezcool/masomo-lms/core"
)

var ErrLessonNotInCourse = core.NewNotFoundError("lesson not found in course")

type Module struct {
	ID       string `json:"id"`
	CourseID string `json:"course_id"`
	Title    string `json:"title"`
	Order    int    `json:"order"`
}

type Lesson struct {
	ID       string `json:"id"`
	ModuleID string `json:"module_id"`
	CourseID string `json:"course_id"`
	Title    string `json:"title"`
	Order    int    `json:"order"`
}

type (
	ModuleRepository interface {
		QueryModulesByCourse(ctx context.Context, courseID string) ([]Module, error)
	}

	LessonRepository interface {
		QueryLessonsByModule(ctx context.Context, moduleID string) ([]Lesson, error)
	}
)
