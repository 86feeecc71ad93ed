package course

import (
	"context"
	"sort"

	"github.com/pkg/errors"
)

// SortModules returns a copy of modules sorted by ascending Order.
// Modules sharing an Order keep the order they were returned in.
func SortModules(modules []Module) []Module {
	sorted := make([]Module, len(modules))
	copy(sorted, modules)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })
	return sorted
}

// SortLessons returns a copy of lessons sorted by ascending Order.
func SortLessons(lessons []Lesson) []Lesson {
	sorted := make([]Lesson, len(lessons))
	copy(sorted, lessons)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })
	return sorted
}

type OrderedModule struct {
	Module
	Lessons []Lesson `json:"lessons"`
}

// Position locates a lesson within its course.
// Modules holds every module up to and including the lesson's module, each with its ordered lessons.
type Position struct {
	ModuleIndex int
	LessonIndex int
	Modules     []OrderedModule
}

func (p Position) Lesson() Lesson {
	return p.Modules[p.ModuleIndex].Lessons[p.LessonIndex]
}

// IsEntryPoint reports whether the lesson is the first lesson of the first module.
func (p Position) IsEntryPoint() bool {
	return p.ModuleIndex == 0 && p.LessonIndex == 0
}

// Predecessors returns every lesson preceding the located one in course order.
func (p Position) Predecessors() []Lesson {
	var preds []Lesson
	for i := 0; i < p.ModuleIndex; i++ {
		preds = append(preds, p.Modules[i].Lessons...)
	}
	return append(preds, p.Modules[p.ModuleIndex].Lessons[:p.LessonIndex]...)
}

// Outline provides the module-then-lesson order of a course.
type Outline struct {
	modules ModuleRepository
	lessons LessonRepository
}

func NewOutline(modules ModuleRepository, lessons LessonRepository) *Outline {
	return &Outline{modules: modules, lessons: lessons}
}

func (o *Outline) orderedModules(ctx context.Context, courseID string) ([]Module, error) {
	modules, err := o.modules.QueryModulesByCourse(ctx, courseID)
	if err != nil {
		return nil, errors.Wrap(err, "querying course modules")
	}
	return SortModules(modules), nil
}

func (o *Outline) orderedLessons(ctx context.Context, moduleID string) ([]Lesson, error) {
	lessons, err := o.lessons.QueryLessonsByModule(ctx, moduleID)
	if err != nil {
		return nil, errors.Wrap(err, "querying module lessons")
	}
	return SortLessons(lessons), nil
}

// Locate walks the course modules in order, stopping at the module holding lessonID.
// It returns ErrLessonNotInCourse if no module of the course holds the lesson.
func (o *Outline) Locate(ctx context.Context, courseID, lessonID string) (Position, error) {
	modules, err := o.orderedModules(ctx, courseID)
	if err != nil {
		return Position{}, err
	}

	visited := make([]OrderedModule, 0, len(modules))
	for mi, mod := range modules {
		lessons, err := o.orderedLessons(ctx, mod.ID)
		if err != nil {
			return Position{}, err
		}
		visited = append(visited, OrderedModule{Module: mod, Lessons: lessons})

		for li, lsn := range lessons {
			if lsn.ID == lessonID {
				return Position{ModuleIndex: mi, LessonIndex: li, Modules: visited}, nil
			}
		}
	}
	return Position{}, ErrLessonNotInCourse
}

// Lessons returns all the lessons of a course in total order.
func (o *Outline) Lessons(ctx context.Context, courseID string) ([]Lesson, error) {
	modules, err := o.orderedModules(ctx, courseID)
	if err != nil {
		return nil, err
	}

	var all []Lesson
	for _, mod := range modules {
		lessons, err := o.orderedLessons(ctx, mod.ID)
		if err != nil {
			return nil, err
		}
		all = append(all, lessons...)
	}
	return all, nil
}
