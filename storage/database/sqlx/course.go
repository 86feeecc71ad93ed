package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-lms/core"
	"github.com/trezcool/masomo-lms/core/course"
)

type (
	moduleRow struct {
		ID       string `db:"id"`
		CourseID string `db:"course_id"`
		Title    string `db:"title"`
		Order    int    `db:"order"`
	}

	lessonRow struct {
		ID       string `db:"id"`
		ModuleID string `db:"module_id"`
		CourseID string `db:"course_id"`
		Title    string `db:"title"`
		Order    int    `db:"order"`
	}
)

type courseRepository struct {
	db *sqlx.DB
}

var (
	_ course.ModuleRepository = (*courseRepository)(nil) // interface compliance check
	_ course.LessonRepository = (*courseRepository)(nil)

	// ties on "order" keep insertion order
	courseOrdering = []core.DBOrdering{{Field: `"order"`, Ascending: true}, {Field: "ctid", Ascending: true}}
)

func NewCourseRepository(db *sqlx.DB) *courseRepository {
	return &courseRepository{db: db}
}

func orderBy(ordering []core.DBOrdering) string {
	clause := ""
	for i, ord := range ordering {
		if i > 0 {
			clause += ", "
		}
		clause += ord.String()
	}
	return " ORDER BY " + clause
}

func (repo courseRepository) QueryModulesByCourse(ctx context.Context, courseID string) ([]course.Module, error) {
	var rows []moduleRow
	q := `SELECT "id", "course_id", "title", "order" FROM "module" WHERE "course_id" = $1` + orderBy(courseOrdering)
	if err := repo.db.SelectContext(ctx, &rows, q, courseID); err != nil {
		return nil, errors.Wrap(err, "selecting modules")
	}

	mods := make([]course.Module, 0, len(rows))
	for _, row := range rows {
		mods = append(mods, course.Module{ID: row.ID, CourseID: row.CourseID, Title: row.Title, Order: row.Order})
	}
	return mods, nil
}

func (repo courseRepository) QueryLessonsByModule(ctx context.Context, moduleID string) ([]course.Lesson, error) {
	var rows []lessonRow
	q := `SELECT "id", "module_id", "course_id", "title", "order" FROM "lesson" WHERE "module_id" = $1` + orderBy(courseOrdering)
	if err := repo.db.SelectContext(ctx, &rows, q, moduleID); err != nil {
		return nil, errors.Wrap(err, "selecting lessons")
	}

	lsns := make([]course.Lesson, 0, len(rows))
	for _, row := range rows {
		lsns = append(lsns, course.Lesson{
			ID:       row.ID,
			ModuleID: row.ModuleID,
			CourseID: row.CourseID,
			Title:    row.Title,
			Order:    row.Order,
		})
	}
	return lsns, nil
}
