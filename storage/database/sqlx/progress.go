package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/masomo-lms/core/progress"
)

type progressRow struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	LessonID      string    `db:"lesson_id"`
	CourseID      string    `db:"course_id"`
	InstitutionID string    `db:"institution_id"`
	StartedAt     time.Time `db:"started_at"`
	CompletedAt   null.Time `db:"completed_at"`
}

func (row progressRow) progress() progress.LessonProgress {
	prg := progress.LessonProgress{
		ID:            row.ID,
		UserID:        row.UserID,
		LessonID:      row.LessonID,
		CourseID:      row.CourseID,
		InstitutionID: row.InstitutionID,
		StartedAt:     row.StartedAt.UTC(),
	}
	if row.CompletedAt.Valid {
		completedAt := row.CompletedAt.Time.UTC()
		prg.CompletedAt = &completedAt
	}
	return prg
}

const progressColumns = `"id", "user_id", "lesson_id", "course_id", "institution_id", "started_at", "completed_at"`

type progressRepository struct {
	db *sqlx.DB
}

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(db *sqlx.DB) *progressRepository {
	return &progressRepository{db: db}
}

func (repo progressRepository) GetLessonProgress(ctx context.Context, userID, lessonID string) (progress.LessonProgress, error) {
	var row progressRow
	q := `SELECT ` + progressColumns + ` FROM "lesson_progress" WHERE "user_id" = $1 AND "lesson_id" = $2`
	if err := repo.db.GetContext(ctx, &row, q, userID, lessonID); err != nil {
		return progress.LessonProgress{}, trapNoRowsErr(err, progress.ErrNotFound, "getting lesson progress")
	}
	return row.progress(), nil
}

func (repo progressRepository) QueryLessonProgress(ctx context.Context, userID, institutionID string) ([]progress.LessonProgress, error) {
	var rows []progressRow
	q := `SELECT ` + progressColumns + ` FROM "lesson_progress" WHERE "user_id" = $1 AND "institution_id" = $2`
	if err := repo.db.SelectContext(ctx, &rows, q, userID, institutionID); err != nil {
		return nil, errors.Wrap(err, "selecting lesson progress")
	}

	prgs := make([]progress.LessonProgress, 0, len(rows))
	for _, row := range rows {
		prgs = append(prgs, row.progress())
	}
	return prgs, nil
}
