package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/masomo-lms/core/institution"
)

type institutionRow struct {
	ID                        string    `db:"id"`
	Name                      string    `db:"name"`
	RequireSequentialProgress bool      `db:"require_sequential_progress"`
	AllowSkipLesson           bool      `db:"allow_skip_lesson"`
	CreatedAt                 time.Time `db:"created_at"`
}

func (row institutionRow) institution() institution.Institution {
	return institution.Institution{
		ID:   row.ID,
		Name: row.Name,
		Settings: institution.Settings{
			RequireSequentialProgress: row.RequireSequentialProgress,
			AllowSkipLesson:           row.AllowSkipLesson,
		},
		CreatedAt: row.CreatedAt.UTC(),
	}
}

type institutionRepository struct {
	db *sqlx.DB
}

var _ institution.Repository = (*institutionRepository)(nil) // interface compliance check

func NewInstitutionRepository(db *sqlx.DB) *institutionRepository {
	return &institutionRepository{db: db}
}

func (repo institutionRepository) GetInstitution(ctx context.Context, id string) (institution.Institution, error) {
	var row institutionRow
	q := `SELECT "id", "name", "require_sequential_progress", "allow_skip_lesson", "created_at"
		FROM "institution" WHERE "id" = $1`
	if err := repo.db.GetContext(ctx, &row, q, id); err != nil {
		return institution.Institution{}, trapNoRowsErr(err, institution.ErrNotFound, "getting institution")
	}
	return row.institution(), nil
}
