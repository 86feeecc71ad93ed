package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-lms/core"
	"github.com/trezcool/masomo-lms/core/badge"
)

type (
	badgeRow struct {
		ID            string    `db:"id"`
		Name          string    `db:"name"`
		Description   string    `db:"description"`
		IconURL       string    `db:"icon_url"`
		CriteriaType  string    `db:"criteria_type"`
		CriteriaValue int       `db:"criteria_value"`
		CreatedAt     time.Time `db:"created_at"`
	}

	studentBadgeRow struct {
		ID            string    `db:"id"`
		UserID        string    `db:"user_id"`
		BadgeID       string    `db:"badge_id"`
		InstitutionID string    `db:"institution_id"`
		AwardedAt     time.Time `db:"awarded_at"`
	}
)

func (row badgeRow) badge() badge.Badge {
	return badge.Badge{
		ID:            row.ID,
		Name:          row.Name,
		Description:   row.Description,
		IconURL:       row.IconURL,
		CriteriaType:  badge.CriteriaType(row.CriteriaType),
		CriteriaValue: row.CriteriaValue,
		CreatedAt:     row.CreatedAt.UTC(),
	}
}

func (row studentBadgeRow) studentBadge() badge.StudentBadge {
	return badge.StudentBadge{
		ID:            row.ID,
		UserID:        row.UserID,
		BadgeID:       row.BadgeID,
		InstitutionID: row.InstitutionID,
		AwardedAt:     row.AwardedAt.UTC(),
	}
}

const (
	badgeColumns        = `"id", "name", "description", "icon_url", "criteria_type", "criteria_value", "created_at"`
	studentBadgeColumns = `"id", "user_id", "badge_id", "institution_id", "awarded_at"`
)

var badgeOrdering = []core.DBOrdering{{Field: `"created_at"`, Ascending: true}, {Field: `"id"`, Ascending: true}}

type badgeRepository struct {
	db *sqlx.DB
}

var (
	_ badge.Repository             = (*badgeRepository)(nil) // interface compliance check
	_ badge.StudentBadgeRepository = (*badgeRepository)(nil)
)

func NewBadgeRepository(db *sqlx.DB) *badgeRepository {
	return &badgeRepository{db: db}
}

func (repo badgeRepository) CreateBadge(ctx context.Context, bdg badge.Badge) (badge.Badge, error) {
	row := badgeRow{
		ID:            bdg.ID,
		Name:          bdg.Name,
		Description:   bdg.Description,
		IconURL:       bdg.IconURL,
		CriteriaType:  string(bdg.CriteriaType),
		CriteriaValue: bdg.CriteriaValue,
		CreatedAt:     bdg.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	q := `INSERT INTO "badge" (` + badgeColumns + `)
		VALUES (:id, :name, :description, :icon_url, :criteria_type, :criteria_value, :created_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, row); err != nil {
		return badge.Badge{}, errors.Wrap(err, "inserting badge")
	}
	return row.badge(), nil
}

func (repo badgeRepository) GetBadge(ctx context.Context, id string) (badge.Badge, error) {
	var row badgeRow
	q := `SELECT ` + badgeColumns + ` FROM "badge" WHERE "id" = $1`
	if err := repo.db.GetContext(ctx, &row, q, id); err != nil {
		return badge.Badge{}, trapNoRowsErr(err, badge.ErrNotFound, "getting badge")
	}
	return row.badge(), nil
}

func (repo badgeRepository) QueryAllBadges(ctx context.Context) ([]badge.Badge, error) {
	var rows []badgeRow
	q := `SELECT ` + badgeColumns + ` FROM "badge"` + orderBy(badgeOrdering)
	if err := repo.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, errors.Wrap(err, "selecting badges")
	}

	bdgs := make([]badge.Badge, 0, len(rows))
	for _, row := range rows {
		bdgs = append(bdgs, row.badge())
	}
	return bdgs, nil
}

func (repo badgeRepository) CreateStudentBadge(ctx context.Context, sb badge.StudentBadge) (badge.StudentBadge, error) {
	row := studentBadgeRow{
		ID:            sb.ID,
		UserID:        sb.UserID,
		BadgeID:       sb.BadgeID,
		InstitutionID: sb.InstitutionID,
		AwardedAt:     sb.AwardedAt.UTC(),
	}
	q := `INSERT INTO "student_badge" (` + studentBadgeColumns + `)
		VALUES (:id, :user_id, :badge_id, :institution_id, :awarded_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, row); err != nil {
		if isUniqueViolation(err) {
			return badge.StudentBadge{}, badge.ErrExists
		}
		return badge.StudentBadge{}, errors.Wrap(err, "inserting student badge")
	}
	return row.studentBadge(), nil
}

func (repo badgeRepository) queryStudentBadges(ctx context.Context, q string, args ...interface{}) ([]badge.StudentBadge, error) {
	var rows []studentBadgeRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "selecting student badges")
	}

	sbs := make([]badge.StudentBadge, 0, len(rows))
	for _, row := range rows {
		sbs = append(sbs, row.studentBadge())
	}
	return sbs, nil
}

func (repo badgeRepository) QueryStudentBadgesByUser(ctx context.Context, userID, institutionID string) ([]badge.StudentBadge, error) {
	q := `SELECT ` + studentBadgeColumns + ` FROM "student_badge" WHERE "user_id" = $1 AND "institution_id" = $2`
	return repo.queryStudentBadges(ctx, q, userID, institutionID)
}

func (repo badgeRepository) QueryStudentBadgesByBadge(ctx context.Context, badgeID, institutionID string) ([]badge.StudentBadge, error) {
	q := `SELECT ` + studentBadgeColumns + ` FROM "student_badge" WHERE "badge_id" = $1 AND "institution_id" = $2`
	return repo.queryStudentBadges(ctx, q, badgeID, institutionID)
}
