package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/masomo-lms/core/certificate"
	"github.com/trezcool/masomo-lms/core/enrollment"
	"github.com/trezcool/masomo-lms/core/submission"
)

type (
	enrollmentRow struct {
		ID            string    `db:"id"`
		UserID        string    `db:"user_id"`
		CourseID      string    `db:"course_id"`
		InstitutionID string    `db:"institution_id"`
		Status        string    `db:"status"`
		EnrolledAt    time.Time `db:"enrolled_at"`
	}

	submissionRow struct {
		ID              string    `db:"id"`
		UserID          string    `db:"user_id"`
		QuestionnaireID string    `db:"questionnaire_id"`
		InstitutionID   string    `db:"institution_id"`
		Score           float64   `db:"score"`
		Passed          bool      `db:"passed"`
		SubmittedAt     time.Time `db:"submitted_at"`
	}

	certificateRow struct {
		ID            string    `db:"id"`
		UserID        string    `db:"user_id"`
		CourseID      string    `db:"course_id"`
		InstitutionID string    `db:"institution_id"`
		IssuedAt      null.Time `db:"issued_at"`
	}
)

// activityRepository reads the learning activity the badge criteria count.
type activityRepository struct {
	db *sqlx.DB
}

var (
	_ enrollment.Repository  = (*activityRepository)(nil) // interface compliance check
	_ submission.Repository  = (*activityRepository)(nil)
	_ certificate.Repository = (*activityRepository)(nil)
)

func NewActivityRepository(db *sqlx.DB) *activityRepository {
	return &activityRepository{db: db}
}

func (repo activityRepository) queryEnrollments(ctx context.Context, where string, arg string) ([]enrollment.Enrollment, error) {
	var rows []enrollmentRow
	q := `SELECT "id", "user_id", "course_id", "institution_id", "status", "enrolled_at" FROM "enrollment" WHERE ` + where
	if err := repo.db.SelectContext(ctx, &rows, q, arg); err != nil {
		return nil, errors.Wrap(err, "selecting enrollments")
	}

	enrs := make([]enrollment.Enrollment, 0, len(rows))
	for _, row := range rows {
		enrs = append(enrs, enrollment.Enrollment{
			ID:            row.ID,
			UserID:        row.UserID,
			CourseID:      row.CourseID,
			InstitutionID: row.InstitutionID,
			Status:        enrollment.Status(row.Status),
			EnrolledAt:    row.EnrolledAt.UTC(),
		})
	}
	return enrs, nil
}

func (repo activityRepository) QueryEnrollmentsByUser(ctx context.Context, userID string) ([]enrollment.Enrollment, error) {
	return repo.queryEnrollments(ctx, `"user_id" = $1`, userID)
}

func (repo activityRepository) QueryEnrollmentsByInstitution(ctx context.Context, institutionID string) ([]enrollment.Enrollment, error) {
	return repo.queryEnrollments(ctx, `"institution_id" = $1`, institutionID)
}

func (repo activityRepository) QuerySubmissionsByUser(ctx context.Context, userID string) ([]submission.Submission, error) {
	var rows []submissionRow
	q := `SELECT "id", "user_id", "questionnaire_id", "institution_id", "score", "passed", "submitted_at"
		FROM "questionnaire_submission" WHERE "user_id" = $1`
	if err := repo.db.SelectContext(ctx, &rows, q, userID); err != nil {
		return nil, errors.Wrap(err, "selecting submissions")
	}

	subs := make([]submission.Submission, 0, len(rows))
	for _, row := range rows {
		subs = append(subs, submission.Submission{
			ID:              row.ID,
			UserID:          row.UserID,
			QuestionnaireID: row.QuestionnaireID,
			InstitutionID:   row.InstitutionID,
			Score:           row.Score,
			Passed:          row.Passed,
			SubmittedAt:     row.SubmittedAt.UTC(),
		})
	}
	return subs, nil
}

func (repo activityRepository) QueryCertificates(ctx context.Context, userID, institutionID string) ([]certificate.Certificate, error) {
	var rows []certificateRow
	q := `SELECT "id", "user_id", "course_id", "institution_id", "issued_at"
		FROM "certificate" WHERE "user_id" = $1 AND "institution_id" = $2`
	if err := repo.db.SelectContext(ctx, &rows, q, userID, institutionID); err != nil {
		return nil, errors.Wrap(err, "selecting certificates")
	}

	certs := make([]certificate.Certificate, 0, len(rows))
	for _, row := range rows {
		cert := certificate.Certificate{
			ID:            row.ID,
			UserID:        row.UserID,
			CourseID:      row.CourseID,
			InstitutionID: row.InstitutionID,
		}
		if row.IssuedAt.Valid {
			issuedAt := row.IssuedAt.Time.UTC()
			cert.IssuedAt = &issuedAt
		}
		certs = append(certs, cert)
	}
	return certs, nil
}
