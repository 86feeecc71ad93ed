package badge

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-lms/core/certificate"
	"github.com/trezcool/masomo-lms/core/enrollment"
	"github.com/trezcool/masomo-lms/core/progress"
	"github.com/trezcool/masomo-lms/core/submission"
)

// CounterFunc counts a user's achievements of one criteria type within an institution.
type CounterFunc func(ctx context.Context, userID, institutionID string) (int, error)

// CounterSources are the collaborators queried by the criteria counters.
// Certificates is optional.
type CounterSources struct {
	Enrollments  enrollment.Repository
	Submissions  submission.Repository
	Progress     *progress.Service
	Certificates certificate.Repository
}

type Counters struct {
	table map[CriteriaType]CounterFunc
}

func NewCounters(src CounterSources) *Counters {
	return &Counters{table: map[CriteriaType]CounterFunc{
		CriteriaCourseCompletion:        completedCoursesCounter(src.Enrollments),
		CriteriaQuestionnaireCompletion: passedQuestionnairesCounter(src.Submissions),
		CriteriaLessonCompletion:        completedLessonsCounter(src.Progress),
		CriteriaCertificateAchieved:     certificatesCounter(src.Certificates),
		// no login history is recorded yet
		CriteriaDailyLogin: zeroCounter,
	}}
}

// Count dispatches to the counter of ct; unknown criteria types count 0.
func (c *Counters) Count(ctx context.Context, ct CriteriaType, userID, institutionID string) (int, error) {
	count, ok := c.table[ct]
	if !ok {
		return 0, nil
	}
	return count(ctx, userID, institutionID)
}

func zeroCounter(context.Context, string, string) (int, error) { return 0, nil }

func completedCoursesCounter(repo enrollment.Repository) CounterFunc {
	return func(ctx context.Context, userID, institutionID string) (int, error) {
		enrs, err := repo.QueryEnrollmentsByUser(ctx, userID)
		if err != nil {
			return 0, errors.Wrap(err, "querying user enrollments")
		}
		return enrollment.CountCompleted(enrs, institutionID), nil
	}
}

func passedQuestionnairesCounter(repo submission.Repository) CounterFunc {
	return func(ctx context.Context, userID, institutionID string) (int, error) {
		subs, err := repo.QuerySubmissionsByUser(ctx, userID)
		if err != nil {
			return 0, errors.Wrap(err, "querying user submissions")
		}
		return submission.CountPassed(subs, institutionID), nil
	}
}

func completedLessonsCounter(svc *progress.Service) CounterFunc {
	return func(ctx context.Context, userID, institutionID string) (int, error) {
		return svc.CountCompleted(ctx, userID, institutionID)
	}
}

func certificatesCounter(repo certificate.Repository) CounterFunc {
	if repo == nil {
		return zeroCounter
	}
	return func(ctx context.Context, userID, institutionID string) (int, error) {
		certs, err := repo.QueryCertificates(ctx, userID, institutionID)
		if err != nil {
			return 0, errors.Wrap(err, "querying user certificates")
		}
		return certificate.CountIssued(certs, institutionID), nil
	}
}
