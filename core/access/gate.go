package access

import (
	"context"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-lms/core"
	"github.com/trezcool/masomo-lms/core/course"
	"github.com/trezcool/masomo-lms/core/institution"
	"github.com/trezcool/masomo-lms/core/progress"
)

const (
	ReasonPreviousLessonsIncomplete = "You must complete the previous lessons before accessing this one."
	ReasonVerificationFailed        = "Unable to verify access to this lesson. Please try again later."
)

// Decision is the outcome of a lesson access check.
type Decision struct {
	CanAccess   bool   `json:"can_access"`
	Reason      string `json:"reason,omitempty"`
	HasStarted  bool   `json:"has_started"`
	IsCompleted bool   `json:"is_completed"`
	IsSkippable bool   `json:"is_skippable"`
}

// LessonAccess is the access decision of one lesson of a course outline.
type LessonAccess struct {
	Lesson course.Lesson `json:"lesson"`
	Decision
}

type sequentialOutcome int

const (
	outcomeAllowed sequentialOutcome = iota
	outcomeSkippable
	outcomeBlocked
	outcomeFailed
)

func (o sequentialOutcome) decision() Decision {
	switch o {
	case outcomeAllowed:
		return Decision{CanAccess: true}
	case outcomeSkippable:
		return Decision{CanAccess: true, IsSkippable: true}
	case outcomeBlocked:
		return Decision{CanAccess: false, Reason: ReasonPreviousLessonsIncomplete}
	default:
		return Decision{CanAccess: false, Reason: ReasonVerificationFailed}
	}
}

// Gate decides whether a user may open a lesson under their institution's navigation policy.
type Gate struct {
	institutions institution.Repository
	progress     *progress.Service
	outline      *course.Outline
	log          core.Logger
}

func NewGate(
	institutions institution.Repository,
	progressSvc *progress.Service,
	outline *course.Outline,
	logger core.Logger,
) *Gate {
	return &Gate{
		institutions: institutions,
		progress:     progressSvc,
		outline:      outline,
		log:          logger,
	}
}

// CanAccessLesson never blocks a lesson the user already opened, nor the first lesson of the course.
// With sequential progress required, any other lesson needs every earlier lesson completed,
// unless the institution lets students skip lessons.
func (g *Gate) CanAccessLesson(ctx context.Context, userID, lessonID, courseID, institutionID string) (Decision, error) {
	err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(core.CleanString(userID), "userID"),
		vala.StringNotEmpty(core.CleanString(lessonID), "lessonID"),
		vala.StringNotEmpty(core.CleanString(courseID), "courseID"),
		vala.StringNotEmpty(core.CleanString(institutionID), "institutionID"),
	).Check()
	if err != nil {
		return Decision{}, core.NewArgumentError(err.Error())
	}

	inst, err := g.institutions.GetInstitution(ctx, institutionID)
	if err != nil {
		return Decision{}, errors.Wrap(err, "getting institution")
	}
	return g.decide(ctx, inst.Settings, userID, lessonID, courseID)
}

func (g *Gate) decide(ctx context.Context, settings institution.Settings, userID, lessonID, courseID string) (Decision, error) {
	prg, err := g.progress.FindByUserAndLesson(ctx, userID, lessonID)
	if err != nil {
		return Decision{}, err
	}
	if prg != nil {
		return Decision{CanAccess: true, HasStarted: true, IsCompleted: prg.IsCompleted()}, nil
	}
	if !settings.RequireSequentialProgress {
		return Decision{CanAccess: true}, nil
	}

	outcome, err := g.sequential(ctx, settings, userID, lessonID, courseID)
	if err != nil {
		g.log.Error("verifying sequential lesson access", err, map[string]interface{}{
			"user_id":   userID,
			"lesson_id": lessonID,
			"course_id": courseID,
		})
	}
	return outcome.decision(), nil
}

// sequential returns outcomeFailed along with the error when the verification could not complete.
func (g *Gate) sequential(
	ctx context.Context,
	settings institution.Settings,
	userID, lessonID, courseID string,
) (sequentialOutcome, error) {
	pos, err := g.outline.Locate(ctx, courseID, lessonID)
	if err != nil {
		return outcomeFailed, err
	}
	if pos.IsEntryPoint() {
		return outcomeAllowed, nil
	}

	for _, lsn := range pos.Predecessors() {
		completed, err := g.progress.IsLessonCompleted(ctx, userID, lsn.ID)
		if err != nil {
			return outcomeFailed, err
		}
		if !completed {
			if settings.AllowSkipLesson {
				return outcomeSkippable, nil
			}
			return outcomeBlocked, nil
		}
	}
	return outcomeAllowed, nil
}

// CourseAccessMap evaluates every lesson of the course in order.
func (g *Gate) CourseAccessMap(ctx context.Context, userID, courseID, institutionID string) ([]LessonAccess, error) {
	err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(core.CleanString(userID), "userID"),
		vala.StringNotEmpty(core.CleanString(courseID), "courseID"),
		vala.StringNotEmpty(core.CleanString(institutionID), "institutionID"),
	).Check()
	if err != nil {
		return nil, core.NewArgumentError(err.Error())
	}

	inst, err := g.institutions.GetInstitution(ctx, institutionID)
	if err != nil {
		return nil, errors.Wrap(err, "getting institution")
	}
	lessons, err := g.outline.Lessons(ctx, courseID)
	if err != nil {
		return nil, err
	}

	accesses := make([]LessonAccess, 0, len(lessons))
	for _, lsn := range lessons {
		dec, err := g.decide(ctx, inst.Settings, userID, lsn.ID, courseID)
		if err != nil {
			return nil, err
		}
		accesses = append(accesses, LessonAccess{Lesson: lsn, Decision: dec})
	}
	return accesses, nil
}
