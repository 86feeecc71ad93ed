package badge

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/masomo-lms/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("badge not found")
	ErrExists   = errors.New("badge already awarded")

	// maxNameSimilarity is the difflib ratio from which a new badge name is considered a duplicate.
	maxNameSimilarity = .9
)

type CriteriaType string

const (
	CriteriaCourseCompletion        CriteriaType = "COURSE_COMPLETION"
	CriteriaQuestionnaireCompletion CriteriaType = "QUESTIONNAIRE_COMPLETION"
	CriteriaDailyLogin              CriteriaType = "DAILY_LOGIN"
	CriteriaLessonCompletion        CriteriaType = "LESSON_COMPLETION"
	CriteriaCertificateAchieved     CriteriaType = "CERTIFICATE_ACHIEVED"
)

var CriteriaTypes = []CriteriaType{
	CriteriaCourseCompletion,
	CriteriaQuestionnaireCompletion,
	CriteriaDailyLogin,
	CriteriaLessonCompletion,
	CriteriaCertificateAchieved,
}

func (ct CriteriaType) IsValid() bool {
	for _, known := range CriteriaTypes {
		if ct == known {
			return true
		}
	}
	return false
}

// Badge is an immutable award definition: reach CriteriaValue of CriteriaType to earn it.
type Badge struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	IconURL       string       `json:"icon_url"`
	CriteriaType  CriteriaType `json:"criteria_type"`
	CriteriaValue int          `json:"criteria_value"`
	CreatedAt     time.Time    `json:"created_at"` // UTC
}

// New returns a validated Badge, or a *core.ValidationError listing every invalid field.
func New(id, name, description, iconURL string, criteriaType CriteriaType, criteriaValue int) (Badge, error) {
	var flds []core.FieldError
	notEmpty := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			flds = append(flds, core.FieldError{Field: field, Error: "this field cannot be blank"})
		}
	}
	notEmpty("id", id)
	notEmpty("name", name)
	notEmpty("description", description)
	notEmpty("icon_url", iconURL)
	if !criteriaType.IsValid() {
		flds = append(flds, core.FieldError{Field: "criteria_type", Error: "invalid criteria type"})
	}
	if criteriaValue <= 0 {
		flds = append(flds, core.FieldError{Field: "criteria_value", Error: "criteria value must be greater than 0"})
	}
	if len(flds) > 0 {
		return Badge{}, core.NewValidationError(nil, flds...)
	}

	return Badge{
		ID:            id,
		Name:          name,
		Description:   description,
		IconURL:       iconURL,
		CriteriaType:  criteriaType,
		CriteriaValue: criteriaValue,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// StudentBadge is the fact that a user earned a badge within an institution.
type StudentBadge struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	BadgeID       string    `json:"badge_id"`
	InstitutionID string    `json:"institution_id"`
	AwardedAt     time.Time `json:"awarded_at"` // UTC
}

// NewStudentBadge returns a validated StudentBadge; a zero awardedAt means now.
func NewStudentBadge(id, userID, badgeID, institutionID string, awardedAt time.Time) (StudentBadge, error) {
	var flds []core.FieldError
	for _, fld := range []struct{ name, value string }{
		{"id", id}, {"user_id", userID}, {"badge_id", badgeID}, {"institution_id", institutionID},
	} {
		if strings.TrimSpace(fld.value) == "" {
			flds = append(flds, core.FieldError{Field: fld.name, Error: "this field cannot be blank"})
		}
	}
	if len(flds) > 0 {
		return StudentBadge{}, core.NewValidationError(nil, flds...)
	}

	if awardedAt.IsZero() {
		awardedAt = time.Now()
	}
	return StudentBadge{
		ID:            id,
		UserID:        userID,
		BadgeID:       badgeID,
		InstitutionID: institutionID,
		AwardedAt:     awardedAt.UTC(),
	}, nil
}

// NewBadge contains information needed to create a new Badge.
type NewBadge struct {
	Name          string       `json:"name" validate:"required,notblank"`
	Description   string       `json:"description" validate:"required,notblank"`
	IconURL       string       `json:"icon_url" validate:"required,url"`
	CriteriaType  CriteriaType `json:"criteria_type" validate:"required,criteriatype"`
	CriteriaValue int          `json:"criteria_value" validate:"required,gt=0"`
}

// Validate cleans nb and checks it against the validator rules,
// then rejects names too similar to one of the existing badges.
func (nb *NewBadge) Validate(validate *validator.Validate, existing []Badge) error {
	nb.Name = core.CleanString(nb.Name)
	nb.Description = core.CleanString(nb.Description)
	nb.IconURL = core.CleanString(nb.IconURL)
	nb.CriteriaType = CriteriaType(strings.ToUpper(core.CleanString(string(nb.CriteriaType))))

	if err := validate.Struct(nb); err != nil {
		return err
	}

	name := strings.ToLower(nb.Name)
	for _, bdg := range existing {
		if nameSimilarity(name, strings.ToLower(bdg.Name)) >= maxNameSimilarity {
			return core.NewValidationError(nil, core.FieldError{
				Field: "name",
				Error: "a badge with a similar name already exists: " + bdg.Name,
			})
		}
	}
	return nil
}

func nameSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).QuickRatio()
}

type (
	Repository interface {
		CreateBadge(ctx context.Context, bdg Badge) (Badge, error)
		// GetBadge returns ErrNotFound when no badge has the given id.
		GetBadge(ctx context.Context, id string) (Badge, error)
		QueryAllBadges(ctx context.Context) ([]Badge, error)
	}

	StudentBadgeRepository interface {
		// CreateStudentBadge returns ErrExists when the user already holds the badge in the institution.
		CreateStudentBadge(ctx context.Context, sb StudentBadge) (StudentBadge, error)
		QueryStudentBadgesByUser(ctx context.Context, userID, institutionID string) ([]StudentBadge, error)
		QueryStudentBadgesByBadge(ctx context.Context, badgeID, institutionID string) ([]StudentBadge, error)
	}
)
