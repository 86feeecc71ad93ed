package submission

import (
	"context"
	"time"
)

// Submission is a student's answer sheet to a questionnaire.
type Submission struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	QuestionnaireID string    `json:"questionnaire_id"`
	InstitutionID   string    `json:"institution_id"`
	Score           float64   `json:"score"`
	Passed          bool      `json:"passed"`
	SubmittedAt     time.Time `json:"submitted_at"` // UTC
}

type Repository interface {
	QuerySubmissionsByUser(ctx context.Context, userID string) ([]Submission, error)
}

func CountPassed(subs []Submission, institutionID string) int {
	var count int
	for _, sub := range subs {
		if sub.Passed && sub.InstitutionID == institutionID {
			count++
		}
	}
	return count
}
