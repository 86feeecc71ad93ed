package progress

import (
	"context"

	"github.com/pkg/errors"
)

// Service answers completion questions about a user's lessons.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// FindByUserAndLesson returns nil, nil when the user has no progress on the lesson.
func (svc *Service) FindByUserAndLesson(ctx context.Context, userID, lessonID string) (*LessonProgress, error) {
	prg, err := svc.repo.GetLessonProgress(ctx, userID, lessonID)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(err, "getting lesson progress")
	}
	return &prg, nil
}

func (svc *Service) IsLessonCompleted(ctx context.Context, userID, lessonID string) (bool, error) {
	prg, err := svc.FindByUserAndLesson(ctx, userID, lessonID)
	if err != nil || prg == nil {
		return false, err
	}
	return prg.IsCompleted(), nil
}

// CountCompleted counts the lessons the user completed within the institution.
func (svc *Service) CountCompleted(ctx context.Context, userID, institutionID string) (int, error) {
	prgs, err := svc.repo.QueryLessonProgress(ctx, userID, institutionID)
	if err != nil {
		return 0, errors.Wrap(err, "querying lesson progress")
	}

	var count int
	for _, prg := range prgs {
		if prg.InstitutionID == institutionID && prg.IsCompleted() {
			count++
		}
	}
	return count, nil
}
