package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repoMock struct {
	records []LessonProgress
	err     error
}

func (r *repoMock) GetLessonProgress(_ context.Context, userID, lessonID string) (LessonProgress, error) {
	if r.err != nil {
		return LessonProgress{}, r.err
	}
	for _, prg := range r.records {
		if prg.UserID == userID && prg.LessonID == lessonID {
			return prg, nil
		}
	}
	return LessonProgress{}, ErrNotFound
}

func (r *repoMock) QueryLessonProgress(_ context.Context, userID, institutionID string) ([]LessonProgress, error) {
	if r.err != nil {
		return nil, r.err
	}
	var prgs []LessonProgress
	for _, prg := range r.records {
		if prg.UserID == userID && prg.InstitutionID == institutionID {
			prgs = append(prgs, prg)
		}
	}
	return prgs, nil
}

func TestService(t *testing.T) {
	now := time.Now().UTC()
	repo := &repoMock{records: []LessonProgress{
		{ID: "p1", UserID: "u1", LessonID: "l1", InstitutionID: "i1", StartedAt: now, CompletedAt: &now},
		{ID: "p2", UserID: "u1", LessonID: "l2", InstitutionID: "i1", StartedAt: now},
		{ID: "p3", UserID: "u1", LessonID: "l3", InstitutionID: "i2", StartedAt: now, CompletedAt: &now},
		{ID: "p4", UserID: "u2", LessonID: "l1", InstitutionID: "i1", StartedAt: now, CompletedAt: &now},
	}}
	svc := NewService(repo)
	ctx := context.Background()

	tests := []struct {
		name          string
		userID        string
		lessonID      string
		wantFound     bool
		wantCompleted bool
	}{
		{name: "completed", userID: "u1", lessonID: "l1", wantFound: true, wantCompleted: true},
		{name: "started only", userID: "u1", lessonID: "l2", wantFound: true},
		{name: "never opened", userID: "u1", lessonID: "l9"},
		{name: "other user", userID: "u3", lessonID: "l1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prg, err := svc.FindByUserAndLesson(ctx, tt.userID, tt.lessonID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, prg != nil)

			completed, err := svc.IsLessonCompleted(ctx, tt.userID, tt.lessonID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCompleted, completed)
		})
	}

	count, err := svc.CountCompleted(ctx, "u1", "i1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestService_repositoryError(t *testing.T) {
	svc := NewService(&repoMock{err: errors.New("connection refused")})
	ctx := context.Background()

	prg, err := svc.FindByUserAndLesson(ctx, "u1", "l1")
	assert.Error(t, err)
	assert.Nil(t, prg)

	_, err = svc.IsLessonCompleted(ctx, "u1", "l1")
	assert.Error(t, err)

	_, err = svc.CountCompleted(ctx, "u1", "i1")
	assert.Error(t, err)
}
