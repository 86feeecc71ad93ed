package course

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	modules   map[string][]Module // {courseID: modules}
	lessons   map[string][]Lesson // {moduleID: lessons}
	lessonErr error
}

func (r *fakeRepo) QueryModulesByCourse(_ context.Context, courseID string) ([]Module, error) {
	return r.modules[courseID], nil
}

func (r *fakeRepo) QueryLessonsByModule(_ context.Context, moduleID string) ([]Lesson, error) {
	if r.lessonErr != nil {
		return nil, r.lessonErr
	}
	return r.lessons[moduleID], nil
}

// course c1: m1 [l1, l2], m2 [l3, l4]; repository order is deliberately shuffled.
func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		modules: map[string][]Module{
			"c1": {
				{ID: "m2", CourseID: "c1", Order: 2},
				{ID: "m1", CourseID: "c1", Order: 1},
			},
		},
		lessons: map[string][]Lesson{
			"m1": {
				{ID: "l2", ModuleID: "m1", CourseID: "c1", Order: 2},
				{ID: "l1", ModuleID: "m1", CourseID: "c1", Order: 1},
			},
			"m2": {
				{ID: "l4", ModuleID: "m2", CourseID: "c1", Order: 20},
				{ID: "l3", ModuleID: "m2", CourseID: "c1", Order: 10},
			},
		},
	}
}

func lessonIDs(lessons []Lesson) []string {
	ids := make([]string, 0, len(lessons))
	for _, lsn := range lessons {
		ids = append(ids, lsn.ID)
	}
	return ids
}

func TestSortModules(t *testing.T) {
	in := []Module{{ID: "b", Order: 2}, {ID: "a1", Order: 1}, {ID: "c", Order: 3}, {ID: "a2", Order: 1}}
	got := SortModules(in)

	var ids []string
	for _, mod := range got {
		ids = append(ids, mod.ID)
	}
	assert.Equal(t, []string{"a1", "a2", "b", "c"}, ids)
	assert.Equal(t, "b", in[0].ID, "input must not be reordered")
}

func TestOutline_Locate(t *testing.T) {
	outline := NewOutline(newFakeRepo(), newFakeRepo())

	tests := []struct {
		name         string
		courseID     string
		lessonID     string
		wantModule   int
		wantLesson   int
		wantEntry    bool
		wantPreds    []string
		wantModules  int
		wantNotFound bool
	}{
		{name: "entry point", courseID: "c1", lessonID: "l1", wantEntry: true, wantPreds: []string{}, wantModules: 1},
		{name: "second lesson", courseID: "c1", lessonID: "l2", wantLesson: 1, wantPreds: []string{"l1"}, wantModules: 1},
		{name: "first lesson of second module", courseID: "c1", lessonID: "l3", wantModule: 1, wantPreds: []string{"l1", "l2"}, wantModules: 2},
		{name: "last lesson", courseID: "c1", lessonID: "l4", wantModule: 1, wantLesson: 1, wantPreds: []string{"l1", "l2", "l3"}, wantModules: 2},
		{name: "lesson of another course", courseID: "c1", lessonID: "l99", wantNotFound: true},
		{name: "unknown course", courseID: "c99", lessonID: "l1", wantNotFound: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := outline.Locate(context.Background(), tt.courseID, tt.lessonID)
			if tt.wantNotFound {
				require.Error(t, err)
				assert.Equal(t, ErrLessonNotInCourse, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantModule, pos.ModuleIndex)
			assert.Equal(t, tt.wantLesson, pos.LessonIndex)
			assert.Equal(t, tt.wantEntry, pos.IsEntryPoint())
			assert.Equal(t, tt.wantPreds, lessonIDs(pos.Predecessors()))
			assert.Len(t, pos.Modules, tt.wantModules)
			assert.Equal(t, tt.lessonID, pos.Lesson().ID)
		})
	}
}

func TestOutline_Locate_repositoryError(t *testing.T) {
	repo := newFakeRepo()
	repo.lessonErr = errors.New("connection reset")
	outline := NewOutline(repo, repo)

	_, err := outline.Locate(context.Background(), "c1", "l1")
	require.Error(t, err)
	assert.NotEqual(t, ErrLessonNotInCourse, err)
}

func TestOutline_Lessons(t *testing.T) {
	repo := newFakeRepo()
	outline := NewOutline(repo, repo)

	lessons, err := outline.Lessons(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"l1", "l2", "l3", "l4"}, lessonIDs(lessons))

	lessons, err = outline.Lessons(context.Background(), "c99")
	require.NoError(t, err)
	assert.Empty(t, lessons)
}
