package access_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-lms/core"
	"github.com/trezcool/masomo-lms/core/access"
	"github.com/trezcool/masomo-lms/core/course"
	"github.com/trezcool/masomo-lms/core/institution"
	"github.com/trezcool/masomo-lms/core/progress"
	dummydb "github.com/trezcool/masomo-lms/storage/database/dummy"
	"github.com/trezcool/masomo-lms/tests"
)

const (
	userID   = "u1"
	courseID = "c1"
)

func newGate(db *dummydb.DB) *access.Gate {
	return access.NewGate(db, progress.NewService(db), course.NewOutline(db, db), testutil.NewLogger())
}

func TestGate_CanAccessLesson_arguments(t *testing.T) {
	db := dummydb.Open()
	testutil.CreateInstitution(db, "i1", true, false)
	lessons := testutil.CreateCourse(db, courseID, 2)
	gate := newGate(db)

	tests := []struct {
		name          string
		userID        string
		lessonID      string
		courseID      string
		institutionID string
		wantArgErr    bool
		wantNotFound  bool
	}{
		{name: "no user", lessonID: lessons[0][0].ID, courseID: courseID, institutionID: "i1", wantArgErr: true},
		{name: "blank lesson", userID: userID, lessonID: "  ", courseID: courseID, institutionID: "i1", wantArgErr: true},
		{name: "no course", userID: userID, lessonID: lessons[0][0].ID, institutionID: "i1", wantArgErr: true},
		{name: "no institution", userID: userID, lessonID: lessons[0][0].ID, courseID: courseID, wantArgErr: true},
		{name: "unknown institution", userID: userID, lessonID: lessons[0][0].ID, courseID: courseID, institutionID: "i9", wantNotFound: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gate.CanAccessLesson(context.Background(), tt.userID, tt.lessonID, tt.courseID, tt.institutionID)
			require.Error(t, err)
			assert.Equal(t, tt.wantArgErr, core.IsArgumentError(err))
			assert.Equal(t, tt.wantNotFound, core.IsNotFound(err))
			if tt.wantNotFound {
				assert.Equal(t, institution.ErrNotFound, errors.Cause(err))
			}
		})
	}
}

func TestGate_CanAccessLesson(t *testing.T) {
	tests := []struct {
		name       string
		sequential bool
		allowSkip  bool
		setup      func(db *dummydb.DB, lessons [][]course.Lesson)
		target     func(lessons [][]course.Lesson) string
		want       access.Decision
	}{
		{
			name:       "started lesson is always accessible",
			sequential: true,
			setup: func(db *dummydb.DB, lessons [][]course.Lesson) {
				testutil.StartLesson(db, userID, "i1", lessons[1][1])
			},
			target: func(lessons [][]course.Lesson) string { return lessons[1][1].ID },
			want:   access.Decision{CanAccess: true, HasStarted: true},
		},
		{
			name:       "completed lesson is always accessible",
			sequential: true,
			setup: func(db *dummydb.DB, lessons [][]course.Lesson) {
				testutil.CompleteLesson(db, userID, "i1", lessons[1][0])
			},
			target: func(lessons [][]course.Lesson) string { return lessons[1][0].ID },
			want:   access.Decision{CanAccess: true, HasStarted: true, IsCompleted: true},
		},
		{
			name:       "first lesson is the entry point",
			sequential: true,
			target:     func(lessons [][]course.Lesson) string { return lessons[0][0].ID },
			want:       access.Decision{CanAccess: true},
		},
		{
			name:   "non sequential institution",
			target: func(lessons [][]course.Lesson) string { return lessons[1][1].ID },
			want:   access.Decision{CanAccess: true},
		},
		{
			name:       "sequential block",
			sequential: true,
			target:     func(lessons [][]course.Lesson) string { return lessons[0][1].ID },
			want:       access.Decision{CanAccess: false, Reason: access.ReasonPreviousLessonsIncomplete},
		},
		{
			name:       "skip allowed",
			sequential: true,
			allowSkip:  true,
			target:     func(lessons [][]course.Lesson) string { return lessons[1][0].ID },
			want:       access.Decision{CanAccess: true, IsSkippable: true},
		},
		{
			name:       "only predecessor completed",
			sequential: true,
			setup: func(db *dummydb.DB, lessons [][]course.Lesson) {
				testutil.CompleteLesson(db, userID, "i1", lessons[0][0])
			},
			target: func(lessons [][]course.Lesson) string { return lessons[0][1].ID },
			want:   access.Decision{CanAccess: true},
		},
		{
			name:       "next module with an incomplete lesson",
			sequential: true,
			setup: func(db *dummydb.DB, lessons [][]course.Lesson) {
				testutil.CompleteLesson(db, userID, "i1", lessons[0][0])
			},
			target: func(lessons [][]course.Lesson) string { return lessons[1][0].ID },
			want:   access.Decision{CanAccess: false, Reason: access.ReasonPreviousLessonsIncomplete},
		},
		{
			name:       "started predecessor is not completed",
			sequential: true,
			setup: func(db *dummydb.DB, lessons [][]course.Lesson) {
				testutil.CompleteLesson(db, userID, "i1", lessons[0][0])
				testutil.StartLesson(db, userID, "i1", lessons[0][1])
			},
			target: func(lessons [][]course.Lesson) string { return lessons[1][0].ID },
			want:   access.Decision{CanAccess: false, Reason: access.ReasonPreviousLessonsIncomplete},
		},
		{
			name:       "every predecessor completed",
			sequential: true,
			setup: func(db *dummydb.DB, lessons [][]course.Lesson) {
				testutil.CompleteLesson(db, userID, "i1", lessons[0][0])
				testutil.CompleteLesson(db, userID, "i1", lessons[0][1])
				testutil.CompleteLesson(db, userID, "i1", lessons[1][0])
			},
			target: func(lessons [][]course.Lesson) string { return lessons[1][1].ID },
			want:   access.Decision{CanAccess: true},
		},
		{
			name:       "other user progress does not count",
			sequential: true,
			setup: func(db *dummydb.DB, lessons [][]course.Lesson) {
				testutil.CompleteLesson(db, "u2", "i1", lessons[0][0])
			},
			target: func(lessons [][]course.Lesson) string { return lessons[0][1].ID },
			want:   access.Decision{CanAccess: false, Reason: access.ReasonPreviousLessonsIncomplete},
		},
		{
			name:       "lesson outside the course fails closed",
			sequential: true,
			target:     func([][]course.Lesson) string { return "elsewhere" },
			want:       access.Decision{CanAccess: false, Reason: access.ReasonVerificationFailed},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := dummydb.Open()
			testutil.CreateInstitution(db, "i1", tt.sequential, tt.allowSkip)
			lessons := testutil.CreateCourse(db, courseID, 2, 2)
			if tt.setup != nil {
				tt.setup(db, lessons)
			}

			got, err := newGate(db).CanAccessLesson(context.Background(), userID, tt.target(lessons), courseID, "i1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// course c1: M1 [L1, L2], M2 [L3]; only L1 completed.
func TestGate_CanAccessLesson_walkthrough(t *testing.T) {
	db := dummydb.Open()
	testutil.CreateInstitution(db, "i1", true, false)
	lessons := testutil.CreateCourse(db, courseID, 2, 1)
	testutil.CompleteLesson(db, userID, "i1", lessons[0][0])
	gate := newGate(db)
	ctx := context.Background()

	got, err := gate.CanAccessLesson(ctx, userID, lessons[0][1].ID, courseID, "i1")
	require.NoError(t, err)
	assert.Equal(t, access.Decision{CanAccess: true}, got)

	got, err = gate.CanAccessLesson(ctx, userID, lessons[1][0].ID, courseID, "i1")
	require.NoError(t, err)
	assert.False(t, got.CanAccess)
	assert.False(t, got.IsSkippable)
}

func TestGate_CanAccessLesson_failsClosed(t *testing.T) {
	tests := []struct {
		name   string
		method string
		first  bool
	}{
		{name: "modules lookup", method: "QueryModulesByCourse"},
		{name: "lessons lookup", method: "QueryLessonsByModule"},
		{name: "lessons lookup on the entry point", method: "QueryLessonsByModule", first: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := dummydb.Open()
			testutil.CreateInstitution(db, "i1", true, true)
			lessons := testutil.CreateCourse(db, courseID, 2)
			db.Fail(tt.method, errors.New("connection reset"))

			target := lessons[0][1].ID
			if tt.first {
				target = lessons[0][0].ID
			}
			got, err := newGate(db).CanAccessLesson(context.Background(), userID, target, courseID, "i1")
			require.NoError(t, err)
			assert.Equal(t, access.Decision{CanAccess: false, Reason: access.ReasonVerificationFailed}, got)
		})
	}
}

func TestGate_CourseAccessMap(t *testing.T) {
	db := dummydb.Open()
	testutil.CreateInstitution(db, "i1", true, false)
	lessons := testutil.CreateCourse(db, courseID, 2, 1)
	testutil.CompleteLesson(db, userID, "i1", lessons[0][0])

	got, err := newGate(db).CourseAccessMap(context.Background(), userID, courseID, "i1")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, lessons[0][0].ID, got[0].Lesson.ID)
	assert.Equal(t, access.Decision{CanAccess: true, HasStarted: true, IsCompleted: true}, got[0].Decision)
	assert.Equal(t, lessons[0][1].ID, got[1].Lesson.ID)
	assert.Equal(t, access.Decision{CanAccess: true}, got[1].Decision)
	assert.Equal(t, lessons[1][0].ID, got[2].Lesson.ID)
	assert.False(t, got[2].CanAccess)

	_, err = newGate(db).CourseAccessMap(context.Background(), "", courseID, "i1")
	assert.True(t, core.IsArgumentError(err))
}
