package sqlxrepos_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-lms/core/badge"
	"github.com/trezcool/masomo-lms/core/course"
	"github.com/trezcool/masomo-lms/core/institution"
	"github.com/trezcool/masomo-lms/core/progress"
	"github.com/trezcool/masomo-lms/core/user"
	sqlxrepos "github.com/trezcool/masomo-lms/storage/database/sqlx"
	"github.com/trezcool/masomo-lms/tests"
)

func exec(t *testing.T, db *sqlx.DB, q string, args ...interface{}) {
	t.Helper()
	if _, err := db.Exec(q, args...); err != nil {
		t.Fatalf("exec(%s) failed: %v", q, err)
	}
}

func TestRepositories(t *testing.T) {
	db := testutil.PrepareDB(t)
	repos := sqlxrepos.NewRepositories(db)
	ctx := context.Background()

	instID, usrID, courseID := uuid.NewString(), uuid.NewString(), uuid.NewString()
	exec(t, db, `INSERT INTO "institution" ("id", "name", "require_sequential_progress") VALUES ($1, 'Test', TRUE)`, instID)
	exec(t, db, `INSERT INTO "user" ("id", "name", "email", "roles") VALUES ($1, 'Amani', $2, '{student:}')`, usrID, usrID+"@test.cd")
	exec(t, db, `INSERT INTO "course" ("id", "institution_id", "title") VALUES ($1, $2, 'Go')`, courseID, instID)
	exec(t, db, `INSERT INTO "module" ("id", "course_id", "title", "order") VALUES ($1, $2, 'M2', 2), ($3, $2, 'M1', 1)`,
		courseID+"-m2", courseID, courseID+"-m1")
	exec(t, db, `INSERT INTO "lesson" ("id", "module_id", "course_id", "title", "order") VALUES ($1, $2, $3, 'L2', 2), ($4, $2, $3, 'L1', 1)`,
		courseID+"-l2", courseID+"-m1", courseID, courseID+"-l1")
	exec(t, db, `INSERT INTO "lesson_progress" ("id", "user_id", "lesson_id", "course_id", "institution_id", "completed_at") VALUES ($1, $2, $3, $4, $5, NOW())`,
		uuid.NewString(), usrID, courseID+"-l1", courseID, instID)

	t.Run("institution", func(t *testing.T) {
		inst, err := repos.GetInstitution(ctx, instID)
		require.NoError(t, err)
		assert.True(t, inst.Settings.RequireSequentialProgress)
		assert.False(t, inst.Settings.AllowSkipLesson)

		_, err = repos.GetInstitution(ctx, uuid.NewString())
		assert.Equal(t, institution.ErrNotFound, err)
	})

	t.Run("outline", func(t *testing.T) {
		lessons, err := course.NewOutline(repos, repos).Lessons(ctx, courseID)
		require.NoError(t, err)
		require.Len(t, lessons, 2)
		assert.Equal(t, courseID+"-l1", lessons[0].ID)
	})

	t.Run("progress", func(t *testing.T) {
		prg, err := repos.GetLessonProgress(ctx, usrID, courseID+"-l1")
		require.NoError(t, err)
		assert.True(t, prg.IsCompleted())

		_, err = repos.GetLessonProgress(ctx, usrID, courseID+"-l2")
		assert.Equal(t, progress.ErrNotFound, err)

		count, err := progress.NewService(repos).CountCompleted(ctx, usrID, instID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("user", func(t *testing.T) {
		usr, err := repos.GetUser(ctx, usrID)
		require.NoError(t, err)
		assert.Equal(t, []string{user.RoleStudent}, usr.Roles)
		assert.Empty(t, usr.Username)

		_, err = repos.GetUser(ctx, uuid.NewString())
		assert.Equal(t, user.ErrNotFound, err)
	})

	t.Run("badges", func(t *testing.T) {
		bdg, err := badge.New(uuid.NewString(), "Bookworm "+instID, "desc", "https://cdn.test/b.png", badge.CriteriaLessonCompletion, 1)
		require.NoError(t, err)
		bdg, err = repos.CreateBadge(ctx, bdg)
		require.NoError(t, err)

		got, err := repos.GetBadge(ctx, bdg.ID)
		require.NoError(t, err)
		assert.Equal(t, bdg.Name, got.Name)

		sb, err := badge.NewStudentBadge(uuid.NewString(), usrID, bdg.ID, instID, time.Time{})
		require.NoError(t, err)
		_, err = repos.CreateStudentBadge(ctx, sb)
		require.NoError(t, err)

		sb.ID = uuid.NewString()
		_, err = repos.CreateStudentBadge(ctx, sb)
		assert.Equal(t, badge.ErrExists, err)

		sbs, err := repos.QueryStudentBadgesByUser(ctx, usrID, instID)
		require.NoError(t, err)
		assert.Len(t, sbs, 1)
		sbs, err = repos.QueryStudentBadgesByBadge(ctx, bdg.ID, instID)
		require.NoError(t, err)
		assert.Len(t, sbs, 1)
	})
}
