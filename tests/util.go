package testutil

import (
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	"github.com/trezcool/masomo-lms/core"
	"github.com/trezcool/masomo-lms/core/badge"
	"github.com/trezcool/masomo-lms/core/course"
	"github.com/trezcool/masomo-lms/core/institution"
	"github.com/trezcool/masomo-lms/core/progress"
	logsvc "github.com/trezcool/masomo-lms/services/logger"
	"github.com/trezcool/masomo-lms/storage/database"
	dummydb "github.com/trezcool/masomo-lms/storage/database/dummy"
)

func NewLogger() core.Logger {
	return logsvc.NewStdLogger(io.Discard, "TEST : ")
}

func NewValidator() *validator.Validate {
	validate, _ := NewTranslatedValidator()
	return validate
}

// NewTranslatedValidator returns a validator with every custom rule registered, and its translator.
func NewTranslatedValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	badge.InitValidators(validate, translator)
	return validate, translator
}

func CreateInstitution(db *dummydb.DB, id string, sequential, allowSkip bool) institution.Institution {
	return db.CreateInstitution(institution.Institution{
		ID:   id,
		Name: "Institution " + id,
		Settings: institution.Settings{
			RequireSequentialProgress: sequential,
			AllowSkipLesson:           allowSkip,
		},
	})
}

// CreateCourse creates one module per lessonsPerModule entry, holding that many lessons.
// Modules and lessons are inserted in reverse order to make sure readers sort them.
// IDs follow "<course>-m<i>" and "<course>-m<i>-l<j>", starting at 1.
func CreateCourse(db *dummydb.DB, courseID string, lessonsPerModule ...int) [][]course.Lesson {
	lessons := make([][]course.Lesson, len(lessonsPerModule))
	for mi := len(lessonsPerModule) - 1; mi >= 0; mi-- {
		mod := db.CreateModule(course.Module{
			ID:       fmt.Sprintf("%s-m%d", courseID, mi+1),
			CourseID: courseID,
			Title:    fmt.Sprintf("Module %d", mi+1),
			Order:    mi + 1,
		})
		lessons[mi] = make([]course.Lesson, lessonsPerModule[mi])
		for li := lessonsPerModule[mi] - 1; li >= 0; li-- {
			lessons[mi][li] = db.CreateLesson(course.Lesson{
				ID:       fmt.Sprintf("%s-l%d", mod.ID, li+1),
				ModuleID: mod.ID,
				CourseID: courseID,
				Title:    fmt.Sprintf("Lesson %d.%d", mi+1, li+1),
				Order:    li + 1,
			})
		}
	}
	return lessons
}

func StartLesson(db *dummydb.DB, userID, institutionID string, lsn course.Lesson) progress.LessonProgress {
	return db.CreateLessonProgress(progress.LessonProgress{
		UserID:        userID,
		LessonID:      lsn.ID,
		CourseID:      lsn.CourseID,
		InstitutionID: institutionID,
	})
}

func CompleteLesson(db *dummydb.DB, userID, institutionID string, lsn course.Lesson) progress.LessonProgress {
	now := time.Now().UTC()
	return db.CreateLessonProgress(progress.LessonProgress{
		UserID:        userID,
		LessonID:      lsn.ID,
		CourseID:      lsn.CourseID,
		InstitutionID: institutionID,
		StartedAt:     now,
		CompletedAt:   &now,
	})
}

// PrepareDB connects to TEST_DATABASE_URL and applies the migrations.
// The test is skipped when no test database is configured.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	if err = database.Migrate(db.DB); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
