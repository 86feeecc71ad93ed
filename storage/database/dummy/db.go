package dummydb

import (
	"sync"

	"github.com/google/uuid"

	"github.com/trezcool/masomo-lms/core/badge"
	"github.com/trezcool/masomo-lms/core/certificate"
	"github.com/trezcool/masomo-lms/core/course"
	"github.com/trezcool/masomo-lms/core/enrollment"
	"github.com/trezcool/masomo-lms/core/institution"
	"github.com/trezcool/masomo-lms/core/progress"
	"github.com/trezcool/masomo-lms/core/submission"
	"github.com/trezcool/masomo-lms/core/user"
)

// DB is an in-memory store implementing every repository of the app.
// Records are returned by value; tables keep insertion order.
type DB struct {
	mu sync.RWMutex

	institutions  map[string]institution.Institution
	users         map[string]user.User
	modules       []course.Module
	lessons       []course.Lesson
	progress      []progress.LessonProgress
	enrollments   []enrollment.Enrollment
	submissions   []submission.Submission
	certificates  []certificate.Certificate
	badges        []badge.Badge
	studentBadges []badge.StudentBadge

	// failures, keyed by repository method name, let tests simulate broken lookups.
	failures map[string]error
}

func Open() *DB {
	return &DB{
		institutions: make(map[string]institution.Institution),
		users:        make(map[string]user.User),
		failures:     make(map[string]error),
	}
}

// Fail makes the named repository method return err until Fail(method, nil) is called.
func (db *DB) Fail(method string, err error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if err == nil {
		delete(db.failures, method)
		return
	}
	db.failures[method] = err
}

// failure must be called with the lock held.
func (db *DB) failure(method string) error {
	return db.failures[method]
}

func newID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}
