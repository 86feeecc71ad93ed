package dummydb

import (
	"context"
	"time"

	"github.com/trezcool/masomo-lms/core/course"
	"github.com/trezcool/masomo-lms/core/institution"
)

var (
	_ institution.Repository  = (*DB)(nil) // interface compliance check
	_ course.ModuleRepository = (*DB)(nil)
	_ course.LessonRepository = (*DB)(nil)
)

func (db *DB) CreateInstitution(inst institution.Institution) institution.Institution {
	db.mu.Lock()
	defer db.mu.Unlock()

	inst.ID = newID(inst.ID)
	if inst.CreatedAt.IsZero() {
		inst.CreatedAt = time.Now().UTC()
	}
	db.institutions[inst.ID] = inst
	return inst
}

func (db *DB) GetInstitution(_ context.Context, id string) (institution.Institution, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if err := db.failure("GetInstitution"); err != nil {
		return institution.Institution{}, err
	}
	if inst, ok := db.institutions[id]; ok {
		return inst, nil
	}
	return institution.Institution{}, institution.ErrNotFound
}

func (db *DB) CreateModule(mod course.Module) course.Module {
	db.mu.Lock()
	defer db.mu.Unlock()

	mod.ID = newID(mod.ID)
	db.modules = append(db.modules, mod)
	return mod
}

func (db *DB) CreateLesson(lsn course.Lesson) course.Lesson {
	db.mu.Lock()
	defer db.mu.Unlock()

	lsn.ID = newID(lsn.ID)
	db.lessons = append(db.lessons, lsn)
	return lsn
}

func (db *DB) QueryModulesByCourse(_ context.Context, courseID string) ([]course.Module, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if err := db.failure("QueryModulesByCourse"); err != nil {
		return nil, err
	}
	mods := make([]course.Module, 0)
	for _, mod := range db.modules {
		if mod.CourseID == courseID {
			mods = append(mods, mod)
		}
	}
	return mods, nil
}

func (db *DB) QueryLessonsByModule(_ context.Context, moduleID string) ([]course.Lesson, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if err := db.failure("QueryLessonsByModule"); err != nil {
		return nil, err
	}
	lsns := make([]course.Lesson, 0)
	for _, lsn := range db.lessons {
		if lsn.ModuleID == moduleID {
			lsns = append(lsns, lsn)
		}
	}
	return lsns, nil
}
