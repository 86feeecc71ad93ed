package dummydb

import (
	"context"
	"time"

	"github.com/trezcool/masomo-lms/core/certificate"
	"github.com/trezcool/masomo-lms/core/enrollment"
	"github.com/trezcool/masomo-lms/core/progress"
	"github.com/trezcool/masomo-lms/core/submission"
	"github.com/trezcool/masomo-lms/core/user"
)

var (
	_ progress.Repository    = (*DB)(nil) // interface compliance check
	_ enrollment.Repository  = (*DB)(nil)
	_ submission.Repository  = (*DB)(nil)
	_ certificate.Repository = (*DB)(nil)
	_ user.Repository        = (*DB)(nil)
)

func (db *DB) CreateUser(usr user.User) user.User {
	db.mu.Lock()
	defer db.mu.Unlock()

	usr.ID = newID(usr.ID)
	if usr.CreatedAt.IsZero() {
		usr.CreatedAt = time.Now().UTC()
	}
	db.users[usr.ID] = usr
	return usr
}

func (db *DB) GetUser(_ context.Context, id string) (user.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if err := db.failure("GetUser"); err != nil {
		return user.User{}, err
	}
	if usr, ok := db.users[id]; ok {
		return usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (db *DB) CreateLessonProgress(prg progress.LessonProgress) progress.LessonProgress {
	db.mu.Lock()
	defer db.mu.Unlock()

	prg.ID = newID(prg.ID)
	if prg.StartedAt.IsZero() {
		prg.StartedAt = time.Now().UTC()
	}
	db.progress = append(db.progress, prg)
	return prg
}

func (db *DB) GetLessonProgress(_ context.Context, userID, lessonID string) (progress.LessonProgress, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if err := db.failure("GetLessonProgress"); err != nil {
		return progress.LessonProgress{}, err
	}
	for _, prg := range db.progress {
		if prg.UserID == userID && prg.LessonID == lessonID {
			return prg, nil
		}
	}
	return progress.LessonProgress{}, progress.ErrNotFound
}

func (db *DB) QueryLessonProgress(_ context.Context, userID, institutionID string) ([]progress.LessonProgress, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if err := db.failure("QueryLessonProgress"); err != nil {
		return nil, err
	}
	prgs := make([]progress.LessonProgress, 0)
	for _, prg := range db.progress {
		if prg.UserID == userID && prg.InstitutionID == institutionID {
			prgs = append(prgs, prg)
		}
	}
	return prgs, nil
}

func (db *DB) CreateEnrollment(enr enrollment.Enrollment) enrollment.Enrollment {
	db.mu.Lock()
	defer db.mu.Unlock()

	enr.ID = newID(enr.ID)
	if enr.Status == "" {
		enr.Status = enrollment.StatusActive
	}
	if enr.EnrolledAt.IsZero() {
		enr.EnrolledAt = time.Now().UTC()
	}
	db.enrollments = append(db.enrollments, enr)
	return enr
}

func (db *DB) QueryEnrollmentsByUser(_ context.Context, userID string) ([]enrollment.Enrollment, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if err := db.failure("QueryEnrollmentsByUser"); err != nil {
		return nil, err
	}
	enrs := make([]enrollment.Enrollment, 0)
	for _, enr := range db.enrollments {
		if enr.UserID == userID {
			enrs = append(enrs, enr)
		}
	}
	return enrs, nil
}

func (db *DB) QueryEnrollmentsByInstitution(_ context.Context, institutionID string) ([]enrollment.Enrollment, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if err := db.failure("QueryEnrollmentsByInstitution"); err != nil {
		return nil, err
	}
	enrs := make([]enrollment.Enrollment, 0)
	for _, enr := range db.enrollments {
		if enr.InstitutionID == institutionID {
			enrs = append(enrs, enr)
		}
	}
	return enrs, nil
}

func (db *DB) CreateSubmission(sub submission.Submission) submission.Submission {
	db.mu.Lock()
	defer db.mu.Unlock()

	sub.ID = newID(sub.ID)
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now().UTC()
	}
	db.submissions = append(db.submissions, sub)
	return sub
}

func (db *DB) QuerySubmissionsByUser(_ context.Context, userID string) ([]submission.Submission, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if err := db.failure("QuerySubmissionsByUser"); err != nil {
		return nil, err
	}
	subs := make([]submission.Submission, 0)
	for _, sub := range db.submissions {
		if sub.UserID == userID {
			subs = append(subs, sub)
		}
	}
	return subs, nil
}

func (db *DB) CreateCertificate(cert certificate.Certificate) certificate.Certificate {
	db.mu.Lock()
	defer db.mu.Unlock()

	cert.ID = newID(cert.ID)
	db.certificates = append(db.certificates, cert)
	return cert
}

func (db *DB) QueryCertificates(_ context.Context, userID, institutionID string) ([]certificate.Certificate, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if err := db.failure("QueryCertificates"); err != nil {
		return nil, err
	}
	certs := make([]certificate.Certificate, 0)
	for _, cert := range db.certificates {
		if cert.UserID == userID && cert.InstitutionID == institutionID {
			certs = append(certs, cert)
		}
	}
	return certs, nil
}
