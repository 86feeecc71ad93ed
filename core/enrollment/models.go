package enrollment

import (
	"context"
	"time"
)

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusDropped   Status = "DROPPED"
)

type Enrollment struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	CourseID      string    `json:"course_id"`
	InstitutionID string    `json:"institution_id"`
	Status        Status    `json:"status"`
	EnrolledAt    time.Time `json:"enrolled_at"` // UTC
}

type Repository interface {
	QueryEnrollmentsByUser(ctx context.Context, userID string) ([]Enrollment, error)
	QueryEnrollmentsByInstitution(ctx context.Context, institutionID string) ([]Enrollment, error)
}

// CountCompleted counts the completed enrollments belonging to institutionID.
func CountCompleted(enrs []Enrollment, institutionID string) int {
	var count int
	for _, enr := range enrs {
		if enr.Status == StatusCompleted && enr.InstitutionID == institutionID {
			count++
		}
	}
	return count
}

// DistinctUsers returns the set of user ids found in enrs.
func DistinctUsers(enrs []Enrollment) map[string]struct{} {
	users := make(map[string]struct{}, len(enrs))
	for _, enr := range enrs {
		users[enr.UserID] = struct{}{}
	}
	return users
}
