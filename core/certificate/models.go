package certificate

import (
	"context"
	"time"
)

type Certificate struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	CourseID      string     `json:"course_id"`
	InstitutionID string     `json:"institution_id"`
	IssuedAt      *time.Time `json:"issued_at"` // UTC, nil until issued
}

func (c Certificate) IsIssued() bool {
	return c.IssuedAt != nil && !c.IssuedAt.IsZero()
}

type Repository interface {
	QueryCertificates(ctx context.Context, userID, institutionID string) ([]Certificate, error)
}

// CountIssued counts the issued certificates belonging to institutionID.
func CountIssued(certs []Certificate, institutionID string) int {
	var count int
	for _, cert := range certs {
		if cert.IsIssued() && cert.InstitutionID == institutionID {
			count++
		}
	}
	return count
}
