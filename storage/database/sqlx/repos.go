package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

const uniqueViolation = "23505"

// Repositories bundles every postgres repository over one connection pool.
type Repositories struct {
	*institutionRepository
	*courseRepository
	*progressRepository
	*activityRepository
	*badgeRepository
	*userRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		institutionRepository: NewInstitutionRepository(db),
		courseRepository:      NewCourseRepository(db),
		progressRepository:    NewProgressRepository(db),
		activityRepository:    NewActivityRepository(db),
		badgeRepository:       NewBadgeRepository(db),
		userRepository:        NewUserRepository(db),
	}
}

// trapNoRowsErr maps psql "no rows" err to notFound
func trapNoRowsErr(err error, notFound error, msg string) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return notFound
	}
	return errors.Wrap(err, msg)
}

func isUniqueViolation(err error) bool {
	pqErr, ok := errors.Cause(err).(*pq.Error)
	return ok && pqErr.Code == uniqueViolation
}
