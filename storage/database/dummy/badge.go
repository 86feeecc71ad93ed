package dummydb

import (
	"context"

	"github.com/trezcool/masomo-lms/core/badge"
)

var (
	_ badge.Repository             = (*DB)(nil) // interface compliance check
	_ badge.StudentBadgeRepository = (*DB)(nil)
)

func (db *DB) CreateBadge(_ context.Context, bdg badge.Badge) (badge.Badge, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.failure("CreateBadge"); err != nil {
		return badge.Badge{}, err
	}
	bdg.ID = newID(bdg.ID)
	db.badges = append(db.badges, bdg)
	return bdg, nil
}

func (db *DB) GetBadge(_ context.Context, id string) (badge.Badge, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if err := db.failure("GetBadge"); err != nil {
		return badge.Badge{}, err
	}
	for _, bdg := range db.badges {
		if bdg.ID == id {
			return bdg, nil
		}
	}
	return badge.Badge{}, badge.ErrNotFound
}

func (db *DB) QueryAllBadges(_ context.Context) ([]badge.Badge, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if err := db.failure("QueryAllBadges"); err != nil {
		return nil, err
	}
	bdgs := make([]badge.Badge, len(db.badges))
	copy(bdgs, db.badges)
	return bdgs, nil
}

func (db *DB) CreateStudentBadge(_ context.Context, sb badge.StudentBadge) (badge.StudentBadge, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.failure("CreateStudentBadge"); err != nil {
		return badge.StudentBadge{}, err
	}
	for _, existing := range db.studentBadges {
		if existing.UserID == sb.UserID && existing.BadgeID == sb.BadgeID && existing.InstitutionID == sb.InstitutionID {
			return badge.StudentBadge{}, badge.ErrExists
		}
	}
	sb.ID = newID(sb.ID)
	db.studentBadges = append(db.studentBadges, sb)
	return sb, nil
}

func (db *DB) QueryStudentBadgesByUser(_ context.Context, userID, institutionID string) ([]badge.StudentBadge, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if err := db.failure("QueryStudentBadgesByUser"); err != nil {
		return nil, err
	}
	sbs := make([]badge.StudentBadge, 0)
	for _, sb := range db.studentBadges {
		if sb.UserID == userID && sb.InstitutionID == institutionID {
			sbs = append(sbs, sb)
		}
	}
	return sbs, nil
}

func (db *DB) QueryStudentBadgesByBadge(_ context.Context, badgeID, institutionID string) ([]badge.StudentBadge, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if err := db.failure("QueryStudentBadgesByBadge"); err != nil {
		return nil, err
	}
	sbs := make([]badge.StudentBadge, 0)
	for _, sb := range db.studentBadges {
		if sb.BadgeID == badgeID && sb.InstitutionID == institutionID {
			sbs = append(sbs, sb)
		}
	}
	return sbs, nil
}
