package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/masomo-lms/core/user"
)

type userRow struct {
	ID        string         `db:"id"`
	Name      string         `db:"name"`
	Username  null.String    `db:"username"`
	Email     null.String    `db:"email"`
	IsActive  bool           `db:"is_active"`
	Roles     pq.StringArray `db:"roles"`
	CreatedAt time.Time      `db:"created_at"`
}

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{db: db}
}

func (repo userRepository) GetUser(ctx context.Context, id string) (user.User, error) {
	var row userRow
	q := `SELECT "id", "name", "username", "email", "is_active", "roles", "created_at" FROM "user" WHERE "id" = $1`
	if err := repo.db.GetContext(ctx, &row, q, id); err != nil {
		return user.User{}, trapNoRowsErr(err, user.ErrNotFound, "getting user")
	}
	return user.User{
		ID:        row.ID,
		Name:      row.Name,
		Username:  row.Username.String,
		Email:     row.Email.String,
		IsActive:  row.IsActive,
		Roles:     row.Roles,
		CreatedAt: row.CreatedAt.UTC(),
	}, nil
}
