package user

import (
	"context"
	"strings"
	"time"

	"github.com/trezcool/masomo-lms/core"
)

var ErrNotFound = core.NewNotFoundError("user not found")

// Roles
const (
	// Admin
	RoleAdmin          = "admin:"
	RoleAdminOwner     = "admin:owner"
	RoleAdminPrincipal = "admin:principal"

	// Teacher
	RoleTeacher = "teacher:"

	// Student
	RoleStudent = "student:"
)

var (
	AdminRoles = []string{RoleAdmin, RoleAdminOwner, RoleAdminPrincipal}

	rolePriorities = map[string]int{
		// Admins: 30 - 21
		RoleAdminOwner:     30,
		RoleAdminPrincipal: 29,
		RoleAdmin:          21,

		// Teachers: 20 - 11
		RoleTeacher: 11,

		// Students: 10 - 1
		RoleStudent: 1,
	}
)

func RolePriority(role string) int {
	return rolePriorities[role]
}

func MaxRolePriority(roles []string) int {
	var max int
	for _, role := range roles {
		if RolePriority(role) > max {
			max = RolePriority(role)
		}
	}
	return max
}

// HasAdminRole reports whether one of roles grants admin privileges.
func HasAdminRole(roles []string) bool {
	return MaxRolePriority(roles) >= rolePriorities[RoleAdmin]
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

func (u User) RoleStartsWith(prefix string) bool {
	for _, role := range u.Roles {
		if strings.HasPrefix(role, prefix) {
			return true
		}
	}
	return false
}

func (u User) IsAdmin() bool {
	return u.RoleStartsWith(RoleAdmin)
}

func (u User) IsStudent() bool {
	return u.RoleStartsWith(RoleStudent)
}

// LogUser returns the identity attached to log entries concerning u.
func (u User) LogUser() core.User {
	return core.User{ID: u.ID, Username: u.Username, Email: u.Email}
}

type Repository interface {
	// GetUser returns ErrNotFound when no user has the given id.
	GetUser(ctx context.Context, id string) (User, error)
}
