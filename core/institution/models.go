package institution

import (
	"context"
	"time"

	"github.com/trezcool/masomo-lms/core"
)

var ErrNotFound = core.NewNotFoundError("institution not found")

// Settings holds an institution's navigation policy.
type Settings struct {
	// RequireSequentialProgress gates never-visited lessons behind the completion of every earlier lesson.
	RequireSequentialProgress bool `json:"require_sequential_progress"`
	// AllowSkipLesson turns a sequential block into an explicit skip.
	AllowSkipLesson bool `json:"allow_skip_lesson"`
}

type Institution struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Settings  Settings  `json:"settings"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

type Repository interface {
	// GetInstitution returns ErrNotFound when no institution has the given id.
	GetInstitution(ctx context.Context, id string) (Institution, error)
}
