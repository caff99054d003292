package ports

import (
	"context"
	"time"

	"github.com/czarstudio/studio-api/internal/core/domain"
)

// ActivityInput is the DTO queued by services for the audit trail.
type ActivityInput struct {
	ActorID    string
	Action     string
	Resource   string
	ResourceID string
	Detail     string
	At         time.Time
}

// ActivityRecorder accepts audit entries without blocking the caller's
// request on persistence.
type ActivityRecorder interface {
	Enqueue(entry ActivityInput)
}

// ActivityRepository persists audit entries.
type ActivityRepository interface {
	Insert(ctx context.Context, a *domain.Activity) error
}

// ActivityService writes a single audit entry.
type ActivityService interface {
	Record(ctx context.Context, entry ActivityInput) error
}
