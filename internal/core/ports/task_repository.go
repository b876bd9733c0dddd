package ports

import (
	"context"

	"github.com/taskhive/taskhive/internal/core/domain"
)

// TaskRepository defines persistence operations for tasks. Every lookup is
// parameterized by ownerID; a task id belonging to a different account is
// indistinguishable from a missing one and yields domain.ErrTaskNotFound.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	// FindByID retrieves a task by id, scoped to ownerID.
	FindByID(ctx context.Context, id, ownerID string) (*domain.Task, error)
	// List returns all tasks for ownerID. When completed is non-nil the result
	// is additionally filtered by completion state. Order follows insertion.
	List(ctx context.Context, ownerID string, completed *bool) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id, ownerID string) error
	// DeleteCompleted removes all of ownerID's completed tasks and reports how
	// many were removed. A zero count is not an error.
	DeleteCompleted(ctx context.Context, ownerID string) (int64, error)
}
