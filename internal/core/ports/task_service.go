package ports

import (
	"context"

	"github.com/taskhive/taskhive/internal/core/domain"
)

// TaskListResult carries everything the list view renders: the tasks matching
// the requested filter plus the full active and completed subsets used for
// summary counts.
type TaskListResult struct {
	Tasks     []*domain.Task
	Active    []*domain.Task
	Completed []*domain.Task
	Filter    domain.Filter
}

// TaskInput carries the form fields for creating or editing a task. Values are
// used exactly as submitted; no whitespace trimming is applied.
type TaskInput struct {
	Title       string
	Description string
}

// TaskService defines use-case operations for tasks. Every operation except
// List requires a non-empty ownerID; List treats an empty ownerID as an
// anonymous caller and returns empty lists.
type TaskService interface {
	List(ctx context.Context, ownerID string, filter domain.Filter) (*TaskListResult, error)
	Add(ctx context.Context, ownerID string, input TaskInput) (*domain.Task, error)
	Get(ctx context.Context, ownerID, taskID string) (*domain.Task, error)
	Toggle(ctx context.Context, ownerID, taskID string) (*domain.Task, error)
	Edit(ctx context.Context, ownerID, taskID string, input TaskInput) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, taskID string) error
	ClearCompleted(ctx context.Context, ownerID string) (int64, error)
}
