package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhive/taskhive/internal/core/domain"
	"github.com/taskhive/taskhive/internal/core/ports"
)

type TaskService struct {
	repo   ports.TaskRepository
	logger zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, logger: logger}
}

// List returns the owner's tasks matching filter plus the full active and
// completed subsets for summary counts. An empty ownerID is an anonymous
// caller and yields empty lists rather than an error.
func (s *TaskService) List(ctx context.Context, ownerID string, filter domain.Filter) (*ports.TaskListResult, error) {
	if ownerID == "" {
		return &ports.TaskListResult{
			Tasks:     []*domain.Task{},
			Active:    []*domain.Task{},
			Completed: []*domain.Task{},
			Filter:    domain.FilterAll,
		}, nil
	}

	all, err := s.repo.List(ctx, ownerID, nil)
	if err != nil {
		return nil, err
	}

	active := make([]*domain.Task, 0, len(all))
	completed := make([]*domain.Task, 0, len(all))
	for _, t := range all {
		if t.Completed {
			completed = append(completed, t)
		} else {
			active = append(active, t)
		}
	}

	result := &ports.TaskListResult{
		Active:    active,
		Completed: completed,
		Filter:    filter,
	}
	switch filter {
	case domain.FilterActive:
		result.Tasks = active
	case domain.FilterCompleted:
		result.Tasks = completed
	default:
		result.Tasks = all
	}
	return result, nil
}

// Add creates a task owned by ownerID. Both fields must be non-empty; the
// check is on the raw submitted value, untrimmed, so whitespace-only input
// passes.
func (s *TaskService) Add(ctx context.Context, ownerID string, input ports.TaskInput) (*domain.Task, error) {
	if input.Title == "" || input.Description == "" {
		return nil, domain.ErrFieldsRequired
	}

	task := &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		Completed:   false,
		OwnerID:     ownerID,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Str("task_id", created.ID).Str("owner_id", ownerID).Msg("task created")
	return created, nil
}

// Get retrieves a single task scoped to ownerID.
func (s *TaskService) Get(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	return s.repo.FindByID(ctx, taskID, ownerID)
}

// Toggle flips the completed flag of the owner's task and persists it.
func (s *TaskService) Toggle(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, taskID, ownerID)
	if err != nil {
		return nil, err
	}

	task.Completed = !task.Completed
	if err := s.repo.Update(ctx, task); err != nil {
		s.logger.Error().Err(err).Str("task_id", taskID).Msg("failed to toggle task")
		return nil, err
	}

	s.logger.Info().Str("task_id", taskID).Bool("completed", task.Completed).Msg("task toggled")
	return task, nil
}

// Edit overwrites the title and description of the owner's task. Both fields
// must be non-empty (untrimmed, same rule as Add); an invalid submission
// leaves the task unchanged.
func (s *TaskService) Edit(ctx context.Context, ownerID, taskID string, input ports.TaskInput) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, taskID, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Title == "" || input.Description == "" {
		return task, domain.ErrFieldsRequired
	}

	task.Title = input.Title
	task.Description = input.Description
	if err := s.repo.Update(ctx, task); err != nil {
		s.logger.Error().Err(err).Str("task_id", taskID).Msg("failed to edit task")
		return nil, err
	}

	s.logger.Info().Str("task_id", taskID).Msg("task edited")
	return task, nil
}

// Delete removes the owner's task. The ownership check is the lookup itself:
// a foreign id yields domain.ErrTaskNotFound and nothing is deleted.
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) error {
	if _, err := s.repo.FindByID(ctx, taskID, ownerID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, taskID, ownerID); err != nil {
		s.logger.Error().Err(err).Str("task_id", taskID).Msg("failed to delete task")
		return err
	}

	s.logger.Info().Str("task_id", taskID).Str("owner_id", ownerID).Msg("task deleted")
	return nil
}

// ClearCompleted deletes all of the owner's completed tasks. Idempotent; a
// no-op when none match.
func (s *TaskService) ClearCompleted(ctx context.Context, ownerID string) (int64, error) {
	n, err := s.repo.DeleteCompleted(ctx, ownerID)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to clear completed tasks")
		return 0, err
	}

	if n > 0 {
		s.logger.Info().Int64("count", n).Str("owner_id", ownerID).Msg("completed tasks cleared")
	}
	return n, nil
}
