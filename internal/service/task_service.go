package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhub/internal/cache"
	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
	"taskhub/internal/validation"
)

const taskListCacheTTL = 2 * time.Minute

// TaskUpdate carries a partial update. Nil fields were omitted by the caller
// and stay untouched; non-nil fields are validated and applied.
type TaskUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
}

// TaskService exposes owner-scoped task operations. Every operation checks
// ownership through the same policy: a missing task is reported as not found
// before ownership is ever examined, so a non-owner cannot probe for the
// existence of other users' tasks by id.
type TaskService interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error)
	Create(ctx context.Context, ownerID uuid.UUID, title string, description *string, completed bool) (*model.Task, error)
	Get(ctx context.Context, ownerID, taskID uuid.UUID) (*model.Task, error)
	Update(ctx context.Context, ownerID, taskID uuid.UUID, update TaskUpdate) (*model.Task, error)
	Delete(ctx context.Context, ownerID, taskID uuid.UUID) error
	Toggle(ctx context.Context, ownerID, taskID uuid.UUID) (*model.Task, error)
}

type taskService struct {
	taskRepo repository.TaskRepository
	cache    *cache.Client
}

// NewTaskService builds a TaskService with repository and cache.
func NewTaskService(taskRepo repository.TaskRepository, cache *cache.Client) TaskService {
	return &taskService{taskRepo: taskRepo, cache: cache}
}

func (s *taskService) listCacheKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("tasks:%s", ownerID)
}

// assertOwner applies the ownership policy to a loaded task. Existence is
// checked first: not-found must win over forbidden.
func assertOwner(task *model.Task, ownerID uuid.UUID) error {
	if task == nil {
		return apperrors.ErrTaskNotFound
	}
	if task.OwnerID != ownerID {
		return apperrors.ErrNotTaskOwner
	}
	return nil
}

// mapFindErr converts a repository lookup failure to the domain taxonomy.
func mapFindErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrTaskNotFound
	}
	return fmt.Errorf("find task: %w", err)
}

// List returns all tasks owned by ownerID, cache-aside.
func (s *taskService) List(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	key := s.listCacheKey(ownerID)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached []model.Task
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	tasks, err := s.taskRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	if payload, err := json.Marshal(tasks); err == nil {
		_ = s.cache.Set(ctx, key, payload, taskListCacheTTL)
	}
	return tasks, nil
}

// Create validates the fields and persists a task stamped with ownerID.
// Titles are stored trimmed.
func (s *taskService) Create(ctx context.Context, ownerID uuid.UUID, title string, description *string, completed bool) (*model.Task, error) {
	title = strings.TrimSpace(title)
	if err := validation.ValidateTitle(title); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := validation.ValidateDescription(description); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	task := &model.Task{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Completed:   completed,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	_ = s.cache.Delete(ctx, s.listCacheKey(ownerID))
	return task, nil
}

// Get returns a single task after the ownership check.
func (s *taskService) Get(ctx context.Context, ownerID, taskID uuid.UUID) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, mapFindErr(err)
	}
	if err := assertOwner(task, ownerID); err != nil {
		return nil, err
	}
	return task, nil
}

// Update applies a partial update. Validation runs only for fields the caller
// provided; existence and ownership are re-verified inside the transaction
// immediately before the write.
func (s *taskService) Update(ctx context.Context, ownerID, taskID uuid.UUID, update TaskUpdate) (*model.Task, error) {
	if update.Title != nil {
		trimmed := strings.TrimSpace(*update.Title)
		if err := validation.ValidateTitle(trimmed); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		update.Title = &trimmed
	}
	if update.Description != nil {
		if err := validation.ValidateDescription(update.Description); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}

	var updated *model.Task
	err := s.taskRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.TaskRepository) error {
		task, err := repo.FindByID(ctx, taskID)
		if err != nil {
			return mapFindErr(err)
		}
		if err := assertOwner(task, ownerID); err != nil {
			return err
		}

		if update.Title != nil {
			task.Title = *update.Title
		}
		if update.Description != nil {
			task.Description = update.Description
		}
		if update.Completed != nil {
			task.Completed = *update.Completed
		}

		if err := repo.Update(ctx, task); err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, s.listCacheKey(ownerID))
	return updated, nil
}

// Delete removes a task after re-verifying existence and ownership in the
// same transaction. Deleting an already-deleted id reports not found.
func (s *taskService) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	err := s.taskRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.TaskRepository) error {
		task, err := repo.FindByID(ctx, taskID)
		if err != nil {
			return mapFindErr(err)
		}
		if err := assertOwner(task, ownerID); err != nil {
			return err
		}
		if err := repo.Delete(ctx, task); err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, s.listCacheKey(ownerID))
	return nil
}

// Toggle flips the completed flag and nothing else.
func (s *taskService) Toggle(ctx context.Context, ownerID, taskID uuid.UUID) (*model.Task, error) {
	var toggled *model.Task
	err := s.taskRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.TaskRepository) error {
		task, err := repo.FindByID(ctx, taskID)
		if err != nil {
			return mapFindErr(err)
		}
		if err := assertOwner(task, ownerID); err != nil {
			return err
		}

		task.Completed = !task.Completed
		if err := repo.Update(ctx, task); err != nil {
			return fmt.Errorf("toggle task: %w", err)
		}
		toggled = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, s.listCacheKey(ownerID))
	return toggled, nil
}
