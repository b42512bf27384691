package controllers

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/adamanr/workflow_portal/internal/database"
	"github.com/adamanr/workflow_portal/internal/entity"
)

type TaskController struct {
	deps *Dependens
}

func NewTaskController(deps *Dependens) *TaskController {
	return &TaskController{
		deps: deps,
	}
}

// GetTasks returns the tasks owned by the session's employee.
func (c *TaskController) GetTasks(s *Session) []entity.Task {
	return s.Workspace.Tasks.List(func(t entity.Task) bool {
		return t.OwnerID == s.Identity.EmployeeID
	})
}

func (c *TaskController) CreateTask(s *Session, req entity.CreateTaskRequest) (*entity.Task, error) {
	if err := c.deps.Validator.Struct(req); err != nil {
		c.deps.Logger.Warn("Invalid task", slog.String("error", err.Error()))
		return nil, err
	}

	task := s.Workspace.Tasks.Insert(func(id uint64) entity.Task {
		return entity.Task{
			ID:          id,
			OwnerID:     s.Identity.EmployeeID,
			Title:       req.Title,
			Description: req.Description,
			Status:      entity.TaskPending,
			Priority:    req.Priority,
			DueDate:     req.DueDate,
		}
	})

	c.deps.recordActivity(s, entity.ActivityTask, fmt.Sprintf("Task created: %s", task.Title))

	return &task, nil
}

// GetTask returns one of the session's own tasks. Other owners' tasks read as not found.
func (c *TaskController) GetTask(s *Session, id uint64) (*entity.Task, error) {
	task, ok := s.Workspace.Tasks.Get(id)
	if !ok || task.OwnerID != s.Identity.EmployeeID {
		return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}

	return &task, nil
}

// UpdateTaskStatus moves a task between statuses. Completed tasks stay completed.
func (c *TaskController) UpdateTaskStatus(s *Session, id uint64, req entity.UpdateTaskRequest) (*entity.Task, error) {
	if err := c.deps.Validator.Struct(req); err != nil {
		c.deps.Logger.Warn("Invalid task update", slog.String("error", err.Error()))
		return nil, err
	}

	task, err := s.Workspace.Tasks.Update(id, func(t entity.Task) (entity.Task, error) {
		if t.OwnerID != s.Identity.EmployeeID {
			return t, database.ErrRecordNotFound
		}
		if t.Status == entity.TaskCompleted && req.Status != entity.TaskCompleted {
			return t, fmt.Errorf("task %d is completed: %w", id, ErrInvalidTransition)
		}

		t.Status = req.Status
		return t, nil
	})
	if err != nil {
		if errors.Is(err, database.ErrRecordNotFound) {
			c.deps.Logger.Warn("Task not found", slog.Uint64("id", id))
			return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
		}

		c.deps.Logger.Warn("Error updating task", slog.String("error", err.Error()))
		return nil, err
	}

	return &task, nil
}
