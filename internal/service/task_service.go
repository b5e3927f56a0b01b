package service

import (
	"context"
	"strings"

	"github.com/Harsha-bonthu/pt2/internal/apperror"
	"github.com/Harsha-bonthu/pt2/internal/models"
	"github.com/Harsha-bonthu/pt2/internal/store"
)

var (
	errTaskNotFound     = apperror.New(apperror.CodeNotFound, "task not found")
	errAssigneeNotFound = apperror.New(apperror.CodeInvalidReference, "assigned employee not found")
)

type TaskService struct {
	store *store.Store
}

func NewTaskService(st *store.Store) *TaskService {
	return &TaskService{store: st}
}

func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (TaskDTO, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = trimPtr(input.Description)
	input.Status = trimPtr(input.Status)
	if err := validateStruct(input); err != nil {
		return TaskDTO{}, err
	}

	status := models.DefaultTaskStatus
	if input.Status != nil && *input.Status != "" {
		status = *input.Status
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		EmployeeID:  input.EmployeeID,
	}

	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		if input.EmployeeID != nil {
			if err := ensureAssigneeExists(ctx, tx, *input.EmployeeID); err != nil {
				return err
			}
		}
		return tx.CreateTask(ctx, task)
	})
	if err != nil {
		return TaskDTO{}, mapDatabaseError(err)
	}

	return taskToDTO(*task), nil
}

func (s *TaskService) GetTask(ctx context.Context, taskID uint) (TaskDTO, error) {
	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return TaskDTO{}, err
	}
	if task == nil {
		return TaskDTO{}, errTaskNotFound
	}
	return taskToDTO(*task), nil
}

func (s *TaskService) ListTasks(ctx context.Context, input ListTasksInput) ([]TaskDTO, error) {
	if err := validateStruct(input.Page); err != nil {
		return nil, err
	}

	tasks, err := s.store.ListTasks(ctx, store.TaskFilter{
		Offset:     input.Offset,
		Limit:      input.Limit,
		EmployeeID: input.EmployeeID,
	})
	if err != nil {
		return nil, err
	}

	result := make([]TaskDTO, 0, len(tasks))
	for _, task := range tasks {
		result = append(result, taskToDTO(task))
	}
	return result, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, taskID uint, input UpdateTaskInput) (TaskDTO, error) {
	input.Title = trimPtr(input.Title)
	input.Description = trimPtr(input.Description)
	input.Status = trimPtr(input.Status)
	if err := validateStruct(input); err != nil {
		return TaskDTO{}, err
	}

	changes := map[string]interface{}{}
	if input.Title != nil {
		changes["title"] = *input.Title
	}
	if input.DescriptionSet {
		changes["description"] = nullable(input.Description)
	}
	if input.Status != nil {
		changes["status"] = *input.Status
	}
	if input.EmployeeIDSet {
		changes["employee_id"] = nullable(input.EmployeeID)
	}

	var updated *models.Task
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		task, err := tx.GetTask(ctx, taskID)
		if err != nil {
			return err
		}
		if task == nil {
			return errTaskNotFound
		}

		if input.EmployeeIDSet && input.EmployeeID != nil {
			if err := ensureAssigneeExists(ctx, tx, *input.EmployeeID); err != nil {
				return err
			}
		}

		updated, err = tx.UpdateTask(ctx, task, changes)
		return err
	})
	if err != nil {
		return TaskDTO{}, mapDatabaseError(err)
	}

	return taskToDTO(*updated), nil
}

func (s *TaskService) DeleteTask(ctx context.Context, taskID uint) error {
	return s.store.Transaction(ctx, func(tx *store.Store) error {
		task, err := tx.GetTask(ctx, taskID)
		if err != nil {
			return err
		}
		if task == nil {
			return errTaskNotFound
		}
		return tx.DeleteTask(ctx, task)
	})
}

func ensureAssigneeExists(ctx context.Context, tx *store.Store, employeeID uint) error {
	exists, err := tx.EmployeeExists(ctx, employeeID)
	if err != nil {
		return err
	}
	if !exists {
		return errAssigneeNotFound
	}
	return nil
}

func taskToDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		EmployeeID:  task.EmployeeID,
		CreatedAt:   task.CreatedAt,
	}
}
