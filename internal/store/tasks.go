package store

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Harsha-bonthu/pt2/internal/models"
)

type TaskFilter struct {
	Offset     int
	Limit      int
	EmployeeID *uint
}

func (s *Store) CreateTask(ctx context.Context, task *models.Task) error {
	if err := s.db.WithContext(ctx).Create(task).Error; err != nil {
		return errors.Wrap(err, "insert task")
	}
	return nil
}

func (s *Store) GetTask(ctx context.Context, id uint) (*models.Task, error) {
	task, err := first(s.db.WithContext(ctx).Where("id = ?", id), &models.Task{})
	if err != nil {
		return nil, errors.Wrap(err, "load task")
	}
	return task, nil
}

func (s *Store) ListTasks(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	tasks := []models.Task{}
	if filter.Limit == 0 {
		return tasks, nil
	}

	query := s.db.WithContext(ctx).Model(&models.Task{})
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}

	if err := query.
		Order("id ASC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&tasks).Error; err != nil {
		return nil, errors.Wrap(err, "list tasks")
	}
	return tasks, nil
}

// UpdateTask writes only the columns present in changes and returns the
// reloaded record.
func (s *Store) UpdateTask(ctx context.Context, task *models.Task, changes map[string]interface{}) (*models.Task, error) {
	if len(changes) > 0 {
		if err := s.db.WithContext(ctx).
			Model(&models.Task{}).
			Where("id = ?", task.ID).
			Updates(changes).Error; err != nil {
			return nil, errors.Wrap(err, "update task")
		}
	}

	updated, err := s.GetTask(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, errors.Errorf("task %d vanished during update", task.ID)
	}
	return updated, nil
}

func (s *Store) DeleteTask(ctx context.Context, task *models.Task) error {
	if err := s.db.WithContext(ctx).Delete(&models.Task{}, task.ID).Error; err != nil {
		return errors.Wrap(err, "delete task")
	}
	return nil
}
