package store

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Harsha-bonthu/pt2/internal/models"
)

func (s *Store) CreateEmployee(ctx context.Context, employee *models.Employee) error {
	if err := s.db.WithContext(ctx).Omit("Tasks").Create(employee).Error; err != nil {
		return errors.Wrap(err, "insert employee")
	}
	if employee.Tasks == nil {
		employee.Tasks = []models.Task{}
	}
	return nil
}

func (s *Store) GetEmployee(ctx context.Context, id uint) (*models.Employee, error) {
	employee, err := first(s.employeesWithTasks(ctx).Where("id = ?", id), &models.Employee{})
	if err != nil {
		return nil, errors.Wrap(err, "load employee")
	}
	return employee, nil
}

func (s *Store) EmployeeByEmail(ctx context.Context, email string) (*models.Employee, error) {
	employee, err := first(s.db.WithContext(ctx).Where("email = ?", email), &models.Employee{})
	if err != nil {
		return nil, errors.Wrap(err, "load employee by email")
	}
	return employee, nil
}

func (s *Store) EmployeeExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Employee{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "check employee existence")
	}
	return count > 0, nil
}

func (s *Store) CountEmployees(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Employee{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count employees")
	}
	return count, nil
}

func (s *Store) ListEmployees(ctx context.Context, offset, limit int) ([]models.Employee, error) {
	employees := []models.Employee{}
	if limit == 0 {
		return employees, nil
	}

	if err := s.employeesWithTasks(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&employees).Error; err != nil {
		return nil, errors.Wrap(err, "list employees")
	}
	return employees, nil
}

// UpdateEmployee writes only the columns present in changes and returns the
// reloaded record.
func (s *Store) UpdateEmployee(ctx context.Context, employee *models.Employee, changes map[string]interface{}) (*models.Employee, error) {
	if len(changes) > 0 {
		if err := s.db.WithContext(ctx).
			Model(&models.Employee{}).
			Where("id = ?", employee.ID).
			Updates(changes).Error; err != nil {
			return nil, errors.Wrap(err, "update employee")
		}
	}

	updated, err := s.GetEmployee(ctx, employee.ID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, errors.Errorf("employee %d vanished during update", employee.ID)
	}
	return updated, nil
}

// DeleteEmployee removes the employee and every task it owns atomically.
func (s *Store) DeleteEmployee(ctx context.Context, employee *models.Employee) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", employee.ID).Delete(&models.Task{}).Error; err != nil {
			return errors.Wrap(err, "delete employee tasks")
		}
		if err := tx.Delete(&models.Employee{}, employee.ID).Error; err != nil {
			return errors.Wrap(err, "delete employee")
		}
		return nil
	})
}

func (s *Store) employeesWithTasks(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Tasks", func(db *gorm.DB) *gorm.DB {
		return db.Order("tasks.id ASC")
	})
}
