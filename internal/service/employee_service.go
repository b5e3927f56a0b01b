package service

import (
	"context"
	"strings"

	"github.com/Harsha-bonthu/pt2/internal/apperror"
	"github.com/Harsha-bonthu/pt2/internal/models"
	"github.com/Harsha-bonthu/pt2/internal/store"
)

var (
	errEmployeeNotFound = apperror.New(apperror.CodeNotFound, "employee not found")
	errEmailTaken       = apperror.New(apperror.CodeConflict, "email already registered")
)

type EmployeeService struct {
	store *store.Store
}

func NewEmployeeService(st *store.Store) *EmployeeService {
	return &EmployeeService{store: st}
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, input CreateEmployeeInput) (EmployeeDTO, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.TrimSpace(input.Email)
	input.Position = trimPtr(input.Position)
	if err := validateStruct(input); err != nil {
		return EmployeeDTO{}, err
	}

	email := normalizeEmail(input.Email)
	employee := &models.Employee{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     email,
		Position:  input.Position,
	}

	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		if err := ensureEmailFree(ctx, tx, email, 0); err != nil {
			return err
		}
		return tx.CreateEmployee(ctx, employee)
	})
	if err != nil {
		return EmployeeDTO{}, mapDatabaseError(err)
	}

	return employeeToDTO(*employee), nil
}

func (s *EmployeeService) GetEmployee(ctx context.Context, employeeID uint) (EmployeeDTO, error) {
	employee, err := s.store.GetEmployee(ctx, employeeID)
	if err != nil {
		return EmployeeDTO{}, err
	}
	if employee == nil {
		return EmployeeDTO{}, errEmployeeNotFound
	}
	return employeeToDTO(*employee), nil
}

func (s *EmployeeService) ListEmployees(ctx context.Context, page Page) ([]EmployeeDTO, error) {
	if err := validateStruct(page); err != nil {
		return nil, err
	}

	employees, err := s.store.ListEmployees(ctx, page.Offset, page.Limit)
	if err != nil {
		return nil, err
	}

	result := make([]EmployeeDTO, 0, len(employees))
	for _, employee := range employees {
		result = append(result, employeeToDTO(employee))
	}
	return result, nil
}

func (s *EmployeeService) UpdateEmployee(ctx context.Context, employeeID uint, input UpdateEmployeeInput) (EmployeeDTO, error) {
	input.FirstName = trimPtr(input.FirstName)
	input.LastName = trimPtr(input.LastName)
	input.Email = trimPtr(input.Email)
	input.Position = trimPtr(input.Position)
	if err := validateStruct(input); err != nil {
		return EmployeeDTO{}, err
	}

	changes := map[string]interface{}{}
	if input.FirstName != nil {
		changes["first_name"] = *input.FirstName
	}
	if input.LastName != nil {
		changes["last_name"] = *input.LastName
	}
	var newEmail *string
	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		newEmail = &email
		changes["email"] = email
	}
	if input.PositionSet {
		changes["position"] = nullable(input.Position)
	}

	var updated *models.Employee
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		employee, err := tx.GetEmployee(ctx, employeeID)
		if err != nil {
			return err
		}
		if employee == nil {
			return errEmployeeNotFound
		}

		if newEmail != nil && *newEmail != employee.Email {
			if err := ensureEmailFree(ctx, tx, *newEmail, employee.ID); err != nil {
				return err
			}
		}

		updated, err = tx.UpdateEmployee(ctx, employee, changes)
		return err
	})
	if err != nil {
		return EmployeeDTO{}, mapDatabaseError(err)
	}

	return employeeToDTO(*updated), nil
}

func (s *EmployeeService) DeleteEmployee(ctx context.Context, employeeID uint) error {
	return s.store.Transaction(ctx, func(tx *store.Store) error {
		employee, err := tx.GetEmployee(ctx, employeeID)
		if err != nil {
			return err
		}
		if employee == nil {
			return errEmployeeNotFound
		}
		return tx.DeleteEmployee(ctx, employee)
	})
}

// ensureEmailFree fails with a conflict when email belongs to a record
// other than exceptID.
func ensureEmailFree(ctx context.Context, tx *store.Store, email string, exceptID uint) error {
	existing, err := tx.EmployeeByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != exceptID {
		return errEmailTaken
	}
	return nil
}

func employeeToDTO(employee models.Employee) EmployeeDTO {
	tasks := make([]TaskDTO, 0, len(employee.Tasks))
	for _, task := range employee.Tasks {
		tasks = append(tasks, taskToDTO(task))
	}

	return EmployeeDTO{
		ID:        employee.ID,
		FirstName: employee.FirstName,
		LastName:  employee.LastName,
		Email:     employee.Email,
		Position:  employee.Position,
		Tasks:     tasks,
	}
}
