package service

import (
	"context"
	"time"
)

const (
	DefaultListLimit = 100
	// MaxListLimit mirrors the max on Page.Limit.
	MaxListLimit = 1000
)

type Page struct {
	Offset int `json:"skip" validate:"min=0"`
	Limit  int `json:"limit" validate:"min=0,max=1000"`
}

type CreateEmployeeInput struct {
	FirstName string  `json:"first_name" validate:"required,max=100"`
	LastName  string  `json:"last_name" validate:"required,max=100"`
	Email     string  `json:"email" validate:"required,email,max=200"`
	Position  *string `json:"position" validate:"omitnil,max=100"`
}

// UpdateEmployeeInput carries only the fields to change. A nil pointer
// leaves the field untouched; PositionSet with a nil Position clears it.
type UpdateEmployeeInput struct {
	FirstName   *string `json:"first_name" validate:"omitnil,min=1,max=100"`
	LastName    *string `json:"last_name" validate:"omitnil,min=1,max=100"`
	Email       *string `json:"email" validate:"omitnil,email,max=200"`
	PositionSet bool    `json:"-"`
	Position    *string `json:"position" validate:"omitnil,max=100"`
}

type CreateTaskInput struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitnil,max=50"`
	EmployeeID  *uint   `json:"employee_id"`
}

type UpdateTaskInput struct {
	Title          *string `json:"title" validate:"omitnil,min=1,max=200"`
	DescriptionSet bool    `json:"-"`
	Description    *string `json:"description"`
	Status         *string `json:"status" validate:"omitnil,max=50"`
	EmployeeIDSet  bool    `json:"-"`
	EmployeeID     *uint   `json:"employee_id"`
}

type ListTasksInput struct {
	Page
	EmployeeID *uint
}

type TaskDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	EmployeeID  *uint     `json:"employee_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type EmployeeDTO struct {
	ID        uint      `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Position  *string   `json:"position"`
	Tasks     []TaskDTO `json:"tasks"`
}

type EmployeeManager interface {
	CreateEmployee(ctx context.Context, input CreateEmployeeInput) (EmployeeDTO, error)
	GetEmployee(ctx context.Context, employeeID uint) (EmployeeDTO, error)
	ListEmployees(ctx context.Context, page Page) ([]EmployeeDTO, error)
	UpdateEmployee(ctx context.Context, employeeID uint, input UpdateEmployeeInput) (EmployeeDTO, error)
	DeleteEmployee(ctx context.Context, employeeID uint) error
}

type TaskManager interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (TaskDTO, error)
	GetTask(ctx context.Context, taskID uint) (TaskDTO, error)
	ListTasks(ctx context.Context, input ListTasksInput) ([]TaskDTO, error)
	UpdateTask(ctx context.Context, taskID uint, input UpdateTaskInput) (TaskDTO, error)
	DeleteTask(ctx context.Context, taskID uint) error
}
