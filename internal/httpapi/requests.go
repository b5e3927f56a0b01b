package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Harsha-bonthu/pt2/internal/service"
)

type createEmployeeRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Position  *string `json:"position"`
}

type updateEmployeeRequest struct {
	FirstName optional[string] `json:"first_name"`
	LastName  optional[string] `json:"last_name"`
	Email     optional[string] `json:"email"`
	Position  optional[string] `json:"position"`
}

type createTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	EmployeeID  *uint   `json:"employee_id"`
}

type updateTaskRequest struct {
	Title       optional[string] `json:"title"`
	Description optional[string] `json:"description"`
	Status      optional[string] `json:"status"`
	EmployeeID  optional[uint]   `json:"employee_id"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r updateEmployeeRequest) toInput() (service.UpdateEmployeeInput, error) {
	firstName, err := r.FirstName.required("first_name")
	if err != nil {
		return service.UpdateEmployeeInput{}, err
	}
	lastName, err := r.LastName.required("last_name")
	if err != nil {
		return service.UpdateEmployeeInput{}, err
	}
	email, err := r.Email.required("email")
	if err != nil {
		return service.UpdateEmployeeInput{}, err
	}

	return service.UpdateEmployeeInput{
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		PositionSet: r.Position.Set,
		Position:    r.Position.Value,
	}, nil
}

func (r updateTaskRequest) toInput() (service.UpdateTaskInput, error) {
	title, err := r.Title.required("title")
	if err != nil {
		return service.UpdateTaskInput{}, err
	}
	status, err := r.Status.required("status")
	if err != nil {
		return service.UpdateTaskInput{}, err
	}

	return service.UpdateTaskInput{
		Title:          title,
		DescriptionSet: r.Description.Set,
		Description:    r.Description.Value,
		Status:         status,
		EmployeeIDSet:  r.EmployeeID.Set,
		EmployeeID:     r.EmployeeID.Value,
	}, nil
}

// optional distinguishes an absent key (Set false) from an explicit null
// (Set true, Value nil).
type optional[T any] struct {
	Set   bool
	Value *T
}

func (o *optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	o.Value = &value
	return nil
}

// required rejects an explicit null for a field that cannot be cleared.
func (o optional[T]) required(field string) (*T, error) {
	if o.Set && o.Value == nil {
		return nil, fmt.Errorf("%s must not be null", field)
	}
	return o.Value, nil
}
