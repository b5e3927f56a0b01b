// Package seed fills an empty database with a couple of sample records for
// local demos.
package seed

import (
	"context"

	"github.com/Harsha-bonthu/pt2/internal/models"
	"github.com/Harsha-bonthu/pt2/internal/store"
)

type sample struct {
	employee models.Employee
	task     models.Task
}

func samples() []sample {
	engineer, manager := "Engineer", "Manager"
	setup, planning := "Initial project setup and scaffolding", "Define stories for next sprint"

	return []sample{
		{
			employee: models.Employee{FirstName: "Alice", LastName: "Anderson", Email: "alice@example.com", Position: &engineer},
			task:     models.Task{Title: "Setup project", Description: &setup, Status: "done"},
		},
		{
			employee: models.Employee{FirstName: "Bob", LastName: "Brown", Email: "bob@example.com", Position: &manager},
			task:     models.Task{Title: "Plan sprint", Description: &planning, Status: models.DefaultTaskStatus},
		},
	}
}

// Run inserts the samples in one transaction unless employees already
// exist. It reports whether anything was written.
func Run(ctx context.Context, st *store.Store) (bool, error) {
	seeded := false
	err := st.Transaction(ctx, func(tx *store.Store) error {
		count, err := tx.CountEmployees(ctx)
		if err != nil || count > 0 {
			return err
		}

		for _, s := range samples() {
			employee := s.employee
			if err := tx.CreateEmployee(ctx, &employee); err != nil {
				return err
			}
			task := s.task
			task.EmployeeID = &employee.ID
			if err := tx.CreateTask(ctx, &task); err != nil {
				return err
			}
		}
		seeded = true
		return nil
	})
	return seeded, err
}
