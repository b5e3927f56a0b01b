package httpapi

import (
	"net/http"

	"github.com/Harsha-bonthu/pt2/internal/service"
)

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	employee, err := h.employees.CreateEmployee(r.Context(), service.CreateEmployeeInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Position:  req.Position,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, employee)
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	employees, err := h.employees.ListEmployees(r.Context(), page)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, employees)
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, err := pathID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	employee, err := h.employees.GetEmployee(r.Context(), employeeID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, employee)
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, err := pathID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	var req updateEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	employee, err := h.employees.UpdateEmployee(r.Context(), employeeID, input)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, employee)
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, err := pathID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	if err := h.employees.DeleteEmployee(r.Context(), employeeID); err != nil {
		h.respondWithError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
