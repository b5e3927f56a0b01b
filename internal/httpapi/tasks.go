package httpapi

import (
	"net/http"

	"github.com/Harsha-bonthu/pt2/internal/service"
)

func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		EmployeeID:  req.EmployeeID,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	employeeID, err := parseOptionalUint(r.URL.Query().Get("employee_id"), "employee_id")
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	tasks, err := h.tasks.ListTasks(r.Context(), service.ListTasksInput{
		Page:       page,
		EmployeeID: employeeID,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

func (h *Handler) handleGetTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	task, err := h.tasks.GetTask(r.Context(), taskID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *Handler) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	var req updateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	task, err := h.tasks.UpdateTask(r.Context(), taskID, input)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *Handler) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	if err := h.tasks.DeleteTask(r.Context(), taskID); err != nil {
		h.respondWithError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
