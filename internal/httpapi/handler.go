package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Harsha-bonthu/pt2/internal/apperror"
	"github.com/Harsha-bonthu/pt2/internal/auth"
	"github.com/Harsha-bonthu/pt2/internal/service"
)

// Authenticator is the part of the auth gate the HTTP layer depends on.
type Authenticator interface {
	Login(username, password string) (auth.Token, error)
	VerifyToken(raw string) (string, error)
}

type Handler struct {
	employees service.EmployeeManager
	tasks     service.TaskManager
	auth      Authenticator
	logger    *logrus.Logger
}

func NewHandler(employees service.EmployeeManager, tasks service.TaskManager, authenticator Authenticator, logger *logrus.Logger) *Handler {
	return &Handler{
		employees: employees,
		tasks:     tasks,
		auth:      authenticator,
		logger:    logger,
	}
}

// Routes registers every endpoint. Mutating routes sit behind the bearer
// token check, which runs before the body is read.
func (h *Handler) Routes() *mux.Router {
	router := mux.NewRouter()
	protected := requireToken(h.auth)

	router.HandleFunc("/employees", h.handleListEmployees).Methods(http.MethodGet)
	router.Handle("/employees", protected(http.HandlerFunc(h.handleCreateEmployee))).Methods(http.MethodPost)
	router.HandleFunc("/employees/{id}", h.handleGetEmployee).Methods(http.MethodGet)
	router.Handle("/employees/{id}", protected(http.HandlerFunc(h.handleUpdateEmployee))).Methods(http.MethodPut)
	router.Handle("/employees/{id}", protected(http.HandlerFunc(h.handleDeleteEmployee))).Methods(http.MethodDelete)

	router.HandleFunc("/tasks", h.handleListTasks).Methods(http.MethodGet)
	router.Handle("/tasks", protected(http.HandlerFunc(h.handleCreateTask))).Methods(http.MethodPost)
	router.HandleFunc("/tasks/{id}", h.handleGetTask).Methods(http.MethodGet)
	router.Handle("/tasks/{id}", protected(http.HandlerFunc(h.handleUpdateTask))).Methods(http.MethodPut)
	router.Handle("/tasks/{id}", protected(http.HandlerFunc(h.handleDeleteTask))).Methods(http.MethodDelete)

	router.HandleFunc("/token", h.handleLogin).Methods(http.MethodPost)
	router.HandleFunc("/health", handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/favicon.ico", handleFavicon).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return router
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSONLenient(r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	token, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		h.logger.WithField("username", req.Username).Warn("rejected login attempt")
		h.respondWithError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, token)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleFavicon(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondWithError(w http.ResponseWriter, err error) {
	switch apperror.GetCode(err) {
	case apperror.CodeValidation:
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case apperror.CodeInvalidReference, apperror.CodeConflict:
		writeError(w, http.StatusBadRequest, err.Error())
	case apperror.CodeUnauthenticated:
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, http.StatusUnauthorized, err.Error())
	case apperror.CodeNotFound:
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.WithError(err).Error("unexpected error")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(r *http.Request, target interface{}) error {
	return decodeBody(r, target, true)
}

// decodeJSONLenient ignores keys the target does not declare.
func decodeJSONLenient(r *http.Request, target interface{}) error {
	return decodeBody(r, target, false)
}

func decodeBody(r *http.Request, target interface{}, strict bool) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}

	decoder := json.NewDecoder(r.Body)
	if strict {
		decoder.DisallowUnknownFields()
	}
	if err := decoder.Decode(target); err != nil {
		return errors.New("invalid JSON body")
	}

	var extra json.RawMessage
	if err := decoder.Decode(&extra); err != io.EOF {
		return errors.New("invalid JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

func pathID(r *http.Request) (uint, error) {
	raw := mux.Vars(r)["id"]
	id64, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperror.New(apperror.CodeValidation, "id must be a positive integer")
	}
	return uint(id64), nil
}

func parsePage(r *http.Request) (service.Page, error) {
	query := r.URL.Query()
	page := service.Page{Limit: service.DefaultListLimit}

	if raw := strings.TrimSpace(query.Get("skip")); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil {
			return service.Page{}, apperror.New(apperror.CodeValidation, "skip must be an integer")
		}
		page.Offset = skip
	}

	if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return service.Page{}, apperror.New(apperror.CodeValidation, "limit must be an integer")
		}
		page.Limit = limit
	}

	return page, nil
}

func parseOptionalUint(raw string, field string) (*uint, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return nil, apperror.New(apperror.CodeValidation, field+" must be a positive integer")
	}
	id := uint(parsed)
	return &id, nil
}
