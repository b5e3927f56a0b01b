package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harsha-bonthu/pt2/internal/auth"
	"github.com/Harsha-bonthu/pt2/internal/config"
	"github.com/Harsha-bonthu/pt2/internal/service"
	"github.com/Harsha-bonthu/pt2/internal/store"
	"github.com/Harsha-bonthu/pt2/internal/testutil"
)

// newAPI wires the real services, gate and SQLite store behind the router.
func newAPI(t *testing.T) http.Handler {
	t.Helper()

	gate, err := auth.NewGate(config.Config{
		AdminUsername: "admin",
		AdminPassword: "secret",
		TokenSecret:   "api-test-secret",
		TokenTTL:      time.Hour,
	})
	require.NoError(t, err)

	st := store.New(testutil.NewDB(t))
	handler := NewHandler(service.NewEmployeeService(st), service.NewTaskService(st), gate, testutil.DiscardLogger())
	return Wrap(handler.Routes(), testutil.DiscardLogger(), []string{"*"})
}

func login(t *testing.T, api http.Handler) string {
	t.Helper()
	recorder := serve(api, http.MethodPost, "/token", `{"username":"admin","password":"secret"}`, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var token auth.Token
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &token))
	require.Equal(t, "bearer", token.TokenType)
	return token.AccessToken
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var value T
	require.NoError(t, json.Unmarshal(body, &value))
	return value
}

func postEmployee(t *testing.T, api http.Handler, token, email string) service.EmployeeDTO {
	t.Helper()
	body := fmt.Sprintf(`{"first_name":"Task","last_name":"Owner","email":%q,"position":"Dev"}`, email)
	recorder := serve(api, http.MethodPost, "/employees", body, token)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	return decode[service.EmployeeDTO](t, recorder.Body.Bytes())
}

func postTask(t *testing.T, api http.Handler, token, body string) service.TaskDTO {
	t.Helper()
	recorder := serve(api, http.MethodPost, "/tasks", body, token)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	return decode[service.TaskDTO](t, recorder.Body.Bytes())
}

func TestAPILoginFlow(t *testing.T) {
	api := newAPI(t)

	recorder := serve(api, http.MethodPost, "/token", `{"username":"admin","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	token := login(t, api)
	employee := postEmployee(t, api, token, "test.user2@example.com")
	assert.NotZero(t, employee.ID)
	assert.Equal(t, "test.user2@example.com", employee.Email)
	assert.NotNil(t, employee.Tasks)
	assert.Empty(t, employee.Tasks)

	recorder = serve(api, http.MethodGet, fmt.Sprintf("/employees/%d", employee.ID), "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, employee.ID, decode[service.EmployeeDTO](t, recorder.Body.Bytes()).ID)
}

func TestAPIUnauthenticatedWrites(t *testing.T) {
	api := newAPI(t)

	for _, call := range []struct{ method, target, body string }{
		{http.MethodPost, "/employees", `{"first_name":"NoEmail","last_name":"User"}`},
		{http.MethodPut, "/employees/1", `{"position":"X"}`},
		{http.MethodDelete, "/employees/1", ""},
		{http.MethodPost, "/tasks", `{"title":"t"}`},
		{http.MethodPut, "/tasks/1", `{"title":"t"}`},
		{http.MethodDelete, "/tasks/1", ""},
	} {
		recorder := serve(api, call.method, call.target, call.body, "")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, "%s %s", call.method, call.target)
	}
}

func TestAPIDuplicateEmail(t *testing.T) {
	api := newAPI(t)
	token := login(t, api)

	postEmployee(t, api, token, "dup@example.com")
	recorder := serve(api, http.MethodPost, "/employees",
		`{"first_name":"A","last_name":"B","email":"dup@example.com"}`, token)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = serve(api, http.MethodPost, "/employees",
		`{"first_name":"A","last_name":"B","email":"not-an-email"}`, token)
	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
}

func TestAPITaskAssignmentAndFilter(t *testing.T) {
	api := newAPI(t)
	token := login(t, api)

	owner := postEmployee(t, api, token, "task.owner@example.com")
	other := postEmployee(t, api, token, "other@example.com")

	recorder := serve(api, http.MethodPost, "/tasks", fmt.Sprintf(`{"title":"Ghost","employee_id":%d}`, other.ID+100), token)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	unassigned := postTask(t, api, token, `{"title":"Unassigned"}`)
	assert.Nil(t, unassigned.EmployeeID)
	assert.Equal(t, "pending", unassigned.Status)

	first := postTask(t, api, token, fmt.Sprintf(`{"title":"Write tests","description":"Add unit tests","employee_id":%d}`, owner.ID))
	postTask(t, api, token, fmt.Sprintf(`{"title":"Elsewhere","employee_id":%d}`, other.ID))
	second := postTask(t, api, token, fmt.Sprintf(`{"title":"Review","status":"blocked","employee_id":%d}`, owner.ID))

	recorder = serve(api, http.MethodGet, fmt.Sprintf("/tasks?employee_id=%d", owner.ID), "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	tasks := decode[[]service.TaskDTO](t, recorder.Body.Bytes())
	require.Len(t, tasks, 2)
	assert.Equal(t, first.ID, tasks[0].ID)
	assert.Equal(t, second.ID, tasks[1].ID)
	for _, task := range tasks {
		require.NotNil(t, task.EmployeeID)
		assert.Equal(t, owner.ID, *task.EmployeeID)
	}

	recorder = serve(api, http.MethodGet, "/tasks?limit=1001", "", "")
	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
}

func TestAPICascadeDelete(t *testing.T) {
	api := newAPI(t)
	token := login(t, api)

	owner := postEmployee(t, api, token, "leaver@example.com")
	task := postTask(t, api, token, fmt.Sprintf(`{"title":"Handover","employee_id":%d}`, owner.ID))

	recorder := serve(api, http.MethodGet, fmt.Sprintf("/employees/%d", owner.ID), "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Len(t, decode[service.EmployeeDTO](t, recorder.Body.Bytes()).Tasks, 1)

	recorder = serve(api, http.MethodDelete, fmt.Sprintf("/employees/%d", owner.ID), "", token)
	require.Equal(t, http.StatusNoContent, recorder.Code)

	assert.Equal(t, http.StatusNotFound, serve(api, http.MethodGet, fmt.Sprintf("/tasks/%d", task.ID), "", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(api, http.MethodGet, fmt.Sprintf("/employees/%d", owner.ID), "", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(api, http.MethodDelete, fmt.Sprintf("/employees/%d", owner.ID), "", token).Code)
}

func TestAPIPartialUpdate(t *testing.T) {
	api := newAPI(t)
	token := login(t, api)

	employee := postEmployee(t, api, token, "partial@example.com")

	recorder := serve(api, http.MethodPut, fmt.Sprintf("/employees/%d", employee.ID), `{"position":"X"}`, token)
	require.Equal(t, http.StatusOK, recorder.Code)
	updated := decode[service.EmployeeDTO](t, recorder.Body.Bytes())
	assert.Equal(t, employee.FirstName, updated.FirstName)
	assert.Equal(t, employee.LastName, updated.LastName)
	assert.Equal(t, employee.Email, updated.Email)
	require.NotNil(t, updated.Position)
	assert.Equal(t, "X", *updated.Position)

	recorder = serve(api, http.MethodPut, "/employees/999", `{"position":"X"}`, token)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	task := postTask(t, api, token, `{"title":"Draft","description":"first pass"}`)
	recorder = serve(api, http.MethodPut, fmt.Sprintf("/tasks/%d", task.ID), `{"status":"done"}`, token)
	require.Equal(t, http.StatusOK, recorder.Code)
	updatedTask := decode[service.TaskDTO](t, recorder.Body.Bytes())
	assert.Equal(t, "Draft", updatedTask.Title)
	assert.Equal(t, "done", updatedTask.Status)
	require.NotNil(t, updatedTask.Description)
	assert.Equal(t, "first pass", *updatedTask.Description)

	recorder = serve(api, http.MethodDelete, fmt.Sprintf("/tasks/%d", task.ID), "", token)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}
