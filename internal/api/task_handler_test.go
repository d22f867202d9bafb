package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskhub-api/internal/api"
	"github.com/phrazzld/taskhub-api/internal/api/middleware"
	"github.com/phrazzld/taskhub-api/internal/config"
	"github.com/phrazzld/taskhub-api/internal/mocks"
	"github.com/phrazzld/taskhub-api/internal/service"
	"github.com/phrazzld/taskhub-api/internal/service/auth"
)

// taskAPI wires a real router, authentication middleware, JWT service,
// and task service over in-memory doubles, so requests flow through the
// same path they take in production.
type taskAPI struct {
	router     chi.Router
	jwtService auth.JWTService
	taskStore  *mocks.MockTaskStore
	cache      *mocks.MockListingCache
}

func newTaskAPI(t *testing.T) *taskAPI {
	t.Helper()

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "test-jwt-secret-that-is-32-chars-long",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	taskStore := mocks.NewMockTaskStore()
	cache := mocks.NewMockListingCache()

	taskService, err := service.NewTaskService(taskStore, cache, nil)
	require.NoError(t, err)

	taskHandler := api.NewTaskHandler(taskService, nil)
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Get("/tasks", taskHandler.ListTasks)
		r.Post("/tasks", taskHandler.CreateTask)
		r.Put("/tasks/{id}", taskHandler.UpdateTask)
		r.Delete("/tasks/{id}", taskHandler.DeleteTask)
	})

	return &taskAPI{
		router:     router,
		jwtService: jwtService,
		taskStore:  taskStore,
		cache:      cache,
	}
}

// tokenFor issues a real signed token for the given user.
func (a *taskAPI) tokenFor(t *testing.T, userID uuid.UUID, username string) string {
	t.Helper()
	token, err := a.jwtService.GenerateToken(context.Background(), userID, username)
	require.NoError(t, err)
	return token
}

func (a *taskAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *taskAPI) createTask(t *testing.T, token, name string) uuid.UUID {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/tasks", token, api.CreateTaskRequest{Name: name})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp api.CreateTaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.TaskID
}

func (a *taskAPI) listTasks(t *testing.T, token string) []api.TaskResponse {
	t.Helper()

	rec := a.do(t, http.MethodGet, "/tasks", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var tasks []api.TaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	return tasks
}

func TestTaskEndpointsRequireAuth(t *testing.T) {
	t.Parallel()

	app := newTaskAPI(t)
	taskID := uuid.New().String()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/tasks"},
		{http.MethodPost, "/tasks"},
		{http.MethodPut, "/tasks/" + taskID},
		{http.MethodDelete, "/tasks/" + taskID},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			t.Parallel()

			rec := app.do(t, tc.method, tc.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, "no token")

			rec = app.do(t, tc.method, tc.path, "not-a-real-token", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, "garbage token")
		})
	}
}

func TestTaskLifecycle(t *testing.T) {
	t.Parallel()

	app := newTaskAPI(t)
	userID := uuid.New()
	token := app.tokenFor(t, userID, "alice")

	// Starts empty.
	assert.Empty(t, app.listTasks(t, token))

	taskID := app.createTask(t, token, "buy milk")

	tasks := app.listTasks(t, token)
	require.Len(t, tasks, 1)
	assert.Equal(t, taskID, tasks[0].ID)
	assert.Equal(t, userID, tasks[0].OwnerID)
	assert.Equal(t, "buy milk", tasks[0].Name)
	assert.Equal(t, "pending", tasks[0].Status)

	// Update and observe the change on the next read.
	rec := app.do(t, http.MethodPut, "/tasks/"+taskID.String(), token,
		api.UpdateTaskRequest{Name: "buy milk", Description: "2%", Status: "done"})
	require.Equal(t, http.StatusOK, rec.Code)

	tasks = app.listTasks(t, token)
	require.Len(t, tasks, 1)
	assert.Equal(t, "done", tasks[0].Status)
	assert.Equal(t, "2%", tasks[0].Description)

	// Delete; a second delete is a 404.
	rec = app.do(t, http.MethodDelete, "/tasks/"+taskID.String(), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Empty(t, app.listTasks(t, token))

	rec = app.do(t, http.MethodDelete, "/tasks/"+taskID.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTaskOwnershipIsolation(t *testing.T) {
	t.Parallel()

	app := newTaskAPI(t)
	aliceToken := app.tokenFor(t, uuid.New(), "alice")
	bobToken := app.tokenFor(t, uuid.New(), "bob")

	aliceTask := app.createTask(t, aliceToken, "alice task")
	app.createTask(t, bobToken, "bob task")

	// Listings never cross users.
	aliceTasks := app.listTasks(t, aliceToken)
	require.Len(t, aliceTasks, 1)
	assert.Equal(t, "alice task", aliceTasks[0].Name)

	bobTasks := app.listTasks(t, bobToken)
	require.Len(t, bobTasks, 1)
	assert.Equal(t, "bob task", bobTasks[0].Name)

	// A foreign task looks exactly like a missing one.
	rec := app.do(t, http.MethodPut, "/tasks/"+aliceTask.String(), bobToken,
		api.UpdateTaskRequest{Name: "hijacked", Status: "done"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(t, http.MethodDelete, "/tasks/"+aliceTask.String(), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Alice's task is untouched.
	aliceTasks = app.listTasks(t, aliceToken)
	require.Len(t, aliceTasks, 1)
	assert.Equal(t, "alice task", aliceTasks[0].Name)
	assert.Equal(t, "pending", aliceTasks[0].Status)
}

func TestTaskValidation(t *testing.T) {
	t.Parallel()

	app := newTaskAPI(t)
	token := app.tokenFor(t, uuid.New(), "alice")

	t.Run("create without name", func(t *testing.T) {
		t.Parallel()
		rec := app.do(t, http.MethodPost, "/tasks", token, api.CreateTaskRequest{Description: "no name"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("update without name", func(t *testing.T) {
		t.Parallel()
		rec := app.do(t, http.MethodPut, "/tasks/"+uuid.New().String(), token,
			api.UpdateTaskRequest{Status: "done"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed task ID", func(t *testing.T) {
		t.Parallel()
		rec := app.do(t, http.MethodPut, "/tasks/not-a-uuid", token,
			api.UpdateTaskRequest{Name: "x"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = app.do(t, http.MethodDelete, "/tasks/not-a-uuid", token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		app.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListTasksServedFromCache(t *testing.T) {
	t.Parallel()

	app := newTaskAPI(t)
	userID := uuid.New()
	token := app.tokenFor(t, userID, "alice")

	app.createTask(t, token, "buy milk")

	// First list populates the cache, second is served from it.
	app.listTasks(t, token)
	setCallsAfterFirst := app.cache.SetCalls
	app.listTasks(t, token)

	assert.Equal(t, setCallsAfterFirst, app.cache.SetCalls, "a cache hit must not repopulate")
	assert.GreaterOrEqual(t, app.cache.GetCalls, 2)
}
