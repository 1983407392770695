package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vuet/vuet-client/pkg/apperrors"
	"github.com/vuet/vuet-client/pkg/auth"
	"github.com/vuet/vuet-client/pkg/models"
	"github.com/vuet/vuet-client/pkg/retry"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", auth.StaticToken("test-token"), time.Second, zaptest.NewLogger(t))
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"http://localhost:8000/", []string{"core/task/"}, "http://localhost:8000/core/task/"},
		{"https://api.vuet.app/v1/", []string{"core/task/12/"}, "https://api.vuet.app/v1/core/task/12/"},
		{"https://api.vuet.app", []string{"core", "entity"}, "https://api.vuet.app/core/entity"},
	}
	for _, tt := range tests {
		got, err := buildURL(tt.base, tt.segments...)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestClient_ListTasks(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/core/task/", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, err := uuid.Parse(r.Header.Get(RequestIDHeader))
		assert.NoError(t, err, "request id must be a uuid")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 1, "title": "Walk dog", "type": "TASK", "members": [1], "entities": [], "tags": [], "is_complete": false, "action_id": null},
			{"id": 2, "title": "Flight", "type": "FLIGHT", "members": [1, 2], "entities": [5], "tags": ["TRAVEL__FLIGHT"], "is_complete": true, "action_id": 9}
		]`))
	})

	tasks, err := client.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Walk dog", tasks[0].Title)
	assert.False(t, tasks[0].HasAction())
	assert.Equal(t, models.TaskTypeFlight, tasks[1].Type)
	require.NotNil(t, tasks[1].ActionID)
	assert.Equal(t, 9, *tasks[1].ActionID)
}

func TestClient_ListEntitiesKeepsTypeFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/core/entity/", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id": 3, "name": "Rex", "resourcetype": "Pet", "category": 1, "breed": "Collie"}]`))
	})

	entities, err := client.ListEntities(context.Background())
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, models.EntityPet, entities[0].ResourceType)
	assert.Equal(t, "Collie", entities[0].Field("breed"))
}

func TestClient_EmptyAndNullBodies(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})

	routines, err := client.ListRoutines(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, routines)
	assert.Empty(t, routines)
}

func TestClient_EveryKindHasEndpoint(t *testing.T) {
	for _, kind := range models.AllKinds() {
		assert.NotEmpty(t, Endpoints[kind], "kind %s", kind)
	}
}

func TestClient_ErrorStatuses(t *testing.T) {
	tests := []struct {
		status    int
		sentinel  error
		retryable bool
	}{
		{http.StatusUnauthorized, apperrors.ErrUnauthorized, false},
		{http.StatusNotFound, apperrors.ErrNotFound, false},
		{http.StatusConflict, apperrors.ErrConflict, false},
		{http.StatusTooManyRequests, nil, true},
		{http.StatusServiceUnavailable, nil, true},
		{http.StatusBadRequest, nil, false},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"detail":"nope"}`))
			})

			_, err := client.ListCategories(context.Background())
			require.Error(t, err)

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, `{"detail":"nope"}`, apiErr.Body)
			assert.Equal(t, tt.retryable, retry.IsRetryable(err))
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
		})
	}
}

func TestClient_ErrorBodyIsSanitized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"refresh":"secret-value"}`))
	})

	_, err := client.ListMembers(context.Background())
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "secret-value")
}

func TestClient_MalformedJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	})

	_, err := client.ListAlerts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse response")
	assert.False(t, retry.IsRetryable(err))
}

func TestClient_NoToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent without a token")
	}))
	defer srv.Close()
	client := NewClient(srv.URL+"/", auth.StaticToken(""), 0, zaptest.NewLogger(t))

	_, err := client.ListTasks(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNoToken)
}

func TestClient_CreateTask(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/core/task/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in TaskInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Vet", in.Title)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 10, "title": "Vet", "type": "APPOINTMENT", "members": [1]}`))
	})

	task, err := client.CreateTask(context.Background(), TaskInput{Title: "Vet", Type: models.TaskTypeAppointment, Members: []int{1}})
	require.NoError(t, err)
	assert.Equal(t, 10, task.ID)
}

func TestClient_UpdateTask(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/core/task/4/", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"is_complete": true}`, string(body))
		_, _ = w.Write([]byte(`{"id": 4, "is_complete": true}`))
	})

	task, err := client.UpdateTask(context.Background(), 4, map[string]any{"is_complete": true})
	require.NoError(t, err)
	assert.True(t, task.IsComplete)
}

func TestClient_DeleteTask(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/core/task/4/", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, client.DeleteTask(context.Background(), 4))
}

func TestClient_MarkAlertsRead(t *testing.T) {
	var paths []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"read": true}`, string(body))
		if r.URL.Path == "/core/alert/3/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	})

	err := client.MarkAlertsRead(context.Background(), []int{1, 3, 5})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, []string{"/core/alert/1/", "/core/alert/3/"}, paths)
}
