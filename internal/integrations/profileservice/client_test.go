package profileservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomAllocationService/pkg/logger"
)

func newClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, time.Second, 1, logger.NewNop())
}

func TestClient_GetProfile(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/users/u-1/profile", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"uid":"u-1","name":"Dr. Smith","department":"CS"}`))
	})

	profile, err := c.GetProfile(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Dr. Smith", profile.Name)
	assert.Equal(t, "CS", profile.Department)
}

func TestClient_GetProfile_NotFound(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":404,"message":"not found"}`))
	})

	_, err := c.GetProfile(context.Background(), "u-1")
	require.ErrorIs(t, err, ErrProfileNotFound)

	_, err = c.GetProfileWithGracefulDegradation(context.Background(), "u-1")
	require.ErrorIs(t, err, ErrProfileNotFound)
}

func TestClient_GetProfile_RetriesServerErrors(t *testing.T) {
	var calls int32
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"Dr. Smith","department":"CS"}`))
	})

	profile, err := c.GetProfile(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", profile.UID)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_GracefulDegradation(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.GetProfileWithGracefulDegradation(context.Background(), "u-1")
	require.ErrorIs(t, err, ErrServiceDegraded)
}

func TestClient_Unreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 200*time.Millisecond, 0, logger.NewNop())

	_, err := c.GetProfileWithGracefulDegradation(context.Background(), "u-1")
	require.ErrorIs(t, err, ErrServiceDegraded)
}
