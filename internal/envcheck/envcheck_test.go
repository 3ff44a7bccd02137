package envcheck

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestChecker(composeErr error) *Checker {
	c := New()
	c.runCompose = func(dir string, name string, args ...string) error {
		return composeErr
	}
	return c
}

func TestCheckAllUp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.WriteHeader(http.StatusOK)
		case "/openapi.json":
			_, _ = w.Write([]byte(`{"paths":{"/a":{},"/b":{},"/c":{}}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	status := newTestChecker(nil).Check(Options{
		BaseURL:       server.URL,
		OpenAPIPath:   "/openapi.json",
		DockerCompose: true,
	})

	assert.Equal(t, StatusUp, status.Docker)
	assert.Equal(t, StatusUp, status.Backend)
	assert.Equal(t, StatusUp, status.Swagger)
	assert.Equal(t, 3, status.EndpointsCount)
	assert.True(t, status.AllUp())
}

func TestCheckBackendStatusCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"paths":{}}`))
	}))
	defer server.Close()

	status := newTestChecker(nil).Check(Options{BaseURL: server.URL, OpenAPIPath: "/openapi.json"})
	assert.Equal(t, "STATUS_503", status.Backend)
	assert.False(t, status.AllUp())
}

func TestCheckUnreachableTarget(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := server.URL
	server.Close()

	status := newTestChecker(nil).Check(Options{BaseURL: base, OpenAPIPath: "/openapi.json"})
	assert.Equal(t, StatusDown, status.Backend)
	assert.Equal(t, StatusDown, status.Swagger)
	assert.False(t, status.AllUp())
}

func TestCheckSwaggerNotJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		_, _ = w.Write([]byte("<html>not a contract</html>"))
	}))
	defer server.Close()

	status := newTestChecker(nil).Check(Options{BaseURL: server.URL, OpenAPIPath: "/openapi.json"})
	assert.Equal(t, StatusUp, status.Backend)
	assert.Equal(t, StatusDown, status.Swagger)
}

func TestCheckDockerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		_, _ = w.Write([]byte(`{"paths":{}}`))
	}))
	defer server.Close()

	status := newTestChecker(errors.New("no docker")).Check(Options{
		BaseURL:       server.URL,
		OpenAPIPath:   "/openapi.json",
		DockerCompose: true,
	})
	assert.Equal(t, StatusDown, status.Docker)
	assert.False(t, status.AllUp())
}

func TestCheckDockerSkipped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		_, _ = w.Write([]byte(`{"paths":{"/a":{}}}`))
	}))
	defer server.Close()

	status := newTestChecker(nil).Check(Options{BaseURL: server.URL, OpenAPIPath: "/openapi.json"})
	assert.Empty(t, status.Docker)
	assert.True(t, status.AllUp())
}
