package cms

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return log
}

func TestFetchContent(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/docs/index.md", r.URL.Path)
		_, _ = w.Write([]byte("# hello"))
	}))
	defer srv.Close()

	c := New(quietLogger(), srv.URL+"/graphql", srv.URL+"/docs", 5*time.Second)

	body, err := c.FetchContent(context.Background(), "index.md")
	require.NoError(t, err)
	assert.Equal(t, "# hello", body)
}

func TestFetchContent_LeadingSlashAndTrailingSlashNormalized(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/content/index.md", r.URL.Path)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := New(quietLogger(), srv.URL, srv.URL+"/content/", time.Second)

	_, err := c.FetchContent(context.Background(), "/index.md")
	require.NoError(t, err)
}

func TestFetchContent_NonOKStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(quietLogger(), srv.URL, srv.URL, time.Second)

	_, err := c.FetchContent(context.Background(), "missing.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetchContent_CanceledContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := New(quietLogger(), srv.URL, srv.URL, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchContent(ctx, "index.md")
	assert.Error(t, err)
}

func TestQuery(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"document":{"id":"content/index.md"}}}`))
	}))
	defer srv.Close()

	c := New(quietLogger(), srv.URL, srv.URL, 5*time.Second)

	var out struct {
		Document struct {
			ID string `json:"id"`
		} `json:"document"`
	}

	err := c.Query(context.Background(), `query { document { id } }`, map[string]interface{}{"relativePath": "index.md"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "content/index.md", out.Document.ID)
}

func TestQuery_StructuredError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"errors":[{"message":"document not found"}]}`))
	}))
	defer srv.Close()

	c := New(quietLogger(), srv.URL, srv.URL, time.Second)

	err := c.Query(context.Background(), `query { document { id } }`, nil, &struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document not found")
}
