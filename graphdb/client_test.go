package graphdb

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(Config{BaseURL: srv.URL, Username: "admin", Password: "secret"})
	require.NoError(t, err)
	return c
}

func TestListRepositories(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/repositories", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "admin", user)
		assert.Equal(t, "secret", pass)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id":"guidance","title":"Guidance ontology","uri":"http://localhost:7200/repositories/guidance"}]`)
	})

	repos, err := c.ListRepositories(context.Background())
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, "guidance", repos[0].ID)
}

func TestUploadTurtle(t *testing.T) {
	var gotMethod, gotBody, gotContentType string
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repositories/guidance/statements", r.URL.Path)
		data, _ := io.ReadAll(r.Body)
		gotMethod = r.Method
		gotBody = string(data)
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusNoContent)
	})

	ttl := `<https://example.org/g#A> <https://example.org/g#b> "c" .`
	require.NoError(t, c.UploadTurtle(context.Background(), "guidance", ttl, false))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, ttl, gotBody)
	assert.Equal(t, "text/turtle", gotContentType)

	require.NoError(t, c.UploadTurtle(context.Background(), "guidance", ttl, true))
	assert.Equal(t, http.MethodPut, gotMethod, "replace upload uses PUT")
}

func TestSizeAndClear(t *testing.T) {
	cleared := false
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/repositories/guidance/size":
			io.WriteString(w, "1234")
		case r.Method == http.MethodDelete && r.URL.Path == "/repositories/guidance/statements":
			cleared = true
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	})

	n, err := c.Size(context.Background(), "guidance")
	require.NoError(t, err)
	assert.Equal(t, int64(1234), n)

	require.NoError(t, c.Clear(context.Background(), "guidance"))
	assert.True(t, cleared)
}

func TestQuery(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		assert.Contains(t, r.PostForm.Get("query"), "SELECT")
		assert.Equal(t, "application/sparql-results+json", r.Header.Get("Accept"))
		io.WriteString(w, `{"head":{"vars":["s"]},"results":{"bindings":[]}}`)
	})

	body, err := c.Query(context.Background(), "guidance", "SELECT ?s WHERE { ?s ?p ?o }")
	require.NoError(t, err)
	assert.Contains(t, string(body), `"vars"`)
}

func TestStatusError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "repository not found", http.StatusNotFound)
	})

	_, err := c.Size(context.Background(), "missing")
	require.Error(t, err)
	var serr *StatusError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusNotFound, serr.StatusCode)
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}
