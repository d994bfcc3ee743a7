package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rigcheck/internal/catalog"
	"github.com/roach88/rigcheck/internal/compat"
	"github.com/roach88/rigcheck/internal/session"
	"github.com/roach88/rigcheck/internal/store"
	"github.com/roach88/rigcheck/internal/testutil"
)

type testEnv struct {
	server *Server
	http   *httptest.Server
}

func newTestEnv(t *testing.T, withStore bool) *testEnv {
	t.Helper()

	sessions, err := session.NewManager(8, session.WithIDGenerator(
		session.NewFixedGenerator("s1", "s2", "s3", "s4"),
	))
	require.NoError(t, err)

	opts := Options{
		Catalog:  catalog.NewHolder(catalog.Default()),
		Engine:   compat.New(),
		Sessions: sessions,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if withStore {
		n := 0
		st, err := store.Open(filepath.Join(t.TempDir(), "builds.db"),
			store.WithClock(testutil.NewStepClock().Now),
			store.WithIDs(func() string { n++; return fmt.Sprintf("b%d", n) }),
		)
		require.NoError(t, err)
		t.Cleanup(func() { st.Close() })
		opts.Builds = st
	}

	srv, err := New(opts)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &testEnv{server: srv, http: ts}
}

func (e *testEnv) do(t *testing.T, method, path, body string) (int, map[string]any) {
	t.Helper()

	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, e.http.URL+path, rdr)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	if len(bytes.TrimSpace(raw)) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	}
	return resp.StatusCode, out
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestNewRequiresCollaborators(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, false)

	status, body := env.do(t, "GET", "/healthz", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestCatalogRoutes(t *testing.T) {
	env := newTestEnv(t, false)

	status, body := env.do(t, "GET", "/v1/catalog", "")
	require.Equal(t, http.StatusOK, status)
	cats := body["categories"].([]any)
	assert.Len(t, cats, 7)
	assert.Equal(t, "processor", cats[0].(map[string]any)["category"])

	status, body = env.do(t, "GET", "/v1/catalog/cpu?q=ryzen", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "processor", body["category"])
	parts := body["parts"].([]any)
	require.Len(t, parts, 1)
	assert.Equal(t, "2", parts[0].(map[string]any)["id"])

	status, body = env.do(t, "GET", "/v1/catalog/toaster", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, CodeUnknownCategory, errorCode(body))
}

func TestSessionLifecycle(t *testing.T) {
	env := newTestEnv(t, false)

	status, body := env.do(t, "POST", "/v1/sessions", "")
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "s1", body["id"])

	status, body = env.do(t, "PUT", "/v1/sessions/s1/parts/processor", `{"id": "1"}`)
	require.Equal(t, http.StatusOK, status)
	totals := body["totals"].(map[string]any)
	assert.Equal(t, 45990.0, totals["total_price"])
	assert.Equal(t, 125.0, totals["total_power"])

	status, _ = env.do(t, "PUT", "/v1/sessions/s1/parts/mb", `{"id": "6"}`)
	require.Equal(t, http.StatusOK, status)

	status, body = env.do(t, "POST", "/v1/sessions/s1/check", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["valid"])
	issues := body["issues"].([]any)
	require.Len(t, issues, 1)
	issue := issues[0].(map[string]any)
	assert.Equal(t, compat.RuleSocket, issue["rule"])
	assert.Contains(t, issue["message"], "LGA1700")
	assert.Contains(t, issue["message"], "AM5")

	status, body = env.do(t, "DELETE", "/v1/sessions/s1/parts/processor", "")
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, body["parts"].(map[string]any)["processor"])

	status, body = env.do(t, "POST", "/v1/sessions/s1/check", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["valid"])
	assert.Empty(t, body["issues"])

	status, _ = env.do(t, "DELETE", "/v1/sessions/s1", "")
	assert.Equal(t, http.StatusNoContent, status)

	status, body = env.do(t, "GET", "/v1/sessions/s1", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, CodeNotFound, errorCode(body))
}

func TestCheckLanguage(t *testing.T) {
	env := newTestEnv(t, false)
	env.do(t, "POST", "/v1/sessions", "")
	env.do(t, "PUT", "/v1/sessions/s1/parts/gpu", `{"id": "3"}`)
	env.do(t, "PUT", "/v1/sessions/s1/parts/case", `{"id": "11"}`)

	_, body := env.do(t, "POST", "/v1/sessions/s1/check?lang=ru", "")
	issue := body["issues"].([]any)[0].(map[string]any)
	assert.Equal(t, compat.RuleClearance, issue["rule"])
	assert.Contains(t, issue["message"], "Видеокарта")

	req, err := http.NewRequest("POST", env.http.URL+"/v1/sessions/s1/check", nil)
	require.NoError(t, err)
	req.Header.Set("Accept-Language", "ru-RU,ru;q=0.9,en;q=0.5")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Видеокарта")
}

func TestSelectPartErrors(t *testing.T) {
	env := newTestEnv(t, false)
	env.do(t, "POST", "/v1/sessions", "")

	tests := []struct {
		name, path, body string
		status           int
		code             string
	}{
		{"unknown session", "/v1/sessions/zz/parts/cpu", `{"id":"1"}`, http.StatusNotFound, CodeNotFound},
		{"unknown category", "/v1/sessions/s1/parts/toaster", `{"id":"1"}`, http.StatusBadRequest, CodeUnknownCategory},
		{"unknown part", "/v1/sessions/s1/parts/cpu", `{"id":"999"}`, http.StatusNotFound, CodeNotFound},
		{"part from another category", "/v1/sessions/s1/parts/cpu", `{"id":"3"}`, http.StatusNotFound, CodeNotFound},
		{"missing id", "/v1/sessions/s1/parts/cpu", `{}`, http.StatusBadRequest, CodeBadRequest},
		{"unknown field", "/v1/sessions/s1/parts/cpu", `{"id":"1","qty":2}`, http.StatusBadRequest, CodeBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := env.do(t, "PUT", tt.path, tt.body)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, errorCode(body))
		})
	}
}

func TestGalleryRoutesAbsentWithoutStore(t *testing.T) {
	env := newTestEnv(t, false)

	status, body := env.do(t, "GET", "/v1/builds", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, CodeNotFound, errorCode(body))
}

func TestGalleryFlow(t *testing.T) {
	env := newTestEnv(t, true)

	env.do(t, "POST", "/v1/sessions", "")
	env.do(t, "PUT", "/v1/sessions/s1/parts/cpu", `{"id": "2"}`)
	env.do(t, "PUT", "/v1/sessions/s1/parts/mb", `{"id": "6"}`)
	env.do(t, "PUT", "/v1/sessions/s1/parts/psu", `{"id": "9"}`)

	status, body := env.do(t, "POST", "/v1/builds", `{"session_id": "s1", "name": "AM5 starter", "author": "kim"}`)
	require.Equal(t, http.StatusCreated, status)
	id := body["id"].(string)
	assert.Equal(t, 39990.0+29990.0+16990.0, body["total_price"])

	status, body = env.do(t, "POST", "/v1/builds/"+id+"/like", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1.0, body["likes"])

	status, body = env.do(t, "GET", "/v1/builds", "")
	require.Equal(t, http.StatusOK, status)
	builds := body["builds"].([]any)
	require.Len(t, builds, 1)
	assert.Equal(t, "AM5 starter", builds[0].(map[string]any)["name"])

	status, body = env.do(t, "POST", "/v1/builds/"+id+"/copy", "")
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "s2", body["id"])
	assert.Nil(t, body["missing"])

	status, body = env.do(t, "POST", "/v1/sessions/s2/check", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["valid"])
	assert.Equal(t, 170.0, body["totals"].(map[string]any)["total_power"])
}

func TestGalleryErrors(t *testing.T) {
	env := newTestEnv(t, true)
	env.do(t, "POST", "/v1/sessions", "")

	status, body := env.do(t, "POST", "/v1/builds", `{"session_id": "s1", "name": "empty"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, CodeEmptyBuild, errorCode(body))

	env.do(t, "PUT", "/v1/sessions/s1/parts/cpu", `{"id": "2"}`)
	for _, name := range []string{`""`, `"   "`, `"\t\n"`} {
		status, body = env.do(t, "POST", "/v1/builds", `{"session_id": "s1", "name": `+name+`}`)
		assert.Equal(t, http.StatusBadRequest, status, "name %s", name)
		assert.Equal(t, CodeBadRequest, errorCode(body), "name %s", name)
	}

	status, body = env.do(t, "POST", "/v1/builds", `{"session_id": "nope", "name": "x"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, CodeNotFound, errorCode(body))

	status, _ = env.do(t, "GET", "/v1/builds/missing", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = env.do(t, "POST", "/v1/builds/missing/like", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, body = env.do(t, "GET", "/v1/builds?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, CodeBadRequest, errorCode(body))
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, false)
	env.do(t, "POST", "/v1/sessions", "")
	env.do(t, "POST", "/v1/sessions/s1/check", "")

	resp, err := http.Get(env.http.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(raw)
	assert.Contains(t, text, `rigcheck_compat_evaluations_total{outcome="valid"} 1`)
	assert.Contains(t, text, "rigcheck_sessions_live 1")
	assert.Contains(t, text, `path="/v1/sessions/{id}/check"`)
}
