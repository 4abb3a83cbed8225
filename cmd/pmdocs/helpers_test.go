package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gorewood/pmdocs/internal/git"
)

// isolate runs the test in an empty working directory with a private config
// home and no inherited PMDOCS_* settings.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("PMDOCS_CONFIG_HOME", t.TempDir())
	for _, name := range []string{
		"PMDOCS_OUTPUT", "PMDOCS_POSTMAN_API_KEY", "PMDOCS_POSTMAN_BASE_URL",
		"PMDOCS_POSTMAN_WORKSPACE", "PMDOCS_POSTMAN_COLLECTIONS", "PMDOCS_POSTMAN_KEEP_RAW",
		"PMDOCS_GIT_REMOTE", "PMDOCS_GIT_BRANCH", "PMDOCS_GIT_MESSAGE",
		"PMDOCS_TRACKER_BASE_URL", "PMDOCS_TRACKER_TOKEN", "PMDOCS_TRACKER_PROJECT",
		"PMDOCS_TRACKER_DELAY", "PMDOCS_TRACKER_PER_PAGE", "PMDOCS_LOG_LEVEL", "PMDOCS_LOG_FORMAT",
	} {
		t.Setenv(name, "")
	}
	t.Setenv("PMDOCS_TRACKER_DELAY", "0s")
	return dir
}

// execute runs the root command with args and returns stdout, stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

const pingCollection = `{"collection": {
  "info": {"name": "API", "schema": "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"},
  "item": [{"name": "Ping", "request": {"method": "GET", "url": {"raw": "https://x/ping"}, "description": "health check"}}]
}}`

// fakePostman serves one workspace with the API collection.
func fakePostman(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != "pmak-test" {
			http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/workspaces/ws-1":
			_, _ = io.WriteString(w, `{"workspace": {"id": "ws-1", "collections": [{"id": "a", "uid": "1-a", "name": "API"}]}}`)
		case "/collections/1-a":
			_, _ = io.WriteString(w, pingCollection)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	t.Setenv("PMDOCS_POSTMAN_BASE_URL", srv.URL)
	t.Setenv("PMDOCS_POSTMAN_API_KEY", "pmak-test")
	t.Setenv("PMDOCS_POSTMAN_WORKSPACE", "ws-1")
	return srv
}

type gitlabCall struct {
	Method string
	Path   string
	Body   map[string]string
}

// fakeGitLab is an in-memory GitLab project. Every commit diff returns
// diffPage on page 1 and nothing after.
type fakeGitLab struct {
	mu       sync.Mutex
	issues   []map[string]any
	diffPage string
	calls    []gitlabCall
}

func (f *fakeGitLab) mutations() []gitlabCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []gitlabCall
	for _, c := range f.calls {
		if c.Method != http.MethodGet {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeGitLab) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := gitlabCall{Method: r.Method, Path: r.URL.EscapedPath()}
	if data, _ := io.ReadAll(r.Body); len(data) > 0 {
		_ = json.Unmarshal(data, &call.Body)
	}
	f.calls = append(f.calls, call)

	const prefix = "/api/v4/projects/group%2Fdocs"
	path := strings.TrimPrefix(call.Path, prefix)
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && path == "/issues":
		query := r.URL.Query().Get("search")
		hits := []map[string]any{}
		for _, issue := range f.issues {
			if strings.Contains(issue["title"].(string), query) {
				hits = append(hits, issue)
			}
		}
		_ = json.NewEncoder(w).Encode(hits)
	case r.Method == http.MethodPost && path == "/issues":
		iid := len(f.issues) + 1
		issue := map[string]any{
			"id": 100 + iid, "iid": iid, "title": call.Body["title"], "state": "opened",
			"labels":  strings.Split(call.Body["labels"], ","),
			"web_url": fmt.Sprintf("https://gitlab.example/group/docs/-/issues/%d", iid),
		}
		f.issues = append(f.issues, issue)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(issue)
	case r.Method == http.MethodPost && strings.HasSuffix(path, "/notes"):
		w.WriteHeader(http.StatusCreated)
		_, _ = fmt.Fprintf(w, `{"id": %d, "body": %q}`, len(f.calls), call.Body["body"])
	case r.Method == http.MethodPut && strings.HasPrefix(path, "/issues/"):
		var iid int
		_, _ = fmt.Sscanf(strings.TrimPrefix(path, "/issues/"), "%d", &iid)
		if iid < 1 || iid > len(f.issues) {
			http.NotFound(w, r)
			return
		}
		issue := f.issues[iid-1]
		if add := call.Body["add_labels"]; add != "" {
			issue["labels"] = append(issue["labels"].([]string), strings.Split(add, ",")...)
		}
		_ = json.NewEncoder(w).Encode(issue)
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/diff"):
		if r.URL.Query().Get("page") == "1" {
			_, _ = io.WriteString(w, f.diffPage)
			return
		}
		_, _ = io.WriteString(w, `[]`)
	default:
		http.NotFound(w, r)
	}
}

func startGitLab(t *testing.T, fake *fakeGitLab) {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	t.Setenv("PMDOCS_TRACKER_BASE_URL", srv.URL)
	t.Setenv("PMDOCS_TRACKER_TOKEN", "glpat-test")
	t.Setenv("PMDOCS_TRACKER_PROJECT", "group/docs")
}

// initRepo creates a git repository with a committer identity at dir.
func initRepo(t *testing.T, dir string) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	ctx := context.Background()
	for _, args := range [][]string{
		{"init", "-q", dir},
		{"-C", dir, "config", "user.email", "docs@example.com"},
		{"-C", dir, "config", "user.name", "pmdocs test"},
		{"-C", dir, "config", "commit.gpgsign", "false"},
	} {
		_, err := git.RunContext(ctx, "", args...)
		require.NoError(t, err, "git %v", args)
	}
}
