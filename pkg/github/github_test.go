package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mdexhq/mdex/pkg/mdmodels"
)

func TestNormalizeRepo(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"user/repo", "user/repo"},
		{"https://github.com/user/repo", "user/repo"},
		{"https://github.com/user/repo.git", "user/repo"},
		{"https://github.com/user/repo/", "user/repo"},
	}
	for _, tt := range tests {
		if got := NormalizeRepo(tt.in); got != tt.want {
			t.Errorf("NormalizeRepo(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

const validModel = `### Thing

- name
  - Type: string
`

func testServers(t *testing.T, contents map[string]string) (*Client, func()) {
	t.Helper()

	raw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// /user/repo/main/<path>
		content, ok := contents[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(content))
	}))

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		type entry struct {
			Path string `json:"path"`
		}
		tree := []entry{
			{Path: "docs/model.md"},
			{Path: "README.md"},
			{Path: "src/main.go"},
		}
		json.NewEncoder(w).Encode(map[string]any{"tree": tree})
	}))

	c := New("")
	c.APIURL = api.URL
	c.RawURL = raw.URL
	return c, func() {
		raw.Close()
		api.Close()
	}
}

func TestListMarkdownFiles(t *testing.T) {
	c, done := testServers(t, nil)
	defer done()

	files, err := c.ListMarkdownFiles(context.Background(), "user/repo")
	if err != nil {
		t.Fatalf("ListMarkdownFiles error: %v", err)
	}
	if len(files) != 2 || files[0] != "docs/model.md" || files[1] != "README.md" {
		t.Errorf("files = %v, want the two .md paths", files)
	}
}

func TestListMarkdownFilesBadRepo(t *testing.T) {
	c := New("")
	if _, err := c.ListMarkdownFiles(context.Background(), "norepo"); err == nil {
		t.Fatal("expected error for repository without a slash")
	}
}

func TestValidModelFilesFiltersSilently(t *testing.T) {
	c, done := testServers(t, map[string]string{
		"/user/repo/main/docs/model.md": validModel,
		"/user/repo/main/README.md":     "# Readme\n\nprose only\n",
	})
	defer done()

	files, err := c.ValidModelFiles(context.Background(), "user/repo", mdmodels.NewMarkdownParser())
	if err != nil {
		t.Fatalf("ValidModelFiles error: %v", err)
	}
	if len(files) != 1 || files[0] != "docs/model.md" {
		t.Errorf("files = %v, want only docs/model.md", files)
	}
}

func TestFetchRawNotFound(t *testing.T) {
	c, done := testServers(t, nil)
	defer done()

	if _, err := c.FetchRaw(context.Background(), "user/repo", "missing.md"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
