// Package github fetches markdown model definitions from GitHub: raw file
// content plus recursive tree listings, filtered down to files that parse
// as valid models.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/mdexhq/mdex/pkg/mdmodels"
)

const (
	defaultAPIURL = "https://api.github.com"
	defaultRawURL = "https://raw.githubusercontent.com"
)

// Client reads repository content. The zero-value endpoints target
// github.com; tests point them at local servers.
type Client struct {
	APIURL string
	RawURL string

	client *http.Client
}

// New creates a Client. A non-empty token is attached to every request via
// an oauth2 static source, which raises the unauthenticated rate limit that
// recursive tree listings tend to hit.
func New(token string) *Client {
	httpClient := &http.Client{Timeout: 30 * time.Second}
	if token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), src)
		httpClient.Timeout = 30 * time.Second
	}
	return &Client{
		APIURL: defaultAPIURL,
		RawURL: defaultRawURL,
		client: httpClient,
	}
}

// NormalizeRepo converts a GitHub URL ("https://github.com/user/repo.git")
// into "user/repo". Inputs already in that form pass through unchanged.
func NormalizeRepo(input string) string {
	input = strings.TrimSpace(input)
	if !strings.Contains(input, "github.com") {
		return input
	}
	parts := strings.Split(strings.TrimRight(input, "/"), "/")
	if len(parts) < 2 {
		return input
	}
	user := parts[len(parts)-2]
	repo := strings.TrimSuffix(parts[len(parts)-1], ".git")
	return user + "/" + repo
}

// FetchRaw returns the content of a file on the repository's main branch.
func (c *Client) FetchRaw(ctx context.Context, repo, path string) (string, error) {
	if repo == "" {
		return "", fmt.Errorf("github: repository is required")
	}

	url := fmt.Sprintf("%s/%s/main/%s", c.RawURL, repo, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("github: fetching %s/%s (status %d)", repo, path, resp.StatusCode)
	}
	return string(body), nil
}

// ListMarkdownFiles lists every .md path on the main branch using the
// recursive git trees API.
func (c *Client) ListMarkdownFiles(ctx context.Context, repo string) ([]string, error) {
	user, name, ok := strings.Cut(repo, "/")
	if !ok || user == "" || name == "" {
		return nil, fmt.Errorf("github: invalid repository %q, expected \"user/repo\"", repo)
	}

	url := fmt.Sprintf("%s/repos/%s/%s/git/trees/main?recursive=1", c.APIURL, user, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var tree struct {
		Message string `json:"message"`
		Tree    []struct {
			Path string `json:"path"`
		} `json:"tree"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tree); err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github: listing %s (status %d): %s", repo, resp.StatusCode, tree.Message)
	}

	var files []string
	for _, entry := range tree.Tree {
		if strings.HasSuffix(entry.Path, ".md") {
			files = append(files, entry.Path)
		}
	}
	return files, nil
}

// ValidModelFiles filters the repository's markdown files down to those
// whose content parses as a model. Files that fail to parse are skipped
// silently; files that fail to download abort the listing.
func (c *Client) ValidModelFiles(ctx context.Context, repo string, parser mdmodels.Parser) ([]string, error) {
	files, err := c.ListMarkdownFiles(ctx, repo)
	if err != nil {
		return nil, err
	}

	var valid []string
	for _, path := range files {
		content, err := c.FetchRaw(ctx, repo, path)
		if err != nil {
			return nil, err
		}
		if _, err := parser.Parse(content); err == nil {
			valid = append(valid, path)
		}
	}
	return valid, nil
}
