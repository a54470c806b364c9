package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdexhq/mdex/pkg/github"
	"github.com/mdexhq/mdex/pkg/mdmodels"
)

// loadModelContent reads a data-model markdown file from either a local
// directory or a GitHub repository, depending on what the repo flag points
// at.
func loadModelContent(ctx context.Context, repo, path string) (string, error) {
	if isLocalRepo(repo) {
		data, err := os.ReadFile(filepath.Join(repo, path))
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		return string(data), nil
	}

	gh := github.New(os.Getenv("GITHUB_TOKEN"))
	return gh.FetchRaw(ctx, github.NormalizeRepo(repo), path)
}

// listModelFiles returns the paths of markdown files under the repo that
// parse as data-models.
func listModelFiles(ctx context.Context, repo string) ([]string, error) {
	parser := mdmodels.NewMarkdownParser()

	if isLocalRepo(repo) {
		var paths []string
		err := filepath.WalkDir(repo, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".md") {
				return nil
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if _, err := parser.Parse(string(data)); err == nil {
				rel, _ := filepath.Rel(repo, path)
				paths = append(paths, rel)
			}
			return nil
		})
		return paths, err
	}

	gh := github.New(os.Getenv("GITHUB_TOKEN"))
	return gh.ValidModelFiles(ctx, github.NormalizeRepo(repo), parser)
}

// isLocalRepo treats anything that exists on disk as a local checkout.
func isLocalRepo(repo string) bool {
	if repo == "" {
		return false
	}
	info, err := os.Stat(repo)
	return err == nil && info.IsDir()
}
