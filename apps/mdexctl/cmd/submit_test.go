package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveTextFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.txt")
	os.WriteFile(path, []byte("catalyst data"), 0644)

	f := submissionFlags{textFile: path}
	text, err := f.resolveText()
	if err != nil {
		t.Fatalf("resolveText failed: %v", err)
	}
	if text != "catalyst data" {
		t.Errorf("Unexpected text: %q", text)
	}
}

func TestResolveTextFlagWins(t *testing.T) {
	f := submissionFlags{text: "inline", textFile: "/does/not/exist"}
	text, err := f.resolveText()
	if err != nil {
		t.Fatalf("resolveText failed: %v", err)
	}
	if text != "inline" {
		t.Errorf("Expected the --text value to win, got %q", text)
	}
}

func TestResolveRefsParsesFileRefs(t *testing.T) {
	f := submissionFlags{fileRefs: []string{"file-abc:input_file", "file-def:input_image"}}
	refs, err := f.resolveRefs(context.Background(), nil)
	if err != nil {
		t.Fatalf("resolveRefs failed: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("Expected 2 refs, got %d", len(refs))
	}
	if refs[0].FileID != "file-abc" || refs[0].InputType != "input_file" {
		t.Errorf("Unexpected first ref: %+v", refs[0])
	}
	if refs[1].FileID != "file-def" || refs[1].InputType != "input_image" {
		t.Errorf("Unexpected second ref: %+v", refs[1])
	}
}

func TestResolveRefsRejectsMalformed(t *testing.T) {
	for _, bad := range []string{"no-colon", ":image", "file-abc:"} {
		f := submissionFlags{fileRefs: []string{bad}}
		if _, err := f.resolveRefs(context.Background(), nil); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}
