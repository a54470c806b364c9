package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// captureServer records the last submission body and replies with a fixed id.
func captureServer(t *testing.T, captured *submission) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, captured); err != nil {
			t.Errorf("request body is not a submission: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "resp_123", "status": "queued"})
	}))
}

func TestSubmitEvaluationDefaults(t *testing.T) {
	var got submission
	srv := captureServer(t, &got)
	defer srv.Close()

	c := New(Config{APIKey: "k", BaseURL: srv.URL})
	id, err := c.SubmitEvaluation(context.Background(), SubmitRequest{
		Text:   "some text",
		Schema: `{"type":"object"}`,
	})
	if err != nil {
		t.Fatalf("SubmitEvaluation error: %v", err)
	}
	if id != "resp_123" {
		t.Errorf("id = %q, want resp_123", id)
	}

	if !got.Background {
		t.Error("submission not flagged background")
	}
	if got.Model != DefaultModel {
		t.Errorf("model = %q, want %q", got.Model, DefaultModel)
	}
	if got.Temperature == nil || *got.Temperature != 0 {
		t.Errorf("temperature = %v, want 0", got.Temperature)
	}
	if len(got.Tools) != 1 || got.Tools[0].Type != "web_search_preview" {
		t.Errorf("tools = %v, want the web search tool", got.Tools)
	}
}

func TestSubmitReasoningModelPolicy(t *testing.T) {
	var got submission
	srv := captureServer(t, &got)
	defer srv.Close()

	c := New(Config{APIKey: "k", BaseURL: srv.URL})
	_, err := c.SubmitGraph(context.Background(), SubmitRequest{
		Text:  "graph me",
		Model: "o3-mini",
	})
	if err != nil {
		t.Fatalf("SubmitGraph error: %v", err)
	}

	if got.Temperature != nil {
		t.Errorf("temperature sent for reasoning model: %v", *got.Temperature)
	}
	if len(got.Tools) != 0 {
		t.Errorf("tools attached for reasoning model: %v", got.Tools)
	}
}

func TestSubmitContentOrdering(t *testing.T) {
	var got submission
	srv := captureServer(t, &got)
	defer srv.Close()

	c := New(Config{APIKey: "k", BaseURL: srv.URL})
	_, err := c.SubmitExtraction(context.Background(), SubmitRequest{
		Text:   "extract",
		Schema: `{"type":"object"}`,
		FileReferences: []FileReference{
			{FileID: "file-1", InputType: InputTypeFile},
			{FileID: "file-2", InputType: InputTypeImage},
		},
	})
	if err != nil {
		t.Fatalf("SubmitExtraction error: %v", err)
	}

	if len(got.Input) != 1 {
		t.Fatalf("input items = %d, want 1", len(got.Input))
	}
	content := got.Input[0].Content
	if len(content) != 3 {
		t.Fatalf("content blocks = %d, want 3", len(content))
	}
	if content[0].Type != InputTypeFile || content[0].FileID != "file-1" {
		t.Errorf("first block = %+v, want the file reference", content[0])
	}
	if content[1].Type != InputTypeImage || content[1].Detail != "auto" {
		t.Errorf("second block = %+v, want the image reference with auto detail", content[1])
	}
	if content[2].Type != InputTypeText || content[2].Text != "extract" {
		t.Errorf("last block = %+v, want the text block", content[2])
	}
}

func TestSubmitValidatesBeforeNetwork(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := New(Config{APIKey: "k", BaseURL: srv.URL})
	ctx := context.Background()

	if _, err := c.SubmitEvaluation(ctx, SubmitRequest{Schema: "{}"}); err != ErrMissingText {
		t.Errorf("missing text error = %v, want ErrMissingText", err)
	}
	if _, err := c.SubmitEvaluation(ctx, SubmitRequest{Text: "t"}); err != ErrMissingSchema {
		t.Errorf("missing schema error = %v, want ErrMissingSchema", err)
	}
	if _, err := c.SubmitExtraction(ctx, SubmitRequest{Text: "t"}); err != ErrMissingSchema {
		t.Errorf("missing schema error = %v, want ErrMissingSchema", err)
	}
	if calls != 0 {
		t.Errorf("provider was called %d times for invalid submissions", calls)
	}
}

func TestRetrievePendingAndCompleted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/responses/resp_pending":
			json.NewEncoder(w).Encode(map[string]any{"status": "in_progress"})
		case "/responses/resp_done":
			json.NewEncoder(w).Encode(map[string]any{
				"status": "completed",
				"output": []map[string]any{{
					"type": "message",
					"role": "assistant",
					"content": []map[string]any{
						{"type": "output_text", "text": "hello"},
					},
				}},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(Config{APIKey: "k", BaseURL: srv.URL})

	pending, err := c.Retrieve(context.Background(), "resp_pending")
	if err != nil {
		t.Fatalf("Retrieve pending error: %v", err)
	}
	if pending.Completed {
		t.Error("pending response reported completed")
	}
	if len(pending.Output) != 0 {
		t.Errorf("pending output = %v, want empty", pending.Output)
	}

	done, err := c.Retrieve(context.Background(), "resp_done")
	if err != nil {
		t.Fatalf("Retrieve done error: %v", err)
	}
	if !done.Completed {
		t.Fatal("completed response reported pending")
	}
	if done.Output[0].Content[0].Text != "hello" {
		t.Errorf("output text = %q, want hello", done.Output[0].Content[0].Text)
	}
}

func TestRetrieveProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(Config{APIKey: "k", BaseURL: srv.URL})
	if _, err := c.Retrieve(context.Background(), "resp_x"); err == nil {
		t.Fatal("expected error for provider 500")
	}
}

func TestMissingAPIKey(t *testing.T) {
	c := New(Config{})
	_, err := c.SubmitGraph(context.Background(), SubmitRequest{Text: "t"})
	if err != ErrMissingAPIKey {
		t.Errorf("error = %v, want ErrMissingAPIKey", err)
	}
}
