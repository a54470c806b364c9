// Package llm wraps the OpenAI Responses API in background mode: job
// submission returns a provider-assigned response id immediately and the
// result is fetched later via Retrieve. The base URL can be pointed at any
// OpenAI-compatible gateway.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrMissingText is returned when a submission has neither input text
	// nor file references.
	ErrMissingText = errors.New("llm: text or file references are required")

	// ErrMissingSchema is returned when a schema-bound submission has no schema.
	ErrMissingSchema = errors.New("llm: schema is required")

	// ErrMissingAPIKey is returned when neither the client nor the request
	// carries an API key.
	ErrMissingAPIKey = errors.New("llm: api key is not configured")
)

const (
	// DefaultBaseURL is the hosted OpenAI endpoint.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultModel is used when a submission does not name one.
	DefaultModel = "gpt-4o"
)

// Config configures a Client.
type Config struct {
	APIKey  string
	BaseURL string // defaults to DefaultBaseURL
	Model   string // defaults to DefaultModel
}

// Client is a thin HTTP client for the Responses API.
type Client struct {
	cfg    Config
	client *http.Client
}

// New creates a Client. Background submissions return quickly, but file
// uploads can carry multi-megabyte PDFs, so the timeout is generous.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: 2 * time.Minute},
	}
}

// SubmitRequest carries the caller-supplied inputs for one background job.
// APIKey, when set, overrides the client's configured key for this request.
type SubmitRequest struct {
	Text            string
	Schema          string
	SystemPrompt    string
	Model           string
	MultipleOutputs bool
	FileReferences  []FileReference
	APIKey          string
}

func (r SubmitRequest) model(fallback string) string {
	if r.Model != "" {
		return r.Model
	}
	return fallback
}

// isReasoningModel reports whether the model name denotes the reasoning
// family. Those models reject the temperature parameter and get no tools.
func isReasoningModel(model string) bool {
	return strings.HasPrefix(model, "o")
}

// SubmitEvaluation submits a schema-fit evaluation job and returns the
// provider response id.
func (c *Client) SubmitEvaluation(ctx context.Context, req SubmitRequest) (string, error) {
	if req.Text == "" && len(req.FileReferences) == 0 {
		return "", ErrMissingText
	}
	if req.Schema == "" {
		return "", ErrMissingSchema
	}

	model := req.model(c.cfg.Model)
	body := c.baseSubmission(model, req)
	body.Instructions = joinInstructions(req.SystemPrompt, evaluationPrompt, "Schema:\n"+req.Schema)

	return c.submit(ctx, body, req.APIKey)
}

// SubmitGraph submits a knowledge-graph extraction job. The structured
// output is constrained to the triplet schema.
func (c *Client) SubmitGraph(ctx context.Context, req SubmitRequest) (string, error) {
	if req.Text == "" && len(req.FileReferences) == 0 {
		return "", ErrMissingText
	}

	model := req.model(c.cfg.Model)
	body := c.baseSubmission(model, req)
	body.Instructions = fmt.Sprintf("%s\n\n%s", knowledgeGraphPrompt, req.Text)
	body.Text = &textFormatWrapper{Format: responseFormat{
		Name:   "response",
		Strict: true,
		Type:   "json_schema",
		Schema: knowledgeGraphSchema(),
	}}

	return c.submit(ctx, body, req.APIKey)
}

// SubmitExtraction submits a schema-conformant data extraction job. When
// MultipleOutputs is set the caller schema is wrapped in the items envelope.
func (c *Client) SubmitExtraction(ctx context.Context, req SubmitRequest) (string, error) {
	if req.Text == "" && len(req.FileReferences) == 0 {
		return "", ErrMissingText
	}
	if req.Schema == "" {
		return "", ErrMissingSchema
	}

	schema := json.RawMessage(req.Schema)
	if req.MultipleOutputs {
		wrapped, err := WrapMultiple(req.Schema)
		if err != nil {
			return "", fmt.Errorf("llm: wrapping schema: %w", err)
		}
		schema = wrapped
	} else if !json.Valid(schema) {
		return "", fmt.Errorf("llm: schema is not valid JSON")
	}

	model := req.model(c.cfg.Model)
	body := c.baseSubmission(model, req)
	body.Instructions = joinInstructions(extractPrompt, req.SystemPrompt)
	body.Text = &textFormatWrapper{Format: responseFormat{
		Name:   "response",
		Strict: true,
		Type:   "json_schema",
		Schema: schema,
	}}

	return c.submit(ctx, body, req.APIKey)
}

// joinInstructions concatenates the non-empty prompt segments with blank
// lines between them.
func joinInstructions(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

// baseSubmission assembles the submission fields shared by all three job
// kinds: user content, background flag, and the model-family policy.
func (c *Client) baseSubmission(model string, req SubmitRequest) *submission {
	body := &submission{
		Model:      model,
		Background: true,
		Input: []inputItem{{
			Role:    "user",
			Content: assembleContent(req.Text, req.FileReferences),
		}},
	}
	if isReasoningModel(model) {
		body.Tools = []tool{}
	} else {
		zero := 0.0
		body.Temperature = &zero
		body.Tools = []tool{{Type: "web_search_preview"}}
	}
	return body
}

func (c *Client) submit(ctx context.Context, body *submission, apiKey string) (string, error) {
	raw, err := c.doJSON(ctx, http.MethodPost, "/responses", body, apiKey)
	if err != nil {
		return "", err
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("llm: decoding submission response: %w", err)
	}
	if resp.ID == "" {
		return "", fmt.Errorf("llm: provider returned no response id")
	}

	slog.Debug("submitted background response", "id", resp.ID, "model", body.Model)
	return resp.ID, nil
}

// Retrieve fetches the raw status of a background response. A response is
// only meaningful once Completed is true; before that Output is empty.
func (c *Client) Retrieve(ctx context.Context, responseID string) (*Status, error) {
	if responseID == "" {
		return nil, fmt.Errorf("llm: response id is required")
	}

	raw, err := c.doJSON(ctx, http.MethodGet, "/responses/"+responseID, nil, "")
	if err != nil {
		return nil, err
	}

	var resp struct {
		Status string       `json:"status"`
		Output []OutputItem `json:"output"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("llm: decoding status response: %w", err)
	}

	if resp.Status != "completed" {
		return &Status{Completed: false}, nil
	}
	return &Status{Completed: true, Output: resp.Output}, nil
}

// ListModels returns the provider's model list as raw JSON so the handler
// can pass it through untouched.
func (c *Client) ListModels(ctx context.Context) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodGet, "/models", nil, "")
}

func (c *Client) key(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if c.cfg.APIKey != "" {
		return c.cfg.APIKey, nil
	}
	return "", ErrMissingAPIKey
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, apiKey string) (json.RawMessage, error) {
	key, err := c.key(apiKey)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+key)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("llm: provider error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return data, nil
}
