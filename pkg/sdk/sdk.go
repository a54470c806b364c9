// Package sdk is the client side of the extraction dashboard: typed calls
// against the controller API, cookie-token handling, and the polling loop
// that waits out background jobs. CLI commands use this surface so they
// don't wire keyring + HTTP + headers themselves.
package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mdexhq/mdex/pkg/sdk/sdkerr"
)

// Sdk wraps HTTP access to a running controller with auth baked in.
type Sdk struct {
	BaseURL string
	Token   string

	client *http.Client
}

// New returns an SDK bound to baseURL, picking up a cached token for that
// URL from the keyring when one exists.
func New(baseURL string) *Sdk {
	baseURL = strings.TrimRight(baseURL, "/")
	token, _ := LoadToken(baseURL)
	return &Sdk{
		BaseURL: baseURL,
		Token:   token,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// ClearCredentials removes the cached token for the SDK's base URL from the
// keyring and resets the in-memory copy.
func (s *Sdk) ClearCredentials() {
	if s == nil || s.BaseURL == "" {
		return
	}
	_ = DeleteToken(s.BaseURL)
	s.Token = ""
}

// Login validates the shared secret against the controller's password wall.
// Controllers without a configured secret accept any value.
func (s *Sdk) Login(ctx context.Context, secret string) error {
	url := fmt.Sprintf("%s/api/login?secret=%s", s.BaseURL, secret)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return sdkerr.New(sdkerr.CodeUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return sdkerr.Newf(sdkerr.CodeUnauthorized, "wrong secret")
	}
	if resp.StatusCode != http.StatusOK {
		return sdkerr.Newf(sdkerr.CodeUpstream, "login failed: status %d", resp.StatusCode)
	}
	return nil
}

// Authenticate obtains a fresh signed token from the controller, stores it
// in the keyring, and keeps it on the SDK for subsequent calls.
func (s *Sdk) Authenticate(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/api/auth", nil)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return sdkerr.New(sdkerr.CodeUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return sdkerr.Newf(sdkerr.CodeUpstream, "auth failed: status %d", resp.StatusCode)
	}

	token := tokenFromCookies(resp.Cookies())
	if token == "" {
		return sdkerr.Newf(sdkerr.CodeBadPayload, "no token cookie in auth response")
	}

	s.Token = token
	if err := SaveToken(s.BaseURL, token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	return nil
}

func tokenFromCookies(cookies []*http.Cookie) string {
	for _, c := range cookies {
		if c.Name == "token" {
			return c.Value
		}
	}
	return ""
}

// EvaluateRequest is the body of a schema-evaluation submission.
type EvaluateRequest struct {
	Text           string          `json:"text"`
	Schema         string          `json:"schema"`
	SystemPrompt   string          `json:"system_prompt,omitempty"`
	FileReferences []FileReference `json:"file_references,omitempty"`
	Model          string          `json:"model,omitempty"`
	APIKey         string          `json:"api_key,omitempty"`
}

// GraphRequest is the body of a knowledge-graph submission.
type GraphRequest struct {
	Prompt         string          `json:"prompt"`
	FileReferences []FileReference `json:"file_references,omitempty"`
	Model          string          `json:"model,omitempty"`
	APIKey         string          `json:"api_key,omitempty"`
}

// ExtractRequest is the body of a data-extraction submission.
type ExtractRequest struct {
	Text            string          `json:"text"`
	Schema          string          `json:"schema"`
	MultipleOutputs bool            `json:"multiple_outputs"`
	SystemPrompt    string          `json:"system_prompt,omitempty"`
	FileReferences  []FileReference `json:"file_references,omitempty"`
	Model           string          `json:"model,omitempty"`
	APIKey          string          `json:"api_key,omitempty"`
}

// FileReference pairs a provider file id with its input-type tag.
type FileReference struct {
	FileID    string `json:"openaiFileId"`
	InputType string `json:"inputType"`
}

// UploadedFile is the controller's record of one uploaded file.
type UploadedFile struct {
	ID        string `json:"id"`
	FileID    string `json:"openaiFileId"`
	InputType string `json:"inputType"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Size      int64  `json:"size"`
}

// Reference converts an uploaded file into a submission file reference.
func (f UploadedFile) Reference() FileReference {
	return FileReference{FileID: f.FileID, InputType: f.InputType}
}

// SubmitEvaluation submits a schema-fit evaluation and returns the job id.
func (s *Sdk) SubmitEvaluation(ctx context.Context, req EvaluateRequest) (string, error) {
	return s.submit(ctx, "/api/evaluate", req)
}

// SubmitGraph submits a knowledge-graph extraction and returns the job id.
func (s *Sdk) SubmitGraph(ctx context.Context, req GraphRequest) (string, error) {
	return s.submit(ctx, "/api/graph", req)
}

// SubmitExtraction submits a schema-conformant extraction and returns the
// job id.
func (s *Sdk) SubmitExtraction(ctx context.Context, req ExtractRequest) (string, error) {
	return s.submit(ctx, "/api/extract", req)
}

func (s *Sdk) submit(ctx context.Context, path string, body any) (string, error) {
	var resp struct {
		ResponseID string `json:"responseId"`
	}
	if err := s.postJSON(ctx, path, body, &resp); err != nil {
		return "", err
	}
	if resp.ResponseID == "" {
		return "", sdkerr.Newf(sdkerr.CodeBadPayload, "no responseId in submission response")
	}
	return resp.ResponseID, nil
}

// PollStatus is the controller's status report for one background job.
type PollStatus struct {
	Completed bool         `json:"completed"`
	Output    []OutputItem `json:"output,omitempty"`
}

// OutputItem is one message-like record of a completed job's output.
type OutputItem struct {
	Type    string          `json:"type,omitempty"`
	Role    string          `json:"role,omitempty"`
	Content []OutputContent `json:"content,omitempty"`
}

// OutputContent is one content element of an output record.
type OutputContent struct {
	Type string `json:"type,omitempty"`
	Text string `json:"text,omitempty"`
}

// Status issues one status request for a job id. Callers normally go
// through Poller instead.
func (s *Sdk) Status(ctx context.Context, responseID string) (*PollStatus, error) {
	body := map[string]string{"responseId": responseID}
	var status PollStatus
	if err := s.postJSON(ctx, "/api/poll", body, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ListModels returns the provider model list passthrough.
func (s *Sdk) ListModels(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := s.postJSON(ctx, "/api/models", struct{}{}, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// UploadFiles sends the named local files to the controller as one
// multipart request with parts file_0, file_1, … and returns the resulting
// file records in order.
func (s *Sdk) UploadFiles(ctx context.Context, paths []string) ([]UploadedFile, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for i, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		part, err := mw.CreateFormFile(fmt.Sprintf("file_%d", i), filepath.Base(path))
		if err != nil {
			f.Close()
			return nil, err
		}
		if _, err := io.Copy(part, f); err != nil {
			f.Close()
			return nil, err
		}
		f.Close()
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/api/upload-files", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	s.attachAuth(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, sdkerr.New(sdkerr.CodeUpstream, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if err := s.checkStatus(resp.StatusCode, data); err != nil {
		return nil, err
	}

	var out struct {
		Files []UploadedFile `json:"files"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, sdkerr.New(sdkerr.CodeBadPayload, err)
	}
	return out.Files, nil
}

func (s *Sdk) attachAuth(req *http.Request) {
	if s.Token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: s.Token})
	}
}

func (s *Sdk) postJSON(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	s.attachAuth(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return sdkerr.New(sdkerr.CodeUpstream, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := s.checkStatus(resp.StatusCode, respBody); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return sdkerr.New(sdkerr.CodeBadPayload, err)
	}
	return nil
}

// checkStatus maps controller status codes onto the SDK error taxonomy.
// A 401 also clears cached credentials so the next command re-authenticates.
func (s *Sdk) checkStatus(status int, body []byte) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusUnauthorized:
		s.ClearCredentials()
		return sdkerr.Newf(sdkerr.CodeUnauthorized, "unauthorized")
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return sdkerr.Newf(sdkerr.CodeValidation, "%s", errorMessage(body))
	default:
		return sdkerr.Newf(sdkerr.CodeUpstream, "status %d: %s", status, errorMessage(body))
	}
}

func errorMessage(body []byte) string {
	var parsed struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Detail != "" {
			return parsed.Detail
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	return strings.TrimSpace(string(body))
}
