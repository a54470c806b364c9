package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/mdexhq/mdex/apps/controller/services"
	"github.com/mdexhq/mdex/apps/controller/services/gate"
	"github.com/mdexhq/mdex/pkg/llm"
)

const testAuthSecret = "0123456789abcdef0123456789abcdef"

// fakeProvider stands in for the hosted LLM API.
func fakeProvider(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/responses", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": "resp_test"})
	})
	mux.HandleFunc("/responses/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status": "completed",
			"output": []map[string]any{
				{
					"type": "message",
					"role": "assistant",
					"content": []map[string]string{
						{"type": "output_text", "text": "All attributes match. <FIT>"},
					},
				},
			},
		})
	})
	mux.HandleFunc("/models", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"id": "gpt-4o"}},
		})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func testRouter(t *testing.T, gateSecret string) http.Handler {
	t.Helper()
	provider := fakeProvider(t)

	router := chi.NewMux()
	gateSvc := gate.New(testAuthSecret, gateSecret, time.Hour)
	llmClient := llm.New(llm.Config{APIKey: "test-key", BaseURL: provider.URL})

	api := humachi.New(router, huma.DefaultConfig("test", "0.0.1"))
	api.UseMiddleware(gateSvc.Middleware())
	RegisterRoutes(api, &services.Container{Gate: gateSvc, LLM: llmClient})
	return router
}

// authToken fetches a session token through the auth route.
func authToken(t *testing.T, router http.Handler) string {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("auth request failed: %d %s", rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			return c.Value
		}
	}
	t.Fatal("no token cookie in auth response")
	return ""
}

func postJSON(router http.Handler, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	router := testRouter(t, "")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
}

func TestAuthIssuesCookie(t *testing.T) {
	router := testRouter(t, "")
	token := authToken(t, router)
	if token == "" {
		t.Fatal("Expected a non-empty token")
	}
}

func TestLoginWall(t *testing.T) {
	router := testRouter(t, "hunter2")

	rec := postJSON(router, "/api/login?secret=wrong", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for wrong secret, got %d", rec.Code)
	}

	rec = postJSON(router, "/api/login?secret=hunter2", "", "")
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for correct secret, got %d", rec.Code)
	}
}

func TestLoginWallOpenWhenUnconfigured(t *testing.T) {
	router := testRouter(t, "")
	rec := postJSON(router, "/api/login?secret=anything", "", "")
	if rec.Code != http.StatusOK {
		t.Errorf("Expected open wall to accept any secret, got %d", rec.Code)
	}
}

func TestEvaluateRequiresAuth(t *testing.T) {
	router := testRouter(t, "")
	rec := postJSON(router, "/api/evaluate", "", `{"text":"x","schema":"{}"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 without a token, got %d", rec.Code)
	}
}

func TestEvaluateSubmits(t *testing.T) {
	router := testRouter(t, "")
	token := authToken(t, router)

	rec := postJSON(router, "/api/evaluate", token, `{"text":"some data","schema":"{\"type\":\"object\"}"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var out struct {
		ResponseID string `json:"responseId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if out.ResponseID != "resp_test" {
		t.Errorf("Expected resp_test, got %s", out.ResponseID)
	}
}

func TestEvaluateRejectsEmptySubmission(t *testing.T) {
	router := testRouter(t, "")
	token := authToken(t, router)

	rec := postJSON(router, "/api/evaluate", token, `{"schema":"{}"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without text or files, got %d", rec.Code)
	}
}

func TestGraphSubmits(t *testing.T) {
	router := testRouter(t, "")
	token := authToken(t, router)

	rec := postJSON(router, "/api/graph", token, `{"prompt":"catalyst data"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestExtractSubmits(t *testing.T) {
	router := testRouter(t, "")
	token := authToken(t, router)

	rec := postJSON(router, "/api/extract", token, `{"text":"some data","schema":"{\"type\":\"object\"}","multiple_outputs":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPoll(t *testing.T) {
	router := testRouter(t, "")
	token := authToken(t, router)

	rec := postJSON(router, "/api/poll", token, `{"responseId":"resp_test"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var out struct {
		Completed bool `json:"completed"`
		Output    []struct {
			Role    string `json:"role"`
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"output"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !out.Completed {
		t.Error("Expected a completed job")
	}
	if len(out.Output) == 0 || len(out.Output[0].Content) == 0 {
		t.Fatal("Expected output content")
	}
	if !strings.Contains(out.Output[0].Content[0].Text, "<FIT>") {
		t.Errorf("Unexpected output text: %s", out.Output[0].Content[0].Text)
	}
}

func TestModelsPassthrough(t *testing.T) {
	router := testRouter(t, "")
	token := authToken(t, router)

	rec := postJSON(router, "/api/models", token, `{}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "gpt-4o") {
		t.Errorf("Expected provider models in body: %s", rec.Body.String())
	}
}

func TestBearerHeaderAlsoAuthenticates(t *testing.T) {
	router := testRouter(t, "")
	token := authToken(t, router)

	req := httptest.NewRequest(http.MethodPost, "/api/models", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 with bearer auth, got %d", rec.Code)
	}
}
