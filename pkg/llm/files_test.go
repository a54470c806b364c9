package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClassifyMIME(t *testing.T) {
	tests := []struct {
		mime      string
		purpose   string
		inputType string
		wantErr   bool
	}{
		{"application/pdf", "user_data", InputTypeFile, false},
		{"image/png", "vision", InputTypeImage, false},
		{"image/jpeg", "vision", InputTypeImage, false},
		{"text/plain", "", "", true},
		{"application/json", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			purpose, inputType, err := ClassifyMIME(tt.mime)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ClassifyMIME(%q) succeeded, want error", tt.mime)
				}
				return
			}
			if err != nil {
				t.Fatalf("ClassifyMIME(%q) error: %v", tt.mime, err)
			}
			if purpose != tt.purpose || inputType != tt.inputType {
				t.Errorf("ClassifyMIME(%q) = (%q, %q), want (%q, %q)",
					tt.mime, purpose, inputType, tt.purpose, tt.inputType)
			}
		})
	}
}

func TestUploadFile(t *testing.T) {
	var gotPurpose string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parsing multipart: %v", err)
		}
		gotPurpose = r.FormValue("purpose")
		json.NewEncoder(w).Encode(map[string]string{"id": "file-abc"})
	}))
	defer srv.Close()

	c := New(Config{APIKey: "k", BaseURL: srv.URL})
	fileID, inputType, err := c.UploadFile(context.Background(), "doc.pdf", "application/pdf", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("UploadFile error: %v", err)
	}
	if fileID != "file-abc" {
		t.Errorf("fileID = %q, want file-abc", fileID)
	}
	if inputType != InputTypeFile {
		t.Errorf("inputType = %q, want %q", inputType, InputTypeFile)
	}
	if gotPurpose != "user_data" {
		t.Errorf("purpose = %q, want user_data", gotPurpose)
	}
}

func TestUploadFileRejectsUnsupportedBeforeNetwork(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := New(Config{APIKey: "k", BaseURL: srv.URL})
	_, _, err := c.UploadFile(context.Background(), "notes.txt", "text/plain", strings.NewReader("hi"))
	if err == nil {
		t.Fatal("expected error for text/plain upload")
	}
	if calls != 0 {
		t.Errorf("provider was called %d times for a rejected MIME type", calls)
	}
}
