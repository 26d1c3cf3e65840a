// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/profile-forge/internal/database"
	"github.com/profile-forge/internal/processor"
)

// stubClient returns the same completion for every call and records
// the prompts it was sent
type stubClient struct {
	mu       sync.Mutex
	response string
	prompts  []string
}

func (c *stubClient) Complete(ctx context.Context, prompt string) (string, error) {
	c.mu.Lock()
	c.prompts = append(c.prompts, prompt)
	c.mu.Unlock()
	return c.response, nil
}

func (c *stubClient) CompleteWithImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	c.mu.Lock()
	c.prompts = append(c.prompts, prompt)
	c.mu.Unlock()
	return c.response, nil
}

func (c *stubClient) sentPrompts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.prompts...)
}

const stubResponse = `{
	"personalInfo": {"fullName": "Dana Reyes", "email": "dana@example.com"},
	"summary": "Backend engineer.",
	"experience": [{"company": "Acme", "position": "Engineer", "bulletPoints": ["Built billing pipeline handling 2M events daily"]}]
}`

func newTestHandler(t *testing.T) *ParseHandler {
	t.Helper()
	structurer := processor.NewStructurer(&stubClient{response: stubResponse})
	return NewParseHandler(structurer, nil, nil, 1<<20)
}

func TestHandleParseTextReturnsRecord(t *testing.T) {
	handler := newTestHandler(t)

	body := `{"text": "Dana Reyes. Backend engineer at Acme."}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse/text", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.HandleParseText(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var record processor.ProfileRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &record); err != nil {
		t.Fatalf("response is not a profile record: %v", err)
	}
	if record.PersonalInfo.FullName != "Dana Reyes" {
		t.Errorf("expected full name from completion, got %q", record.PersonalInfo.FullName)
	}
	if record.PersonalInfo.Email != "dana@example.com" {
		t.Errorf("expected email from completion, got %q", record.PersonalInfo.Email)
	}
}

func TestHandleParseTextSplitsOversizedDocument(t *testing.T) {
	client := &stubClient{response: stubResponse}
	structurer := processor.NewStructurer(client)
	handler := NewParseHandler(structurer, nil, nil, 1<<20)

	// Well past what fits in a single prompt
	longText := strings.Repeat("Led the migration of the billing platform to the new stack. ", 700)
	body, err := json.Marshal(map[string]string{"text": longText})
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse/text", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.HandleParseText(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	prompts := client.sentPrompts()
	if len(prompts) < 2 {
		t.Fatalf("expected the document to be split into multiple section prompts, got %d", len(prompts))
	}
	for i, prompt := range prompts {
		if len(prompt) >= len(longText) {
			t.Errorf("prompt %d carries the whole document (%d chars)", i, len(prompt))
		}
	}
}

func TestHandleParseTextRejectsEmptyBody(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse/text", strings.NewReader(`{"text": "   "}`))
	rec := httptest.NewRecorder()

	handler.HandleParseText(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank text, got %d", rec.Code)
	}
}

func TestHandleParseTextRejectsGet(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/parse/text", nil)
	rec := httptest.NewRecorder()

	handler.HandleParseText(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestHandleParseFileRejectsUnsupportedType(t *testing.T) {
	handler := newTestHandler(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "archive.zip")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("not really a zip"))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()

	handler.HandleParseFile(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415 for .zip, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleParseFileAcceptsPlainText(t *testing.T) {
	handler := newTestHandler(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "resume.txt")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("Dana Reyes\nBackend engineer at Acme."))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()

	handler.HandleParseFile(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var record processor.ProfileRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &record); err != nil {
		t.Fatalf("response is not a profile record: %v", err)
	}
	if len(record.Experience) != 1 {
		t.Errorf("expected one experience entry, got %d", len(record.Experience))
	}
}

func TestHandleHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()

	HandleHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("unexpected health body: %s", rec.Body.String())
	}
}

func TestHistoryHandlerRejectsBadLimit(t *testing.T) {
	handler := NewHistoryHandler(&database.HistoryStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history?limit=zero", nil)
	rec := httptest.NewRecorder()

	handler.HandleList(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric limit, got %d", rec.Code)
	}
}

func TestHistoryHandlerWithoutStore(t *testing.T) {
	handler := NewHistoryHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
	rec := httptest.NewRecorder()

	handler.HandleList(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without a store, got %d", rec.Code)
	}
}
