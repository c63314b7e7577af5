package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/copydesk/internal/interfaces"
	"github.com/ternarybob/copydesk/internal/models"
)

type fakeGeneration struct {
	sessionErr error
	streamErr  error
	deltas     []string
}

func (f *fakeGeneration) EnsureSession(req *interfaces.GenerateRequest) (*models.ChatSession, error) {
	if f.sessionErr != nil {
		return nil, f.sessionErr
	}
	if req.SessionID == "" {
		req.SessionID = "session_test"
	}
	return &models.ChatSession{ID: req.SessionID}, nil
}

func (f *fakeGeneration) GenerateStream(ctx context.Context, req *interfaces.GenerateRequest, onDelta func(string)) (*models.ChatMessage, error) {
	for _, delta := range f.deltas {
		onDelta(delta)
	}
	if f.streamErr != nil {
		onDelta(fmt.Sprintf("\n\n[Error: %v]", f.streamErr))
		return nil, f.streamErr
	}
	return &models.ChatMessage{
		SessionID: req.SessionID,
		Role:      "assistant",
		Content:   strings.Join(f.deltas, ""),
	}, nil
}

func (f *fakeGeneration) RecordFeedback(ctx context.Context, req *interfaces.FeedbackRequest) (*models.FeedbackRecord, error) {
	return nil, nil
}
func (f *fakeGeneration) GetSession(id string) (*models.ChatSession, error) { return nil, nil }
func (f *fakeGeneration) ListSessions(limit int) ([]*models.ChatSession, error) {
	return nil, nil
}
func (f *fakeGeneration) ListMessages(sessionID string) ([]*models.ChatMessage, error) {
	return nil, nil
}

func TestGenerateStreamHandler(t *testing.T) {
	gen := &fakeGeneration{deltas: []string{"Your clients ", "deserve better."}}
	handler := NewGenerateHandler(gen, arbor.NewLogger())

	body := strings.NewReader(`{"message":"Write a caption","content_type":"caption","platform":"instagram"}`)
	r := httptest.NewRequest("POST", "/api/generate", body)
	w := httptest.NewRecorder()

	handler.GenerateStreamHandler(w, r)

	resp := w.Result()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "session_test", resp.Header.Get("X-Session-Id"))
	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, "Your clients deserve better.", w.Body.String())
}

func TestGenerateStreamHandlerStreamErrorStaysInBody(t *testing.T) {
	gen := &fakeGeneration{
		deltas:    []string{"partial "},
		streamErr: fmt.Errorf("model overloaded"),
	}
	handler := NewGenerateHandler(gen, arbor.NewLogger())

	body := strings.NewReader(`{"message":"hi","content_type":"caption"}`)
	r := httptest.NewRequest("POST", "/api/generate", body)
	w := httptest.NewRecorder()

	handler.GenerateStreamHandler(w, r)

	// headers were already sent, the failure shows up inline
	require.Equal(t, http.StatusOK, w.Result().StatusCode)
	assert.Contains(t, w.Body.String(), "partial ")
	assert.Contains(t, w.Body.String(), "[Error: model overloaded]")
}

func TestGenerateStreamHandlerValidation(t *testing.T) {
	handler := NewGenerateHandler(&fakeGeneration{}, arbor.NewLogger())

	r := httptest.NewRequest("POST", "/api/generate", strings.NewReader(`{"content_type":"caption"}`))
	w := httptest.NewRecorder()
	handler.GenerateStreamHandler(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)

	r = httptest.NewRequest("GET", "/api/generate", nil)
	w = httptest.NewRecorder()
	handler.GenerateStreamHandler(w, r)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Result().StatusCode)
}

func TestGenerateStreamHandlerRejectsUnknownContentType(t *testing.T) {
	// EnsureSession runs before the status line is written, so a bad
	// content type comes back as a clean 400 instead of an empty 200
	gen := &fakeGeneration{sessionErr: fmt.Errorf("invalid content type: blog_post")}
	handler := NewGenerateHandler(gen, arbor.NewLogger())

	r := httptest.NewRequest("POST", "/api/generate", strings.NewReader(`{"message":"hi","content_type":"blog_post"}`))
	w := httptest.NewRecorder()
	handler.GenerateStreamHandler(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
	assert.Contains(t, w.Body.String(), "invalid content type")
	assert.Empty(t, w.Result().Header.Get("X-Session-Id"))
}

func TestGenerateStreamHandlerSessionError(t *testing.T) {
	gen := &fakeGeneration{sessionErr: fmt.Errorf("unknown session")}
	handler := NewGenerateHandler(gen, arbor.NewLogger())

	r := httptest.NewRequest("POST", "/api/generate", strings.NewReader(`{"message":"hi","content_type":"caption","session_id":"nope"}`))
	w := httptest.NewRecorder()
	handler.GenerateStreamHandler(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
	assert.Contains(t, w.Body.String(), "unknown session")
}
