package conversation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/wolfman30/hotel-booking-assistant/pkg/logging"
)

type stubService struct {
	lastReq  MessageRequest
	resp     *Response
	err      error
	history  []Message
	resetIDs []string
}

func (s *stubService) ProcessMessage(_ context.Context, req MessageRequest) (*Response, error) {
	s.lastReq = req
	return s.resp, s.err
}

func (s *stubService) GetHistory(_ context.Context, _ string) ([]Message, error) {
	return s.history, s.err
}

func (s *stubService) ResetSession(_ context.Context, sessionID string) error {
	s.resetIDs = append(s.resetIDs, sessionID)
	return s.err
}

func newTestRouter(svc Service) http.Handler {
	h := NewHandler(svc, logging.Discard())
	r := chi.NewRouter()
	r.Post("/chat/message", h.Message)
	r.Get("/chat/sessions/{sessionID}/history", h.History)
	r.Delete("/chat/sessions/{sessionID}", h.Reset)
	return r
}

func TestHandler_Message(t *testing.T) {
	svc := &stubService{resp: &Response{SessionID: "s1", Message: "hello back", BookingActive: true}}
	router := newTestRouter(svc)

	body, _ := json.Marshal(MessageRequest{SessionID: "s1", Message: "hello"})
	req := httptest.NewRequest(http.MethodPost, "/chat/message", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, w.Code)
	}
	if svc.lastReq.SessionID != "s1" || svc.lastReq.Message != "hello" {
		t.Fatalf("unexpected request forwarded: %#v", svc.lastReq)
	}
	var resp Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != "hello back" || !resp.BookingActive {
		t.Fatalf("unexpected response: %#v", resp)
	}
}

func TestHandler_Message_BadRequests(t *testing.T) {
	router := newTestRouter(&stubService{err: ErrMissingSession})

	req := httptest.NewRequest(http.MethodPost, "/chat/message", strings.NewReader("{"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected %d for malformed body, got %d", http.StatusBadRequest, w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/chat/message", strings.NewReader(`{"message":"hi"}`))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected %d for missing session, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestHandler_Message_ServiceError(t *testing.T) {
	router := newTestRouter(&stubService{err: errors.New("boom")})

	req := httptest.NewRequest(http.MethodPost, "/chat/message", strings.NewReader(`{"session_id":"s1","message":"confirm"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestHandler_History(t *testing.T) {
	svc := &stubService{history: []Message{{Role: RoleUser, Content: "hello"}}}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/chat/sessions/s1/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, w.Code)
	}
	var payload struct {
		SessionID string    `json:"session_id"`
		Messages  []Message `json:"messages"`
	}
	if err := json.NewDecoder(w.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.SessionID != "s1" || len(payload.Messages) != 1 {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}

func TestHandler_Reset(t *testing.T) {
	svc := &stubService{}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/chat/sessions/s1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected %d, got %d", http.StatusNoContent, w.Code)
	}
	if len(svc.resetIDs) != 1 || svc.resetIDs[0] != "s1" {
		t.Fatalf("expected reset of s1, got %#v", svc.resetIDs)
	}
}
