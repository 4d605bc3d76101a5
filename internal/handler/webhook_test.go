package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/socialhook/support-bot/internal/router"
	"github.com/socialhook/support-bot/internal/telegram"
)

type recordingDispatcher struct {
	mu      sync.Mutex
	updates []telegram.Update
}

func (d *recordingDispatcher) Dispatch(upd telegram.Update) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.updates = append(d.updates, upd)
}

func TestWebhookDispatchesUpdate(t *testing.T) {
	d := &recordingDispatcher{}
	h := router.New(d, true, "")

	body := `{"update_id": 5, "message": {"message_id": 1, "text": "hi", "chat": {"id": 9, "type": "private"}}}`
	req := httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.updates) != 1 || d.updates[0].UpdateID != 5 {
		t.Fatalf("dispatched = %+v", d.updates)
	}
}

func TestWebhookRejectsMalformedBody(t *testing.T) {
	d := &recordingDispatcher{}
	h := router.New(d, true, "")

	req := httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if len(d.updates) != 0 {
		t.Fatal("malformed body must not dispatch")
	}
}

func TestWebhookSecretToken(t *testing.T) {
	d := &recordingDispatcher{}
	h := router.New(d, true, "hook-secret")

	body := `{"update_id": 7, "message": {"message_id": 1, "text": "hi", "chat": {"id": 9, "type": "private"}}}`

	// Missing or wrong token is a forgery.
	for _, token := range []string{"", "wrong"} {
		req := httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("X-Telegram-Bot-Api-Secret-Token", token)
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("token %q: status = %d, want 401", token, w.Code)
		}
	}
	if len(d.updates) != 0 {
		t.Fatal("forged post must not dispatch")
	}

	req := httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Telegram-Bot-Api-Secret-Token", "hook-secret")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.updates) != 1 || d.updates[0].UpdateID != 7 {
		t.Fatalf("dispatched = %+v", d.updates)
	}
}

func TestHealthAndReady(t *testing.T) {
	h := router.New(nil, false, "")
	for _, path := range []string{"/health", "/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("%s status = %d", path, w.Code)
		}
	}
}

func TestWebhookRouteAbsentInPollingMode(t *testing.T) {
	h := router.New(nil, false, "")
	req := httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader("{}"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
