package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/storefrontdev/storefront/internal/storage"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	store := storage.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newTestHub(t *testing.T) *EventHub {
	t.Helper()
	hub := NewEventHub(zap.NewNop())
	t.Cleanup(hub.CloseAll)
	return hub
}

// doRequest routes a request with an optional JSON body and returns
// the recorded response.
func doRequest(t *testing.T, router *mux.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return doRequestWithHeader(t, router, method, path, body, "", "")
}

// doRequestWithHeader is doRequest with one extra request header.
func doRequestWithHeader(t *testing.T, router *mux.Router, method, path string, body any, header, value string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	r := httptest.NewRequest(method, path, reader)
	r.Header.Set("Content-Type", "application/json")
	if header != "" {
		r.Header.Set(header, value)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

// decodeBody unmarshals a recorded JSON response body.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decoding response %q: %v", w.Body.String(), err)
	}
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func intPtr(i int64) *int64 { return &i }
