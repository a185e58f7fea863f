package test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/irsalhamdi/online-store/core/media"
)

// mockIntake stands in for the external order form endpoint.
type mockIntake struct {
	*httptest.Server

	mu    sync.Mutex
	fail  bool
	forms []map[string]string
}

func newMockIntake() *mockIntake {
	m := &mockIntake{}
	m.Server = httptest.NewServer(http.HandlerFunc(m.handle))
	return m
}

func (m *mockIntake) handle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	form := make(map[string]string)
	for k, v := range r.MultipartForm.Value {
		form[k] = v[0]
	}

	m.mu.Lock()
	m.forms = append(m.forms, form)
	fail := m.fail
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if fail {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"intake is down"}`))
		return
	}
	w.Write([]byte(`{"next":"/thanks","ok":true}`))
}

func (m *mockIntake) setFail(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = fail
}

func (m *mockIntake) received() []map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]map[string]string(nil), m.forms...)
}

// mockUploader stands in for the media host.
type mockUploader struct {
	mu    sync.Mutex
	url   string
	err   error
	files []string
}

func (m *mockUploader) Upload(_ context.Context, f media.File) (string, error) {
	body, _ := io.ReadAll(f.Body)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.files = append(m.files, f.Name+":"+string(body))
	return m.url, m.err
}

func (m *mockUploader) uploaded() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.files...)
}

func (m *mockUploader) setErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}
