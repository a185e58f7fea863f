package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/irsalhamdi/online-store/api"
	"github.com/irsalhamdi/online-store/core/card"
	"github.com/irsalhamdi/online-store/core/checkout"
	"github.com/irsalhamdi/online-store/rate"
	"github.com/sirupsen/logrus"
)

type TestEnv struct {
	*httptest.Server
	Cards    *card.Memory
	Intake   *mockIntake
	Uploader *mockUploader
}

func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	intake := newMockIntake()
	t.Cleanup(intake.Close)

	limiter := rate.NewLimiter(100, time.Minute, rate.Every(time.Millisecond))
	t.Cleanup(limiter.Stop)

	env := &TestEnv{
		Cards:    card.NewMemory(),
		Intake:   intake,
		Uploader: &mockUploader{url: "https://res.example/my-online-store/photo.png"},
	}

	mux := api.APIMux(api.APIConfig{
		Log:            log,
		Session:        scs.New(),
		Cards:          env.Cards,
		Submitter:      checkout.NewFormIntake(intake.URL, "грн", time.Second),
		Uploader:       env.Uploader,
		MaxUploadBytes: 1 << 20,
		Limiter:        limiter,
	})

	env.Server = httptest.NewServer(mux)
	t.Cleanup(env.Server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	env.Client().Jar = jar

	return env
}

// do sends body as JSON (when not nil) and decodes the answer into out
// (when not nil), returning the status code.
func (env *TestEnv) do(t *testing.T, method, path string, body, out any) int {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	}

	r, err := http.NewRequest(method, env.URL+path, rd)
	if err != nil {
		t.Fatal(err)
	}
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}

	w, err := env.Client().Do(r)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	if out != nil {
		if err := json.NewDecoder(w.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decoding response: %v", method, path, err)
		}
	}

	return w.StatusCode
}

type errorBody struct {
	Error string `json:"error"`
}

func decode(w *http.Response, out any) error {
	return json.NewDecoder(w.Body).Decode(out)
}
