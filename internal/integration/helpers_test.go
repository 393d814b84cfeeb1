package integration_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

const fixturePath = "../../data/mock/forecast_14day.json"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loadFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(fixturePath)
	require.NoError(t, err, "read forecast fixture")
	return data
}

// upstream is a stand-in forecast API. Its response can be swapped between
// requests to simulate outages and malformed payloads.
type upstream struct {
	srv      *httptest.Server
	status   atomic.Int32
	body     atomic.Value
	requests atomic.Int32
	lastURL  atomic.Value
}

func newUpstream(t *testing.T, body []byte) *upstream {
	t.Helper()
	u := &upstream{}
	u.respond(http.StatusOK, body)
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.requests.Add(1)
		u.lastURL.Store(r.URL.RequestURI())
		w.WriteHeader(int(u.status.Load()))
		w.Write(u.body.Load().([]byte)) //nolint:errcheck // test server
	}))
	t.Cleanup(u.srv.Close)
	return u
}

func (u *upstream) respond(status int, body []byte) {
	u.status.Store(int32(status))
	u.body.Store(body)
}

func (u *upstream) URL() string { return u.srv.URL + "/forecast" }
