package security

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type mockAdmitter struct{ mock.Mock }

func (m *mockAdmitter) Admit(ctx context.Context, clientKey string) (bool, error) {
	args := m.Called(ctx, clientKey)
	return args.Bool(0), args.Error(1)
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestClientKey(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		remoteAddr string
		want       string
	}{
		{"left-most forwarded", "203.0.113.7, 10.0.0.1", "10.0.0.2:5000", "203.0.113.7"},
		{"forwarded with spaces", "  198.51.100.3 ", "10.0.0.2:5000", "198.51.100.3"},
		{"no header", "", "192.0.2.10:41234", "192.0.2.10"},
		{"empty first entry", " ,10.0.0.1", "192.0.2.10:41234", "192.0.2.10"},
		{"remote without port", "", "192.0.2.11", "192.0.2.11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.want, ClientKey(r))
		})
	}
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name       string
		admitted   bool
		err        error
		wantStatus int
	}{
		{"admitted", true, nil, http.StatusNoContent},
		{"rejected", false, nil, http.StatusTooManyRequests},
		{"controller error passes request", false, errors.New("redis down"), http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			admitter := new(mockAdmitter)
			admitter.On("Admit", mock.Anything, "203.0.113.7").Return(tt.admitted, tt.err)

			r := httptest.NewRequest(http.MethodPost, "/api/files", nil)
			r.Header.Set("X-Forwarded-For", "203.0.113.7")
			rec := httptest.NewRecorder()

			RateLimit(admitter)(okHandler).ServeHTTP(rec, r)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusTooManyRequests {
				assert.Contains(t, rec.Body.String(), "Too many requests")
			}
			admitter.AssertExpectations(t)
		})
	}
}

func TestUploadGuard_RejectsDeclaredOversize(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/files", strings.NewReader("x"))
	r.ContentLength = 10 + multipartOverhead + 1
	rec := httptest.NewRecorder()

	called := false
	UploadGuard(10)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })).ServeHTTP(rec, r)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.False(t, called)
}

func TestUploadGuard_PassesSmallBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/files", strings.NewReader("hello"))
	rec := httptest.NewRecorder()

	UploadGuard(10)(okHandler).ServeHTTP(rec, r)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequestLogger_LevelByStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	failing := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	RequestLogger(logger)(okHandler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	RequestLogger(logger)(failing).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, zap.InfoLevel, entries[0].Level)
		assert.Equal(t, zap.ErrorLevel, entries[1].Level)
		assert.Equal(t, int64(http.StatusServiceUnavailable), entries[1].ContextMap()["status_code"])
	}
}
