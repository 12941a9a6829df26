package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/brownbull-back/pkg/config"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(&config.LoggingConfig{Level: "loud", Format: "json", Output: "stdout"})
	require.Error(t, err)
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	log, err := New(&config.LoggingConfig{Level: "debug", Format: "text", Output: path})
	require.NoError(t, err)
	require.Equal(t, logrus.DebugLevel, log.GetLevel())
	require.IsType(t, &TextFormatter{}, log.Formatter)
	require.False(t, log.Formatter.(*TextFormatter).Colors)
}

func TestTextFormatter(t *testing.T) {
	f := &TextFormatter{TimestampFormat: "2006-01-02 15:04:05"}

	entry := logrus.NewEntry(logrus.New()).WithFields(logrus.Fields{
		"symbol":    "GC=F",
		"component": "market-data",
		"bars":      20,
	})
	entry.Time = time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)
	entry.Level = logrus.WarnLevel
	entry.Message = "Primary fetch failed"

	out, err := f.Format(entry)
	require.NoError(t, err)
	require.Equal(t, "2024-05-01 18:00:00 WARNING market-data: Primary fetch failed | bars=20 symbol=GC=F\n", string(out))
}

func TestTextFormatterColors(t *testing.T) {
	f := &TextFormatter{TimestampFormat: time.RFC3339, Colors: true}

	entry := logrus.NewEntry(logrus.New())
	entry.Level = logrus.ErrorLevel
	entry.Message = "boom"

	out, err := f.Format(entry)
	require.NoError(t, err)
	require.Contains(t, string(out), colorRed+"ERROR"+colorReset)
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.NotEmpty(t, seen)
	require.Equal(t, seen, rr.Header().Get(RequestIDHeader))
}

func TestRequestIDReusesCallerValue(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, "abc-123", seen)
	require.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
}

func TestMiddlewareLogsStatus(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logrus.New()
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	handler := RequestID(Middleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/contact", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "HTTP request", entry["msg"])
	require.Equal(t, float64(http.StatusTeapot), entry["status"])
	require.Equal(t, "/api/contact", entry["path"])
	require.NotEmpty(t, entry["request_id"])
}
