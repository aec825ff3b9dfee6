package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfman30/whatsapp-ai-bot/pkg/logging"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var record map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &record))
	return record
}

func TestRequestLoggerRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	handler := RequestLogger(logging.NewWithWriter("info", &buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodPost, "/webhook", nil)
	req.Header.Set("X-Request-ID", "req-42")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	record := decodeLine(t, &buf)
	assert.Equal(t, "request completed", record["msg"])
	assert.Equal(t, "/webhook", record["path"])
	assert.Equal(t, "req-42", record["request_id"])
	assert.Equal(t, float64(http.StatusTeapot), record["status"])
	assert.NotContains(t, record, "trace_id")
}

func TestRequestLoggerUsesChiRequestID(t *testing.T) {
	var buf bytes.Buffer
	inner := RequestLogger(logging.NewWithWriter("info", &buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	handler := chimw.RequestID(inner)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/webhook", nil))

	record := decodeLine(t, &buf)
	id, _ := record["request_id"].(string)
	assert.NotEmpty(t, id)
	assert.Equal(t, float64(http.StatusOK), record["status"])
}

func TestRequestLoggerGeneratesID(t *testing.T) {
	var buf bytes.Buffer
	handler := RequestLogger(logging.NewWithWriter("info", &buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	record := decodeLine(t, &buf)
	id, _ := record["request_id"].(string)
	assert.Len(t, id, 36)
}
