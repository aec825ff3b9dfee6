package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/whatsapp-ai-bot/internal/messaging"
	"github.com/wolfman30/whatsapp-ai-bot/internal/observability/metrics"
	"github.com/wolfman30/whatsapp-ai-bot/pkg/logging"
)

type stubMessenger struct {
	mu   sync.Mutex
	sent []messaging.OutboundReply
}

func (s *stubMessenger) SendReply(_ context.Context, reply messaging.OutboundReply) (messaging.SendReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, reply)
	return messaging.SendReceipt{SID: "SM1"}, nil
}

func newTestRouter(t *testing.T) (http.Handler, *stubMessenger) {
	t.Helper()
	messenger := &stubMessenger{}
	logger := logging.New("error")
	handler := messaging.NewStaticHandler("whatsapp:+14155238886", "back soon", messenger, nil, logger)
	return New(&Config{Logger: logger, MessagingHandler: handler}), messenger
}

func TestWebhookRoute(t *testing.T) {
	r, messenger := newTestRouter(t)

	form := url.Values{"From": {"whatsapp:+15551234567"}}
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	require.Len(t, messenger.sent, 1)
	assert.Equal(t, "whatsapp:+15551234567", messenger.sent[0].To)
}

func TestNoOtherRoutes(t *testing.T) {
	r, messenger := newTestRouter(t)

	cases := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/webhook", http.StatusMethodNotAllowed},
		{http.MethodGet, "/health", http.StatusNotFound},
		{http.MethodGet, "/metrics", http.StatusNotFound},
		{http.MethodPost, "/messaging/twilio/webhook", http.StatusNotFound},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, tc.status, w.Code, "%s %s", tc.method, tc.path)
	}
	assert.Empty(t, messenger.sent)
}

func TestMetricsRouter(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWebhookMetrics(reg)
	m.ObserveWebhook(messaging.VariantAI, string(messaging.OutcomeSent), 0.2)

	w := httptest.NewRecorder()
	NewMetrics(metrics.Handler(reg)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "whatsbot_webhook_requests_total")
}
