package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/wolfman30/whatsapp-ai-bot/pkg/logging"
)

const defaultTwilioBaseURL = "https://api.twilio.com"

var twilioSendTracer = otel.Tracer("whatsbot.internal.messaging.twilio_send")

// ErrCredentialsMissing is returned before any network call when the account SID or token is empty.
var ErrCredentialsMissing = errors.New("messaging: twilio credentials missing")

// TwilioSender posts WhatsApp messages using Twilio's REST API. It makes a
// single attempt per reply.
type TwilioSender struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

// TwilioOption customises a TwilioSender.
type TwilioOption func(*TwilioSender)

// WithTwilioBaseURL points the sender at another API host.
func WithTwilioBaseURL(baseURL string) TwilioOption {
	return func(s *TwilioSender) {
		if baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/"); baseURL != "" {
			s.baseURL = baseURL
		}
	}
}

// WithTwilioHTTPClient replaces the default 10s-timeout client.
func WithTwilioHTTPClient(client *http.Client) TwilioOption {
	return func(s *TwilioSender) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// NewTwilioSender builds a sender with sane defaults.
func NewTwilioSender(accountSID, authToken, defaultFrom string, logger *logging.Logger, opts ...TwilioOption) *TwilioSender {
	if logger == nil {
		logger = logging.Default()
	}
	s := &TwilioSender{
		accountSID: accountSID,
		authToken:  authToken,
		from:       defaultFrom,
		baseURL:    defaultTwilioBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ReplyMessenger = (*TwilioSender)(nil)

// SendReply dispatches a single WhatsApp message.
func (s *TwilioSender) SendReply(ctx context.Context, msg OutboundReply) (SendReceipt, error) {
	if s.accountSID == "" || s.authToken == "" {
		return SendReceipt{}, ErrCredentialsMissing
	}
	if msg.To == "" {
		return SendReceipt{}, errors.New("messaging: to required")
	}
	if msg.From == "" {
		msg.From = s.from
	}
	if msg.From == "" {
		return SendReceipt{}, errors.New("messaging: from required")
	}
	if strings.TrimSpace(msg.Body) == "" {
		return SendReceipt{}, errors.New("messaging: body required")
	}

	ctx, span := twilioSendTracer.Start(ctx, "messaging.twilio.send")
	defer span.End()
	span.SetAttributes(attribute.String("whatsbot.to", msg.To))

	payload := url.Values{}
	payload.Set("To", msg.To)
	payload.Set("From", msg.From)
	payload.Set("Body", msg.Body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.baseURL, url.PathEscape(s.accountSID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(payload.Encode()))
	if err != nil {
		span.RecordError(err)
		return SendReceipt{}, fmt.Errorf("messaging: build twilio request: %w", err)
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		return SendReceipt{}, fmt.Errorf("messaging: twilio request: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("messaging: twilio send failed: %s", formatTwilioError(resp.StatusCode, body))
		span.RecordError(err)
		span.SetStatus(codes.Error, "provider")
		return SendReceipt{}, err
	}

	var receipt SendReceipt
	var parsed struct {
		SID    string `json:"sid"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		receipt = SendReceipt{SID: parsed.SID, Status: parsed.Status}
	}
	span.SetAttributes(attribute.String("whatsbot.twilio.message_sid", receipt.SID))
	s.logger.Info("twilio message sent", "to", msg.To, "sid", receipt.SID, "status", receipt.Status)
	return receipt, nil
}

type twilioAPIError struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
	Status   int    `json:"status"`
}

func formatTwilioError(status int, body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return fmt.Sprintf("status %d", status)
	}
	var parsed twilioAPIError
	if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil && parsed.Message != "" {
		if parsed.Code != 0 {
			return fmt.Sprintf("status %d code %d: %s", status, parsed.Code, parsed.Message)
		}
		return fmt.Sprintf("status %d: %s", status, parsed.Message)
	}
	// Raw body, already truncated by the read limit.
	return fmt.Sprintf("status %d: %s", status, trimmed)
}
