package messaging

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// ErrMalformedForm marks a webhook body with fields that failed to decode.
// The fields that did decode are still returned alongside it.
var ErrMalformedForm = errors.New("messaging: malformed form fields")

// TwilioWebhookRequest represents an incoming Twilio WhatsApp webhook.
// Only From and Body drive behaviour; the rest is kept for logs and spans.
type TwilioWebhookRequest struct {
	MessageSid  string
	AccountSid  string
	From        string
	To          string
	Body        string
	ProfileName string
	NumMedia    string
}

// ParseTwilioWebhook parses a Twilio webhook request. Values are taken as
// sent. A nil request means the body could not be read at all; a request
// returned together with ErrMalformedForm carries every field that decoded.
func ParseTwilioWebhook(r *http.Request) (*TwilioWebhookRequest, error) {
	var partial error
	if err := r.ParseForm(); err != nil {
		if !isFieldDecodeError(err) {
			return nil, fmt.Errorf("messaging: failed to parse form: %w", err)
		}
		partial = fmt.Errorf("%w: %w", ErrMalformedForm, err)
	}

	return &TwilioWebhookRequest{
		MessageSid:  r.PostFormValue("MessageSid"),
		AccountSid:  r.PostFormValue("AccountSid"),
		From:        r.PostFormValue("From"),
		To:          r.PostFormValue("To"),
		Body:        r.PostFormValue("Body"),
		ProfileName: r.PostFormValue("ProfileName"),
		NumMedia:    r.PostFormValue("NumMedia"),
	}, partial
}

// isFieldDecodeError reports errors from url.ParseQuery, which skips the bad
// pair and keeps decoding the rest.
func isFieldDecodeError(err error) bool {
	var escErr url.EscapeError
	if errors.As(err, &escErr) {
		return true
	}
	return strings.Contains(err.Error(), "invalid semicolon separator")
}
