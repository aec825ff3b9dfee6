package messaging

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/wolfman30/whatsapp-ai-bot/pkg/logging"
)

var webhookTracer = otel.Tracer("whatsbot.internal.messaging.webhook")

const (
	// VariantStatic answers every message with fixed text.
	VariantStatic = "static"
	// VariantAI answers with a chat completion of the message text.
	VariantAI = "ai"
)

// OutcomeStatus classifies how a webhook was processed.
type OutcomeStatus string

const (
	// OutcomeSent means the reply was accepted by Twilio.
	OutcomeSent OutcomeStatus = "sent"
	// OutcomeSkipped means there was nothing to answer.
	OutcomeSkipped OutcomeStatus = "skipped"
	// OutcomeInvalidRequest means the webhook body could not be read.
	OutcomeInvalidRequest OutcomeStatus = "invalid_request"
	// OutcomeReplyFailed means the reply text could not be produced.
	OutcomeReplyFailed OutcomeStatus = "reply_failed"
	// OutcomeSendFailed means the outbound send was rejected or never completed.
	OutcomeSendFailed OutcomeStatus = "send_failed"
	// OutcomeInternalError means processing panicked.
	OutcomeInternalError OutcomeStatus = "internal_error"
)

// Outcome is the result of processing one inbound message. Err is set for
// every failed status and nil otherwise.
type Outcome struct {
	Status  OutcomeStatus
	Reply   string
	Receipt SendReceipt
	Err     error
}

// Failed reports whether processing hit an error.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

type webhookObserver interface {
	ObserveWebhook(variant, outcome string, seconds float64)
}

// Handler handles the WhatsApp webhook. The caller always gets an empty 200;
// failures only reach logs, spans and metrics.
type Handler struct {
	variant   string
	from      string
	replier   Replier
	messenger ReplyMessenger
	observer  webhookObserver
	logger    *logging.Logger
}

// NewHandler creates a webhook handler. from is the originating WhatsApp
// address for replies; observer may be nil.
func NewHandler(variant, from string, replier Replier, messenger ReplyMessenger, observer webhookObserver, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if replier == nil {
		panic("messaging: replier cannot be nil")
	}
	if messenger == nil {
		panic("messaging: messenger cannot be nil")
	}
	return &Handler{
		variant:   variant,
		from:      from,
		replier:   replier,
		messenger: messenger,
		observer:  observer,
		logger:    logger.With("variant", variant),
	}
}

// NewStaticHandler builds the handler that always answers with text.
func NewStaticHandler(from, text string, messenger ReplyMessenger, observer webhookObserver, logger *logging.Logger) *Handler {
	return NewHandler(VariantStatic, from, StaticReplier{Text: text}, messenger, observer, logger)
}

// NewAIHandler builds the handler that answers with generated text.
func NewAIHandler(from string, replier Replier, messenger ReplyMessenger, observer webhookObserver, logger *logging.Logger) *Handler {
	return NewHandler(VariantAI, from, replier, messenger, observer, logger)
}

// Webhook handles POST /webhook requests.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, span := webhookTracer.Start(r.Context(), "messaging.whatsapp.webhook")
	defer span.End()

	// Outbound calls must finish even if Twilio drops the webhook connection.
	outcome := h.handle(context.WithoutCancel(ctx), r)

	span.SetAttributes(
		attribute.String("whatsbot.variant", h.variant),
		attribute.String("whatsbot.outcome", string(outcome.Status)),
	)
	if outcome.Failed() {
		span.RecordError(outcome.Err)
		span.SetStatus(codes.Error, string(outcome.Status))
	}
	if h.observer != nil {
		h.observer.ObserveWebhook(h.variant, string(outcome.Status), time.Since(start).Seconds())
	}

	render.Status(r, http.StatusOK)
	render.PlainText(w, r, "")
}

func (h *Handler) handle(ctx context.Context, r *http.Request) (outcome Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			outcome = Outcome{Status: OutcomeInternalError, Err: fmt.Errorf("messaging: panic: %v", rec)}
			h.logger.Error("webhook error", "stage", outcome.Status, "error", outcome.Err.Error())
		}
	}()

	webhook, err := ParseTwilioWebhook(r)
	if webhook == nil {
		h.logger.Error("webhook error", "stage", OutcomeInvalidRequest, "error", err.Error())
		return Outcome{Status: OutcomeInvalidRequest, Err: err}
	}
	if err != nil {
		h.logger.Warn("webhook form partially decoded", "error", err.Error())
	}
	attrs := []any{"message_sid", webhook.MessageSid, "from", webhook.From}

	outcome = h.Process(ctx, webhook.From, webhook.Body)
	switch outcome.Status {
	case OutcomeSent:
		msg := "reply sent"
		if h.variant == VariantStatic {
			msg = "dummy reply sent"
		}
		h.logger.Info(msg, append(attrs, "sid", outcome.Receipt.SID)...)
	case OutcomeSkipped:
		h.logger.Debug("empty message ignored", attrs...)
	default:
		h.logger.Error("webhook error", append(attrs, "stage", outcome.Status, "error", outcome.Err.Error())...)
	}
	return outcome
}

// Process derives and sends the reply for one inbound message.
func (h *Handler) Process(ctx context.Context, from, text string) Outcome {
	reply, ok, err := h.replier.Reply(ctx, text)
	if err != nil {
		return Outcome{Status: OutcomeReplyFailed, Err: err}
	}
	if !ok {
		return Outcome{Status: OutcomeSkipped}
	}

	receipt, err := h.messenger.SendReply(ctx, OutboundReply{
		To:   from,
		From: h.from,
		Body: reply,
	})
	if err != nil {
		return Outcome{Status: OutcomeSendFailed, Reply: reply, Err: err}
	}
	return Outcome{Status: OutcomeSent, Reply: reply, Receipt: receipt}
}
