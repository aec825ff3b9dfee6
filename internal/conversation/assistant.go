package conversation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/wolfman30/whatsapp-ai-bot/pkg/logging"
)

// SystemPrompt is the fixed instruction sent ahead of every user message.
const SystemPrompt = "You are a fun, helpful WhatsApp assistant."

type completionObserver interface {
	ObserveCompletion(status string, seconds float64)
}

// Assistant turns one inbound message into one completion. It keeps no
// history between calls.
type Assistant struct {
	llm      LLMClient
	model    string
	logger   *logging.Logger
	observer completionObserver
}

// NewAssistant wires an LLM client. observer may be nil.
func NewAssistant(llm LLMClient, model string, observer completionObserver, logger *logging.Logger) *Assistant {
	if logger == nil {
		logger = logging.Default()
	}
	if llm == nil {
		panic("conversation: llm client cannot be nil")
	}
	return &Assistant{
		llm:      llm,
		model:    model,
		logger:   logger,
		observer: observer,
	}
}

// Reply returns the generated answer. ok is false when text is blank, in
// which case no completion is requested.
func (a *Assistant) Reply(ctx context.Context, text string) (string, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false, nil
	}

	start := time.Now()
	resp, err := a.llm.Complete(ctx, LLMRequest{
		Model:  a.model,
		System: []string{SystemPrompt},
		Messages: []ChatMessage{
			{Role: ChatRoleUser, Content: text},
		},
	})
	elapsed := time.Since(start).Seconds()
	if err != nil {
		a.observe("error", elapsed)
		return "", true, err
	}
	if strings.TrimSpace(resp.Text) == "" {
		a.observe("empty", elapsed)
		return "", true, errors.New("conversation: completion returned empty content")
	}
	a.observe("ok", elapsed)

	a.logger.Debug("completion received",
		"stop_reason", resp.StopReason,
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
	)
	return resp.Text, true, nil
}

func (a *Assistant) observe(status string, seconds float64) {
	if a.observer == nil {
		return
	}
	a.observer.ObserveCompletion(status, seconds)
}
