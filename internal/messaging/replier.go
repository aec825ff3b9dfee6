package messaging

import "context"

// Replier derives the reply body for an inbound message text. ok=false means
// nothing should be sent.
type Replier interface {
	Reply(ctx context.Context, text string) (reply string, ok bool, err error)
}

// StaticReplier answers every message with the same text, whatever was sent.
type StaticReplier struct {
	Text string
}

// Reply returns the configured text and ignores the message.
func (s StaticReplier) Reply(context.Context, string) (string, bool, error) {
	return s.Text, true, nil
}
