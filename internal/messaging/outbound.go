package messaging

import "context"

// ReplyMessenger delivers a reply back to the WhatsApp correspondent.
type ReplyMessenger interface {
	SendReply(ctx context.Context, reply OutboundReply) (SendReceipt, error)
}

// OutboundReply carries the data required to push a message to the user.
type OutboundReply struct {
	To   string
	From string
	Body string
}

// SendReceipt is the provider's acknowledgment of an accepted message.
type SendReceipt struct {
	SID    string
	Status string
}
