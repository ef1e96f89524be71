package core

import (
	"github.com/cloudwego/eino/schema"
)

// ConversationState is the state shared by processing nodes. Messages only
// grow; nodes contribute new messages through AddMessages.
type ConversationState struct {
	Messages []*schema.Message `json:"messages"`
}

// NewConversationState starts a conversation from the given history
func NewConversationState(messages ...*schema.Message) ConversationState {
	return ConversationState{Messages: AddMessages(nil, messages...)}
}

// AddMessages appends right to left into a new slice. Neither input is
// modified, and nil messages are skipped.
func AddMessages(left []*schema.Message, right ...*schema.Message) []*schema.Message {
	merged := make([]*schema.Message, 0, len(left)+len(right))
	merged = append(merged, left...)
	for _, msg := range right {
		if msg == nil {
			continue
		}
		merged = append(merged, msg)
	}
	return merged
}

// Append returns a new state with msgs added after the current history
func (s ConversationState) Append(msgs ...*schema.Message) ConversationState {
	return ConversationState{Messages: AddMessages(s.Messages, msgs...)}
}

// Len returns the number of messages in the history
func (s ConversationState) Len() int {
	return len(s.Messages)
}

// Last returns the most recent message, or nil for an empty history
func (s ConversationState) Last() *schema.Message {
	if len(s.Messages) == 0 {
		return nil
	}
	return s.Messages[len(s.Messages)-1]
}
