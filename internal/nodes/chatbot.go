package nodes

import (
	"context"
	"errors"

	"eino_agentic_chat/internal/core"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
)

// ErrNoModel indicates the node was built without a model handle.
var ErrNoModel = errors.New("chatbot node has no model")

// Output is what the chatbot node contributes to the conversation state
type Output struct {
	Message *schema.Message `json:"message"`
}

// Apply merges the output into state and returns the new state
func (o Output) Apply(state core.ConversationState) core.ConversationState {
	return state.Append(o.Message)
}

// BasicChatbotNode forwards the conversation to the model and returns its reply
type BasicChatbotNode struct {
	model model.BaseChatModel
}

// NewBasicChatbotNode creates a chatbot node over a model handle
func NewBasicChatbotNode(m model.BaseChatModel) *BasicChatbotNode {
	return &BasicChatbotNode{model: m}
}

// GetName returns the node name
func (n *BasicChatbotNode) GetName() string {
	return "chatbot"
}

// Process sends the history to the model unchanged. Model errors are returned
// as-is to the caller.
func (n *BasicChatbotNode) Process(ctx context.Context, state core.ConversationState) (Output, error) {
	if n.model == nil {
		return Output{}, ErrNoModel
	}

	log.Debug().
		Str("node", n.GetName()).
		Int("messages", state.Len()).
		Msg("Invoking chat model")

	reply, err := n.model.Generate(ctx, state.Messages)
	if err != nil {
		return Output{}, err
	}

	return Output{Message: reply}, nil
}
