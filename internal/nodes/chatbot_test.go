package nodes

import (
	"context"
	"errors"
	"testing"

	"eino_agentic_chat/internal/core"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedModel returns a fixed reply and records what it was sent
type scriptedModel struct {
	reply string
	err   error
	seen  [][]*schema.Message
}

func (m *scriptedModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.seen = append(m.seen, input)
	if m.err != nil {
		return nil, m.err
	}
	return schema.AssistantMessage(m.reply, nil), nil
}

func (m *scriptedModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

func TestBasicChatbotNode_Process(t *testing.T) {
	llm := &scriptedModel{reply: "world"}
	node := NewBasicChatbotNode(llm)
	state := core.NewConversationState(schema.UserMessage("hello"))

	out, err := node.Process(context.Background(), state)
	require.NoError(t, err)

	require.NotNil(t, out.Message)
	assert.Equal(t, "world", out.Message.Content)

	// history forwarded unmodified
	require.Len(t, llm.seen, 1)
	require.Len(t, llm.seen[0], 1)
	assert.Equal(t, "hello", llm.seen[0][0].Content)

	// input state untouched, merged state appended
	next := out.Apply(state)
	assert.Equal(t, 1, state.Len())
	require.Equal(t, 2, next.Len())
	assert.Equal(t, "hello", next.Messages[0].Content)
	assert.Equal(t, "world", next.Messages[1].Content)
}

func TestBasicChatbotNode_ModelErrorPropagates(t *testing.T) {
	boom := errors.New("rate limited")
	node := NewBasicChatbotNode(&scriptedModel{err: boom})

	out, err := node.Process(context.Background(), core.NewConversationState(schema.UserMessage("hi")))

	assert.ErrorIs(t, err, boom)
	assert.Nil(t, out.Message)
}

func TestBasicChatbotNode_NoModel(t *testing.T) {
	_, err := NewBasicChatbotNode(nil).Process(context.Background(), core.ConversationState{})

	assert.ErrorIs(t, err, ErrNoModel)
}
