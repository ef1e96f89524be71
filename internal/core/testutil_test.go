package core

import (
	"context"
	"errors"

	"eino_agentic_chat/pkg"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// fakeChatModel is a model handle that is never invoked by the gate
type fakeChatModel struct{}

func (fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	return schema.AssistantMessage("ok", nil), nil
}

func (fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

// factoryFunc adapts a function to ModelFactory
type factoryFunc func(ctx context.Context, creds pkg.Credentials) (model.BaseChatModel, error)

func (f factoryFunc) NewChatModel(ctx context.Context, creds pkg.Credentials) (model.BaseChatModel, error) {
	return f(ctx, creds)
}

// recordingFactory remembers the credentials it was asked to build
type recordingFactory struct {
	calls []pkg.Credentials
	model model.BaseChatModel
	err   error
}

func (f *recordingFactory) NewChatModel(ctx context.Context, creds pkg.Credentials) (model.BaseChatModel, error) {
	f.calls = append(f.calls, creds)
	if f.err != nil {
		return nil, f.err
	}
	return f.model, nil
}

func validSelections() pkg.Selections {
	return pkg.Selections{
		pkg.KeySelectedLLM:     "Groq",
		"selected_groq_model":  "m1",
		"GROQ_API_KEY":         "gsk-test",
		pkg.KeySelectedUsecase: "Basic Chat",
	}
}
