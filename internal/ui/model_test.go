package ui

import (
	"context"
	"testing"

	"eino_agentic_chat/internal/core"
	"eino_agentic_chat/pkg"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct{}

func (staticSource) PageTitle() string        { return "Demo" }
func (staticSource) LLMOptions() []string     { return []string{"Groq", "Ollama"} }
func (staticSource) UsecaseOptions() []string { return []string{"Basic Chatbot", "Chatbot With Web"} }

func (staticSource) ModelOptions(provider string) []string {
	switch provider {
	case "Groq":
		return []string{"m1", "m2"}
	case "Ollama":
		return []string{"llama3.2"}
	}
	return nil
}

func (staticSource) RequiresAPIKey(provider string) bool {
	return provider != "Ollama"
}

type emptySource struct{ staticSource }

func (emptySource) LLMOptions() []string     { return nil }
func (emptySource) UsecaseOptions() []string { return nil }

// stubRunner records what it was asked to run
type stubRunner struct {
	selections []pkg.Selections
	messages   []string
	result     core.Result
}

func (r *stubRunner) Run(ctx context.Context, selections pkg.Selections, message string) core.Result {
	r.selections = append(r.selections, selections)
	r.messages = append(r.messages, message)
	return r.result
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func TestModel_DefaultSelections(t *testing.T) {
	m := New(context.Background(), staticSource{}, &stubRunner{})

	assert.Equal(t, pkg.Selections{
		"selected_llm":        "Groq",
		"selected_groq_model": "m1",
		"GROQ_API_KEY":        "",
		"selected_usecase":    "Basic Chatbot",
	}, m.Selections())
}

func TestModel_EmptySourceYieldsEmptySelections(t *testing.T) {
	m := New(context.Background(), emptySource{}, &stubRunner{})

	assert.Empty(t, m.Selections())
}

func TestModel_EditSelections(t *testing.T) {
	m := New(context.Background(), staticSource{}, &stubRunner{})

	// chat -> llm -> model -> api key
	m, _ = press(m,
		key(tea.KeyTab),
		key(tea.KeyTab),
		key(tea.KeyRight),
		key(tea.KeyTab),
		runes("gsk"), runes("-x"), key(tea.KeyBackspace),
		key(tea.KeyTab),
		key(tea.KeyRight),
	)

	sel := m.Selections()
	assert.Equal(t, "m2", sel.Model())
	assert.Equal(t, "gsk-", sel.APIKey())
	assert.Equal(t, "Chatbot With Web", sel.Usecase())
}

func TestModel_ProviderWithoutKeySkipsKeyField(t *testing.T) {
	m := New(context.Background(), staticSource{}, &stubRunner{})

	m, _ = press(m, key(tea.KeyTab), key(tea.KeyRight))
	require.Equal(t, "Ollama", m.Selections().Provider())

	m, _ = press(m, key(tea.KeyTab), key(tea.KeyTab))
	assert.Equal(t, fieldUsecase, m.focus)

	_, hasKey := m.Selections()["OLLAMA_API_KEY"]
	assert.False(t, hasKey)
	assert.Equal(t, "llama3.2", m.Selections().Model())
}

func TestModel_KeysArePerProvider(t *testing.T) {
	m := New(context.Background(), staticSource{}, &stubRunner{})

	m, _ = press(m, key(tea.KeyTab), key(tea.KeyTab), key(tea.KeyTab), runes("secret"))
	require.Equal(t, fieldAPIKey, m.focus)
	assert.Equal(t, "secret", m.Selections().APIKey())

	// switch away and back; the key is kept for the session
	m, _ = press(m, key(tea.KeyShiftTab), key(tea.KeyShiftTab), key(tea.KeyRight), key(tea.KeyLeft))
	assert.Equal(t, "secret", m.Selections().APIKey())
}

func TestModel_SubmitRunsGate(t *testing.T) {
	runner := &stubRunner{result: core.Result{State: core.StateReadyToDispatch, Usecase: "Basic Chatbot"}}
	m := New(context.Background(), staticSource{}, runner)

	m, cmd := press(m, runes("hello"), key(tea.KeySpace), runes("there"), key(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.True(t, m.busy)
	assert.Empty(t, m.input)

	msg := cmd()
	require.Len(t, runner.messages, 1)
	assert.Equal(t, "hello there", runner.messages[0])
	assert.Equal(t, "Groq", runner.selections[0].Provider())

	m, _ = press(m, msg)
	assert.False(t, m.busy)
	require.NotNil(t, m.last)
	assert.Equal(t, []string{"hello there"}, m.history)
	assert.Contains(t, m.View(), "Ready: Basic Chatbot")
}

func TestModel_ReadyShowsSubmittedSelections(t *testing.T) {
	runner := &stubRunner{result: core.Result{State: core.StateReadyToDispatch, Usecase: "Basic Chatbot"}}
	m := New(context.Background(), staticSource{}, runner)

	m, cmd := press(m, runes("hi"), key(tea.KeyEnter))
	m, _ = press(m, cmd())
	require.Equal(t, "Groq", runner.selections[0].Provider())

	// switch provider after the cycle finished
	m, _ = press(m, key(tea.KeyTab), key(tea.KeyRight))
	require.Equal(t, "Ollama", m.Selections().Provider())

	view := m.View()
	assert.Contains(t, view, "via Groq (m1)")
	assert.NotContains(t, view, "via Ollama")
}

func TestModel_NewCycleClearsPreviousError(t *testing.T) {
	runner := &stubRunner{result: core.NewGate(nil).Run(context.Background(), nil, "hi")}
	m := New(context.Background(), staticSource{}, runner)

	m, cmd := press(m, runes("hi"), key(tea.KeyEnter))
	m, _ = press(m, cmd())
	require.Contains(t, m.View(), "InputMissingError")

	runner.result = core.Result{State: core.StateAwaitingMessage}
	m, cmd = press(m, key(tea.KeyEnter))
	m, _ = press(m, cmd())

	assert.Nil(t, m.last)
	assert.NotContains(t, m.View(), "InputMissingError")
}

func TestModel_SubmitWhileBusyIsIgnored(t *testing.T) {
	m := New(context.Background(), staticSource{}, &stubRunner{})

	m, cmd := press(m, runes("a"), key(tea.KeyEnter))
	require.NotNil(t, cmd)

	_, cmd = press(m, runes("b"), key(tea.KeyEnter))
	assert.Nil(t, cmd)
}

func TestModel_FailureRendersInline(t *testing.T) {
	failed := core.NewGate(nil).Run(context.Background(), nil, "hi")
	runner := &stubRunner{result: failed}
	m := New(context.Background(), staticSource{}, runner)

	m, cmd := press(m, runes("hi"), key(tea.KeyEnter))
	m, _ = press(m, cmd())

	assert.Contains(t, m.View(), "InputMissingError: missing user input")
	assert.Empty(t, m.history)
}

func TestModel_IdleResultShowsNothing(t *testing.T) {
	runner := &stubRunner{result: core.Result{State: core.StateAwaitingMessage}}
	m := New(context.Background(), staticSource{}, runner)

	m, cmd := press(m, key(tea.KeyEnter))
	m, _ = press(m, cmd())

	assert.Nil(t, m.last)
	assert.False(t, m.busy)
}

func TestModel_ViewWarnsWithoutKey(t *testing.T) {
	m := New(context.Background(), staticSource{}, &stubRunner{})

	view := m.View()
	assert.Contains(t, view, "Demo")
	assert.Contains(t, view, "Please enter your")

	m, _ = press(m, key(tea.KeyTab), key(tea.KeyTab), key(tea.KeyTab), runes("k3y"))
	view = m.View()
	assert.NotContains(t, view, "Please enter your")
	assert.Contains(t, view, "•••")
	assert.NotContains(t, view, "k3y")
}

func TestModel_Quit(t *testing.T) {
	m := New(context.Background(), staticSource{}, &stubRunner{})

	_, cmd := press(m, key(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestCycle(t *testing.T) {
	assert.Equal(t, 0, cycle(2, 1, 3))
	assert.Equal(t, 2, cycle(0, -1, 3))
	assert.Equal(t, 0, cycle(5, 1, 0))
}
