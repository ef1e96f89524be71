package ui

import (
	"context"
	"fmt"
	"strings"

	"eino_agentic_chat/internal/core"
	"eino_agentic_chat/pkg"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// OptionSource supplies the option lists shown in the sidebar
type OptionSource interface {
	PageTitle() string
	LLMOptions() []string
	UsecaseOptions() []string
	ModelOptions(provider string) []string
	RequiresAPIKey(provider string) bool
}

// Runner runs one gating cycle for a submitted message
type Runner interface {
	Run(ctx context.Context, selections pkg.Selections, message string) core.Result
}

type field int

const (
	fieldLLM field = iota
	fieldModel
	fieldAPIKey
	fieldUsecase
	fieldChat
	fieldCount
)

func (f field) String() string {
	switch f {
	case fieldLLM:
		return "Select LLM"
	case fieldModel:
		return "Select Model"
	case fieldAPIKey:
		return "API Key"
	case fieldUsecase:
		return "Select Usecases"
	case fieldChat:
		return "Message"
	default:
		return "unknown"
	}
}

// gateResultMsg carries a finished cycle back into the update loop
type gateResultMsg struct {
	message  string
	provider string
	model    string
	result   core.Result
}

// Model is the chat screen: a sidebar collecting selections and a chat input.
// API keys live here for the lifetime of the UI session and leave only as part
// of the selection mapping passed to the runner.
type Model struct {
	ctx    context.Context
	source OptionSource
	runner Runner
	th     theme

	llmIdx     int
	modelIdx   map[string]int
	usecaseIdx int
	apiKeys    map[string]string

	focus   field
	input   string
	busy    bool
	width   int
	last    *gateResultMsg
	history []string
}

// New creates the chat screen model
func New(ctx context.Context, source OptionSource, runner Runner) Model {
	return Model{
		ctx:      ctx,
		source:   source,
		runner:   runner,
		th:       defaultTheme(),
		modelIdx: make(map[string]int),
		apiKeys:  make(map[string]string),
		focus:    fieldChat,
	}
}

// Selections returns the user's current choices as a selection mapping.
// Providers without a credential requirement contribute no key entry.
func (m Model) Selections() pkg.Selections {
	sel := pkg.Selections{}

	provider := m.provider()
	if provider != "" {
		sel[pkg.KeySelectedLLM] = provider
		if name := m.modelName(provider); name != "" {
			sel[pkg.ModelKey(provider)] = name
		}
		if m.source.RequiresAPIKey(provider) {
			sel[pkg.CredentialKey(provider)] = m.apiKeys[provider]
		}
	}

	if usecases := m.source.UsecaseOptions(); len(usecases) > 0 {
		sel[pkg.KeySelectedUsecase] = usecases[clamp(m.usecaseIdx, len(usecases))]
	}

	return sel
}

func (m Model) provider() string {
	opts := m.source.LLMOptions()
	if len(opts) == 0 {
		return ""
	}
	return opts[clamp(m.llmIdx, len(opts))]
}

func (m Model) modelName(provider string) string {
	opts := m.source.ModelOptions(provider)
	if len(opts) == 0 {
		return ""
	}
	return opts[clamp(m.modelIdx[provider], len(opts))]
}

func (m Model) needsAPIKey() bool {
	provider := m.provider()
	return provider != "" && m.source.RequiresAPIKey(provider)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch t := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = t.Width
		return m, nil
	case gateResultMsg:
		m.busy = false
		if t.result.Idle() {
			return m, nil
		}
		m.last = &t
		if t.result.Ready() {
			m.history = append(m.history, t.message)
		}
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(t)
	}
	return m, nil
}

func (m Model) updateKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyTab:
		m.focus = m.nextFocus(1)
		return m, nil
	case tea.KeyShiftTab:
		m.focus = m.nextFocus(-1)
		return m, nil
	}

	switch m.focus {
	case fieldLLM:
		if delta := arrowDelta(k); delta != 0 {
			m.llmIdx = cycle(m.llmIdx, delta, len(m.source.LLMOptions()))
		}
	case fieldModel:
		if delta := arrowDelta(k); delta != 0 {
			provider := m.provider()
			m.modelIdx[provider] = cycle(m.modelIdx[provider], delta, len(m.source.ModelOptions(provider)))
		}
	case fieldUsecase:
		if delta := arrowDelta(k); delta != 0 {
			m.usecaseIdx = cycle(m.usecaseIdx, delta, len(m.source.UsecaseOptions()))
		}
	case fieldAPIKey:
		provider := m.provider()
		m.apiKeys[provider] = editText(m.apiKeys[provider], k, false)
	case fieldChat:
		if k.Type == tea.KeyEnter {
			return m.submit()
		}
		m.input = editText(m.input, k, true)
	}
	return m, nil
}

// submit hands the message to the runner off the update loop
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	message := m.input
	m.input = ""
	m.busy = true
	m.last = nil

	ctx := m.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	runner := m.runner
	selections := m.Selections()

	return m, func() tea.Msg {
		return gateResultMsg{
			message:  message,
			provider: selections.Provider(),
			model:    selections.Model(),
			result:   runner.Run(ctx, selections.Clone(), message),
		}
	}
}

func (m Model) nextFocus(delta int) field {
	f := m.focus
	for i := 0; i < int(fieldCount); i++ {
		f = field(cycle(int(f), delta, int(fieldCount)))
		if f == fieldAPIKey && !m.needsAPIKey() {
			continue
		}
		return f
	}
	return m.focus
}

func (m Model) View() string {
	title := m.th.Header.Render("🤖 " + m.source.PageTitle())

	sidebar := m.th.Sidebar.Render(m.viewSidebar())

	main := m.viewChat()
	if m.width > 0 {
		mainWidth := m.width - lipgloss.Width(sidebar) - 6
		if mainWidth > 10 {
			main = m.th.Panel.Width(mainWidth).Render(main)
		} else {
			main = m.th.Panel.Render(main)
		}
	} else {
		main = m.th.Panel.Render(main)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
	help := m.th.Muted.Render("[Tab] Next field    [←/→] Change option    [Enter] Send    [Esc] Quit")

	return m.th.Frame.Render(title + "\n" + body + "\n" + help)
}

func (m Model) viewSidebar() string {
	var lines []string

	provider := m.provider()
	lines = append(lines, m.renderSelect(fieldLLM, provider)...)
	if provider != "" {
		lines = append(lines, m.renderSelect(fieldModel, m.modelName(provider))...)
	}
	if m.needsAPIKey() {
		key := m.apiKeys[provider]
		lines = append(lines, m.renderLabel(fieldAPIKey), "  "+strings.Repeat("•", len([]rune(key)))+m.cursor(fieldAPIKey), "")
		if strings.TrimSpace(key) == "" {
			lines = append(lines, m.th.Alert.Render(fmt.Sprintf("⚠️ Please enter your %s API key to proceed.", provider)), "")
		}
	}
	usecase := ""
	if opts := m.source.UsecaseOptions(); len(opts) > 0 {
		usecase = opts[clamp(m.usecaseIdx, len(opts))]
	}
	lines = append(lines, m.renderSelect(fieldUsecase, usecase)...)

	return strings.Join(lines, "\n")
}

func (m Model) renderLabel(f field) string {
	if m.focus == f {
		return m.th.Accent.Render("> " + f.String())
	}
	return m.th.Label.Render("  " + f.String())
}

func (m Model) renderSelect(f field, value string) []string {
	if value == "" {
		value = m.th.Muted.Render("(none)")
	}
	if m.focus == f {
		value = m.th.Accent.Render("‹ " + value + " ›")
	}
	return []string{m.renderLabel(f), "  " + value, ""}
}

func (m Model) cursor(f field) string {
	if m.focus == f {
		return m.th.Accent.Render("▌")
	}
	return ""
}

func (m Model) viewChat() string {
	var lines []string
	for _, msg := range m.history {
		lines = append(lines, m.th.Label.Render("you: ")+msg)
	}

	if m.last != nil {
		res := m.last.result
		switch {
		case res.Err != nil:
			lines = append(lines, m.th.Danger.Render("Error: "+res.Err.Error()))
		case res.Ready():
			lines = append(lines, m.th.Success.Render(fmt.Sprintf(
				"Ready: %s via %s (%s)", res.Usecase, m.last.provider, m.last.model)))
		}
	}
	if m.busy {
		lines = append(lines, m.th.Muted.Render("…"))
	}

	lines = append(lines, "", m.renderLabel(fieldChat), m.th.Input.Render("  "+m.input)+m.cursor(fieldChat))
	return strings.Join(lines, "\n")
}

// Run starts the interactive program and blocks until the user quits
func Run(ctx context.Context, m Model, altScreen bool) error {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}

func arrowDelta(k tea.KeyMsg) int {
	switch k.Type {
	case tea.KeyLeft, tea.KeyUp:
		return -1
	case tea.KeyRight, tea.KeyDown:
		return 1
	}
	return 0
}

// editText applies a key press to a single-line text value
func editText(s string, k tea.KeyMsg, allowSpace bool) string {
	switch k.Type {
	case tea.KeyBackspace:
		r := []rune(s)
		if len(r) == 0 {
			return s
		}
		return string(r[:len(r)-1])
	case tea.KeySpace:
		if allowSpace {
			return s + " "
		}
	case tea.KeyRunes:
		return s + string(k.Runes)
	}
	return s
}

func cycle(i, delta, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i+delta)%n + n) % n
}

func clamp(i, n int) int {
	if i < 0 || n == 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
