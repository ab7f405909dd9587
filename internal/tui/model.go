// Package tui is the interactive terminal front end.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/ppiankov/factview/internal/present"
	"github.com/ppiankov/factview/internal/session"
	"github.com/ppiankov/factview/internal/validate"
	"go.uber.org/zap"
)

type focus int

const (
	focusInput focus = iota
	focusResults
)

// chrome is the number of lines outside the viewport
const chrome = 9

// overlay is the "show all citations" modal
type overlay struct {
	open    bool
	claimID int
}

// resultMsg carries a finished evaluation back to the update loop
type resultMsg struct {
	ticket  session.Ticket
	outcome session.Outcome
}

// Options configures the model
type Options struct {
	// GlamourStyle is a glamour standard style name; empty selects by terminal background
	GlamourStyle string
	Logger       *zap.Logger
}

// Model is the bubbletea model
type Model struct {
	ctx        context.Context
	controller *session.Controller
	builder    *present.Builder
	logger     *zap.Logger
	styles     Styles

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer
	style    string

	view     present.View
	focus    focus
	selected int
	overlay  overlay
	width    int
	height   int
}

// New creates the UI model around a controller
func New(ctx context.Context, controller *session.Controller, builder *present.Builder, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	in := textinput.New()
	in.Placeholder = "Enter a statement to fact-check"
	in.CharLimit = validate.MaxTextLength
	in.Width = 60
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:        ctx,
		controller: controller,
		builder:    builder,
		logger:     logger.Named("tui"),
		styles:     DefaultStyles(),
		input:      in,
		spinner:    sp,
		viewport:   viewport.New(80, 20),
		style:      opts.GlamourStyle,
		width:      80,
		height:     20 + chrome,
	}
	m.refresh()
	return m
}

// Init starts the cursor blink
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case resultMsg:
		if !m.controller.Resolve(msg.ticket, msg.outcome) {
			return m, nil
		}
		m.selected = 0
		m.overlay = overlay{}
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if m.view.Phase != present.PhaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.overlay.open {
		if msg.Type == tea.KeyEsc {
			m.overlay = overlay{}
			m.refresh()
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch msg.Type {
	case tea.KeyTab:
		m.toggleFocus()
		return m, nil
	case tea.KeyEnter:
		if m.focus == focusInput {
			return m.submit()
		}
	}

	if m.focus == focusInput {
		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before && m.view.Phase == present.PhaseInvalid {
			m.controller.ClearValidation()
			m.refresh()
		}
		return m, cmd
	}

	switch msg.String() {
	case "up":
		if m.selected > 0 {
			m.selected--
			m.refresh()
		}
		return m, nil
	case "down":
		if m.selected < len(m.claims())-1 {
			m.selected++
			m.refresh()
		}
		return m, nil
	case "c":
		m.openCitations()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	ticket, err := m.controller.Submit(m.input.Value())
	m.overlay = overlay{}
	m.refresh()
	if err != nil {
		return m, nil
	}

	ctx, controller := m.ctx, m.controller
	evaluate := func() tea.Msg {
		return resultMsg{ticket: ticket, outcome: controller.Execute(ctx, ticket)}
	}
	return m, tea.Batch(m.spinner.Tick, evaluate)
}

func (m *Model) toggleFocus() {
	if m.focus == focusInput {
		m.focus = focusResults
		m.input.Blur()
		return
	}
	m.focus = focusInput
	m.input.Focus()
}

func (m *Model) openCitations() {
	claims := m.claims()
	if m.selected >= len(claims) {
		return
	}
	m.overlay = overlay{open: true, claimID: claims[m.selected].ID}
	m.refresh()
	m.viewport.GotoTop()
}

func (m Model) claims() []present.ClaimView {
	if m.view.Result == nil {
		return nil
	}
	return m.view.Result.Claims
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.input.Width = max(width-8, 10)
	m.viewport.Width = width
	m.viewport.Height = max(height-chrome, 3)

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(max(width-4, 20))}
	if m.style != "" {
		opts = append(opts, glamour.WithStandardStyle(m.style))
	} else {
		opts = append(opts, glamour.WithAutoStyle())
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		m.logger.Warn("markdown renderer unavailable", zap.Error(err))
	}
	m.renderer = r
	m.refresh()
}

// refresh rebuilds the view from the controller and re-renders the body
func (m *Model) refresh() {
	m.view = m.builder.Build(m.controller.Snapshot())
	if claims := m.claims(); m.selected >= len(claims) {
		m.selected = max(len(claims)-1, 0)
	}

	if m.overlay.open {
		m.viewport.SetContent(m.markdown(m.citationsMarkdown()))
		return
	}
	if m.view.Phase == present.PhaseResult {
		m.viewport.SetContent(m.markdown(present.Markdown(m.view)))
		return
	}
	m.viewport.SetContent("")
}

func (m Model) citationsMarkdown() string {
	succeeded, ok := m.controller.State().(session.Succeeded)
	if !ok {
		return "_No result._\n"
	}
	detail, ok := succeeded.Verdict.Claim(m.overlay.claimID)
	if !ok {
		return "_Unknown claim._\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Citations for claim %d\n\n", detail.ID)
	fmt.Fprintf(&sb, "_%s_\n\n", detail.Claim)
	present.WriteCitations(&sb, m.builder.Citations(detail))
	return sb.String()
}

// markdown renders through glamour, falling back to plain text
func (m Model) markdown(content string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Warn("markdown render panicked", zap.Any("panic", r))
			out = content
		}
	}()

	if m.renderer == nil {
		return content
	}
	rendered, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// View renders the screen
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("factview"))
	b.WriteString("\n")

	box := m.styles.Input
	if m.focus == focusInput {
		box = m.styles.Focused
	}
	b.WriteString(box.Render(m.input.View()))
	b.WriteString("\n")

	switch m.view.Phase {
	case present.PhaseIdle:
		b.WriteString(m.styles.Muted.Render("Type a statement and press enter."))
	case present.PhaseLoading:
		b.WriteString(m.spinner.View() + " Checking facts...")
	case present.PhaseInvalid, present.PhaseFailed:
		b.WriteString(m.styles.Error.Render(m.view.Message))
	case present.PhaseMeaningless:
		b.WriteString(m.styles.Warning.Render(m.view.Message))
	case present.PhaseResult:
		b.WriteString(m.badges())
		b.WriteString("\n")
		b.WriteString(m.selection())
		b.WriteString("\n")
		body := m.viewport.View()
		if m.overlay.open {
			body = m.styles.Overlay.Render(body)
		}
		b.WriteString(body)
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.help()))
	return b.String()
}

func (m Model) badges() string {
	r := m.view.Result
	fact := m.styles.Badge(r.Factuality.Variant).Render(fmt.Sprintf("%s: %s %s", r.Factuality.Title, r.Factuality.Label, r.Factuality.Icon))
	cred := m.styles.Badge(r.Credibility.Variant).Render(fmt.Sprintf("%s: %s %s", r.Credibility.Title, r.Credibility.Label, r.Credibility.Icon))
	return lipgloss.JoinHorizontal(lipgloss.Top, fact, "  ", cred)
}

func (m Model) selection() string {
	claims := m.claims()
	if len(claims) == 0 {
		return m.styles.Muted.Render("No claims.")
	}
	c := claims[m.selected]
	line := fmt.Sprintf("▶ Claim %d/%d: %s %s", m.selected+1, len(claims), c.Status.Icon, c.Claim)
	if c.Overflow {
		line += "  [c] " + c.ShowAllLabel
	}
	return m.styles.Selected.Render(line)
}

func (m Model) help() string {
	switch {
	case m.overlay.open:
		return "esc close · ↑/↓ scroll · ctrl+c quit"
	case m.focus == focusInput:
		return "enter check · tab results · ctrl+c quit"
	default:
		return "↑/↓ select claim · c citations · pgup/pgdn scroll · tab input · ctrl+c quit"
	}
}

// Run starts the program and blocks until the user quits
func Run(ctx context.Context, controller *session.Controller, builder *present.Builder, opts Options) error {
	p := tea.NewProgram(New(ctx, controller, builder, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
