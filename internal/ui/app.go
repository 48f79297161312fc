package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/appengine-ltd/fae-factory/internal/recipes"
	"github.com/appengine-ltd/fae-factory/internal/shell"
	"github.com/appengine-ltd/fae-factory/internal/world"
)

type AppConfig struct {
	Version   string
	Commit    string
	BuildDate string
	// Step is the simulated time of one world tick.
	Step time.Duration
}

type App struct {
	cfg   AppConfig
	shell *shell.Shell
}

func NewApp(cfg AppConfig, sh *shell.Shell) *App {
	return &App{cfg: cfg, shell: sh}
}

func (a *App) Run() error {
	m := newFactoryModel(a.cfg, a.shell)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// --- Styles (fae violet) ---
var (
	violet       = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	brightViolet = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	dimViolet    = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	warn         = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	border       = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	selected     = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("13"))
)

const maxMessages = 200

type clockTickMsg struct {
	at time.Time
}

type factoryModel struct {
	cfg   AppConfig
	shell *shell.Shell

	input    string
	messages []string
	status   string
	cursor   int
	clock    *shell.Clock
}

func newFactoryModel(cfg AppConfig, sh *shell.Shell) factoryModel {
	if cfg.Step <= 0 {
		cfg.Step = time.Second / 30
	}
	return factoryModel{cfg: cfg, shell: sh, clock: shell.NewClock(cfg.Step)}
}

func (m factoryModel) Init() tea.Cmd {
	return clockTickCmd(m.cfg.Step)
}

func clockTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return clockTickMsg{at: t}
	})
}

func (m factoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clockTickMsg:
		m.advanceClock(msg.at)
		return m, clockTickCmd(m.cfg.Step)
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

// advanceClock steps the world in fixed increments for the wall time since
// the previous tick.
func (m *factoryModel) advanceClock(at time.Time) {
	for i := m.clock.Due(at); i > 0; i-- {
		for _, ev := range m.shell.Step(context.Background(), m.cfg.Step) {
			m.appendMessage(ev.String())
		}
	}
}

func (m factoryModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		return m.submitInput()
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	case tea.KeyEsc:
		m.input = ""
		m.status = ""
		return m, nil
	case tea.KeyUp:
		m.cursor = wrapIndex(m.cursor-1, len(m.shell.World().Entities()))
		return m, nil
	case tea.KeyDown:
		m.cursor = wrapIndex(m.cursor+1, len(m.shell.World().Entities()))
		return m, nil
	case tea.KeyTab:
		m.status = "Holding " + string(m.shell.CycleHeld())
		return m, nil
	case tea.KeyCtrlP:
		m.clock.Toggle()
		return m, nil
	case tea.KeyCtrlX:
		if id, ok := m.selectedEntity(); ok {
			m.apply(m.shell.Submit(ctx, world.CancelCraftCommand(id)))
		}
		return m, nil
	case tea.KeyCtrlR:
		if id, ok := m.selectedEntity(); ok {
			m.apply(m.shell.Submit(ctx, world.SelectRecipeCommand(id)))
		}
		return m, nil
	case tea.KeyCtrlE:
		if id, ok := m.selectedEntity(); ok {
			m.apply(m.shell.Submit(ctx, world.TransferClickCommand(id, "", world.Modifiers{Ctrl: true})))
		}
		return m, nil
	case tea.KeyCtrlF:
		if id, ok := m.selectedEntity(); ok {
			m.apply(m.shell.Submit(ctx, world.TransferClickCommand(id, "", world.Modifiers{})))
		}
		return m, nil
	case tea.KeySpace:
		if m.input == "" {
			player, err := m.shell.World().Player()
			if err == nil {
				m.apply(m.shell.Submit(ctx, world.StartCraftCommand(player, recipes.DefaultRecipe, false)))
			}
			return m, nil
		}
		m.input += " "
		return m, nil
	case tea.KeyRunes:
		if len(m.input) < 180 {
			m.input += string(msg.Runes)
		}
		return m, nil
	}
	return m, nil
}

func (m factoryModel) submitInput() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input)
	m.input = ""
	if line == "" {
		m.status = "Enter a command."
		return m, nil
	}
	m.appendMessage("> " + line)
	res := m.shell.Execute(context.Background(), line)
	m.apply(res)
	if res.Quit {
		return m, tea.Quit
	}
	return m, nil
}

func (m *factoryModel) apply(res shell.Result) {
	if !res.Handled {
		m.status = res.Message
		return
	}
	m.status = ""
	for _, line := range strings.Split(res.Message, "\n") {
		m.appendMessage(line)
	}
}

func (m factoryModel) selectedEntity() (world.EntityID, bool) {
	ids := m.shell.World().Entities()
	if len(ids) == 0 {
		return world.NoEntity, false
	}
	return ids[clampInt(m.cursor, 0, len(ids)-1)], true
}

func (m *factoryModel) appendMessage(message string) {
	line := strings.TrimRight(message, " ")
	if line == "" {
		return
	}
	m.messages = append(m.messages, line)
	if len(m.messages) > maxMessages {
		m.messages = append([]string(nil), m.messages[len(m.messages)-maxMessages:]...)
	}
}

func (m factoryModel) View() string {
	snap := m.shell.World().Snapshot()
	title := brightViolet.Render("FAE FACTORY") + dimViolet.Render(fmt.Sprintf("  v%s", m.cfg.Version))
	clock := fmt.Sprintf("tick %d   holding %s", snap.Tick, heldText(snap))
	if m.clock.Paused {
		clock += warn.Render("   PAUSED")
	}
	rule := border.Render(strings.Repeat("-", 64))

	var b strings.Builder
	b.WriteString(title + "\n" + dimViolet.Render(clock) + "\n" + rule + "\n")

	for i, e := range snap.Entities {
		line := fmt.Sprintf("%-18s %-28s %s", shell.EntityLabel(e), e.Status(), stacksText(e))
		if i == clampInt(m.cursor, 0, len(snap.Entities)-1) {
			b.WriteString("> " + selected.Render(line) + "\n")
			continue
		}
		b.WriteString("  " + violet.Render(line) + "\n")
	}

	b.WriteString(rule + "\n")
	start := len(m.messages) - 12
	if start < 0 {
		start = 0
	}
	for _, msg := range m.messages[start:] {
		b.WriteString(violet.Render(msg) + "\n")
	}
	b.WriteString(rule + "\n")
	b.WriteString(brightViolet.Render("> ") + m.input + "_\n")
	b.WriteString(dimViolet.Render("space craft  tab hold  ↑/↓ select  ^x cancel  ^r recipe  ^e empty  ^f insert  ^p pause  ^c quit") + "\n")
	if m.status != "" {
		b.WriteString("\n" + warn.Render(m.status) + "\n")
	}
	return b.String()
}

func heldText(snap world.Snapshot) string {
	if snap.Held == "" {
		return "nothing"
	}
	return string(snap.Held)
}

func stacksText(e world.EntitySnapshot) string {
	if len(e.Stacks) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(e.Stacks))
	for _, st := range e.Stacks {
		parts = append(parts, st.String())
	}
	return strings.Join(parts, ", ")
}

func wrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
