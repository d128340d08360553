package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/aetheria/internal/errors"
	"github.com/tatianab/aetheria/internal/game"
	"github.com/tatianab/aetheria/internal/models"
)

// Player is the part of *game.Session the TUI drives.
type Player interface {
	Snapshot() game.Snapshot
	Begin(ctx context.Context, name string, race models.Race, class models.Class) error
	Act(ctx context.Context, action string) error
	Allocate(ctx context.Context, stat models.Stat) error
	Abandon(ctx context.Context) error
}

// NewGame asks the TUI to start a fresh game on launch.
type NewGame struct {
	Name  string
	Race  models.Race
	Class models.Class
}

type model struct {
	player    Player
	newGame   *NewGame
	textInput textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	status    string
	abandoned bool
	width     int
	height    int
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FDE68A")).
			Italic(true).
			PaddingLeft(2)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E7E5E4"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	hudStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#44403C")).
			Padding(0, 1)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D97706")).
			Bold(true)

	choiceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Bold(true)

	deathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#DC2626")).
			Bold(true)
)

func NewModel(player Player, newGame *NewGame) model {
	ti := textinput.New()
	ti.Placeholder = "Declare your intent..."
	ti.Focus()
	ti.CharLimit = 280
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return model{
		player:    player,
		newGame:   newGame,
		textInput: ti,
		viewport:  viewport.New(0, 0),
		spinner:   sp,
	}
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spinner.Tick}
	if m.newGame != nil {
		cmds = append(cmds, m.begin(*m.newGame))
	}
	return tea.Batch(cmds...)
}

type turnProcessedMsg struct {
	err error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			input := strings.TrimSpace(m.textInput.Value())
			m.textInput.Reset()
			return m.submit(input)

		case tea.KeyRunes:
			// A lone digit on an empty prompt picks a numbered choice.
			if m.textInput.Value() == "" && len(msg.Runes) == 1 {
				if n, err := strconv.Atoi(string(msg.Runes)); err == nil && n > 0 {
					choices := m.player.Snapshot().Choices
					if n <= len(choices) {
						return m.submit(choices[n-1])
					}
				}
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.logWidth()
		m.viewport.Height = max(msg.Height-14, 5)
		m.refresh()

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case turnProcessedMsg:
		m.status = ""
		if msg.err != nil {
			m.status = errors.GetMessage(msg.err)
		}
		m.refresh()
		return m, nil
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// submit handles a line of player input: slash commands or an action.
func (m model) submit(input string) (tea.Model, tea.Cmd) {
	if input == "" {
		return m, nil
	}

	switch {
	case input == "/quit":
		return m, tea.Quit

	case input == "/new":
		if err := m.player.Abandon(context.Background()); err != nil {
			m.status = errors.GetMessage(err)
			return m, nil
		}
		m.abandoned = true
		return m, tea.Quit

	case strings.HasPrefix(input, "/alloc"):
		stat, err := models.ParseStat(strings.TrimSpace(strings.TrimPrefix(input, "/alloc")))
		if err == nil {
			err = m.player.Allocate(context.Background(), stat)
		}
		m.status = ""
		if err != nil {
			m.status = errors.GetMessage(err)
		}
		m.refresh()
		return m, nil
	}

	snap := m.player.Snapshot()
	if snap.Loading || snap.State == nil || snap.State.IsGameOver {
		return m, nil
	}

	m.status = ""
	// Show the action immediately; the session records it once the reply lands.
	m.viewport.SetContent(m.renderLog(snap) + userStyle.Width(m.logWidth()).Render("> "+input) + "\n")
	m.viewport.GotoBottom()
	return m, m.processTurn(input)
}

func (m model) View() string {
	snap := m.player.Snapshot()

	if snap.State == nil {
		if snap.Loading || (m.newGame != nil && m.status == "") {
			return "\n  " + m.spinner.View() + " Whispering to the Void...\n"
		}
		msg := "No game in progress."
		if m.status != "" {
			msg = m.status
		}
		return fmt.Sprintf("\n  %s\n\n  Press Esc to quit.\n", msg)
	}

	mainView := lipgloss.JoinHorizontal(lipgloss.Top,
		m.viewport.View(),
		m.renderState(snap.State),
	)

	var footer string
	switch {
	case snap.State.IsGameOver:
		footer = deathStyle.Render("You have perished.") + "\n" +
			helpStyle.Render("Even God makes mistakes twice. Type /new to reincarnate again.")
	case snap.Loading:
		footer = m.spinner.View() + " Whispering to the Void..."
	default:
		footer = m.renderChoices(snap.Choices)
	}

	parts := []string{m.renderHUD(snap.State), mainView, footer, m.textInput.View()}
	if m.status != "" {
		parts = append(parts, deathStyle.Render(m.status))
	}
	parts = append(parts, helpStyle.Render("1-9 picks a choice. Commands: /alloc str|agi|int|vit, /new, /quit"))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m model) renderHUD(state *models.GameState) string {
	c := state.Character
	ident := titleStyle.Render(strings.ToUpper(c.Name)) +
		fmt.Sprintf("  Lv %d %s %s", c.Level, c.Race, c.Class)
	vitals := fmt.Sprintf("HP %d/%d  MP %d/%d  XP %d/%d  Gold %d",
		c.HP, c.MaxHP, c.MP, c.MaxMP, c.XP, game.XPPerLevel, c.Gold)

	stats := fmt.Sprintf("STR %d  AGI %d  INT %d  VIT %d", c.Stats.Str, c.Stats.Agi, c.Stats.Int, c.Stats.Vit)
	if c.StatPoints > 0 {
		stats += choiceStyle.Render(fmt.Sprintf("  Distribute %d stats with /alloc", c.StatPoints))
	}

	return hudStyle.Render(ident + "\n" + vitals + "\n" + stats)
}

func (m model) renderState(state *models.GameState) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("CHRONICLE") + "\n")
	for _, fact := range state.WorldMemory {
		b.WriteString("- " + fact + "\n")
	}

	b.WriteString("\n" + titleStyle.Render("INVENTORY") + "\n")
	if len(state.Character.Inventory) == 0 {
		b.WriteString("Empty bags...\n")
	}
	for _, item := range state.Character.Inventory {
		b.WriteString("- " + item + "\n")
	}

	stateWidth := max(m.width-m.logWidth()-4, 10)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(b.String())
}

func (m model) renderChoices(choices []string) string {
	lines := make([]string, 0, len(choices))
	for i, choice := range choices {
		lines = append(lines, choiceStyle.Render(fmt.Sprintf("#%d", i+1))+" "+choice)
	}
	return strings.Join(lines, "\n")
}

func (m model) renderLog(snap game.Snapshot) string {
	if snap.State == nil {
		return ""
	}
	width := m.logWidth()
	var b strings.Builder
	for _, entry := range snap.State.History {
		if entry.Role == models.RoleUser {
			b.WriteString(userStyle.Width(width).Render("> "+entry.Content) + "\n\n")
			continue
		}
		b.WriteString(gameStyle.Width(width).Render(entry.Content) + "\n\n")
	}
	return b.String()
}

func (m *model) refresh() {
	m.viewport.SetContent(m.renderLog(m.player.Snapshot()))
	m.viewport.GotoBottom()
}

func (m model) logWidth() int {
	return int(float64(m.width) * 0.7)
}

func (m model) begin(ng NewGame) tea.Cmd {
	return func() tea.Msg {
		return turnProcessedMsg{err: m.player.Begin(context.Background(), ng.Name, ng.Race, ng.Class)}
	}
}

func (m model) processTurn(action string) tea.Cmd {
	return func() tea.Msg {
		return turnProcessedMsg{err: m.player.Act(context.Background(), action)}
	}
}

// Run starts the TUI. It reports whether the player abandoned the save.
func Run(player Player, newGame *NewGame) (bool, error) {
	p := tea.NewProgram(NewModel(player, newGame), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		slog.Error("tui exited with error", "error", err)
		return false, err
	}
	m, _ := final.(model)
	return m.abandoned, nil
}
