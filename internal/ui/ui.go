package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todolist/internal/config"
	"todolist/internal/logging"
	"todolist/internal/todo"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

const noSuchItem = "That item number does not exist."

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	statusStyle   = lipgloss.NewStyle().Italic(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

type Model struct {
	store      todo.Store
	cfg        config.Config
	log        *slog.Logger
	items      []string
	cursor     int
	mode       mode
	input      textinput.Model
	status     string
	confirmDel bool
}

func NewModel(store todo.Store, cfg config.Config, log *slog.Logger) Model {
	if log == nil {
		log = logging.NewNop()
	}
	ti := textinput.New()
	ti.Placeholder = "Item description"
	ti.CharLimit = 256
	ti.Width = 40

	items := store.Items()
	return Model{
		store:  store,
		cfg:    cfg,
		log:    log,
		items:  items,
		cursor: clampCursor(0, len(items)),
		status: fmt.Sprintf("Press '%s' to add, '%s' to edit, '%s' to delete.", cfg.Keys.Add, cfg.Keys.Edit, cfg.Keys.Delete),
		input:  ti,
		mode:   modeList,
	}
}

func Run(store todo.Store, cfg config.Config, log *slog.Logger) error {
	program := tea.NewProgram(NewModel(store, cfg, log))
	_, err := program.Run()
	return err
}

func (m Model) Cursor() int     { return m.cursor }
func (m Model) Status() string  { return m.status }
func (m Model) Editing() bool   { return m.mode != modeList }
func (m Model) Items() []string { return m.items }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		if m.mode != modeList {
			return m.updateInputMode(msg.String(), msg)
		}
		return m.updateListMode(msg.String())
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) updateInputMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm:
		text := m.input.Value()
		var err error
		var done string
		if m.mode == modeAdd {
			err = m.store.Add(text)
			done = "Item added."
		} else {
			err = m.store.EditAt(m.cursor, text)
			done = "Item updated."
		}
		if err != nil {
			m.status = describe(err)
			m.log.Debug("input rejected", "error", err)
			return m, nil
		}
		wasAdd := m.mode == modeAdd
		m.reload()
		if wasAdd {
			m.cursor = clampCursor(len(m.items)-1, len(m.items))
		}
		m.status = done
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeList
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		m.cursor = clampCursor(m.cursor+1, len(m.items))
	case m.cfg.Keys.Up, "up":
		m.cursor = clampCursor(m.cursor-1, len(m.items))
	case m.cfg.Keys.Add:
		m.mode = modeAdd
		m.input.SetValue("")
		m.input.Focus()
		m.status = "Add mode: type a description and press Enter"
	case m.cfg.Keys.Edit:
		if len(m.items) == 0 {
			m.status = "The to-do list is empty. Nothing to edit."
			return m, nil
		}
		m.mode = modeEdit
		m.input.SetValue(m.items[m.cursor])
		m.input.Focus()
		m.status = fmt.Sprintf("Editing item %d", m.cursor+1)
	case m.cfg.Keys.Delete:
		if len(m.items) == 0 {
			m.status = "The to-do list is empty. Nothing to remove."
			return m, nil
		}
		m.confirmDel = true
		m.status = fmt.Sprintf("Remove %q? y/n", m.items[m.cursor])
	}
	return m, nil
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", m.cfg.Keys.Cancel:
		m.status = "Remove cancelled"
		m.confirmDel = false
	case "y", "Y":
		m.confirmDel = false
		if err := m.store.RemoveAt(m.cursor); err != nil {
			m.status = describe(err)
			return m, nil
		}
		m.reload()
		m.cursor = clampCursor(m.cursor, len(m.items))
		m.status = "Item removed."
	}
	return m, nil
}

func (m *Model) reload() {
	m.items = m.store.Items()
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Current to-do list:"))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(todo.EmptyListMessage)
		b.WriteString("\n")
	} else {
		for i, it := range m.items {
			line := fmt.Sprintf("%d. %s", i+1, it)
			if m.cursor == i && m.mode == modeList {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	switch m.mode {
	case modeAdd:
		b.WriteString("Add item: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case modeEdit:
		b.WriteString(fmt.Sprintf("Edit item %d: ", m.cursor+1))
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(renderHelp(m.cfg.Keys)))

	return b.String()
}

func describe(err error) string {
	var verr *todo.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, todo.ErrIndexOutOfRange):
		return noSuchItem
	default:
		return fmt.Sprintf("save failed: %v", err)
	}
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s edit • %s delete • %s quit",
		k.Up, k.Down, k.Add, k.Edit, k.Delete, k.Quit)
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
