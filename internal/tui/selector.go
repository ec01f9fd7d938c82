package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shinji-kodama/git-worktree-cursor/internal/model"
)

// SelectModel is a multi-select over worktrees. Space toggles the item
// under the cursor, "a" toggles all, enter accepts once at least one item
// is chosen.
type SelectModel struct {
	Items     []model.Worktree
	Chosen    map[int]bool
	Cursor    int
	Done      bool
	Cancelled bool
}

// NewSelectModel creates a selector over items, none chosen.
func NewSelectModel(items []model.Worktree) SelectModel {
	return SelectModel{Items: items, Chosen: make(map[int]bool)}
}

func (m SelectModel) Init() tea.Cmd { return nil }

func (m SelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc", "q":
		m.Cancelled = true
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Items)-1 {
			m.Cursor++
		}
	case " ", "space", "x":
		if len(m.Items) > 0 {
			m.Chosen = toggled(m.Chosen, m.Cursor)
		}
	case "a":
		m.Chosen = m.toggleAll()
	case "enter":
		if len(m.Selected()) == 0 {
			return m, nil
		}
		m.Done = true
		return m, tea.Quit
	}
	return m, nil
}

// toggled returns a copy of chosen with i flipped, so earlier model values
// are not affected.
func toggled(chosen map[int]bool, i int) map[int]bool {
	out := make(map[int]bool, len(chosen)+1)
	for k, v := range chosen {
		out[k] = v
	}
	if out[i] {
		delete(out, i)
	} else {
		out[i] = true
	}
	return out
}

func (m SelectModel) toggleAll() map[int]bool {
	out := make(map[int]bool, len(m.Items))
	if len(m.Chosen) == len(m.Items) {
		return out
	}
	for i := range m.Items {
		out[i] = true
	}
	return out
}

func (m SelectModel) View() string {
	if m.Cancelled || m.Done {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Select worktrees to delete") + "\n\n")
	for i, wt := range m.Items {
		cursor := "  "
		if i == m.Cursor {
			cursor = cursorStyle.Render("> ")
		}
		box := "[ ]"
		label := fmt.Sprintf("%s (%s)", wt.Branch, wt.Path)
		if m.Chosen[i] {
			box = "[x]"
			label = selectedStyle.Render(label)
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, box, label)
	}
	b.WriteString("\n" + subtleStyle.Render("space to toggle • a for all • enter to confirm • esc to cancel"))
	return b.String()
}

// Selected returns the chosen worktrees in list order.
func (m SelectModel) Selected() []model.Worktree {
	var out []model.Worktree
	for i, wt := range m.Items {
		if m.Chosen[i] {
			out = append(out, wt)
		}
	}
	return out
}
