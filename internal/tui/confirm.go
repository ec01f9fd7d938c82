package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shinji-kodama/git-worktree-cursor/internal/model"
)

// Choice labels of the deletion confirmation, in display order.
const (
	ChoiceDirectoryAndBranch = "Directory and Branch"
	ChoiceDirectoryOnly      = "Directory Only"
	ChoiceCancel             = "Cancel"
)

var confirmChoices = []string{ChoiceDirectoryAndBranch, ChoiceDirectoryOnly, ChoiceCancel}

// ConfirmMessage returns the question asked before deleting n worktrees.
func ConfirmMessage(n int) string {
	noun := "directory"
	if n > 1 {
		noun = "directories"
	}
	return fmt.Sprintf("Are you sure you want to delete %d worktree %s?", n, noun)
}

// ConfirmModel asks how to delete the selected worktrees.
type ConfirmModel struct {
	Count     int
	Cursor    int
	Done      bool
	Cancelled bool
}

// NewConfirmModel creates the confirmation for count worktrees with the
// cursor on preferred, or on the first choice when preferred is empty.
func NewConfirmModel(count int, preferred model.DeletionMode) ConfirmModel {
	m := ConfirmModel{Count: count}
	if preferred == model.DeleteDirectoryOnly {
		m.Cursor = 1
	}
	return m
}

func (m ConfirmModel) Init() tea.Cmd { return nil }

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc", "q":
		m.Cancelled = true
		return m, tea.Quit
	case "left", "up", "h", "k", "shift+tab":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "right", "down", "l", "j", "tab":
		if m.Cursor < len(confirmChoices)-1 {
			m.Cursor++
		}
	case "enter":
		if confirmChoices[m.Cursor] == ChoiceCancel {
			m.Cancelled = true
		} else {
			m.Done = true
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	if m.Cancelled || m.Done {
		return ""
	}

	buttons := make([]string, len(confirmChoices))
	for i, c := range confirmChoices {
		if i == m.Cursor {
			buttons[i] = selectedStyle.Render("[" + c + "]")
		} else {
			buttons[i] = labelStyle.Render(" " + c + " ")
		}
	}
	return fmt.Sprintf("%s\n\n%s\n\n%s",
		warningStyle.Render(ConfirmMessage(m.Count)),
		strings.Join(buttons, "  "),
		subtleStyle.Render("←/→ to choose • enter to confirm • esc to cancel"),
	)
}

// Mode returns the chosen deletion mode. ok is false when the user
// cancelled or has not decided.
func (m ConfirmModel) Mode() (mode model.DeletionMode, ok bool) {
	if !m.Done {
		return "", false
	}
	switch confirmChoices[m.Cursor] {
	case ChoiceDirectoryOnly:
		return model.DeleteDirectoryOnly, true
	case ChoiceDirectoryAndBranch:
		return model.DeleteDirectoryAndBranch, true
	}
	return "", false
}
