package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shinji-kodama/git-worktree-cursor/internal/model"
)

// BranchModel asks for a new branch name. Enter is refused while the
// input does not pass model.ValidateBranchName; the reason is shown
// under the input as the user types.
type BranchModel struct {
	Input     textinput.Model
	Err       string
	Done      bool
	Cancelled bool
}

// NewBranchModel creates a focused branch prompt.
func NewBranchModel() BranchModel {
	input := textinput.New()
	input.Placeholder = "feature/my-new-feature"
	input.Focus()
	input.CharLimit = 200
	input.Width = 50

	return BranchModel{Input: input}
}

func (m BranchModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m BranchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.Cancelled = true
			return m, tea.Quit
		case "enter":
			m.Err = validationMessage(m.Input.Value())
			if m.Err != "" {
				return m, nil
			}
			m.Done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	if m.Input.Value() != "" {
		m.Err = validationMessage(m.Input.Value())
	} else {
		m.Err = ""
	}
	return m, cmd
}

func (m BranchModel) View() string {
	if m.Cancelled || m.Done {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n%s\n%s\n",
		titleStyle.Render("Create Worktree"),
		labelStyle.Render("Enter branch name"),
		m.Input.View(),
	)
	if m.Err != "" {
		b.WriteString(errorStyle.Render(m.Err) + "\n")
	}
	b.WriteString("\n" + subtleStyle.Render("enter to create • esc to cancel"))
	return b.String()
}

// Value returns the entered branch name, trimmed.
func (m BranchModel) Value() string {
	return strings.TrimSpace(m.Input.Value())
}

// validationMessage returns the user-facing reason a name is rejected, or
// "" when it is acceptable.
func validationMessage(name string) string {
	err := model.ValidateBranchName(name)
	if err == nil {
		return ""
	}
	if strings.TrimSpace(name) == "" {
		return model.MsgBranchEmpty
	}
	return model.MsgBranchInvalid
}
