package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/git-worktree-cursor/internal/model"
)

// NewListCommand creates the "list" cobra command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the worktrees of the current repository",
		Long: `List every worktree of the repository containing the current directory.

The main worktree is marked with "*".

Examples:
  git-worktree-cursor list
  git-worktree-cursor list --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			return runList(cmd.Context(), ws)
		},
	}
}

func runList(ctx context.Context, ws *workspace) error {
	worktrees, err := ws.view.List(ctx)
	if err != nil {
		return err
	}
	if ws.view.Root() == "" {
		// Already reported by the view.
		return nil
	}
	VerboseLog("Found %d worktrees", len(worktrees))
	return printWorktrees(ws.out, worktrees)
}

// listResult is the structured output of the list command.
type listResult struct {
	Worktrees []model.Worktree `json:"worktrees" yaml:"worktrees"`
}

// printWorktrees renders worktrees as a table or, per --output, as JSON
// or YAML.
//
// The table format is:
//
//	BRANCH          PATH
//	* main          /src/app
//	  feature/auth  /src/app-worktree/feature/auth
func printWorktrees(w io.Writer, worktrees []model.Worktree) error {
	if IsStructuredOutput() {
		result := listResult{Worktrees: make([]model.Worktree, 0, len(worktrees))}
		result.Worktrees = append(result.Worktrees, worktrees...)
		return writeStructured(w, result)
	}

	if len(worktrees) == 0 {
		fmt.Fprintln(w, "No worktrees found.")
		return nil
	}

	width := len("BRANCH")
	for _, wt := range worktrees {
		width = max(width, len(wt.Branch))
	}

	fmt.Fprintf(w, "  %-*s  %s\n", width, "BRANCH", "PATH")
	for _, wt := range worktrees {
		marker := " "
		if wt.IsMain {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-*s  %s\n", marker, width, wt.Branch, wt.Path)
	}
	return nil
}
