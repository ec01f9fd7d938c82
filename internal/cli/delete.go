// delete.go implements the "git-worktree-cursor delete" command.
//
// The delete command removes one or more linked worktrees and, optionally,
// their local branches:
//  1. Choose the worktrees (arguments, --all, or an interactive selector)
//  2. Choose the mode (--mode, --yes, or a three-way confirmation)
//  3. Remove each worktree with --force, continuing past failures
//  4. In directory-and-branch mode, force-delete each removed branch,
//     skipping worktrees with a detached HEAD
//
// The main worktree is never offered and cannot be named.

package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/git-worktree-cursor/internal/lifecycle"
	"github.com/shinji-kodama/git-worktree-cursor/internal/model"
	"github.com/shinji-kodama/git-worktree-cursor/internal/registry"
	"github.com/shinji-kodama/git-worktree-cursor/internal/tui"
)

// MsgNothingToDelete is printed when only the main worktree exists.
const MsgNothingToDelete = "No worktrees found to delete"

// deleteFlags holds the flag values for the delete command.
type deleteFlags struct {
	// mode preselects the deletion mode and skips the confirmation.
	mode string

	// yes skips the confirmation, using the configured mode or
	// directory-only.
	yes bool

	// all selects every deletable worktree.
	all bool

	// list prints the worktree list afterwards.
	list bool
}

// NewDeleteCommand creates the "delete" cobra command.
func NewDeleteCommand() *cobra.Command {
	flags := &deleteFlags{}

	cmd := &cobra.Command{
		Use:     "delete [path-or-branch...]",
		Aliases: []string{"remove", "rm"},
		Short:   "Delete worktrees and optionally their branches",
		Long: `Delete linked worktrees of the current repository.

Worktrees are named by path or branch. Without arguments an interactive
selector lists every worktree except the main one.

Before deleting, a confirmation offers three choices:
  Directory and Branch  remove the worktree and force-delete its branch
  Directory Only        remove the worktree, keep the branch
  Cancel

--mode or --yes skip the confirmation.

Examples:
  git-worktree-cursor delete feature/auth
  git-worktree-cursor delete ../app-worktree/bugfix --mode directory-only
  git-worktree-cursor delete --all --yes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			return runDelete(cmd, ws, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.mode, "mode", "", "Deletion mode: directory-only, directory-and-branch")
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "Delete without confirmation")
	cmd.Flags().BoolVar(&flags.all, "all", false, "Select every worktree except the main one")
	cmd.Flags().BoolVar(&flags.list, "list", false, "Print the worktree list after deleting")

	return cmd
}

// deleteOutput is the structured output of the delete command.
type deleteOutput struct {
	Result    lifecycle.DeleteResult `json:"result" yaml:"result"`
	Summary   string                 `json:"summary" yaml:"summary"`
	Worktrees []model.Worktree       `json:"worktrees,omitempty" yaml:"worktrees,omitempty"`
}

func runDelete(cmd *cobra.Command, ws *workspace, args []string, flags *deleteFlags) error {
	ctx := cmd.Context()

	// Validate --mode before touching anything.
	var flagMode model.DeletionMode
	if flags.mode != "" {
		mode, err := model.ParseDeletionMode(flags.mode)
		if err != nil {
			return model.WrapCLIError(model.ExitValidationError, "invalid --mode", err)
		}
		flagMode = mode
	}

	if ws.root == "" {
		ws.info(registry.MsgNoWorkspace)
		return nil
	}

	worktrees, err := ws.view.List(ctx)
	if err != nil {
		return err
	}
	deletable := model.Deletable(worktrees)
	if len(deletable) == 0 {
		ws.info(MsgNothingToDelete)
		return nil
	}

	var chosen []model.Worktree
	switch {
	case len(args) > 0:
		chosen, err = matchWorktrees(worktrees, args)
	case flags.all:
		chosen = deletable
	default:
		chosen, err = tui.SelectWorktrees(tui.IO{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr()}, deletable)
	}
	if err != nil {
		return err
	}

	mode, err := resolveMode(cmd, ws, flags, flagMode, len(chosen))
	if err != nil {
		return err
	}

	var listed []model.Worktree
	if flags.list {
		unsubscribe := ws.view.Subscribe(func() {
			listed = relist(ctx, ws)
		})
		defer unsubscribe()
	}

	mgr := lifecycle.New(ws.root, ws.exec, nil,
		lifecycle.WithLogger(ws.logger),
		lifecycle.WithNotifier(progressPrinter(ws)),
		lifecycle.WithRefresher(ws.view),
	)

	VerboseLog("Deleting %d worktrees (%s)", len(chosen), mode)
	res, err := mgr.Delete(ctx, model.NewDeletionSelection(chosen, mode))
	if err != nil {
		return err
	}

	if IsStructuredOutput() {
		if err := writeStructured(ws.out, deleteOutput{Result: res, Summary: res.Summary(), Worktrees: listed}); err != nil {
			return err
		}
	} else {
		printDeleteResult(ws, res)
		if flags.list && listed != nil {
			fmt.Fprintln(ws.out)
			if err := printWorktrees(ws.out, listed); err != nil {
				return err
			}
		}
	}

	if res.Succeeded < res.Attempted {
		return model.NewCLIError(model.ExitGitError, res.Summary())
	}
	return nil
}

// resolveMode picks the deletion mode: --mode wins, then --yes with the
// configured mode or directory-only, then the interactive confirmation.
func resolveMode(cmd *cobra.Command, ws *workspace, flags *deleteFlags, flagMode model.DeletionMode, count int) (model.DeletionMode, error) {
	if flagMode != "" {
		return flagMode, nil
	}
	preferred, _ := ws.cfg.Mode()
	if flags.yes {
		if preferred == "" {
			return model.DeleteDirectoryOnly, nil
		}
		return preferred, nil
	}
	return tui.ConfirmDeletion(tui.IO{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr()}, count, preferred)
}

// matchWorktrees resolves each argument to a worktree by branch name or
// path. Relative paths are resolved against the current directory.
func matchWorktrees(worktrees []model.Worktree, args []string) ([]model.Worktree, error) {
	var out []model.Worktree
	seen := make(map[string]bool)

	for _, arg := range args {
		wt, ok := findWorktree(worktrees, arg)
		if !ok {
			return nil, model.NewCLIError(model.ExitValidationError,
				fmt.Sprintf("no worktree matches %q", arg))
		}
		if wt.IsMain {
			return nil, model.NewCLIError(model.ExitValidationError,
				fmt.Sprintf("cannot delete the main worktree %s", wt.Path))
		}
		if !seen[wt.Path] {
			seen[wt.Path] = true
			out = append(out, wt)
		}
	}
	return out, nil
}

func findWorktree(worktrees []model.Worktree, arg string) (model.Worktree, bool) {
	candidates := []string{arg}
	if abs, err := filepath.Abs(arg); err == nil {
		candidates = append(candidates, abs)
		if resolved, err := filepath.EvalSymlinks(abs); err == nil {
			candidates = append(candidates, resolved)
		}
	}

	for _, wt := range worktrees {
		for _, c := range candidates {
			if wt.Path == c {
				return wt, true
			}
		}
	}
	for _, wt := range worktrees {
		if wt.Branch == arg && !wt.IsMain && !wt.Detached {
			return wt, true
		}
	}
	return model.Worktree{}, false
}

// printDeleteResult reports removal failures on stderr and the outcome on
// stdout. Branch deletion failures are left to the log.
func printDeleteResult(ws *workspace, res lifecycle.DeleteResult) {
	for _, e := range res.Entries {
		if e.Err != nil {
			fmt.Fprintf(ws.errOut, "Failed to delete worktree %s: %v\n", e.Branch, e.Err)
		}
	}
	if msg := res.SuccessMessage(); msg != "" {
		fmt.Fprintln(ws.out, msg)
	}
}
