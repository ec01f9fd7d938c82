// create.go implements the "git-worktree-cursor create" command.
//
// Orchestration steps (run by lifecycle.Manager):
//  1. Validate the branch name
//  2. Derive the destination and create its parent directory
//  3. Create the git worktree on a new branch
//  4. Copy local-only files into it
//  5. Open it in the editor (unless --no-editor)
//  6. Output results (text, JSON or YAML)

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/git-worktree-cursor/internal/lifecycle"
	"github.com/shinji-kodama/git-worktree-cursor/internal/localfiles"
	"github.com/shinji-kodama/git-worktree-cursor/internal/model"
	"github.com/shinji-kodama/git-worktree-cursor/internal/registry"
	"github.com/shinji-kodama/git-worktree-cursor/internal/tui"
)

// createFlags holds the flag values for the create command.
type createFlags struct {
	parent   string // --parent: flat layout under this directory
	editor   string // --editor: editor command override
	noEditor bool   // --no-editor: skip opening the editor
	list     bool   // --list: print the worktree list afterwards
}

// NewCreateCommand creates the "create" cobra command.
func NewCreateCommand() *cobra.Command {
	flags := &createFlags{}

	cmd := &cobra.Command{
		Use:   "create [branch-name]",
		Short: "Create a worktree on a new branch and open it in the editor",
		Long: `Create a git worktree on a new branch, copy local-only files into it and
open it in the editor.

By default the worktree is placed at <repo-parent>/<repo>-worktree/<branch>.
With --parent it is placed at <parent>/<branch>, with "/" in the branch
name replaced by "-".

Without a branch name an interactive prompt asks for one.

Examples:
  git-worktree-cursor create feature/auth
  git-worktree-cursor create feature/auth --parent ~/worktrees
  git-worktree-cursor create bugfix-123 --no-editor --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("editor") {
				ws.cfg.Editor = flags.editor
				ws.exec = newExecutor(ws.cfg, ws.logger)
			}
			if flags.noEditor {
				ws.cfg.LaunchEditor = false
			}

			var branch string
			if len(args) == 1 {
				branch = args[0]
			}
			return runCreate(cmd, ws, branch, flags)
		},
	}

	cmd.Flags().StringVar(&flags.parent, "parent", "", "Create the worktree directly under this directory")
	cmd.Flags().StringVar(&flags.editor, "editor", "", "Editor command (default from config, \"cursor\")")
	cmd.Flags().BoolVar(&flags.noEditor, "no-editor", false, "Do not open the new worktree in the editor")
	cmd.Flags().BoolVar(&flags.list, "list", false, "Print the worktree list after creating")

	return cmd
}

// createOutput is the structured output of the create command.
type createOutput struct {
	Worktree  lifecycle.CreateResult `json:"worktree" yaml:"worktree"`
	Copied    []string               `json:"copiedFiles" yaml:"copiedFiles"`
	Worktrees []model.Worktree       `json:"worktrees,omitempty" yaml:"worktrees,omitempty"`
}

func runCreate(cmd *cobra.Command, ws *workspace, branch string, flags *createFlags) error {
	ctx := cmd.Context()
	if ws.root == "" {
		ws.info(registry.MsgNoWorkspace)
		return nil
	}

	if branch == "" {
		var err error
		branch, err = tui.PromptBranch(tui.IO{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr()})
		if err != nil {
			return err
		}
	}

	var listed []model.Worktree
	if flags.list {
		unsubscribe := ws.view.Subscribe(func() {
			listed = relist(ctx, ws)
		})
		defer unsubscribe()
	}

	prop := localfiles.New(ws.cfg.Patterns, ws.logger, localfiles.WithConcurrency(ws.cfg.Concurrency))
	mgr := lifecycle.New(ws.root, ws.exec, prop,
		lifecycle.WithLogger(ws.logger),
		lifecycle.WithNotifier(progressPrinter(ws)),
		lifecycle.WithRefresher(ws.view),
		lifecycle.WithEditorLaunch(ws.cfg.LaunchEditor),
	)

	VerboseLog("Creating worktree for branch %q", branch)
	res, err := mgr.Create(ctx, lifecycle.CreateRequest{Branch: branch, ParentDir: flags.parent})
	if err != nil {
		if res.Path != "" && model.HasExitCode(err, model.ExitEditorError) {
			fmt.Fprintf(ws.errOut, "Worktree was created at %s but could not be opened.\n", res.Path)
		}
		return err
	}

	if IsStructuredOutput() {
		out := createOutput{Worktree: res, Copied: res.Propagation.Copied, Worktrees: listed}
		if out.Copied == nil {
			out.Copied = []string{}
		}
		return writeStructured(ws.out, out)
	}

	msg := fmt.Sprintf("Successfully created worktree at '%s'", res.Display)
	if res.EditorLaunched {
		msg += " and opened in " + ws.cfg.Editor
	}
	fmt.Fprintln(ws.out, msg)
	for _, rel := range res.Propagation.Copied {
		fmt.Fprintf(ws.out, "  copied %s\n", rel)
	}
	if flags.list && listed != nil {
		fmt.Fprintln(ws.out)
		return printWorktrees(ws.out, listed)
	}
	return nil
}

// relist reads the worktree list after a refresh signal. Errors are logged
// only; the mutation itself already succeeded.
func relist(ctx context.Context, ws *workspace) []model.Worktree {
	worktrees, err := ws.view.List(ctx)
	if err != nil {
		ws.logger.Warn("failed to list worktrees after refresh", "error", err)
		return nil
	}
	return worktrees
}

// progressPrinter prints lifecycle progress messages to stderr in text
// mode. Final and failure messages are left to the command.
func progressPrinter(ws *workspace) func(lifecycle.Event) {
	return func(ev lifecycle.Event) {
		if IsStructuredOutput() || ev.Message == "" {
			return
		}
		switch ev.Step {
		case lifecycle.StepDone, lifecycle.StepFailed, lifecycle.StepRemoveFailed:
			return
		}
		fmt.Fprintf(ws.errOut, "  %s\n", ev.Message)
	}
}
