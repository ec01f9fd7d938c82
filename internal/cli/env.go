package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/git-worktree-cursor/internal/config"
	"github.com/shinji-kodama/git-worktree-cursor/internal/model"
	"github.com/shinji-kodama/git-worktree-cursor/internal/registry"
	"github.com/shinji-kodama/git-worktree-cursor/internal/worktree"
)

// newExecutor builds the git and editor executor. Tests replace it.
var newExecutor = func(cfg *config.Config, logger *slog.Logger) worktree.Executor {
	return worktree.NewManager(
		worktree.WithEditor(cfg.Editor),
		worktree.WithLogger(logger),
	)
}

// workspace is the per-invocation wiring shared by the subcommands.
type workspace struct {
	root   string
	cfg    *config.Config
	exec   worktree.Executor
	view   *registry.View
	logger *slog.Logger
	out    io.Writer
	errOut io.Writer
}

// openWorkspace discovers the repository, loads configuration and builds
// the executor and registry view. Outside a repository root is empty and
// the view reports "No workspace folder open" on List.
func openWorkspace(cmd *cobra.Command) (*workspace, error) {
	logger := slog.Default()

	dir := repoDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}

	root, err := worktree.RepoRoot(dir)
	if err != nil {
		if !model.HasExitCode(err, model.ExitNotInRepository) {
			return nil, err
		}
		VerboseLog("no repository found from %s: %v", dir, err)
		root = ""
	}

	cfg, err := config.Load(root, configFile)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("porcelain") {
		cfg.Porcelain = porcelain
	}
	VerboseLog("repository root %q, global config %q, local config %q", root, cfg.GlobalFile, cfg.LocalFile)

	ws := &workspace{
		root:   root,
		cfg:    cfg,
		logger: logger,
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
	}
	ws.exec = newExecutor(cfg, logger)

	opts := []registry.ViewOption{
		registry.WithViewLogger(logger),
		registry.WithInfo(func(msg string) { ws.info(msg) }),
	}
	if cfg.Porcelain {
		opts = append(opts, registry.WithPorcelain())
	}
	ws.view = registry.NewView(root, ws.exec, opts...)
	return ws, nil
}

// info prints an informational message. In structured output modes the
// message goes to stderr so stdout stays machine-readable.
func (ws *workspace) info(msg string) {
	if IsStructuredOutput() {
		fmt.Fprintln(ws.errOut, msg)
		return
	}
	fmt.Fprintln(ws.out, msg)
}
