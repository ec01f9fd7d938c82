package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/git-worktree-cursor/internal/model"
)

// Output formats accepted by --output.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

var outputFormats = []string{OutputText, OutputJSON, OutputYAML}

// Global flag variables shared across all subcommands. They are bound to
// cobra persistent flags on the root command, which makes them available
// to every subcommand automatically.
var (
	// outputFormat selects text, json or yaml rendering of command results.
	outputFormat string

	// verbose lowers the log level to debug.
	verbose bool

	// configFile replaces the global configuration file search.
	configFile string

	// repoDir is where repository discovery starts; empty means the
	// current directory.
	repoDir string

	// porcelain forces porcelain listing regardless of configuration.
	porcelain bool
)

// Version, Commit and Date are set at build time via ldflags and injected
// from the main package.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
//
// The root command itself does not perform any action; subcommands do.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "git-worktree-cursor",
		Short: "Create and delete git worktrees and open them in Cursor",
		Long: `git-worktree-cursor manages parallel git worktrees of one repository.

New worktrees are created next to the repository in <repo>-worktree/<branch>,
receive copies of local-only files (.env*, *.local.*, editor settings) and
are opened in the editor. Deleting a worktree can delete its branch too.`,

		// We print errors ourselves, in the selected output format.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(outputFormats, outputFormat) {
				return model.NewCLIError(model.ExitValidationError,
					fmt.Sprintf("invalid output format %q: valid values are %s",
						outputFormat, strings.Join(outputFormats, ", ")))
			}
			slog.SetDefault(newLogger(cmd.ErrOrStderr()))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", OutputText, "Output format: text, json, yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default $XDG_CONFIG_HOME/git-worktree-cursor/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&repoDir, "repo", "C", "", "Run as if started in this directory")
	rootCmd.PersistentFlags().BoolVar(&porcelain, "porcelain", false, "Read worktrees with `git worktree list --porcelain`")

	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewCreateCommand())
	rootCmd.AddCommand(NewDeleteCommand())
	rootCmd.AddCommand(NewPatternsCommand())

	return rootCmd
}

// newLogger builds the process logger: text on w, debug level with
// --verbose and warn otherwise.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command and handles exit codes.
//
// CLIError types carry their own exit codes; other errors exit with 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			printError(os.Stderr, cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(os.Stderr, err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError writes an error message in the selected output format.
// Errors go to stderr even in JSON and YAML mode, because stdout is
// reserved for successful command output.
func printError(w io.Writer, message string, underlying error) {
	switch outputFormat {
	case OutputJSON, OutputYAML:
		body := map[string]string{"message": message}
		if underlying != nil {
			body["detail"] = underlying.Error()
		}
		_ = writeStructured(w, map[string]any{"error": body})
	default:
		if underlying != nil {
			fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(w, "Error: %s\n", message)
		}
	}
}

// IsStructuredOutput reports whether --output is json or yaml.
func IsStructuredOutput() bool {
	return outputFormat == OutputJSON || outputFormat == OutputYAML
}

// writeStructured renders v as indented JSON or YAML, per --output.
func writeStructured(w io.Writer, v any) error {
	if outputFormat == OutputYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// VerboseLog emits a debug line, shown only with --verbose.
func VerboseLog(format string, args ...any) {
	slog.Debug(fmt.Sprintf(format, args...))
}
