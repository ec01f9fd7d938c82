package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// patternsOutput is the structured output of the patterns command.
type patternsOutput struct {
	Patterns   []string `json:"patterns" yaml:"patterns"`
	GlobalFile string   `json:"globalFile,omitempty" yaml:"globalFile,omitempty"`
	LocalFile  string   `json:"localFile,omitempty" yaml:"localFile,omitempty"`
}

// NewPatternsCommand creates the "patterns" cobra command, which prints the
// effective local-file patterns after configuration is applied.
func NewPatternsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "Show the local-file patterns copied into new worktrees",
		Long: `Show the glob patterns whose matches are copied from the repository into
every new worktree.

Patterns come from the defaults, the global config file and the
repository's .worktree-cursor.jsonc, in that order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd)
			if err != nil {
				return err
			}

			if IsStructuredOutput() {
				return writeStructured(ws.out, patternsOutput{
					Patterns:   ws.cfg.Patterns,
					GlobalFile: ws.cfg.GlobalFile,
					LocalFile:  ws.cfg.LocalFile,
				})
			}
			for _, p := range ws.cfg.Patterns {
				fmt.Fprintln(ws.out, p)
			}
			return nil
		},
	}
}
