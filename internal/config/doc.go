// Package config loads git-worktree-cursor settings.
//
// Settings come from three layers, later ones winning:
//
//  1. the global YAML file $XDG_CONFIG_HOME/git-worktree-cursor/config.yaml
//     (or ~/.config/git-worktree-cursor/config.yaml), plus GWC_* environment
//     variables, read with viper;
//  2. a repository-local .worktree-cursor.jsonc at the primary worktree
//     root, read with tidwall/jsonc so comments and trailing commas are
//     allowed;
//  3. command-line flags, applied by the cli package.
package config
