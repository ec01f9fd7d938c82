// Package tui holds the interactive prompts: a branch-name input with
// inline validation, a multi-select of deletable worktrees and a
// three-way deletion confirmation.
//
// Each prompt is a bubbletea Model that can be driven directly in tests;
// the Prompt* functions wrap them in a tea.Program.
package tui
