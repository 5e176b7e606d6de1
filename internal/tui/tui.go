// Package tui is the interactive board: keyboard navigation, a new-card prompt and mouse
// drag-reorder, all dispatched through the store.
package tui

import (
	"context"

	"kaiser-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(ctx context.Context, st *store.Store) error {
	m := newModel(ctx, st)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx)).Run()
	return err
}
