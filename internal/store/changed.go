package store

import (
	"kaiser-cli/internal/board"
	"kaiser-cli/internal/model"
)

// Changed reports whether next is a different slice from prev. The reducer copies every slice
// it touches and shares the rest, so identity is enough to detect a change.
func Changed[T any](prev, next []T) bool {
	if len(prev) != len(next) {
		return true
	}
	if len(prev) == 0 {
		return false
	}
	return &prev[0] != &next[0]
}

func LinesChanged(prev, next model.Document) bool {
	return Changed(prev.Lines, next.Lines)
}

func ColumnsChanged(prev, next model.Document) bool {
	return Changed(prev.Columns, next.Columns)
}

// ColumnChanged reports whether the column with id was replaced, added or removed.
func ColumnChanged(prev, next model.Document, columnID string) bool {
	pi, ni := board.FindColumnIndex(prev, columnID), board.FindColumnIndex(next, columnID)
	if pi < 0 || ni < 0 {
		return pi != ni
	}
	return prev.Columns[pi].Title != next.Columns[ni].Title ||
		prev.Columns[pi].Collapsed != next.Columns[ni].Collapsed ||
		prev.Columns[pi].ShowNewCardInput != next.Columns[ni].ShowNewCardInput ||
		Changed(prev.Columns[pi].Cards, next.Columns[ni].Cards)
}
