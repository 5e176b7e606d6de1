// Package dnd turns pointer gestures over a rendered column into card reorder and move actions.
//
// A gesture is an explicit value: Begin starts it, each Hover may emit a ReorderCard and returns
// the session with the card's corrected index, and Drop or Cancel ends it. Nothing is mutated in
// place, so the caller decides when the returned session replaces the old one.
package dnd

import "kaiser-cli/internal/board"

// Rect is the vertical extent of the card under the pointer, in the caller's units (rows, pixels).
type Rect struct {
	Top    int
	Bottom int
}

// HoverEvent describes the pointer over the card at Index of ColumnID.
type HoverEvent struct {
	ColumnID string
	Index    int
	Rect     Rect
	PointerY int
}

// Session tracks the dragged card. Index follows the card as hovers reorder it.
type Session struct {
	Active   bool
	ColumnID string
	CardID   int
	Index    int
}

func Begin(columnID string, cardID, index int) Session {
	return Session{Active: true, ColumnID: columnID, CardID: cardID, Index: index}
}

// Hover returns the session after ev and, when the pointer has crossed the hovered card's
// midpoint in the direction of travel, the ReorderCard to dispatch.
func (s Session) Hover(ev HoverEvent) (Session, board.Action, bool) {
	if !s.Active || ev.ColumnID != s.ColumnID {
		return s, nil, false
	}
	drag, hover := s.Index, ev.Index
	if drag == hover {
		return s, nil, false
	}
	middle := (ev.Rect.Bottom - ev.Rect.Top) / 2
	offset := ev.PointerY - ev.Rect.Top

	// Only move once the pointer is past half of the hovered card's height.
	if drag < hover && offset < middle {
		return s, nil, false
	}
	if drag > hover && offset > middle {
		return s, nil, false
	}

	s.Index = hover
	return s, board.ReorderCard{ColumnID: s.ColumnID, DragIndex: drag, HoverIndex: hover}, true
}

// Drop ends the gesture over columnID. Dropping on another column moves the card there;
// dropping on its own column needs nothing since hovers already reordered it.
func (s Session) Drop(columnID string) (board.Action, bool) {
	if !s.Active || columnID == "" || columnID == s.ColumnID {
		return nil, false
	}
	return board.MoveCard{
		FromColumnID: s.ColumnID,
		ToColumnID:   columnID,
		CardID:       s.CardID,
		CardIndex:    s.Index,
	}, true
}

// Cancel abandons the gesture.
func (s Session) Cancel() Session {
	return Session{}
}
