package dnd

import (
	"strings"
	"testing"

	"kaiser-cli/internal/board"
	"kaiser-cli/internal/model"
)

func TestHover_DownRequiresCrossingMidpoint(t *testing.T) {
	t.Parallel()
	s := Begin("dev/todo", 1, 0)
	card := Rect{Top: 10, Bottom: 20}

	// Upper half of the card below: not yet.
	if _, _, ok := s.Hover(HoverEvent{ColumnID: "dev/todo", Index: 1, Rect: card, PointerY: 13}); ok {
		t.Fatalf("should not reorder before the midpoint")
	}

	next, a, ok := s.Hover(HoverEvent{ColumnID: "dev/todo", Index: 1, Rect: card, PointerY: 15})
	if !ok {
		t.Fatalf("expected reorder at the midpoint")
	}
	want := board.ReorderCard{ColumnID: "dev/todo", DragIndex: 0, HoverIndex: 1}
	if a != want {
		t.Fatalf("action=%+v, want %+v", a, want)
	}
	if next.Index != 1 || s.Index != 0 {
		t.Fatalf("next.Index=%d (want 1), receiver Index=%d (want 0)", next.Index, s.Index)
	}
}

func TestHover_UpRequiresCrossingMidpoint(t *testing.T) {
	t.Parallel()
	s := Begin("dev/todo", 3, 2)
	card := Rect{Top: 0, Bottom: 10}

	if _, _, ok := s.Hover(HoverEvent{ColumnID: "dev/todo", Index: 1, Rect: card, PointerY: 7}); ok {
		t.Fatalf("should not reorder while in the lower half")
	}
	next, a, ok := s.Hover(HoverEvent{ColumnID: "dev/todo", Index: 1, Rect: card, PointerY: 4})
	if !ok {
		t.Fatalf("expected reorder above the midpoint")
	}
	if a != (board.ReorderCard{ColumnID: "dev/todo", DragIndex: 2, HoverIndex: 1}) {
		t.Fatalf("action=%+v", a)
	}
	if next.Index != 1 {
		t.Fatalf("next.Index=%d", next.Index)
	}
}

func TestHover_IgnoresOtherColumnsAndSameIndex(t *testing.T) {
	t.Parallel()
	s := Begin("dev/todo", 1, 0)
	if _, _, ok := s.Hover(HoverEvent{ColumnID: "dev/doing", Index: 1, Rect: Rect{0, 10}, PointerY: 9}); ok {
		t.Fatalf("hover over another column must not reorder")
	}
	if _, _, ok := s.Hover(HoverEvent{ColumnID: "dev/todo", Index: 0, Rect: Rect{0, 10}, PointerY: 9}); ok {
		t.Fatalf("hover over the dragged card itself must not reorder")
	}
	if _, _, ok := (Session{}).Hover(HoverEvent{ColumnID: "dev/todo", Index: 1, Rect: Rect{0, 10}, PointerY: 9}); ok {
		t.Fatalf("inactive session must not reorder")
	}
}

// The corrected index must be visible to the next hover, otherwise a second hover over the
// same card would flip it back.
func TestHover_CorrectionAppliesToNextHover(t *testing.T) {
	t.Parallel()
	r := &board.Reducer{}
	doc := board.EmptyDocument("t")
	doc.Columns = []model.Column{{ID: "c"}}
	for _, title := range []string{"A", "B", "C", "D"} {
		var err error
		doc, err = r.Apply(doc, board.NewCard{ColumnID: "c", Title: title})
		if err != nil {
			t.Fatal(err)
		}
	}

	s := Begin("c", 1, 0)
	steps := []HoverEvent{
		{ColumnID: "c", Index: 1, Rect: Rect{10, 20}, PointerY: 16},
		{ColumnID: "c", Index: 1, Rect: Rect{10, 20}, PointerY: 18}, // same card again: no-op
		{ColumnID: "c", Index: 2, Rect: Rect{20, 30}, PointerY: 26},
	}
	dispatched := 0
	for _, ev := range steps {
		var a board.Action
		var ok bool
		s, a, ok = s.Hover(ev)
		if !ok {
			continue
		}
		dispatched++
		var err error
		doc, err = r.Apply(doc, a)
		if err != nil {
			t.Fatalf("apply %+v: %v", a, err)
		}
	}
	if dispatched != 2 {
		t.Fatalf("dispatched=%d, want 2", dispatched)
	}
	col, _ := board.FindColumn(doc, "c")
	var got []string
	for _, c := range col.Cards {
		got = append(got, c.Title)
	}
	if want := "B,C,A,D"; strings.Join(got, ",") != want {
		t.Fatalf("order=%s, want %s", strings.Join(got, ","), want)
	}
	if s.Index != 2 {
		t.Fatalf("session index=%d", s.Index)
	}
}

func TestDrop(t *testing.T) {
	t.Parallel()
	s := Begin("dev/todo", 7, 3)

	if _, ok := s.Drop("dev/todo"); ok {
		t.Fatalf("drop on the origin column must not emit an action")
	}
	a, ok := s.Drop("dev/doing")
	if !ok {
		t.Fatalf("expected MoveCard")
	}
	want := board.MoveCard{FromColumnID: "dev/todo", ToColumnID: "dev/doing", CardID: 7, CardIndex: 3}
	if a != want {
		t.Fatalf("action=%+v, want %+v", a, want)
	}
	if _, ok := s.Cancel().Drop("dev/doing"); ok {
		t.Fatalf("cancelled session must not emit an action")
	}
}
