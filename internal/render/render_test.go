package render

import (
	"os"
	"strings"
	"testing"
	"time"

	"kaiser-cli/internal/board"
	"kaiser-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestMain(m *testing.M) {
	// Plain output keeps assertions independent of the terminal running the tests.
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func apply(t *testing.T, doc model.Document, actions ...board.Action) model.Document {
	t.Helper()
	r := &board.Reducer{
		Now:      func() time.Time { return time.Date(2025, 12, 20, 9, 30, 0, 0, time.UTC) },
		NewToken: func() string { return "tok" },
	}
	for _, a := range actions {
		var err error
		doc, err = r.Apply(doc, a)
		if err != nil {
			t.Fatalf("apply %s: %v", a.Type(), err)
		}
	}
	return doc
}

func TestBoard_ExpandedAndCollapsedLines(t *testing.T) {
	doc := apply(t, board.SampleDocument("default"),
		board.NewCard{ColumnID: "dev/todo", Title: "Login page"},
		board.NewCard{ColumnID: "test/ready", Title: "Regression pass"},
	)
	out := Board(doc, 200)

	if !strings.Contains(out, "default") {
		t.Fatalf("missing board title:\n%s", out)
	}
	if !strings.Contains(out, "▾ Development") || !strings.Contains(out, "#1 Login page") {
		t.Fatalf("expanded line should list its cards:\n%s", out)
	}
	if !strings.Contains(out, "▸ Test") {
		t.Fatalf("collapsed line should use the closed caret:\n%s", out)
	}
	if strings.Contains(out, "Regression pass") {
		t.Fatalf("collapsed line must not show card titles:\n%s", out)
	}
	if !strings.Contains(out, "Test Ready 1") {
		t.Fatalf("collapsed line should show summary badges:\n%s", out)
	}

	doc = apply(t, doc, board.ToggleLineSummaryBadges{})
	if strings.Contains(Board(doc, 200), "Test Ready 1") {
		t.Fatalf("badges should be hidden once toggled off")
	}
}

func TestLine_CardLimitAndMaximise(t *testing.T) {
	doc := board.SampleDocument("default")
	for i := 0; i < ExpandedCardLimit+2; i++ {
		doc = apply(t, doc, board.NewCard{ColumnID: "dev/todo", Title: "card"})
	}
	line, _ := board.FindLine(doc, "dev")

	out := Line(doc, line, 200)
	if !strings.Contains(out, "+2 more") {
		t.Fatalf("expected overflow marker:\n%s", out)
	}

	doc = apply(t, doc, board.ToggleLineMaximised{LineID: "dev"})
	line, _ = board.FindLine(doc, "dev")
	out = Line(doc, line, 200)
	if strings.Contains(out, "more") {
		t.Fatalf("maximised line should show every card:\n%s", out)
	}
	if !strings.Contains(out, "[max]") || !strings.Contains(out, "#8 card") {
		t.Fatalf("maximised line output:\n%s", out)
	}
}

func TestCardLimit(t *testing.T) {
	cases := []struct {
		line model.Line
		want int
	}{
		{model.Line{Expanded: false}, -1},
		{model.Line{Expanded: false, Maximised: true}, -1},
		{model.Line{Expanded: true}, ExpandedCardLimit},
		{model.Line{Expanded: true, Maximised: true}, 0},
	}
	for _, tc := range cases {
		if got := CardLimit(tc.line); got != tc.want {
			t.Fatalf("CardLimit(%+v)=%d, want %d", tc.line, got, tc.want)
		}
	}
}

func TestColumn_CollapsedAndNewCardInput(t *testing.T) {
	col := model.Column{ID: "c", Title: "Todo", Cards: []model.Card{{ID: 1, Title: "A"}}}
	if out := Column(col, 30, 0); !strings.Contains(out, "#1 A") {
		t.Fatalf("open column should list cards:\n%s", out)
	}
	col.ShowNewCardInput = true
	if out := Column(col, 30, 0); !strings.Contains(out, "+ new card") {
		t.Fatalf("expected new card prompt:\n%s", out)
	}
	col.Collapsed = true
	out := Column(col, 30, 0)
	if strings.Contains(out, "#1 A") || !strings.Contains(out, "▸ Todo (1)") {
		t.Fatalf("collapsed column:\n%s", out)
	}
}

func TestCardBadges(t *testing.T) {
	c := model.Card{
		Todos:     []model.Todo{{ID: "1", Done: true}, {ID: "2"}},
		Bugs:      []model.Bug{{ID: "b", Done: false}},
		Comments:  []model.Comment{{ID: "c"}},
		Assignees: []model.Assignee{{Username: "john"}},
	}
	if got, want := CardBadges(c), "☐1/2 bug:1 ✎1 @john"; got != want {
		t.Fatalf("CardBadges=%q, want %q", got, want)
	}
	if got := CardBadges(model.Card{}); got != "" {
		t.Fatalf("empty card badges=%q", got)
	}
}

func TestCard_Detail(t *testing.T) {
	doc := apply(t, board.SampleDocument("default"),
		board.SetCurrentUser{Username: "john"},
		board.NewCard{ColumnID: "dev/todo", Title: "Login page"},
		board.NewTodo{ColumnID: "dev/todo", CardID: 1, Title: "Design form"},
		board.NewComment{ColumnID: "dev/todo", CardID: 1, Text: "Looks **good** to me"},
		board.AddCardAssignee{ColumnID: "dev/todo", CardID: 1, Username: "pdrummond"},
	)
	out, err := Card(doc, "dev/todo", 1, 80)
	if err != nil {
		t.Fatalf("Card: %v", err)
	}
	for _, want := range []string{"#1 Login page", "Development / Todo", "@pdrummond", "[ ] Design form", "Todos 0/1", "@john · 2025-12-20 09:30", "good"} {
		if !strings.Contains(out, want) {
			t.Fatalf("card detail missing %q:\n%s", want, out)
		}
	}

	if _, err := Card(doc, "dev/todo", 99, 80); !board.IsNotFound(err) {
		t.Fatalf("expected NotFound for missing card; got %v", err)
	}
	if _, err := Card(doc, "nope", 1, 80); !board.IsNotFound(err) {
		t.Fatalf("expected NotFound for missing column; got %v", err)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello world", 5); got != "hell…" {
		t.Fatalf("Truncate=%q", got)
	}
	if got := Truncate("hi", 5); got != "hi" {
		t.Fatalf("Truncate=%q", got)
	}
	if got := Truncate("hi", 0); got != "" {
		t.Fatalf("Truncate=%q", got)
	}
}

func TestMembers(t *testing.T) {
	doc := apply(t, board.SampleDocument("default"), board.SetCurrentUser{Username: "john"})
	out := Members(doc)
	if !strings.Contains(out, "@john (you)") || !strings.Contains(out, "@pdrummond") {
		t.Fatalf("members:\n%s", out)
	}
	if !strings.Contains(Members(board.EmptyDocument("x")), "(none)") {
		t.Fatalf("empty members should say none")
	}
}
