package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"

	"kaiser-cli/internal/board"
	"kaiser-cli/internal/boardkey"
	"kaiser-cli/internal/kv"
	"kaiser-cli/internal/model"
)

// flakyBackend wraps a Memory backend and fails writes while failPut is set.
type flakyBackend struct {
	*kv.Memory
	mu      sync.Mutex
	failPut bool
	puts    int
}

func (f *flakyBackend) Put(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts++
	if f.failPut {
		return errors.New("disk full")
	}
	return f.Memory.Put(ctx, key, value)
}

func openTestStore(t *testing.T, backend kv.Backend, key string, opts ...Option) *Store {
	t.Helper()
	s, err := Open(context.Background(), backend, key, opts...)
	if err != nil {
		t.Fatalf("Open(%q): %v", key, err)
	}
	return s
}

func TestOpen_SeedsDefaultWithSampleAndOthersEmpty(t *testing.T) {
	t.Parallel()
	mem := kv.NewMemory()

	def := openTestStore(t, mem, "")
	if def.Key() != boardkey.Default {
		t.Fatalf("Key=%q", def.Key())
	}
	if def.StorageKey() != "kaiser/default" {
		t.Fatalf("StorageKey=%q", def.StorageKey())
	}
	if len(def.State().Lines) != 5 {
		t.Fatalf("default board should be seeded with 5 sample lines; got %d", len(def.State().Lines))
	}

	other := openTestStore(t, mem, "My Team Board")
	doc := other.State()
	if other.Key() != "my-team-board" {
		t.Fatalf("Key=%q", other.Key())
	}
	if len(doc.Lines) != 0 || len(doc.Columns) != 0 {
		t.Fatalf("non-default board should start empty: %+v", doc)
	}
	if doc.Board.Title != "my-team-board" || doc.Board.ID != "my-team-board" {
		t.Fatalf("seed board = %+v", doc.Board)
	}
	if doc.Client.Page.Current != model.PageBoard {
		t.Fatalf("page=%q", doc.Client.Page.Current)
	}
}

func TestDispatch_PersistsAndRehydrates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := kv.NewMemory()

	s := openTestStore(t, mem, "release")
	if _, err := s.Dispatch(ctx, board.NewLine{Title: "QA Team"}); err != nil {
		t.Fatalf("NewLine: %v", err)
	}
	if _, err := s.Dispatch(ctx, board.NewCard{ColumnID: "qa-team/todo", Title: "Write plan"}); err != nil {
		t.Fatalf("NewCard: %v", err)
	}

	raw, err := mem.Get(ctx, "kaiser/release")
	if err != nil {
		t.Fatalf("snapshot missing: %v", err)
	}
	var persisted model.Document
	if err := json.Unmarshal(raw, &persisted); err != nil {
		t.Fatalf("snapshot is not JSON: %v", err)
	}
	if persisted.Settings.CurrentCardNumber != 1 {
		t.Fatalf("persisted counter=%d", persisted.Settings.CurrentCardNumber)
	}

	again := openTestStore(t, mem, "/release/card/1")
	col, ok := board.FindColumn(again.State(), "qa-team/todo")
	if !ok || len(col.Cards) != 1 || col.Cards[0].Title != "Write plan" {
		t.Fatalf("rehydrated column = %+v (ok=%v)", col, ok)
	}
}

func TestOpen_CorruptSnapshotFallsBackToSeed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := kv.NewMemory()
	if err := mem.Put(ctx, "kaiser/default", []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	var logs bytes.Buffer
	s := openTestStore(t, mem, "default", WithLogger(log.New(&logs, "", 0)))
	if len(s.State().Lines) != 5 {
		t.Fatalf("expected sample seed after corrupt snapshot")
	}
	if !strings.Contains(logs.String(), "unreadable") {
		t.Fatalf("expected corrupt snapshot to be logged; got %q", logs.String())
	}
}

func TestOpen_NullSnapshotFallsBackToSeed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := kv.NewMemory()
	if err := mem.Put(ctx, "kaiser/default", []byte("null")); err != nil {
		t.Fatal(err)
	}
	var logs bytes.Buffer
	s := openTestStore(t, mem, "", WithLogger(log.New(&logs, "", 0)))
	doc := s.State()
	if len(doc.Lines) != 5 || len(doc.Board.Members) == 0 || doc.Board.Title == "" {
		t.Fatalf("expected sample seed after null snapshot; got title=%q lines=%d members=%d",
			doc.Board.Title, len(doc.Lines), len(doc.Board.Members))
	}
	if !strings.Contains(logs.String(), "snapshot is null") {
		t.Fatalf("expected null snapshot to be logged; got %q", logs.String())
	}
}

func TestOpen_DanglingColumnRefFallsBackToSeed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := kv.NewMemory()

	broken := board.EmptyDocument("team")
	broken.Lines = []model.Line{{ID: "web", Title: "Web", ColumnIDs: []string{"web/ghost"}}}
	raw, err := json.Marshal(broken)
	if err != nil {
		t.Fatal(err)
	}
	if err := mem.Put(ctx, "kaiser/team", raw); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	s := openTestStore(t, mem, "team", WithLogger(log.New(&logs, "", 0)))
	if len(s.State().Lines) != 0 {
		t.Fatalf("expected empty seed for non-default board; got %+v", s.State().Lines)
	}
	if !strings.Contains(logs.String(), "web/ghost") {
		t.Fatalf("expected dangling column to be logged; got %q", logs.String())
	}
}

func TestOpen_NamespaceIsolatesBoards(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := kv.NewMemory()

	a := openTestStore(t, mem, "shared", WithNamespace("team-a"))
	if _, err := a.Dispatch(ctx, board.NewLine{Title: "Alpha"}); err != nil {
		t.Fatal(err)
	}
	b := openTestStore(t, mem, "shared", WithNamespace("team-b"))
	if len(b.State().Lines) != 0 {
		t.Fatalf("namespace team-b saw team-a's board")
	}
	if a.StorageKey() != "team-a/shared" {
		t.Fatalf("StorageKey=%q", a.StorageKey())
	}
}

func TestDispatch_ReducerErrorLeavesStateAndSkipsPersist(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fb := &flakyBackend{Memory: kv.NewMemory()}
	s := openTestStore(t, fb, "default")
	before := s.State()

	got, err := s.Dispatch(ctx, board.SetLineTitle{LineID: "nope", Title: "x"})
	if !board.IsNotFound(err) {
		t.Fatalf("expected NotFoundError; got %v", err)
	}
	if !reflect.DeepEqual(got, before) || !reflect.DeepEqual(s.State(), before) {
		t.Fatalf("failed dispatch changed the document")
	}
	if fb.puts != 0 {
		t.Fatalf("failed dispatch should not persist; puts=%d", fb.puts)
	}
}

func TestDispatch_WriteFailureKeepsNewState(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fb := &flakyBackend{Memory: kv.NewMemory(), failPut: true}
	s := openTestStore(t, fb, "default")

	next, err := s.Dispatch(ctx, board.ToggleLineSummaryBadges{})
	var perr *PersistError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *PersistError; got %T %v", err, err)
	}
	if perr.Key != "kaiser/default" {
		t.Fatalf("PersistError.Key=%q", perr.Key)
	}
	if next.Settings.ShowLineSummaryBadges {
		t.Fatalf("returned document should carry the toggle")
	}
	if s.State().Settings.ShowLineSummaryBadges {
		t.Fatalf("in-memory document should keep the toggle after a failed write")
	}

	fb.failPut = false
	if _, err := s.Dispatch(ctx, board.ToggleLineSummaryBadges{}); err != nil {
		t.Fatalf("dispatch after recovery: %v", err)
	}
	if _, err := fb.Get(ctx, "kaiser/default"); err != nil {
		t.Fatalf("snapshot should be written once the backend recovers: %v", err)
	}
}

func TestSubscribe_ReceivesPrevAndNext(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestStore(t, kv.NewMemory(), "default")

	var calls int
	var sawLinesChanged, sawColumnsChanged bool
	unsub := s.Subscribe(func(prev, next model.Document) {
		calls++
		sawLinesChanged = LinesChanged(prev, next)
		sawColumnsChanged = ColumnsChanged(prev, next)
		// Observers may read the store.
		if !reflect.DeepEqual(s.State(), next) {
			t.Errorf("State() inside observer does not match next")
		}
	})

	if _, err := s.Dispatch(ctx, board.ToggleLineExpanded{LineID: "dev"}); err != nil {
		t.Fatal(err)
	}
	if calls != 1 || !sawLinesChanged || sawColumnsChanged {
		t.Fatalf("calls=%d linesChanged=%v columnsChanged=%v", calls, sawLinesChanged, sawColumnsChanged)
	}

	unsub()
	if _, err := s.Dispatch(ctx, board.ToggleLineExpanded{LineID: "dev"}); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("observer called after unsubscribe")
	}
}

func TestColumnChanged(t *testing.T) {
	t.Parallel()
	r := &board.Reducer{}
	prev := board.SampleDocument("default")
	next, err := r.Apply(prev, board.NewCard{ColumnID: "dev/todo", Title: "A"})
	if err != nil {
		t.Fatal(err)
	}
	if !ColumnChanged(prev, next, "dev/todo") {
		t.Fatalf("dev/todo should be changed")
	}
	if ColumnChanged(prev, next, "dev/doing") {
		t.Fatalf("dev/doing should be untouched")
	}
	if ColumnChanged(prev, next, "missing") {
		t.Fatalf("absent in both should not count as changed")
	}
}

func TestWithReducer_UsesInjectedClockAndLogger(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	var logs bytes.Buffer
	r := &board.Reducer{NewToken: func() string { return "fixed" }}
	s := openTestStore(t, kv.NewMemory(), "default", WithReducer(r), WithLogger(log.New(&logs, "", 0)))

	if _, err := s.Dispatch(ctx, board.NewCard{ColumnID: "dev/todo", Title: "A"}); err != nil {
		t.Fatal(err)
	}
	doc, err := s.Dispatch(ctx, board.NewTodo{ColumnID: "dev/todo", CardID: 1, Title: "t"})
	if err != nil {
		t.Fatal(err)
	}
	_, card, ok := board.LocateCard(doc, 1)
	if !ok || len(card.Todos) != 1 || card.Todos[0].ID != "fixed" {
		t.Fatalf("todo = %+v", card.Todos)
	}

	// Business-rule rejection is logged through the store logger.
	if _, err := s.Dispatch(ctx, board.AddCardAssignee{ColumnID: "dev/todo", CardID: 1, Username: "ghost"}); err != nil {
		t.Fatalf("non-member assignment should be a silent no-op; got %v", err)
	}
	if !strings.Contains(logs.String(), "ghost") {
		t.Fatalf("expected rejection in log; got %q", logs.String())
	}
	if r.Seed != nil || r.Logger != nil {
		t.Fatalf("Open must not modify the caller's reducer")
	}
}

func TestResetBoard_UsesStoreSeed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestStore(t, kv.NewMemory(), "scratchpad")
	if _, err := s.Dispatch(ctx, board.LoadSampleData{}); err != nil {
		t.Fatal(err)
	}
	if len(s.State().Lines) != 5 {
		t.Fatalf("LoadSampleData should install sample lines")
	}
	doc, err := s.Dispatch(ctx, board.ResetBoard{})
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Lines) != 0 {
		t.Fatalf("ResetBoard on a non-default board should produce an empty board")
	}
}

func TestDeleteAndList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	fb, err := kv.NewFile(filepath.Join(dir, "boards"))
	if err != nil {
		t.Fatal(err)
	}

	for _, k := range []string{"beta", "alpha", "default"} {
		s := openTestStore(t, fb, k)
		if _, err := s.Dispatch(ctx, board.ToggleLineSummaryBadges{}); err != nil {
			t.Fatal(err)
		}
	}
	other := openTestStore(t, fb, "gamma", WithNamespace("other"))
	if _, err := other.Dispatch(ctx, board.ToggleLineSummaryBadges{}); err != nil {
		t.Fatal(err)
	}

	keys, err := List(ctx, fb, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if want := []string{"alpha", "beta", "default"}; !reflect.DeepEqual(keys, want) {
		t.Fatalf("List=%v, want %v", keys, want)
	}

	s := openTestStore(t, fb, "beta")
	if err := s.Delete(ctx); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !s.State().Settings.ShowLineSummaryBadges {
		t.Fatalf("Delete should reset to the seed")
	}
	if err := s.Delete(ctx); !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("second Delete err=%v, want ErrNotFound", err)
	}
	keys, _ = List(ctx, fb, "")
	if want := []string{"alpha", "default"}; !reflect.DeepEqual(keys, want) {
		t.Fatalf("List after delete=%v", keys)
	}
}
