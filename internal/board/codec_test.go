package board

import (
	"io"
	"log"
	"reflect"
	"strings"
	"testing"
)

func newTestLogger(w io.Writer) *log.Logger {
	return log.New(w, "", 0)
}

func TestEncodeDecodeAction(t *testing.T) {
	t.Parallel()

	actions := []Action{
		MoveCard{FromColumnID: "dev/todo", ToColumnID: "dev/doing", CardID: 7, CardIndex: 2},
		AddCardAssignee{ColumnID: "dev/todo", CardID: 1, Username: "john"},
		ExpandAllLines{},
		ShowCardPage{CardID: 3, ColumnID: "test/ready"},
	}
	for _, a := range actions {
		b, err := EncodeAction(a)
		if err != nil {
			t.Fatalf("EncodeAction(%s): %v", a.Type(), err)
		}
		if !strings.Contains(string(b), `"type":"`+a.Type()+`"`) {
			t.Fatalf("encoded action missing type: %s", b)
		}
		got, err := DecodeAction(b)
		if err != nil {
			t.Fatalf("DecodeAction(%s): %v", b, err)
		}
		if !reflect.DeepEqual(got, a) {
			t.Fatalf("round trip mismatch: got %#v want %#v", got, a)
		}
	}
}

func TestDecodeAction_WireFieldNames(t *testing.T) {
	t.Parallel()

	a, err := DecodeAction([]byte(`{"type":"REORDER_CARD","columnId":"dev/todo","dragIndex":3,"hoverIndex":1}`))
	if err != nil {
		t.Fatalf("DecodeAction: %v", err)
	}
	want := ReorderCard{ColumnID: "dev/todo", DragIndex: 3, HoverIndex: 1}
	if a != want {
		t.Fatalf("got %#v want %#v", a, want)
	}
}

func TestDecodeAction_Errors(t *testing.T) {
	t.Parallel()

	for _, in := range []string{`not json`, `{}`, `{"type":""}`, `{"type":"NEW_CARD","columnId":5}`} {
		if _, err := DecodeAction([]byte(in)); err == nil {
			t.Fatalf("expected error for %s", in)
		}
	}
}

func TestActionTypes_CoversDecoders(t *testing.T) {
	t.Parallel()

	types := ActionTypes()
	if len(types) != len(decoders) {
		t.Fatalf("ActionTypes = %d, decoders = %d", len(types), len(decoders))
	}
	for _, typ := range types {
		if typ == "" {
			t.Fatalf("empty action type")
		}
	}
}
