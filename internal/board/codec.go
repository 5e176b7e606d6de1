package board

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

type decodeFunc func([]byte) (Action, error)

func decodeAs[T Action](b []byte) (Action, error) {
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return v, nil
}

var decoders = map[string]decodeFunc{
	ResetBoard{}.Type():                decodeAs[ResetBoard],
	LoadSampleData{}.Type():            decodeAs[LoadSampleData],
	ReplaceDocument{}.Type():           decodeAs[ReplaceDocument],
	NewLine{}.Type():                   decodeAs[NewLine],
	SetLineTitle{}.Type():              decodeAs[SetLineTitle],
	ToggleLineExpanded{}.Type():        decodeAs[ToggleLineExpanded],
	ToggleLineMaximised{}.Type():       decodeAs[ToggleLineMaximised],
	DeleteLine{}.Type():                decodeAs[DeleteLine],
	ExpandAllLines{}.Type():            decodeAs[ExpandAllLines],
	CollapseAllLines{}.Type():          decodeAs[CollapseAllLines],
	ToggleColumnCollapsed{}.Type():     decodeAs[ToggleColumnCollapsed],
	SetColumnShowNewCardInput{}.Type(): decodeAs[SetColumnShowNewCardInput],
	NewCard{}.Type():                   decodeAs[NewCard],
	DeleteCard{}.Type():                decodeAs[DeleteCard],
	SetCardTitle{}.Type():              decodeAs[SetCardTitle],
	SetCardType{}.Type():               decodeAs[SetCardType],
	SetCardEditMode{}.Type():           decodeAs[SetCardEditMode],
	ReorderCard{}.Type():               decodeAs[ReorderCard],
	MoveCard{}.Type():                  decodeAs[MoveCard],
	NewTodo{}.Type():                   decodeAs[NewTodo],
	ToggleTodoDone{}.Type():            decodeAs[ToggleTodoDone],
	DeleteTodo{}.Type():                decodeAs[DeleteTodo],
	NewBug{}.Type():                    decodeAs[NewBug],
	ToggleBugDone{}.Type():             decodeAs[ToggleBugDone],
	DeleteBug{}.Type():                 decodeAs[DeleteBug],
	NewComment{}.Type():                decodeAs[NewComment],
	AddCardAssignee{}.Type():           decodeAs[AddCardAssignee],
	DeleteAssignee{}.Type():            decodeAs[DeleteAssignee],
	NewMember{}.Type():                 decodeAs[NewMember],
	SetMemberImageURL{}.Type():         decodeAs[SetMemberImageURL],
	DeleteMember{}.Type():              decodeAs[DeleteMember],
	ToggleLineSummaryBadges{}.Type():   decodeAs[ToggleLineSummaryBadges],
	SetCurrentUser{}.Type():            decodeAs[SetCurrentUser],
	ShowBoardPage{}.Type():             decodeAs[ShowBoardPage],
	ShowCardPage{}.Type():              decodeAs[ShowCardPage],
	ShowMembersPage{}.Type():           decodeAs[ShowMembersPage],
}

// ActionTypes lists every wire type this build understands, sorted.
func ActionTypes() []string {
	out := make([]string, 0, len(decoders))
	for k := range decoders {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// DecodeAction parses the JSON wire form {"type": "...", ...fields}.
// A well-formed object with an unrecognised type decodes to Unknown.
func DecodeAction(b []byte) (Action, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}
	typ := strings.TrimSpace(head.Type)
	if typ == "" {
		return nil, fmt.Errorf("decode action: missing type")
	}
	dec, ok := decoders[typ]
	if !ok {
		return Unknown{Kind: typ}, nil
	}
	a, err := dec(b)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", typ, err)
	}
	return a, nil
}

// EncodeAction renders a in the same wire form DecodeAction accepts.
func EncodeAction(a Action) ([]byte, error) {
	if a == nil {
		return nil, fmt.Errorf("encode action: nil")
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, err
	}
	typ, err := json.Marshal(a.Type())
	if err != nil {
		return nil, err
	}
	fields["type"] = typ
	return json.Marshal(fields)
}
