package board

import "kaiser-cli/internal/model"

// Action is a closed set: only types in this package implement it.
// Type returns the wire name used in the JSON form.
type Action interface {
	Type() string
	isAction()
}

type ResetBoard struct{}

type LoadSampleData struct{}

// ReplaceDocument swaps in a whole snapshot (import).
type ReplaceDocument struct {
	State model.Document `json:"state"`
}

type NewLine struct {
	Title string `json:"title"`
}

type SetLineTitle struct {
	LineID string `json:"lineId"`
	Title  string `json:"title"`
}

type ToggleLineExpanded struct {
	LineID string `json:"lineId"`
}

type ToggleLineMaximised struct {
	LineID string `json:"lineId"`
}

// DeleteLine removes the line only. Its columns stay in the document, unreferenced.
type DeleteLine struct {
	LineID string `json:"lineId"`
}

type ExpandAllLines struct{}

type CollapseAllLines struct{}

type ToggleColumnCollapsed struct {
	ColumnID string `json:"columnId"`
}

type SetColumnShowNewCardInput struct {
	ColumnID string `json:"columnId"`
	Show     bool   `json:"show"`
}

type NewCard struct {
	ColumnID string `json:"columnId"`
	Title    string `json:"title"`
}

type DeleteCard struct {
	ColumnID string `json:"columnId"`
	CardID   int    `json:"cardId"`
}

type SetCardTitle struct {
	ColumnID string `json:"columnId"`
	CardID   int    `json:"cardId"`
	Title    string `json:"title"`
	EditMode bool   `json:"editMode"`
}

type SetCardType struct {
	ColumnID string `json:"columnId"`
	CardID   int    `json:"cardId"`
	CardType string `json:"cardType"`
}

type SetCardEditMode struct {
	ColumnID string `json:"columnId"`
	CardID   int    `json:"cardId"`
	EditMode bool   `json:"editMode"`
}

// ReorderCard moves the card at DragIndex to HoverIndex within one column.
// Callers filter DragIndex == HoverIndex.
type ReorderCard struct {
	ColumnID   string `json:"columnId"`
	DragIndex  int    `json:"dragIndex"`
	HoverIndex int    `json:"hoverIndex"`
}

// MoveCard removes the card at CardIndex from FromColumnID and appends it to ToColumnID.
type MoveCard struct {
	FromColumnID string `json:"fromColumnId"`
	ToColumnID   string `json:"toColumnId"`
	CardID       int    `json:"cardId"`
	CardIndex    int    `json:"cardIndex"`
}

type NewTodo struct {
	ColumnID string `json:"columnId"`
	CardID   int    `json:"cardId"`
	Title    string `json:"title"`
}

type ToggleTodoDone struct {
	ColumnID string `json:"columnId"`
	CardID   int    `json:"cardId"`
	TodoID   string `json:"todoId"`
	Done     bool   `json:"done"`
}

type DeleteTodo struct {
	ColumnID string `json:"columnId"`
	CardID   int    `json:"cardId"`
	TodoID   string `json:"todoId"`
}

type NewBug struct {
	ColumnID string `json:"columnId"`
	CardID   int    `json:"cardId"`
	Title    string `json:"title"`
}

type ToggleBugDone struct {
	ColumnID string `json:"columnId"`
	CardID   int    `json:"cardId"`
	BugID    string `json:"bugId"`
	Done     bool   `json:"done"`
}

type DeleteBug struct {
	ColumnID string `json:"columnId"`
	CardID   int    `json:"cardId"`
	BugID    string `json:"bugId"`
}

type NewComment struct {
	ColumnID string `json:"columnId"`
	CardID   int    `json:"cardId"`
	Text     string `json:"text"`
}

// AddCardAssignee is ignored unless Username is a board member.
type AddCardAssignee struct {
	ColumnID string `json:"columnId"`
	CardID   int    `json:"cardId"`
	Username string `json:"assignee"`
}

type DeleteAssignee struct {
	ColumnID string `json:"columnId"`
	CardID   int    `json:"cardId"`
	Username string `json:"assignee"`
}

type NewMember struct {
	Username string `json:"username"`
}

type SetMemberImageURL struct {
	Username string `json:"username"`
	ImageURL string `json:"imageUrl"`
}

// DeleteMember leaves card assignments that reference the member in place.
type DeleteMember struct {
	Username string `json:"username"`
}

type ToggleLineSummaryBadges struct{}

type SetCurrentUser struct {
	Username string `json:"username"`
}

type ShowBoardPage struct{}

type ShowCardPage struct {
	CardID   int    `json:"cardId"`
	ColumnID string `json:"columnId"`
}

type ShowMembersPage struct{}

// Unknown carries a wire type this build does not recognise. Applying it is a no-op.
type Unknown struct {
	Kind string `json:"-"`
}

func (ResetBoard) Type() string                { return "NEW_BOARD" }
func (LoadSampleData) Type() string            { return "LOAD_SAMPLE_DATA" }
func (ReplaceDocument) Type() string           { return "SET_STATE" }
func (NewLine) Type() string                   { return "NEW_COMPONENT" }
func (SetLineTitle) Type() string              { return "SET_LINE_TITLE" }
func (ToggleLineExpanded) Type() string        { return "TOGGLE_LINE_EXPANDED" }
func (ToggleLineMaximised) Type() string       { return "TOGGLE_LINE_MAXIMISED" }
func (DeleteLine) Type() string                { return "DELETE_LINE" }
func (ExpandAllLines) Type() string            { return "EXPAND_ALL_LINES" }
func (CollapseAllLines) Type() string          { return "COLLAPSE_ALL_LINES" }
func (ToggleColumnCollapsed) Type() string     { return "TOGGLE_COLUMN_COLLAPSED" }
func (SetColumnShowNewCardInput) Type() string { return "SET_COLUMN_SHOW_NEW_CARD_INPUT" }
func (NewCard) Type() string                   { return "NEW_CARD" }
func (DeleteCard) Type() string                { return "DELETE_CARD" }
func (SetCardTitle) Type() string              { return "SET_CARD_TITLE" }
func (SetCardType) Type() string               { return "SET_CARD_TYPE" }
func (SetCardEditMode) Type() string           { return "SET_CARD_EDIT_MODE" }
func (ReorderCard) Type() string               { return "REORDER_CARD" }
func (MoveCard) Type() string                  { return "MOVE_CARD" }
func (NewTodo) Type() string                   { return "NEW_TODO" }
func (ToggleTodoDone) Type() string            { return "TOGGLE_TODO_DONE" }
func (DeleteTodo) Type() string                { return "DELETE_TODO" }
func (NewBug) Type() string                    { return "NEW_BUG" }
func (ToggleBugDone) Type() string             { return "TOGGLE_BUG_DONE" }
func (DeleteBug) Type() string                 { return "DELETE_BUG" }
func (NewComment) Type() string                { return "NEW_COMMENT" }
func (AddCardAssignee) Type() string           { return "ADD_CARD_ASSIGNEE" }
func (DeleteAssignee) Type() string            { return "DELETE_CARD_ASSIGNEE" }
func (NewMember) Type() string                 { return "NEW_MEMBER" }
func (SetMemberImageURL) Type() string         { return "SET_MEMBER_IMAGE_URL" }
func (DeleteMember) Type() string              { return "DELETE_MEMBER" }
func (ToggleLineSummaryBadges) Type() string   { return "TOGGLE_LINE_SUMMARY_BADGES" }
func (SetCurrentUser) Type() string            { return "SET_CURRENT_USER" }
func (ShowBoardPage) Type() string             { return "SHOW_BOARD_PAGE" }
func (ShowCardPage) Type() string              { return "SHOW_CARD_PAGE" }
func (ShowMembersPage) Type() string           { return "SHOW_MEMBERS_PAGE" }
func (u Unknown) Type() string                 { return u.Kind }

func (ResetBoard) isAction()                {}
func (LoadSampleData) isAction()            {}
func (ReplaceDocument) isAction()           {}
func (NewLine) isAction()                   {}
func (SetLineTitle) isAction()              {}
func (ToggleLineExpanded) isAction()        {}
func (ToggleLineMaximised) isAction()       {}
func (DeleteLine) isAction()                {}
func (ExpandAllLines) isAction()            {}
func (CollapseAllLines) isAction()          {}
func (ToggleColumnCollapsed) isAction()     {}
func (SetColumnShowNewCardInput) isAction() {}
func (NewCard) isAction()                   {}
func (DeleteCard) isAction()                {}
func (SetCardTitle) isAction()              {}
func (SetCardType) isAction()               {}
func (SetCardEditMode) isAction()           {}
func (ReorderCard) isAction()               {}
func (MoveCard) isAction()                  {}
func (NewTodo) isAction()                   {}
func (ToggleTodoDone) isAction()            {}
func (DeleteTodo) isAction()                {}
func (NewBug) isAction()                    {}
func (ToggleBugDone) isAction()             {}
func (DeleteBug) isAction()                 {}
func (NewComment) isAction()                {}
func (AddCardAssignee) isAction()           {}
func (DeleteAssignee) isAction()            {}
func (NewMember) isAction()                 {}
func (SetMemberImageURL) isAction()         {}
func (DeleteMember) isAction()              {}
func (ToggleLineSummaryBadges) isAction()   {}
func (SetCurrentUser) isAction()            {}
func (ShowBoardPage) isAction()             {}
func (ShowCardPage) isAction()              {}
func (ShowMembersPage) isAction()           {}
func (Unknown) isAction()                   {}
