package model

import "time"

type LineType string

const (
	LineTypeBacklog   LineType = "backlog"
	LineTypeComponent LineType = "component"
	LineTypeTest      LineType = "test"
	LineTypeDone      LineType = "done"
	LineTypeScratch   LineType = "scratch"
)

// Card types are free-form; these are the ones the board knows how to badge.
const (
	CardTypeTask = "task"
	CardTypeBug  = "bug"
)

type PageKind string

const (
	PageBoard   PageKind = "board"
	PageCard    PageKind = "card"
	PageMembers PageKind = "members"
)

// Document is the whole persisted state of one board.
//
// Documents are treated as immutable values: the reducer never writes into a slice it did not
// allocate itself, so two documents may share untouched lines, columns and cards.
type Document struct {
	Client   Client   `json:"client"`
	Settings Settings `json:"settings"`
	Board    Board    `json:"board"`
	Lines    []Line   `json:"lines"`
	Columns  []Column `json:"columns"`
}

type Client struct {
	CurrentUsername string `json:"currentUsername,omitempty"`
	Page            Page   `json:"page"`
}

type Page struct {
	Current  PageKind `json:"current"`
	CardID   *int     `json:"cardId,omitempty"`
	ColumnID *string  `json:"columnId,omitempty"`
}

type Settings struct {
	// CurrentCardNumber is the last card id handed out. It only ever grows.
	CurrentCardNumber     int  `json:"currentCardNumber"`
	ShowLineSummaryBadges bool `json:"showLineSummaryBadges"`
}

type Board struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Members []Member `json:"members"`
}

type Member struct {
	Username string `json:"username"`
	ImageURL string `json:"imageUrl"`
}

type Line struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Type      LineType `json:"type"`
	Expanded  bool     `json:"expanded"`
	Maximised bool     `json:"maximised"`
	ColumnIDs []string `json:"columnIds"`
}

type Column struct {
	ID               string `json:"id"`
	LineID           string `json:"lineId,omitempty"`
	Title            string `json:"title"`
	BackgroundColor  string `json:"backgroundColor,omitempty"`
	Collapsed        bool   `json:"collapsed"`
	ShowNewCardInput bool   `json:"showNewCardInput"`
	Cards            []Card `json:"cards"`
}

type Card struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	Type      string     `json:"type"`
	EditMode  bool       `json:"editMode"`
	Todos     []Todo     `json:"todos"`
	Bugs      []Bug      `json:"bugs"`
	Comments  []Comment  `json:"comments"`
	Assignees []Assignee `json:"assignees"`
}

type Todo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

type Bug struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

type Comment struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type Assignee struct {
	Username string `json:"username"`
}

// Normalize replaces nil collections with empty ones so callers and the JSON form stay stable.
// It allocates only where a nil slice is found.
func (d Document) Normalize() Document {
	if d.Lines == nil {
		d.Lines = []Line{}
	}
	if d.Columns == nil {
		d.Columns = []Column{}
	}
	if d.Board.Members == nil {
		d.Board.Members = []Member{}
	}
	if d.Client.Page.Current == "" {
		d.Client.Page.Current = PageBoard
	}
	needsLines := false
	for _, l := range d.Lines {
		if l.ColumnIDs == nil {
			needsLines = true
			break
		}
	}
	if needsLines {
		lines := append([]Line(nil), d.Lines...)
		for i := range lines {
			if lines[i].ColumnIDs == nil {
				lines[i].ColumnIDs = []string{}
			}
		}
		d.Lines = lines
	}
	needsCards := false
	for i := range d.Columns {
		if d.Columns[i].Cards == nil || cardsNeedNormalize(d.Columns[i].Cards) {
			needsCards = true
			break
		}
	}
	if needsCards {
		cols := append([]Column(nil), d.Columns...)
		for i := range cols {
			if cols[i].Cards == nil {
				cols[i].Cards = []Card{}
				continue
			}
			if cardsNeedNormalize(cols[i].Cards) {
				cards := append([]Card(nil), cols[i].Cards...)
				for j := range cards {
					cards[j] = cards[j].Normalize()
				}
				cols[i].Cards = cards
			}
		}
		d.Columns = cols
	}
	return d
}

func cardsNeedNormalize(cards []Card) bool {
	for _, c := range cards {
		if c.Todos == nil || c.Bugs == nil || c.Comments == nil || c.Assignees == nil {
			return true
		}
	}
	return false
}

func (c Card) Normalize() Card {
	if c.Todos == nil {
		c.Todos = []Todo{}
	}
	if c.Bugs == nil {
		c.Bugs = []Bug{}
	}
	if c.Comments == nil {
		c.Comments = []Comment{}
	}
	if c.Assignees == nil {
		c.Assignees = []Assignee{}
	}
	return c
}

// OpenTodos counts todos not yet done.
func (c Card) OpenTodos() int {
	n := 0
	for _, t := range c.Todos {
		if !t.Done {
			n++
		}
	}
	return n
}

// OpenBugs counts bugs not yet done.
func (c Card) OpenBugs() int {
	n := 0
	for _, b := range c.Bugs {
		if !b.Done {
			n++
		}
	}
	return n
}
