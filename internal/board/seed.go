package board

import (
	"kaiser-cli/internal/boardkey"
	"kaiser-cli/internal/model"
)

// MemberPlaceholderImage is assigned to members created without an avatar.
const MemberPlaceholderImage = "/images/placeholder.png"

// EmptyDocument is the seed for every board key except the reserved default one.
func EmptyDocument(title string) model.Document {
	return model.Document{
		Client: model.Client{
			Page: model.Page{Current: model.PageBoard},
		},
		Settings: model.Settings{
			CurrentCardNumber:     0,
			ShowLineSummaryBadges: true,
		},
		Board: model.Board{
			ID:      boardkey.Normalize(title),
			Title:   title,
			Members: []model.Member{},
		},
		Lines:   []model.Line{},
		Columns: []model.Column{},
	}
}

type seedColumn struct {
	suffix string
	title  string
	color  string
}

type seedLine struct {
	id       string
	title    string
	typ      model.LineType
	expanded bool
	columns  []seedColumn
}

var sampleLines = []seedLine{
	{id: "backlog", title: "Backlog", typ: model.LineTypeBacklog, expanded: true, columns: []seedColumn{
		{"incoming", "Incoming", "#F98295"},
		{"triage", "Triage", "#F76F84"},
		{"accepted", "Accepted", "#F36077"},
		{"rejected", "Rejected", "#E65068"},
		{"out-of-scope", "Out of Scope", "#CB3F55"},
	}},
	{id: "dev", title: "Development", typ: model.LineTypeComponent, expanded: true, columns: []seedColumn{
		{"todo", "Todo", "#CB3F55"},
		{"doing", "Doing", "#CB3F55"},
		{"paused", "Paused", "#CB3F55"},
		{"blocked", "Blocked", "#CB3F55"},
		{"review", "Review", "#CB3F55"},
	}},
	{id: "test", title: "Test", typ: model.LineTypeTest, expanded: false, columns: []seedColumn{
		{"ready", "Test Ready", "#86E7A0"},
		{"testing", "Testing", "#64D281"},
		{"paused", "Paused", "#48BA66"},
	}},
	{id: "done", title: "Done", typ: model.LineTypeDone, expanded: true, columns: []seedColumn{
		{"ready", "Release Ready", "#E485D2"},
		{"release1-0", "Release 1.0", "#CD61B8"},
		{"release1-1", "Release 1.1", "#B3459E"},
		{"release2-0", "Release 2.0", "#9C3689"},
	}},
	{id: "scratch", title: "Scratch", typ: model.LineTypeScratch, expanded: false, columns: []seedColumn{
		{"requests", "Feature Requests", "#FFC7AA"},
		{"ideas", "Ideas", "#D48E6A"},
		{"notes", "Notes", "#AA5F39"},
		{"trash", "Trash", "#803915"},
	}},
}

// SampleDocument is the seed for the default board: the standard five-lane layout.
func SampleDocument(title string) model.Document {
	doc := EmptyDocument(title)
	doc.Board.Members = []model.Member{
		{Username: "pdrummond", ImageURL: "/images/pdrummond.png"},
		{Username: "john", ImageURL: "/images/john_swan.png"},
	}
	for _, sl := range sampleLines {
		line := model.Line{
			ID:        sl.id,
			Title:     sl.title,
			Type:      sl.typ,
			Expanded:  sl.expanded,
			ColumnIDs: make([]string, 0, len(sl.columns)),
		}
		for _, sc := range sl.columns {
			id := sl.id + "/" + sc.suffix
			line.ColumnIDs = append(line.ColumnIDs, id)
			doc.Columns = append(doc.Columns, model.Column{
				ID:              id,
				LineID:          sl.id,
				Title:           sc.title,
				BackgroundColor: sc.color,
				Cards:           []model.Card{},
			})
		}
		doc.Lines = append(doc.Lines, line)
	}
	return doc
}

// newLineColumns is the fixed column set every line created at runtime gets, in order.
var newLineColumns = []seedColumn{
	{"todo", "Todo", "#CB3F55"},
	{"doing", "Doing", "#CB3F55"},
	{"paused", "Paused", "#CB3F55"},
	{"blocked", "Blocked", "#CB3F55"},
	{"review", "Review", "#CB3F55"},
	{"test-ready", "Test Ready", "#86E7A0"},
	{"testing", "Testing", "#64D281"},
	{"done", "Done", "#E485D2"},
}
