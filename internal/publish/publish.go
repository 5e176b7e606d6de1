// Package publish writes a board as a tree of Markdown (or HTML) files: an index plus one page per card.
package publish

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"kaiser-cli/internal/board"
	"kaiser-cli/internal/model"
)

type WriteOptions struct {
	IncludeCollapsed bool
	IncludeComments  bool
	Overwrite        bool
	HTML             bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

func (o WriteOptions) render() RenderOptions {
	return RenderOptions{IncludeCollapsed: o.IncludeCollapsed, IncludeComments: o.IncludeComments, HTML: o.HTML}
}

// WriteCard writes toDir/cards/<id>.md (or .html).
func WriteCard(doc model.Document, cardID int, toDir string, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	md, err := RenderCardMarkdown(doc, cardID, opt.render())
	if err != nil {
		return WriteResult{}, err
	}
	outDir := filepath.Join(toDir, "cards")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return WriteResult{}, err
	}
	outPath := filepath.Join(outDir, fmt.Sprintf("%d%s", cardID, opt.render().ext()))
	if err := writePage(outPath, fmt.Sprintf("#%d", cardID), md, opt); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{outPath}}, nil
}

// WriteBoard writes toDir/<board-id>/index.md (or .html) and a page for every card on a published line.
// Cards in columns that no line references are not published.
func WriteBoard(doc model.Document, toDir string, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	boardDir := filepath.Join(filepath.Clean(toDir), doc.Board.ID)
	if err := os.MkdirAll(filepath.Join(boardDir, "cards"), 0o755); err != nil {
		return WriteResult{}, err
	}

	indexPath := filepath.Join(boardDir, "index"+opt.render().ext())
	if err := writePage(indexPath, doc.Board.Title, RenderBoardIndexMarkdown(doc, opt.render()), opt); err != nil {
		return WriteResult{}, err
	}

	// Stops on the first error; earlier files stay written.
	written := []string{indexPath}
	for _, l := range publishedLines(doc, opt.render()) {
		cols, _ := board.ColumnsOfLine(doc, l)
		for _, c := range cols {
			for _, card := range c.Cards {
				res, err := WriteCard(doc, card.ID, boardDir, opt)
				if err != nil {
					return WriteResult{Written: written}, err
				}
				written = append(written, res.Written...)
			}
		}
	}
	return WriteResult{Written: written}, nil
}

func writePage(path, title, md string, opt WriteOptions) error {
	b := []byte(md)
	if opt.HTML {
		var err error
		if b, err = MarkdownToHTML(title, md); err != nil {
			return err
		}
	}
	return writeFile(path, b, opt.Overwrite)
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
