package board

import (
	"errors"
	"fmt"
)

// NotFoundError reports an action that referenced an entity missing from the document.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// IndexError reports a positional argument outside a column's card range.
type IndexError struct {
	ColumnID string
	Field    string
	Index    int
	Len      int
}

func (e IndexError) Error() string {
	return fmt.Sprintf("%s %d out of range for column %s (%d cards)", e.Field, e.Index, e.ColumnID, e.Len)
}

type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

func errNotFound(kind string, id any) error {
	return NotFoundError{Kind: kind, ID: fmt.Sprint(id)}
}
