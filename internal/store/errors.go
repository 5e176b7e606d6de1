package store

import "fmt"

// PersistError reports a snapshot that could not be written. The dispatch it belongs to still
// took effect in memory.
type PersistError struct {
	Key string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Key, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
