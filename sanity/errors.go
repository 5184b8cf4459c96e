package sanity

import "fmt"

// Error is returned when the content store rejects a request.
type Error struct {
	StatusCode int
	Msg        string
}

func (e *Error) Error() string {
	return fmt.Sprintf("sanity: %s (status %d)", e.Msg, e.StatusCode)
}
