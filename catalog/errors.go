package catalog

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("catalog: not found")

// FetchError is a network failure or a non-2xx response.
type FetchError struct {
	Op         string
	URL        string
	StatusCode int // 0 when no response arrived
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalog %s %s: status %d: %v", e.Op, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("catalog %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// DecodeError means the response arrived but did not match the record shape.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("catalog %s: decode: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
