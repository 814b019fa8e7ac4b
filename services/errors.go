package services

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceNotFound means the transaction statement file does not exist.
	ErrSourceNotFound = errors.New("transaction source not found")

	// ErrEmptyWindow means a metric had no samples to average.
	ErrEmptyWindow = errors.New("health window has no samples")
)

// ParseError reports a malformed statement row or header.
type ParseError struct {
	Line   int
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column != "":
		return fmt.Sprintf("parse statement line %d, column %q: %v", e.Line, e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("parse statement line %d: %v", e.Line, e.Err)
	case e.Column != "":
		return fmt.Sprintf("parse statement column %q: %v", e.Column, e.Err)
	}
	return fmt.Sprintf("parse statement: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UpstreamError reports a failed call to an external service.
// StatusCode is zero when no HTTP response was received.
type UpstreamError struct {
	Service    string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s returned status %d: %v", e.Service, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s request failed: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
