package core

import (
	"errors"
	"fmt"
)

// Upload errors.
var (
	ErrNoFile             = errors.New("no file provided")
	ErrFileTooLarge       = errors.New("file too large")
	ErrEncodingUndetected = errors.New("unable to detect file encoding")
	ErrEncodingDecode     = errors.New("file encoding error")
	ErrMalformedCSV       = errors.New("invalid csv")
)

// Submission errors.
var (
	ErrNoPayload          = errors.New("no questionnaire data provided")
	ErrInvalidPayload     = errors.New("invalid questionnaire json")
	ErrTransport          = errors.New("remote transport failure")
	ErrInvalidResponse    = errors.New("remote response is not json")
	ErrSubmissionDisabled = errors.New("submission disabled")
)

// RemoteStatusError is returned when the questionnaire repository answers
// with a non-success status. Body holds the response verbatim.
type RemoteStatusError struct {
	StatusCode int
	Body       string
}

func (e *RemoteStatusError) Error() string {
	return fmt.Sprintf("remote endpoint returned HTTP %d", e.StatusCode)
}
