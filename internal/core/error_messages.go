package core

// error_messages.go maps conversion and submission errors to user messages.
//
// # Error Codes Reference
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: the upload exceeds UPLOAD_MAX_FILE_SIZE
//	FILE002 - Invalid CSV: quoting is unbalanced or a line cannot be read
//	FILE003 - Encoding undetected: empty or ambiguous bytes
//	FILE004 - Encoding error: bytes are malformed for the detected encoding
//	FILE005 - No file: the form carried no file or an empty file name
//
// # Submission Errors (SUB001-SUB099)
//
//	SUB001 - No questionnaire: the carry-forward field was empty
//	SUB002 - Invalid questionnaire: the field is not a questionnaire document
//	SUB003 - Remote rejected: the repository answered with a non-success status
//	SUB004 - Transport failure: connection refused, DNS failure, timeout
//	SUB005 - Invalid remote response: the success body was not JSON
//	SUB006 - Submission disabled: no remote endpoint is configured
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: check application logs for the technical error
//
// Matching uses errors.Is against the sentinels in errors.go, in table order.

import (
	"errors"
	"fmt"
	"net/http"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
	Status  int    // HTTP status for the web layer
}

// errorMapping ties a sentinel to its user message.
type errorMapping struct {
	target error
	msg    UserMessage
}

var errorMappings = []errorMapping{
	{
		target: ErrFileTooLarge,
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Split the survey into smaller files",
			Code:    "FILE001",
			Status:  http.StatusBadRequest,
		},
	},
	{
		target: ErrMalformedCSV,
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Check for unbalanced quotes in the reported line",
			Code:    "FILE002",
			Status:  http.StatusBadRequest,
		},
	},
	{
		target: ErrEncodingUndetected,
		msg: UserMessage{
			Message: "Unable to detect file encoding.",
			Action:  "Save the file as UTF-8 and upload it again",
			Code:    "FILE003",
			Status:  http.StatusBadRequest,
		},
	},
	{
		target: ErrEncodingDecode,
		msg: UserMessage{
			Message: "File encoding error. Unable to decode the file.",
			Action:  "Save the file as UTF-8 and upload it again",
			Code:    "FILE004",
			Status:  http.StatusBadRequest,
		},
	},
	{
		target: ErrNoFile,
		msg: UserMessage{
			Message: "No file provided.",
			Action:  "Please select a CSV file to upload",
			Code:    "FILE005",
			Status:  http.StatusBadRequest,
		},
	},
	{
		target: ErrNoPayload,
		msg: UserMessage{
			Message: "No questionnaire data provided.",
			Action:  "Upload a CSV file before submitting",
			Code:    "SUB001",
			Status:  http.StatusBadRequest,
		},
	},
	{
		target: ErrInvalidPayload,
		msg: UserMessage{
			Message: "Invalid JSON format.",
			Action:  "Upload the CSV file again to regenerate the questionnaire",
			Code:    "SUB002",
			Status:  http.StatusBadRequest,
		},
	},
	{
		target: ErrTransport,
		msg: UserMessage{
			Message: "Error uploading to server",
			Action:  "Check the network connection and try again",
			Code:    "SUB004",
			Status:  http.StatusInternalServerError,
		},
	},
	{
		target: ErrInvalidResponse,
		msg: UserMessage{
			Message: "Server response could not be read",
			Action:  "Check the repository logs for the stored questionnaire",
			Code:    "SUB005",
			Status:  http.StatusInternalServerError,
		},
	},
	{
		target: ErrSubmissionDisabled,
		msg: UserMessage{
			Message: "Submission to a remote server is disabled",
			Action:  "Set REMOTE_ENABLED=true to enable it",
			Code:    "SUB006",
			Status:  http.StatusNotFound,
		},
	},
}

// remoteRejected is the message for *RemoteStatusError (SUB003).
var remoteRejected = UserMessage{
	Message: "HTTP error occurred",
	Action:  "Review the server response below",
	Code:    "SUB003",
	Status:  http.StatusInternalServerError,
}

// defaultMessage is returned when no mapping matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
	Status:  http.StatusInternalServerError,
}

// MapError converts an error to a user-friendly message.
// A nil error maps to the zero UserMessage.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var statusErr *RemoteStatusError
	if errors.As(err, &statusErr) {
		return remoteRejected
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known category rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
