package core

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{
			name:     "nil error returns empty",
			err:      nil,
			wantCode: "",
		},
		{
			name:       "file too large",
			err:        fmt.Errorf("%w: limit 10 bytes", ErrFileTooLarge),
			wantCode:   "FILE001",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed csv",
			err:        fmt.Errorf("%w: line 3", ErrMalformedCSV),
			wantCode:   "FILE002",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "encoding undetected",
			err:        ErrEncodingUndetected,
			wantCode:   "FILE003",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "encoding decode",
			err:        fmt.Errorf("%w: Big5", ErrEncodingDecode),
			wantCode:   "FILE004",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "no file",
			err:        ErrNoFile,
			wantCode:   "FILE005",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "no payload",
			err:        ErrNoPayload,
			wantCode:   "SUB001",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid payload",
			err:        fmt.Errorf("%w: unexpected EOF", ErrInvalidPayload),
			wantCode:   "SUB002",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "remote status",
			err:        &RemoteStatusError{StatusCode: 422, Body: "bad"},
			wantCode:   "SUB003",
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "wrapped remote status",
			err:        fmt.Errorf("submit: %w", &RemoteStatusError{StatusCode: 500}),
			wantCode:   "SUB003",
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "transport",
			err:        fmt.Errorf("%w: dial tcp: connection refused", ErrTransport),
			wantCode:   "SUB004",
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "invalid response",
			err:        ErrInvalidResponse,
			wantCode:   "SUB005",
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "submission disabled",
			err:        ErrSubmissionDisabled,
			wantCode:   "SUB006",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unknown error returns default",
			err:        errors.New("some random internal error"),
			wantCode:   "ERR000",
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "text alone does not match a category",
			err:        errors.New("invalid csv"),
			wantCode:   "ERR000",
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "cancelled context is uncategorized",
			err:        fmt.Errorf("convert cancelled: %w", context.Canceled),
			wantCode:   "ERR000",
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() Code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("MapError() Status = %d, want %d", got.Status, tt.wantStatus)
			}
			if tt.err != nil && (got.Message == "" || got.Action == "") {
				t.Errorf("MapError() = %+v, want message and action", got)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}

	got := FormatUserError(ErrNoFile)
	if !strings.Contains(got, "No file provided.") || !strings.Contains(got, "(Code: FILE005)") {
		t.Errorf("FormatUserError() = %q", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{ErrMalformedCSV, true},
		{&RemoteStatusError{StatusCode: 400}, true},
		{errors.New("boom"), false},
	}

	for _, tt := range tests {
		if got := IsUserFacing(tt.err); got != tt.want {
			t.Errorf("IsUserFacing(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestRemoteStatusError(t *testing.T) {
	err := &RemoteStatusError{StatusCode: 422, Body: `{"issue":[]}`}
	if got := err.Error(); got != "remote endpoint returned HTTP 422" {
		t.Errorf("Error() = %q", got)
	}
}
