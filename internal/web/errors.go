package web

// errors.go provides unified error response handling for the web layer.
//
// Every error is:
//   - Logged with full technical details and the request id (server-side)
//   - Mapped through core.MapError to a status code and user message
//   - Written as plain text, JSON (Accept: application/json) or, for upload
//     input problems, as the form re-rendered with an inline message

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/JonMunkholm/questionnaire/internal/core"
	"github.com/JonMunkholm/questionnaire/internal/logging"
	"github.com/JonMunkholm/questionnaire/internal/web/templates"
)

// ErrorResponse represents the JSON structure for API error responses.
type ErrorResponse struct {
	Error  string `json:"error"`
	Action string `json:"action,omitempty"`
	Code   string `json:"code"`
}

// respondError logs err and writes it with the status its category maps to.
// prefix introduces the technical message of uncategorized and transport
// errors, e.g. "Error processing file: <cause>".
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, prefix string) {
	msg := core.MapError(err)
	logError(r, err, msg)

	text := errorText(err, msg, prefix)
	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(msg.Status)
		json.NewEncoder(w).Encode(ErrorResponse{Error: text, Action: msg.Action, Code: msg.Code})
		return
	}

	http.Error(w, text, msg.Status)
}

// renderFormError re-renders the upload form with an inline message.
func (s *Server) renderFormError(w http.ResponseWriter, r *http.Request, err error) {
	msg := core.MapError(err)
	logError(r, err, msg)

	s.renderPage(w, r, msg.Status, templates.PageParams{
		Error:       msg.Message,
		ErrorAction: msg.Action,
		ErrorCode:   msg.Code,
	})
}

// errorText builds the client-facing text. Remote rejections carry the
// repository's body verbatim.
func errorText(err error, msg core.UserMessage, prefix string) string {
	var statusErr *core.RemoteStatusError
	switch {
	case errors.As(err, &statusErr):
		return fmt.Sprintf("%s: %s", msg.Message, statusErr.Body)
	case errors.Is(err, core.ErrTransport), !core.IsUserFacing(err):
		return fmt.Sprintf("%s: %v", prefix, err)
	default:
		return msg.Message
	}
}

func logError(r *http.Request, err error, msg core.UserMessage) {
	logger := logging.FromContext(r.Context())
	args := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", msg.Status,
		"code", msg.Code,
		"error", err.Error(),
	}
	if msg.Status >= http.StatusInternalServerError {
		logger.Error("request error", args...)
		return
	}
	logger.Warn("request error", args...)
}

// wantsJSON checks if the client prefers JSON response.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
