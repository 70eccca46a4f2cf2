package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/JonMunkholm/questionnaire/internal/core"
	"github.com/JonMunkholm/questionnaire/internal/logging"
	"github.com/JonMunkholm/questionnaire/internal/web/templates"
)

// handleIndex renders the empty upload form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, templates.PageParams{})
}

// handleUpload converts an uploaded CSV file and renders the questionnaire
// together with the carry-forward copy for the submit step.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			s.renderFormError(w, r, fmt.Errorf("%w: limit %d bytes", core.ErrFileTooLarge, maxSize))
			return
		}
		s.renderFormError(w, r, fmt.Errorf("%w: %v", core.ErrNoFile, err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.renderFormError(w, r, fmt.Errorf("%w: %v", core.ErrNoFile, err))
		return
	}
	defer file.Close()

	if header.Filename == "" {
		s.renderFormError(w, r, fmt.Errorf("%w: no file selected", core.ErrNoFile))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, r, fmt.Errorf("read upload: %w", err), "Error processing file")
		return
	}

	logger := logging.WithFields(r.Context(), "file", header.Filename, "size", header.Size)
	logger.Info("upload received")

	result, err := s.converter.Convert(r.Context(), data)
	if err != nil {
		s.respondError(w, r, err, "Error processing file")
		return
	}

	s.renderPage(w, r, http.StatusOK, templates.PageParams{
		Questionnaire:     result.Pretty,
		QuestionnaireJSON: result.Compact,
		Encoding:          result.Encoding.Charset,
		ItemCount:         len(result.Questionnaire.Item),
		SkippedCount:      len(result.SkippedLines),
		SubmitEnabled:     s.submitter != nil,
	})
}

// handleSubmit posts the carried-forward questionnaire to the remote
// repository and returns the response as an HTML fragment.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if s.submitter == nil {
		s.respondError(w, r, core.ErrSubmissionDisabled, "Error uploading to server")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)
	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %v", core.ErrInvalidPayload, err), "Error uploading to server")
		return
	}

	resp, err := s.submitter.Submit(r.Context(), r.PostFormValue("questionnaire"))
	if err != nil {
		s.respondError(w, r, err, "Error uploading to server")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.SubmissionResult(resp.Body, resp.Location).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render submission result", "error", err)
	}
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("OK"))
}

// renderPage writes the full page with the given status.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, params templates.PageParams) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.Page(params).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "error", err)
	}
}
