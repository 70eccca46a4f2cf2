package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/questionnaire/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{"resourceType":"Questionnaire","id":"GeneratedQuestionnaire","status":"active","item":[{"linkId":"q1","text":"喜歡的顏色","type":"choice","answerOption":[{"valueCoding":{"code":"紅","display":"紅"}}]}]}`

func TestSubmit_Success(t *testing.T) {
	var gotBody []byte
	var gotHeaders http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		gotBody, _ = io.ReadAll(r.Body)
		assert.Equal(t, http.MethodPost, r.Method)

		w.Header().Set("Location", "/fhir/Questionnaire/123/_history/1")
		w.Header().Set("Content-Type", "application/fhir+json")
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"resourceType":"Questionnaire","id":"123","meta":{"versionId":"1"},"title":"問卷"}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.Submit(context.Background(), samplePayload)
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "/fhir/Questionnaire/123/_history/1", resp.Location)
	assert.NotEmpty(t, resp.SubmissionID)
	assert.Equal(t, resp.SubmissionID, gotHeaders.Get("X-Request-ID"))
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))

	// The posted document is the parsed payload, re-serialized unchanged.
	assert.JSONEq(t, samplePayload, string(gotBody))
	assert.Contains(t, string(gotBody), "喜歡的顏色")

	// Key order is preserved and non-ASCII stays readable.
	assert.True(t, strings.Index(resp.Body, `"resourceType"`) < strings.Index(resp.Body, `"meta"`))
	assert.Contains(t, resp.Body, "\n  \"id\": \"123\"")
	assert.Contains(t, resp.Body, "問卷")
}

func TestSubmit_EmptyPayload(t *testing.T) {
	client := NewClient("http://127.0.0.1:1/unused")

	for _, payload := range []string{"", "   ", "\n"} {
		_, err := client.Submit(context.Background(), payload)
		assert.ErrorIs(t, err, core.ErrNoPayload, "payload %q", payload)
	}
}

func TestSubmit_InvalidPayload(t *testing.T) {
	client := NewClient("http://127.0.0.1:1/unused")

	tests := []string{
		`{not json`,
		`[1, 2, 3]`,
		`null`,
		`{"resourceType":"Questionnaire"} trailing`,
		`{"item": "not a list", "resourceType": "Questionnaire"}`,
	}
	for _, payload := range tests {
		_, err := client.Submit(context.Background(), payload)
		assert.ErrorIs(t, err, core.ErrInvalidPayload, "payload %q", payload)
	}
}

func TestSubmit_NonSuccessStatus(t *testing.T) {
	const body = `{"resourceType":"OperationOutcome","issue":[{"severity":"error","diagnostics":"Questionnaire.status: minimum required = 1"}]}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, body)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Submit(context.Background(), samplePayload)
	require.Error(t, err)

	var statusErr *core.RemoteStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnprocessableEntity, statusErr.StatusCode)
	assert.Equal(t, body, statusErr.Body)
	assert.Equal(t, "SUB003", core.MapError(err).Code)
}

func TestSubmit_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // nothing listens any more

	_, err := NewClient(url).Submit(context.Background(), samplePayload)
	assert.ErrorIs(t, err, core.ErrTransport)
}

func TestSubmit_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := NewClient(srv.URL, WithTimeout(50*time.Millisecond))
	_, err := client.Submit(context.Background(), samplePayload)
	assert.ErrorIs(t, err, core.ErrTransport)
}

func TestSubmit_NonJSONSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>ok</html>")
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Submit(context.Background(), samplePayload)
	assert.ErrorIs(t, err, core.ErrInvalidResponse)
}

func TestSubmit_EmptySuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).Submit(context.Background(), samplePayload)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, resp.Body)
}

func TestSubmitDocument_SendsAssembledDocument(t *testing.T) {
	var got core.Questionnaire
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	doc := core.Assemble([]core.Item{{LinkID: "q1", Text: "Age", Type: "integer", InputType: "number"}})
	_, err := NewClient(srv.URL).SubmitDocument(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, *doc, got)
}
