package form

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"abstractportal-backend/models"
)

// Result is the decoded response envelope from the submission endpoint.
type Result struct {
	Success    bool               `json:"success"`
	Submission *models.Submission `json:"submission,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// Submitter posts a completed draft to the submission endpoint. One attempt
// per call: no retries, no timeout beyond the caller's context.
type Submitter struct {
	Endpoint string
	Client   *http.Client
}

// NewSubmitter creates a submitter for the given endpoint URL.
func NewSubmitter(endpoint string) *Submitter {
	return &Submitter{
		Endpoint: endpoint,
		Client:   http.DefaultClient,
	}
}

// Submit serializes the whole draft plus file into a single multipart
// payload and issues one POST. A transport failure or non-ok response
// returns an error; the caller maps it to SubmitFailed.
func (s *Submitter) Submit(ctx context.Context, d Draft) (*Result, error) {
	if !d.Complete() {
		return nil, fmt.Errorf("form: draft is incomplete")
	}

	body, contentType, err := buildPayload(d)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("form: build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("form: submit: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("form: read response: %w", err)
	}

	var result Result
	_ = json.Unmarshal(respBody, &result)

	if resp.StatusCode != http.StatusOK || !result.Success {
		msg := result.Error
		if msg == "" {
			msg = fmt.Sprintf("submission failed (status %d)", resp.StatusCode)
		}
		return nil, fmt.Errorf("form: %s", msg)
	}
	return &result, nil
}

// buildPayload writes all draft fields as text parts plus the file as a
// binary part under the fixed field name.
func buildPayload(d Draft) (io.Reader, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for name, value := range d.Fields() {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("form: write field %s: %w", name, err)
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, models.FieldAbstractFile, d.File.Filename))
	header.Set("Content-Type", d.File.ContentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("form: create file part: %w", err)
	}
	if _, err := part.Write(d.File.Content); err != nil {
		return nil, "", fmt.Errorf("form: write file part: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("form: finalize payload: %w", err)
	}
	return body, w.FormDataContentType(), nil
}
