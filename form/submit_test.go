package form

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func completeDraft() Draft {
	file := pdfAttachment()
	return Draft{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "555",
		Category:  "CS",
		Track:     "Theory",
		Address:   "1 Infinite Loop",
		File:      &file,
	}
}

func TestSubmitSendsMultipartPayload(t *testing.T) {
	var gotFields map[string][]string
	var gotFilename, gotFileType string
	var gotContent []byte

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotFields = r.MultipartForm.Value
		if headers := r.MultipartForm.File["abstractFile"]; len(headers) == 1 {
			gotFilename = headers[0].Filename
			gotFileType = headers[0].Header.Get("Content-Type")
			f, err := headers[0].Open()
			if err != nil {
				t.Errorf("open file part: %v", err)
			} else {
				gotContent, _ = io.ReadAll(f)
				f.Close()
			}
		} else {
			t.Errorf("file parts = %d, want 1", len(headers))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"submission":{"_id":"sub-1","_type":"abstractSubmission","firstName":"Ada"}}`))
	}))
	defer ts.Close()

	result, err := NewSubmitter(ts.URL).Submit(context.Background(), completeDraft())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Submission == nil || result.Submission.ID != "sub-1" {
		t.Errorf("submission = %+v", result.Submission)
	}
	if result.Submission.Type != "abstractSubmission" {
		t.Errorf("submission type = %q", result.Submission.Type)
	}

	want := completeDraft().Fields()
	for name, value := range want {
		got := gotFields[name]
		if len(got) != 1 || got[0] != value {
			t.Errorf("field %s = %v, want [%s]", name, got, value)
		}
	}
	if gotFilename != "abstract.pdf" {
		t.Errorf("filename = %q", gotFilename)
	}
	if gotFileType != PDFContentType {
		t.Errorf("file content type = %q", gotFileType)
	}
	if string(gotContent) != "%PDF" {
		t.Errorf("file content = %q", gotContent)
	}
}

func TestSubmitErrorResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"error":"upload asset: store unavailable"}`))
	}))
	defer ts.Close()

	_, err := NewSubmitter(ts.URL).Submit(context.Background(), completeDraft())
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if !strings.Contains(err.Error(), "store unavailable") {
		t.Errorf("error = %v, want server message included", err)
	}
}

func TestSubmitRejectsIncompleteDraft(t *testing.T) {
	requests := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer ts.Close()

	d := completeDraft()
	d.File = nil
	if _, err := NewSubmitter(ts.URL).Submit(context.Background(), d); err == nil {
		t.Fatal("expected error for incomplete draft")
	}
	if requests != 0 {
		t.Errorf("requests = %d, want 0 (invariant: nothing is sent before all eight are satisfied)", requests)
	}
}

func TestSubmitTransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // Closed server: the dial fails.

	_, err := NewSubmitter(ts.URL).Submit(context.Background(), completeDraft())
	if err == nil {
		t.Fatal("expected transport error")
	}
}
