// ABOUTME: Tests for the document worker HTTP client against a fake server
// ABOUTME: Covers base64 round-trips and in-body error reporting
package worker

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"redpen/internal/models"
)

func TestParseFile(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/parse" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text": "extracted text", "error": null}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	text, err := client.ParseFile(t.Context(), []byte("raw bytes"), models.FormatDocx)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}

	if text != "extracted text" {
		t.Errorf("unexpected text: %q", text)
	}
	decoded, _ := base64.StdEncoding.DecodeString(got["file_content"])
	if string(decoded) != "raw bytes" {
		t.Errorf("file content not base64-encoded correctly: %q", got["file_content"])
	}
	if got["file_type"] != "docx" {
		t.Errorf("unexpected file type: %q", got["file_type"])
	}
}

func TestParseFile_InBodyError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text": "", "error": "file is corrupted"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.ParseFile(t.Context(), []byte("x"), models.FormatPdf)
	if err == nil {
		t.Fatal("expected error from worker error field")
	}
	want := "failed to parse file: file is corrupted"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestGenerate(t *testing.T) {
	clean := base64.StdEncoding.EncodeToString([]byte("clean-docx"))
	diff := base64.StdEncoding.EncodeToString([]byte("diff-docx"))

	var got struct {
		Original    string              `json:"original"`
		Corrected   string              `json:"corrected"`
		FactChanges []models.FactChange `json:"fact_changes"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"clean_doc": "` + clean + `", "diff_doc": "` + diff + `", "error": null}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	changes := []models.FactChange{{Original: "1942", Corrected: "1941", Context: "ctx"}}
	cleanDoc, diffDoc, err := client.Generate(t.Context(), "orig", "corr", changes)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if string(cleanDoc) != "clean-docx" || string(diffDoc) != "diff-docx" {
		t.Error("documents not decoded from base64")
	}
	if got.Original != "orig" || got.Corrected != "corr" {
		t.Errorf("texts not forwarded: %+v", got)
	}
	if len(got.FactChanges) != 1 || got.FactChanges[0].Corrected != "1941" {
		t.Errorf("fact changes not forwarded: %+v", got.FactChanges)
	}
}

func TestGenerate_HTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, _, err := client.Generate(t.Context(), "a", "b", nil); err == nil {
		t.Error("expected error on HTTP failure")
	}
}
