package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/felixgeelhaar/tagctl/internal/application"
	"github.com/felixgeelhaar/tagctl/internal/domain"
)

func publishedResult() application.PublishResult {
	return application.PublishResult{
		Status: domain.StatusPublished,
		Plan: domain.Plan{
			Version:  "2.3.1",
			Tag:      "v2.3.1",
			Remote:   "origin",
			Manifest: "Cargo.toml",
		},
		Commit: "abc123",
	}
}

func TestWritePublishedText(t *testing.T) {
	var buf bytes.Buffer
	if err := (Writer{}).Write(&buf, publishedResult(), application.OutputText); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.String() != "v2.3.1 pushed\n" {
		t.Fatalf("expected exact confirmation line, got %q", buf.String())
	}
}

func TestWritePlannedText(t *testing.T) {
	result := publishedResult()
	result.Status = domain.StatusPlanned
	result.Plan.PreviousTag = "v2.3.0"
	result.Plan.Warnings = []string{"tag v2.3.1 already exists; git tag will refuse to overwrite it"}

	var buf bytes.Buffer
	if err := (Writer{}).Write(&buf, result, application.OutputText); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Would tag v2.3.1") {
		t.Fatalf("expected plan summary, got %q", out)
	}
	if !strings.Contains(out, "Previous tag: v2.3.0") {
		t.Fatalf("expected previous tag line, got %q", out)
	}
	if !strings.Contains(out, "warning: tag v2.3.1 already exists") {
		t.Fatalf("expected warning line, got %q", out)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := (Writer{}).Write(&buf, publishedResult(), application.OutputJSON); err != nil {
		t.Fatalf("write: %v", err)
	}

	var decoded application.PublishResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Plan.Tag != "v2.3.1" || decoded.Status != domain.StatusPublished {
		t.Fatalf("unexpected payload: %+v", decoded)
	}
}

func TestWriteUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := (Writer{}).Write(&buf, publishedResult(), "yaml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}
