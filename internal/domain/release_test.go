package domain

import (
	"testing"
	"time"
)

func TestHistoryLatest(t *testing.T) {
	h := History{}
	if h.Latest() != nil {
		t.Fatalf("expected nil for empty history")
	}

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	h.Releases = []Release{
		{Tag: "v1.0.0", Timestamp: base},
		{Tag: "v1.2.0", Timestamp: base.Add(48 * time.Hour)},
		{Tag: "v1.1.0", Timestamp: base.Add(24 * time.Hour)},
	}
	latest := h.Latest()
	if latest == nil || latest.Tag != "v1.2.0" {
		t.Fatalf("expected v1.2.0, got %+v", latest)
	}
}

func TestHistoryFindTag(t *testing.T) {
	h := History{Releases: []Release{{Tag: "v1.0.0", Version: "1.0.0"}}}
	if r := h.FindTag("v1.0.0"); r == nil || r.Version != "1.0.0" {
		t.Fatalf("expected to find v1.0.0, got %+v", r)
	}
	if r := h.FindTag("v9.9.9"); r != nil {
		t.Fatalf("expected nil for unknown tag, got %+v", r)
	}
}
