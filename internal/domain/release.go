package domain

import "time"

// Release records a single published tag.
type Release struct {
	Timestamp time.Time `json:"timestamp"`
	Tag       string    `json:"tag"`
	Version   string    `json:"version"`
	Commit    string    `json:"commit,omitempty"`
	Remote    string    `json:"remote,omitempty"`
	Manifest  string    `json:"manifest,omitempty"`
}

// History contains all recorded releases.
type History struct {
	Releases []Release `json:"releases"`
}

// Latest returns the most recently published release, or nil if empty.
func (h *History) Latest() *Release {
	if len(h.Releases) == 0 {
		return nil
	}
	latest := 0
	for i := 1; i < len(h.Releases); i++ {
		if h.Releases[i].Timestamp.After(h.Releases[latest].Timestamp) {
			latest = i
		}
	}
	return &h.Releases[latest]
}

// FindTag returns the recorded release for the given tag, or nil.
func (h *History) FindTag(tag string) *Release {
	for i := range h.Releases {
		if h.Releases[i].Tag == tag {
			return &h.Releases[i]
		}
	}
	return nil
}

// Plan describes what a publish run would do, before any git mutation.
// PreviousTag is the newest tag already in the repository, when one exists.
type Plan struct {
	Version     string   `json:"version"`
	Tag         string   `json:"tag"`
	Remote      string   `json:"remote"`
	Manifest    string   `json:"manifest"`
	PreviousTag string   `json:"previousTag,omitempty"`
	TagExists   bool     `json:"tagExists"`
	Warnings    []string `json:"warnings,omitempty"`
}

// Status of a completed publish attempt.
type Status string

const (
	StatusPublished Status = "published"
	StatusPlanned   Status = "planned"
	StatusFailed    Status = "failed"
)
