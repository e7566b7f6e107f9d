package pipeline

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Status is the outcome of a build.
type Status string

const (
	StatusLoading    Status = "loading"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// SourceReport describes one loaded source file.
type SourceReport struct {
	Path        string `json:"path"`
	Entries     int    `json:"entries"`
	Bytes       int64  `json:"bytes"`
	ContentHash string `json:"content_hash"`
}

// Report summarizes a documentation build.
type Report struct {
	Status Status `json:"status"`
	Phase  string `json:"phase"`

	Sources []SourceReport `json:"sources"`

	// ContentHash digests all inputs in order.
	ContentHash string `json:"content_hash,omitempty"`

	RawEntries  int            `json:"raw_entries"`
	Entries     int            `json:"entries"`
	TopLevel    int            `json:"top_level"`
	SecondLevel int            `json:"second_level"`
	Kinds       map[string]int `json:"kinds"`
	Unresolved  int            `json:"unresolved_links"`

	Errors []string `json:"errors"`

	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

func (r *Report) setStatus(status Status, phase string) {
	r.Status = status
	r.Phase = phase
}

func (r *Report) fail(phase string, err error) {
	r.setStatus(StatusFailed, phase)
	r.Errors = append(r.Errors, err.Error())
	r.Duration = time.Since(r.StartedAt)
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
