// Package jobs holds the request-scoped job model and the pluggable stores
// that track async jobs.
package jobs

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is a job lifecycle state. pending → processing → {success | error};
// success and error are terminal.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

// CanTransition reports whether moving from s to next is a legal step of the
// lifecycle. Validation failures may jump pending → error directly.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusProcessing || next == StatusError
	case StatusProcessing:
		return next == StatusSuccess || next == StatusError
	default:
		return false
	}
}

// Job tracks one title-composition request. All fields besides Status are
// written by the orchestrator only; terminal error jobs always carry a
// non-empty Error message.
type Job struct {
	ID        string         `json:"id"`
	Status    Status         `json:"status"`
	OutputURL string         `json:"url,omitempty"`
	Error     string         `json:"error,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Warnings  []string       `json:"warnings,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// New creates a pending job. A blank id gets a generated one.
func New(id string) *Job {
	id = strings.TrimSpace(id)
	if id == "" {
		id = "title_" + uuid.NewString()
	}
	now := time.Now().UTC()
	return &Job{
		ID:        id,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Transition moves the job to next if legal and stamps UpdatedAt.
func (j *Job) Transition(next Status) bool {
	if !j.Status.CanTransition(next) {
		return false
	}
	j.Status = next
	j.UpdatedAt = time.Now().UTC()
	return true
}

// AddWarning attaches a soft, non-fatal condition to the job.
func (j *Job) AddWarning(msg string) {
	j.Warnings = append(j.Warnings, msg)
}

// SetMetadata records a probed metadata field on the job.
func (j *Job) SetMetadata(key string, value any) {
	if j.Metadata == nil {
		j.Metadata = make(map[string]any)
	}
	j.Metadata[key] = value
}
