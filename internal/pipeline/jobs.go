package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/dgallion1/costcase/internal/outstore"
	"github.com/dgallion1/costcase/internal/report"
)

// JobStatus represents the state of a report generation job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusComputing JobStatus = "computing"
	StatusNarrating JobStatus = "narrating"
	StatusRendering JobStatus = "rendering"
	StatusStoring   JobStatus = "storing"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// Job tracks one computation of the case study through to a stored report.
type Job struct {
	mu sync.Mutex

	ID  string `json:"job_id"`
	Key string `json:"key"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	Progress Progress `json:"progress"`

	ContentHash string    `json:"content_hash,omitempty"`
	ETag        string    `json:"etag,omitempty"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	errors []string
}

// Progress counts what the report writer produced and how many store
// attempts were made.
type Progress struct {
	Headings   int      `json:"headings"`
	Paragraphs int      `json:"paragraphs"`
	Formulas   int      `json:"formulas"`
	Tables     int      `json:"tables"`
	Charts     int      `json:"charts"`
	Attempts   int      `json:"store_attempts"`
	Errors     []string `json:"errors"`
}

// NewJob returns a queued job that will store its report under key.
func NewJob(key string) *Job {
	now := time.Now()
	return &Job{
		ID:        generateULID(),
		Key:       key,
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetStats copies the report writer's counters.
func (j *Job) SetStats(s report.Stats) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Headings = s.Headings
	j.Progress.Paragraphs = s.Paragraphs
	j.Progress.Formulas = s.Formulas
	j.Progress.Tables = s.Tables
	j.Progress.Charts = s.Charts
	j.UpdatedAt = time.Now()
}

// IncrAttempts counts one store attempt.
func (j *Job) IncrAttempts() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Attempts++
	j.UpdatedAt = time.Now()
}

// SetStored records where the report ended up.
func (j *Job) SetStored(info outstore.Info) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Key = info.Key
	j.ETag = info.ETag
	j.Size = info.Size
	j.UpdatedAt = time.Now()
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string    `json:"job_id"`
	Key         string    `json:"key"`
	Status      JobStatus `json:"status"`
	Phase       string    `json:"phase"`
	Progress    Progress  `json:"progress"`
	ContentHash string    `json:"content_hash,omitempty"`
	ETag        string    `json:"etag,omitempty"`
	Size        int64     `json:"size"`
	Elapsed     string    `json:"elapsed"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	p := j.Progress
	p.Errors = append([]string{}, j.errors...)
	return JobSnapshot{
		ID:          j.ID,
		Key:         j.Key,
		Status:      j.Status,
		Phase:       j.Phase,
		Progress:    p,
		ContentHash: j.ContentHash,
		ETag:        j.ETag,
		Size:        j.Size,
		Elapsed:     j.UpdatedAt.Sub(j.CreatedAt).Round(time.Millisecond).String(),
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
