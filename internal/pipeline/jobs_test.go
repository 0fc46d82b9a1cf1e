package pipeline

import (
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/aws/smithy-go"
	"github.com/dgallion1/costcase/internal/outstore"
	"github.com/dgallion1/costcase/internal/report"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestContentHashHex_EmptyInput(t *testing.T) {
	h := ContentHashHex([]byte{})
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if h != want {
		t.Errorf("expected hash %q, got %q", want, h)
	}
}

func TestNewJob(t *testing.T) {
	job := NewJob("out/report.docx")
	if len(job.ID) != 26 {
		t.Errorf("expected 26-char ID, got %q", job.ID)
	}
	if job.Status != StatusQueued || job.Key != "out/report.docx" {
		t.Errorf("unexpected job %+v", job.Snapshot())
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := NewJob("r.docx")

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusComputing, "computing"},
		{StatusNarrating, "narrating"},
		{StatusRendering, "rendering"},
		{StatusStoring, "storing"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
}

func TestJob_AddError(t *testing.T) {
	job := NewJob("r.docx")
	job.AddError("storing: timeout")
	job.AddError("storing: timeout again")

	snap := job.Snapshot()
	if len(snap.Progress.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Progress.Errors))
	}
	if snap.Progress.Errors[0] != "storing: timeout" {
		t.Errorf("expected first error %q, got %q", "storing: timeout", snap.Progress.Errors[0])
	}

	// The snapshot is a copy.
	snap.Progress.Errors[0] = "changed"
	if job.Snapshot().Progress.Errors[0] != "storing: timeout" {
		t.Error("expected snapshot errors to be detached from the job")
	}
}

func TestJob_SnapshotErrorsNotNil(t *testing.T) {
	snap := NewJob("r.docx").Snapshot()
	if snap.Progress.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
}

func TestJob_StatsAndStored(t *testing.T) {
	job := NewJob("r.docx")
	job.SetStats(report.Stats{Headings: 30, Paragraphs: 90, Formulas: 40, Tables: 28, Charts: 3})
	job.IncrAttempts()
	job.IncrAttempts()
	job.SetStored(outstore.Info{Key: "reports/r.docx", Size: 1234, ETag: "abc"})

	snap := job.Snapshot()
	if snap.Progress.Tables != 28 || snap.Progress.Charts != 3 || snap.Progress.Headings != 30 {
		t.Errorf("unexpected progress %+v", snap.Progress)
	}
	if snap.Progress.Attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", snap.Progress.Attempts)
	}
	if snap.Key != "reports/r.docx" || snap.Size != 1234 || snap.ETag != "abc" {
		t.Errorf("unexpected stored fields %+v", snap)
	}
}

func TestGenerateULID_Ordered(t *testing.T) {
	prev := generateULID()
	for range 100 {
		id := generateULID()
		if len(id) != 26 {
			t.Fatalf("expected 26 chars, got %q", id)
		}
		if strings.Trim(id, crockford) != "" {
			t.Fatalf("unexpected character in %q", id)
		}
		if id <= prev {
			t.Fatalf("expected %q after %q", id, prev)
		}
		prev = id
	}
}

func TestEncodeULID(t *testing.T) {
	var zero [16]byte
	if got := encodeULID(zero); got != strings.Repeat("0", 26) {
		t.Errorf("expected all zeros, got %q", got)
	}
	var ones [16]byte
	for i := range ones {
		ones[i] = 0xff
	}
	if got := encodeULID(ones); got != "7"+strings.Repeat("Z", 25) {
		t.Errorf("expected 7ZZZ..., got %q", got)
	}
	var one [16]byte
	one[15] = 1
	if got := encodeULID(one); got != strings.Repeat("0", 25)+"1" {
		t.Errorf("expected trailing 1, got %q", got)
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("boom"), false},
		{"server fault", &smithy.GenericAPIError{Code: "InternalError", Fault: smithy.FaultServer}, true},
		{"client fault", &smithy.GenericAPIError{Code: "AccessDenied", Fault: smithy.FaultClient}, false},
		{"wrapped server fault", errors.Join(errors.New("put"), &smithy.GenericAPIError{Code: "SlowDown", Fault: smithy.FaultServer}), true},
		{"timeout", timeoutErr{}, true},
		{"not found", outstore.ErrNotFound, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestBackoff(t *testing.T) {
	for attempt, base := range []time.Duration{time.Second, 2 * time.Second, 4 * time.Second} {
		d := Backoff(attempt)
		if d < base || d >= base+base/2 {
			t.Errorf("attempt %d: expected [%v, %v), got %v", attempt, base, base+base/2, d)
		}
	}
	if d := Backoff(10); d < 30*time.Second || d >= 45*time.Second {
		t.Errorf("expected capped backoff, got %v", d)
	}
}
