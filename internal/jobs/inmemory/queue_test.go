package inmemory

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/trackmint/mailledger/internal/jobs"
	"github.com/trackmint/mailledger/internal/mail"
)

func waitForStatus(t *testing.T, store *Store, jobID string, want jobs.JobStatus) *jobs.SyncMailboxJob {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		job, err := store.GetJob(context.Background(), jobID)
		if err == nil && job.Status == want {
			return job
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("job %s never reached status %s", jobID, want)
	return nil
}

func TestQueue_ProcessesJob(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := NewStore()
	queue := NewQueue(4, store)
	defer queue.Close()

	done := make(chan string, 1)
	handler := func(ctx context.Context, job jobs.Job) error {
		done <- job.GetID()
		return nil
	}
	if err := queue.Start(ctx, handler); err != nil {
		t.Fatal(err)
	}

	job := &jobs.SyncMailboxJob{UserID: "user1"}
	if err := queue.PublishSyncMailbox(ctx, job); err != nil {
		t.Fatal(err)
	}

	select {
	case id := <-done:
		if id != job.JobID {
			t.Errorf("handled job %s, want %s", id, job.JobID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("handler never ran")
	}

	saved := waitForStatus(t, store, job.JobID, jobs.JobStatusCompleted)
	if saved.Error != "" {
		t.Errorf("completed job carries error %q", saved.Error)
	}
}

func TestQueue_UnauthorizedNotRetried(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := NewStore()
	queue := NewQueue(4, store)
	defer queue.Close()

	var calls atomic.Int32
	handler := func(ctx context.Context, job jobs.Job) error {
		calls.Add(1)
		return fmt.Errorf("sync: %w", mail.ErrUnauthorized)
	}
	if err := queue.Start(ctx, handler); err != nil {
		t.Fatal(err)
	}

	job := &jobs.SyncMailboxJob{UserID: "user1", MaxRetries: 3}
	if err := queue.PublishSyncMailbox(ctx, job); err != nil {
		t.Fatal(err)
	}

	saved := waitForStatus(t, store, job.JobID, jobs.JobStatusFailed)
	if !saved.Unauthorized {
		t.Error("job should be marked unauthorized")
	}
	if saved.RetryCount != 0 {
		t.Errorf("unauthorized job was retried %d times", saved.RetryCount)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("handler called %d times, want 1", n)
	}
}

func TestQueue_PublishRequiresUser(t *testing.T) {
	queue := NewQueue(1, NewStore())
	defer queue.Close()

	if err := queue.PublishSyncMailbox(context.Background(), &jobs.SyncMailboxJob{}); err == nil {
		t.Fatal("expected error for job without user id")
	}
}
