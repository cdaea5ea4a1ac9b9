package jobs

import (
	"context"
	"time"
)

// JobType represents the type of job to be executed.
type JobType string

const (
	// JobTypeSyncMailbox represents a mailbox sync job.
	JobTypeSyncMailbox JobType = "sync_mailbox"
)

// JobStatus represents the current status of a job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusRetrying  JobStatus = "retrying"
)

// SyncMailboxJob asks a worker to run one email-to-transaction sync for a
// user. Stored/Duplicates/Rejected are filled in after the run completes.
type SyncMailboxJob struct {
	JobID  string `json:"job_id"`
	UserID string `json:"user_id"`

	LookbackDays int `json:"lookback_days,omitempty"`
	MaxMessages  int `json:"max_messages,omitempty"`

	Status    JobStatus `json:"status"`
	CreatedAt time.Time `json:"created_at"`

	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Error contains error details if the job failed.
	Error string `json:"error,omitempty"`

	// Unauthorized marks a failure that needs the user to reconnect their
	// mailbox; retrying is pointless until they do.
	Unauthorized bool `json:"unauthorized,omitempty"`

	Stored     int `json:"stored,omitempty"`
	Duplicates int `json:"duplicates,omitempty"`
	Rejected   int `json:"rejected,omitempty"`

	RetryCount int `json:"retry_count"`
	MaxRetries int `json:"max_retries"`
}

// Job is a generic interface for all job types.
type Job interface {
	GetID() string
	GetType() JobType
	GetStatus() JobStatus
}

// GetID implements the Job interface.
func (j *SyncMailboxJob) GetID() string {
	return j.JobID
}

// GetType implements the Job interface.
func (j *SyncMailboxJob) GetType() JobType {
	return JobTypeSyncMailbox
}

// GetStatus implements the Job interface.
func (j *SyncMailboxJob) GetStatus() JobStatus {
	return j.Status
}

// Publisher defines the interface for publishing jobs to a queue.
// This abstraction allows for different queue implementations.
type Publisher interface {
	// PublishSyncMailbox publishes a mailbox sync job.
	PublishSyncMailbox(ctx context.Context, job *SyncMailboxJob) error

	// Close closes the publisher and releases resources.
	Close() error
}

// Consumer defines the interface for consuming jobs from a queue.
type Consumer interface {
	// Start begins consuming jobs from the queue.
	// The handler function is called for each job received.
	Start(ctx context.Context, handler JobHandler) error

	// Stop stops consuming jobs and waits for in-flight jobs to complete.
	Stop(ctx context.Context) error
}

// JobHandler is a function that processes a job.
// It should return an error if the job failed and should be retried.
type JobHandler func(ctx context.Context, job Job) error

// JobStore defines the interface for storing and retrieving job status.
type JobStore interface {
	// SaveJob saves or updates a job's state.
	SaveJob(ctx context.Context, job *SyncMailboxJob) error

	// GetJob retrieves a job by ID.
	GetJob(ctx context.Context, jobID string) (*SyncMailboxJob, error)

	// ListJobs retrieves jobs with optional filtering.
	ListJobs(ctx context.Context, filter JobFilter) ([]*SyncMailboxJob, error)
}

// JobFilter defines filtering criteria for listing jobs.
type JobFilter struct {
	UserID string
	Status JobStatus
	Limit  int
}
