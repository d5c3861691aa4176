package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// JobStatus enumerates scheduled job states.
// PENDING → RUNNING → {DONE, FAILED}; CANCELLED is reachable from PENDING only.
type JobStatus string

const (
	JobStatusPending   JobStatus = "PENDING"
	JobStatusRunning   JobStatus = "RUNNING"
	JobStatusDone      JobStatus = "DONE"
	JobStatusFailed    JobStatus = "FAILED"
	JobStatusCancelled JobStatus = "CANCELLED"
)

// TaskEndQuizSession is the task type that force-closes a timed quiz
// session at its deadline.
const TaskEndQuizSession = "END_QUIZ_SESSION"

// ScheduledJob is a durable, time-triggered unit of work. Jobs are
// persisted so they survive process restarts; the claim columns record
// which poll cycle took ownership of the execution.
type ScheduledJob struct {
	ID         uuid.UUID       `json:"id"`
	TaskType   string          `json:"task_type"`
	Payload    json.RawMessage `json:"payload"`
	RunAt      time.Time       `json:"run_at"`
	Status     JobStatus       `json:"status"`
	ClaimedAt  *time.Time      `json:"claimed_at,omitempty"`
	FinishedAt *time.Time      `json:"finished_at,omitempty"`
	LastError  *string         `json:"last_error,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// EndQuizSessionPayload is the payload schema for TaskEndQuizSession jobs.
type EndQuizSessionPayload struct {
	SessionID uuid.UUID `json:"session_id"`
}
