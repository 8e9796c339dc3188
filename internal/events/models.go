package events

import "time"

// ApplicationCreatedEvent notifies the employer side that a worker applied
// to one of their postings.
type ApplicationCreatedEvent struct {
	ApplicationID string    `json:"application_id"`
	JobID         string    `json:"job_id"`
	JobTitle      string    `json:"job_title"`
	WorkerID      string    `json:"worker_id"`
	AppliedAt     time.Time `json:"applied_at"`
}

// ApplicationStatusEvent notifies the worker that an employer moved their
// application, or the employer that the worker withdrew.
type ApplicationStatusEvent struct {
	ApplicationID string `json:"application_id"`
	JobID         string `json:"job_id"`
	JobTitle      string `json:"job_title"`
	WorkerID      string `json:"worker_id"`
	FromStatus    string `json:"from_status"`
	ToStatus      string `json:"to_status"`
}

// JobExpiredEvent notifies the employer that a posting reached its deadline.
type JobExpiredEvent struct {
	JobID    string `json:"job_id"`
	JobTitle string `json:"job_title"`
}
