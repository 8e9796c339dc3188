// Package lifecycle implements the state machines governing job postings and
// applications. The functions validate a requested transition against the
// entity's current state and apply the transition's side effects in place;
// persistence is the caller's concern.
package lifecycle

import (
	"time"

	api "github.com/crewup/crewup-api/api/v1"
	"github.com/crewup/crewup-api/internal/store/model"
)

// ActiveJobTTL is how long a published posting stays active before expiry.
const ActiveJobTTL = 30 * 24 * time.Hour

// PublishJob moves a draft posting to active and stamps its expiry.
func PublishJob(job *model.Job, now time.Time) error {
	if job.Status != string(api.JobStatusDraft) {
		return NewErrInvalidTransition(job.Status, string(api.JobStatusActive))
	}

	expiresAt := now.Add(ActiveJobTTL)
	job.Status = string(api.JobStatusActive)
	job.ExpiresAt = &expiresAt
	return nil
}

// CloseJob moves an active posting to closed.
func CloseJob(job *model.Job) error {
	if job.Status != string(api.JobStatusActive) {
		return NewErrInvalidTransition(job.Status, string(api.JobStatusClosed))
	}
	job.Status = string(api.JobStatusClosed)
	return nil
}

// FillJob moves an active posting to filled.
func FillJob(job *model.Job) error {
	if job.Status != string(api.JobStatusActive) {
		return NewErrInvalidTransition(job.Status, string(api.JobStatusFilled))
	}
	job.Status = string(api.JobStatusFilled)
	return nil
}

// ExpireJob moves an active posting to expired. The engine does not schedule
// time itself; the sweep or a lazy read decides when to invoke this.
func ExpireJob(job *model.Job) error {
	if job.Status != string(api.JobStatusActive) {
		return NewErrInvalidTransition(job.Status, string(api.JobStatusExpired))
	}
	job.Status = string(api.JobStatusExpired)
	return nil
}

// JobIsExpired reports whether an active posting has outlived its expiry.
func JobIsExpired(job *model.Job, now time.Time) bool {
	return job.Status == string(api.JobStatusActive) &&
		job.ExpiresAt != nil &&
		!now.Before(*job.ExpiresAt)
}

// JobDeletableUnconditionally reports whether the posting may be removed
// regardless of referencing applications. Only drafts qualify; any other
// state requires the caller to check for non-withdrawn applications first.
func JobDeletableUnconditionally(job *model.Job) bool {
	return job.Status == string(api.JobStatusDraft)
}

// JobAcceptsApplications reports whether workers may apply to the posting.
func JobAcceptsApplications(job *model.Job) bool {
	return job.Status == string(api.JobStatusActive)
}
