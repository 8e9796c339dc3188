package lifecycle

import (
	"time"

	api "github.com/crewup/crewup-api/api/v1"
	"github.com/crewup/crewup-api/internal/store/model"
)

// Role identifies which side of the marketplace is requesting a transition.
type Role string

const (
	RoleWorker   Role = "worker"
	RoleEmployer Role = "employer"
)

// employerTransitions maps the current application status to the set of
// statuses an employer may move it to.
var employerTransitions = map[api.ApplicationStatus][]api.ApplicationStatus{
	api.ApplicationStatusPending:     {api.ApplicationStatusViewed, api.ApplicationStatusAccepted, api.ApplicationStatusRejected},
	api.ApplicationStatusViewed:      {api.ApplicationStatusShortlisted, api.ApplicationStatusAccepted, api.ApplicationStatusRejected},
	api.ApplicationStatusShortlisted: {api.ApplicationStatusAccepted, api.ApplicationStatusRejected},
}

// workerTransitions is the worker-side table. Workers may only withdraw, and
// only before a terminal decision.
var workerTransitions = map[api.ApplicationStatus][]api.ApplicationStatus{
	api.ApplicationStatusPending:     {api.ApplicationStatusWithdrawn},
	api.ApplicationStatusViewed:      {api.ApplicationStatusWithdrawn},
	api.ApplicationStatusShortlisted: {api.ApplicationStatusWithdrawn},
}

// TransitionApplication validates and applies a status transition requested
// by the given role. Every successful transition stamps StatusUpdatedAt; the
// first transition away from pending also stamps ViewedAt.
func TransitionApplication(app *model.Application, to api.ApplicationStatus, role Role, now time.Time) error {
	from := api.ApplicationStatus(app.Status)

	table := employerTransitions
	if role == RoleWorker {
		table = workerTransitions
	}

	if !transitionAllowed(table, from, to) {
		// Distinguish a transition nobody may make from one the other
		// role could have made.
		other := employerTransitions
		if role == RoleEmployer {
			other = workerTransitions
		}
		if transitionAllowed(other, from, to) {
			return NewErrUnauthorizedTransition(role, string(to))
		}
		return NewErrInvalidTransition(string(from), string(to))
	}

	if from == api.ApplicationStatusPending && app.ViewedAt == nil {
		viewedAt := now
		app.ViewedAt = &viewedAt
	}

	statusUpdatedAt := now
	app.Status = string(to)
	app.StatusUpdatedAt = &statusUpdatedAt
	return nil
}

// ApplicationIsTerminal reports whether no further transitions are possible.
func ApplicationIsTerminal(app *model.Application) bool {
	switch api.ApplicationStatus(app.Status) {
	case api.ApplicationStatusAccepted, api.ApplicationStatusRejected, api.ApplicationStatusWithdrawn:
		return true
	}
	return false
}

func transitionAllowed(table map[api.ApplicationStatus][]api.ApplicationStatus, from, to api.ApplicationStatus) bool {
	for _, allowed := range table[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
