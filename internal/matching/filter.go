package matching

import (
	"strings"

	api "github.com/crewup/crewup-api/api/v1"
	"github.com/crewup/crewup-api/internal/store/model"
)

// Filter produces the visible set of job postings for a search. Only active
// postings are eligible, the text query matches title or description
// case-insensitively, and the geo bound applies only when both an origin and
// a radius are given. Postings without coordinates pass the geo filter
// unconditionally. Input order is preserved.
func Filter(jobs model.JobList, query string, origin *api.Coordinate, radiusKm *float64) model.JobList {
	filtered := make(model.JobList, 0, len(jobs))
	needle := strings.ToLower(strings.TrimSpace(query))

	for _, job := range jobs {
		if job.Status != string(api.JobStatusActive) {
			continue
		}
		if !matchesText(&job, needle) {
			continue
		}
		if !withinRadius(&job, origin, radiusKm) {
			continue
		}
		filtered = append(filtered, job)
	}

	return filtered
}

func matchesText(job *model.Job, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(job.Title), needle) ||
		strings.Contains(strings.ToLower(job.Description), needle)
}

func withinRadius(job *model.Job, origin *api.Coordinate, radiusKm *float64) bool {
	if origin == nil || radiusKm == nil {
		return true
	}

	location := job.Location()
	if location == nil {
		// Postings without coordinates are not penalized.
		return true
	}

	return DistanceKm(*origin, *location) <= *radiusKm
}
