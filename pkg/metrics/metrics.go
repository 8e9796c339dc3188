package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	crewup = "crewup"

	// Job metrics
	jobsPublishedTotal = "jobs_published_total"

	// Application metrics
	applicationsCreatedTotal   = "applications_created_total"
	applicationsWithdrawnTotal = "applications_withdrawn_total"

	// Labels
	jobTypeLabel = "job_type"
)

var jobsPublishedTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: crewup,
		Name:      jobsPublishedTotal,
		Help:      "number of job postings published",
	},
	[]string{jobTypeLabel},
)

var applicationsCreatedTotalMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: crewup,
		Name:      applicationsCreatedTotal,
		Help:      "number of applications created by workers",
	},
)

var applicationsWithdrawnTotalMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: crewup,
		Name:      applicationsWithdrawnTotal,
		Help:      "number of applications withdrawn by workers",
	},
)

func IncreaseJobsPublishedTotalMetric(jobType string) {
	jobsPublishedTotalMetric.With(prometheus.Labels{jobTypeLabel: jobType}).Inc()
}

func IncreaseApplicationsCreatedTotalMetric() {
	applicationsCreatedTotalMetric.Inc()
}

func IncreaseApplicationsWithdrawnTotalMetric() {
	applicationsWithdrawnTotalMetric.Inc()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(jobsPublishedTotalMetric)
	prometheus.MustRegister(applicationsCreatedTotalMetric)
	prometheus.MustRegister(applicationsWithdrawnTotalMetric)
}
