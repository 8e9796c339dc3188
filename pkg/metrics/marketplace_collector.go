package metrics

import (
	"context"
	"fmt"

	"github.com/crewup/crewup-api/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// marketplaceStatsCollector scrapes marketplace-wide counts from the store
// on every prometheus collection cycle.
type marketplaceStatsCollector struct {
	store             store.Store
	totalJobs         *prometheus.Desc
	totalApplications *prometheus.Desc
	jobsByStatus      *prometheus.Desc
}

func NewMarketplaceStatsCollector(s store.Store) prometheus.Collector {
	fqName := func(name string) string {
		return fmt.Sprintf("%s_marketplace_%s", crewup, name)
	}

	return &marketplaceStatsCollector{
		store: s,
		totalJobs: prometheus.NewDesc(
			fqName("jobs_total"),
			"Total number of job postings.",
			nil,
			prometheus.Labels{},
		),
		totalApplications: prometheus.NewDesc(
			fqName("applications_total"),
			"Total number of non-withdrawn applications.",
			nil,
			prometheus.Labels{},
		),
		jobsByStatus: prometheus.NewDesc(
			fqName("jobs_by_status_total"),
			"Total job postings by status",
			[]string{"status"},
			prometheus.Labels{},
		),
	}
}

func (c *marketplaceStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalJobs
	ch <- c.totalApplications
	ch <- c.jobsByStatus
}

// Collect implements Collector.
func (c *marketplaceStatsCollector) Collect(ch chan<- prometheus.Metric) {
	stats, err := c.store.Statistics(context.Background())
	if err != nil {
		zap.S().Named("marketplace_collector").Errorf("failed to collect marketplace statistics: %s", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.totalJobs, prometheus.GaugeValue, float64(stats.TotalJobs))
	ch <- prometheus.MustNewConstMetric(c.totalApplications, prometheus.GaugeValue, float64(stats.TotalApplications))

	for status, total := range stats.JobsByStatus {
		ch <- prometheus.MustNewConstMetric(c.jobsByStatus, prometheus.GaugeValue, float64(total), status)
	}
}
