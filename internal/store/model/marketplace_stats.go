package model

// MarketplaceStats is the aggregate view scraped by the prometheus collector.
type MarketplaceStats struct {
	TotalJobs         int64
	TotalApplications int64
	JobsByStatus      map[string]int64
}

func NewMarketplaceStats(jobs JobList, nonWithdrawnApplications int64) MarketplaceStats {
	stats := MarketplaceStats{
		TotalJobs:         int64(len(jobs)),
		TotalApplications: nonWithdrawnApplications,
		JobsByStatus:      make(map[string]int64),
	}
	for _, j := range jobs {
		stats.JobsByStatus[j.Status]++
	}
	return stats
}
