package store_test

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	st "github.com/crewup/crewup-api/internal/store"
)

var _ = Describe("marketplace statistics", Ordered, func() {
	var (
		s      st.Store
		gormdb *gorm.DB
	)

	BeforeAll(func() {
		gormdb, s = openTestDB()
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM applications;")
		gormdb.Exec("DELETE FROM jobs;")
	})

	It("aggregates jobs by status and counts only non-withdrawn applications", func() {
		employerID := uuid.NewString()
		jobID := uuid.NewString()
		tx := gormdb.Exec(fmt.Sprintf(insertJobStm, jobID, employerID, "concrete crew", "active"))
		Expect(tx.Error).To(BeNil())
		tx = gormdb.Exec(fmt.Sprintf(insertJobStm, uuid.NewString(), employerID, "framing crew", "draft"))
		Expect(tx.Error).To(BeNil())

		tx = gormdb.Exec(fmt.Sprintf(insertApplicationStm, uuid.NewString(), jobID, uuid.NewString(), "pending"))
		Expect(tx.Error).To(BeNil())
		tx = gormdb.Exec(fmt.Sprintf(insertApplicationStm, uuid.NewString(), jobID, uuid.NewString(), "shortlisted"))
		Expect(tx.Error).To(BeNil())
		tx = gormdb.Exec(fmt.Sprintf(insertApplicationStm, uuid.NewString(), jobID, uuid.NewString(), "withdrawn"))
		Expect(tx.Error).To(BeNil())

		stats, err := s.Statistics(context.TODO())
		Expect(err).To(BeNil())
		Expect(stats.TotalJobs).To(Equal(int64(2)))
		Expect(stats.TotalApplications).To(Equal(int64(2)))
		Expect(stats.JobsByStatus["active"]).To(Equal(int64(1)))
		Expect(stats.JobsByStatus["draft"]).To(Equal(int64(1)))
	})

	It("returns zeroed aggregates on an empty database", func() {
		stats, err := s.Statistics(context.TODO())
		Expect(err).To(BeNil())
		Expect(stats.TotalJobs).To(BeZero())
		Expect(stats.TotalApplications).To(BeZero())
		Expect(stats.JobsByStatus).To(BeEmpty())
	})
})
