package service_test

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	api "github.com/crewup/crewup-api/api/v1"
	"github.com/crewup/crewup-api/internal/service"
	"github.com/crewup/crewup-api/internal/store"
)

const (
	insertJobStm = "INSERT INTO jobs (id, created_at, updated_at, employer_id, job_type, title, description, pay_type, status, workers_needed, applications_count, views_count) " +
		"VALUES ('%s', '2026-01-02 10:00:00', '2026-01-02 10:00:00', '%s', 'standard', '%s', 'pour and finish', 'hourly', '%s', 1, 0, 0);"
	insertJobWithExpiryStm = "INSERT INTO jobs (id, created_at, updated_at, employer_id, job_type, title, description, pay_type, status, workers_needed, applications_count, views_count, expires_at) " +
		"VALUES ('%s', '2026-01-02 10:00:00', '2026-01-02 10:00:00', '%s', 'standard', '%s', 'pour and finish', 'hourly', '%s', 1, 0, 0, '%s');"
	insertJobWithTradeStm = "INSERT INTO jobs (id, created_at, updated_at, employer_id, title, description, pay_type, status, required_trade, job_type, workers_needed, applications_count, views_count) " +
		"VALUES ('%s', '2026-01-02 10:00:00', '2026-01-02 10:00:00', '%s', '%s', 'pour and finish', 'hourly', '%s', '%s', '%s', 1, 0, 0);"
	insertApplicationStm = "INSERT INTO applications (id, job_id, worker_id, status, is_priority, applied_at) " +
		"VALUES ('%s', '%s', '%s', '%s', false, '2026-01-02 10:00:00');"
)

func floatPtr(f float64) *float64 { return &f }

var _ = Describe("job service", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
		srv    *service.JobService
	)

	BeforeAll(func() {
		gormdb, s = openTestDB()
		srv = service.NewJobService(s, nil)
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM applications;")
		gormdb.Exec("DELETE FROM jobs;")
	})

	Context("create", func() {
		It("successfully creates a draft job", func() {
			employerID := uuid.New()
			job, err := srv.CreateJob(context.TODO(), employerID, &api.CreateJobRequest{
				JobType:       api.JobTypeStandard,
				Title:         "concrete finishers",
				Description:   "three week pour on a commercial site",
				PayType:       api.PayTypeHourly,
				PayRateMin:    floatPtr(30),
				PayRateMax:    floatPtr(42),
				WorkersNeeded: 3,
			})
			Expect(err).To(BeNil())
			Expect(job.Status).To(Equal("draft"))
			Expect(job.EmployerID).To(Equal(employerID))
			Expect(job.ExpiresAt).To(BeNil())
		})

		It("rejects an inverted hourly pay range", func() {
			_, err := srv.CreateJob(context.TODO(), uuid.New(), &api.CreateJobRequest{
				JobType:       api.JobTypeStandard,
				Title:         "concrete finishers",
				Description:   "three week pour on a commercial site",
				PayType:       api.PayTypeHourly,
				PayRateMin:    floatPtr(50),
				PayRateMax:    floatPtr(42),
				WorkersNeeded: 3,
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrJobValidation{}))
		})

		It("rejects a salary job without an amount", func() {
			_, err := srv.CreateJob(context.TODO(), uuid.New(), &api.CreateJobRequest{
				JobType:       api.JobTypeStandard,
				Title:         "site superintendent",
				Description:   "year round position, large residential builds",
				PayType:       api.PayTypeSalary,
				WorkersNeeded: 1,
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrJobValidation{}))
		})
	})

	Context("publish", func() {
		It("moves a draft to active and stamps a 30 day deadline", func() {
			employerID := uuid.New()
			jobID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, jobID, employerID, "concrete crew", "draft"))
			Expect(tx.Error).To(BeNil())

			before := time.Now().UTC()
			job, err := srv.PublishJob(context.TODO(), jobID, employerID)
			Expect(err).To(BeNil())
			Expect(job.Status).To(Equal("active"))
			Expect(job.ExpiresAt).ToNot(BeNil())
			Expect(job.ExpiresAt.Sub(before)).To(BeNumerically("~", 30*24*time.Hour, time.Minute))
		})

		It("refuses to publish a closed job", func() {
			employerID := uuid.New()
			jobID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, jobID, employerID, "concrete crew", "closed"))
			Expect(tx.Error).To(BeNil())

			_, err := srv.PublishJob(context.TODO(), jobID, employerID)
			Expect(err).ToNot(BeNil())
		})

		It("refuses to publish another employer's job", func() {
			jobID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, jobID, uuid.New(), "concrete crew", "draft"))
			Expect(tx.Error).To(BeNil())

			_, err := srv.PublishJob(context.TODO(), jobID, uuid.New())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrNotJobOwner{}))
		})
	})

	Context("get", func() {
		It("lazily expires an active job past its deadline", func() {
			jobID := uuid.New()
			past := time.Now().UTC().Add(-time.Hour).Format("2006-01-02 15:04:05")
			tx := gormdb.Exec(fmt.Sprintf(insertJobWithExpiryStm, jobID, uuid.New(), "stale posting", "active", past))
			Expect(tx.Error).To(BeNil())

			job, err := srv.GetJob(context.TODO(), jobID)
			Expect(err).To(BeNil())
			Expect(job.Status).To(Equal("expired"))

			stored := ""
			Expect(gormdb.Raw("SELECT status FROM jobs WHERE id = ?;", jobID).Scan(&stored).Error).To(BeNil())
			Expect(stored).To(Equal("expired"))
		})

		It("returns ErrResourceNotFound -- job does not exist", func() {
			_, err := srv.GetJob(context.TODO(), uuid.New())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})

	Context("search", func() {
		It("matches active jobs by title and description text", func() {
			employerID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, uuid.New(), employerID, "Concrete finishers wanted", "active"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertJobStm, uuid.New(), employerID, "Framing crew", "active"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertJobStm, uuid.New(), employerID, "concrete pumpers", "draft"))
			Expect(tx.Error).To(BeNil())

			jobs, err := srv.SearchJobs(context.TODO(), service.JobSearchParams{Query: "CONCRETE"})
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(1))
			Expect(jobs[0].Title).To(Equal("Concrete finishers wanted"))
		})

		It("narrows by required trade and job type", func() {
			employerID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertJobWithTradeStm, uuid.New(), employerID, "forms and pours", "active", "concrete", "standard"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertJobWithTradeStm, uuid.New(), employerID, "stud walls", "active", "carpentry", "standard"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertJobWithTradeStm, uuid.New(), employerID, "demo day", "active", "concrete", "day_labor"))
			Expect(tx.Error).To(BeNil())

			trade := "concrete"
			jobs, err := srv.SearchJobs(context.TODO(), service.JobSearchParams{Trade: &trade})
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(2))

			dayLabor := api.JobTypeDayLabor
			jobs, err = srv.SearchJobs(context.TODO(), service.JobSearchParams{Trade: &trade, JobType: &dayLabor})
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(1))
			Expect(jobs[0].Title).To(Equal("demo day"))
		})
	})

	Context("delete", func() {
		It("deletes a draft unconditionally", func() {
			employerID := uuid.New()
			jobID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, jobID, employerID, "concrete crew", "draft"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertApplicationStm, uuid.New(), jobID, uuid.New(), "pending"))
			Expect(tx.Error).To(BeNil())

			Expect(srv.DeleteJob(context.TODO(), jobID, employerID)).To(BeNil())
		})

		It("blocks deleting an active job with applications on file", func() {
			employerID := uuid.New()
			jobID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, jobID, employerID, "concrete crew", "active"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertApplicationStm, uuid.New(), jobID, uuid.New(), "pending"))
			Expect(tx.Error).To(BeNil())

			err := srv.DeleteJob(context.TODO(), jobID, employerID)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrJobConflict{}))
		})

		It("deletes an active job once every application is withdrawn", func() {
			employerID := uuid.New()
			jobID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, jobID, employerID, "concrete crew", "active"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertApplicationStm, uuid.New(), jobID, uuid.New(), "withdrawn"))
			Expect(tx.Error).To(BeNil())

			Expect(srv.DeleteJob(context.TODO(), jobID, employerID)).To(BeNil())
		})
	})

	Context("expire due jobs", func() {
		It("expires every active job past its deadline", func() {
			employerID := uuid.New()
			past := time.Now().UTC().Add(-time.Hour).Format("2006-01-02 15:04:05")
			future := time.Now().UTC().Add(time.Hour).Format("2006-01-02 15:04:05")
			tx := gormdb.Exec(fmt.Sprintf(insertJobWithExpiryStm, uuid.New(), employerID, "stale one", "active", past))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertJobWithExpiryStm, uuid.New(), employerID, "stale two", "active", past))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertJobWithExpiryStm, uuid.New(), employerID, "fresh", "active", future))
			Expect(tx.Error).To(BeNil())

			expired, err := srv.ExpireDueJobs(context.TODO())
			Expect(err).To(BeNil())
			Expect(expired).To(Equal(int64(2)))
		})
	})
})
