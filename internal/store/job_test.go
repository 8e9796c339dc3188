package store_test

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	api "github.com/crewup/crewup-api/api/v1"
	st "github.com/crewup/crewup-api/internal/store"
	"github.com/crewup/crewup-api/internal/store/model"
)

const (
	insertJobStm = "INSERT INTO jobs (id, created_at, updated_at, employer_id, job_type, title, description, pay_type, status, workers_needed, applications_count, views_count) " +
		"VALUES ('%s', '2026-01-02 10:00:00', '2026-01-02 10:00:00', '%s', 'standard', '%s', 'pour and finish', 'hourly', '%s', 1, 0, 0);"
	insertJobWithExpiryStm = "INSERT INTO jobs (id, created_at, updated_at, employer_id, job_type, title, description, pay_type, status, workers_needed, applications_count, views_count, expires_at) " +
		"VALUES ('%s', '2026-01-02 10:00:00', '2026-01-02 10:00:00', '%s', 'standard', '%s', 'pour and finish', 'hourly', '%s', 1, 0, 0, '%s');"
)

var _ = Describe("job store", Ordered, func() {
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

	Context("list", func() {
		It("successfully lists all the jobs -- without filter and options", func() {
			employerID := uuid.NewString()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, uuid.NewString(), employerID, "concrete crew", "active"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertJobStm, uuid.NewString(), employerID, "framing crew", "draft"))
			Expect(tx.Error).To(BeNil())

			jobs, err := s.Job().List(context.TODO(), st.NewJobQueryFilter(), st.NewJobQueryOptions())
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(2))
		})

		It("lists only the employer's jobs -- with employer filter", func() {
			employerID := uuid.NewString()
			otherEmployerID := uuid.NewString()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, uuid.NewString(), employerID, "concrete crew", "active"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertJobStm, uuid.NewString(), otherEmployerID, "framing crew", "active"))
			Expect(tx.Error).To(BeNil())

			jobs, err := s.Job().List(context.TODO(), st.NewJobQueryFilter().ByEmployerID(employerID), st.NewJobQueryOptions())
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(1))
			Expect(jobs[0].EmployerID.String()).To(Equal(employerID))
		})

		It("lists only active jobs -- with status filter", func() {
			employerID := uuid.NewString()
			activeID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, activeID, employerID, "concrete crew", "active"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertJobStm, uuid.NewString(), employerID, "framing crew", "draft"))
			Expect(tx.Error).To(BeNil())

			jobs, err := s.Job().List(context.TODO(), st.NewJobQueryFilter().ByStatus("active"), st.NewJobQueryOptions())
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(1))
			Expect(jobs[0].ID).To(Equal(activeID))
		})
	})

	Context("get", func() {
		It("successfully gets a job", func() {
			jobID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, jobID, uuid.NewString(), "concrete crew", "active"))
			Expect(tx.Error).To(BeNil())

			job, err := s.Job().Get(context.TODO(), jobID)
			Expect(err).To(BeNil())
			Expect(job.Title).To(Equal("concrete crew"))
			Expect(job.Status).To(Equal("active"))
		})

		It("returns ErrRecordNotFound -- job does not exist", func() {
			_, err := s.Job().Get(context.TODO(), uuid.New())
			Expect(err).To(MatchError(st.ErrRecordNotFound))
		})
	})

	Context("create", func() {
		It("successfully creates a job with a location", func() {
			job := model.Job{
				ID:            uuid.New(),
				EmployerID:    uuid.New(),
				JobType:       string(api.JobTypeStandard),
				Title:         "drywall finishers",
				Description:   "commercial build-out, 3 floors",
				PayType:       string(api.PayTypeHourly),
				Status:        string(api.JobStatusDraft),
				WorkersNeeded: 2,
			}
			job.SetLocation(&api.Coordinate{Latitude: 43.65, Longitude: -79.38})

			created, err := s.Job().Create(context.TODO(), job)
			Expect(err).To(BeNil())
			Expect(created.Location()).ToNot(BeNil())
			Expect(created.Location().Latitude).To(Equal(43.65))

			count := 0
			Expect(gormdb.Raw("SELECT COUNT(*) FROM jobs;").Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(1))
		})
	})

	Context("update status", func() {
		It("moves the job to active and stamps the deadline", func() {
			jobID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, jobID, uuid.NewString(), "concrete crew", "draft"))
			Expect(tx.Error).To(BeNil())

			expiresAt := time.Now().Add(30 * 24 * time.Hour).UTC()
			job, err := s.Job().UpdateStatus(context.TODO(), jobID, "active", &expiresAt)
			Expect(err).To(BeNil())
			Expect(job).ToNot(BeNil())

			stored, err := s.Job().Get(context.TODO(), jobID)
			Expect(err).To(BeNil())
			Expect(stored.Status).To(Equal("active"))
			Expect(stored.ExpiresAt).ToNot(BeNil())
		})

		It("returns ErrRecordNotFound -- job does not exist", func() {
			_, err := s.Job().UpdateStatus(context.TODO(), uuid.New(), "active", nil)
			Expect(err).To(MatchError(st.ErrRecordNotFound))
		})
	})

	Context("expire due", func() {
		It("expires only active jobs whose deadline passed", func() {
			employerID := uuid.NewString()
			now := time.Now().UTC()
			dueID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertJobWithExpiryStm, dueID, employerID, "due job", "active", now.Add(-time.Hour).Format("2006-01-02 15:04:05")))
			Expect(tx.Error).To(BeNil())
			freshID := uuid.New()
			tx = gormdb.Exec(fmt.Sprintf(insertJobWithExpiryStm, freshID, employerID, "fresh job", "active", now.Add(time.Hour).Format("2006-01-02 15:04:05")))
			Expect(tx.Error).To(BeNil())
			closedID := uuid.New()
			tx = gormdb.Exec(fmt.Sprintf(insertJobWithExpiryStm, closedID, employerID, "closed job", "closed", now.Add(-time.Hour).Format("2006-01-02 15:04:05")))
			Expect(tx.Error).To(BeNil())

			expired, err := s.Job().ExpireDue(context.TODO(), now)
			Expect(err).To(BeNil())
			Expect(expired).To(Equal(int64(1)))

			due, err := s.Job().Get(context.TODO(), dueID)
			Expect(err).To(BeNil())
			Expect(due.Status).To(Equal("expired"))

			fresh, err := s.Job().Get(context.TODO(), freshID)
			Expect(err).To(BeNil())
			Expect(fresh.Status).To(Equal("active"))

			closed, err := s.Job().Get(context.TODO(), closedID)
			Expect(err).To(BeNil())
			Expect(closed.Status).To(Equal("closed"))
		})
	})

	Context("counters", func() {
		It("increments the views counter", func() {
			jobID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, jobID, uuid.NewString(), "concrete crew", "active"))
			Expect(tx.Error).To(BeNil())

			Expect(s.Job().IncrementViews(context.TODO(), jobID)).To(BeNil())
			Expect(s.Job().IncrementViews(context.TODO(), jobID)).To(BeNil())

			job, err := s.Job().Get(context.TODO(), jobID)
			Expect(err).To(BeNil())
			Expect(job.ViewsCount).To(Equal(2))
		})

		It("never drives the applications counter below zero", func() {
			jobID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, jobID, uuid.NewString(), "concrete crew", "active"))
			Expect(tx.Error).To(BeNil())

			Expect(s.Job().AdjustApplicationsCount(context.TODO(), jobID, 1)).To(BeNil())
			Expect(s.Job().AdjustApplicationsCount(context.TODO(), jobID, -1)).To(BeNil())
			Expect(s.Job().AdjustApplicationsCount(context.TODO(), jobID, -1)).To(BeNil())

			job, err := s.Job().Get(context.TODO(), jobID)
			Expect(err).To(BeNil())
			Expect(job.ApplicationsCount).To(Equal(0))
		})
	})

	Context("delete", func() {
		It("successfully deletes a job", func() {
			jobID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, jobID, uuid.NewString(), "concrete crew", "draft"))
			Expect(tx.Error).To(BeNil())

			Expect(s.Job().Delete(context.TODO(), jobID)).To(BeNil())

			count := 0
			Expect(gormdb.Raw("SELECT COUNT(*) FROM jobs;").Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(0))
		})

		It("deleting a missing job is not an error", func() {
			Expect(s.Job().Delete(context.TODO(), uuid.New())).To(BeNil())
		})
	})
})
