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

const insertApplicationStm = "INSERT INTO applications (id, job_id, worker_id, status, is_priority, applied_at) " +
	"VALUES ('%s', '%s', '%s', '%s', false, '2026-01-02 10:00:00');"

var _ = Describe("application store", Ordered, func() {
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
		It("lists the applications of a job", func() {
			jobID := uuid.NewString()
			tx := gormdb.Exec(fmt.Sprintf(insertApplicationStm, uuid.NewString(), jobID, uuid.NewString(), "pending"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertApplicationStm, uuid.NewString(), jobID, uuid.NewString(), "shortlisted"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertApplicationStm, uuid.NewString(), uuid.NewString(), uuid.NewString(), "pending"))
			Expect(tx.Error).To(BeNil())

			applications, err := s.Application().List(context.TODO(), st.NewApplicationQueryFilter().ByJobID(jobID), st.NewApplicationQueryOptions())
			Expect(err).To(BeNil())
			Expect(applications).To(HaveLen(2))
		})

		It("lists the applications of a worker -- excluding withdrawn", func() {
			workerID := uuid.NewString()
			tx := gormdb.Exec(fmt.Sprintf(insertApplicationStm, uuid.NewString(), uuid.NewString(), workerID, "pending"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertApplicationStm, uuid.NewString(), uuid.NewString(), workerID, "withdrawn"))
			Expect(tx.Error).To(BeNil())

			applications, err := s.Application().List(context.TODO(),
				st.NewApplicationQueryFilter().ByWorkerID(workerID).ExcludingWithdrawn(),
				st.NewApplicationQueryOptions())
			Expect(err).To(BeNil())
			Expect(applications).To(HaveLen(1))
			Expect(applications[0].Status).To(Equal("pending"))
		})
	})

	Context("create", func() {
		It("successfully creates an application", func() {
			application := model.Application{
				ID:       uuid.New(),
				JobID:    uuid.New(),
				WorkerID: uuid.New(),
				Status:   string(api.ApplicationStatusPending),
			}

			created, err := s.Application().Create(context.TODO(), application)
			Expect(err).To(BeNil())
			Expect(created.AppliedAt).ToNot(BeZero())
		})

		It("returns ErrDuplicateKey -- worker already applied", func() {
			jobID := uuid.New()
			workerID := uuid.New()

			_, err := s.Application().Create(context.TODO(), model.Application{
				ID:       uuid.New(),
				JobID:    jobID,
				WorkerID: workerID,
				Status:   string(api.ApplicationStatusPending),
			})
			Expect(err).To(BeNil())

			_, err = s.Application().Create(context.TODO(), model.Application{
				ID:       uuid.New(),
				JobID:    jobID,
				WorkerID: workerID,
				Status:   string(api.ApplicationStatusPending),
			})
			Expect(err).To(MatchError(st.ErrDuplicateKey))
		})

		It("allows re-applying after a withdrawal", func() {
			jobID := uuid.New()
			workerID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertApplicationStm, uuid.NewString(), jobID, workerID, "withdrawn"))
			Expect(tx.Error).To(BeNil())

			_, err := s.Application().Create(context.TODO(), model.Application{
				ID:       uuid.New(),
				JobID:    jobID,
				WorkerID: workerID,
				Status:   string(api.ApplicationStatusPending),
			})
			Expect(err).To(BeNil())
		})
	})

	Context("get", func() {
		It("finds the worker's active application for a job", func() {
			jobID := uuid.New()
			workerID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertApplicationStm, uuid.NewString(), jobID, workerID, "withdrawn"))
			Expect(tx.Error).To(BeNil())
			activeID := uuid.New()
			tx = gormdb.Exec(fmt.Sprintf(insertApplicationStm, activeID, jobID, workerID, "pending"))
			Expect(tx.Error).To(BeNil())

			application, err := s.Application().GetActiveByJobAndWorker(context.TODO(), jobID, workerID)
			Expect(err).To(BeNil())
			Expect(application.ID).To(Equal(activeID))
		})

		It("returns ErrRecordNotFound -- only a withdrawn application exists", func() {
			jobID := uuid.New()
			workerID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertApplicationStm, uuid.NewString(), jobID, workerID, "withdrawn"))
			Expect(tx.Error).To(BeNil())

			_, err := s.Application().GetActiveByJobAndWorker(context.TODO(), jobID, workerID)
			Expect(err).To(MatchError(st.ErrRecordNotFound))
		})
	})

	Context("update", func() {
		It("successfully moves an application to viewed", func() {
			applicationID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertApplicationStm, applicationID, uuid.NewString(), uuid.NewString(), "pending"))
			Expect(tx.Error).To(BeNil())

			now := time.Now().UTC()
			_, err := s.Application().Update(context.TODO(), model.Application{
				ID:              applicationID,
				Status:          string(api.ApplicationStatusViewed),
				ViewedAt:        &now,
				StatusUpdatedAt: &now,
			})
			Expect(err).To(BeNil())

			stored, err := s.Application().Get(context.TODO(), applicationID)
			Expect(err).To(BeNil())
			Expect(stored.Status).To(Equal("viewed"))
			Expect(stored.ViewedAt).ToNot(BeNil())
		})

		It("returns ErrRecordNotFound -- application does not exist", func() {
			_, err := s.Application().Update(context.TODO(), model.Application{ID: uuid.New(), Status: "viewed"})
			Expect(err).To(MatchError(st.ErrRecordNotFound))
		})
	})

	Context("count", func() {
		It("counts only non-withdrawn applications", func() {
			jobID := uuid.NewString()
			tx := gormdb.Exec(fmt.Sprintf(insertApplicationStm, uuid.NewString(), jobID, uuid.NewString(), "pending"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertApplicationStm, uuid.NewString(), jobID, uuid.NewString(), "accepted"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertApplicationStm, uuid.NewString(), jobID, uuid.NewString(), "withdrawn"))
			Expect(tx.Error).To(BeNil())

			count, err := s.Application().Count(context.TODO(), st.NewApplicationQueryFilter().ByJobID(jobID).ExcludingWithdrawn())
			Expect(err).To(BeNil())
			Expect(count).To(Equal(int64(2)))
		})
	})
})
