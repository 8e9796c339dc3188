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
	"github.com/crewup/crewup-api/internal/events"
	"github.com/crewup/crewup-api/internal/lifecycle"
	"github.com/crewup/crewup-api/internal/service"
	"github.com/crewup/crewup-api/internal/store"
)

var _ = Describe("application service", Ordered, func() {
	var (
		s           store.Store
		gormdb      *gorm.DB
		srv         *service.ApplicationService
		eventWriter *testwriter
	)

	BeforeAll(func() {
		gormdb, s = openTestDB()
	})

	BeforeEach(func() {
		eventWriter = newTestWriter()
		srv = service.NewApplicationService(s, events.NewEventProducer(eventWriter))
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM applications;")
		gormdb.Exec("DELETE FROM jobs;")
	})

	Context("apply", func() {
		It("files a pending application and bumps the job counter", func() {
			jobID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, jobID, uuid.New(), "concrete crew", "active"))
			Expect(tx.Error).To(BeNil())

			workerID := uuid.New()
			application, err := srv.Apply(context.TODO(), workerID, &api.CreateApplicationRequest{JobId: jobID})
			Expect(err).To(BeNil())
			Expect(application.Status).To(Equal("pending"))
			Expect(application.WorkerID).To(Equal(workerID))

			count := 0
			Expect(gormdb.Raw("SELECT applications_count FROM jobs WHERE id = ?;", jobID).Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(1))

			Eventually(eventWriter.Len, 2*time.Second).Should(Equal(1))
		})

		It("rejects a second application from the same worker", func() {
			jobID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, jobID, uuid.New(), "concrete crew", "active"))
			Expect(tx.Error).To(BeNil())

			workerID := uuid.New()
			_, err := srv.Apply(context.TODO(), workerID, &api.CreateApplicationRequest{JobId: jobID})
			Expect(err).To(BeNil())

			_, err = srv.Apply(context.TODO(), workerID, &api.CreateApplicationRequest{JobId: jobID})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrDuplicateApplication{}))

			// the counter must not move on the failed attempt
			count := 0
			Expect(gormdb.Raw("SELECT applications_count FROM jobs WHERE id = ?;", jobID).Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(1))
		})

		It("rejects applying to a draft job", func() {
			jobID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, jobID, uuid.New(), "concrete crew", "draft"))
			Expect(tx.Error).To(BeNil())

			_, err := srv.Apply(context.TODO(), uuid.New(), &api.CreateApplicationRequest{JobId: jobID})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrJobNotAcceptingApplications{}))
		})

		It("rejects applying to an active job past its deadline", func() {
			jobID := uuid.New()
			past := time.Now().UTC().Add(-time.Hour).Format("2006-01-02 15:04:05")
			tx := gormdb.Exec(fmt.Sprintf(insertJobWithExpiryStm, jobID, uuid.New(), "stale posting", "active", past))
			Expect(tx.Error).To(BeNil())

			_, err := srv.Apply(context.TODO(), uuid.New(), &api.CreateApplicationRequest{JobId: jobID})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrJobNotAcceptingApplications{}))
		})

		It("returns ErrResourceNotFound -- job does not exist", func() {
			_, err := srv.Apply(context.TODO(), uuid.New(), &api.CreateApplicationRequest{JobId: uuid.New()})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})

	Context("withdraw", func() {
		It("withdraws a pending application and decrements the counter", func() {
			jobID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, jobID, uuid.New(), "concrete crew", "active"))
			Expect(tx.Error).To(BeNil())

			workerID := uuid.New()
			application, err := srv.Apply(context.TODO(), workerID, &api.CreateApplicationRequest{JobId: jobID})
			Expect(err).To(BeNil())

			withdrawn, err := srv.Withdraw(context.TODO(), application.ID, workerID)
			Expect(err).To(BeNil())
			Expect(withdrawn.Status).To(Equal("withdrawn"))
			Expect(withdrawn.StatusUpdatedAt).ToNot(BeNil())

			// both the application and the withdrawal land on the job topic,
			// where the employer listens
			Eventually(eventWriter.Topics, 2*time.Second).Should(HaveLen(2))
			Expect(eventWriter.Topics()).To(HaveEach("job:" + jobID.String()))

			count := 0
			Expect(gormdb.Raw("SELECT applications_count FROM jobs WHERE id = ?;", jobID).Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(0))

			// re-applying after a withdrawal is allowed
			_, err = srv.Apply(context.TODO(), workerID, &api.CreateApplicationRequest{JobId: jobID})
			Expect(err).To(BeNil())
		})

		It("refuses to withdraw an accepted application", func() {
			jobID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, jobID, uuid.New(), "concrete crew", "active"))
			Expect(tx.Error).To(BeNil())
			applicationID := uuid.New()
			workerID := uuid.New()
			tx = gormdb.Exec(fmt.Sprintf(insertApplicationStm, applicationID, jobID, workerID, "accepted"))
			Expect(tx.Error).To(BeNil())

			_, err := srv.Withdraw(context.TODO(), applicationID, workerID)
			Expect(err).To(BeAssignableToTypeOf(&lifecycle.ErrInvalidTransition{}))
		})

		It("refuses to withdraw another worker's application", func() {
			jobID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, jobID, uuid.New(), "concrete crew", "active"))
			Expect(tx.Error).To(BeNil())
			applicationID := uuid.New()
			tx = gormdb.Exec(fmt.Sprintf(insertApplicationStm, applicationID, jobID, uuid.New(), "pending"))
			Expect(tx.Error).To(BeNil())

			_, err := srv.Withdraw(context.TODO(), applicationID, uuid.New())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrNotApplicationOwner{}))
		})
	})

	Context("update status", func() {
		It("walks an application through viewed, shortlisted, accepted", func() {
			employerID := uuid.New()
			jobID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, jobID, employerID, "concrete crew", "active"))
			Expect(tx.Error).To(BeNil())
			applicationID := uuid.New()
			workerID := uuid.New()
			tx = gormdb.Exec(fmt.Sprintf(insertApplicationStm, applicationID, jobID, workerID, "pending"))
			Expect(tx.Error).To(BeNil())

			application, err := srv.UpdateStatus(context.TODO(), applicationID, employerID, api.ApplicationStatusViewed)
			Expect(err).To(BeNil())
			Expect(application.Status).To(Equal("viewed"))
			Expect(application.ViewedAt).ToNot(BeNil())

			application, err = srv.UpdateStatus(context.TODO(), applicationID, employerID, api.ApplicationStatusShortlisted)
			Expect(err).To(BeNil())
			Expect(application.Status).To(Equal("shortlisted"))

			application, err = srv.UpdateStatus(context.TODO(), applicationID, employerID, api.ApplicationStatusAccepted)
			Expect(err).To(BeNil())
			Expect(application.Status).To(Equal("accepted"))

			// employer moves are news for the worker
			Eventually(eventWriter.Topics, 2*time.Second).Should(HaveLen(3))
			Expect(eventWriter.Topics()).To(HaveEach("worker:" + workerID.String()))
		})

		It("refuses a status change from an employer who does not own the job", func() {
			jobID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, jobID, uuid.New(), "concrete crew", "active"))
			Expect(tx.Error).To(BeNil())
			applicationID := uuid.New()
			tx = gormdb.Exec(fmt.Sprintf(insertApplicationStm, applicationID, jobID, uuid.New(), "pending"))
			Expect(tx.Error).To(BeNil())

			_, err := srv.UpdateStatus(context.TODO(), applicationID, uuid.New(), api.ApplicationStatusViewed)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrNotJobOwner{}))
		})

		It("refuses an employer withdrawing a worker's application", func() {
			employerID := uuid.New()
			jobID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, jobID, employerID, "concrete crew", "active"))
			Expect(tx.Error).To(BeNil())
			applicationID := uuid.New()
			tx = gormdb.Exec(fmt.Sprintf(insertApplicationStm, applicationID, jobID, uuid.New(), "pending"))
			Expect(tx.Error).To(BeNil())

			_, err := srv.UpdateStatus(context.TODO(), applicationID, employerID, api.ApplicationStatusWithdrawn)
			Expect(err).To(BeAssignableToTypeOf(&lifecycle.ErrUnauthorizedTransition{}))
		})
	})

	Context("listing", func() {
		It("lists a worker's applications including withdrawn ones", func() {
			workerID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertApplicationStm, uuid.New(), uuid.New(), workerID, "pending"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertApplicationStm, uuid.New(), uuid.New(), workerID, "withdrawn"))
			Expect(tx.Error).To(BeNil())

			applications, err := srv.ListWorkerApplications(context.TODO(), workerID)
			Expect(err).To(BeNil())
			Expect(applications).To(HaveLen(2))
		})

		It("lists a job's applications without withdrawn ones", func() {
			employerID := uuid.New()
			jobID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, jobID, employerID, "concrete crew", "active"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertApplicationStm, uuid.New(), jobID, uuid.New(), "pending"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertApplicationStm, uuid.New(), jobID, uuid.New(), "withdrawn"))
			Expect(tx.Error).To(BeNil())

			applications, err := srv.ListJobApplications(context.TODO(), jobID, employerID)
			Expect(err).To(BeNil())
			Expect(applications).To(HaveLen(1))
		})

		It("refuses listing applications of another employer's job", func() {
			jobID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, jobID, uuid.New(), "concrete crew", "active"))
			Expect(tx.Error).To(BeNil())

			_, err := srv.ListJobApplications(context.TODO(), jobID, uuid.New())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrNotJobOwner{}))
		})
	})

	Context("reconcile", func() {
		It("recomputes the cached counter from the applications table", func() {
			jobID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, jobID, uuid.New(), "concrete crew", "active"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertApplicationStm, uuid.New(), jobID, uuid.New(), "pending"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertApplicationStm, uuid.New(), jobID, uuid.New(), "shortlisted"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertApplicationStm, uuid.New(), jobID, uuid.New(), "withdrawn"))
			Expect(tx.Error).To(BeNil())

			Expect(srv.ReconcileApplicationsCount(context.TODO(), jobID)).To(BeNil())

			count := 0
			Expect(gormdb.Raw("SELECT applications_count FROM jobs WHERE id = ?;", jobID).Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(2))
		})
	})
})
