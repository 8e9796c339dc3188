package store_test

import (
	"context"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	api "github.com/crewup/crewup-api/api/v1"
	st "github.com/crewup/crewup-api/internal/store"
	"github.com/crewup/crewup-api/internal/store/model"
)

var _ = Describe("transactions", Ordered, func() {
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

	It("commits a job successfully", func() {
		ctx, err := s.NewTransactionContext(context.TODO())
		Expect(err).To(BeNil())

		job, err := s.Job().Create(ctx, model.Job{
			ID:            uuid.New(),
			EmployerID:    uuid.New(),
			JobType:       string(api.JobTypeStandard),
			Title:         "concrete crew",
			Description:   "pour and finish",
			PayType:       string(api.PayTypeHourly),
			Status:        string(api.JobStatusDraft),
			WorkersNeeded: 1,
		})
		Expect(job).ToNot(BeNil())
		Expect(err).To(BeNil())

		// commit
		_, cerr := st.Commit(ctx)
		Expect(cerr).To(BeNil())

		count := 0
		err = gormdb.Raw("SELECT COUNT(*) FROM jobs;").Scan(&count).Error
		Expect(err).To(BeNil())
		Expect(count).To(Equal(1))
	})

	It("rolls back a job successfully", func() {
		ctx, err := s.NewTransactionContext(context.TODO())
		Expect(err).To(BeNil())

		job, err := s.Job().Create(ctx, model.Job{
			ID:            uuid.New(),
			EmployerID:    uuid.New(),
			JobType:       string(api.JobTypeStandard),
			Title:         "concrete crew",
			Description:   "pour and finish",
			PayType:       string(api.PayTypeHourly),
			Status:        string(api.JobStatusDraft),
			WorkersNeeded: 1,
		})
		Expect(job).ToNot(BeNil())
		Expect(err).To(BeNil())

		// visible inside the transaction
		jobs, err := s.Job().List(ctx, st.NewJobQueryFilter(), st.NewJobQueryOptions())
		Expect(err).To(BeNil())
		Expect(jobs).To(HaveLen(1))

		// rollback
		_, cerr := st.Rollback(ctx)
		Expect(cerr).To(BeNil())

		count := 0
		err = gormdb.Raw("SELECT COUNT(*) FROM jobs;").Scan(&count).Error
		Expect(err).To(BeNil())
		Expect(count).To(Equal(0))
	})
})
