package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	api "github.com/crewup/crewup-api/api/v1"
	"github.com/crewup/crewup-api/internal/events"
	"github.com/crewup/crewup-api/internal/lifecycle"
	"github.com/crewup/crewup-api/internal/service/mappers"
	"github.com/crewup/crewup-api/internal/store"
	"github.com/crewup/crewup-api/internal/store/model"
	"github.com/crewup/crewup-api/pkg/metrics"
)

type ApplicationService struct {
	store  store.Store
	events *events.EventProducer
}

func NewApplicationService(store store.Store, events *events.EventProducer) *ApplicationService {
	return &ApplicationService{store: store, events: events}
}

// Apply files a worker's application against an active posting. The insert
// and the counter bump share a transaction so the cached count never drifts
// on failure.
func (s *ApplicationService) Apply(ctx context.Context, workerID uuid.UUID, applicationForm *api.CreateApplicationRequest) (*model.Application, error) {
	job, err := s.store.Job().Get(ctx, applicationForm.JobId)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrJobNotFound(applicationForm.JobId)
		}
		return nil, err
	}

	if lifecycle.JobIsExpired(job, time.Now().UTC()) {
		if job, err = s.store.Job().UpdateStatus(ctx, job.ID, string(api.JobStatusExpired), nil); err != nil {
			return nil, err
		}
	}
	if !lifecycle.JobAcceptsApplications(job) {
		return nil, NewErrJobNotAcceptingApplications(job.ID, job.Status)
	}

	ctx, err = s.store.NewTransactionContext(ctx)
	if err != nil {
		return nil, err
	}

	application := mappers.ApplicationFromApi(uuid.New(), workerID, applicationForm)
	result, err := s.store.Application().Create(ctx, application)
	if err != nil {
		_, _ = store.Rollback(ctx)
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, NewErrDuplicateApplication(job.ID, workerID)
		}
		return nil, err
	}

	if err := s.store.Job().AdjustApplicationsCount(ctx, job.ID, 1); err != nil {
		_, _ = store.Rollback(ctx)
		return nil, err
	}

	if _, err := store.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.IncreaseApplicationsCreatedTotalMetric()
	s.emit("job:"+job.ID.String(), events.ApplicationCreatedKind, events.ApplicationCreatedEvent{
		ApplicationID: result.ID.String(),
		JobID:         job.ID.String(),
		JobTitle:      job.Title,
		WorkerID:      workerID.String(),
		AppliedAt:     result.AppliedAt,
	})

	return result, nil
}

// Withdraw lets the worker pull a non-terminal application back.
func (s *ApplicationService) Withdraw(ctx context.Context, id uuid.UUID, workerID uuid.UUID) (*model.Application, error) {
	application, err := s.store.Application().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrApplicationNotFound(id)
		}
		return nil, err
	}
	if application.WorkerID != workerID {
		return nil, NewErrNotApplicationOwner(id)
	}

	fromStatus := application.Status
	if err := lifecycle.TransitionApplication(application, api.ApplicationStatusWithdrawn, lifecycle.RoleWorker, time.Now().UTC()); err != nil {
		return nil, err
	}

	ctx, err = s.store.NewTransactionContext(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.store.Application().Update(ctx, *application)
	if err != nil {
		_, _ = store.Rollback(ctx)
		return nil, err
	}

	if err := s.store.Job().AdjustApplicationsCount(ctx, application.JobID, -1); err != nil && !errors.Is(err, store.ErrRecordNotFound) {
		_, _ = store.Rollback(ctx)
		return nil, err
	}

	if _, err := store.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.IncreaseApplicationsWithdrawnTotalMetric()
	// the employer watches the job topic; a withdrawal is news for them
	s.emitStatusChange("job:"+result.JobID.String(), result, fromStatus)

	return result, nil
}

// UpdateStatus is the employer side of the application state machine. The
// employer must own the posting the application belongs to.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id uuid.UUID, employerID uuid.UUID, to api.ApplicationStatus) (*model.Application, error) {
	application, err := s.store.Application().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrApplicationNotFound(id)
		}
		return nil, err
	}

	job, err := s.store.Job().Get(ctx, application.JobID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrJobNotFound(application.JobID)
		}
		return nil, err
	}
	if job.EmployerID != employerID {
		return nil, NewErrNotJobOwner(job.ID)
	}

	fromStatus := application.Status
	if err := lifecycle.TransitionApplication(application, to, lifecycle.RoleEmployer, time.Now().UTC()); err != nil {
		return nil, err
	}

	result, err := s.store.Application().Update(ctx, *application)
	if err != nil {
		return nil, err
	}

	s.emitStatusChange("worker:"+result.WorkerID.String(), result, fromStatus)

	return result, nil
}

func (s *ApplicationService) ListWorkerApplications(ctx context.Context, workerID uuid.UUID) (model.ApplicationList, error) {
	return s.store.Application().List(ctx,
		store.NewApplicationQueryFilter().ByWorkerID(workerID.String()),
		store.NewApplicationQueryOptions().WithSortOrder(store.SortByCreatedTime))
}

func (s *ApplicationService) ListJobApplications(ctx context.Context, jobID uuid.UUID, employerID uuid.UUID) (model.ApplicationList, error) {
	job, err := s.store.Job().Get(ctx, jobID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrJobNotFound(jobID)
		}
		return nil, err
	}
	if job.EmployerID != employerID {
		return nil, NewErrNotJobOwner(jobID)
	}

	return s.store.Application().List(ctx,
		store.NewApplicationQueryFilter().ByJobID(jobID.String()).ExcludingWithdrawn(),
		store.NewApplicationQueryOptions().WithSortOrder(store.SortByCreatedTime))
}

// ReconcileApplicationsCount recomputes a posting's cached counter from the
// applications table. Repair tool for drift caused by crashes between the
// two writes.
func (s *ApplicationService) ReconcileApplicationsCount(ctx context.Context, jobID uuid.UUID) error {
	count, err := s.store.Application().Count(ctx,
		store.NewApplicationQueryFilter().ByJobID(jobID.String()).ExcludingWithdrawn())
	if err != nil {
		return err
	}

	if err := s.store.Job().SetApplicationsCount(ctx, jobID, int(count)); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return NewErrJobNotFound(jobID)
		}
		return err
	}

	return nil
}

func (s *ApplicationService) emitStatusChange(topic string, application *model.Application, fromStatus string) {
	job, err := s.store.Job().Get(context.Background(), application.JobID)
	jobTitle := ""
	if err == nil {
		jobTitle = job.Title
	}

	s.emit(topic, events.ApplicationStatusKind, events.ApplicationStatusEvent{
		ApplicationID: application.ID.String(),
		JobID:         application.JobID.String(),
		JobTitle:      jobTitle,
		WorkerID:      application.WorkerID.String(),
		FromStatus:    fromStatus,
		ToStatus:      application.Status,
	})
}

func (s *ApplicationService) emit(topic string, kind string, payload any) {
	if s.events == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		zap.S().Named("application_service").Errorw("failed to marshal event", "kind", kind, "error", err)
		return
	}
	if err := s.events.WriteTo(context.Background(), topic, kind, bytes.NewReader(data)); err != nil {
		zap.S().Named("application_service").Errorw("failed to emit event", "kind", kind, "error", err)
	}
}
