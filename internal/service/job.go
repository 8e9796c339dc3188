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
	"github.com/crewup/crewup-api/internal/matching"
	"github.com/crewup/crewup-api/internal/service/mappers"
	"github.com/crewup/crewup-api/internal/store"
	"github.com/crewup/crewup-api/internal/store/model"
	"github.com/crewup/crewup-api/pkg/metrics"
)

type JobService struct {
	store  store.Store
	events *events.EventProducer
}

func NewJobService(store store.Store, events *events.EventProducer) *JobService {
	return &JobService{store: store, events: events}
}

func (s *JobService) CreateJob(ctx context.Context, employerID uuid.UUID, jobForm *api.CreateJobRequest) (*model.Job, error) {
	if err := validatePay(jobForm.PayType, jobForm.PayRateMin, jobForm.PayRateMax, jobForm.PayAmount); err != nil {
		return nil, err
	}

	job := mappers.JobFromApi(uuid.New(), employerID, jobForm)
	result, err := s.store.Job().Create(ctx, job)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetJob returns the posting, lazily expiring it when its deadline already
// passed but the sweep hasn't caught up yet.
func (s *JobService) GetJob(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	job, err := s.store.Job().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrJobNotFound(id)
		}
		return nil, err
	}

	if lifecycle.JobIsExpired(job, time.Now().UTC()) {
		job, err = s.store.Job().UpdateStatus(ctx, id, string(api.JobStatusExpired), nil)
		if err != nil {
			return nil, err
		}
	}

	return job, nil
}

func (s *JobService) ListEmployerJobs(ctx context.Context, employerID uuid.UUID, status *api.JobStatus) (model.JobList, error) {
	filter := store.NewJobQueryFilter().ByEmployerID(employerID.String())
	if status != nil {
		filter = filter.ByStatus(string(*status))
	}
	return s.store.Job().List(ctx, filter,
		store.NewJobQueryOptions().WithSortOrder(store.SortByCreatedTime))
}

// searchResultsCap bounds the worker-facing search; clients refine with
// filters instead of paging through everything.
const searchResultsCap = 50

// JobSearchParams narrows the worker-facing search. Zero values mean "no
// constraint".
type JobSearchParams struct {
	Query    string
	Trade    *string
	JobType  *api.JobType
	Origin   *api.Coordinate
	RadiusKm *float64
}

// SearchJobs runs the worker-facing search: active postings filtered by
// trade, job type, free text and, when an origin and radius are given, by
// distance.
func (s *JobService) SearchJobs(ctx context.Context, params JobSearchParams) (model.JobList, error) {
	filter := store.NewJobQueryFilter().ByStatus(string(api.JobStatusActive))
	if params.Trade != nil {
		filter = filter.ByRequiredTrade(*params.Trade)
	}
	if params.JobType != nil {
		filter = filter.ByJobType(string(*params.JobType))
	}

	jobs, err := s.store.Job().List(ctx, filter,
		store.NewJobQueryOptions().WithSortOrder(store.SortByCreatedTime).WithLimit(searchResultsCap))
	if err != nil {
		return nil, err
	}

	return matching.Filter(jobs, params.Query, params.Origin, params.RadiusKm), nil
}

func (s *JobService) UpdateJob(ctx context.Context, id uuid.UUID, employerID uuid.UUID, jobForm *api.UpdateJobRequest) (*model.Job, error) {
	job, err := s.store.Job().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrJobNotFound(id)
		}
		return nil, err
	}
	if job.EmployerID != employerID {
		return nil, NewErrNotJobOwner(id)
	}
	if job.Status != string(api.JobStatusDraft) && job.Status != string(api.JobStatusActive) {
		return nil, NewErrJobConflict(id, "only draft and active jobs can be edited")
	}

	updated := mappers.UpdateJobFromApi(job, jobForm)
	if err := validatePay(api.PayType(updated.PayType), updated.PayRateMin, updated.PayRateMax, updated.PayAmount); err != nil {
		return nil, err
	}

	return s.store.Job().Update(ctx, *updated)
}

func (s *JobService) PublishJob(ctx context.Context, id uuid.UUID, employerID uuid.UUID) (*model.Job, error) {
	job, err := s.getOwnedJob(ctx, id, employerID)
	if err != nil {
		return nil, err
	}

	if err := lifecycle.PublishJob(job, time.Now().UTC()); err != nil {
		return nil, err
	}

	result, err := s.store.Job().UpdateStatus(ctx, id, job.Status, job.ExpiresAt)
	if err != nil {
		return nil, err
	}

	metrics.IncreaseJobsPublishedTotalMetric(job.JobType)
	zap.S().Named("job_service").Infow("job published", "job_id", id, "expires_at", job.ExpiresAt)

	return result, nil
}

func (s *JobService) CloseJob(ctx context.Context, id uuid.UUID, employerID uuid.UUID) (*model.Job, error) {
	job, err := s.getOwnedJob(ctx, id, employerID)
	if err != nil {
		return nil, err
	}

	if err := lifecycle.CloseJob(job); err != nil {
		return nil, err
	}

	return s.store.Job().UpdateStatus(ctx, id, job.Status, nil)
}

func (s *JobService) FillJob(ctx context.Context, id uuid.UUID, employerID uuid.UUID) (*model.Job, error) {
	job, err := s.getOwnedJob(ctx, id, employerID)
	if err != nil {
		return nil, err
	}

	if err := lifecycle.FillJob(job); err != nil {
		return nil, err
	}

	return s.store.Job().UpdateStatus(ctx, id, job.Status, nil)
}

// DeleteJob removes a posting. Drafts go unconditionally; any other state is
// blocked while non-withdrawn applications reference the job.
func (s *JobService) DeleteJob(ctx context.Context, id uuid.UUID, employerID uuid.UUID) error {
	job, err := s.getOwnedJob(ctx, id, employerID)
	if err != nil {
		return err
	}

	if !lifecycle.JobDeletableUnconditionally(job) {
		count, err := s.store.Application().Count(ctx,
			store.NewApplicationQueryFilter().ByJobID(id.String()).ExcludingWithdrawn())
		if err != nil {
			return err
		}
		if count > 0 {
			return NewErrJobConflict(id, "job has applications on file")
		}
	}

	return s.store.Job().Delete(ctx, id)
}

// RecordJobView bumps the posting's view counter. Missing jobs are ignored;
// a view is not worth a 404.
func (s *JobService) RecordJobView(ctx context.Context, id uuid.UUID) {
	if err := s.store.Job().IncrementViews(ctx, id); err != nil && !errors.Is(err, store.ErrRecordNotFound) {
		zap.S().Named("job_service").Warnw("failed to record job view", "job_id", id, "error", err)
	}
}

// ExpireDueJobs moves every active posting past its deadline to expired.
// Called from the background sweep.
func (s *JobService) ExpireDueJobs(ctx context.Context) (int64, error) {
	now := time.Now().UTC()

	due, err := s.store.Job().List(ctx,
		store.NewJobQueryFilter().ByStatus(string(api.JobStatusActive)).ByExpiresBefore(now),
		store.NewJobQueryOptions())
	if err != nil {
		return 0, err
	}

	expired, err := s.store.Job().ExpireDue(ctx, now)
	if err != nil {
		return 0, err
	}

	if expired > 0 {
		zap.S().Named("job_service").Infof("expired %d jobs past their deadline", expired)
	}

	for _, job := range due {
		s.emit("job:"+job.ID.String(), events.JobExpiredKind, events.JobExpiredEvent{
			JobID:    job.ID.String(),
			JobTitle: job.Title,
		})
	}

	return expired, nil
}

func (s *JobService) emit(topic string, kind string, payload any) {
	if s.events == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		zap.S().Named("job_service").Errorw("failed to marshal event", "kind", kind, "error", err)
		return
	}
	if err := s.events.WriteTo(context.Background(), topic, kind, bytes.NewReader(data)); err != nil {
		zap.S().Named("job_service").Errorw("failed to emit event", "kind", kind, "error", err)
	}
}

func (s *JobService) getOwnedJob(ctx context.Context, id uuid.UUID, employerID uuid.UUID) (*model.Job, error) {
	job, err := s.store.Job().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrJobNotFound(id)
		}
		return nil, err
	}
	if job.EmployerID != employerID {
		return nil, NewErrNotJobOwner(id)
	}
	return job, nil
}

// validatePay enforces the pay shape rules the JSON-level validation cannot
// express: hourly postings use a coherent min/max range, fixed-sum postings
// use a single amount.
func validatePay(payType api.PayType, rateMin, rateMax, amount *float64) error {
	switch payType {
	case api.PayTypeHourly:
		if rateMin == nil && rateMax == nil {
			return NewErrJobValidation("hourly jobs need a pay rate range")
		}
		if rateMin != nil && rateMax != nil && *rateMin > *rateMax {
			return NewErrJobValidation("pay_rate_min cannot exceed pay_rate_max")
		}
	case api.PayTypeSalary, api.PayTypePerProject:
		if amount == nil {
			return NewErrJobValidation("salary and per-project jobs need a pay amount")
		}
	}
	return nil
}
