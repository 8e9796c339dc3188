package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	api "github.com/crewup/crewup-api/api/v1"
	"github.com/crewup/crewup-api/internal/store/model"
)

type Job interface {
	List(ctx context.Context, filter *JobQueryFilter, opts *JobQueryOptions) (model.JobList, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Job, error)
	Create(ctx context.Context, job model.Job) (*model.Job, error)
	Update(ctx context.Context, job model.Job) (*model.Job, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, expiresAt *time.Time) (*model.Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	AdjustApplicationsCount(ctx context.Context, id uuid.UUID, delta int) error
	SetApplicationsCount(ctx context.Context, id uuid.UUID, count int) error
	InitialMigration(ctx context.Context) error
}

type JobStore struct {
	db *gorm.DB
}

// Make sure we conform to Job interface
var _ Job = (*JobStore)(nil)

func NewJob(db *gorm.DB) Job {
	return &JobStore{db: db}
}

func (j *JobStore) InitialMigration(ctx context.Context) error {
	return j.getDB(ctx).AutoMigrate(&model.Job{})
}

// List lists job postings matching the filter.
func (j *JobStore) List(ctx context.Context, filter *JobQueryFilter, opts *JobQueryOptions) (model.JobList, error) {
	var jobs model.JobList
	tx := j.getDB(ctx)

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}

	if opts != nil {
		for _, fn := range opts.QueryFn {
			tx = fn(tx)
		}
	}

	if err := tx.Model(&jobs).Find(&jobs).Error; err != nil {
		return nil, err
	}

	return jobs, nil
}

// Get returns a job posting based on its id.
func (j *JobStore) Get(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	job := model.NewJobFromID(id)

	if err := j.getDB(ctx).WithContext(ctx).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return job, nil
}

// Create creates a job posting.
func (j *JobStore) Create(ctx context.Context, job model.Job) (*model.Job, error) {
	if err := j.getDB(ctx).WithContext(ctx).Create(&job).Error; err != nil {
		return nil, err
	}

	return &job, nil
}

// Update updates a job posting.
func (j *JobStore) Update(ctx context.Context, job model.Job) (*model.Job, error) {
	if err := j.getDB(ctx).WithContext(ctx).First(&model.Job{ID: job.ID}).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	if tx := j.getDB(ctx).WithContext(ctx).Clauses(clause.Returning{}).Updates(&job); tx.Error != nil {
		return nil, tx.Error
	}

	return &job, nil
}

// UpdateStatus moves a job posting to a new status. A nil expiresAt leaves
// the deadline untouched.
func (j *JobStore) UpdateStatus(ctx context.Context, id uuid.UUID, status string, expiresAt *time.Time) (*model.Job, error) {
	job := model.NewJobFromID(id)

	updates := map[string]any{"status": status}
	if expiresAt != nil {
		updates["expires_at"] = *expiresAt
	}

	tx := j.getDB(ctx).WithContext(ctx).Model(job).Clauses(clause.Returning{}).Updates(updates)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}

	return job, nil
}

func (j *JobStore) Delete(ctx context.Context, id uuid.UUID) error {
	job := model.NewJobFromID(id)
	result := j.getDB(ctx).WithContext(ctx).Unscoped().Delete(&job)
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}
	return nil
}

// ExpireDue moves every active posting whose deadline has passed to expired.
// Returns the number of postings moved.
func (j *JobStore) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	tx := j.getDB(ctx).WithContext(ctx).
		Model(&model.Job{}).
		Where("status = ?", string(api.JobStatusActive)).
		Where("expires_at IS NOT NULL AND expires_at <= ?", now).
		Update("status", string(api.JobStatusExpired))
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (j *JobStore) IncrementViews(ctx context.Context, id uuid.UUID) error {
	tx := j.getDB(ctx).WithContext(ctx).
		Model(&model.Job{ID: id}).
		UpdateColumn("views_count", gorm.Expr("views_count + 1"))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// AdjustApplicationsCount shifts the cached counter by delta, never below zero.
func (j *JobStore) AdjustApplicationsCount(ctx context.Context, id uuid.UUID, delta int) error {
	tx := j.getDB(ctx).WithContext(ctx).
		Model(&model.Job{ID: id}).
		UpdateColumn("applications_count", gorm.Expr(
			"CASE WHEN applications_count + ? < 0 THEN 0 ELSE applications_count + ? END", delta, delta))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (j *JobStore) SetApplicationsCount(ctx context.Context, id uuid.UUID, count int) error {
	tx := j.getDB(ctx).WithContext(ctx).
		Model(&model.Job{ID: id}).
		UpdateColumn("applications_count", count)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (j *JobStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return j.db
}
