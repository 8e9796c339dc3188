package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	api "github.com/crewup/crewup-api/api/v1"
	"github.com/crewup/crewup-api/internal/store/model"
)

type Application interface {
	List(ctx context.Context, filter *ApplicationQueryFilter, opts *ApplicationQueryOptions) (model.ApplicationList, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Application, error)
	GetActiveByJobAndWorker(ctx context.Context, jobID, workerID uuid.UUID) (*model.Application, error)
	Create(ctx context.Context, application model.Application) (*model.Application, error)
	Update(ctx context.Context, application model.Application) (*model.Application, error)
	Count(ctx context.Context, filter *ApplicationQueryFilter) (int64, error)
	InitialMigration(ctx context.Context) error
}

type ApplicationStore struct {
	db *gorm.DB
}

// Make sure we conform to Application interface
var _ Application = (*ApplicationStore)(nil)

func NewApplication(db *gorm.DB) Application {
	return &ApplicationStore{db: db}
}

func (a *ApplicationStore) InitialMigration(ctx context.Context) error {
	return a.getDB(ctx).AutoMigrate(&model.Application{})
}

// List lists applications matching the filter.
func (a *ApplicationStore) List(ctx context.Context, filter *ApplicationQueryFilter, opts *ApplicationQueryOptions) (model.ApplicationList, error) {
	var applications model.ApplicationList
	tx := a.getDB(ctx)

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

	if err := tx.Model(&applications).Find(&applications).Error; err != nil {
		return nil, err
	}

	return applications, nil
}

// Get returns an application based on its id.
func (a *ApplicationStore) Get(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	application := model.NewApplicationFromID(id)

	if err := a.getDB(ctx).WithContext(ctx).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return application, nil
}

// GetActiveByJobAndWorker returns the worker's non-withdrawn application for
// a job, if any.
func (a *ApplicationStore) GetActiveByJobAndWorker(ctx context.Context, jobID, workerID uuid.UUID) (*model.Application, error) {
	var application model.Application

	err := a.getDB(ctx).WithContext(ctx).
		Where("job_id = ?", jobID).
		Where("worker_id = ?", workerID).
		Where("status != ?", string(api.ApplicationStatusWithdrawn)).
		First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return &application, nil
}

// Create creates an application. Returns ErrDuplicateKey when the worker
// already holds a non-withdrawn application for the job.
func (a *ApplicationStore) Create(ctx context.Context, application model.Application) (*model.Application, error) {
	if err := a.getDB(ctx).WithContext(ctx).Create(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}

	return &application, nil
}

// Update updates an application.
func (a *ApplicationStore) Update(ctx context.Context, application model.Application) (*model.Application, error) {
	if err := a.getDB(ctx).WithContext(ctx).First(&model.Application{ID: application.ID}).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	if tx := a.getDB(ctx).WithContext(ctx).Clauses(clause.Returning{}).Updates(&application); tx.Error != nil {
		return nil, tx.Error
	}

	return &application, nil
}

// Count counts applications matching the filter.
func (a *ApplicationStore) Count(ctx context.Context, filter *ApplicationQueryFilter) (int64, error) {
	var count int64
	tx := a.getDB(ctx).Model(&model.Application{})

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}

	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (a *ApplicationStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return a.db
}
