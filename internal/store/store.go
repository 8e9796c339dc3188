package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/crewup/crewup-api/internal/store/model"
)

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	Job() Job
	Application() Application
	WorkerProfile() WorkerProfile
	EmployerProfile() EmployerProfile
	InitialMigration(ctx context.Context) error
	Statistics(ctx context.Context) (model.MarketplaceStats, error)
	Close() error
}

type DataStore struct {
	db              *gorm.DB
	job             Job
	application     Application
	workerProfile   WorkerProfile
	employerProfile EmployerProfile
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		job:             NewJob(db),
		application:     NewApplication(db),
		workerProfile:   NewWorkerProfile(db),
		employerProfile: NewEmployerProfile(db),
		db:              db,
	}
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db)
}

func (s *DataStore) Job() Job {
	return s.job
}

func (s *DataStore) Application() Application {
	return s.application
}

func (s *DataStore) WorkerProfile() WorkerProfile {
	return s.workerProfile
}

func (s *DataStore) EmployerProfile() EmployerProfile {
	return s.employerProfile
}

func (s *DataStore) InitialMigration(ctx context.Context) error {
	if err := s.Job().InitialMigration(ctx); err != nil {
		return err
	}
	if err := s.Application().InitialMigration(ctx); err != nil {
		return err
	}
	if err := s.WorkerProfile().InitialMigration(ctx); err != nil {
		return err
	}
	return s.EmployerProfile().InitialMigration(ctx)
}

func (s *DataStore) Statistics(ctx context.Context) (model.MarketplaceStats, error) {
	jobs, err := s.Job().List(ctx, NewJobQueryFilter(), NewJobQueryOptions())
	if err != nil {
		return model.MarketplaceStats{}, err
	}
	applications, err := s.Application().Count(ctx, NewApplicationQueryFilter().ExcludingWithdrawn())
	if err != nil {
		return model.MarketplaceStats{}, err
	}
	return model.NewMarketplaceStats(jobs, applications), nil
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
