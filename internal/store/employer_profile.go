package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/crewup/crewup-api/internal/store/model"
)

type EmployerProfile interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.EmployerProfile, error)
	Create(ctx context.Context, profile model.EmployerProfile) (*model.EmployerProfile, error)
	Update(ctx context.Context, profile model.EmployerProfile) (*model.EmployerProfile, error)
	InitialMigration(ctx context.Context) error
}

type EmployerProfileStore struct {
	db *gorm.DB
}

// Make sure we conform to EmployerProfile interface
var _ EmployerProfile = (*EmployerProfileStore)(nil)

func NewEmployerProfile(db *gorm.DB) EmployerProfile {
	return &EmployerProfileStore{db: db}
}

func (e *EmployerProfileStore) InitialMigration(ctx context.Context) error {
	return e.getDB(ctx).AutoMigrate(&model.EmployerProfile{})
}

func (e *EmployerProfileStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.EmployerProfile, error) {
	var profile model.EmployerProfile

	err := e.getDB(ctx).WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return &profile, nil
}

func (e *EmployerProfileStore) Create(ctx context.Context, profile model.EmployerProfile) (*model.EmployerProfile, error) {
	if err := e.getDB(ctx).WithContext(ctx).Create(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}

	return &profile, nil
}

func (e *EmployerProfileStore) Update(ctx context.Context, profile model.EmployerProfile) (*model.EmployerProfile, error) {
	if err := e.getDB(ctx).WithContext(ctx).First(&model.EmployerProfile{ID: profile.ID}).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	if tx := e.getDB(ctx).WithContext(ctx).Clauses(clause.Returning{}).Updates(&profile); tx.Error != nil {
		return nil, tx.Error
	}

	return &profile, nil
}

func (e *EmployerProfileStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return e.db
}
