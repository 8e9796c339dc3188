package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/crewup/crewup-api/internal/store/model"
)

type WorkerProfile interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.WorkerProfile, error)
	Create(ctx context.Context, profile model.WorkerProfile) (*model.WorkerProfile, error)
	Update(ctx context.Context, profile model.WorkerProfile) (*model.WorkerProfile, error)
	ReplaceSkills(ctx context.Context, profileID uuid.UUID, skills []model.WorkerSkill) error
	AddCertification(ctx context.Context, certification model.Certification) (*model.Certification, error)
	DeleteCertification(ctx context.Context, profileID uuid.UUID, id uuid.UUID) error
	AddWorkHistory(ctx context.Context, entry model.WorkHistory) (*model.WorkHistory, error)
	DeleteWorkHistory(ctx context.Context, profileID uuid.UUID, id uuid.UUID) error
	InitialMigration(ctx context.Context) error
}

type WorkerProfileStore struct {
	db *gorm.DB
}

// Make sure we conform to WorkerProfile interface
var _ WorkerProfile = (*WorkerProfileStore)(nil)

func NewWorkerProfile(db *gorm.DB) WorkerProfile {
	return &WorkerProfileStore{db: db}
}

func (w *WorkerProfileStore) InitialMigration(ctx context.Context) error {
	return w.getDB(ctx).AutoMigrate(
		&model.WorkerProfile{},
		&model.WorkerSkill{},
		&model.Certification{},
		&model.WorkHistory{},
	)
}

func (w *WorkerProfileStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.WorkerProfile, error) {
	var profile model.WorkerProfile

	err := w.getDB(ctx).WithContext(ctx).
		Preload("Skills").
		Preload("Certifications").
		Preload("WorkHistory").
		Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return &profile, nil
}

func (w *WorkerProfileStore) Create(ctx context.Context, profile model.WorkerProfile) (*model.WorkerProfile, error) {
	if err := w.getDB(ctx).WithContext(ctx).Create(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}

	return &profile, nil
}

func (w *WorkerProfileStore) Update(ctx context.Context, profile model.WorkerProfile) (*model.WorkerProfile, error) {
	if err := w.getDB(ctx).WithContext(ctx).First(&model.WorkerProfile{ID: profile.ID}).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	// sub-entities have their own write paths
	if tx := w.getDB(ctx).WithContext(ctx).Omit(clause.Associations).Clauses(clause.Returning{}).Updates(&profile); tx.Error != nil {
		return nil, tx.Error
	}

	return &profile, nil
}

// ReplaceSkills swaps the profile's skill rows in one transaction.
func (w *WorkerProfileStore) ReplaceSkills(ctx context.Context, profileID uuid.UUID, skills []model.WorkerSkill) error {
	return w.getDB(ctx).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("worker_profile_id = ?", profileID).Delete(&model.WorkerSkill{}).Error; err != nil {
			return err
		}
		if len(skills) == 0 {
			return nil
		}
		return tx.Create(&skills).Error
	})
}

func (w *WorkerProfileStore) AddCertification(ctx context.Context, certification model.Certification) (*model.Certification, error) {
	if err := w.getDB(ctx).WithContext(ctx).Create(&certification).Error; err != nil {
		return nil, err
	}
	return &certification, nil
}

func (w *WorkerProfileStore) DeleteCertification(ctx context.Context, profileID uuid.UUID, id uuid.UUID) error {
	result := w.getDB(ctx).WithContext(ctx).
		Where("id = ? AND worker_profile_id = ?", id, profileID).
		Delete(&model.Certification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (w *WorkerProfileStore) AddWorkHistory(ctx context.Context, entry model.WorkHistory) (*model.WorkHistory, error) {
	if err := w.getDB(ctx).WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (w *WorkerProfileStore) DeleteWorkHistory(ctx context.Context, profileID uuid.UUID, id uuid.UUID) error {
	result := w.getDB(ctx).WithContext(ctx).
		Where("id = ? AND worker_profile_id = ?", id, profileID).
		Delete(&model.WorkHistory{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (w *WorkerProfileStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return w.db
}
