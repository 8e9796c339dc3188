package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	api "github.com/crewup/crewup-api/api/v1"
	"github.com/crewup/crewup-api/internal/service/mappers"
	"github.com/crewup/crewup-api/internal/store"
	"github.com/crewup/crewup-api/internal/store/model"
)

// MediaUploader stores uploaded assets and hands back public URLs. Delete
// takes the URL a previous Upload returned.
type MediaUploader interface {
	Upload(ctx context.Context, prefix string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, assetURL string) error
}

type ProfileService struct {
	store store.Store
	media MediaUploader
}

func NewProfileService(store store.Store, media MediaUploader) *ProfileService {
	return &ProfileService{store: store, media: media}
}

func (s *ProfileService) CreateWorkerProfile(ctx context.Context, userID uuid.UUID, profileForm *api.CreateWorkerProfileRequest) (*model.WorkerProfile, error) {
	profile := mappers.WorkerProfileFromApi(uuid.New(), userID, profileForm)

	result, err := s.store.WorkerProfile().Create(ctx, profile)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, NewErrDuplicateProfile(userID, "worker")
		}
		return nil, err
	}

	return result, nil
}

func (s *ProfileService) GetWorkerProfile(ctx context.Context, userID uuid.UUID) (*model.WorkerProfile, error) {
	profile, err := s.store.WorkerProfile().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrProfileNotFound(userID, "worker")
		}
		return nil, err
	}

	return profile, nil
}

func (s *ProfileService) UpdateWorkerProfile(ctx context.Context, userID uuid.UUID, profileForm *api.CreateWorkerProfileRequest) (*model.WorkerProfile, error) {
	existing, err := s.store.WorkerProfile().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrProfileNotFound(userID, "worker")
		}
		return nil, err
	}

	profile := mappers.WorkerProfileFromApi(existing.ID, userID, profileForm)
	return s.store.WorkerProfile().Update(ctx, profile)
}

func (s *ProfileService) CreateEmployerProfile(ctx context.Context, userID uuid.UUID, profileForm *api.CreateEmployerProfileRequest) (*model.EmployerProfile, error) {
	profile := mappers.EmployerProfileFromApi(uuid.New(), userID, profileForm)

	result, err := s.store.EmployerProfile().Create(ctx, profile)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, NewErrDuplicateProfile(userID, "employer")
		}
		return nil, err
	}

	return result, nil
}

func (s *ProfileService) GetEmployerProfile(ctx context.Context, userID uuid.UUID) (*model.EmployerProfile, error) {
	profile, err := s.store.EmployerProfile().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrProfileNotFound(userID, "employer")
		}
		return nil, err
	}

	return profile, nil
}

func (s *ProfileService) UpdateEmployerProfile(ctx context.Context, userID uuid.UUID, profileForm *api.CreateEmployerProfileRequest) (*model.EmployerProfile, error) {
	existing, err := s.store.EmployerProfile().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrProfileNotFound(userID, "employer")
		}
		return nil, err
	}

	profile := mappers.EmployerProfileFromApi(existing.ID, userID, profileForm)
	return s.store.EmployerProfile().Update(ctx, profile)
}

// ReplaceWorkerSkills swaps the worker's skill set and returns the refreshed
// profile.
func (s *ProfileService) ReplaceWorkerSkills(ctx context.Context, userID uuid.UUID, form *api.ReplaceWorkerSkillsRequest) (*model.WorkerProfile, error) {
	profile, err := s.GetWorkerProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	skills := mappers.WorkerSkillsFromApi(profile.ID, form.Skills)
	if err := s.store.WorkerProfile().ReplaceSkills(ctx, profile.ID, skills); err != nil {
		return nil, err
	}

	return s.store.WorkerProfile().GetByUserID(ctx, userID)
}

func (s *ProfileService) AddWorkerCertification(ctx context.Context, userID uuid.UUID, form *api.CreateCertificationRequest) (*model.Certification, error) {
	profile, err := s.GetWorkerProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	certification := mappers.CertificationFromApi(uuid.New(), profile.ID, form)
	return s.store.WorkerProfile().AddCertification(ctx, certification)
}

func (s *ProfileService) DeleteWorkerCertification(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	profile, err := s.GetWorkerProfile(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.store.WorkerProfile().DeleteCertification(ctx, profile.ID, id); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return NewErrResourceNotFound(id, "certification")
		}
		return err
	}
	return nil
}

func (s *ProfileService) AddWorkerWorkHistory(ctx context.Context, userID uuid.UUID, form *api.CreateWorkHistoryRequest) (*model.WorkHistory, error) {
	profile, err := s.GetWorkerProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry := mappers.WorkHistoryFromApi(uuid.New(), profile.ID, form)
	return s.store.WorkerProfile().AddWorkHistory(ctx, entry)
}

func (s *ProfileService) DeleteWorkerWorkHistory(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	profile, err := s.GetWorkerProfile(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.store.WorkerProfile().DeleteWorkHistory(ctx, profile.ID, id); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return NewErrResourceNotFound(id, "work history entry")
		}
		return err
	}
	return nil
}

// UploadWorkerPhoto stores a worker's profile photo and records its URL.
func (s *ProfileService) UploadWorkerPhoto(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (*model.WorkerProfile, error) {
	profile, err := s.store.WorkerProfile().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrProfileNotFound(userID, "worker")
		}
		return nil, err
	}

	if s.media == nil {
		return nil, errors.New("media storage is not configured")
	}
	url, err := s.media.Upload(ctx, "profile-photos", data, contentType)
	if err != nil {
		return nil, err
	}
	s.deleteReplaced(ctx, profile.ProfilePhotoURL)

	profile.ProfilePhotoURL = &url
	return s.store.WorkerProfile().Update(ctx, *profile)
}

// UploadEmployerLogo stores a company logo and records its URL.
func (s *ProfileService) UploadEmployerLogo(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (*model.EmployerProfile, error) {
	profile, err := s.store.EmployerProfile().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrProfileNotFound(userID, "employer")
		}
		return nil, err
	}

	if s.media == nil {
		return nil, errors.New("media storage is not configured")
	}
	url, err := s.media.Upload(ctx, "company-logos", data, contentType)
	if err != nil {
		return nil, err
	}
	s.deleteReplaced(ctx, profile.CompanyLogoURL)

	profile.CompanyLogoURL = &url
	return s.store.EmployerProfile().Update(ctx, *profile)
}

// deleteReplaced drops the superseded asset. Failures leave an orphan in the
// bucket, which is acceptable; the profile update must not depend on it.
func (s *ProfileService) deleteReplaced(ctx context.Context, assetURL *string) {
	if assetURL == nil {
		return
	}
	if err := s.media.Delete(ctx, *assetURL); err != nil {
		zap.S().Named("profile_service").Warnw("failed to delete replaced asset", "url", *assetURL, "error", err)
	}
}
