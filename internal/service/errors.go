package service

import (
	"fmt"

	"github.com/google/uuid"
)

type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(id uuid.UUID, resourceType string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s %s not found", resourceType, id)}
}

func NewErrJobNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "job")
}

func NewErrApplicationNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "application")
}

type ErrProfileNotFound struct {
	error
}

func NewErrProfileNotFound(userID uuid.UUID, profileType string) *ErrProfileNotFound {
	return &ErrProfileNotFound{fmt.Errorf("no %s profile for user %s", profileType, userID)}
}

type ErrJobValidation struct {
	error
}

func NewErrJobValidation(message string) *ErrJobValidation {
	return &ErrJobValidation{fmt.Errorf("invalid job posting: %s", message)}
}

type ErrNotJobOwner struct {
	error
}

func NewErrNotJobOwner(jobID uuid.UUID) *ErrNotJobOwner {
	return &ErrNotJobOwner{fmt.Errorf("job %s belongs to another employer", jobID)}
}

type ErrNotApplicationOwner struct {
	error
}

func NewErrNotApplicationOwner(applicationID uuid.UUID) *ErrNotApplicationOwner {
	return &ErrNotApplicationOwner{fmt.Errorf("application %s belongs to another worker", applicationID)}
}

type ErrDuplicateApplication struct {
	error
}

func NewErrDuplicateApplication(jobID, workerID uuid.UUID) *ErrDuplicateApplication {
	return &ErrDuplicateApplication{fmt.Errorf("worker %s already applied to job %s", workerID, jobID)}
}

type ErrJobNotAcceptingApplications struct {
	error
}

func NewErrJobNotAcceptingApplications(jobID uuid.UUID, status string) *ErrJobNotAcceptingApplications {
	return &ErrJobNotAcceptingApplications{fmt.Errorf("job %s is %s and not accepting applications", jobID, status)}
}

type ErrJobConflict struct {
	error
}

func NewErrJobConflict(jobID uuid.UUID, message string) *ErrJobConflict {
	return &ErrJobConflict{fmt.Errorf("job %s: %s", jobID, message)}
}

type ErrDuplicateProfile struct {
	error
}

func NewErrDuplicateProfile(userID uuid.UUID, profileType string) *ErrDuplicateProfile {
	return &ErrDuplicateProfile{fmt.Errorf("user %s already has a %s profile", userID, profileType)}
}
