package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	api "github.com/crewup/crewup-api/api/v1"
)

type Application struct {
	ID              uuid.UUID `gorm:"primaryKey;column:id;type:VARCHAR(255);"`
	JobID           uuid.UUID `gorm:"not null;type:VARCHAR(255);index:applications_job_id_idx"`
	WorkerID        uuid.UUID `gorm:"not null;type:VARCHAR(255);index:applications_worker_id_idx"`
	Status          string    `gorm:"not null;type:VARCHAR(50)"`
	CoverLetter     *string
	IsPriority      bool      `gorm:"not null;default:false"`
	AppliedAt       time.Time `gorm:"autoCreateTime"`
	ViewedAt        *time.Time
	StatusUpdatedAt *time.Time
}

type ApplicationList []Application

func NewApplicationFromID(id uuid.UUID) *Application {
	return &Application{ID: id}
}

func (a Application) String() string {
	val, _ := json.Marshal(a)
	return string(val)
}

func (a Application) ToApiResource() api.Application {
	return api.Application{
		Id:              a.ID,
		JobId:           a.JobID,
		WorkerId:        a.WorkerID,
		Status:          api.ApplicationStatus(a.Status),
		CoverLetter:     a.CoverLetter,
		IsPriority:      a.IsPriority,
		AppliedAt:       a.AppliedAt,
		ViewedAt:        a.ViewedAt,
		StatusUpdatedAt: a.StatusUpdatedAt,
	}
}

func (al ApplicationList) ToApiResource() api.ApplicationList {
	applicationList := make([]api.Application, 0, len(al))
	for _, a := range al {
		applicationList = append(applicationList, a.ToApiResource())
	}
	return applicationList
}
