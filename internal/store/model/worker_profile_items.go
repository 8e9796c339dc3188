package model

import (
	"time"

	"github.com/google/uuid"

	api "github.com/crewup/crewup-api/api/v1"
)

// WorkerSkill is one entry of a worker's skill set. The set is replaced
// wholesale, so rows carry no identity beyond the profile they belong to.
type WorkerSkill struct {
	ID               uuid.UUID `gorm:"primaryKey;column:id;type:VARCHAR(255);"`
	WorkerProfileID  uuid.UUID `gorm:"not null;type:VARCHAR(255);index:worker_skills_profile_id_idx"`
	SkillName        string    `gorm:"not null;type:VARCHAR(100)"`
	ProficiencyLevel string    `gorm:"not null;type:VARCHAR(50)"`
}

type Certification struct {
	ID                  uuid.UUID `gorm:"primaryKey;column:id;type:VARCHAR(255);"`
	WorkerProfileID     uuid.UUID `gorm:"not null;type:VARCHAR(255);index:certifications_profile_id_idx"`
	Name                string    `gorm:"not null;type:VARCHAR(200)"`
	IssuingOrganization *string   `gorm:"type:VARCHAR(200)"`
	IssueDate           *time.Time
	ExpiryDate          *time.Time
	CertificationNumber *string `gorm:"type:VARCHAR(100)"`
	Verified            bool    `gorm:"not null;default:false"`
	CreatedAt           time.Time
}

type WorkHistory struct {
	ID              uuid.UUID `gorm:"primaryKey;column:id;type:VARCHAR(255);"`
	WorkerProfileID uuid.UUID `gorm:"not null;type:VARCHAR(255);index:work_history_profile_id_idx"`
	CompanyName     string    `gorm:"not null;type:VARCHAR(200)"`
	PositionTitle   string    `gorm:"not null;type:VARCHAR(200)"`
	StartDate       time.Time `gorm:"not null"`
	EndDate         *time.Time
	IsCurrent       bool `gorm:"not null;default:false"`
	Description     *string
	CreatedAt       time.Time
}

func (WorkHistory) TableName() string {
	return "work_history"
}

func (s WorkerSkill) ToApiResource() api.WorkerSkill {
	return api.WorkerSkill{
		SkillName:        s.SkillName,
		ProficiencyLevel: api.ProficiencyLevel(s.ProficiencyLevel),
	}
}

func (c Certification) ToApiResource() api.Certification {
	return api.Certification{
		Id:                  c.ID,
		Name:                c.Name,
		IssuingOrganization: c.IssuingOrganization,
		IssueDate:           c.IssueDate,
		ExpiryDate:          c.ExpiryDate,
		CertificationNumber: c.CertificationNumber,
		Verified:            c.Verified,
	}
}

func (h WorkHistory) ToApiResource() api.WorkHistory {
	return api.WorkHistory{
		Id:            h.ID,
		CompanyName:   h.CompanyName,
		PositionTitle: h.PositionTitle,
		StartDate:     h.StartDate,
		EndDate:       h.EndDate,
		IsCurrent:     h.IsCurrent,
		Description:   h.Description,
	}
}
