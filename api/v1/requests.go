package v1

import (
	"time"

	"github.com/google/uuid"
)

// CreateJobRequest is the payload accepted by POST /api/v1/jobs. Jobs are
// always created in draft; publishing is a separate call.
type CreateJobRequest struct {
	JobType                JobType          `json:"job_type" validate:"required,oneof=standard day_labor"`
	Title                  string           `json:"title" validate:"required,min=3,max=200"`
	Description            string           `json:"description" validate:"required,min=10"`
	RequiredTrade          *string          `json:"required_trade,omitempty" validate:"omitempty,trade"`
	RequiredSkills         []string         `json:"required_skills,omitempty"`
	PayType                PayType          `json:"pay_type" validate:"required,oneof=hourly salary per_project"`
	PayRateMin             *float64         `json:"pay_rate_min,omitempty" validate:"omitempty,gt=0"`
	PayRateMax             *float64         `json:"pay_rate_max,omitempty" validate:"omitempty,gt=0"`
	PayAmount              *float64         `json:"pay_amount,omitempty" validate:"omitempty,gt=0"`
	Location               *Coordinate      `json:"location,omitempty" validate:"omitempty,coordinate"`
	StartDate              *time.Time       `json:"start_date,omitempty"`
	DurationWeeks          *int             `json:"duration_weeks,omitempty" validate:"omitempty,gt=0"`
	RequiredCertifications []string         `json:"required_certifications,omitempty"`
	ExperienceRequired     *ExperienceLevel `json:"experience_required,omitempty" validate:"omitempty,oneof=entry intermediate experienced expert"`
	WorkersNeeded          int              `json:"workers_needed" validate:"required,gte=1"`
}

// UpdateJobRequest carries the draft-editable job fields. Nil fields are
// left untouched.
type UpdateJobRequest struct {
	Title                  *string          `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description            *string          `json:"description,omitempty" validate:"omitempty,min=10"`
	RequiredTrade          *string          `json:"required_trade,omitempty" validate:"omitempty,trade"`
	RequiredSkills         []string         `json:"required_skills,omitempty"`
	PayRateMin             *float64         `json:"pay_rate_min,omitempty" validate:"omitempty,gt=0"`
	PayRateMax             *float64         `json:"pay_rate_max,omitempty" validate:"omitempty,gt=0"`
	PayAmount              *float64         `json:"pay_amount,omitempty" validate:"omitempty,gt=0"`
	Location               *Coordinate      `json:"location,omitempty" validate:"omitempty,coordinate"`
	StartDate              *time.Time       `json:"start_date,omitempty"`
	DurationWeeks          *int             `json:"duration_weeks,omitempty" validate:"omitempty,gt=0"`
	RequiredCertifications []string         `json:"required_certifications,omitempty"`
	ExperienceRequired     *ExperienceLevel `json:"experience_required,omitempty" validate:"omitempty,oneof=entry intermediate experienced expert"`
	WorkersNeeded          *int             `json:"workers_needed,omitempty" validate:"omitempty,gte=1"`
}

type CreateApplicationRequest struct {
	JobId       uuid.UUID `json:"job_id" validate:"required"`
	CoverLetter *string   `json:"cover_letter,omitempty" validate:"omitempty,max=2000"`
}

type UpdateApplicationStatusRequest struct {
	Status ApplicationStatus `json:"status" validate:"required,oneof=viewed shortlisted accepted rejected"`
}

type CreateWorkerProfileRequest struct {
	FirstName         string           `json:"first_name" validate:"required,max=100"`
	LastName          string           `json:"last_name" validate:"required,max=100"`
	PrimaryTrade      *string          `json:"primary_trade,omitempty" validate:"omitempty,trade"`
	ExperienceLevel   *ExperienceLevel `json:"experience_level,omitempty" validate:"omitempty,oneof=entry intermediate experienced expert"`
	YearsExperience   *int             `json:"years_experience,omitempty" validate:"omitempty,gte=0"`
	Bio               *string          `json:"bio,omitempty" validate:"omitempty,max=2000"`
	HourlyRateMin     *float64         `json:"hourly_rate_min,omitempty" validate:"omitempty,gt=0"`
	HourlyRateMax     *float64         `json:"hourly_rate_max,omitempty" validate:"omitempty,gt=0"`
	WillingToTravel   bool             `json:"willing_to_travel"`
	HasOwnTools       bool             `json:"has_own_tools"`
	HasTransportation bool             `json:"has_transportation"`
	PreferredLocation *Coordinate      `json:"preferred_work_location,omitempty" validate:"omitempty,coordinate"`
	WorkRadiusKm      float64          `json:"work_radius_km" validate:"gte=0"`
}

// ReplaceWorkerSkillsRequest swaps the worker's whole skill set; sending an
// empty list clears it.
type ReplaceWorkerSkillsRequest struct {
	Skills []WorkerSkillEntry `json:"skills" validate:"dive"`
}

type WorkerSkillEntry struct {
	SkillName        string           `json:"skill_name" validate:"required,max=100"`
	ProficiencyLevel ProficiencyLevel `json:"proficiency_level" validate:"required,oneof=beginner intermediate advanced expert"`
}

type CreateCertificationRequest struct {
	Name                string     `json:"certification_name" validate:"required,max=200"`
	IssuingOrganization *string    `json:"issuing_organization,omitempty" validate:"omitempty,max=200"`
	IssueDate           *time.Time `json:"issue_date,omitempty"`
	ExpiryDate          *time.Time `json:"expiry_date,omitempty"`
	CertificationNumber *string    `json:"certification_number,omitempty" validate:"omitempty,max=100"`
}

type CreateWorkHistoryRequest struct {
	CompanyName   string     `json:"company_name" validate:"required,max=200"`
	PositionTitle string     `json:"position_title" validate:"required,max=200"`
	StartDate     time.Time  `json:"start_date" validate:"required"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	IsCurrent     bool       `json:"is_current"`
	Description   *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
}

type CreateEmployerProfileRequest struct {
	CompanyName     string      `json:"company_name" validate:"required,max=200"`
	BusinessType    *string     `json:"business_type,omitempty"`
	CompanySize     *string     `json:"company_size,omitempty" validate:"omitempty,oneof=1-10 11-50 51-200 201-500 500+"`
	Description     *string     `json:"description,omitempty" validate:"omitempty,max=2000"`
	Website         *string     `json:"website,omitempty" validate:"omitempty,url"`
	PrimaryLocation *Coordinate `json:"primary_location,omitempty" validate:"omitempty,coordinate"`
	ServiceRadiusKm float64     `json:"service_radius_km" validate:"gte=0"`
	LicenseNumber   *string     `json:"license_number,omitempty"`
}

// Error is the standard error envelope returned by the API.
type Error struct {
	Message   string  `json:"message"`
	RequestId *string `json:"request_id,omitempty"`
}
