// Package v1 holds the JSON-facing types of the CrewUp marketplace API.
package v1

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusDraft   JobStatus = "draft"
	JobStatusActive  JobStatus = "active"
	JobStatusFilled  JobStatus = "filled"
	JobStatusClosed  JobStatus = "closed"
	JobStatusExpired JobStatus = "expired"
)

type JobType string

const (
	JobTypeStandard JobType = "standard"
	JobTypeDayLabor JobType = "day_labor"
)

type PayType string

const (
	PayTypeHourly     PayType = "hourly"
	PayTypeSalary     PayType = "salary"
	PayTypePerProject PayType = "per_project"
)

type ExperienceLevel string

const (
	ExperienceEntry        ExperienceLevel = "entry"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceExperienced  ExperienceLevel = "experienced"
	ExperienceExpert       ExperienceLevel = "expert"
)

type ApplicationStatus string

const (
	ApplicationStatusPending     ApplicationStatus = "pending"
	ApplicationStatusViewed      ApplicationStatus = "viewed"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusAccepted    ApplicationStatus = "accepted"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
	ApplicationStatusWithdrawn   ApplicationStatus = "withdrawn"
)

// Coordinate is the boundary value type for geographic points. The
// persistence adapter owns any conversion to the database representation.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   *string `json:"address,omitempty"`
}

type JobPosting struct {
	Id                     uuid.UUID        `json:"id"`
	EmployerId             uuid.UUID        `json:"employer_id"`
	JobType                JobType          `json:"job_type"`
	Title                  string           `json:"title"`
	Description            string           `json:"description"`
	RequiredTrade          *string          `json:"required_trade,omitempty"`
	RequiredSkills         []string         `json:"required_skills"`
	PayType                PayType          `json:"pay_type"`
	PayRateMin             *float64         `json:"pay_rate_min,omitempty"`
	PayRateMax             *float64         `json:"pay_rate_max,omitempty"`
	PayAmount              *float64         `json:"pay_amount,omitempty"`
	Location               *Coordinate      `json:"location,omitempty"`
	StartDate              *time.Time       `json:"start_date,omitempty"`
	DurationWeeks          *int             `json:"duration_weeks,omitempty"`
	RequiredCertifications []string         `json:"required_certifications"`
	ExperienceRequired     *ExperienceLevel `json:"experience_required,omitempty"`
	WorkersNeeded          int              `json:"workers_needed"`
	Status                 JobStatus        `json:"status"`
	ApplicationsCount      int              `json:"applications_count"`
	ViewsCount             int              `json:"views_count"`
	CreatedAt              time.Time        `json:"created_at"`
	UpdatedAt              time.Time        `json:"updated_at"`
	ExpiresAt              *time.Time       `json:"expires_at,omitempty"`
}

type JobPostingList []JobPosting

type Application struct {
	Id              uuid.UUID         `json:"id"`
	JobId           uuid.UUID         `json:"job_id"`
	WorkerId        uuid.UUID         `json:"worker_id"`
	Status          ApplicationStatus `json:"status"`
	CoverLetter     *string           `json:"cover_letter,omitempty"`
	IsPriority      bool              `json:"is_priority"`
	AppliedAt       time.Time         `json:"applied_at"`
	ViewedAt        *time.Time        `json:"viewed_at,omitempty"`
	StatusUpdatedAt *time.Time        `json:"status_updated_at,omitempty"`
}

type ApplicationList []Application

type ProficiencyLevel string

const (
	ProficiencyBeginner     ProficiencyLevel = "beginner"
	ProficiencyIntermediate ProficiencyLevel = "intermediate"
	ProficiencyAdvanced     ProficiencyLevel = "advanced"
	ProficiencyExpert       ProficiencyLevel = "expert"
)

type WorkerSkill struct {
	SkillName        string           `json:"skill_name"`
	ProficiencyLevel ProficiencyLevel `json:"proficiency_level"`
}

type Certification struct {
	Id                  uuid.UUID  `json:"id"`
	Name                string     `json:"certification_name"`
	IssuingOrganization *string    `json:"issuing_organization,omitempty"`
	IssueDate           *time.Time `json:"issue_date,omitempty"`
	ExpiryDate          *time.Time `json:"expiry_date,omitempty"`
	CertificationNumber *string    `json:"certification_number,omitempty"`
	Verified            bool       `json:"verified"`
}

type WorkHistory struct {
	Id            uuid.UUID  `json:"id"`
	CompanyName   string     `json:"company_name"`
	PositionTitle string     `json:"position_title"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	IsCurrent     bool       `json:"is_current"`
	Description   *string    `json:"description,omitempty"`
}

type WorkerProfile struct {
	Id                uuid.UUID        `json:"id"`
	UserId            uuid.UUID        `json:"user_id"`
	FirstName         string           `json:"first_name"`
	LastName          string           `json:"last_name"`
	ProfilePhotoUrl   *string          `json:"profile_photo_url,omitempty"`
	PrimaryTrade      *string          `json:"primary_trade,omitempty"`
	ExperienceLevel   *ExperienceLevel `json:"experience_level,omitempty"`
	YearsExperience   *int             `json:"years_experience,omitempty"`
	Bio               *string          `json:"bio,omitempty"`
	HourlyRateMin     *float64         `json:"hourly_rate_min,omitempty"`
	HourlyRateMax     *float64         `json:"hourly_rate_max,omitempty"`
	WillingToTravel   bool             `json:"willing_to_travel"`
	HasOwnTools       bool             `json:"has_own_tools"`
	HasTransportation bool             `json:"has_transportation"`
	PreferredLocation *Coordinate      `json:"preferred_work_location,omitempty"`
	WorkRadiusKm      float64          `json:"work_radius_km"`
	Skills            []WorkerSkill    `json:"skills"`
	Certifications    []Certification  `json:"certifications"`
	WorkHistory       []WorkHistory    `json:"work_history"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

type EmployerProfile struct {
	Id                uuid.UUID   `json:"id"`
	UserId            uuid.UUID   `json:"user_id"`
	CompanyName       string      `json:"company_name"`
	CompanyLogoUrl    *string     `json:"company_logo_url,omitempty"`
	BusinessType      *string     `json:"business_type,omitempty"`
	CompanySize       *string     `json:"company_size,omitempty"`
	Description       *string     `json:"description,omitempty"`
	Website           *string     `json:"website,omitempty"`
	PrimaryLocation   *Coordinate `json:"primary_location,omitempty"`
	ServiceRadiusKm   float64     `json:"service_radius_km"`
	LicenseNumber     *string     `json:"license_number,omitempty"`
	InsuranceVerified bool        `json:"insurance_verified"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}
