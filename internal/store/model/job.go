package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	api "github.com/crewup/crewup-api/api/v1"
)

type Job struct {
	ID                     uuid.UUID `gorm:"primaryKey;column:id;type:VARCHAR(255);"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
	EmployerID             uuid.UUID `gorm:"not null;type:VARCHAR(255);index:jobs_employer_id_idx"`
	JobType                string    `gorm:"not null;type:VARCHAR(50)"`
	Title                  string    `gorm:"not null"`
	Description            string    `gorm:"not null"`
	RequiredTrade          *string   `gorm:"type:VARCHAR(100)"`
	RequiredSkills         *JSONField[[]string]
	PayType                string `gorm:"not null;type:VARCHAR(50)"`
	PayRateMin             *float64
	PayRateMax             *float64
	PayAmount              *float64
	Latitude               *float64
	Longitude              *float64
	Address                *string
	StartDate              *time.Time
	DurationWeeks          *int
	RequiredCertifications *JSONField[[]string]
	ExperienceRequired     *string `gorm:"type:VARCHAR(50)"`
	WorkersNeeded          int     `gorm:"not null;default:1"`
	Status                 string  `gorm:"not null;type:VARCHAR(50);index:jobs_status_idx"`
	ApplicationsCount      int     `gorm:"not null;default:0"`
	ViewsCount             int     `gorm:"not null;default:0"`
	ExpiresAt              *time.Time
	Applications           []Application `gorm:"foreignKey:JobID;references:ID;constraint:OnDelete:CASCADE;"`
}

type JobList []Job

func NewJobFromID(id uuid.UUID) *Job {
	return &Job{ID: id}
}

func (j Job) String() string {
	val, _ := json.Marshal(j)
	return string(val)
}

// Location rebuilds the boundary coordinate from the flattened columns.
// Returns nil when the posting has no coordinates.
func (j *Job) Location() *api.Coordinate {
	if j.Latitude == nil || j.Longitude == nil {
		return nil
	}
	return &api.Coordinate{
		Latitude:  *j.Latitude,
		Longitude: *j.Longitude,
		Address:   j.Address,
	}
}

// SetLocation flattens the coordinate into the persisted columns.
func (j *Job) SetLocation(c *api.Coordinate) {
	if c == nil {
		j.Latitude, j.Longitude, j.Address = nil, nil, nil
		return
	}
	lat, lon := c.Latitude, c.Longitude
	j.Latitude, j.Longitude, j.Address = &lat, &lon, c.Address
}

func (j Job) ToApiResource() api.JobPosting {
	resource := api.JobPosting{
		Id:                j.ID,
		EmployerId:        j.EmployerID,
		JobType:           api.JobType(j.JobType),
		Title:             j.Title,
		Description:       j.Description,
		RequiredTrade:     j.RequiredTrade,
		PayType:           api.PayType(j.PayType),
		PayRateMin:        j.PayRateMin,
		PayRateMax:        j.PayRateMax,
		PayAmount:         j.PayAmount,
		Location:          j.Location(),
		StartDate:         j.StartDate,
		DurationWeeks:     j.DurationWeeks,
		WorkersNeeded:     j.WorkersNeeded,
		Status:            api.JobStatus(j.Status),
		ApplicationsCount: j.ApplicationsCount,
		ViewsCount:        j.ViewsCount,
		CreatedAt:         j.CreatedAt,
		UpdatedAt:         j.UpdatedAt,
		ExpiresAt:         j.ExpiresAt,
	}
	if j.RequiredSkills != nil {
		resource.RequiredSkills = j.RequiredSkills.Data
	}
	if j.RequiredCertifications != nil {
		resource.RequiredCertifications = j.RequiredCertifications.Data
	}
	if j.ExperienceRequired != nil {
		lvl := api.ExperienceLevel(*j.ExperienceRequired)
		resource.ExperienceRequired = &lvl
	}
	return resource
}

func (jl JobList) ToApiResource() api.JobPostingList {
	jobList := make([]api.JobPosting, 0, len(jl))
	for _, j := range jl {
		jobList = append(jobList, j.ToApiResource())
	}
	return jobList
}
