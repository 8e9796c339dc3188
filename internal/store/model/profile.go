package model

import (
	"time"

	"github.com/google/uuid"

	api "github.com/crewup/crewup-api/api/v1"
)

type WorkerProfile struct {
	ID                uuid.UUID `gorm:"primaryKey;column:id;type:VARCHAR(255);"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	UserID            uuid.UUID `gorm:"not null;uniqueIndex:worker_profiles_user_id_key;type:VARCHAR(255)"`
	FirstName         string    `gorm:"not null;type:VARCHAR(100)"`
	LastName          string    `gorm:"not null;type:VARCHAR(100)"`
	ProfilePhotoURL   *string
	PrimaryTrade      *string `gorm:"type:VARCHAR(100)"`
	ExperienceLevel   *string `gorm:"type:VARCHAR(50)"`
	YearsExperience   *int
	Bio               *string
	HourlyRateMin     *float64
	HourlyRateMax     *float64
	WillingToTravel   bool `gorm:"not null;default:false"`
	HasOwnTools       bool `gorm:"not null;default:false"`
	HasTransportation bool `gorm:"not null;default:false"`
	Latitude          *float64
	Longitude         *float64
	Address           *string
	WorkRadiusKm      float64         `gorm:"not null;default:0"`
	Skills            []WorkerSkill   `gorm:"foreignKey:WorkerProfileID;references:ID;constraint:OnDelete:CASCADE;"`
	Certifications    []Certification `gorm:"foreignKey:WorkerProfileID;references:ID;constraint:OnDelete:CASCADE;"`
	WorkHistory       []WorkHistory   `gorm:"foreignKey:WorkerProfileID;references:ID;constraint:OnDelete:CASCADE;"`
}

type EmployerProfile struct {
	ID                uuid.UUID `gorm:"primaryKey;column:id;type:VARCHAR(255);"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	UserID            uuid.UUID `gorm:"not null;uniqueIndex:employer_profiles_user_id_key;type:VARCHAR(255)"`
	CompanyName       string    `gorm:"not null;type:VARCHAR(200)"`
	CompanyLogoURL    *string
	BusinessType      *string `gorm:"type:VARCHAR(100)"`
	CompanySize       *string `gorm:"type:VARCHAR(20)"`
	Description       *string
	Website           *string
	Latitude          *float64
	Longitude         *float64
	Address           *string
	ServiceRadiusKm   float64 `gorm:"not null;default:0"`
	LicenseNumber     *string
	InsuranceVerified bool `gorm:"not null;default:false"`
}

func (w *WorkerProfile) Location() *api.Coordinate {
	if w.Latitude == nil || w.Longitude == nil {
		return nil
	}
	return &api.Coordinate{Latitude: *w.Latitude, Longitude: *w.Longitude, Address: w.Address}
}

func (w *WorkerProfile) SetLocation(c *api.Coordinate) {
	if c == nil {
		w.Latitude, w.Longitude, w.Address = nil, nil, nil
		return
	}
	lat, lon := c.Latitude, c.Longitude
	w.Latitude, w.Longitude, w.Address = &lat, &lon, c.Address
}

func (e *EmployerProfile) Location() *api.Coordinate {
	if e.Latitude == nil || e.Longitude == nil {
		return nil
	}
	return &api.Coordinate{Latitude: *e.Latitude, Longitude: *e.Longitude, Address: e.Address}
}

func (e *EmployerProfile) SetLocation(c *api.Coordinate) {
	if c == nil {
		e.Latitude, e.Longitude, e.Address = nil, nil, nil
		return
	}
	lat, lon := c.Latitude, c.Longitude
	e.Latitude, e.Longitude, e.Address = &lat, &lon, c.Address
}

func (w WorkerProfile) ToApiResource() api.WorkerProfile {
	resource := api.WorkerProfile{
		Id:                w.ID,
		UserId:            w.UserID,
		FirstName:         w.FirstName,
		LastName:          w.LastName,
		ProfilePhotoUrl:   w.ProfilePhotoURL,
		PrimaryTrade:      w.PrimaryTrade,
		YearsExperience:   w.YearsExperience,
		Bio:               w.Bio,
		HourlyRateMin:     w.HourlyRateMin,
		HourlyRateMax:     w.HourlyRateMax,
		WillingToTravel:   w.WillingToTravel,
		HasOwnTools:       w.HasOwnTools,
		HasTransportation: w.HasTransportation,
		PreferredLocation: w.Location(),
		WorkRadiusKm:      w.WorkRadiusKm,
		Skills:            make([]api.WorkerSkill, 0, len(w.Skills)),
		Certifications:    make([]api.Certification, 0, len(w.Certifications)),
		WorkHistory:       make([]api.WorkHistory, 0, len(w.WorkHistory)),
		CreatedAt:         w.CreatedAt,
		UpdatedAt:         w.UpdatedAt,
	}
	if w.ExperienceLevel != nil {
		lvl := api.ExperienceLevel(*w.ExperienceLevel)
		resource.ExperienceLevel = &lvl
	}
	for _, s := range w.Skills {
		resource.Skills = append(resource.Skills, s.ToApiResource())
	}
	for _, c := range w.Certifications {
		resource.Certifications = append(resource.Certifications, c.ToApiResource())
	}
	for _, h := range w.WorkHistory {
		resource.WorkHistory = append(resource.WorkHistory, h.ToApiResource())
	}
	return resource
}

func (e EmployerProfile) ToApiResource() api.EmployerProfile {
	return api.EmployerProfile{
		Id:                e.ID,
		UserId:            e.UserID,
		CompanyName:       e.CompanyName,
		CompanyLogoUrl:    e.CompanyLogoURL,
		BusinessType:      e.BusinessType,
		CompanySize:       e.CompanySize,
		Description:       e.Description,
		Website:           e.Website,
		PrimaryLocation:   e.Location(),
		ServiceRadiusKm:   e.ServiceRadiusKm,
		LicenseNumber:     e.LicenseNumber,
		InsuranceVerified: e.InsuranceVerified,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}
