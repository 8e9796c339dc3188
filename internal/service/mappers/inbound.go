package mappers

import (
	"github.com/google/uuid"

	api "github.com/crewup/crewup-api/api/v1"
	"github.com/crewup/crewup-api/internal/store/model"
)

func JobFromApi(id uuid.UUID, employerID uuid.UUID, resource *api.CreateJobRequest) model.Job {
	job := model.Job{
		ID:            id,
		EmployerID:    employerID,
		JobType:       string(resource.JobType),
		Title:         resource.Title,
		Description:   resource.Description,
		RequiredTrade: resource.RequiredTrade,
		PayType:       string(resource.PayType),
		PayRateMin:    resource.PayRateMin,
		PayRateMax:    resource.PayRateMax,
		PayAmount:     resource.PayAmount,
		StartDate:     resource.StartDate,
		DurationWeeks: resource.DurationWeeks,
		WorkersNeeded: resource.WorkersNeeded,
		Status:        string(api.JobStatusDraft),
	}
	job.SetLocation(resource.Location)

	if len(resource.RequiredSkills) > 0 {
		job.RequiredSkills = model.MakeJSONField(resource.RequiredSkills)
	}
	if len(resource.RequiredCertifications) > 0 {
		job.RequiredCertifications = model.MakeJSONField(resource.RequiredCertifications)
	}
	if resource.ExperienceRequired != nil {
		lvl := string(*resource.ExperienceRequired)
		job.ExperienceRequired = &lvl
	}

	return job
}

func UpdateJobFromApi(m *model.Job, resource *api.UpdateJobRequest) *model.Job {
	if resource.Title != nil {
		m.Title = *resource.Title
	}
	if resource.Description != nil {
		m.Description = *resource.Description
	}
	if resource.RequiredTrade != nil {
		m.RequiredTrade = resource.RequiredTrade
	}
	if len(resource.RequiredSkills) > 0 {
		m.RequiredSkills = model.MakeJSONField(resource.RequiredSkills)
	}
	if resource.PayRateMin != nil {
		m.PayRateMin = resource.PayRateMin
	}
	if resource.PayRateMax != nil {
		m.PayRateMax = resource.PayRateMax
	}
	if resource.PayAmount != nil {
		m.PayAmount = resource.PayAmount
	}
	if resource.Location != nil {
		m.SetLocation(resource.Location)
	}
	if resource.StartDate != nil {
		m.StartDate = resource.StartDate
	}
	if resource.DurationWeeks != nil {
		m.DurationWeeks = resource.DurationWeeks
	}
	if len(resource.RequiredCertifications) > 0 {
		m.RequiredCertifications = model.MakeJSONField(resource.RequiredCertifications)
	}
	if resource.ExperienceRequired != nil {
		lvl := string(*resource.ExperienceRequired)
		m.ExperienceRequired = &lvl
	}
	if resource.WorkersNeeded != nil {
		m.WorkersNeeded = *resource.WorkersNeeded
	}
	return m
}

func ApplicationFromApi(id uuid.UUID, workerID uuid.UUID, resource *api.CreateApplicationRequest) model.Application {
	return model.Application{
		ID:          id,
		JobID:       resource.JobId,
		WorkerID:    workerID,
		Status:      string(api.ApplicationStatusPending),
		CoverLetter: resource.CoverLetter,
	}
}

func WorkerProfileFromApi(id uuid.UUID, userID uuid.UUID, resource *api.CreateWorkerProfileRequest) model.WorkerProfile {
	profile := model.WorkerProfile{
		ID:                id,
		UserID:            userID,
		FirstName:         resource.FirstName,
		LastName:          resource.LastName,
		PrimaryTrade:      resource.PrimaryTrade,
		YearsExperience:   resource.YearsExperience,
		Bio:               resource.Bio,
		HourlyRateMin:     resource.HourlyRateMin,
		HourlyRateMax:     resource.HourlyRateMax,
		WillingToTravel:   resource.WillingToTravel,
		HasOwnTools:       resource.HasOwnTools,
		HasTransportation: resource.HasTransportation,
		WorkRadiusKm:      resource.WorkRadiusKm,
	}
	profile.SetLocation(resource.PreferredLocation)

	if resource.ExperienceLevel != nil {
		lvl := string(*resource.ExperienceLevel)
		profile.ExperienceLevel = &lvl
	}

	return profile
}

func EmployerProfileFromApi(id uuid.UUID, userID uuid.UUID, resource *api.CreateEmployerProfileRequest) model.EmployerProfile {
	profile := model.EmployerProfile{
		ID:              id,
		UserID:          userID,
		CompanyName:     resource.CompanyName,
		BusinessType:    resource.BusinessType,
		CompanySize:     resource.CompanySize,
		Description:     resource.Description,
		Website:         resource.Website,
		ServiceRadiusKm: resource.ServiceRadiusKm,
		LicenseNumber:   resource.LicenseNumber,
	}
	profile.SetLocation(resource.PrimaryLocation)

	return profile
}

func WorkerSkillsFromApi(profileID uuid.UUID, entries []api.WorkerSkillEntry) []model.WorkerSkill {
	skills := make([]model.WorkerSkill, 0, len(entries))
	for _, e := range entries {
		skills = append(skills, model.WorkerSkill{
			ID:               uuid.New(),
			WorkerProfileID:  profileID,
			SkillName:        e.SkillName,
			ProficiencyLevel: string(e.ProficiencyLevel),
		})
	}
	return skills
}

func CertificationFromApi(id uuid.UUID, profileID uuid.UUID, resource *api.CreateCertificationRequest) model.Certification {
	return model.Certification{
		ID:                  id,
		WorkerProfileID:     profileID,
		Name:                resource.Name,
		IssuingOrganization: resource.IssuingOrganization,
		IssueDate:           resource.IssueDate,
		ExpiryDate:          resource.ExpiryDate,
		CertificationNumber: resource.CertificationNumber,
	}
}

func WorkHistoryFromApi(id uuid.UUID, profileID uuid.UUID, resource *api.CreateWorkHistoryRequest) model.WorkHistory {
	return model.WorkHistory{
		ID:              id,
		WorkerProfileID: profileID,
		CompanyName:     resource.CompanyName,
		PositionTitle:   resource.PositionTitle,
		StartDate:       resource.StartDate,
		EndDate:         resource.EndDate,
		IsCurrent:       resource.IsCurrent,
		Description:     resource.Description,
	}
}
