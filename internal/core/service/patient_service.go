package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/davsiu2102/clinical-records-api/internal/core/domain"
	"github.com/davsiu2102/clinical-records-api/internal/core/ports"
)

// PatientService implements patient creation and listing.
type PatientService struct {
	repo   ports.PatientRepository
	logger zerolog.Logger
}

func NewPatientService(repo ports.PatientRepository, logger zerolog.Logger) *PatientService {
	return &PatientService{repo: repo, logger: logger}
}

// CreatePatient stores a patient together with its allergies and diseases.
// The repository guarantees the whole aggregate commits atomically.
func (s *PatientService) CreatePatient(ctx context.Context, input ports.CreatePatientInput) (*ports.PatientDetail, error) {
	if !input.Sex.Valid() {
		return nil, domain.ErrInvalidSex
	}

	patient := &domain.Patient{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		BirthDate: input.BirthDate,
		Sex:       input.Sex,
		Allergies: make([]domain.Allergy, 0, len(input.Allergies)),
		Diseases:  make([]domain.Disease, 0, len(input.Diseases)),
	}
	for _, a := range input.Allergies {
		patient.Allergies = append(patient.Allergies, domain.Allergy{Title: a.Title, Description: a.Description})
	}
	for _, d := range input.Diseases {
		patient.Diseases = append(patient.Diseases, domain.Disease{Title: d.Title, Description: d.Description})
	}

	created, err := s.repo.Create(ctx, patient)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create patient")
		return nil, err
	}

	s.logger.Info().
		Int64("patient_id", created.ID).
		Int("allergies", len(created.Allergies)).
		Int("diseases", len(created.Diseases)).
		Msg("patient created")

	detail := toDetail(created)
	return &detail, nil
}

// ListPatients returns every patient with its related conditions.
func (s *PatientService) ListPatients(ctx context.Context) ([]ports.PatientDetail, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list patients")
		return nil, err
	}

	out := make([]ports.PatientDetail, 0, len(patients))
	for i := range patients {
		out = append(out, toDetail(&patients[i]))
	}
	return out, nil
}

func toDetail(p *domain.Patient) ports.PatientDetail {
	allergies := make([]ports.ConditionItem, 0, len(p.Allergies))
	for _, a := range p.Allergies {
		allergies = append(allergies, ports.ConditionItem{Title: a.Title, Description: a.Description})
	}
	diseases := make([]ports.ConditionItem, 0, len(p.Diseases))
	for _, d := range p.Diseases {
		diseases = append(diseases, ports.ConditionItem{Title: d.Title, Description: d.Description})
	}
	return ports.PatientDetail{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		BirthDate: p.BirthDate,
		Sex:       p.Sex,
		Allergies: allergies,
		Diseases:  diseases,
	}
}
