package ports

import (
	"context"
	"time"

	"github.com/davsiu2102/clinical-records-api/internal/core/domain"
)

// --- Service inputs ---

type ConditionInput struct {
	Title       string
	Description string
}

type CreatePatientInput struct {
	FirstName string
	LastName  string
	BirthDate time.Time
	Sex       domain.Sex
	Allergies []ConditionInput
	Diseases  []ConditionInput
}

// --- Service results ---

type ConditionItem struct {
	Title       string
	Description string
}

// PatientDetail is the service-level view of a patient. Allergies and
// Diseases are always non-nil.
type PatientDetail struct {
	ID        int64
	FirstName string
	LastName  string
	BirthDate time.Time
	Sex       domain.Sex
	Allergies []ConditionItem
	Diseases  []ConditionItem
}

type PatientService interface {
	CreatePatient(ctx context.Context, input CreatePatientInput) (*PatientDetail, error)
	ListPatients(ctx context.Context) ([]PatientDetail, error)
}
