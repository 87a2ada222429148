package ports

import (
	"context"

	"github.com/davsiu2102/clinical-records-api/internal/core/domain"
)

// PatientRepository defines the interface for patient persistence.
// Create persists the patient together with its allergies, diseases and the
// link rows in a single transaction: either everything commits or nothing does.
type PatientRepository interface {
	Create(ctx context.Context, patient *domain.Patient) (*domain.Patient, error)
	List(ctx context.Context) ([]domain.Patient, error)
}
