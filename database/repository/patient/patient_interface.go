package patientRepo

import (
	"context"

	"medicore/models"
)

// PatientRepository is the patient directory consumed by the scheduling core.
type PatientRepository interface {
	GetByID(ctx context.Context, id string) (*models.Patient, error)
	// GetByPhone tries every historically-used phone field; first match wins.
	GetByPhone(ctx context.Context, phone string) (*models.Patient, error)
}
