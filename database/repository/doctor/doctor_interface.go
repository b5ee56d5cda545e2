package doctorRepo

import (
	"context"

	"medicore/models"
)

// DoctorRepository is the read-only doctor directory consumed by the
// scheduling core. Profile mutations belong to the doctor portal, not here.
type DoctorRepository interface {
	GetByID(ctx context.Context, id string) (*models.Doctor, error)
	ListActive(ctx context.Context) ([]models.Doctor, error)
}
