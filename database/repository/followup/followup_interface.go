package followupRepo

import (
	"context"

	"medicore/models"
)

// FollowUpRepository stores doctor-filed follow-up requests.
type FollowUpRepository interface {
	Create(ctx context.Context, req *models.FollowUpRequest) error
	// LatestPendingForPatient returns the most recent pending request, or nil.
	LatestPendingForPatient(ctx context.Context, patientID string) (*models.FollowUpRequest, error)
	MarkBooked(ctx context.Context, id string) error
}
