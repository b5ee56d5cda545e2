package notification

import (
	"context"
	"fmt"

	patientRepo "medicore/database/repository/patient"
	"medicore/utils"

	"firebase.google.com/go/v4/messaging"
)

// NotificationService defines methods for sending FCM pushes. Delivery is
// best-effort; callers treat failures as logged-but-non-fatal.
type NotificationService interface {
	SendPatientPush(ctx context.Context, patientID, title, body string, data map[string]string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Patients patientRepo.PatientRepository
}

// SendPatientPush looks up a patient's FCM token and sends a push.
func (s *DefaultNotificationService) SendPatientPush(
	ctx context.Context,
	patientID, title, body string,
	data map[string]string,
) error {
	p, err := s.Patients.GetByID(ctx, patientID)
	if err != nil {
		return fmt.Errorf("SendPatientPush: could not find patient %s: %w", patientID, err)
	}
	if p == nil || p.FCMToken == "" {
		return fmt.Errorf("SendPatientPush: patient %s has no FCM token", patientID)
	}

	msg := &messaging.Message{
		Token: p.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendPatientPush: failed to send FCM message: %w", err)
	}
	return nil
}
