package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "medicore/database/repository/appointment"
	doctorRepo "medicore/database/repository/doctor"
	patientRepo "medicore/database/repository/patient"
	"medicore/models"
	"medicore/services/notification"
	"medicore/services/tasks"
	"medicore/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReserveRequest is a fully resolved booking tuple plus descriptive fields.
type ReserveRequest struct {
	DoctorID  string
	PatientID string
	Date      string // "YYYY-MM-DD"
	Time      string // any spelling NormalizeTime accepts
	Reason    string
	Via       string // "web", "meta", "twilio"
	Payment   models.PaymentInfo
}

// BookingEngine is the single write path for appointments.
type BookingEngine interface {
	Reserve(ctx context.Context, req ReserveRequest) (*models.Appointment, error)
	Cancel(ctx context.Context, appointmentID string) error
	Complete(ctx context.Context, appointmentID string) error
}

// DefaultBookingEngine implements BookingEngine on top of the transactional
// appointment repository. The store transaction is the sole double-booking
// guard; resolver output is never trusted here.
type DefaultBookingEngine struct {
	Doctors      doctorRepo.DoctorRepository
	Patients     patientRepo.PatientRepository
	Appointments appointmentRepo.AppointmentRepository

	// Both optional; booking succeeds without them.
	Notifier  notification.NotificationService
	Reminders *tasks.ReminderScheduler
}

// Reserve validates the tuple, normalizes the time once, and performs the
// atomic check-and-reserve. Exactly one of N concurrent calls for the same
// (doctor, date, time) succeeds; the rest get ErrSlotAlreadyBooked.
func (e *DefaultBookingEngine) Reserve(ctx context.Context, req ReserveRequest) (*models.Appointment, error) {
	logger := utils.GetLogger()

	normalized, err := NormalizeTime(req.Time)
	if err != nil {
		return nil, err
	}

	doctor, err := e.Doctors.GetByID(ctx, req.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("doctor lookup failed: %w", err)
	}
	if doctor == nil || doctor.Status != models.DoctorStatusActive {
		return nil, ErrDoctorNotFound
	}

	patient, err := e.Patients.GetByID(ctx, req.PatientID)
	if err != nil {
		return nil, fmt.Errorf("patient lookup failed: %w", err)
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	now := time.Now()
	appt := &models.Appointment{
		ID:              uuid.New().String(),
		DoctorID:        doctor.ID,
		PatientID:       patient.ID,
		AppointmentDate: req.Date,
		AppointmentTime: normalized,
		Status:          models.AppointmentStatusConfirmed,
		Reason:          req.Reason,
		Payment:         req.Payment,
		BookedVia:       req.Via,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := e.Appointments.ReserveSlot(ctx, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			return nil, ErrSlotAlreadyBooked
		}
		return nil, err
	}

	logger.Info("appointment reserved",
		zap.String("appointmentId", appt.ID),
		zap.String("doctorId", appt.DoctorID),
		zap.String("date", appt.AppointmentDate),
		zap.String("time", appt.AppointmentTime),
		zap.String("via", appt.BookedVia),
	)

	// Post-commit side effects are fire-and-forget: the appointment already
	// exists, delivery failure only loses a courtesy message.
	if e.Notifier != nil {
		title := "Appointment confirmed"
		body := fmt.Sprintf("Your appointment with Dr. %s on %s at %s is confirmed.",
			doctor.FullName(), FormatDate(appt.AppointmentDate), FormatClock(appt.AppointmentTime))
		if err := e.Notifier.SendPatientPush(ctx, patient.ID, title, body, map[string]string{
			"appointmentId": appt.ID,
		}); err != nil {
			logger.Warn("confirmation push failed", zap.String("appointmentId", appt.ID), zap.Error(err))
		}
	}

	if e.Reminders != nil {
		payload := models.ReminderPayload{
			AppointmentID: appt.ID,
			PatientID:     patient.ID,
			DoctorName:    doctor.FullName(),
			Date:          appt.AppointmentDate,
			Time:          appt.AppointmentTime,
		}
		if err := e.Reminders.ScheduleAppointmentReminder(payload); err != nil {
			logger.Warn("reminder scheduling failed", zap.String("appointmentId", appt.ID), zap.Error(err))
		}
	}

	return appt, nil
}

// Cancel frees the slot by moving the appointment to cancelled.
func (e *DefaultBookingEngine) Cancel(ctx context.Context, appointmentID string) error {
	return e.Appointments.ReleaseSlot(ctx, appointmentID, models.AppointmentStatusCancelled)
}

// Complete frees the slot by moving the appointment to completed.
func (e *DefaultBookingEngine) Complete(ctx context.Context, appointmentID string) error {
	return e.Appointments.ReleaseSlot(ctx, appointmentID, models.AppointmentStatusCompleted)
}
