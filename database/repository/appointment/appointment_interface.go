package appointmentRepo

import (
	"context"
	"errors"

	"medicore/models"
)

// ErrSlotTaken is returned by ReserveSlot when the reservation document for
// the requested slot key already exists. Exactly one of N concurrent
// reservation attempts for the same key can avoid it.
var ErrSlotTaken = errors.New("slot reservation already exists")

// AppointmentRepository persists appointments and their slot reservations.
//
// ReserveSlot and ReleaseSlot are the only operations that touch the
// reservation collection, and both run as a single Mongo transaction so the
// appointment and its occupancy marker can never diverge.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	ConfirmedForDoctorDate(ctx context.Context, doctorID, date string) ([]models.Appointment, error)
	ConfirmedForPatientDoctorDate(ctx context.Context, doctorID, date, patientID string) (*models.Appointment, error)
	ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error)

	// ReserveSlot atomically creates the appointment together with the slot
	// reservation keyed by SlotKey(doctorId, date, time). Returns ErrSlotTaken
	// if the slot is already reserved; no appointment is created in that case.
	ReserveSlot(ctx context.Context, appt *models.Appointment) error

	// ReleaseSlot atomically moves the appointment to newStatus (cancelled or
	// completed) and deletes its slot reservation, freeing the slot.
	ReleaseSlot(ctx context.Context, appointmentID, newStatus string) error
}
