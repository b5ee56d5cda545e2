package scheduling

import (
	"context"
	"fmt"
	"time"

	appointmentRepo "medicore/database/repository/appointment"
	"medicore/models"
)

// AvailabilityResolver computes the four slot partitions for one doctor-day.
// The result is advisory: it drives UI styling and chat messages, never the
// race-free reservation itself.
type AvailabilityResolver struct {
	Appointments appointmentRepo.AppointmentRepository

	// Now is injectable for the past-slot check; defaults to time.Now.
	Now func() time.Time
}

func (r *AvailabilityResolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Resolve partitions the day's slots into all/booked/past/available and, when
// patientID is given, attaches the duplicate-booking advisory.
func (r *AvailabilityResolver) Resolve(ctx context.Context, doctor models.Doctor, date, patientID string) (*models.DayAvailability, error) {
	allSlots, err := SlotsForDay(doctor, date)
	if err != nil {
		return nil, err
	}

	result := &models.DayAvailability{
		DoctorID: doctor.ID,
		Date:     date,
		AllSlots: allSlots,
	}
	if len(allSlots) == 0 {
		return r.attachDuplicate(ctx, doctor.ID, date, patientID, result)
	}

	confirmed, err := r.Appointments.ConfirmedForDoctorDate(ctx, doctor.ID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load confirmed appointments: %w", err)
	}

	// Membership test only. An appointment whose time is no longer in the
	// schedule (changed after booking) is ignored here; its slot key still
	// guards the transaction layer.
	bookedTimes := make(map[string]bool, len(confirmed))
	for _, appt := range confirmed {
		bookedTimes[appt.AppointmentTime] = true
	}

	now := r.now()
	pastTimes := make(map[string]bool)
	for _, slot := range allSlots {
		instant, err := SlotInstant(date, slot)
		if err != nil {
			continue
		}
		// A slot at or before the current instant is past; future dates never are.
		if !instant.After(now) {
			pastTimes[slot] = true
		}
	}

	for _, slot := range allSlots {
		booked := bookedTimes[slot]
		past := pastTimes[slot]
		if booked {
			result.BookedSlots = append(result.BookedSlots, slot)
		}
		if past {
			result.PastSlots = append(result.PastSlots, slot)
		}
		if !booked && !past {
			result.AvailableSlots = append(result.AvailableSlots, slot)
		}
	}

	return r.attachDuplicate(ctx, doctor.ID, date, patientID, result)
}

func (r *AvailabilityResolver) attachDuplicate(ctx context.Context, doctorID, date, patientID string, result *models.DayAvailability) (*models.DayAvailability, error) {
	if patientID == "" {
		return result, nil
	}
	existing, err := r.Appointments.ConfirmedForPatientDoctorDate(ctx, doctorID, date, patientID)
	if err != nil {
		return nil, fmt.Errorf("duplicate-booking check failed: %w", err)
	}
	if existing != nil {
		result.HasExistingAppointment = true
		result.ExistingAppointmentAt = existing.AppointmentTime
	}
	return result, nil
}
