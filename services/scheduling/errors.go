package scheduling

import "errors"

// Scheduling error taxonomy. Handlers and the chat flow recover these locally
// and translate them into user-facing messages; only infrastructure failures
// propagate past them.
var (
	ErrInvalidTimeFormat = errors.New("invalid time format")
	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrPatientNotFound   = errors.New("patient not found")
	ErrNoAvailableSlots  = errors.New("no available slots")
	ErrSlotAlreadyBooked = errors.New("slot already booked")
)
