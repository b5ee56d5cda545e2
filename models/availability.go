package models

// DayAvailability partitions one doctor-day into the four slot sets the web
// form renders with different styling and the chat flow narrates. Slots are
// canonical "HH:MM" strings in chronological order.
type DayAvailability struct {
	DoctorID       string   `json:"doctorId"`
	Date           string   `json:"date"`
	AllSlots       []string `json:"allSlots"`
	BookedSlots    []string `json:"bookedSlots"`
	PastSlots      []string `json:"pastSlots"`
	AvailableSlots []string `json:"availableSlots"`

	// Duplicate-booking advisory: set when the requesting patient already
	// holds a confirmed appointment with this doctor on this date. Advisory
	// only, never an availability constraint.
	HasExistingAppointment bool   `json:"hasExistingAppointment,omitempty"`
	ExistingAppointmentAt  string `json:"existingAppointmentAt,omitempty"`
}
