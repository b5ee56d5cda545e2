package models

// Doctor statuses. Only active doctors are schedulable.
const (
	DoctorStatusActive   = "active"
	DoctorStatusPending  = "pending"
	DoctorStatusInactive = "inactive"
)

// DefaultSlotGranularityMinutes is the spacing between bookable slot start times.
// Fixed at 15 minutes across the system.
const DefaultSlotGranularityMinutes = 15

// VisitingWindow is a single start/end window within a weekday, both in
// canonical "HH:MM" 24-hour form.
type VisitingWindow struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// DaySchedule holds a doctor's recurring availability for one weekday.
type DaySchedule struct {
	IsAvailable bool             `bson:"isAvailable" json:"isAvailable"`
	Windows     []VisitingWindow `bson:"windows" json:"windows"`
}

// BlockedDateRange marks an inclusive range of calendar dates ("YYYY-MM-DD")
// on which the doctor takes no appointments regardless of weekday schedule.
type BlockedDateRange struct {
	From   string `bson:"from" json:"from"`
	To     string `bson:"to" json:"to"`
	Reason string `bson:"reason,omitempty" json:"reason,omitempty"`
}

// Doctor represents a doctor profile. This service only reads it; the profile
// editor owns all mutations, including the weekly visiting hours.
type Doctor struct {
	ID                     string                 `bson:"id" json:"id"`
	FirstName              string                 `bson:"firstName" json:"firstName"`
	LastName               string                 `bson:"lastName" json:"lastName"`
	Specialization         string                 `bson:"specialization,omitempty" json:"specialization,omitempty"`
	Status                 string                 `bson:"status" json:"status"`
	Phone                  string                 `bson:"phone,omitempty" json:"phone,omitempty"`
	Email                  string                 `bson:"email,omitempty" json:"email,omitempty"`
	WeeklyVisitingHours    map[string]DaySchedule `bson:"weeklyVisitingHours" json:"weeklyVisitingHours"` // keyed by weekday name, e.g. "Monday"
	BlockedDates           []BlockedDateRange     `bson:"blockedDates,omitempty" json:"blockedDates,omitempty"`
	SlotGranularityMinutes int                    `bson:"slotGranularityMinutes,omitempty" json:"slotGranularityMinutes,omitempty"`
	ConsultationFee        float64                `bson:"consultationFee,omitempty" json:"consultationFee,omitempty"`
}

// FullName returns "First Last" as presented in chat doctor lists.
func (d Doctor) FullName() string {
	return d.FirstName + " " + d.LastName
}

// Granularity returns the configured slot spacing, falling back to the
// system-wide default when the profile carries none.
func (d Doctor) Granularity() int {
	if d.SlotGranularityMinutes > 0 {
		return d.SlotGranularityMinutes
	}
	return DefaultSlotGranularityMinutes
}

// DoctorDTO is the trimmed view returned by the directory endpoints and
// presented in chat doctor lists.
type DoctorDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization,omitempty"`
}

func ToDoctorDTO(d Doctor) DoctorDTO {
	return DoctorDTO{
		ID:             d.ID,
		Name:           d.FullName(),
		Specialization: d.Specialization,
	}
}
