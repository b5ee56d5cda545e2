package models

import "time"

// Conversation states for the chat booking flow. A session is created on the
// first recognized trigger phrase and deleted on completion, cancellation or
// TTL expiry; there is at most one live session per phone number.
const (
	SessionStateSelectingDoctor = "selecting_doctor"
	SessionStateSelectingDate   = "selecting_date"
	SessionStateSelectingTime   = "selecting_time"
	SessionStateConfirming      = "confirming"
)

// DoctorOption is one entry of the numbered doctor list presented to the chat
// user; stored on the session so a later ordinal reply can be resolved.
type DoctorOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BookingSession is the persisted conversation state for one phone number.
type BookingSession struct {
	Phone              string         `json:"phone"`
	State              string         `json:"state"`
	PatientID          string         `json:"patientId"`
	PatientName        string         `json:"patientName,omitempty"`
	DoctorOptions      []DoctorOption `json:"doctorOptions,omitempty"`
	DateOptions        []string       `json:"dateOptions,omitempty"`
	TimeOptions        []string       `json:"timeOptions,omitempty"`
	SelectedDoctorID   string         `json:"selectedDoctorId,omitempty"`
	SelectedDoctorName string         `json:"selectedDoctorName,omitempty"`
	SelectedDate       string         `json:"selectedDate,omitempty"`
	SelectedTime       string         `json:"selectedTime,omitempty"`
	IsRecheckup        bool           `json:"isRecheckup,omitempty"`
	FollowUpID         string         `json:"followUpId,omitempty"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}
