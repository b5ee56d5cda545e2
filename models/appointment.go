package models

import "time"

// Appointment statuses. Cancelled and completed appointments free their slot.
const (
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
)

// PaymentInfo records how a booking was paid for. Amount and method only;
// processing happens elsewhere.
type PaymentInfo struct {
	Amount float64 `bson:"amount,omitempty" json:"amount,omitempty"`
	Method string  `bson:"method,omitempty" json:"method,omitempty"`
}

// Appointment is a confirmed, completed or cancelled booking of one slot.
//
// Invariant: for a given (doctorId, date, time) at most one appointment has
// status "confirmed". The invariant is enforced by the SlotReservation
// document written in the same transaction, never by querying this collection.
type Appointment struct {
	ID              string      `bson:"id" json:"id"`
	DoctorID        string      `bson:"doctorId" json:"doctorId"`
	PatientID       string      `bson:"patientId" json:"patientId"`
	AppointmentDate string      `bson:"appointmentDate" json:"appointmentDate"` // "YYYY-MM-DD"
	AppointmentTime string      `bson:"appointmentTime" json:"appointmentTime"` // canonical "HH:MM"
	Status          string      `bson:"status" json:"status"`
	Reason          string      `bson:"reason,omitempty" json:"reason,omitempty"`
	Notes           string      `bson:"notes,omitempty" json:"notes,omitempty"`
	Payment         PaymentInfo `bson:"payment,omitempty" json:"payment,omitempty"`
	BookedVia       string      `bson:"bookedVia,omitempty" json:"bookedVia,omitempty"` // "web", "meta", "twilio"
	CreatedAt       time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// SlotReservation is the occupancy marker for one (doctor, date, time) triple.
// Its _id is the deterministic slot key, so inserting it inside a transaction
// doubles as the uniqueness constraint: the document exists iff a confirmed
// appointment holds the slot.
type SlotReservation struct {
	SlotKey       string    `bson:"_id" json:"slotKey"`
	DoctorID      string    `bson:"doctorId" json:"doctorId"`
	Date          string    `bson:"date" json:"date"`
	Time          string    `bson:"time" json:"time"`
	AppointmentID string    `bson:"appointmentId" json:"appointmentId"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// FollowUpRequest is filed by a doctor after a visit; the chat re-checkup
// trigger resolves the patient's most recent pending one to pre-select the
// original doctor.
type FollowUpRequest struct {
	ID            string    `bson:"id" json:"id"`
	PatientID     string    `bson:"patientId" json:"patientId"`
	DoctorID      string    `bson:"doctorId" json:"doctorId"`
	AppointmentID string    `bson:"appointmentId,omitempty" json:"appointmentId,omitempty"`
	Status        string    `bson:"status" json:"status"` // "pending" until the follow-up is booked
	Notes         string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

const FollowUpStatusPending = "pending"
const FollowUpStatusBooked = "booked"
