package models

// BookAppointmentRequest is the web-form booking payload. Time is accepted in
// any representation NormalizeTime understands; it is canonicalized exactly
// once at the service boundary.
type BookAppointmentRequest struct {
	DoctorID  string      `json:"doctorId" binding:"required"`
	PatientID string      `json:"patientId" binding:"required"`
	Date      string      `json:"date" binding:"required"` // "YYYY-MM-DD"
	Time      string      `json:"time" binding:"required"`
	Reason    string      `json:"reason,omitempty"`
	Payment   PaymentInfo `json:"payment,omitempty"`
}
