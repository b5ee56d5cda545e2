package handlers

import (
	"errors"
	"net/http"

	appointmentRepo "medicore/database/repository/appointment"
	doctorRepo "medicore/database/repository/doctor"
	"medicore/models"
	"medicore/services/scheduling"
	"medicore/utils"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler exposes the web booking flow: availability lookup, the
// booking form submit, status transitions and patient listings.
type AppointmentHandler struct {
	Doctors      doctorRepo.DoctorRepository
	Appointments appointmentRepo.AppointmentRepository
	Resolver     *scheduling.AvailabilityResolver
	Engine       scheduling.BookingEngine
}

func NewAppointmentHandler(
	doctors doctorRepo.DoctorRepository,
	appointments appointmentRepo.AppointmentRepository,
	resolver *scheduling.AvailabilityResolver,
	engine scheduling.BookingEngine,
) *AppointmentHandler {
	return &AppointmentHandler{
		Doctors:      doctors,
		Appointments: appointments,
		Resolver:     resolver,
		Engine:       engine,
	}
}

// GetAvailability returns the four slot partitions for one doctor-day. The
// optional patientId enables the duplicate-booking advisory.
func (h *AppointmentHandler) GetAvailability(c *gin.Context) {
	doctorID := c.Query("doctorId")
	date := c.Query("date")
	patientID := c.Query("patientId")
	if doctorID == "" || date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", "doctorId and date are required")
		return
	}

	doctor, err := h.Doctors.GetByID(c.Request.Context(), doctorID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch doctor", err.Error())
		return
	}
	if doctor == nil || doctor.Status != models.DoctorStatusActive {
		utils.JSONError(c, http.StatusNotFound, "doctor not found", "")
		return
	}

	availability, err := h.Resolver.Resolve(c.Request.Context(), *doctor, date, patientID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute availability", err.Error())
		return
	}

	c.JSON(http.StatusOK, availability)
}

// BookAppointment is the web-form booking path: a single synchronous request
// straight into the transactional reserve.
func (h *AppointmentHandler) BookAppointment(c *gin.Context) {
	var input models.BookAppointmentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appt, err := h.Engine.Reserve(c.Request.Context(), scheduling.ReserveRequest{
		DoctorID:  input.DoctorID,
		PatientID: input.PatientID,
		Date:      input.Date,
		Time:      input.Time,
		Reason:    input.Reason,
		Via:       "web",
		Payment:   input.Payment,
	})
	if err != nil {
		switch {
		case errors.Is(err, scheduling.ErrSlotAlreadyBooked):
			utils.JSONError(c, http.StatusConflict, "slot already booked", "that time was just taken, please pick another slot")
		case errors.Is(err, scheduling.ErrInvalidTimeFormat):
			utils.JSONError(c, http.StatusBadRequest, "invalid time", err.Error())
		case errors.Is(err, scheduling.ErrDoctorNotFound):
			utils.JSONError(c, http.StatusNotFound, "doctor not found", "")
		case errors.Is(err, scheduling.ErrPatientNotFound):
			utils.JSONError(c, http.StatusNotFound, "patient not found", "")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "booking failed", err.Error())
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"appointment": appt})
}

// CancelAppointment moves an appointment to cancelled and frees its slot.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	h.release(c, models.AppointmentStatusCancelled)
}

// CompleteAppointment moves an appointment to completed and frees its slot.
func (h *AppointmentHandler) CompleteAppointment(c *gin.Context) {
	h.release(c, models.AppointmentStatusCompleted)
}

func (h *AppointmentHandler) release(c *gin.Context, status string) {
	id := c.Param("id")

	appt, err := h.Appointments.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch appointment", err.Error())
		return
	}
	if appt == nil {
		utils.JSONError(c, http.StatusNotFound, "appointment not found", "")
		return
	}
	if appt.Status != models.AppointmentStatusConfirmed {
		utils.JSONError(c, http.StatusConflict, "appointment is not confirmed", "only confirmed appointments can change status")
		return
	}

	var releaseErr error
	if status == models.AppointmentStatusCancelled {
		releaseErr = h.Engine.Cancel(c.Request.Context(), id)
	} else {
		releaseErr = h.Engine.Complete(c.Request.Context(), id)
	}
	if releaseErr != nil {
		utils.JSONError(c, http.StatusInternalServerError, "status update failed", releaseErr.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "status": status})
}

// ListPatientAppointments returns a patient's appointments, newest first.
func (h *AppointmentHandler) ListPatientAppointments(c *gin.Context) {
	patientID := c.Param("patientId")

	appts, err := h.Appointments.ListForPatient(c.Request.Context(), patientID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list appointments", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}
