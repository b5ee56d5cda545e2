package handlers

import (
	"net/http"
	"time"

	followupRepo "medicore/database/repository/followup"
	"medicore/models"
	"medicore/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FollowUpHandler lets the doctor portal file follow-up (re-checkup) requests
// that the chat flow later resolves.
type FollowUpHandler struct {
	FollowUps followupRepo.FollowUpRepository
}

func NewFollowUpHandler(followUps followupRepo.FollowUpRepository) *FollowUpHandler {
	return &FollowUpHandler{FollowUps: followUps}
}

func (h *FollowUpHandler) CreateFollowUp(c *gin.Context) {
	var input struct {
		PatientID     string `json:"patientId" binding:"required"`
		DoctorID      string `json:"doctorId" binding:"required"`
		AppointmentID string `json:"appointmentId,omitempty"`
		Notes         string `json:"notes,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	req := &models.FollowUpRequest{
		ID:            uuid.New().String(),
		PatientID:     input.PatientID,
		DoctorID:      input.DoctorID,
		AppointmentID: input.AppointmentID,
		Status:        models.FollowUpStatusPending,
		Notes:         input.Notes,
		CreatedAt:     time.Now(),
	}
	if err := h.FollowUps.Create(c.Request.Context(), req); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create follow-up request", err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"followUp": req})
}
