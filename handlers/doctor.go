package handlers

import (
	"net/http"

	doctorRepo "medicore/database/repository/doctor"
	"medicore/models"
	"medicore/utils"

	"github.com/gin-gonic/gin"
)

// DoctorHandler exposes the read-only doctor directory.
type DoctorHandler struct {
	Doctors doctorRepo.DoctorRepository
}

func NewDoctorHandler(doctors doctorRepo.DoctorRepository) *DoctorHandler {
	return &DoctorHandler{Doctors: doctors}
}

// ListDoctors returns all schedulable doctors.
func (h *DoctorHandler) ListDoctors(c *gin.Context) {
	doctors, err := h.Doctors.ListActive(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list doctors", err.Error())
		return
	}

	dtos := make([]models.DoctorDTO, 0, len(doctors))
	for _, d := range doctors {
		dtos = append(dtos, models.ToDoctorDTO(d))
	}
	c.JSON(http.StatusOK, gin.H{"doctors": dtos})
}

// GetDoctor returns one doctor including visiting hours, for the booking form.
func (h *DoctorHandler) GetDoctor(c *gin.Context) {
	id := c.Param("id")

	doctor, err := h.Doctors.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch doctor", err.Error())
		return
	}
	if doctor == nil {
		utils.JSONError(c, http.StatusNotFound, "doctor not found", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"doctor": doctor})
}
