package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle aggregates every route handler; main.go assembles it and
// routes.RegisterRoutes wires it up.
type HandlerBundle struct {
	// Doctor directory endpoints.
	ListDoctorsHandler gin.HandlerFunc
	GetDoctorHandler   gin.HandlerFunc

	// Appointment endpoints.
	GetAvailabilityHandler         gin.HandlerFunc
	BookAppointmentHandler         gin.HandlerFunc
	CancelAppointmentHandler       gin.HandlerFunc
	CompleteAppointmentHandler     gin.HandlerFunc
	ListPatientAppointmentsHandler gin.HandlerFunc

	// Follow-up endpoints.
	CreateFollowUpHandler gin.HandlerFunc

	// Chat webhook endpoints.
	MetaWebhookVerifyHandler  gin.HandlerFunc
	MetaWebhookReceiveHandler gin.HandlerFunc
	TwilioWebhookHandler      gin.HandlerFunc
}
