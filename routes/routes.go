package routes

import (
	"net/http"
	"time"

	"medicore/handlers"
	"medicore/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterDoctorRoutes registers the doctor directory endpoints.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/doctors")
	{
		api.GET("", hb.ListDoctorsHandler)
		api.GET("/:id", hb.GetDoctorHandler)
	}
}

// RegisterAppointmentRoutes registers the booking engine endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.GET("/availability", hb.GetAvailabilityHandler)
		api.POST("", hb.BookAppointmentHandler)
		api.PUT("/:id/cancel", hb.CancelAppointmentHandler)
		api.PUT("/:id/complete", hb.CompleteAppointmentHandler)
		api.GET("/patient/:patientId", hb.ListPatientAppointmentsHandler)
	}
}

// RegisterFollowUpRoutes registers the follow-up request endpoint.
func RegisterFollowUpRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/followups")
	{
		api.POST("", hb.CreateFollowUpHandler)
	}
}

// RegisterWebhookRoutes registers the chat-bot webhook endpoints.
func RegisterWebhookRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	webhooks := r.Group("/webhooks")
	{
		webhooks.GET("/meta", hb.MetaWebhookVerifyHandler)
		webhooks.POST("/meta", hb.MetaWebhookReceiveHandler)
		webhooks.POST("/twilio", hb.TwilioWebhookHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterDoctorRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterFollowUpRoutes(r, hb)
	RegisterWebhookRoutes(r, hb)
	RegisterHealthRoute(r)
}
