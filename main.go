// File: medicore/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medicore/config"
	"medicore/cron"
	"medicore/database"
	appointmentRepo "medicore/database/repository/appointment"
	doctorRepo "medicore/database/repository/doctor"
	followupRepo "medicore/database/repository/followup"
	patientRepo "medicore/database/repository/patient"
	"medicore/handlers"
	"medicore/middleware"
	"medicore/routes"
	"medicore/services/conversation"
	"medicore/services/messaging"
	"medicore/services/notification"
	"medicore/services/scheduling"
	"medicore/services/tasks"
	"medicore/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	doctors := doctorRepo.NewMongoDoctorRepo()
	patients := patientRepo.NewMongoPatientRepo()
	appointments := appointmentRepo.NewMongoAppointmentRepo()
	followUps := followupRepo.NewMongoFollowUpRepo()

	// services.
	notificationService := &notification.DefaultNotificationService{
		Patients: patients,
	}
	reminderScheduler := tasks.NewReminderScheduler()

	resolver := &scheduling.AvailabilityResolver{
		Appointments: appointments,
	}
	bookingEngine := &scheduling.DefaultBookingEngine{
		Doctors:      doctors,
		Patients:     patients,
		Appointments: appointments,
		Notifier:     notificationService,
		Reminders:    reminderScheduler,
	}

	sessionTTL := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	sessionStore := conversation.NewRedisSessionStore(utils.GetSessionCacheClient(), sessionTTL)

	// One state machine per chat integration; they share every store and
	// differ only in the outbound transport.
	metaMachine := &conversation.Machine{
		Sessions:          sessionStore,
		Doctors:           doctors,
		Patients:          patients,
		FollowUps:         followUps,
		Resolver:          resolver,
		Engine:            bookingEngine,
		Sender:            messaging.NewMetaSender(),
		Channel:           "meta",
		BookTriggers:      config.AppConfig.BookTriggers,
		RecheckupTriggers: config.AppConfig.RecheckupTriggers,
	}
	twilioMachine := &conversation.Machine{
		Sessions:          sessionStore,
		Doctors:           doctors,
		Patients:          patients,
		FollowUps:         followUps,
		Resolver:          resolver,
		Engine:            bookingEngine,
		Sender:            messaging.NewTwilioSender(),
		Channel:           "twilio",
		BookTriggers:      config.AppConfig.BookTriggers,
		RecheckupTriggers: config.AppConfig.RecheckupTriggers,
	}

	// Background reminder worker and service health checks.
	cron.InitReminderWorker(notificationService)
	utils.StartHealthMonitor(utils.GetSessionCacheClient(), database.MongoClient)

	// handlers.
	doctorHandler := handlers.NewDoctorHandler(doctors)
	appointmentHandler := handlers.NewAppointmentHandler(doctors, appointments, resolver, bookingEngine)
	followUpHandler := handlers.NewFollowUpHandler(followUps)
	metaWebhookHandler := handlers.NewMetaWebhookHandler(metaMachine)
	twilioWebhookHandler := handlers.NewTwilioWebhookHandler(twilioMachine)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Doctor directory endpoints.
		ListDoctorsHandler: doctorHandler.ListDoctors,
		GetDoctorHandler:   doctorHandler.GetDoctor,

		// Appointment endpoints.
		GetAvailabilityHandler:         appointmentHandler.GetAvailability,
		BookAppointmentHandler:         appointmentHandler.BookAppointment,
		CancelAppointmentHandler:       appointmentHandler.CancelAppointment,
		CompleteAppointmentHandler:     appointmentHandler.CompleteAppointment,
		ListPatientAppointmentsHandler: appointmentHandler.ListPatientAppointments,

		// Follow-up endpoints.
		CreateFollowUpHandler: followUpHandler.CreateFollowUp,

		// Chat webhook endpoints.
		MetaWebhookVerifyHandler:  metaWebhookHandler.Verify,
		MetaWebhookReceiveHandler: metaWebhookHandler.Receive,
		TwilioWebhookHandler:      twilioWebhookHandler.Receive,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
