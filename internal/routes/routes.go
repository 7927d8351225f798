package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"spa-booking-server/internal/booking"
	"spa-booking-server/internal/config"
	"spa-booking-server/internal/handlers"
	"spa-booking-server/internal/models"
	"spa-booking-server/internal/scheduling"
	"spa-booking-server/internal/store"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	calendar, err := scheduling.NewCalendar(cfg.WorkingHours)
	if err != nil {
		return err
	}
	catalog := models.Catalog{
		Treatments: cfg.Treatments,
		Durations:  cfg.AllowedDurations,
	}

	gormStore := store.NewGormStore(db)
	bookingService := booking.NewService(gormStore, gormStore, calendar, catalog, log)

	// Initialize handlers
	clientHandler := handlers.NewClientHandler(gormStore)
	appointmentHandler := handlers.NewAppointmentHandler(bookingService, gormStore)
	catalogHandler := handlers.NewCatalogHandler(catalog)

	api := router.Group("/api/v1")
	{
		clientRoutes := api.Group("/clients")
		{
			clientRoutes.GET("", clientHandler.ListClients)
			clientRoutes.POST("", clientHandler.CreateClient)
			clientRoutes.GET("/:id", clientHandler.GetClientByID)
			clientRoutes.PATCH("/:id/concerns", clientHandler.UpdateClientConcern)
		}

		appointmentRoutes := api.Group("/appointments")
		{
			appointmentRoutes.POST("", appointmentHandler.CreateAppointment)
			appointmentRoutes.GET("", appointmentHandler.ListAppointments)
			appointmentRoutes.GET("/slots", appointmentHandler.GetAvailableSlots)
			appointmentRoutes.GET("/client/:clientId", appointmentHandler.GetClientHistory)
			appointmentRoutes.PUT("/:id/payment", appointmentHandler.UpdatePaymentStatus)
			appointmentRoutes.PATCH("/:id/cancel", appointmentHandler.CancelAppointment)
		}

		api.GET("/treatments", catalogHandler.GetCatalog)
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})

	return nil
}
