package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"spa-booking-server/internal/booking"
	"spa-booking-server/internal/models"
	"spa-booking-server/internal/scheduling"
	"spa-booking-server/internal/store"
	"spa-booking-server/internal/utils"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	Booking *booking.Service
	Store   store.AppointmentStore
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(bookingService *booking.Service, appointmentStore store.AppointmentStore) *AppointmentHandler {
	return &AppointmentHandler{Booking: bookingService, Store: appointmentStore}
}

// CreateAppointmentRequest represents the request body for booking an appointment.
type CreateAppointmentRequest struct {
	ClientID      string    `json:"clientId" binding:"required,uuid"`
	Treatment     string    `json:"treatment" binding:"required"`
	Duration      int       `json:"duration" binding:"required,gt=0"`
	StartTime     time.Time `json:"startTime" binding:"required"`
	PaymentStatus string    `json:"paymentStatus" binding:"omitempty,oneof=Unpaid Paid Pending"`
}

// CreateAppointment books a new appointment through the booking workflow.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	candidate := scheduling.Candidate{
		ClientID:  req.ClientID,
		Treatment: req.Treatment,
		Duration:  req.Duration,
		StartTime: req.StartTime,
		Payment:   models.PaymentStatus(req.PaymentStatus),
	}

	appt, err := h.Booking.Book(c.Request.Context(), candidate)
	if err != nil {
		var verr *booking.ValidationError
		switch {
		case errors.As(err, &verr):
			utils.BadRequest(c, verr.Error())
		case errors.Is(err, booking.ErrUnknownClient):
			utils.NotFound(c, "Client not found")
		case errors.Is(err, booking.ErrSlotUnavailable):
			utils.Conflict(c, "The selected time slot is unavailable")
		default:
			utils.InternalServerError(c, "Failed to book appointment: "+err.Error())
		}
		return
	}

	utils.Created(c, "Appointment booked successfully", appt)
}

// ListAppointments fetches appointments matching the optional filters:
// from/to (YYYY-MM-DD), clientId, clientName, paymentStatus.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	var filter store.AppointmentFilter

	if from := c.Query("from"); from != "" {
		parsed, err := time.ParseInLocation("2006-01-02", from, time.Local)
		if err != nil {
			utils.BadRequest(c, "Invalid 'from' date, expected YYYY-MM-DD")
			return
		}
		filter.From = &parsed
	}
	if to := c.Query("to"); to != "" {
		parsed, err := time.ParseInLocation("2006-01-02", to, time.Local)
		if err != nil {
			utils.BadRequest(c, "Invalid 'to' date, expected YYYY-MM-DD")
			return
		}
		// Inclusive end date: filter up to the following midnight.
		end := parsed.AddDate(0, 0, 1)
		filter.To = &end
	}
	filter.ClientID = c.Query("clientId")
	filter.ClientName = c.Query("clientName")

	if status := c.Query("paymentStatus"); status != "" {
		if !models.ValidPaymentStatus(models.PaymentStatus(status)) {
			utils.BadRequest(c, "Invalid payment status filter")
			return
		}
		filter.PaymentStatus = models.PaymentStatus(status)
	}

	appointments, err := h.Store.ListAppointments(c.Request.Context(), filter)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetClientHistory fetches a client's full appointment history, cancelled
// appointments included, most recent first.
func (h *AppointmentHandler) GetClientHistory(c *gin.Context) {
	clientID := c.Param("clientId")

	appointments, err := h.Store.ListForClient(c.Request.Context(), clientID)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch client history: "+err.Error())
		return
	}

	utils.Success(c, "Client history fetched successfully", appointments)
}

// UpdatePaymentStatusRequest represents the request body for a payment update.
type UpdatePaymentStatusRequest struct {
	PaymentStatus models.PaymentStatus `json:"paymentStatus" binding:"required,oneof=Unpaid Paid Pending"`
}

// UpdatePaymentStatus sets an appointment's payment status. Repeating the
// same status is a no-op.
func (h *AppointmentHandler) UpdatePaymentStatus(c *gin.Context) {
	var req UpdatePaymentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appt, err := h.Store.UpdatePaymentStatus(c.Request.Context(), c.Param("id"), req.PaymentStatus)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Failed to update payment status: "+err.Error())
		}
		return
	}

	utils.Success(c, "Payment status updated successfully", appt)
}

// CancelAppointment marks an appointment cancelled. It stays in history
// but no longer blocks its time slot.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	appt, err := h.Store.CancelAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Failed to cancel appointment: "+err.Error())
		}
		return
	}

	utils.Success(c, "Appointment cancelled successfully", appt)
}

// GetAvailableSlots returns the bookable working-hour start times for the
// date given as ?date=YYYY-MM-DD.
func (h *AppointmentHandler) GetAvailableSlots(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		utils.BadRequest(c, "Missing required 'date' query parameter")
		return
	}
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		utils.BadRequest(c, "Invalid 'date', expected YYYY-MM-DD")
		return
	}

	slots, err := h.Booking.AvailableSlots(c.Request.Context(), date)
	if err != nil {
		utils.InternalServerError(c, "Failed to compute available slots: "+err.Error())
		return
	}

	utils.Success(c, "Available slots fetched successfully", slots)
}
