// Package booking orchestrates the booking workflow: validate the
// candidate, check it against the day's appointments, and submit it to
// the store.
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"spa-booking-server/internal/models"
	"spa-booking-server/internal/scheduling"
	"spa-booking-server/internal/store"
)

// ErrSlotUnavailable is the user-facing conflict outcome. It also covers a
// failed availability lookup: an unknown store state is treated as a
// conflict, never as a free slot.
var ErrSlotUnavailable = errors.New("the selected time slot is unavailable")

// ErrUnknownClient means the candidate references a client that does not exist.
var ErrUnknownClient = errors.New("client not found")

// ValidationError reports a candidate field that failed validation before
// any store write was attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Service runs the booking workflow against the persistence boundary.
type Service struct {
	appointments store.AppointmentStore
	clients      store.ClientStore
	calendar     scheduling.Calendar
	catalog      models.Catalog
	log          *zap.Logger
}

// NewService creates a booking Service.
func NewService(appointments store.AppointmentStore, clients store.ClientStore, calendar scheduling.Calendar, catalog models.Catalog, log *zap.Logger) *Service {
	return &Service{
		appointments: appointments,
		clients:      clients,
		calendar:     calendar,
		catalog:      catalog,
		log:          log,
	}
}

// AvailableSlots returns the bookable working-hour start times on date.
func (s *Service) AvailableSlots(ctx context.Context, date time.Time) ([]time.Time, error) {
	booked, err := s.appointments.ListOnDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("loading appointments for %s: %w", date.Format("2006-01-02"), err)
	}
	return s.calendar.AvailableSlots(date, booked), nil
}

// Book validates the candidate, rejects it on conflict with the day's
// non-cancelled appointments, and otherwise persists it. The conflict check
// completes before the create is issued; the store additionally re-checks
// inside its transaction.
func (s *Service) Book(ctx context.Context, candidate scheduling.Candidate) (*models.Appointment, error) {
	if err := s.validate(candidate); err != nil {
		return nil, err
	}

	if _, err := s.clients.GetClient(ctx, candidate.ClientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUnknownClient
		}
		return nil, fmt.Errorf("verifying client: %w", err)
	}

	existing, err := s.appointments.ListOnDate(ctx, candidate.StartTime)
	if err != nil {
		// Fail closed: without a trustworthy view of the day we must
		// assume the slot is taken rather than risk a double-booking.
		s.log.Warn("availability check failed, rejecting booking",
			zap.Time("startTime", candidate.StartTime),
			zap.Error(err))
		return nil, fmt.Errorf("%w: availability check failed", ErrSlotUnavailable)
	}

	if scheduling.HasConflict(candidate, existing) {
		return nil, ErrSlotUnavailable
	}

	payment := candidate.Payment
	if payment == "" {
		payment = models.PaymentUnpaid
	}

	appt := &models.Appointment{
		ClientID:  candidate.ClientID,
		Treatment: candidate.Treatment,
		Duration:  candidate.Duration,
		StartTime: candidate.StartTime,
		Status:    models.StatusActive,
		Payment:   payment,
	}
	if err := s.appointments.CreateAppointment(ctx, appt); err != nil {
		if errors.Is(err, store.ErrSlotTaken) {
			// Another session won the slot between our check and the insert.
			return nil, ErrSlotUnavailable
		}
		return nil, fmt.Errorf("creating appointment: %w", err)
	}

	s.log.Info("appointment booked",
		zap.String("appointmentId", appt.ID),
		zap.String("clientId", appt.ClientID),
		zap.String("treatment", appt.Treatment),
		zap.Time("startTime", appt.StartTime))
	return appt, nil
}

func (s *Service) validate(candidate scheduling.Candidate) error {
	if candidate.ClientID == "" {
		return &ValidationError{Field: "clientId", Reason: "required"}
	}
	if candidate.StartTime.IsZero() {
		return &ValidationError{Field: "startTime", Reason: "required"}
	}
	if !s.catalog.HasTreatment(candidate.Treatment) {
		return &ValidationError{Field: "treatment", Reason: "not in the treatment catalog"}
	}
	if !s.catalog.HasDuration(candidate.Duration) {
		return &ValidationError{Field: "duration", Reason: "not an allowed duration"}
	}
	if candidate.Payment != "" && !models.ValidPaymentStatus(candidate.Payment) {
		return &ValidationError{Field: "paymentStatus", Reason: "unknown payment status"}
	}
	return nil
}
