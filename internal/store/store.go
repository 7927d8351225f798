// Package store defines the persistence boundary the booking workflow
// talks to, and its gorm/MySQL implementation.
package store

import (
	"context"
	"errors"
	"time"

	"spa-booking-server/internal/models"
)

var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail means a client with that email already exists.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrSlotTaken means the store refused an appointment because a
	// non-cancelled appointment already occupies an overlapping interval.
	ErrSlotTaken = errors.New("time slot already taken")
)

// AppointmentFilter narrows ListAppointments. Zero-value fields are ignored.
type AppointmentFilter struct {
	From          *time.Time
	To            *time.Time
	ClientID      string
	ClientName    string // case-insensitive substring match
	PaymentStatus models.PaymentStatus
}

// ClientStore is the client side of the persistence boundary.
type ClientStore interface {
	ListClients(ctx context.Context, search string) ([]models.Client, error)
	GetClient(ctx context.Context, id string) (*models.Client, error)
	CreateClient(ctx context.Context, client *models.Client) error
	UpdateClientConcern(ctx context.Context, id, areasOfConcern string) (*models.Client, error)
}

// AppointmentStore is the appointment side of the persistence boundary.
type AppointmentStore interface {
	ListAppointments(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, error)

	// ListOnDate returns every non-cancelled appointment whose start time
	// falls on the given calendar day, for availability and conflict checks.
	ListOnDate(ctx context.Context, date time.Time) ([]models.Appointment, error)

	// ListForClient returns a client's full history, cancelled included,
	// most recent first.
	ListForClient(ctx context.Context, clientID string) ([]models.Appointment, error)

	// CreateAppointment persists the appointment. It re-checks for interval
	// overlap inside a transaction and fails with ErrSlotTaken, so a booking
	// accepted between the workflow's conflict check and this call cannot be
	// double-booked.
	CreateAppointment(ctx context.Context, appt *models.Appointment) error

	UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, id string) (*models.Appointment, error)
}
