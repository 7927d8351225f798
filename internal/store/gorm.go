package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"spa-booking-server/internal/models"
)

// GormStore implements ClientStore and AppointmentStore on a gorm database.
type GormStore struct {
	DB *gorm.DB
}

// NewGormStore creates a GormStore.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

// ListClients returns clients, optionally filtered by a case-insensitive
// name or email substring, ordered by name.
func (s *GormStore) ListClients(ctx context.Context, search string) ([]models.Client, error) {
	query := s.DB.WithContext(ctx).Order("name asc")
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
	}

	var clients []models.Client
	if err := query.Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// GetClient fetches a single client by id.
func (s *GormStore) GetClient(ctx context.Context, id string) (*models.Client, error) {
	var client models.Client
	if err := s.DB.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

// CreateClient persists a new client. Email is unique across clients.
func (s *GormStore) CreateClient(ctx context.Context, client *models.Client) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Client{}).Where("email = ?", client.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateEmail
		}
		if err := tx.Create(client).Error; err != nil {
			// The unique index is the backstop for concurrent intakes.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateEmail
			}
			return err
		}
		return nil
	})
}

// UpdateClientConcern replaces a client's areas-of-concern text.
func (s *GormStore) UpdateClientConcern(ctx context.Context, id, areasOfConcern string) (*models.Client, error) {
	var client models.Client
	if err := s.DB.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	client.AreasOfConcern = areasOfConcern
	if err := s.DB.WithContext(ctx).Save(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// ListAppointments returns appointments matching the filter, client summary
// embedded, ordered by start time.
func (s *GormStore) ListAppointments(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, error) {
	query := s.DB.WithContext(ctx).Model(&models.Appointment{}).
		Preload("Client").Order("appointments.start_time asc")

	if filter.From != nil {
		query = query.Where("appointments.start_time >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("appointments.start_time < ?", *filter.To)
	}
	if filter.ClientID != "" {
		query = query.Where("appointments.client_id = ?", filter.ClientID)
	}
	if filter.ClientName != "" {
		query = query.Joins("JOIN clients ON clients.id = appointments.client_id").
			Where("clients.name LIKE ?", "%"+filter.ClientName+"%")
	}
	if filter.PaymentStatus != "" {
		query = query.Where("appointments.payment = ?", filter.PaymentStatus)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

// ListOnDate returns the day's non-cancelled appointments.
func (s *GormStore) ListOnDate(ctx context.Context, date time.Time) ([]models.Appointment, error) {
	dayStart, dayEnd := dayBounds(date)

	var appointments []models.Appointment
	err := s.DB.WithContext(ctx).
		Where("start_time >= ? AND start_time < ?", dayStart, dayEnd).
		Where("status <> ?", models.StatusCancelled).
		Order("start_time asc").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// ListForClient returns a client's full appointment history, newest first.
func (s *GormStore) ListForClient(ctx context.Context, clientID string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.DB.WithContext(ctx).
		Preload("Client").
		Where("client_id = ?", clientID).
		Order("start_time desc").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// CreateAppointment inserts the appointment after re-checking, inside the
// transaction, that no non-cancelled appointment overlaps its interval.
// The check locks matching rows so two sessions racing for the same slot
// serialize on the store rather than both succeeding.
func (s *GormStore) CreateAppointment(ctx context.Context, appt *models.Appointment) error {
	start := appt.StartTime
	end := appt.StartTime.Add(time.Duration(appt.Duration) * time.Minute)

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var overlapping int64
		err := tx.Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("start_time < ? AND end_time > ?", end, start).
			Where("status <> ?", models.StatusCancelled).
			Count(&overlapping).Error
		if err != nil {
			return err
		}
		if overlapping > 0 {
			return ErrSlotTaken
		}
		return tx.Create(appt).Error
	})
}

// UpdatePaymentStatus sets the payment status. Writing the same status
// twice leaves the appointment unchanged.
func (s *GormStore) UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus) (*models.Appointment, error) {
	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if appt.Payment != status {
		appt.Payment = status
		if err := s.DB.WithContext(ctx).Save(appt).Error; err != nil {
			return nil, err
		}
	}
	return appt, nil
}

// CancelAppointment marks the appointment cancelled. Cancellation is
// terminal; the record stays visible in history but stops blocking slots.
func (s *GormStore) CancelAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if appt.Status != models.StatusCancelled {
		appt.Status = models.StatusCancelled
		if err := s.DB.WithContext(ctx).Save(appt).Error; err != nil {
			return nil, err
		}
	}
	return appt, nil
}

func (s *GormStore) getAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	if err := s.DB.WithContext(ctx).Preload("Client").First(&appt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &appt, nil
}

// dayBounds returns the half-open [midnight, next midnight) window around
// date, in date's location.
func dayBounds(date time.Time) (time.Time, time.Time) {
	year, month, day := date.Date()
	dayStart := time.Date(year, month, day, 0, 0, 0, 0, date.Location())
	return dayStart, dayStart.AddDate(0, 0, 1)
}
