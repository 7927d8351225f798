package models

import (
	"time"

	"gorm.io/gorm"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusActive    AppointmentStatus = "active"
	StatusCancelled AppointmentStatus = "cancelled"
)

// PaymentStatus represents the payment state of an appointment
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "Unpaid"
	PaymentPaid    PaymentStatus = "Paid"
	PaymentPending PaymentStatus = "Pending"
)

// ValidPaymentStatus reports whether s is one of the known payment states.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentUnpaid, PaymentPaid, PaymentPending:
		return true
	}
	return false
}

// Appointment represents a scheduled spa treatment for a client.
type Appointment struct {
	BaseModel
	ClientID  string            `gorm:"size:36;index;not null" json:"clientId"`
	Treatment string            `gorm:"size:100;not null" json:"treatment"`
	Duration  int               `gorm:"not null" json:"duration"` // minutes
	StartTime time.Time         `gorm:"index" json:"startTime"`
	EndTime   time.Time         `json:"endTime"`
	Status    AppointmentStatus `gorm:"size:20;default:'active'" json:"status"`
	Payment   PaymentStatus     `gorm:"size:20;default:'Unpaid'" json:"paymentStatus"`

	// Relations
	Client Client `gorm:"foreignKey:ClientID" json:"client"`
}

// BeforeSave keeps EndTime derived from StartTime and Duration.
func (a *Appointment) BeforeSave(tx *gorm.DB) error {
	a.EndTime = a.StartTime.Add(time.Duration(a.Duration) * time.Minute)
	return nil
}

// Interval returns the half-open [start, end) interval the appointment occupies.
func (a *Appointment) Interval() (time.Time, time.Time) {
	return a.StartTime, a.StartTime.Add(time.Duration(a.Duration) * time.Minute)
}

// IsCancelled reports whether the appointment no longer blocks its slot.
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}
