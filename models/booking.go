package models

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending             BookingStatus = "Pending"
	BookingStatusInProgress          BookingStatus = "In Progress"
	BookingStatusCompleted           BookingStatus = "Completed"
	BookingStatusCancelled           BookingStatus = "Cancelled"
	BookingStatusPendingWeather      BookingStatus = "Pending - Weather"
	BookingStatusPendingCustomer     BookingStatus = "Pending - Customer Unavailable"
	BookingStatusPendingTechnical    BookingStatus = "Pending - Technical"
	BookingStatusAwaitingAdminReview BookingStatus = "Completed - Awaiting Admin Confirmation"
)

// AllBookingStatuses is the fixed status enumeration. Anything outside
// this set is rejected before it reaches the store.
var AllBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusInProgress,
	BookingStatusCompleted,
	BookingStatusCancelled,
	BookingStatusPendingWeather,
	BookingStatusPendingCustomer,
	BookingStatusPendingTechnical,
	BookingStatusAwaitingAdminReview,
}

// IsValidBookingStatus checks a status string against the fixed enumeration
func IsValidBookingStatus(s BookingStatus) bool {
	for _, v := range AllBookingStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// PaymentStatus values for the embedded payment record
const (
	PaymentStatusUnpaid  = "unpaid"
	PaymentStatusPending = "pending" // settled amount awaiting collection
	PaymentStatusPaid    = "paid"
)

// Payment is the settlement sub-record embedded in a booking
type Payment struct {
	Amount float64 `json:"amount" gorm:"type:decimal(10,2);default:0"`
	Method string  `json:"method" gorm:"type:varchar(30)"`
	Status string  `json:"status" gorm:"type:varchar(20);default:'unpaid'"`
}

type Booking struct {
	ID                 uint          `json:"id" gorm:"primaryKey"`
	Reference          string        `json:"reference" gorm:"type:varchar(36);uniqueIndex;not null"`
	ServiceID          uint          `json:"service_id" gorm:"not null"`
	CustomerID         uint          `json:"customer_id" gorm:"not null"`
	EmployeeID         *uint         `json:"employee_id"` // null until assigned
	ScheduledDate      time.Time     `json:"scheduled_date" gorm:"not null"`
	ScheduledTime      string        `json:"scheduled_time" gorm:"size:20;not null"`
	Address            string        `json:"address" gorm:"size:500;not null"`
	Notes              string        `json:"notes" gorm:"size:1000"`
	ProblemDescription string        `json:"problem_description" gorm:"type:text"`
	Status             BookingStatus `json:"status" gorm:"type:varchar(50);default:'Pending';not null"`
	Payment            Payment       `json:"payment" gorm:"embedded;embeddedPrefix:payment_"`
	FinalAmount        float64       `json:"final_amount" gorm:"type:decimal(10,2);default:0"`
	AdminConfirmed     bool          `json:"admin_confirmed" gorm:"default:false"`
	CreatedAt          time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time     `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Service  Service `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	Customer User    `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Employee *User   `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// BookingCreate represents the request structure for creating a booking
type BookingCreate struct {
	ServiceID          uint   `json:"service_id" binding:"required"`
	ScheduledDate      string `json:"scheduled_date" binding:"required"` // ISO8601 date
	ScheduledTime      string `json:"scheduled_time" binding:"required"`
	Address            string `json:"address" binding:"required"`
	Notes              string `json:"notes"`
	ProblemDescription string `json:"problem_description"`
	PaymentMethod      string `json:"payment_method"`
}

// BookingStatusUpdate represents the request structure for a status change
type BookingStatusUpdate struct {
	Status      string   `json:"status" binding:"required"`
	Notes       string   `json:"notes"`
	FinalAmount *float64 `json:"final_amount"`
}

// AssignEmployeeRequest represents the request structure for employee assignment
type AssignEmployeeRequest struct {
	EmployeeID uint `json:"employee_id" binding:"required"`
}
