package models

import (
	"time"

	"gorm.io/gorm"
)

// Review represents a customer's review of a completed booking.
// Uniqueness per booking is enforced by the eligible-bookings listing,
// not by a database constraint.
type Review struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	BookingID  uint           `json:"booking_id" gorm:"not null;index"`
	CustomerID uint           `json:"customer_id" gorm:"not null"`
	Rating     int            `json:"rating" gorm:"type:int;not null;check:rating >= 1 AND rating <= 5"`
	Comment    string         `json:"comment" gorm:"type:text"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	Booking  Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	Customer User    `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}

// ReviewCreate represents the request structure for submitting a review
type ReviewCreate struct {
	BookingID uint   `json:"booking_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// TableName specifies the table name for the Review model
func (Review) TableName() string {
	return "reviews"
}
