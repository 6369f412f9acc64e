package models

import (
	"time"

	"gorm.io/gorm"
)

type CallbackStatus string

const (
	CallbackStatusPending   CallbackStatus = "pending"
	CallbackStatusContacted CallbackStatus = "contacted"
	CallbackStatusClosed    CallbackStatus = "closed"
)

// CallbackRequest is a call-me-back request submitted from the public site
type CallbackRequest struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"size:255;not null"`
	PhoneNumber string         `json:"phone_number" gorm:"size:20;not null"`
	Message     string         `json:"message" gorm:"type:text"`
	Status      CallbackStatus `json:"status" gorm:"type:varchar(20);default:'pending';check:status IN ('pending','contacted','closed')"`
	HandledByID *uint          `json:"handled_by_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	HandledBy *User `json:"handled_by,omitempty" gorm:"foreignKey:HandledByID"`
}

// CallbackCreate represents the public request structure
type CallbackCreate struct {
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Message     string `json:"message"`
}

// CallbackUpdate represents the customer-care update structure
type CallbackUpdate struct {
	Status CallbackStatus `json:"status" binding:"required,oneof=pending contacted closed"`
}

// TableName specifies the table name for the CallbackRequest model
func (CallbackRequest) TableName() string {
	return "callback_requests"
}
