package models

import (
	"time"

	"gorm.io/gorm"
)

// Service represents a repair service offered on the site
type Service struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"type:varchar(200);not null"`
	Description string         `json:"description" gorm:"type:text"`
	Category    string         `json:"category" gorm:"type:varchar(100);not null"`
	Price       float64        `json:"price" gorm:"type:decimal(10,2)"`
	ImageURL    string         `json:"image_url" gorm:"type:varchar(500)"`
	Duration    int            `json:"duration" gorm:"type:int"` // in minutes
	IsActive    bool           `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// ServiceInput represents the request structure for creating/updating services
type ServiceInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category" binding:"required"`
	Price       float64 `json:"price" binding:"required"`
	ImageURL    string  `json:"image_url"`
	Duration    int     `json:"duration"`
	IsActive    *bool   `json:"is_active"`
}

// TableName specifies the table name for the Service model
func (Service) TableName() string {
	return "services"
}
