package models

import (
	"time"
)

// SiteSettings is the single-row settings record for the marketing site
// and dashboards. Reads return the row with ID 1, creating it with
// defaults when missing.
type SiteSettings struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	SiteName     string    `json:"site_name" gorm:"size:255;not null;default:'Appliance Care'"`
	ContactEmail string    `json:"contact_email" gorm:"size:255"`
	ContactPhone string    `json:"contact_phone" gorm:"size:20"`
	Address      string    `json:"address" gorm:"size:500"`
	OpeningHours string    `json:"opening_hours" gorm:"size:255"`
	Announcement string    `json:"announcement" gorm:"type:text"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// SiteSettingsUpdate represents the admin update structure
type SiteSettingsUpdate struct {
	SiteName     string `json:"site_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Address      string `json:"address"`
	OpeningHours string `json:"opening_hours"`
	Announcement string `json:"announcement"`
}

// TableName specifies the table name for the SiteSettings model
func (SiteSettings) TableName() string {
	return "site_settings"
}
