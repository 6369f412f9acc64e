package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleCustomer     UserRole = "customer"
	RoleEmployee     UserRole = "employee"
	RoleAdmin        UserRole = "admin"
	RoleCustomerCare UserRole = "customer_care"
)

// WorkingStatusFree and WorkingStatusWorking are the only values
// WorkingStatus() can produce.
const (
	WorkingStatusFree    = "free"
	WorkingStatusWorking = "working"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	FullName     string    `json:"full_name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PhoneNumber  string    `json:"phone_number" gorm:"size:20"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Hidden from JSON
	Role         UserRole  `json:"role" gorm:"type:varchar(20);not null;default:'customer';check:role IN ('customer','employee','admin','customer_care')"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	IsWorking    bool      `json:"is_working" gorm:"default:false"` // employees only
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Bookings []Booking `json:"bookings,omitempty" gorm:"foreignKey:CustomerID"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate is a GORM hook that runs before creating a user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleCustomer
	}
	return nil
}

// WorkingStatus derives the busy/free string from the stored boolean.
// The string is never persisted, so the two can't disagree.
func (u *User) WorkingStatus() string {
	if u.IsWorking {
		return WorkingStatusWorking
	}
	return WorkingStatusFree
}

// IsValidRole checks if the user role is valid
func (u *User) IsValidRole() bool {
	switch u.Role {
	case RoleCustomer, RoleEmployee, RoleAdmin, RoleCustomerCare:
		return true
	default:
		return false
	}
}

// IsEmployee checks if the user is an employee
func (u *User) IsEmployee() bool {
	return u.Role == RoleEmployee
}

// IsAdmin checks if the user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsCustomer checks if the user is a customer
func (u *User) IsCustomer() bool {
	return u.Role == RoleCustomer
}

// IsCustomerCare checks if the user is a customer-care agent
func (u *User) IsCustomerCare() bool {
	return u.Role == RoleCustomerCare
}

// IsStaff reports whether the user holds any staff role
func (u *User) IsStaff() bool {
	return u.Role == RoleEmployee || u.Role == RoleAdmin || u.Role == RoleCustomerCare
}
