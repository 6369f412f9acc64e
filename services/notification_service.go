package services

import (
	"encoding/json"
	"log"

	"appliance-booking-server/database"
	"appliance-booking-server/models"
)

// Notification types
const (
	NotificationBookingCreated   = "booking_created"
	NotificationBookingAssigned  = "booking_assigned"
	NotificationBookingStatus    = "booking_status"
	NotificationBookingConfirmed = "booking_confirmed"
	NotificationSystem           = "system"
)

// NotifyUser persists an in-app notification for a user. Failures are
// logged, never propagated: a missed notification must not fail the
// operation that produced it.
func NotifyUser(userID uint, title, body, notificationType string, data map[string]interface{}) {
	payload := ""
	if data != nil {
		if raw, err := json.Marshal(data); err == nil {
			payload = string(raw)
		}
	}

	notification := models.Notification{
		UserID: userID,
		Title:  title,
		Body:   body,
		Type:   notificationType,
		Data:   payload,
	}

	if err := database.DB.Create(&notification).Error; err != nil {
		log.Printf("⚠️ Failed to create notification for user %d: %v", userID, err)
	}
}

// NotifyAdmins persists the same notification for every active admin
func NotifyAdmins(title, body, notificationType string, data map[string]interface{}) {
	var admins []models.User
	if err := database.DB.Where("role = ? AND is_active = ?", models.RoleAdmin, true).Find(&admins).Error; err != nil {
		log.Printf("⚠️ Failed to load admins for notification: %v", err)
		return
	}

	for _, admin := range admins {
		NotifyUser(admin.ID, title, body, notificationType, data)
	}
}
