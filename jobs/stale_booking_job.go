package jobs

import (
	"fmt"
	"log"
	"time"

	"appliance-booking-server/config"
	"appliance-booking-server/database"
	"appliance-booking-server/models"
	"appliance-booking-server/services"
)

// StaleBookingJob flags bookings stuck in Pending so staff notice them
type StaleBookingJob struct {
	stopChan chan bool
}

// NewStaleBookingJob creates a new stale booking job
func NewStaleBookingJob() *StaleBookingJob {
	return &StaleBookingJob{
		stopChan: make(chan bool),
	}
}

// Start begins the stale booking job
func (j *StaleBookingJob) Start() {
	go j.run()
	log.Println("🚀 Stale booking job started")
}

// Stop stops the stale booking job
func (j *StaleBookingJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Stale booking job stopped")
}

func (j *StaleBookingJob) run() {
	ticker := time.NewTicker(15 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.checkStaleBookings()
		case <-j.stopChan:
			return
		}
	}
}

// checkStaleBookings notifies admins about bookings that have sat in
// Pending beyond the configured age. One notification per run per
// booking is acceptable noise; the admin dashboard is the actual fix.
func (j *StaleBookingJob) checkStaleBookings() {
	cutoff := time.Now().Add(-time.Duration(config.AppConfig.Jobs.StaleBookingHours) * time.Hour)

	var staleBookings []models.Booking
	err := database.DB.
		Where("status = ? AND created_at <= ?", models.BookingStatusPending, cutoff).
		Find(&staleBookings).Error
	if err != nil {
		log.Printf("❌ Error checking stale bookings: %v", err)
		return
	}

	if len(staleBookings) == 0 {
		return
	}

	log.Printf("⏰ Found %d stale pending bookings", len(staleBookings))

	for _, booking := range staleBookings {
		services.NotifyAdmins(
			"Stale booking",
			fmt.Sprintf("Booking %s has been Pending for over %d hours",
				booking.Reference, config.AppConfig.Jobs.StaleBookingHours),
			services.NotificationSystem,
			map[string]interface{}{"booking_id": booking.ID},
		)
	}
}
