package routes

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"appliance-booking-server/database"
	"appliance-booking-server/lifecycle"
	"appliance-booking-server/middleware"
	"appliance-booking-server/models"
	"appliance-booking-server/services"
	ws "appliance-booking-server/websocket"
)

// eventHub receives booking events for connected staff dashboards.
// Nil until InitEventHub is called; publishing stays optional.
var eventHub *ws.Hub

// InitEventHub wires the dashboard event hub into the booking handlers
func InitEventHub(hub *ws.Hub) {
	eventHub = hub
}

func publishBookingEvent(eventType string, booking *models.Booking) {
	if eventHub == nil {
		return
	}
	eventHub.Publish(&ws.Event{
		Type:      eventType,
		BookingID: booking.ID,
		Status:    string(booking.Status),
	})
}

// RegisterBookingRoutes registers all booking routes (authenticated)
func RegisterBookingRoutes(router *gin.RouterGroup) {
	router.POST("", createBooking)
	router.GET("", listBookings)
	router.GET("/:id", getBooking)
	router.PUT("/:id/status", updateBookingStatus)
	router.PUT("/:id/assign-employee",
		middleware.RequireRoles(models.RoleAdmin, models.RoleCustomerCare), assignEmployee)
	router.POST("/:id/notify-customer",
		middleware.RequireRoles(models.RoleAdmin, models.RoleCustomerCare), notifyCustomer)
	router.DELETE("/:id", deleteBooking)
}

// createBooking creates a booking for the requesting customer
func createBooking(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	if !user.IsCustomer() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only customers can create bookings"})
		return
	}

	var req models.BookingCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var service models.Service
	if err := database.DB.Where("is_active = ?", true).First(&service, req.ServiceID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load service"})
		return
	}

	scheduledDate, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scheduled_date must be YYYY-MM-DD"})
		return
	}

	booking := models.Booking{
		Reference:          uuid.NewString(),
		ServiceID:          service.ID,
		CustomerID:         user.ID,
		ScheduledDate:      scheduledDate,
		ScheduledTime:      req.ScheduledTime,
		Address:            req.Address,
		Notes:              req.Notes,
		ProblemDescription: req.ProblemDescription,
		Status:             models.BookingStatusPending,
		Payment: models.Payment{
			Method: req.PaymentMethod,
			Status: models.PaymentStatusUnpaid,
		},
	}

	if err := database.DB.Create(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}

	services.NotifyAdmins(
		"New booking",
		fmt.Sprintf("%s booked %s", user.FullName, service.Name),
		services.NotificationBookingCreated,
		map[string]interface{}{"booking_id": booking.ID},
	)
	publishBookingEvent("booking_created", &booking)

	log.Printf("✅ Booking %d created by customer %d", booking.ID, user.ID)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking created successfully",
		"booking": booking,
	})
}

// listBookings returns bookings scoped to the caller's role
func listBookings(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	query := database.DB.
		Preload("Service").
		Preload("Customer").
		Preload("Employee").
		Order("created_at DESC")

	switch user.Role {
	case models.RoleCustomer:
		query = query.Where("customer_id = ?", user.ID)
	case models.RoleEmployee:
		query = query.Where("employee_id = ?", user.ID)
	case models.RoleAdmin, models.RoleCustomerCare:
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		log.Printf("❌ Failed to list bookings for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// loadBookingScoped fetches a booking the caller is allowed to see
func loadBookingScoped(c *gin.Context, user models.User) (*models.Booking, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return nil, false
	}

	var booking models.Booking
	if err := database.DB.
		Preload("Service").
		Preload("Customer").
		Preload("Employee").
		First(&booking, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch booking"})
		return nil, false
	}

	switch user.Role {
	case models.RoleCustomer:
		if booking.CustomerID != user.ID {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return nil, false
		}
	case models.RoleEmployee:
		if booking.EmployeeID == nil || *booking.EmployeeID != user.ID {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return nil, false
		}
	}

	return &booking, true
}

func getBooking(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	booking, ok := loadBookingScoped(c, user)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// updateBookingStatus applies a role-validated status change
func updateBookingStatus(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	booking, ok := loadBookingScoped(c, user)
	if !ok {
		return
	}

	var req models.BookingStatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	change := lifecycle.StatusChange{
		Status:      models.BookingStatus(req.Status),
		Notes:       req.Notes,
		FinalAmount: req.FinalAmount,
	}

	if err := lifecycle.Apply(booking, user.Role, change); err != nil {
		if lifecycle.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	if err := database.DB.Save(booking).Error; err != nil {
		log.Printf("❌ Failed to save booking %d: %v", booking.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
		return
	}

	notificationType := services.NotificationBookingStatus
	if booking.AdminConfirmed {
		notificationType = services.NotificationBookingConfirmed
	}
	services.NotifyUser(
		booking.CustomerID,
		"Booking update",
		fmt.Sprintf("Your booking is now %s", booking.Status),
		notificationType,
		map[string]interface{}{"booking_id": booking.ID, "status": booking.Status},
	)
	publishBookingEvent("booking_update", booking)

	log.Printf("✅ Booking %d status set to %q by %s %d", booking.ID, booking.Status, user.Role, user.ID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Status updated",
		"booking": booking,
	})
}

// assignEmployee binds an employee to a booking and forces In Progress
func assignEmployee(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	booking, ok := loadBookingScoped(c, user)
	if !ok {
		return
	}

	var req models.AssignEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var employee models.User
	if err := database.DB.First(&employee, req.EmployeeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Employee not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load employee"})
		return
	}

	if !employee.IsEmployee() || !employee.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User is not an active employee"})
		return
	}

	if err := lifecycle.Assign(booking, &employee); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := database.DB.Save(booking).Error; err != nil {
		log.Printf("❌ Failed to assign employee on booking %d: %v", booking.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign employee"})
		return
	}

	// The employee is told immediately; the customer only via the
	// explicit notify-customer action.
	services.NotifyUser(
		employee.ID,
		"New assignment",
		fmt.Sprintf("You were assigned booking %s", booking.Reference),
		services.NotificationBookingAssigned,
		map[string]interface{}{"booking_id": booking.ID},
	)
	publishBookingEvent("booking_update", booking)

	log.Printf("✅ Employee %d assigned to booking %d", employee.ID, booking.ID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Employee assigned",
		"booking": booking,
	})
}

// notifyCustomer sends the customer an explicit notification about the
// current state of their booking
func notifyCustomer(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	booking, ok := loadBookingScoped(c, user)
	if !ok {
		return
	}

	body := fmt.Sprintf("Your booking %s is %s", booking.Reference, booking.Status)
	if booking.EmployeeID != nil && booking.Employee != nil {
		body = fmt.Sprintf("%s, technician: %s", body, booking.Employee.FullName)
	}

	services.NotifyUser(
		booking.CustomerID,
		"Booking update",
		body,
		services.NotificationBookingStatus,
		map[string]interface{}{"booking_id": booking.ID, "status": booking.Status},
	)

	c.JSON(http.StatusOK, gin.H{"message": "Customer notified"})
}

// deleteBooking hard-deletes a booking on direct customer cancellation
func deleteBooking(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	if !user.IsCustomer() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the booking customer can delete a booking"})
		return
	}

	booking, ok := loadBookingScoped(c, user)
	if !ok {
		return
	}

	if !lifecycle.CanCustomerDelete(booking) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Only bookings that are Pending or In Progress can be deleted",
		})
		return
	}

	if err := database.DB.Delete(booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete booking"})
		return
	}

	publishBookingEvent("booking_deleted", booking)
	log.Printf("✅ Booking %d deleted by customer %d", booking.ID, user.ID)

	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted"})
}
