package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"appliance-booking-server/database"
	"appliance-booking-server/lifecycle"
	"appliance-booking-server/middleware"
	"appliance-booking-server/models"
)

// RegisterReviewRoutes registers review routes (authenticated)
func RegisterReviewRoutes(router *gin.RouterGroup) {
	router.GET("/eligible-bookings",
		middleware.RequireRoles(models.RoleCustomer), getEligibleBookings)
	router.POST("",
		middleware.RequireRoles(models.RoleCustomer), createReview)
	router.GET("", listReviews)
}

// getEligibleBookings lists the customer's confirmed-complete bookings
// that have no review yet. This listing is the only de-duplication there
// is; there is no uniqueness constraint on reviews.
func getEligibleBookings(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var bookings []models.Booking
	err := database.DB.
		Preload("Service").
		Where("customer_id = ? AND status = ? AND admin_confirmed = ?",
			user.ID, models.BookingStatusCompleted, true).
		Where("id NOT IN (?)", database.DB.
			Model(&models.Review{}).
			Select("booking_id").
			Where("customer_id = ?", user.ID)).
		Order("updated_at DESC").
		Find(&bookings).Error
	if err != nil {
		log.Printf("❌ Failed to list eligible bookings for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch eligible bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func createReview(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req models.ReviewCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var booking models.Booking
	if err := database.DB.First(&booking, req.BookingID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch booking"})
		return
	}

	if booking.CustomerID != user.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	if !lifecycle.IsReviewable(&booking) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only confirmed completed bookings can be reviewed"})
		return
	}

	review := models.Review{
		BookingID:  booking.ID,
		CustomerID: user.ID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	if err := database.DB.Create(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	log.Printf("✅ Review %d created for booking %d", review.ID, booking.ID)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review submitted",
		"review":  review,
	})
}

// listReviews returns recent reviews with customer and service populated
func listReviews(c *gin.Context) {
	var reviews []models.Review
	if err := database.DB.
		Preload("Customer").
		Preload("Booking.Service").
		Order("created_at DESC").
		Limit(50).
		Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
