package routes

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"appliance-booking-server/database"
	"appliance-booking-server/models"
	"appliance-booking-server/services"
	"appliance-booking-server/utils"
)

// RegisterAdminRoutes registers admin management routes. The caller wires
// the admin role gate.
func RegisterAdminRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard/stats", getDashboardStats)

	// User management
	router.GET("/users", getAllUsers)
	router.GET("/users/:id", getUserById)
	router.POST("/users", createStaffUser)
	router.PATCH("/users/:id/status", updateUserStatus)
	router.PATCH("/users/:id/role", updateUserRole)
	router.DELETE("/users/:id", deleteUser)

	// Employee overview
	router.GET("/employees", getAllEmployees)

	// Booking oversight
	router.GET("/bookings", getAllBookings)

	// Services management
	router.GET("/services", getAllServicesForAdmin)
	router.POST("/services", createService)
	router.PUT("/services/:id", updateService)
	router.DELETE("/services/:id", deleteService)

	// Site settings
	router.PUT("/settings", updateSiteSettings)
}

// getDashboardStats aggregates headline counts for the admin dashboard
func getDashboardStats(c *gin.Context) {
	var totalUsers, totalEmployees, totalBookings int64
	var pendingBookings, awaitingConfirmation, completedBookings int64
	var pendingCallbacks int64

	database.DB.Model(&models.User{}).Count(&totalUsers)
	database.DB.Model(&models.User{}).Where("role = ?", models.RoleEmployee).Count(&totalEmployees)
	database.DB.Model(&models.Booking{}).Count(&totalBookings)
	database.DB.Model(&models.Booking{}).Where("status = ?", models.BookingStatusPending).Count(&pendingBookings)
	database.DB.Model(&models.Booking{}).Where("status = ?", models.BookingStatusAwaitingAdminReview).Count(&awaitingConfirmation)
	database.DB.Model(&models.Booking{}).Where("status = ? AND admin_confirmed = ?", models.BookingStatusCompleted, true).Count(&completedBookings)
	database.DB.Model(&models.CallbackRequest{}).Where("status = ?", models.CallbackStatusPending).Count(&pendingCallbacks)

	var confirmedRevenue float64
	database.DB.Model(&models.Booking{}).
		Where("admin_confirmed = ?", true).
		Select("COALESCE(SUM(final_amount), 0)").
		Scan(&confirmedRevenue)

	c.JSON(http.StatusOK, gin.H{
		"total_users":           totalUsers,
		"total_employees":       totalEmployees,
		"total_bookings":        totalBookings,
		"pending_bookings":      pendingBookings,
		"awaiting_confirmation": awaitingConfirmation,
		"completed_bookings":    completedBookings,
		"pending_callbacks":     pendingCallbacks,
		"confirmed_revenue":     confirmedRevenue,
	})
}

func getAllUsers(c *gin.Context) {
	query := database.DB.Order("created_at DESC")

	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

func getUserById(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// createStaffUser lets an admin create employee, customer-care, or admin
// accounts
func createStaffUser(c *gin.Context) {
	var req struct {
		FullName    string `json:"full_name" binding:"required"`
		Email       string `json:"email" binding:"required,email"`
		PhoneNumber string `json:"phone_number"`
		Password    string `json:"password" binding:"required"`
		Role        string `json:"role" binding:"required,oneof=customer employee admin customer_care"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.User
	if err := database.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	user := models.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: hash,
		Role:         models.UserRole(req.Role),
	}

	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	log.Printf("✅ Admin created %s account %d", user.Role, user.ID)

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func updateUserStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "is_active is required"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	if err := database.DB.Model(&user).Update("is_active", *req.IsActive).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	if !*req.IsActive {
		// Revoke open sessions immediately instead of waiting for the
		// IsActive check at next token use.
		jwtService := services.NewJWTService()
		if err := jwtService.RevokeAllUserTokens(user.ID); err != nil {
			log.Printf("❌ Failed to revoke tokens for deactivated user %d: %v", user.ID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "User status updated"})
}

func updateUserRole(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req struct {
		Role string `json:"role" binding:"required,oneof=customer employee admin customer_care"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	if err := database.DB.Model(&user).Update("role", req.Role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User role updated"})
}

func deleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := database.DB.Delete(&models.User{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// getAllEmployees lists employees with their derived working status
func getAllEmployees(c *gin.Context) {
	var employees []models.User
	if err := database.DB.
		Where("role = ?", models.RoleEmployee).
		Order("full_name").
		Find(&employees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch employees"})
		return
	}

	type employeeView struct {
		models.User
		WorkingStatus string `json:"working_status"`
	}

	views := make([]employeeView, 0, len(employees))
	for _, e := range employees {
		views = append(views, employeeView{User: e, WorkingStatus: e.WorkingStatus()})
	}

	c.JSON(http.StatusOK, gin.H{"employees": views})
}

// getAllBookings lists bookings for the admin dashboard with optional
// status filtering
func getAllBookings(c *gin.Context) {
	query := database.DB.
		Preload("Service").
		Preload("Customer").
		Preload("Employee").
		Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func getAllServicesForAdmin(c *gin.Context) {
	var services []models.Service
	if err := database.DB.Order("name").Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": services})
}

func createService(c *gin.Context) {
	var req models.ServiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	service := models.Service{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Duration:    req.Duration,
		IsActive:    true,
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := database.DB.Create(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create service"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"service": service})
}

func updateService(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	var service models.Service
	if err := database.DB.First(&service, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch service"})
		return
	}

	var req models.ServiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	service.Name = req.Name
	service.Description = req.Description
	service.Category = req.Category
	service.Price = req.Price
	service.ImageURL = req.ImageURL
	service.Duration = req.Duration
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := database.DB.Save(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update service"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"service": service})
}

func deleteService(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	if err := database.DB.Delete(&models.Service{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete service"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}

// updateSiteSettings updates the single settings row
func updateSiteSettings(c *gin.Context) {
	var req models.SiteSettingsUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var settings models.SiteSettings
	if err := database.DB.First(&settings, 1).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
		return
	}

	settings.SiteName = req.SiteName
	settings.ContactEmail = req.ContactEmail
	settings.ContactPhone = req.ContactPhone
	settings.Address = req.Address
	settings.OpeningHours = req.OpeningHours
	settings.Announcement = req.Announcement

	if err := database.DB.Save(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}
