package routes

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"appliance-booking-server/database"
	"appliance-booking-server/middleware"
	"appliance-booking-server/models"
)

// RegisterCallbackRoutes registers the public callback-request route
func RegisterCallbackRoutes(router *gin.RouterGroup) {
	router.POST("", createCallbackRequest)
}

// RegisterCareCallbackRoutes registers customer-care callback handling
func RegisterCareCallbackRoutes(router *gin.RouterGroup) {
	router.Use(middleware.RequireRoles(models.RoleCustomerCare, models.RoleAdmin))
	router.GET("/callbacks", listCallbackRequests)
	router.PUT("/callbacks/:id", updateCallbackRequest)
}

// createCallbackRequest accepts a call-me-back request from the public site
func createCallbackRequest(c *gin.Context) {
	var req models.CallbackCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	callback := models.CallbackRequest{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Message:     req.Message,
		Status:      models.CallbackStatusPending,
	}

	if err := database.DB.Create(&callback).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create callback request"})
		return
	}

	log.Printf("✅ Callback request %d created", callback.ID)

	c.JSON(http.StatusCreated, gin.H{
		"message":  "We will call you back shortly",
		"callback": callback,
	})
}

// listCallbackRequests returns callback requests, optionally by status
func listCallbackRequests(c *gin.Context) {
	query := database.DB.Preload("HandledBy").Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var callbacks []models.CallbackRequest
	if err := query.Find(&callbacks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch callback requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"callbacks": callbacks})
}

// updateCallbackRequest moves a callback request through its states and
// records who handled it
func updateCallbackRequest(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid callback ID"})
		return
	}

	var req models.CallbackUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var callback models.CallbackRequest
	if err := database.DB.First(&callback, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Callback request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch callback request"})
		return
	}

	handlerID := user.ID
	callback.Status = req.Status
	callback.HandledByID = &handlerID

	if err := database.DB.Save(&callback).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update callback request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Callback request updated",
		"callback": callback,
	})
}
