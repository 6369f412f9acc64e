package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"appliance-booking-server/database"
	"appliance-booking-server/models"
)

// RegisterSettingsRoutes registers the public settings route
func RegisterSettingsRoutes(router *gin.RouterGroup) {
	router.GET("", getSiteSettings)
}

// getSiteSettings returns the single settings row
func getSiteSettings(c *gin.Context) {
	var settings models.SiteSettings
	if err := database.DB.First(&settings, 1).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}
