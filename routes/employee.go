package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"appliance-booking-server/database"
	"appliance-booking-server/middleware"
	"appliance-booking-server/models"
)

// RegisterEmployeeRoutes registers employee self-service routes
func RegisterEmployeeRoutes(router *gin.RouterGroup) {
	router.Use(middleware.RequireRoles(models.RoleEmployee))
	router.PUT("/status/toggle", toggleWorkingStatus)
	router.GET("/status", getWorkingStatus)
}

// toggleWorkingStatus flips the employee's busy/free flag. Read then
// write, last-write-wins: concurrent sessions for the same employee can
// race, which is acceptable for a self-reported flag.
func toggleWorkingStatus(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var employee models.User
	if err := database.DB.First(&employee, user.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	employee.IsWorking = !employee.IsWorking
	if err := database.DB.Model(&employee).Update("is_working", employee.IsWorking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update working status"})
		return
	}

	log.Printf("✅ Employee %d working status toggled to %s", employee.ID, employee.WorkingStatus())

	c.JSON(http.StatusOK, gin.H{
		"message":        "Working status updated",
		"working_status": employee.WorkingStatus(),
	})
}

// getWorkingStatus returns the derived working status without mutating it
func getWorkingStatus(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var employee models.User
	if err := database.DB.First(&employee, user.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"working_status": employee.WorkingStatus()})
}
