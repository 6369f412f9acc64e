package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"appliance-booking-server/database"
	"appliance-booking-server/models"
	"appliance-booking-server/utils"
	ws "appliance-booking-server/websocket"
)

// RegisterEventFeedRoute registers the staff dashboard WebSocket feed.
// Browsers can't set headers on WebSocket upgrades, so the token travels
// as a query parameter.
func RegisterEventFeedRoute(router *gin.RouterGroup, hub *ws.Hub) {
	router.GET("/ws/events", func(c *gin.Context) {
		tokenString := c.Query("token")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Token required",
				"message": "Please provide a valid token in query parameters",
			})
			return
		}

		claims, err := utils.VerifyToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid token",
				"message": "Token is invalid or expired",
			})
			return
		}

		var user models.User
		if err := database.DB.First(&user, claims.UserID).Error; err != nil || !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		// Customers poll; the live feed is for staff dashboards.
		if !user.IsStaff() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Staff access required"})
			return
		}

		ws.ServeWebSocket(hub, c.Writer, c.Request, user.ID, string(user.Role))
	})
}
