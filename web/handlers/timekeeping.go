package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"snapclock.com/snapclock/core"
	"snapclock.com/snapclock/infrastructure/communication"
	"snapclock.com/snapclock/web/common"
	"snapclock.com/snapclock/web/middlewares"
)

type TimekeepingRequest struct {
	Status   string `json:"status" binding:"required,oneof=check-in check-out"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Location string `json:"location" binding:"required"`
	ImageURL string `json:"imageURL" binding:"required,url"`
}

// SaveTimekeepingHandler records one check-in/out entry. slack may be
// nil when notifications are not configured.
func SaveTimekeepingHandler(db *gorm.DB, slack *communication.Slack) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middlewares.GetIdentity(c)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		var req TimekeepingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
			return
		}

		entry := core.TimekeepingEntry{
			UserID:   identity.ID,
			Status:   req.Status,
			Date:     req.Date,
			Time:     req.Time,
			Location: req.Location,
			ImageURL: req.ImageURL,
		}
		if err := db.Create(&entry).Error; err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		if slack != nil {
			msg := fmt.Sprintf("%s recorded %s at %s (%s %s)",
				identity.Email, req.Status, req.Location, req.Date, req.Time)
			if err := slack.Info(msg); err != nil {
				// Notification failure never fails the record.
				log.Printf("timekeeping: slack notify failed: %v", err)
			}
		}

		c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"id": entry.ID}))
	}
}
