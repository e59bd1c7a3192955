package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"snapclock.com/snapclock/core"
	"snapclock.com/snapclock/web/common"
	"snapclock.com/snapclock/web/middlewares"
)

// MyInfoHandler returns the signed-in user's profile wrapped in a
// "user" envelope. last_status comes from the latest timekeeping entry,
// "unknown" when none exists yet.
func MyInfoHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middlewares.GetIdentity(c)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		var u core.User
		if err := db.Take(&u, identity.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusUnauthorized, common.NewErrorResponse("user not found"))
				return
			}
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		lastStatus := "unknown"
		var entry core.TimekeepingEntry
		err := db.Where("user_id = ?", u.ID).Order("id DESC").Take(&entry).Error
		if err == nil {
			lastStatus = entry.Status
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user": gin.H{
				"id":            u.ID,
				"name":          u.Name,
				"email":         u.Email,
				"date_of_birth": u.DateOfBirth,
				"position":      u.Position,
				"last_status":   lastStatus,
				"company_name":  u.CompanyName,
			},
		})
	}
}
