package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"snapclock.com/snapclock/core"
	"snapclock.com/snapclock/security"
	"snapclock.com/snapclock/web/common"
	"snapclock.com/snapclock/web/middlewares"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DateOfBirth string `json:"date_of_birth" binding:"required"`
	Position    string `json:"position" binding:"required"`
	CompanyName string `json:"company_name" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func issueTokens(c *gin.Context, db *gorm.DB, u *core.User, base64Secret string, ttlSeconds int64) {
	token, err := security.CreateIdentityToken(&security.Identity{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}, base64Secret, ttlSeconds)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("failed to create token"))
		return
	}

	// Rotate the refresh token on every issue.
	refreshToken := uuid.NewString()
	if err := db.Model(u).Update("refresh_token", refreshToken).Error; err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("failed to store refresh token"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":        token,
		"refreshToken": refreshToken,
	})
}

func LoginHandler(db *gorm.DB, base64Secret string, ttlSeconds int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
			return
		}

		var u core.User
		if err := db.Where("email = ?", req.Email).Take(&u).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
				return
			}
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
			return
		}

		issueTokens(c, db, &u, base64Secret, ttlSeconds)
	}
}

func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse("failed to hash password"))
			return
		}

		var existing int64
		db.Model(&core.User{}).Where("email = ?", req.Email).Count(&existing)
		if existing > 0 {
			c.JSON(http.StatusConflict, common.NewErrorResponse("email already registered"))
			return
		}

		u := core.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: string(hash),
			DateOfBirth:  req.DateOfBirth,
			Position:     req.Position,
			CompanyName:  req.CompanyName,
		}
		if err := db.Create(&u).Error; err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"id": u.ID}))
	}
}

func LogoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middlewares.GetIdentity(c)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if err := db.Model(&core.User{}).Where("id = ?", identity.ID).
			Update("refresh_token", nil).Error; err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{}))
	}
}

func RefreshTokenHandler(db *gorm.DB, base64Secret string, ttlSeconds int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
			return
		}

		var u core.User
		if err := db.Where("refresh_token = ?", req.RefreshToken).Take(&u).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusUnauthorized, common.NewErrorResponse("invalid refresh token"))
				return
			}
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		issueTokens(c, db, &u, base64Secret, ttlSeconds)
	}
}
