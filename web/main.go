package main

import (
	"context"
	"encoding/base64"
	"log"

	"github.com/gin-gonic/gin"

	"snapclock.com/snapclock/core"
	"snapclock.com/snapclock/infrastructure/communication"
	"snapclock.com/snapclock/infrastructure/devops"
	"snapclock.com/snapclock/web/handlers"
	"snapclock.com/snapclock/web/middlewares"
)

func main() {
	ctx := context.Background()

	cfg, err := devops.LoadServerConfig(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.DSN == "" {
		log.Fatal("DSN is not configured")
	}
	if cfg.SigningSecret == "" {
		log.Fatal("signing secret is not configured")
	}
	jwtSecret, err := base64.StdEncoding.DecodeString(cfg.SigningSecret)
	if err != nil {
		log.Fatal("Failed to decode JWT secret:", err)
	}

	db, err := core.ConnectDB(cfg.DSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := core.Migrate(db); err != nil {
		log.Fatal(err)
	}

	var photos handlers.PhotoStore
	if cfg.S3Bucket != "" {
		photos = &handlers.S3PhotoStore{Bucket: cfg.S3Bucket, Region: cfg.S3Region}
	} else {
		photos = &handlers.DiskPhotoStore{Dir: cfg.UploadDir, BaseURL: cfg.PublicBaseURL}
	}

	slack := communication.ConnectSlack()

	r := gin.Default()
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	r.POST("/user/login", handlers.LoginHandler(db, cfg.SigningSecret, cfg.TokenTTLSeconds))
	r.POST("/user/register", handlers.RegisterHandler(db))
	r.POST("/user/refresh-token", handlers.RefreshTokenHandler(db, cfg.SigningSecret, cfg.TokenTTLSeconds))
	r.POST("/image/cloudinary-upload", handlers.UploadHandler(photos))
	r.GET("/image/*key", handlers.FetchImageHandler(photos))

	protected := r.Group("/")
	protected.Use(middlewares.Authentication(jwtSecret))
	{
		protected.POST("/user/logout", handlers.LogoutHandler(db))
		protected.GET("/user/my-info", handlers.MyInfoHandler(db))
		protected.POST("/timekeeping", handlers.SaveTimekeepingHandler(db, slack))
	}

	r.Run(cfg.Addr)
}
