package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"snapclock.com/snapclock/web/common"
)

// PhotoStore persists uploaded captures and serves them back.
type PhotoStore interface {
	// Put stores the photo under key and returns its public URL.
	Put(ctx context.Context, key string, contentType string, r io.Reader) (string, error)
	// Open streams a stored photo into w; used by the image fetch route.
	Open(ctx context.Context, key string, w io.Writer) error
}

func sanitizeSegment(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '.' || r == '_' || r == '@':
			return r
		default:
			return '-'
		}
	}, s)
}

// UploadHandler handles the capture upload. The form carries the file
// plus the metadata the client already formatted (date, time, email,
// status); those become part of the object key so captures are
// traceable in storage.
func UploadHandler(store PhotoStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Parse multipart form (max 50 MB)
		if err := c.Request.ParseMultipartForm(50 << 20); err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
			return
		}

		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("missing file part"))
			return
		}

		ext := strings.ToLower(filepath.Ext(file.Filename))
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("unsupported file type"))
			return
		}
		contentType := "image/jpeg"
		if ext == ".png" {
			contentType = "image/png"
		}

		email := c.PostForm("userEmail")
		status := c.PostForm("status")
		date := strings.ReplaceAll(c.PostForm("formattedDate"), "/", "-")
		clock := strings.ReplaceAll(c.PostForm("formattedTime"), ":", "-")

		key := fmt.Sprintf("%s/%s-%s-%s-%s%s",
			sanitizeSegment(email), sanitizeSegment(status), date, clock, uuid.NewString(), ext)

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}
		defer src.Close()

		url, err := store.Put(c.Request.Context(), key, contentType, src)
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, gin.H{"secure_url": url})
	}
}

// FetchImageHandler streams a stored capture back to the client.
func FetchImageHandler(store PhotoStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimPrefix(c.Param("key"), "/")
		if key == "" {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("missing key"))
			return
		}

		contentType := "image/jpeg"
		if strings.HasSuffix(key, ".png") {
			contentType = "image/png"
		}
		c.Header("Content-Type", contentType)

		if err := store.Open(c.Request.Context(), key, c.Writer); err != nil {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("image not found"))
		}
	}
}
