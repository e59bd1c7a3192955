package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

type ImageEndpoint struct {
	transport *Transport
}

// UploadRequest carries the capture plus the metadata the storage
// backend tags the object with.
type UploadRequest struct {
	FileName string
	Data     []byte
	Date     string // dd/MM/yyyy
	Time     string // HH:mm:ss
	Email    string
	Status   string
}

// Upload posts the photo as a multipart form and returns the stored
// object's public URL.
func (e *ImageEndpoint) Upload(ctx context.Context, req *UploadRequest) (string, error) {
	fields := map[string]string{
		"formattedDate": req.Date,
		"formattedTime": req.Time,
		"userEmail":     req.Email,
		"status":        req.Status,
	}

	resp, err := e.transport.PostMultipart(ctx, "/image/cloudinary-upload", "file", req.FileName, bytes.NewReader(req.Data), fields)
	if err != nil {
		return "", err
	}

	var result struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return "", err
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("upload response missing secure_url")
	}

	return result.SecureURL, nil
}
