package device

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrPermissionDenied is returned when the user refuses a device
// permission prompt.
var ErrPermissionDenied = errors.New("permission denied")

type Position struct {
	Latitude  float64
	Longitude float64
}

// LocationProvider is the device geolocation service.
type LocationProvider interface {
	// RequestPermission asks for foreground location access.
	RequestPermission(ctx context.Context) error
	CurrentPosition(ctx context.Context) (Position, error)
}

// Photo is a captured image held in memory.
type Photo struct {
	Name string
	Data []byte
}

// Camera is the device capture service.
type Camera interface {
	Capture(ctx context.Context) (*Photo, error)
}

// FileCamera reads a prepared image file instead of driving hardware.
type FileCamera struct {
	Path string
}

func (c *FileCamera) Capture(ctx context.Context) (*Photo, error) {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read photo %s: %w", c.Path, err)
	}
	return &Photo{Name: filepath.Base(c.Path), Data: data}, nil
}

// StaticLocation reports a fixed position, permission always granted.
type StaticLocation struct {
	Position Position
}

func (l *StaticLocation) RequestPermission(ctx context.Context) error {
	return nil
}

func (l *StaticLocation) CurrentPosition(ctx context.Context) (Position, error) {
	return l.Position, nil
}
