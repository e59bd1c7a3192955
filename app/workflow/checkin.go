package workflow

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"snapclock.com/snapclock/app/device"
	"snapclock.com/snapclock/app/user"
	v1 "snapclock.com/snapclock/client/v1"
	"snapclock.com/snapclock/geocode"
	"snapclock.com/snapclock/utils"
)

// UIState is the visible state of the review: a loading indicator while
// a submission is in flight, then a transient success or fail flash
// that reverts to idle after FlashDuration.
type UIState int

const (
	StateIdle UIState = iota
	StateLoading
	StateSuccess
	StateFail
)

// DefaultFlashDuration is how long the success/fail state stays up.
const DefaultFlashDuration = 2 * time.Second

var (
	// ErrSubmitInFlight rejects a second Submit while one is outstanding.
	ErrSubmitInFlight = errors.New("a submission is already in flight")
	// ErrNotReady means the photo or the resolved place is missing.
	ErrNotReady = errors.New("no image or place name available")
)

// Workflow builds reviews for the check-in submission sequence.
type Workflow struct {
	Client   *v1.SnapclockClient
	Location device.LocationProvider
	Geocoder *geocode.Client
	Profile  *user.Holder

	// FlashDuration defaults to DefaultFlashDuration when zero.
	FlashDuration time.Duration

	// Clock is swappable in tests; defaults to time.Now.
	Clock func() time.Time

	// OnState observes UI state changes. Optional.
	OnState func(UIState)
	// OnAlert surfaces user-visible alerts (permission denied, geocode
	// failure). Optional.
	OnAlert func(message string)
	// OnNavigateHome fires after the success flash. Optional.
	OnNavigateHome func()
}

func (w *Workflow) now() time.Time {
	if w.Clock != nil {
		return w.Clock()
	}
	return time.Now()
}

func (w *Workflow) flashDuration() time.Duration {
	if w.FlashDuration > 0 {
		return w.FlashDuration
	}
	return DefaultFlashDuration
}

func (w *Workflow) alert(message string) {
	if w.OnAlert != nil {
		w.OnAlert(message)
	}
}

// Result reports what a successful submission recorded.
type Result struct {
	Status   user.Status
	ImageURL string
	Date     string
	Time     string
	Location string
}

// Review is one activation of the submission screen. The date and time
// are captured once when the review opens, not when the user submits.
// Location resolution runs independently; submission stays unavailable
// until it lands.
type Review struct {
	w     *Workflow
	photo *device.Photo

	date string
	time string

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	place    string
	resolved chan struct{}
	state    UIState
	inFlight bool
}

// OpenReview captures the timestamp and kicks off location resolution
// bound to the review's lifetime.
func (w *Workflow) OpenReview(ctx context.Context, photo *device.Photo) *Review {
	now := w.now()
	rctx, cancel := context.WithCancel(ctx)

	r := &Review{
		w:        w,
		photo:    photo,
		date:     utils.FormatDate(now),
		time:     utils.FormatTime(now),
		ctx:      rctx,
		cancel:   cancel,
		resolved: make(chan struct{}),
	}

	go r.resolveLocation()

	return r
}

// Close tears the review down. In-flight work observes the cancelled
// context and stops before touching state.
func (r *Review) Close() {
	r.cancel()
}

func (r *Review) Date() string { return r.date }
func (r *Review) Time() string { return r.time }

// PlaceName reports the resolved location, if any.
func (r *Review) PlaceName() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.place, r.place != ""
}

// WaitForPlace blocks until location resolution has finished (either
// way) or the context ends.
func (r *Review) WaitForPlace(ctx context.Context) error {
	select {
	case <-r.resolved:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-r.ctx.Done():
		return r.ctx.Err()
	}
}

func (r *Review) State() UIState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Review) setState(s UIState) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
	if r.w.OnState != nil {
		r.w.OnState(s)
	}
}

// resolveLocation runs once per review: permission, position, reverse
// geocode. Each failure aborts only this step; the place stays
// unresolved and submission disabled.
func (r *Review) resolveLocation() {
	defer close(r.resolved)

	if err := r.w.Location.RequestPermission(r.ctx); err != nil {
		log.Printf("workflow: location permission: %v", err)
		r.w.alert("Permission to access location was denied")
		return
	}

	pos, err := r.w.Location.CurrentPosition(r.ctx)
	if err != nil {
		log.Printf("workflow: current position: %v", err)
		r.w.alert("Failed to get current location")
		return
	}

	addr, err := r.w.Geocoder.Reverse(r.ctx, pos.Latitude, pos.Longitude)
	if err != nil {
		log.Printf("workflow: reverse geocode: %v", err)
		r.w.alert("Failed to fetch place name")
		return
	}

	if r.ctx.Err() != nil {
		// Review was closed while the lookup was in flight.
		return
	}

	r.mu.Lock()
	r.place = geocode.PlaceName(addr)
	r.mu.Unlock()
}

// Submit runs the upload-then-record sequence. The timekeeping POST
// happens only after the image upload succeeded; any failure on either
// call flashes the fail state. A second call while one is outstanding
// is rejected.
func (r *Review) Submit(ctx context.Context) (*Result, error) {
	r.mu.Lock()
	if r.inFlight {
		r.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	if r.photo == nil || r.place == "" {
		r.mu.Unlock()
		return nil, ErrNotReady
	}
	place := r.place
	r.inFlight = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.inFlight = false
		r.mu.Unlock()
	}()

	data := r.w.Profile.Get()
	if data == nil {
		return nil, errors.New("no user profile loaded")
	}
	newStatus, err := data.LastStatus.Next()
	if err != nil {
		return nil, err
	}

	r.setState(StateLoading)

	imageURL, err := r.w.Client.Image.Upload(ctx, &v1.UploadRequest{
		FileName: r.photo.Name,
		Data:     r.photo.Data,
		Date:     r.date,
		Time:     r.time,
		Email:    data.Email,
		Status:   string(newStatus),
	})
	if err != nil {
		r.flashFail()
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	record := &v1.TimekeepingRecordDTO{
		Status:   string(newStatus),
		Date:     r.date,
		Time:     r.time,
		Location: place,
		ImageURL: imageURL,
	}
	if err := r.w.Client.Timekeeping.Save(ctx, record); err != nil {
		r.flashFail()
		return nil, fmt.Errorf("failed to save timekeeping record: %w", err)
	}

	r.flashSuccess()

	return &Result{
		Status:   newStatus,
		ImageURL: imageURL,
		Date:     r.date,
		Time:     r.time,
		Location: place,
	}, nil
}

func (r *Review) flashFail() {
	r.setState(StateFail)
	time.AfterFunc(r.w.flashDuration(), func() {
		if r.ctx.Err() != nil {
			return
		}
		r.setState(StateIdle)
	})
}

func (r *Review) flashSuccess() {
	r.setState(StateSuccess)
	time.AfterFunc(r.w.flashDuration(), func() {
		if r.ctx.Err() != nil {
			return
		}
		r.setState(StateIdle)
		if r.w.OnNavigateHome != nil {
			r.w.OnNavigateHome()
		}
	})
}
