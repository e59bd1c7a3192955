package user

import (
	"errors"
	"sync"
)

// Status is the last recorded check-in/out state. It drives the next
// offered action: a checked-in user checks out and vice versa.
type Status string

const (
	StatusUnknown  Status = "unknown"
	StatusCheckIn  Status = "check-in"
	StatusCheckOut Status = "check-out"
)

var ErrStatusUnknown = errors.New("last status is unknown")

// Next returns the status to record on the next submission. Unknown has
// no next action; callers must keep submission disabled in that case.
func (s Status) Next() (Status, error) {
	switch s {
	case StatusCheckIn:
		return StatusCheckOut, nil
	case StatusCheckOut:
		return StatusCheckIn, nil
	default:
		return StatusUnknown, ErrStatusUnknown
	}
}

// UserData is the profile fetched after sign-in. It is never persisted;
// a process restart re-fetches it.
type UserData struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	DateOfBirth string `json:"date_of_birth"`
	Position    string `json:"position"`
	LastStatus  Status `json:"last_status"`
	CompanyName string `json:"company_name"`
}

// Holder is the single shared profile instance. Only the profile loader
// and sign-out paths mutate it.
type Holder struct {
	mu   sync.Mutex
	data *UserData
}

func NewHolder() *Holder {
	return &Holder{}
}

func (h *Holder) Get() *UserData {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.data == nil {
		return nil
	}
	copy := *h.data
	return &copy
}

func (h *Holder) Set(data *UserData) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if data == nil {
		h.data = nil
		return
	}
	copy := *data
	h.data = &copy
}

func (h *Holder) Clear() {
	h.Set(nil)
}
