package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusNext(t *testing.T) {
	tests := []struct {
		name    string
		status  Status
		want    Status
		wantErr bool
	}{
		{name: "check-in flips to check-out", status: StatusCheckIn, want: StatusCheckOut},
		{name: "check-out flips to check-in", status: StatusCheckOut, want: StatusCheckIn},
		{name: "unknown has no next action", status: StatusUnknown, wantErr: true},
		{name: "garbage treated as unknown", status: Status("weird"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := tt.status.Next()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrStatusUnknown)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, next)
		})
	}
}

func TestHolderCopies(t *testing.T) {
	h := NewHolder()
	assert.Nil(t, h.Get())

	data := &UserData{ID: 1, Name: "Ann", LastStatus: StatusCheckIn}
	h.Set(data)

	data.Name = "changed"
	assert.Equal(t, "Ann", h.Get().Name)

	got := h.Get()
	got.Name = "changed again"
	assert.Equal(t, "Ann", h.Get().Name)

	h.Clear()
	assert.Nil(t, h.Get())
}
