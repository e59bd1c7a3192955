package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceName(t *testing.T) {
	tests := []struct {
		name string
		addr Address
		want string
	}{
		{
			name: "all segments present",
			addr: Address{Road: "Main St", Suburb: "Downtown", City: "Springfield", Country: "USA"},
			want: "Main St, Downtown, Springfield, USA",
		},
		{
			name: "empty city dropped",
			addr: Address{Road: "Main St", Suburb: "Downtown", City: "", Country: "USA"},
			want: "Main St, Downtown, USA",
		},
		{
			name: "country only",
			addr: Address{Country: "USA"},
			want: "USA",
		},
		{
			name: "everything empty",
			addr: Address{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlaceName(&tt.addr))
		})
	}
}

func TestReverse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "10.5", r.URL.Query().Get("lat"))
		assert.Equal(t, "106.25", r.URL.Query().Get("lon"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"address":{"road":"Main St","suburb":"Downtown","country":"USA"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	addr, err := c.Reverse(context.Background(), 10.5, 106.25)
	require.NoError(t, err)
	assert.Equal(t, "Main St", addr.Road)
	assert.Equal(t, "Downtown", addr.Suburb)
	assert.Equal(t, "", addr.City)
	assert.Equal(t, "USA", addr.Country)
}

func TestReverseServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Reverse(context.Background(), 1, 2)
	assert.Error(t, err)
}

func TestReverseMissingAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"Unable to geocode"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Reverse(context.Background(), 1, 2)
	assert.Error(t, err)
}
