package v1

import (
	"context"
	"encoding/json"

	"snapclock.com/snapclock/app/user"
)

type UserEndpoint struct {
	transport *Transport
}

// MyInfo fetches the signed-in user's profile. The backend wraps the
// profile in a "user" envelope.
func (e *UserEndpoint) MyInfo(ctx context.Context) (*user.UserData, error) {
	resp, err := e.transport.Get(ctx, "/user/my-info", nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		User user.UserData `json:"user"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}

	return &result.User, nil
}
