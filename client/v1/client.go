package v1

type SnapclockClient struct {
	Transport   *Transport
	Auth        *AuthEndpoint
	User        *UserEndpoint
	Image       *ImageEndpoint
	Timekeeping *TimekeepingEndpoint
}

// NewSnapclockClient initializes the API client
func NewSnapclockClient(baseURL string, token string) *SnapclockClient {
	t := NewTransport(baseURL, token)
	return &SnapclockClient{
		Transport:   t,
		Auth:        &AuthEndpoint{transport: t},
		User:        &UserEndpoint{transport: t},
		Image:       &ImageEndpoint{transport: t},
		Timekeeping: &TimekeepingEndpoint{transport: t},
	}
}

// SetToken swaps the bearer token used on subsequent requests, e.g.
// after sign-in or a refresh rotation.
func (c *SnapclockClient) SetToken(token string) {
	c.Transport.AuthToken = token
}
