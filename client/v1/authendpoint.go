package v1

import (
	"context"
	"encoding/json"
)

type TokenPairDTO struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

type RegisterDTO struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DateOfBirth string `json:"date_of_birth"`
	Position    string `json:"position"`
	CompanyName string `json:"company_name"`
}

type AuthEndpoint struct {
	transport *Transport
}

func (e *AuthEndpoint) Login(ctx context.Context, email, password string) (*TokenPairDTO, error) {
	payload := map[string]string{"email": email, "password": password}

	resp, err := e.transport.Post(ctx, "/user/login", payload, nil)
	if err != nil {
		return nil, err
	}

	var result TokenPairDTO
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (e *AuthEndpoint) Register(ctx context.Context, dto *RegisterDTO) error {
	_, err := e.transport.Post(ctx, "/user/register", dto, nil)
	return err
}

// Logout revokes the refresh token server-side. The bearer token on the
// transport authorizes the call.
func (e *AuthEndpoint) Logout(ctx context.Context) error {
	_, err := e.transport.Post(ctx, "/user/logout", map[string]string{}, nil)
	return err
}

func (e *AuthEndpoint) RefreshToken(ctx context.Context, refreshToken string) (*TokenPairDTO, error) {
	payload := map[string]string{"refreshToken": refreshToken}

	resp, err := e.transport.Post(ctx, "/user/refresh-token", payload, nil)
	if err != nil {
		return nil, err
	}

	var result TokenPairDTO
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
