package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/eduplat/campus-cli/internal/adapters/rest"
	"github.com/eduplat/campus-cli/internal/domain"
	"github.com/eduplat/campus-cli/internal/ports"
)

// AuthAPI covers the auth service endpoints.
type AuthAPI struct {
	client *rest.Client
}

var _ ports.Authenticator = (*AuthAPI)(nil)

func NewAuthAPI(client *rest.Client) *AuthAPI {
	return &AuthAPI{client: client}
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (a *AuthAPI) Login(ctx context.Context, email, password string) (domain.Session, error) {
	body, err := rest.JSON(map[string]string{"email": email, "password": password})
	if err != nil {
		return domain.Session{}, err
	}

	result, err := a.client.Do(ctx, "/auth/login", rest.Options{Method: http.MethodPost, Body: body})
	if err != nil {
		return domain.Session{}, err
	}

	var payload loginResponse
	if err := result.DecodeData(&payload); err != nil {
		return domain.Session{}, fmt.Errorf("decode login response: %w", err)
	}
	return domain.Session{Token: payload.Token, User: payload.User}, nil
}

func (a *AuthAPI) Register(ctx context.Context, email, username, realName, password, role string) error {
	body, err := rest.JSON(map[string]string{
		"email":    email,
		"username": username,
		"realName": realName,
		"password": password,
		"role":     role,
	})
	if err != nil {
		return err
	}
	_, err = a.client.Do(ctx, "/auth/register", rest.Options{Method: http.MethodPost, Body: body})
	return err
}

func (a *AuthAPI) ResetPassword(ctx context.Context, email, realName, newPassword string) error {
	body, err := rest.JSON(map[string]string{
		"email":       email,
		"realName":    realName,
		"newPassword": newPassword,
	})
	if err != nil {
		return err
	}
	_, err = a.client.Do(ctx, "/auth/reset-password", rest.Options{Method: http.MethodPost, Body: body})
	return err
}

func (a *AuthAPI) Logout(ctx context.Context) error {
	_, err := a.client.Do(ctx, "/auth/logout", rest.Options{Method: http.MethodPost})
	return err
}

func (a *AuthAPI) CheckStatus(ctx context.Context, userID int64) (domain.Result, error) {
	return a.client.Do(ctx, fmt.Sprintf("/auth/check-status/%d", userID), rest.Options{})
}

func (a *AuthAPI) ValidateToken(ctx context.Context, userID int64) (domain.Result, error) {
	return a.client.Do(ctx, fmt.Sprintf("/auth/validate-token/%d", userID), rest.Options{})
}
