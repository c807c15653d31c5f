package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/eduplat/campus-cli/internal/adapters/rest"
	"github.com/eduplat/campus-cli/internal/domain"
	"github.com/eduplat/campus-cli/internal/ports"
)

// UserAPI covers the user service: admin listing, profile and settings.
type UserAPI struct {
	client *rest.Client
}

var _ ports.ProfileGateway = (*UserAPI)(nil)

func NewUserAPI(client *rest.Client) *UserAPI {
	return &UserAPI{client: client}
}

func (a *UserAPI) List(ctx context.Context, page Page) (domain.Result, error) {
	return a.client.Do(ctx, withQuery("/users/list", page.values()), rest.Options{})
}

// UpdateStatus flips a user's enabled flag. The acting operator travels in
// a header, which is exactly why these admin calls bypass the URL-keyed
// response cache.
func (a *UserAPI) UpdateStatus(ctx context.Context, id int64, status int, operatorID int64) (domain.Result, error) {
	body, err := rest.JSON(map[string]int{"status": status})
	if err != nil {
		return domain.Result{}, err
	}

	opts := rest.Options{Method: http.MethodPut, Body: body, Header: http.Header{}}
	if operatorID > 0 {
		opts.Header.Set("X-User-Id", strconv.FormatInt(operatorID, 10))
	}
	return a.client.Do(ctx, fmt.Sprintf("/users/%d/status", id), opts)
}

func (a *UserAPI) Delete(ctx context.Context, id int64, operatorID int64) (domain.Result, error) {
	opts := rest.Options{Method: http.MethodDelete, Header: http.Header{}}
	if operatorID > 0 {
		opts.Header.Set("X-User-Id", strconv.FormatInt(operatorID, 10))
	}
	return a.client.Do(ctx, fmt.Sprintf("/users/%d", id), opts)
}

func (a *UserAPI) UpdateProfile(ctx context.Context, id int64, profile domain.User) (domain.User, error) {
	body, err := rest.JSON(profile)
	if err != nil {
		return domain.User{}, err
	}

	result, err := a.client.Do(ctx, fmt.Sprintf("/users/%d/profile", id),
		rest.Options{Method: http.MethodPut, Body: body})
	if err != nil {
		return domain.User{}, err
	}

	var updated domain.User
	if err := result.DecodeData(&updated); err != nil {
		return domain.User{}, fmt.Errorf("decode updated profile: %w", err)
	}
	return updated, nil
}

func (a *UserAPI) GetSettings(ctx context.Context, userID int64) (domain.UserSettings, error) {
	result, err := a.client.Do(ctx, fmt.Sprintf("/users/%d/settings", userID), rest.Options{})
	if err != nil {
		return domain.UserSettings{}, err
	}

	var settings domain.UserSettings
	if err := result.DecodeData(&settings); err != nil {
		return domain.UserSettings{}, fmt.Errorf("decode settings: %w", err)
	}
	return settings, nil
}

func (a *UserAPI) UpdateSettings(ctx context.Context, userID int64, settings domain.UserSettings) error {
	body, err := rest.JSON(settings)
	if err != nil {
		return err
	}
	_, err = a.client.Do(ctx, fmt.Sprintf("/users/%d/settings", userID),
		rest.Options{Method: http.MethodPut, Body: body})
	return err
}

// Avatar uploads go up as multipart form data.
func (a *UserAPI) UploadAvatar(ctx context.Context, userID int64, filename string, data []byte) (domain.Result, error) {
	body, err := rest.Form(nil, rest.FilePart{Field: "avatar", Name: filename, Data: data})
	if err != nil {
		return domain.Result{}, err
	}
	return a.client.Do(ctx, fmt.Sprintf("/users/%d/avatar", userID),
		rest.Options{Method: http.MethodPost, Body: body})
}
