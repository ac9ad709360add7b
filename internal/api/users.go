package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	apierrors "github.com/nkgevorgyan/twelveweeks/internal/errors"
	"github.com/nkgevorgyan/twelveweeks/internal/types"
)

// CreateUser registers a new account. No token is required.
func CreateUser(ctx context.Context, httpClient *http.Client, baseURL string, req types.RegisterRequest) (*types.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/users", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewNetworkError("create user", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus("create user", resp, http.StatusOK); err != nil {
		return nil, err
	}
	var user types.UserProfile
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FetchCurrentUser retrieves the profile of the token's owner.
func FetchCurrentUser(ctx context.Context, httpClient *http.Client, baseURL string) (*types.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/users/me", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewNetworkError("fetch current user", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus("fetch current user", resp, http.StatusOK); err != nil {
		return nil, err
	}
	var user types.UserProfile
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies a partial update to the current user's profile and
// returns the replacement profile.
func UpdateProfile(ctx context.Context, httpClient *http.Client, baseURL string, req types.UpdateProfileRequest) (*types.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/users/me", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewNetworkError("update profile", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus("update profile", resp, http.StatusOK); err != nil {
		return nil, err
	}
	var user types.UserProfile
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}
