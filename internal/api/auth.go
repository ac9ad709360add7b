package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	apierrors "github.com/nkgevorgyan/twelveweeks/internal/errors"
	"github.com/nkgevorgyan/twelveweeks/internal/types"
)

// Authenticate exchanges credentials for a bearer token. The backend expects
// an OAuth2-style form body with the email in the username field.
func Authenticate(ctx context.Context, httpClient *http.Client, baseURL, email, password string) (*types.AuthToken, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	u := fmt.Sprintf("%s/auth/login", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewNetworkError("authenticate", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus("authenticate", resp, http.StatusOK); err != nil {
		return nil, err
	}
	var tok types.AuthToken
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return nil, err
	}
	return &tok, nil
}
