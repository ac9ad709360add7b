package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	apierrors "github.com/nkgevorgyan/twelveweeks/internal/errors"
	"github.com/nkgevorgyan/twelveweeks/internal/types"
)

// ListEvents retrieves all events visible to the current user.
func ListEvents(ctx context.Context, httpClient *http.Client, baseURL string) ([]types.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/events", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewNetworkError("list events", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus("list events", resp, http.StatusOK); err != nil {
		return nil, err
	}
	var events []types.Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, err
	}
	return events, nil
}
