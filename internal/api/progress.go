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

// LogProgress appends one check-in to a goal's progress log and returns the
// persisted entry. The server also advances its own copy of the goal's
// current value; the caller reconciles the local snapshot after this returns.
func LogProgress(ctx context.Context, httpClient *http.Client, baseURL string, goalID int, req types.LogProgressRequest) (*types.ProgressLogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/goals/%d/progress", baseURL, goalID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewNetworkError("log progress", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus("log progress", resp, http.StatusOK); err != nil {
		return nil, err
	}
	var entry types.ProgressLogEntry
	if err := json.NewDecoder(resp.Body).Decode(&entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListProgress retrieves the full progress-log history for one goal.
func ListProgress(ctx context.Context, httpClient *http.Client, baseURL string, goalID int) ([]types.ProgressLogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/goals/%d/progress", baseURL, goalID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewNetworkError("list progress", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus("list progress", resp, http.StatusOK); err != nil {
		return nil, err
	}
	var entries []types.ProgressLogEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, err
	}
	return entries, nil
}
