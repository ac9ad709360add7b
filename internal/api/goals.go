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

// ListGoals retrieves the full goal collection for the current user.
func ListGoals(ctx context.Context, httpClient *http.Client, baseURL string) ([]types.Goal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/goals", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewNetworkError("list goals", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus("list goals", resp, http.StatusOK); err != nil {
		return nil, err
	}
	var goals []types.Goal
	if err := json.NewDecoder(resp.Body).Decode(&goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// GetGoal retrieves a single goal together with its progress-log history.
func GetGoal(ctx context.Context, httpClient *http.Client, baseURL string, goalID int) (*types.GoalWithProgress, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/goals/%d", baseURL, goalID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewNetworkError("get goal", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus("get goal", resp, http.StatusOK); err != nil {
		return nil, err
	}
	var g types.GoalWithProgress
	if err := json.NewDecoder(resp.Body).Decode(&g); err != nil {
		return nil, err
	}
	return &g, nil
}

// CreateGoal creates a new goal and returns the server's record of it.
func CreateGoal(ctx context.Context, httpClient *http.Client, baseURL string, req types.CreateGoalRequest) (*types.Goal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/goals", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewNetworkError("create goal", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus("create goal", resp, http.StatusOK); err != nil {
		return nil, err
	}
	var g types.Goal
	if err := json.NewDecoder(resp.Body).Decode(&g); err != nil {
		return nil, err
	}
	return &g, nil
}

// DeleteGoal removes a goal. The backend answers 200 with the deleted record,
// which is discarded here.
func DeleteGoal(ctx context.Context, httpClient *http.Client, baseURL string, goalID int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u := fmt.Sprintf("%s/goals/%d", baseURL, goalID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return apierrors.NewNetworkError("delete goal", err)
	}
	defer func() { _ = resp.Body.Close() }()

	return checkStatus("delete goal", resp, http.StatusOK)
}
