package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apierrors "github.com/nkgevorgyan/twelveweeks/internal/errors"
	"github.com/nkgevorgyan/twelveweeks/internal/types"
)

func TestLogProgress_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/goals/7/progress" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req types.LogProgressRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Value != 2.5 {
			t.Errorf("unexpected body: %+v err=%v", req, err)
		}
		_ = json.NewEncoder(w).Encode(types.ProgressLogEntry{ID: 21, GoalID: 7, Value: req.Value, Notes: req.Notes})
	}))
	defer srv.Close()

	entry, err := LogProgress(context.Background(), srv.Client(), srv.URL, 7, types.LogProgressRequest{GoalID: 7, Value: 2.5, Notes: "morning run"})
	if err != nil || entry.ID != 21 || entry.Value != 2.5 {
		t.Fatalf("LogProgress unexpected: entry=%+v err=%v", entry, err)
	}
}

func TestLogProgress_ServerError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"db unavailable"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := LogProgress(context.Background(), srv.Client(), srv.URL, 7, types.LogProgressRequest{GoalID: 7, Value: 1})
	if !apierrors.Is(err, apierrors.KindRemote) {
		t.Fatalf("expected remote failure, got %v", err)
	}
	if apierrors.IsIrrecoverable(err) {
		t.Fatalf("5xx should be recoverable: %v", err)
	}
}

func TestListProgress_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/goals/7/progress" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]types.ProgressLogEntry{{ID: 1, GoalID: 7, Value: 1}, {ID: 2, GoalID: 7, Value: 2}})
	}))
	defer srv.Close()

	logs, err := ListProgress(context.Background(), srv.Client(), srv.URL, 7)
	if err != nil || len(logs) != 2 {
		t.Fatalf("ListProgress unexpected: logs=%+v err=%v", logs, err)
	}
}
