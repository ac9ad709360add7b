// Package api holds the request/response functions for the remote
// accountability backend. Each function is stateless: callers pass the
// context, the HTTP client (whose transport injects the bearer token), and
// the base URL. Failures are normalized into internal/errors values.
package api

import (
	"io"
	"net/http"

	apierrors "github.com/nkgevorgyan/twelveweeks/internal/errors"
)

// HTTPClient interface for dependency injection.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// maxErrorBody bounds how much of a failure body is read for the detail
// message.
const maxErrorBody = 4 << 10

// checkStatus drains the response into a classified error when the status is
// not the expected one. Returns nil for the happy path.
func checkStatus(operation string, resp *http.Response, want int) error {
	if resp.StatusCode == want {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return apierrors.FromResponse(operation, resp.StatusCode, body)
}
