package twelveweeks

import (
	"net/http"
	"net/http/httputil"
	"os"

	"github.com/rs/zerolog/log"
)

// debugTransport logs full HTTP request/response dumps for troubleshooting
// API communication. Enable with TWELVEWEEKS_DEBUG=true or DEBUG=true; the
// dumps include the bearer token, so keep this out of production logs.
type debugTransport struct{ base http.RoundTripper }

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := dt.base
	if base == nil {
		base = http.DefaultTransport
	}

	if debugLoggingRequested() {
		if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
			log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", string(reqDump)).Msg("HTTP request")
		}
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		if debugLoggingRequested() {
			log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		}
		return nil, err
	}

	if debugLoggingRequested() {
		if respDump, err := httputil.DumpResponse(resp, true); err == nil {
			log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
		}
	}
	return resp, nil
}

// debugLoggingRequested checks whether HTTP debug logging should be enabled.
// TWELVEWEEKS_DEBUG targets this client; DEBUG is the broader development
// flag. Either set to "true" enables dumping.
func debugLoggingRequested() bool {
	return os.Getenv("TWELVEWEEKS_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
