package adapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-note-sync/internal/utils"
)

// mapHTTPError returns nil for 2xx responses and an *HTTPError otherwise.
// The error message of a JSON error body is preferred over the raw body.
func mapHTTPError(op string, resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	var errResp utils.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &errResp); err == nil && errResp.Error != "" {
		body = errResp.Error
	}

	return &HTTPError{StatusCode: resp.StatusCode(), Body: body, Op: op}
}
