package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// mapAuthHTTPError converts a provider HTTP response into the typed error
// taxonomy. 2xx maps to nil; 400, 401 and 404 collapse into
// [ErrInvalidCredentials]; 501 maps to [ErrLookupUnsupported]; everything
// else surfaces as a plain error the orchestrator treats as unrecognized.
func mapAuthHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	switch resp.StatusCode() {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrInvalidCredentials, body)
	case http.StatusNotImplemented:
		return fmt.Errorf("%w: %s", ErrLookupUnsupported, body)
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("provider http %d: %s", resp.StatusCode(), body)
	}
}
