package client

import (
	"encoding/json"
	"net/http"
	"strings"
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Code       string
	Detail     string
}

// Error returns the human-readable detail.
func (e *APIError) Error() string { return e.Detail }

// errorBody accepts the API's error envelope and a bare {"detail": ...}
// body as sent by proxies in front of it.
type errorBody struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Detail string `json:"detail"`
}

func newAPIError(resp *http.Response, body []byte) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var parsed errorBody
	if json.Unmarshal(body, &parsed) == nil {
		if parsed.Error != nil {
			apiErr.Code = parsed.Error.Code
			apiErr.Detail = strings.TrimSpace(parsed.Error.Message)
		}
		if apiErr.Detail == "" {
			apiErr.Detail = strings.TrimSpace(parsed.Detail)
		}
	}

	if apiErr.Detail == "" {
		apiErr.Detail = statusText(resp)
	}
	return apiErr
}

func statusText(resp *http.Response) string {
	if resp.Status != "" {
		return resp.Status
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return "unexpected status"
}
