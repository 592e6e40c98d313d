package graphapi

import (
	"encoding/json"
	"fmt"
)

// APIError is a structured error returned by the Graph API. Its fields are
// carried verbatim from the response body.
type APIError struct {
	Message    string `json:"message"`
	Type       string `json:"type"`
	Code       int    `json:"code"`
	Subcode    int    `json:"error_subcode"`
	TraceID    string `json:"fbtrace_id"`
	StatusCode int    `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("graph api: %s (type=%s, code=%d, subcode=%d, fbtrace_id=%s)",
		e.Message, e.Type, e.Code, e.Subcode, e.TraceID)
}

// TransportError reports a request that could not complete: the network
// failed, the context ended, or the response could not be understood.
type TransportError struct {
	Method     Method
	Endpoint   Endpoint
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("graph api %s %s: status %d: %v", e.Method, e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("graph api %s %s: %v", e.Method, e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// decodeAPIError extracts the "error" object of a response body, if any.
func decodeAPIError(body []byte, status int) *APIError {
	var envelope struct {
		Error *APIError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error == nil {
		return nil
	}
	envelope.Error.StatusCode = status
	return envelope.Error
}
