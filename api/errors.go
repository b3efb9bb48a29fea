package api

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is returned when the upstream answers with a non 2xx status
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream responded %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("upstream responded %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

// IsClientError reports whether the upstream rejected the ticker itself (unknown or malformed)
func (e *StatusError) IsClientError() bool {
	return e.StatusCode == http.StatusNotFound || e.StatusCode == http.StatusBadRequest
}

// StatusCode extracts the upstream status from anywhere in the chain, 0 when there is none
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
