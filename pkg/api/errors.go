// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package api

import (
	"errors"
	"fmt"
)

// Error codes returned by the server in {"error": "..."}.
const (
	CodeUnauthorized   = "unauthorized"
	CodeReasonRequired = "reason_required"
	CodeReasonTooLong  = "reason_too_long"
	CodeInvalidRating  = "invalid_rating"
	CodeMissingData    = "missing_data"
	CodeInvalidData    = "invalid_data"
	CodeTooFrequent    = "too_frequent"
	CodeNoActiveMatch  = "no_active_match"
	CodeNoMatch        = "no_match"
	CodeAlreadyMatched = "already_matched"
	CodeAlreadySent    = "already_sent"
	CodeNotFound       = "not_found"
)

// ErrUnexpectedResponse is returned when a success status carries the wrong payload.
var ErrUnexpectedResponse = errors.New("unexpected response")

// Error is a non-2xx answer from the server.
type Error struct {
	Status   int
	Code     string
	Endpoint string
}

func (e *Error) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("%s: status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Endpoint, e.Status, e.Code)
}

// IsCode reports whether err is an *Error carrying one of codes.
func IsCode(err error, codes ...string) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, code := range codes {
		if apiErr.Code == code {
			return true
		}
	}
	return false
}

// StatusOf returns the HTTP status carried by err, or zero.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
