// Copyright (c) 2026, DomainTricks Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	cnserrors "github.com/jennib/DomainTricks/pkg/errors"
	"github.com/jennib/DomainTricks/pkg/serializer"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

// WriteError writes a JSON error response carrying the request ID.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code cnserrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID := RequestID(r.Context())
	if requestID == "" {
		requestID = uuid.NewString()
	}

	serializer.RespondJSON(w, statusCode, ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	})
}

// WriteErrorFromErr maps a structured error to its HTTP status and writes it.
// Errors without a code are reported as INTERNAL.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, message string) {
	code := cnserrors.CodeOf(err)
	status, retryable := httpStatus(code)

	var details map[string]any
	if err != nil {
		details = map[string]any{"error": err.Error()}
	}
	WriteError(w, r, status, code, message, retryable, details)
}

func httpStatus(code cnserrors.ErrorCode) (int, bool) {
	switch code {
	case cnserrors.ErrCodeInvalidRequest, cnserrors.ErrCodeQuery, cnserrors.ErrCodePrecondition:
		return http.StatusBadRequest, false
	case cnserrors.ErrCodeNotFound:
		return http.StatusNotFound, false
	case cnserrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed, false
	case cnserrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests, true
	case cnserrors.ErrCodeUnauthorized, cnserrors.ErrCodeCredential:
		return http.StatusBadGateway, false
	case cnserrors.ErrCodeConnection, cnserrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable, true
	case cnserrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout, true
	default:
		return http.StatusInternalServerError, true
	}
}
