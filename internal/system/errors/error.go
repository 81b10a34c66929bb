/*
 * Copyright (c) 2025-2026, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package errors

import (
	"fmt"
	"net/http"
)

type ErrorMessage struct {
	Code        string `json:"error_code"`
	Message     string `json:"error_message"`
	Description string `json:"error_description"`
}

type ClientError struct {
	ErrorMessage
	StatusCode int
}

type ServerError struct {
	ErrorMessage
	Err error
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func NewServerError(msg ErrorMessage, cause error) *ServerError {
	return &ServerError{
		ErrorMessage: msg,
		Err:          cause,
	}
}

func NewClientError(msg ErrorMessage, code int) *ClientError {
	return &ClientError{
		ErrorMessage: msg,
		StatusCode:   code,
	}
}

// NewValidationError reports missing or malformed required input.
func NewValidationError(description string) *ClientError {
	return NewClientError(ErrorMessage{
		Code:        VALIDATION_FAILED.Code,
		Message:     VALIDATION_FAILED.Message,
		Description: description,
	}, http.StatusBadRequest)
}

// NewNotFoundError reports an absent rule, pair or approval.
func NewNotFoundError(msg ErrorMessage, description string) *ClientError {
	return NewClientError(ErrorMessage{
		Code:        msg.Code,
		Message:     msg.Message,
		Description: description,
	}, http.StatusNotFound)
}

// NewConflictError reports an operation that clashes with current state,
// such as resubmitting a rule that is already pending approval.
func NewConflictError(msg ErrorMessage, description string) *ClientError {
	return NewClientError(ErrorMessage{
		Code:        msg.Code,
		Message:     msg.Message,
		Description: description,
	}, http.StatusConflict)
}

// NewExecutionError reports an infrastructure fault during test execution
// or persistence. These are retryable from the caller's side.
func NewExecutionError(msg ErrorMessage, description string, cause error) *ServerError {
	return NewServerError(ErrorMessage{
		Code:        msg.Code,
		Message:     msg.Message,
		Description: description,
	}, cause)
}

// NewCascadeError reports a failed multi-step deletion. The cascade is
// rolled back before this is returned, so no orphan rows remain.
func NewCascadeError(description string, cause error) *ServerError {
	return NewServerError(ErrorMessage{
		Code:        CASCADE_DELETE.Code,
		Message:     CASCADE_DELETE.Message,
		Description: description,
	}, cause)
}

// NewProviderUnavailableError reports an exhausted AI provider chain.
// Callers normally downgrade to a fallback verdict instead of surfacing it.
func NewProviderUnavailableError(description string, cause error) *ServerError {
	return NewServerError(ErrorMessage{
		Code:        PROVIDERS_EXHAUSTED.Code,
		Message:     PROVIDERS_EXHAUSTED.Message,
		Description: description,
	}, cause)
}
