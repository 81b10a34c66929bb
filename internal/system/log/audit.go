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

package log

import (
	"encoding/json"
	"log/slog"
	"time"
)

// AuditEvent represents a structured audit log entry
type AuditEvent struct {
	RecordedAt    string      `json:"recordedAt"`
	InitiatorID   string      `json:"initiatorId"`
	InitiatorType string      `json:"initiatorType"`
	TargetID      string      `json:"targetId"`
	TargetType    string      `json:"targetType"`
	ActionID      string      `json:"actionId"`
	Data          interface{} `json:"data,omitempty"`
}

// Audit logs an audit event with structured fields
func (l *Logger) Audit(event AuditEvent) {
	// Ensure timestamp is set
	if event.RecordedAt == "" {
		event.RecordedAt = time.Now().UTC().Format(time.RFC3339)
	}

	// Convert to JSON for structured logging
	jsonData, err := json.Marshal(event)
	if err != nil {
		l.Error("Failed to marshal audit event", Error(err))
		return
	}

	// Log at Info level with "AUDIT" prefix
	l.internal.Info("AUDIT", slog.String("audit_event", string(jsonData)))
}

// Action IDs for audit logging
const (
	// Business rule lifecycle operations
	ActionCreateBusinessRule  = "create-business-rule"
	ActionUpdateBusinessRule  = "update-business-rule"
	ActionSubmitForApproval   = "submit-rule-for-approval"
	ActionRecordApproval      = "record-rule-approval"
	ActionActivateRule        = "activate-business-rule"
	ActionDisableRule         = "disable-business-rule"
	ActionDeleteBusinessRule  = "delete-business-rule"
	ActionExecuteRuleTests    = "execute-rule-tests"

	// AI analysis operations
	ActionAnalyzeConfidence = "analyze-pair-confidence"
	ActionSwitchProvider    = "switch-ai-provider"
	ActionRefreshHealth     = "refresh-provider-health"

	// Duplicate pair operations
	ActionEvaluatePair     = "evaluate-duplicate-pair"
	ActionUpdatePairStatus = "update-pair-status"
)

// Initiator types for audit logging
const (
	InitiatorTypeUser   = "user"
	InitiatorTypeSystem = "system"
)

// Target types for audit logging
const (
	TargetTypeBusinessRule  = "business_rule"
	TargetTypeDuplicatePair = "duplicate_pair"
	TargetTypeAIProvider    = "ai_provider"
)
