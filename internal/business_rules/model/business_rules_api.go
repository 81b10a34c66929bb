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

package model

// BusinessRuleAPIRequest is the create-rule payload. Status and enabled
// are intentionally absent; drafts always start disabled.
type BusinessRuleAPIRequest struct {
	RuleName    string       `json:"rule_name"`
	Description string       `json:"description"`
	Category    RuleCategory `json:"category"`
	Priority    int          `json:"priority"`
	Condition   Condition    `json:"condition"`
	Actions     []Action     `json:"actions"`
	TestCases   []TestCase   `json:"test_cases,omitempty"`
}

// BusinessRuleUpdateRequest carries the patchable subset of rule fields.
// Nil fields are left unchanged.
type BusinessRuleUpdateRequest struct {
	RuleName    *string       `json:"rule_name,omitempty"`
	Description *string       `json:"description,omitempty"`
	Category    *RuleCategory `json:"category,omitempty"`
	Priority    *int          `json:"priority,omitempty"`
	Condition   *Condition    `json:"condition,omitempty"`
	Actions     *[]Action     `json:"actions,omitempty"`
	TestCases   *[]TestCase   `json:"test_cases,omitempty"`
}

// SubmitForApprovalRequest moves a draft or rejected rule into review.
type SubmitForApprovalRequest struct {
	SubmittedBy string `json:"submitted_by"`
	Reason      string `json:"reason,omitempty"`
}

// ApprovalDecisionRequest resolves one approval level.
type ApprovalDecisionRequest struct {
	Level    int            `json:"level"`
	Approver string         `json:"approver"`
	Comments string         `json:"comments,omitempty"`
	Decision ApprovalStatus `json:"decision"`
}

// DeleteRuleRequest guards destructive deletion. When ConfirmName is
// set it must match the rule's name exactly.
type DeleteRuleRequest struct {
	ConfirmName string `json:"confirm_name,omitempty"`
}
