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

// RuleStatus is the lifecycle state of a business rule.
type RuleStatus string

const (
	StatusDraft           RuleStatus = "draft"
	StatusPendingApproval RuleStatus = "pending_approval"
	StatusActive          RuleStatus = "active"
	StatusDisabled        RuleStatus = "disabled"
	StatusRejected        RuleStatus = "rejected"
)

// AllowedRuleStatuses defines the valid set of rule statuses.
var AllowedRuleStatuses = map[RuleStatus]bool{
	StatusDraft:           true,
	StatusPendingApproval: true,
	StatusActive:          true,
	StatusDisabled:        true,
	StatusRejected:        true,
}

// RuleCategory is the domain tag of a rule, used to pick default test
// cases when a rule declares none.
type RuleCategory string

const (
	CategoryBusinessRelationship RuleCategory = "business-relationship"
	CategoryEnergy               RuleCategory = "energy"
	CategoryGeographic           RuleCategory = "geographic"
	CategoryGeneral              RuleCategory = "general"
)

// ApprovalStatus is the state of one approval level.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Required approval levels before a rule can activate. All three must
// resolve to approved; a single rejection blocks activation.
const (
	LevelTechnicalReviewer = 1
	LevelBusinessOwner     = 2
	LevelDataGovernance    = 3
)

// RequiredApprovalLevels maps each required level to its role name.
var RequiredApprovalLevels = map[int]string{
	LevelTechnicalReviewer: "technical_reviewer",
	LevelBusinessOwner:     "business_owner",
	LevelDataGovernance:    "data_governance",
}

// BusinessRule is a user-authored deduplication rule. Rules with higher
// priority are evaluated first. Metadata is an append-only audit trail.
type BusinessRule struct {
	RuleId      string          `json:"rule_id"`
	RuleName    string          `json:"rule_name"`
	Description string          `json:"description"`
	Category    RuleCategory    `json:"category"`
	Priority    int             `json:"priority"`
	Enabled     bool            `json:"enabled"`
	Status      RuleStatus      `json:"status"`
	Version     string          `json:"version"`
	Condition   Condition       `json:"condition"`
	Actions     []Action        `json:"actions"`
	TestCases   []TestCase      `json:"test_cases,omitempty"`
	Metadata    []MetadataEntry `json:"metadata,omitempty"`
	CreatedAt   int64           `json:"created_at"`
	UpdatedAt   int64           `json:"updated_at"`
}

// MetadataEntry is one audit-trail entry on a rule. Entries are only
// ever appended.
type MetadataEntry struct {
	Event     string `json:"event"`
	Actor     string `json:"actor,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// ApprovalRecord is the decision state of one (rule, level) pair.
type ApprovalRecord struct {
	ApprovalId string         `json:"approval_id"`
	RuleId     string         `json:"rule_id"`
	Level      int            `json:"level"`
	LevelName  string         `json:"level_name,omitempty"`
	Status     ApprovalStatus `json:"status"`
	Approver   string         `json:"approver,omitempty"`
	Comments   string         `json:"comments,omitempty"`
	CreatedAt  int64          `json:"created_at"`
	UpdatedAt  int64          `json:"updated_at"`
}

// RuleDeployment records one activation of a rule.
type RuleDeployment struct {
	DeploymentId string `json:"deployment_id"`
	RuleId       string `json:"rule_id"`
	Version      string `json:"version"`
	DeployedBy   string `json:"deployed_by"`
	DeployedAt   int64  `json:"deployed_at"`
}
