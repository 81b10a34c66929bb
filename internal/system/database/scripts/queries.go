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

package scripts

var InsertBusinessRule = map[string]string{
	"postgres": `INSERT INTO business_rules
	(rule_id, rule_name, description, category, priority, enabled, status, version, condition, actions,
	 test_cases, metadata, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::jsonb, $10::jsonb, $11::jsonb, $12::jsonb, $13, $14)`,
}

var GetBusinessRuleByID = map[string]string{
	"postgres": `SELECT rule_id, rule_name, description, category, priority, enabled, status, version,
	 condition::text, actions::text, test_cases::text, metadata::text, created_at, updated_at
	 FROM business_rules WHERE rule_id = $1`,
}

var GetBusinessRules = map[string]string{
	"postgres": `SELECT rule_id, rule_name, description, category, priority, enabled, status, version,
	 condition::text, actions::text, test_cases::text, metadata::text, created_at, updated_at
	 FROM business_rules ORDER BY priority DESC, created_at ASC`,
}

var GetActiveBusinessRules = map[string]string{
	"postgres": `SELECT rule_id, rule_name, description, category, priority, enabled, status, version,
	 condition::text, actions::text, test_cases::text, metadata::text, created_at, updated_at
	 FROM business_rules WHERE status = 'active' AND enabled = TRUE
	 ORDER BY priority DESC, created_at ASC`,
}

var UpdateBusinessRule = map[string]string{
	"postgres": `UPDATE business_rules SET rule_name = $2, description = $3, category = $4, priority = $5,
	 condition = $6::jsonb, actions = $7::jsonb, test_cases = $8::jsonb, updated_at = $9
	 WHERE rule_id = $1`,
}

// UpdateRuleStatusFrom is a compare-and-set transition: the row is only
// updated when its current status matches the expected one.
var UpdateRuleStatusFrom = map[string]string{
	"postgres": `UPDATE business_rules SET status = $3, enabled = $4, updated_at = $5
	 WHERE rule_id = $1 AND status = $2`,
}

// ActivateRuleIfFullyApproved performs the "last approval wins" transition
// in a single conditional statement. Only one of two racing approvers can
// observe rows-affected = 1.
var ActivateRuleIfFullyApproved = map[string]string{
	"postgres": `UPDATE business_rules SET status = 'active', enabled = TRUE, updated_at = $2
	 WHERE rule_id = $1 AND status = 'pending_approval'
	 AND (SELECT COUNT(*) FROM rule_approvals ra
	      WHERE ra.rule_id = $1 AND ra.status = 'approved') >= $3`,
}

// AppendRuleMetadata appends an audit entry to the rule's metadata array.
// Existing entries are never overwritten.
var AppendRuleMetadata = map[string]string{
	"postgres": `UPDATE business_rules SET metadata = metadata || $2::jsonb, updated_at = $3
	 WHERE rule_id = $1`,
}

// InsertPendingApproval is idempotent: re-submission never duplicates or
// resets an existing record for the same (rule, level).
var InsertPendingApproval = map[string]string{
	"postgres": `INSERT INTO rule_approvals (approval_id, rule_id, level, status, created_at, updated_at)
	 VALUES ($1, $2, $3, 'pending', $4, $4)
	 ON CONFLICT (rule_id, level) DO NOTHING`,
}

// ReopenResolvedApprovals resets a rejected round to a fresh pending set
// when a rule is resubmitted after rejection.
var ReopenResolvedApprovals = map[string]string{
	"postgres": `UPDATE rule_approvals SET status = 'pending', approver = '', comments = '', updated_at = $2
	 WHERE rule_id = $1 AND status <> 'pending'`,
}

// ResolveApproval upserts the decision for (rule, level). A pending record
// is resolved in place; an absent record is created already resolved; a
// record that is no longer pending is left untouched.
var ResolveApproval = map[string]string{
	"postgres": `INSERT INTO rule_approvals (approval_id, rule_id, level, status, approver, comments, created_at, updated_at)
	 VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	 ON CONFLICT (rule_id, level) DO UPDATE
	 SET status = EXCLUDED.status, approver = EXCLUDED.approver, comments = EXCLUDED.comments,
	     updated_at = EXCLUDED.updated_at
	 WHERE rule_approvals.status = 'pending'`,
}

var GetApprovalsForRule = map[string]string{
	"postgres": `SELECT approval_id, rule_id, level, status, approver, comments, created_at, updated_at
	 FROM rule_approvals WHERE rule_id = $1 ORDER BY level ASC`,
}

var InsertTestResult = map[string]string{
	"postgres": `INSERT INTO rule_test_results
	(result_id, rule_id, passed, failed, total, accuracy, avg_execution_ms, case_results, suggested_cases, executed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9::jsonb, $10)`,
}

var GetLatestTestResult = map[string]string{
	"postgres": `SELECT result_id, rule_id, passed, failed, total, accuracy, avg_execution_ms,
	 case_results::text, suggested_cases::text, executed_at
	 FROM rule_test_results WHERE rule_id = $1 ORDER BY executed_at DESC LIMIT 1`,
}

var InsertRuleDeployment = map[string]string{
	"postgres": `INSERT INTO rule_deployments (deployment_id, rule_id, version, deployed_by, deployed_at)
	 VALUES ($1, $2, $3, $4, $5)`,
}

// Cascade deletion statements. These run inside a single transaction in
// this order so dependent rows are never orphaned.
var DeleteRuleDeployments = map[string]string{
	"postgres": `DELETE FROM rule_deployments WHERE rule_id = $1`,
}

var DeleteRuleTestResults = map[string]string{
	"postgres": `DELETE FROM rule_test_results WHERE rule_id = $1`,
}

var DeleteRuleApprovals = map[string]string{
	"postgres": `DELETE FROM rule_approvals WHERE rule_id = $1`,
}

var DeleteBusinessRuleByID = map[string]string{
	"postgres": `DELETE FROM business_rules WHERE rule_id = $1`,
}

var InsertDuplicatePair = map[string]string{
	"postgres": `INSERT INTO duplicate_pairs
	(pair_id, session_id, record1, record2, fuzzy_score, status, original_score, enhanced_score, created_at, updated_at)
	VALUES ($1, $2, $3::jsonb, $4::jsonb, $5, $6, $7, $8, $9, $10)`,
}

var GetDuplicatePairByID = map[string]string{
	"postgres": `SELECT pair_id, session_id, record1::text, record2::text, fuzzy_score, status,
	 ai_confidence, ai_reasoning, ai_analysis::text, original_score, enhanced_score, enhanced_confidence,
	 score_change_reason, matched_rule_id, created_at, updated_at
	 FROM duplicate_pairs WHERE pair_id = $1`,
}

var GetDuplicatePairsBySession = map[string]string{
	"postgres": `SELECT pair_id, session_id, record1::text, record2::text, fuzzy_score, status,
	 ai_confidence, ai_reasoning, ai_analysis::text, original_score, enhanced_score, enhanced_confidence,
	 score_change_reason, matched_rule_id, created_at, updated_at
	 FROM duplicate_pairs WHERE session_id = $1 ORDER BY enhanced_score DESC`,
}

var GetDuplicatePairsBySessionAndStatus = map[string]string{
	"postgres": `SELECT pair_id, session_id, record1::text, record2::text, fuzzy_score, status,
	 ai_confidence, ai_reasoning, ai_analysis::text, original_score, enhanced_score, enhanced_confidence,
	 score_change_reason, matched_rule_id, created_at, updated_at
	 FROM duplicate_pairs WHERE session_id = $1 AND status = $2 ORDER BY enhanced_score DESC`,
}

// UpdatePairAnalysis stores the AI verdict and the rule-adjusted fields.
// The pair's status is written separately so manual decisions survive.
var UpdatePairAnalysis = map[string]string{
	"postgres": `UPDATE duplicate_pairs SET ai_confidence = $2, ai_reasoning = $3, ai_analysis = $4::jsonb,
	 enhanced_score = $5, enhanced_confidence = $6, score_change_reason = $7, matched_rule_id = $8,
	 updated_at = $9
	 WHERE pair_id = $1`,
}

// UpdatePairStatusIfPending only moves a pair that is still pending, so a
// decision already made by a human is never overwritten.
var UpdatePairStatusIfPending = map[string]string{
	"postgres": `UPDATE duplicate_pairs SET status = $2, updated_at = $3
	 WHERE pair_id = $1 AND status = 'pending'`,
}

var UpdatePairStatus = map[string]string{
	"postgres": `UPDATE duplicate_pairs SET status = $2, updated_at = $3 WHERE pair_id = $1`,
}
