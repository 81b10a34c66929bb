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

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wso2/mdm-deduplication-service/internal/business_rules/model"
	"github.com/wso2/mdm-deduplication-service/internal/system/database/provider"
	"github.com/wso2/mdm-deduplication-service/internal/system/database/scripts"
	errors2 "github.com/wso2/mdm-deduplication-service/internal/system/errors"
	"github.com/wso2/mdm-deduplication-service/internal/system/log"
)

// BusinessRuleStoreInterface is the persistence contract consumed by the
// rule lifecycle and testing services. The production implementation
// runs against postgres; tests substitute an in-memory fake.
type BusinessRuleStoreInterface interface {
	InsertRule(rule model.BusinessRule) error
	GetRule(ruleId string) (*model.BusinessRule, error)
	GetRules() ([]model.BusinessRule, error)
	GetActiveRules() ([]model.BusinessRule, error)
	UpdateRule(rule model.BusinessRule) (int64, error)
	UpdateRuleStatus(ruleId string, from, to model.RuleStatus, enabled bool) (bool, error)
	ActivateRuleIfFullyApproved(ruleId string, requiredApprovals int) (bool, error)
	AppendRuleMetadata(ruleId string, entry model.MetadataEntry) error
	CreatePendingApprovals(ruleId string, levels []int) error
	ReopenApprovals(ruleId string) error
	ResolveApproval(record model.ApprovalRecord) (bool, error)
	GetApprovals(ruleId string) ([]model.ApprovalRecord, error)
	AppendTestResult(result model.TestResult) error
	GetLatestTestResult(ruleId string) (*model.TestResult, error)
	InsertDeployment(deployment model.RuleDeployment) error
	DeleteRuleCascade(ruleId string) error
}

// BusinessRuleStore is the postgres-backed implementation.
type BusinessRuleStore struct{}

// NewBusinessRuleStore creates a new instance of BusinessRuleStore.
func NewBusinessRuleStore() BusinessRuleStoreInterface {

	return &BusinessRuleStore{}
}

// InsertRule adds a new business rule row.
func (s *BusinessRuleStore) InsertRule(rule model.BusinessRule) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return dbInitError(fmt.Sprintf("adding business rule: %s", rule.RuleName), err)
	}
	defer dbClient.Close()

	condition, actions, testCases, metadata, err := marshalRuleDocuments(rule)
	if err != nil {
		return err
	}

	query := scripts.InsertBusinessRule[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteMutation(query, rule.RuleId, rule.RuleName, rule.Description, string(rule.Category),
		rule.Priority, rule.Enabled, string(rule.Status), rule.Version, condition, actions, testCases, metadata,
		rule.CreatedAt, rule.UpdatedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while adding business rule: %s", rule.RuleName)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_BUSINESS_RULE.Code,
			Message:     errors2.ADD_BUSINESS_RULE.Message,
			Description: errorMsg,
		}, err)
	}

	logger.Info(fmt.Sprintf("Business rule : %s added successfully", rule.RuleName))
	return nil
}

// GetRule fetches a rule by id. Returns (nil, nil) when the rule does
// not exist; callers raise the not-found error.
func (s *BusinessRuleStore) GetRule(ruleId string) (*model.BusinessRule, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return nil, dbInitError(fmt.Sprintf("fetching business rule: %s", ruleId), err)
	}
	defer dbClient.Close()

	query := scripts.GetBusinessRuleByID[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, ruleId)
	if err != nil {
		return nil, fetchRulesError(fmt.Sprintf("fetching business rule: %s", ruleId), err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	rule, err := buildRuleFromRow(results[0])
	if err != nil {
		return nil, err
	}
	return rule, nil
}

// GetRules fetches every rule ordered by priority then creation time.
func (s *BusinessRuleStore) GetRules() ([]model.BusinessRule, error) {

	return s.fetchRules(scripts.GetBusinessRules, "fetching all business rules")
}

// GetActiveRules fetches the enabled, active rules in evaluation order.
func (s *BusinessRuleStore) GetActiveRules() ([]model.BusinessRule, error) {

	return s.fetchRules(scripts.GetActiveBusinessRules, "fetching active business rules")
}

func (s *BusinessRuleStore) fetchRules(queryMap map[string]string, description string) ([]model.BusinessRule, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return nil, dbInitError(description, err)
	}
	defer dbClient.Close()

	query := queryMap[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query)
	if err != nil {
		return nil, fetchRulesError(description, err)
	}

	rules := make([]model.BusinessRule, 0, len(results))
	for _, row := range results {
		rule, err := buildRuleFromRow(row)
		if err != nil {
			return nil, err
		}
		rules = append(rules, *rule)
	}
	return rules, nil
}

// UpdateRule rewrites the patchable columns of a rule row and returns
// the number of rows affected.
func (s *BusinessRuleStore) UpdateRule(rule model.BusinessRule) (int64, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return 0, dbInitError(fmt.Sprintf("updating business rule: %s", rule.RuleId), err)
	}
	defer dbClient.Close()

	condition, actions, testCases, _, err := marshalRuleDocuments(rule)
	if err != nil {
		return 0, err
	}

	query := scripts.UpdateBusinessRule[provider.NewDBProvider().GetDBType()]
	rowsAffected, err := dbClient.ExecuteMutation(query, rule.RuleId, rule.RuleName, rule.Description,
		string(rule.Category), rule.Priority, condition, actions, testCases, rule.UpdatedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while updating business rule: %s", rule.RuleId)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_BUSINESS_RULE.Code,
			Message:     errors2.UPDATE_BUSINESS_RULE.Message,
			Description: errorMsg,
		}, err)
	}
	return rowsAffected, nil
}

// UpdateRuleStatus performs a compare-and-set status transition. It
// reports whether this call won the transition.
func (s *BusinessRuleStore) UpdateRuleStatus(ruleId string, from, to model.RuleStatus, enabled bool) (bool, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return false, dbInitError(fmt.Sprintf("transitioning business rule: %s", ruleId), err)
	}
	defer dbClient.Close()

	query := scripts.UpdateRuleStatusFrom[provider.NewDBProvider().GetDBType()]
	rowsAffected, err := dbClient.ExecuteMutation(query, ruleId, string(from), string(to), enabled,
		time.Now().UTC().Unix())
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while transitioning business rule: %s", ruleId)
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_BUSINESS_RULE.Code,
			Message:     errors2.UPDATE_BUSINESS_RULE.Message,
			Description: errorMsg,
		}, err)
	}
	return rowsAffected == 1, nil
}

// ActivateRuleIfFullyApproved atomically activates a pending rule when
// all required levels are approved. Only one of two racing approvers
// can observe true.
func (s *BusinessRuleStore) ActivateRuleIfFullyApproved(ruleId string, requiredApprovals int) (bool, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return false, dbInitError(fmt.Sprintf("activating business rule: %s", ruleId), err)
	}
	defer dbClient.Close()

	query := scripts.ActivateRuleIfFullyApproved[provider.NewDBProvider().GetDBType()]
	rowsAffected, err := dbClient.ExecuteMutation(query, ruleId, time.Now().UTC().Unix(), requiredApprovals)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while activating business rule: %s", ruleId)
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_BUSINESS_RULE.Code,
			Message:     errors2.UPDATE_BUSINESS_RULE.Message,
			Description: errorMsg,
		}, err)
	}
	return rowsAffected == 1, nil
}

// AppendRuleMetadata appends one audit entry to the rule's metadata
// array without touching earlier entries.
func (s *BusinessRuleStore) AppendRuleMetadata(ruleId string, entry model.MetadataEntry) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return dbInitError(fmt.Sprintf("appending metadata to business rule: %s", ruleId), err)
	}
	defer dbClient.Close()

	entryJSON, err := json.Marshal([]model.MetadataEntry{entry})
	if err != nil {
		return marshalError("rule metadata entry", err)
	}

	query := scripts.AppendRuleMetadata[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteMutation(query, ruleId, string(entryJSON), time.Now().UTC().Unix())
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while appending metadata to business rule: %s", ruleId)
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_BUSINESS_RULE.Code,
			Message:     errors2.UPDATE_BUSINESS_RULE.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// CreatePendingApprovals inserts one pending approval per level,
// skipping levels that already have a record for this rule.
func (s *BusinessRuleStore) CreatePendingApprovals(ruleId string, levels []int) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return dbInitError(fmt.Sprintf("creating pending approvals for rule: %s", ruleId), err)
	}
	defer dbClient.Close()

	query := scripts.InsertPendingApproval[provider.NewDBProvider().GetDBType()]
	now := time.Now().UTC().Unix()
	for _, level := range levels {
		approvalId := fmt.Sprintf("%s-l%d", ruleId, level)
		if _, err := dbClient.ExecuteMutation(query, approvalId, ruleId, level, now); err != nil {
			errorMsg := fmt.Sprintf("Error occurred while creating pending approval level %d for rule: %s",
				level, ruleId)
			return errors2.NewServerError(errors2.ErrorMessage{
				Code:        errors2.UPSERT_APPROVAL.Code,
				Message:     errors2.UPSERT_APPROVAL.Message,
				Description: errorMsg,
			}, err)
		}
	}
	return nil
}

// ReopenApprovals resets every resolved approval of a rule to pending.
// Used when a rejected rule is resubmitted.
func (s *BusinessRuleStore) ReopenApprovals(ruleId string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return dbInitError(fmt.Sprintf("reopening approvals for rule: %s", ruleId), err)
	}
	defer dbClient.Close()

	query := scripts.ReopenResolvedApprovals[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteMutation(query, ruleId, time.Now().UTC().Unix())
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while reopening approvals for rule: %s", ruleId)
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPSERT_APPROVAL.Code,
			Message:     errors2.UPSERT_APPROVAL.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// ResolveApproval upserts the decision for (rule, level). A record that
// is no longer pending is left untouched; the return value reports
// whether this decision was applied.
func (s *BusinessRuleStore) ResolveApproval(record model.ApprovalRecord) (bool, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return false, dbInitError(fmt.Sprintf("resolving approval for rule: %s", record.RuleId), err)
	}
	defer dbClient.Close()

	query := scripts.ResolveApproval[provider.NewDBProvider().GetDBType()]
	rowsAffected, err := dbClient.ExecuteMutation(query, record.ApprovalId, record.RuleId, record.Level,
		string(record.Status), record.Approver, record.Comments, time.Now().UTC().Unix())
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while resolving approval level %d for rule: %s",
			record.Level, record.RuleId)
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPSERT_APPROVAL.Code,
			Message:     errors2.UPSERT_APPROVAL.Message,
			Description: errorMsg,
		}, err)
	}
	return rowsAffected == 1, nil
}

// GetApprovals fetches the approval records of a rule ordered by level.
func (s *BusinessRuleStore) GetApprovals(ruleId string) ([]model.ApprovalRecord, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return nil, dbInitError(fmt.Sprintf("fetching approvals for rule: %s", ruleId), err)
	}
	defer dbClient.Close()

	query := scripts.GetApprovalsForRule[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, ruleId)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while fetching approvals for rule: %s", ruleId)
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_APPROVALS.Code,
			Message:     errors2.FETCH_APPROVALS.Message,
			Description: errorMsg,
		}, err)
	}

	approvals := make([]model.ApprovalRecord, 0, len(results))
	for _, row := range results {
		record := model.ApprovalRecord{
			ApprovalId: asString(row["approval_id"]),
			RuleId:     asString(row["rule_id"]),
			Level:      int(asInt64(row["level"])),
			Status:     model.ApprovalStatus(asString(row["status"])),
			Approver:   asString(row["approver"]),
			Comments:   asString(row["comments"]),
			CreatedAt:  asInt64(row["created_at"]),
			UpdatedAt:  asInt64(row["updated_at"]),
		}
		record.LevelName = model.RequiredApprovalLevels[record.Level]
		approvals = append(approvals, record)
	}
	return approvals, nil
}

// AppendTestResult stores a completed test run for a rule.
func (s *BusinessRuleStore) AppendTestResult(result model.TestResult) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return dbInitError(fmt.Sprintf("storing test result for rule: %s", result.RuleId), err)
	}
	defer dbClient.Close()

	caseResults, err := json.Marshal(result.CaseResults)
	if err != nil {
		return marshalError("case results", err)
	}
	suggestions, err := json.Marshal(result.SuggestedCases)
	if err != nil {
		return marshalError("suggested cases", err)
	}

	query := scripts.InsertTestResult[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteMutation(query, result.ResultId, result.RuleId, result.Passed, result.Failed,
		result.Total, result.Accuracy, result.AvgExecutionMs, string(caseResults), string(suggestions),
		result.ExecutedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while storing test result for rule: %s", result.RuleId)
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.APPEND_TEST_RESULT.Code,
			Message:     errors2.APPEND_TEST_RESULT.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// GetLatestTestResult fetches the most recent test run of a rule.
// Returns (nil, nil) when the rule has never been tested.
func (s *BusinessRuleStore) GetLatestTestResult(ruleId string) (*model.TestResult, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return nil, dbInitError(fmt.Sprintf("fetching test results for rule: %s", ruleId), err)
	}
	defer dbClient.Close()

	query := scripts.GetLatestTestResult[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, ruleId)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while fetching test results for rule: %s", ruleId)
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_TEST_RESULTS.Code,
			Message:     errors2.FETCH_TEST_RESULTS.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	row := results[0]
	result := model.TestResult{
		ResultId:       asString(row["result_id"]),
		RuleId:         asString(row["rule_id"]),
		Passed:         int(asInt64(row["passed"])),
		Failed:         int(asInt64(row["failed"])),
		Total:          int(asInt64(row["total"])),
		Accuracy:       int(asInt64(row["accuracy"])),
		AvgExecutionMs: asFloat64(row["avg_execution_ms"]),
		ExecutedAt:     asInt64(row["executed_at"]),
	}
	if err := unmarshalColumn(row["case_results"], &result.CaseResults, "case results"); err != nil {
		return nil, err
	}
	if err := unmarshalColumn(row["suggested_cases"], &result.SuggestedCases, "suggested cases"); err != nil {
		return nil, err
	}
	return &result, nil
}

// InsertDeployment records one activation in the deployment history.
func (s *BusinessRuleStore) InsertDeployment(deployment model.RuleDeployment) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return dbInitError(fmt.Sprintf("recording deployment for rule: %s", deployment.RuleId), err)
	}
	defer dbClient.Close()

	query := scripts.InsertRuleDeployment[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteMutation(query, deployment.DeploymentId, deployment.RuleId, deployment.Version,
		deployment.DeployedBy, deployment.DeployedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while recording deployment for rule: %s", deployment.RuleId)
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_DEPLOYMENT_RECORD.Code,
			Message:     errors2.ADD_DEPLOYMENT_RECORD.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// DeleteRuleCascade removes a rule and its dependent rows in one
// transaction. Either all four row sets are removed or none.
func (s *BusinessRuleStore) DeleteRuleCascade(ruleId string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return dbInitError(fmt.Sprintf("deleting business rule: %s", ruleId), err)
	}
	defer dbClient.Close()

	dbType := provider.NewDBProvider().GetDBType()
	statements := []string{
		scripts.DeleteRuleDeployments[dbType],
		scripts.DeleteRuleTestResults[dbType],
		scripts.DeleteRuleApprovals[dbType],
		scripts.DeleteBusinessRuleByID[dbType],
	}

	err = dbClient.WithTx(func(tx *sql.Tx) error {
		for _, statement := range statements {
			if _, err := tx.Exec(statement, ruleId); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		errorMsg := fmt.Sprintf("Cascade deletion rolled back for rule: %s", ruleId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewCascadeError(errorMsg, err)
	}

	logger.Info(fmt.Sprintf("Business rule : %s deleted with its dependent records", ruleId))
	return nil
}

// marshalRuleDocuments serializes the rule's jsonb columns.
func marshalRuleDocuments(rule model.BusinessRule) (condition, actions, testCases, metadata string, err error) {

	conditionBytes, err := json.Marshal(rule.Condition)
	if err != nil {
		return "", "", "", "", marshalError("rule condition", err)
	}
	actionBytes, err := json.Marshal(rule.Actions)
	if err != nil {
		return "", "", "", "", marshalError("rule actions", err)
	}
	testCaseBytes, err := json.Marshal(rule.TestCases)
	if err != nil {
		return "", "", "", "", marshalError("rule test cases", err)
	}
	metadataBytes, err := json.Marshal(rule.Metadata)
	if err != nil {
		return "", "", "", "", marshalError("rule metadata", err)
	}
	return string(conditionBytes), string(actionBytes), string(testCaseBytes), string(metadataBytes), nil
}

// buildRuleFromRow converts a row map into a BusinessRule.
func buildRuleFromRow(row map[string]interface{}) (*model.BusinessRule, error) {

	rule := model.BusinessRule{
		RuleId:      asString(row["rule_id"]),
		RuleName:    asString(row["rule_name"]),
		Description: asString(row["description"]),
		Category:    model.RuleCategory(asString(row["category"])),
		Priority:    int(asInt64(row["priority"])),
		Enabled:     asBool(row["enabled"]),
		Status:      model.RuleStatus(asString(row["status"])),
		Version:     asString(row["version"]),
		CreatedAt:   asInt64(row["created_at"]),
		UpdatedAt:   asInt64(row["updated_at"]),
	}
	if err := unmarshalColumn(row["condition"], &rule.Condition, "rule condition"); err != nil {
		return nil, err
	}
	if err := unmarshalColumn(row["actions"], &rule.Actions, "rule actions"); err != nil {
		return nil, err
	}
	if err := unmarshalColumn(row["test_cases"], &rule.TestCases, "rule test cases"); err != nil {
		return nil, err
	}
	if err := unmarshalColumn(row["metadata"], &rule.Metadata, "rule metadata"); err != nil {
		return nil, err
	}
	return &rule, nil
}

func unmarshalColumn(value interface{}, target interface{}, what string) error {

	raw := asString(value)
	if raw == "" || raw == "null" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UNMARSHAL_JSON.Code,
			Message:     errors2.UNMARSHAL_JSON.Message,
			Description: fmt.Sprintf("Failed to parse %s column", what),
		}, err)
	}
	return nil
}

func dbInitError(description string, err error) error {

	log.GetLogger().Debug("Failed to get database client while "+description, log.Error(err))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.DB_CLIENT_INIT.Code,
		Message:     errors2.DB_CLIENT_INIT.Message,
		Description: "Failed to get database client while " + description,
	}, err)
}

func fetchRulesError(description string, err error) error {

	log.GetLogger().Debug("Query failed while "+description, log.Error(err))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.FETCH_BUSINESS_RULES.Code,
		Message:     errors2.FETCH_BUSINESS_RULES.Message,
		Description: "Query failed while " + description,
	}, err)
}

func marshalError(what string, err error) error {

	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.MARSHAL_JSON.Code,
		Message:     errors2.MARSHAL_JSON.Message,
		Description: fmt.Sprintf("Failed to serialize %s", what),
	}, err)
}

// Column accessors tolerating the driver's representation differences.

func asString(value interface{}) string {

	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func asInt64(value interface{}) int64 {

	switch v := value.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

func asFloat64(value interface{}) float64 {

	switch v := value.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case []byte:
		var parsed float64
		_, _ = fmt.Sscanf(string(v), "%f", &parsed)
		return parsed
	default:
		return 0
	}
}

func asBool(value interface{}) bool {

	v, ok := value.(bool)
	return ok && v
}
