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

package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wso2/mdm-deduplication-service/internal/business_rules/model"
	"github.com/wso2/mdm-deduplication-service/internal/business_rules/store"
	"github.com/wso2/mdm-deduplication-service/internal/system/constants"
	errors2 "github.com/wso2/mdm-deduplication-service/internal/system/errors"
	"github.com/wso2/mdm-deduplication-service/internal/system/log"
)

// RuleLifecycleServiceInterface defines the rule state machine surface.
type RuleLifecycleServiceInterface interface {
	CreateRule(request model.BusinessRuleAPIRequest, actor string) (*model.BusinessRule, error)
	GetRule(ruleId string) (*model.BusinessRule, error)
	GetRules() ([]model.BusinessRule, error)
	GetActiveRules() ([]model.BusinessRule, error)
	UpdateRule(ruleId string, request model.BusinessRuleUpdateRequest, actor string) (*model.BusinessRule, error)
	SubmitForApproval(ruleId string, request model.SubmitForApprovalRequest) (*model.BusinessRule, error)
	RecordApproval(ruleId string, request model.ApprovalDecisionRequest) (*model.BusinessRule, error)
	GetApprovals(ruleId string) ([]model.ApprovalRecord, error)
	DisableRule(ruleId string, actor string) (*model.BusinessRule, error)
	EnableRule(ruleId string, actor string) (*model.BusinessRule, error)
	DeleteRule(ruleId string, confirmName string, actor string) error
}

// ruleLocks serializes approval upserts per rule. State transitions are
// additionally guarded by conditional updates in the store, so the lock
// only prevents interleaved metadata writes for the same rule.
type ruleLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newRuleLocks() *ruleLocks {

	return &ruleLocks{locks: make(map[string]*sync.Mutex)}
}

func (rl *ruleLocks) forRule(ruleId string) *sync.Mutex {

	rl.mu.Lock()
	defer rl.mu.Unlock()

	lock, ok := rl.locks[ruleId]
	if !ok {
		lock = &sync.Mutex{}
		rl.locks[ruleId] = lock
	}
	return lock
}

var sharedRuleLocks = newRuleLocks()

// RuleLifecycleService is the default implementation of the
// RuleLifecycleServiceInterface.
type RuleLifecycleService struct {
	ruleStore store.BusinessRuleStoreInterface
	locks     *ruleLocks
}

// GetRuleLifecycleService creates a new instance of RuleLifecycleService.
func GetRuleLifecycleService() RuleLifecycleServiceInterface {

	return &RuleLifecycleService{
		ruleStore: store.NewBusinessRuleStore(),
		locks:     sharedRuleLocks,
	}
}

// NewRuleLifecycleService creates a lifecycle service over an explicit
// store.
func NewRuleLifecycleService(ruleStore store.BusinessRuleStoreInterface) RuleLifecycleServiceInterface {

	return &RuleLifecycleService{
		ruleStore: ruleStore,
		locks:     newRuleLocks(),
	}
}

// CreateRule validates and persists a new draft. Status and enabled are
// forced regardless of caller input so review cannot be bypassed.
func (ls *RuleLifecycleService) CreateRule(request model.BusinessRuleAPIRequest,
	actor string) (*model.BusinessRule, error) {

	if request.RuleName == "" {
		return nil, errors2.NewValidationError("rule_name is required")
	}
	if request.Description == "" {
		return nil, errors2.NewValidationError("description is required")
	}
	if request.Category == "" {
		return nil, errors2.NewValidationError("category is required")
	}
	if err := request.Condition.Validate(); err != nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_CONDITION.Code,
			Message:     errors2.INVALID_CONDITION.Message,
			Description: err.Error(),
		}, 400)
	}
	if len(request.Actions) == 0 {
		return nil, errors2.NewValidationError("at least one action is required")
	}
	for i, action := range request.Actions {
		if err := action.Validate(); err != nil {
			return nil, errors2.NewClientError(errors2.ErrorMessage{
				Code:        errors2.INVALID_ACTION.Code,
				Message:     errors2.INVALID_ACTION.Message,
				Description: fmt.Sprintf("action %d: %v", i, err),
			}, 400)
		}
	}

	now := time.Now().UTC().Unix()
	rule := model.BusinessRule{
		RuleId:      uuid.New().String(),
		RuleName:    request.RuleName,
		Description: request.Description,
		Category:    request.Category,
		Priority:    request.Priority,
		Enabled:     false,
		Status:      model.StatusDraft,
		Version:     constants.InitialRuleVersion,
		Condition:   request.Condition,
		Actions:     request.Actions,
		TestCases:   request.TestCases,
		Metadata: []model.MetadataEntry{{
			Event:     "created",
			Actor:     actor,
			Timestamp: now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := ls.ruleStore.InsertRule(rule); err != nil {
		return nil, err
	}

	log.GetLogger().Audit(log.AuditEvent{
		ActionID:      log.ActionCreateBusinessRule,
		InitiatorType: log.InitiatorTypeUser,
		InitiatorID:   actor,
		TargetType:    log.TargetTypeBusinessRule,
		TargetID:      rule.RuleId,
	})
	return &rule, nil
}

// GetRule fetches a rule by id.
func (ls *RuleLifecycleService) GetRule(ruleId string) (*model.BusinessRule, error) {

	rule, err := ls.ruleStore.GetRule(ruleId)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, ruleNotFound(ruleId)
	}
	return rule, nil
}

// GetRules fetches all rules in evaluation order.
func (ls *RuleLifecycleService) GetRules() ([]model.BusinessRule, error) {

	return ls.ruleStore.GetRules()
}

// GetActiveRules fetches the enabled active rules in evaluation order.
func (ls *RuleLifecycleService) GetActiveRules() ([]model.BusinessRule, error) {

	return ls.ruleStore.GetActiveRules()
}

// UpdateRule applies the provided fields only and stamps the
// modification time.
func (ls *RuleLifecycleService) UpdateRule(ruleId string, request model.BusinessRuleUpdateRequest,
	actor string) (*model.BusinessRule, error) {

	rule, err := ls.ruleStore.GetRule(ruleId)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, ruleNotFound(ruleId)
	}

	if request.RuleName != nil {
		rule.RuleName = *request.RuleName
	}
	if request.Description != nil {
		rule.Description = *request.Description
	}
	if request.Category != nil {
		rule.Category = *request.Category
	}
	if request.Priority != nil {
		rule.Priority = *request.Priority
	}
	if request.Condition != nil {
		if err := request.Condition.Validate(); err != nil {
			return nil, errors2.NewClientError(errors2.ErrorMessage{
				Code:        errors2.INVALID_CONDITION.Code,
				Message:     errors2.INVALID_CONDITION.Message,
				Description: err.Error(),
			}, 400)
		}
		rule.Condition = *request.Condition
	}
	if request.Actions != nil {
		for i, action := range *request.Actions {
			if err := action.Validate(); err != nil {
				return nil, errors2.NewClientError(errors2.ErrorMessage{
					Code:        errors2.INVALID_ACTION.Code,
					Message:     errors2.INVALID_ACTION.Message,
					Description: fmt.Sprintf("action %d: %v", i, err),
				}, 400)
			}
		}
		rule.Actions = *request.Actions
	}
	if request.TestCases != nil {
		rule.TestCases = *request.TestCases
	}
	rule.UpdatedAt = time.Now().UTC().Unix()

	rowsAffected, err := ls.ruleStore.UpdateRule(*rule)
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, ruleNotFound(ruleId)
	}

	log.GetLogger().Audit(log.AuditEvent{
		ActionID:      log.ActionUpdateBusinessRule,
		InitiatorType: log.InitiatorTypeUser,
		InitiatorID:   actor,
		TargetType:    log.TargetTypeBusinessRule,
		TargetID:      ruleId,
	})
	return rule, nil
}

// SubmitForApproval moves a draft or rejected rule into review and
// creates one pending approval per required level, idempotently. The
// rule must carry at least one recorded test run.
func (ls *RuleLifecycleService) SubmitForApproval(ruleId string,
	request model.SubmitForApprovalRequest) (*model.BusinessRule, error) {

	lock := ls.locks.forRule(ruleId)
	lock.Lock()
	defer lock.Unlock()

	rule, err := ls.ruleStore.GetRule(ruleId)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, ruleNotFound(ruleId)
	}

	switch rule.Status {
	case model.StatusDraft, model.StatusRejected:
		// allowed
	case model.StatusPendingApproval:
		return nil, errors2.NewConflictError(errors2.RULE_ALREADY_PENDING,
			fmt.Sprintf("Rule %s is already pending approval", ruleId))
	default:
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_RULE_STATE.Code,
			Message:     errors2.INVALID_RULE_STATE.Message,
			Description: fmt.Sprintf("Rule %s cannot be submitted from status %s", ruleId, rule.Status),
		}, 409)
	}

	latestResult, err := ls.ruleStore.GetLatestTestResult(ruleId)
	if err != nil {
		return nil, err
	}
	if latestResult == nil {
		return nil, errors2.NewConflictError(errors2.RULE_NOT_TESTED,
			fmt.Sprintf("Rule %s must be tested before submission", ruleId))
	}

	resubmission := rule.Status == model.StatusRejected

	won, err := ls.ruleStore.UpdateRuleStatus(ruleId, rule.Status, model.StatusPendingApproval, false)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, errors2.NewConflictError(errors2.RULE_ALREADY_PENDING,
			fmt.Sprintf("Rule %s was transitioned concurrently", ruleId))
	}

	if resubmission {
		if err := ls.ruleStore.ReopenApprovals(ruleId); err != nil {
			return nil, err
		}
	}
	if err := ls.ruleStore.CreatePendingApprovals(ruleId, requiredLevels()); err != nil {
		return nil, err
	}

	if err := ls.ruleStore.AppendRuleMetadata(ruleId, model.MetadataEntry{
		Event:     "submitted_for_approval",
		Actor:     request.SubmittedBy,
		Reason:    request.Reason,
		Timestamp: time.Now().UTC().Unix(),
	}); err != nil {
		return nil, err
	}

	log.GetLogger().Audit(log.AuditEvent{
		ActionID:      log.ActionSubmitForApproval,
		InitiatorType: log.InitiatorTypeUser,
		InitiatorID:   request.SubmittedBy,
		TargetType:    log.TargetTypeBusinessRule,
		TargetID:      ruleId,
	})
	return ls.GetRule(ruleId)
}

// RecordApproval resolves one approval level. A rejection at any level
// rejects and disables the rule immediately; the last required approval
// activates the rule atomically.
func (ls *RuleLifecycleService) RecordApproval(ruleId string,
	request model.ApprovalDecisionRequest) (*model.BusinessRule, error) {

	if _, ok := model.RequiredApprovalLevels[request.Level]; !ok {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_APPROVAL_LEVEL.Code,
			Message:     errors2.INVALID_APPROVAL_LEVEL.Message,
			Description: fmt.Sprintf("Level %d is not one of the required approval levels", request.Level),
		}, 400)
	}
	if request.Decision != model.ApprovalApproved && request.Decision != model.ApprovalRejected {
		return nil, errors2.NewValidationError("decision must be approved or rejected")
	}
	if request.Approver == "" {
		return nil, errors2.NewValidationError("approver is required")
	}

	lock := ls.locks.forRule(ruleId)
	lock.Lock()
	defer lock.Unlock()

	rule, err := ls.ruleStore.GetRule(ruleId)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, ruleNotFound(ruleId)
	}
	if rule.Status != model.StatusPendingApproval {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_RULE_STATE.Code,
			Message:     errors2.INVALID_RULE_STATE.Message,
			Description: fmt.Sprintf("Rule %s is not pending approval", ruleId),
		}, 409)
	}

	applied, err := ls.ruleStore.ResolveApproval(model.ApprovalRecord{
		ApprovalId: fmt.Sprintf("%s-l%d", ruleId, request.Level),
		RuleId:     ruleId,
		Level:      request.Level,
		Status:     request.Decision,
		Approver:   request.Approver,
		Comments:   request.Comments,
	})
	if err != nil {
		return nil, err
	}
	if !applied {
		// Level already resolved; idempotent no-op.
		return ls.GetRule(ruleId)
	}

	now := time.Now().UTC().Unix()
	if request.Decision == model.ApprovalRejected {
		if _, err := ls.ruleStore.UpdateRuleStatus(ruleId, model.StatusPendingApproval,
			model.StatusRejected, false); err != nil {
			return nil, err
		}
		if err := ls.ruleStore.AppendRuleMetadata(ruleId, model.MetadataEntry{
			Event:     fmt.Sprintf("rejected_at_level_%d", request.Level),
			Actor:     request.Approver,
			Reason:    request.Comments,
			Timestamp: now,
		}); err != nil {
			return nil, err
		}
	} else {
		activated, err := ls.ruleStore.ActivateRuleIfFullyApproved(ruleId, len(model.RequiredApprovalLevels))
		if err != nil {
			return nil, err
		}
		if activated {
			if err := ls.ruleStore.AppendRuleMetadata(ruleId, model.MetadataEntry{
				Event:     "activated",
				Actor:     request.Approver,
				Timestamp: now,
			}); err != nil {
				return nil, err
			}
			if err := ls.ruleStore.InsertDeployment(model.RuleDeployment{
				DeploymentId: uuid.New().String(),
				RuleId:       ruleId,
				Version:      rule.Version,
				DeployedBy:   request.Approver,
				DeployedAt:   now,
			}); err != nil {
				return nil, err
			}
			log.GetLogger().Audit(log.AuditEvent{
				ActionID:      log.ActionActivateRule,
				InitiatorType: log.InitiatorTypeUser,
				InitiatorID:   request.Approver,
				TargetType:    log.TargetTypeBusinessRule,
				TargetID:      ruleId,
			})
		}
	}

	log.GetLogger().Audit(log.AuditEvent{
		ActionID:      log.ActionRecordApproval,
		InitiatorType: log.InitiatorTypeUser,
		InitiatorID:   request.Approver,
		TargetType:    log.TargetTypeBusinessRule,
		TargetID:      ruleId,
	})
	return ls.GetRule(ruleId)
}

// GetApprovals fetches the approval records of a rule.
func (ls *RuleLifecycleService) GetApprovals(ruleId string) ([]model.ApprovalRecord, error) {

	rule, err := ls.ruleStore.GetRule(ruleId)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, ruleNotFound(ruleId)
	}
	return ls.ruleStore.GetApprovals(ruleId)
}

// DisableRule toggles an active rule off.
func (ls *RuleLifecycleService) DisableRule(ruleId string, actor string) (*model.BusinessRule, error) {

	return ls.toggleRule(ruleId, actor, model.StatusActive, model.StatusDisabled, false,
		log.ActionDisableRule, "disabled")
}

// EnableRule toggles a disabled rule back on.
func (ls *RuleLifecycleService) EnableRule(ruleId string, actor string) (*model.BusinessRule, error) {

	return ls.toggleRule(ruleId, actor, model.StatusDisabled, model.StatusActive, true,
		log.ActionActivateRule, "re-enabled")
}

func (ls *RuleLifecycleService) toggleRule(ruleId, actor string, from, to model.RuleStatus,
	enabled bool, action string, event string) (*model.BusinessRule, error) {

	rule, err := ls.ruleStore.GetRule(ruleId)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, ruleNotFound(ruleId)
	}

	won, err := ls.ruleStore.UpdateRuleStatus(ruleId, from, to, enabled)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_RULE_STATE.Code,
			Message:     errors2.INVALID_RULE_STATE.Message,
			Description: fmt.Sprintf("Rule %s is not in status %s", ruleId, from),
		}, 409)
	}

	if err := ls.ruleStore.AppendRuleMetadata(ruleId, model.MetadataEntry{
		Event:     event,
		Actor:     actor,
		Timestamp: time.Now().UTC().Unix(),
	}); err != nil {
		return nil, err
	}

	log.GetLogger().Audit(log.AuditEvent{
		ActionID:      action,
		InitiatorType: log.InitiatorTypeUser,
		InitiatorID:   actor,
		TargetType:    log.TargetTypeBusinessRule,
		TargetID:      ruleId,
	})
	return ls.GetRule(ruleId)
}

// DeleteRule removes a rule and all its dependent rows. An active rule
// is disabled first so consumers of active rules observe removal before
// data loss. When confirmName is provided it must match the rule name.
func (ls *RuleLifecycleService) DeleteRule(ruleId string, confirmName string, actor string) error {

	lock := ls.locks.forRule(ruleId)
	lock.Lock()
	defer lock.Unlock()

	rule, err := ls.ruleStore.GetRule(ruleId)
	if err != nil {
		return err
	}
	if rule == nil {
		return ruleNotFound(ruleId)
	}
	if confirmName != "" && confirmName != rule.RuleName {
		return errors2.NewConflictError(errors2.CONFIRMATION_MISMATCH,
			fmt.Sprintf("Confirmation name does not match rule %s", ruleId))
	}

	if rule.Status == model.StatusActive {
		if _, err := ls.ruleStore.UpdateRuleStatus(ruleId, model.StatusActive,
			model.StatusDisabled, false); err != nil {
			return err
		}
	}

	if err := ls.ruleStore.DeleteRuleCascade(ruleId); err != nil {
		return err
	}

	log.GetLogger().Audit(log.AuditEvent{
		ActionID:      log.ActionDeleteBusinessRule,
		InitiatorType: log.InitiatorTypeUser,
		InitiatorID:   actor,
		TargetType:    log.TargetTypeBusinessRule,
		TargetID:      ruleId,
	})
	return nil
}

func requiredLevels() []int {

	levels := make([]int, 0, len(model.RequiredApprovalLevels))
	for level := range model.RequiredApprovalLevels {
		levels = append(levels, level)
	}
	return levels
}

func ruleNotFound(ruleId string) error {

	return errors2.NewNotFoundError(errors2.RULE_NOT_FOUND,
		fmt.Sprintf("No business rule exists with id: %s", ruleId))
}
