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

package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/wso2/mdm-deduplication-service/internal/business_rules/model"
	"github.com/wso2/mdm-deduplication-service/internal/business_rules/provider"
	errors2 "github.com/wso2/mdm-deduplication-service/internal/system/errors"
	"github.com/wso2/mdm-deduplication-service/internal/system/security"
	"github.com/wso2/mdm-deduplication-service/internal/system/utils"
)

type BusinessRulesHandler struct{}

func NewBusinessRulesHandler() *BusinessRulesHandler {

	return &BusinessRulesHandler{}
}

// CreateBusinessRule handles creation of a new draft rule.
func (brh *BusinessRulesHandler) CreateBusinessRule(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "business_rules:create"); err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.BusinessRuleAPIRequest
	if !decodeBody(w, r, &request, "business rule") {
		return
	}

	ruleService := provider.NewBusinessRulesProvider().GetRuleLifecycleService()
	rule, err := ruleService.CreateRule(request, security.GetUserIDFromRequest(r))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, rule)
}

// GetBusinessRules handles listing all rules.
func (brh *BusinessRulesHandler) GetBusinessRules(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "business_rules:view"); err != nil {
		utils.HandleError(w, err)
		return
	}

	ruleService := provider.NewBusinessRulesProvider().GetRuleLifecycleService()
	var (
		rules []model.BusinessRule
		err   error
	)
	if r.URL.Query().Get("active") == "true" {
		rules, err = ruleService.GetActiveRules()
	} else {
		rules, err = ruleService.GetRules()
	}
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, rules)
}

// GetBusinessRule handles fetching a single rule.
func (brh *BusinessRulesHandler) GetBusinessRule(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "business_rules:view"); err != nil {
		utils.HandleError(w, err)
		return
	}

	ruleService := provider.NewBusinessRulesProvider().GetRuleLifecycleService()
	rule, err := ruleService.GetRule(RuleIdFromPath(r))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, rule)
}

// UpdateBusinessRule handles a partial update of a rule.
func (brh *BusinessRulesHandler) UpdateBusinessRule(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "business_rules:update"); err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.BusinessRuleUpdateRequest
	if !decodeBody(w, r, &request, "business rule update") {
		return
	}

	ruleService := provider.NewBusinessRulesProvider().GetRuleLifecycleService()
	rule, err := ruleService.UpdateRule(RuleIdFromPath(r), request, security.GetUserIDFromRequest(r))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, rule)
}

// DeleteBusinessRule handles cascade deletion of a rule. The confirm
// name travels in the confirm_name query parameter.
func (brh *BusinessRulesHandler) DeleteBusinessRule(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "business_rules:delete"); err != nil {
		utils.HandleError(w, err)
		return
	}

	ruleService := provider.NewBusinessRulesProvider().GetRuleLifecycleService()
	err := ruleService.DeleteRule(RuleIdFromPath(r), r.URL.Query().Get("confirm_name"),
		security.GetUserIDFromRequest(r))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SubmitForApproval handles moving a rule into review.
func (brh *BusinessRulesHandler) SubmitForApproval(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "business_rules:submit"); err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.SubmitForApprovalRequest
	if !decodeBody(w, r, &request, "submission") {
		return
	}
	if request.SubmittedBy == "" {
		request.SubmittedBy = security.GetUserIDFromRequest(r)
	}

	ruleService := provider.NewBusinessRulesProvider().GetRuleLifecycleService()
	rule, err := ruleService.SubmitForApproval(RuleIdFromPath(r), request)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, rule)
}

// RecordApproval handles resolving one approval level.
func (brh *BusinessRulesHandler) RecordApproval(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "business_rules:approve"); err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.ApprovalDecisionRequest
	if !decodeBody(w, r, &request, "approval decision") {
		return
	}
	if request.Approver == "" {
		request.Approver = security.GetUserIDFromRequest(r)
	}

	ruleService := provider.NewBusinessRulesProvider().GetRuleLifecycleService()
	rule, err := ruleService.RecordApproval(RuleIdFromPath(r), request)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, rule)
}

// GetApprovals handles listing the approval records of a rule.
func (brh *BusinessRulesHandler) GetApprovals(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "business_rules:view"); err != nil {
		utils.HandleError(w, err)
		return
	}

	ruleService := provider.NewBusinessRulesProvider().GetRuleLifecycleService()
	approvals, err := ruleService.GetApprovals(RuleIdFromPath(r))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, approvals)
}

// TestBusinessRule handles executing a rule's test suite.
func (brh *BusinessRulesHandler) TestBusinessRule(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "business_rules:test"); err != nil {
		utils.HandleError(w, err)
		return
	}

	testingService := provider.NewBusinessRulesProvider().GetRuleTestingService()
	result, err := testingService.TestRule(RuleIdFromPath(r))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, result)
}

// DisableBusinessRule handles toggling an active rule off.
func (brh *BusinessRulesHandler) DisableBusinessRule(w http.ResponseWriter, r *http.Request) {

	brh.toggle(w, r, false)
}

// EnableBusinessRule handles toggling a disabled rule back on.
func (brh *BusinessRulesHandler) EnableBusinessRule(w http.ResponseWriter, r *http.Request) {

	brh.toggle(w, r, true)
}

func (brh *BusinessRulesHandler) toggle(w http.ResponseWriter, r *http.Request, enable bool) {

	if err := security.AuthnAndAuthz(r, "business_rules:update"); err != nil {
		utils.HandleError(w, err)
		return
	}

	ruleService := provider.NewBusinessRulesProvider().GetRuleLifecycleService()
	actor := security.GetUserIDFromRequest(r)

	var (
		rule *model.BusinessRule
		err  error
	)
	if enable {
		rule, err = ruleService.EnableRule(RuleIdFromPath(r), actor)
	} else {
		rule, err = ruleService.DisableRule(RuleIdFromPath(r), actor)
	}
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, rule)
}

// RuleIdFromPath extracts the rule id segment following "business-rules"
// in the request path.
func RuleIdFromPath(r *http.Request) string {

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	for i, part := range parts {
		if part == "business-rules" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

func decodeBody(w http.ResponseWriter, r *http.Request, target interface{}, entity string) bool {

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, entity),
		}, http.StatusBadRequest)
		utils.WriteErrorResponse(w, clientError)
		return false
	}
	return true
}
