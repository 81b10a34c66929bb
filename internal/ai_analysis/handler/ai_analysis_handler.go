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

	"github.com/wso2/mdm-deduplication-service/internal/ai_analysis/model"
	"github.com/wso2/mdm-deduplication-service/internal/ai_analysis/provider"
	errors2 "github.com/wso2/mdm-deduplication-service/internal/system/errors"
	"github.com/wso2/mdm-deduplication-service/internal/system/log"
	"github.com/wso2/mdm-deduplication-service/internal/system/security"
	"github.com/wso2/mdm-deduplication-service/internal/system/utils"
)

type AIAnalysisHandler struct{}

func NewAIAnalysisHandler() *AIAnalysisHandler {

	return &AIAnalysisHandler{}
}

// AnalyzeConfidence handles an ad hoc analysis of a record pair. The
// response is always a verdict; with no reachable provider it is the
// degraded fuzzy-score fallback.
func (ah *AIAnalysisHandler) AnalyzeConfidence(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "ai_analysis:analyze"); err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.AnalyzeConfidenceRequest
	if !decodeAnalysisBody(w, r, &request, "analysis request") {
		return
	}
	if len(request.Record1) == 0 || len(request.Record2) == 0 {
		utils.HandleError(w, errors2.NewValidationError("both records are required"))
		return
	}
	if request.FuzzyScore < 0 || request.FuzzyScore > 1 {
		utils.HandleError(w, errors2.NewValidationError("fuzzy_score must be within [0,1]"))
		return
	}

	analyzer := provider.NewAIAnalysisProvider().GetConfidenceService()
	verdict := analyzer.AnalyzeWithFallback(r.Context(), request.Record1, request.Record2,
		request.FuzzyScore)

	log.GetLogger().Audit(log.AuditEvent{
		ActionID:      log.ActionAnalyzeConfidence,
		InitiatorType: log.InitiatorTypeUser,
		InitiatorID:   security.GetUserIDFromRequest(r),
		TargetType:    log.TargetTypeAIProvider,
		TargetID:      verdict.Provider,
	})
	utils.WriteJSONResponse(w, http.StatusOK, verdict)
}

// GetProviders handles listing the provider chain with health state.
func (ah *AIAnalysisHandler) GetProviders(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "ai_analysis:view"); err != nil {
		utils.HandleError(w, err)
		return
	}

	analyzer := provider.NewAIAnalysisProvider().GetConfidenceService()
	utils.WriteJSONResponse(w, http.StatusOK, analyzer.ProviderStatuses())
}

// RefreshHealth handles probing every configured provider and returns
// the refreshed statuses.
func (ah *AIAnalysisHandler) RefreshHealth(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "ai_analysis:manage"); err != nil {
		utils.HandleError(w, err)
		return
	}

	analyzer := provider.NewAIAnalysisProvider().GetConfidenceService()
	statuses := analyzer.RefreshHealth(r.Context())

	log.GetLogger().Audit(log.AuditEvent{
		ActionID:      log.ActionRefreshHealth,
		InitiatorType: log.InitiatorTypeUser,
		InitiatorID:   security.GetUserIDFromRequest(r),
		TargetType:    log.TargetTypeAIProvider,
	})
	utils.WriteJSONResponse(w, http.StatusOK, statuses)
}

// SwitchProvider handles promoting a named provider to the front of the
// chain.
func (ah *AIAnalysisHandler) SwitchProvider(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "ai_analysis:manage"); err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.SwitchProviderRequest
	if !decodeAnalysisBody(w, r, &request, "provider switch") {
		return
	}
	if request.Name == "" {
		utils.HandleError(w, errors2.NewValidationError("name is required"))
		return
	}

	analyzer := provider.NewAIAnalysisProvider().GetConfidenceService()
	if err := analyzer.SwitchProvider(request.Name); err != nil {
		utils.HandleError(w, err)
		return
	}

	log.GetLogger().Audit(log.AuditEvent{
		ActionID:      log.ActionSwitchProvider,
		InitiatorType: log.InitiatorTypeUser,
		InitiatorID:   security.GetUserIDFromRequest(r),
		TargetType:    log.TargetTypeAIProvider,
		TargetID:      request.Name,
	})
	utils.WriteJSONResponse(w, http.StatusOK, analyzer.ProviderStatuses())
}

func decodeAnalysisBody(w http.ResponseWriter, r *http.Request, target interface{}, entity string) bool {

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
